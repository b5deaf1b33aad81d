// Package cmd is the mapmatch command tree
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/qri-io/mapmatcher"
	"github.com/qri-io/mapmatcher/internal/fixture"
	"github.com/qri-io/mapmatcher/internal/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// commandRoot is the root command used to route to sub-commands
	commandRoot string = "mapmatch"

	// CommandCheck matches an actual document against an expectation
	CommandCheck string = "check"

	// envPrefix namespaces environment variables, MAPMATCH_OUTPUT sets --output
	envPrefix = "MAPMATCH"
)

// Report formats for the check command
const (
	OutputText   = "text"
	OutputPretty = "pretty"
	OutputJSON   = "json"
	OutputStats  = "stats"
)

// ErrMismatch is returned by the check command when the actual document
// doesn't match. The report has already been written when it's returned
var ErrMismatch = errors.New("documents don't match")

// Execute runs the command tree with args, writing reports to out
func Execute(args []string, out io.Writer) error {
	rootCmd := newRootCommand(viper.New())
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	return rootCmd.Execute()
}

// newRootCommand creates the root command, binding every flag to cfg so
// flags can also be set from the environment
func newRootCommand(cfg *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:           commandRoot,
		Short:         "Match JSON & YAML documents against expectations, reporting every difference",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Init logging here so cobra/viper has processed the command line args and flags
			// otherwise only envvars are available during init
			return log.InitLogging(cfg.GetString("log-level"), cfg.GetString("log-format"), cfg.GetBool("disable-log-color"))
		},
	}

	// Add our persistent flags, these are global and available anywhere
	cmd.PersistentFlags().String("log-level", "warn", "Set the log level")
	cmd.PersistentFlags().String("log-format", log.FormatPretty, "Set the log format - Can be either 'JSON' or 'pretty'")
	cmd.PersistentFlags().Bool("disable-log-color", false, "Disable coloring of log output")
	_ = cfg.BindPFlags(cmd.PersistentFlags())

	// Setup viper to read from the env, this allows reading flags from the command line or the env
	// using the format 'MAPMATCH_LOG_LEVEL'
	cfg.SetEnvPrefix(envPrefix)
	cfg.AutomaticEnv()
	cfg.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	cmd.AddCommand(newCheckCommand(cfg))
	return cmd
}

// CheckOpts configures a single check
type CheckOpts struct {
	Expected string
	Actual   string
	ExtraOk  bool
	Output   string
	Color    bool
	Reason   string
}

func newCheckCommand(cfg *viper.Viper) *cobra.Command {
	checkCmd := &cobra.Command{
		Use:   CommandCheck,
		Short: "Check an actual document against an expectation document",
		Long: `Check compiles the expectation document into a matcher & matches the actual
document against it. Mappings in the expectation expect maps, sequences expect
lists & scalars expect equal values. These tags select other predicates:

  !any  !not-null  !extra-ok {...}  !close-to [target, delta]
  !contains s  !prefix s  !gt n  !gte n  !lt n  !lte n

Inside flow collections !any & !not-null need a value, {a: !any ~}.

On a mismatch the report is written & the command exits with status 1.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &CheckOpts{
				Expected: cfg.GetString("expected"),
				Actual:   cfg.GetString("actual"),
				ExtraOk:  cfg.GetBool("extra-ok"),
				Output:   cfg.GetString("output"),
				Color:    cfg.GetBool("color"),
				Reason:   cfg.GetString("reason"),
			}
			return Check(cmd.OutOrStdout(), opts)
		},
	}

	checkCmd.Flags().StringP("expected", "e", "", "Expectation document, JSON or YAML")
	checkCmd.Flags().StringP("actual", "a", "-", "Actual document, JSON or YAML. '-' reads stdin")
	checkCmd.Flags().Bool("extra-ok", false, "Tolerate top level keys the expectation doesn't list")
	checkCmd.Flags().StringP("output", "o", OutputText, "Report format - one of 'text', 'pretty', 'json' or 'stats'")
	checkCmd.Flags().Bool("color", false, "Color 'pretty' & 'stats' reports")
	checkCmd.Flags().String("reason", "", "Text to prefix a 'text' report with")
	_ = cfg.BindPFlags(checkCmd.Flags())

	return checkCmd
}

// Check matches the actual document named by opts against the expectation,
// writing a report to w. It returns ErrMismatch if the documents don't match
func Check(w io.Writer, opts *CheckOpts) error {
	switch opts.Output {
	case OutputText, OutputPretty, OutputJSON, OutputStats:
	default:
		return errors.Errorf("unknown output format %q", opts.Output)
	}
	if opts.Expected == "" {
		return errors.New("an expectation document is required")
	}
	if opts.Expected == "-" && opts.Actual == "-" {
		return errors.New("only one document can be read from stdin")
	}

	m, err := fixture.CompileFile(opts.Expected)
	if err != nil {
		return errors.Wrap(err, "compiling expectation")
	}
	if opts.ExtraOk {
		mm, ok := m.(*mapmatcher.MapMatcher)
		if !ok {
			return errors.New("extra-ok needs a mapping at the top of the expectation")
		}
		m = mm.ExtraOk()
	}

	actual, err := fixture.DecodeFile(opts.Actual)
	if err != nil {
		return errors.Wrap(err, "decoding actual document")
	}

	log.Debugf("checking %s against %s", opts.Actual, opts.Expected)
	matched := m.Matches(actual)
	if err := writeReport(w, m, actual, opts); err != nil {
		return errors.Wrap(err, "writing report")
	}
	if !matched {
		log.Infof("%s doesn't match %s", opts.Actual, opts.Expected)
		return ErrMismatch
	}
	return nil
}

func writeReport(w io.Writer, m mapmatcher.Matcher, actual interface{}, opts *CheckOpts) error {
	switch opts.Output {
	case OutputPretty:
		deltas := mapmatcher.Diff(m, actual, mapmatcher.OptionOmitContext())
		return mapmatcher.FormatPretty(w, deltas, opts.Color)
	case OutputJSON:
		deltas := mapmatcher.Diff(m, actual)
		if deltas == nil {
			deltas = mapmatcher.Deltas{}
		}
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		return enc.Encode(deltas)
	case OutputStats:
		stats := &mapmatcher.Stats{}
		mapmatcher.Diff(m, actual, mapmatcher.OptionSetStats(stats))
		report := mapmatcher.FormatPrettyStats(stats)
		if opts.Color {
			report = mapmatcher.FormatPrettyStatsColor(stats)
		}
		_, err := io.WriteString(w, report)
		return err
	}

	if err := mapmatcher.Check(actual, m, opts.Reason); err != nil {
		_, werr := fmt.Fprintln(w, err.Error())
		return werr
	}
	return nil
}
