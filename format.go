package mapmatcher

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// FormatPrettyString is a convenice wrapper that outputs to a string instead of
// an io.Writer
func FormatPrettyString(changes Deltas, colorTTY bool) (string, error) {
	buf := &bytes.Buffer{}
	if err := FormatPretty(buf, changes, colorTTY); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FormatPretty writes a text report to w, one line per delta prefixed by its
// operation. if colorTTY is true it will add
// red "-" for missing entries
// green "+" for unexpected entries
// blue "~" for mismatches
// yellow "?" for tolerated extras
func FormatPretty(w io.Writer, changes Deltas, colorTTY bool) error {
	var colorMap map[Operation]string

	if colorTTY {
		colorMap = map[Operation]string{
			Operation("close"): "\x1b[0m", // end color tag

			DTContext:    "\x1b[37m", // netural
			DTUnexpected: "\x1b[32m", // green
			DTMissing:    "\x1b[31m", // red
			DTMismatch:   "\x1b[34m", // blue
			DTTolerated:  "\x1b[33m", // yellow
		}
	}

	return formatPretty(w, changes, 0, colorMap)
}

func formatPretty(w io.Writer, changes Deltas, indent int, colorMap map[Operation]string) error {
	for _, d := range changes {
		name := "."
		if d.Path != nil {
			name = d.Path.String()
		}
		text := deltaText(d)
		if text != "" {
			text = " " + text
		}
		if _, err := fmt.Fprintf(w, "%s%s%s%s:%s%s\n", strings.Repeat("  ", indent), colorMap[d.Type], d.Type, name, text, colorMap[Operation("close")]); err != nil {
			return err
		}
		if len(d.Deltas) > 0 {
			if err := formatPretty(w, d.Deltas, indent+1, colorMap); err != nil {
				return err
			}
		}
	}

	return nil
}

// deltaText is the right hand side of a formatted delta line
func deltaText(d *Delta) string {
	switch {
	case len(d.Deltas) > 0:
		return ""
	case d.Type == DTMissing:
		return "expected " + d.Expected
	case d.Type == DTMismatch:
		return fmt.Sprintf("%s (expected %s)", DescribeValue(d.Value), d.Expected)
	}
	return DescribeValue(d.Value)
}

// FormatPrettyStats prints a string of stats info
func FormatPrettyStats(diffStat *Stats) string {
	return formatStats(diffStat, false)
}

// FormatPrettyStatsColor prints a string of stats info with ANSI colors
func FormatPrettyStatsColor(diffStat *Stats) string {
	return formatStats(diffStat, true)
}

func formatStats(ds *Stats, color bool) string {
	var (
		neutralColor, insertColor, deleteColor, updateColor, toleratedColor, closeColor string
	)

	if ds == nil {
		return "<nil>"
	}

	if color {
		neutralColor = "\x1b[37m"
		insertColor = "\x1b[32m"
		deleteColor = "\x1b[31m"
		updateColor = "\x1b[34m"
		toleratedColor = "\x1b[33m"
		closeColor = "\x1b[0m"
	}

	buf := &bytes.Buffer{}

	entriesWord := "entries"
	if ds.Matched == 1 {
		entriesWord = "entry"
	}
	buf.WriteString(fmt.Sprintf("%s%d matched %s.%s", neutralColor, ds.Matched, entriesWord, closeColor))
	buf.WriteString(fmt.Sprintf(" %s%d missing.%s", deleteColor, ds.Missing, closeColor))
	buf.WriteString(fmt.Sprintf(" %s%d unexpected.%s", insertColor, ds.Unexpected, closeColor))

	mismatchesWord := "mismatches"
	if ds.Mismatched == 1 {
		mismatchesWord = "mismatch"
	}
	buf.WriteString(fmt.Sprintf(" %s%d %s.%s", updateColor, ds.Mismatched, mismatchesWord, closeColor))

	if ds.Tolerated > 0 {
		buf.WriteString(fmt.Sprintf(" %s%d tolerated.%s", toleratedColor, ds.Tolerated, closeColor))
	}

	buf.WriteRune('\n')

	return buf.String()
}
