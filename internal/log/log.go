// Package log is the mapmatch command's logger, a thin layer over zerolog
// configured from command line flags
package log

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	FormatPretty = "pretty"
	FormatJSON   = "json"
)

var (
	mu     sync.RWMutex
	logger = newLogger(os.Stderr, FormatPretty, false)
)

func newLogger(w io.Writer, format string, disableColor bool) zerolog.Logger {
	if format != FormatJSON {
		w = zerolog.ConsoleWriter{Out: w, NoColor: disableColor, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

// InitLogging replaces the logger with one writing to stderr at level, as
// JSON lines or pretty console output
func InitLogging(level, format string, disableColor bool) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return errors.Wrapf(err, "log level %q", level)
	}
	format = strings.ToLower(format)
	if format != FormatPretty && format != FormatJSON {
		return errors.Errorf("unknown log format %q, expected %q or %q", format, FormatPretty, FormatJSON)
	}

	l := newLogger(os.Stderr, format, disableColor).Level(lvl)
	SetLogger(&l)
	return nil
}

// GetLogger returns the current logger
func GetLogger() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return &logger
}

// SetLogger replaces the current logger
func SetLogger(l *zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = *l
}

func Debugf(format string, a ...interface{}) {
	GetLogger().Debug().Msgf(format, a...)
}

func Infof(format string, a ...interface{}) {
	GetLogger().Info().Msgf(format, a...)
}

func Warnf(format string, a ...interface{}) {
	GetLogger().Warn().Msgf(format, a...)
}

func Errorf(format string, a ...interface{}) {
	GetLogger().Error().Msgf(format, a...)
}
