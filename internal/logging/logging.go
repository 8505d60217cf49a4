// Package logging wires zerolog for the inkwell command. Output goes to a
// rotating file because the terminal belongs to the TUI.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	Level  string
	File   string
	Pretty bool
}

// Setup installs the global logger and returns it. An empty File discards
// everything. The returned closer releases the file.
func Setup(opts Options) (zerolog.Logger, io.Closer) {
	var w io.Writer = io.Discard
	var closer io.Closer = nopCloser{}
	if strings.TrimSpace(opts.File) != "" {
		_ = os.MkdirAll(filepath.Dir(opts.File), 0o755)
		lj := &lumberjack.Logger{Filename: opts.File, MaxSize: 10, MaxBackups: 3, MaxAge: 28, Compress: true}
		w, closer = lj, lj
		if opts.Pretty {
			w = zerolog.ConsoleWriter{Out: lj, NoColor: true}
		}
	}
	logger := New(w, opts.Level)
	log.Logger = logger
	return logger, closer
}

// New builds a timestamped logger at level writing to w.
func New(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(w).Level(ParseLevel(level)).With().Timestamp().Str("app", "inkwell").Logger()
}

// ParseLevel maps a level name to zerolog, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "off", "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
