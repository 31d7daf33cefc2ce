// Package logging builds the zerolog logger of the svgbridge command.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls the logger. Values usually come from
// internal/config.
type Options struct {
	Level  string // debug, info, warn or error; defaults to info
	Format string // console or json; defaults to console
	File   string // if not empty, logs are also written (as json) to this rotated file
}

// New returns a logger writing to `w` (usually os.Stderr), and to
// the rotated file, if any. The returned closer must be called
// to release the file.
func New(w io.Writer, opts Options) (zerolog.Logger, io.Closer) {
	out := w
	if !strings.EqualFold(strings.TrimSpace(opts.Format), "json") {
		out = zerolog.ConsoleWriter{Out: w, NoColor: !isTerminal(w)}
	}

	var closer io.Closer = nopCloser{}
	if file := strings.TrimSpace(opts.File); file != "" {
		rotated := &lumberjack.Logger{Filename: file, MaxSize: 10, MaxBackups: 3, MaxAge: 28}
		out = zerolog.MultiLevelWriter(out, rotated)
		closer = rotated
	}

	logger := zerolog.New(out).Level(ParseLevel(opts.Level)).With().Timestamp().Logger()
	return logger, closer
}

// ParseLevel returns the zerolog level for `s`, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
