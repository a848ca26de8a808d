package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Setup builds the application logger. The terminal belongs to the TUI, so
// output goes to path (created if needed). An empty path discards logs.
//   - level: trace, debug, info, warn, error, fatal, panic
//   - format: "json" or "pretty" (uncolored console lines)
//
// The returned closer releases the log file.
func Setup(level, format, path string) (zerolog.Logger, io.Closer, error) {
	var out io.WriteCloser = nopCloser{io.Discard}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return zerolog.Nop(), nil, err
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, err
		}
		out = f
	}

	var writer io.Writer = out
	if format == "pretty" {
		writer = zerolog.ConsoleWriter{
			Out:        out,
			NoColor:    true,
			TimeFormat: time.RFC3339,
		}
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	log := zerolog.New(writer).
		Level(lvl).
		With().
		Timestamp().
		Logger()

	return log, out, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
