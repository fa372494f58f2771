// Package logging opens the quicktask log file.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Open returns a logger appending to path at the given level. When mirror is
// non-nil, entries are also written to it in console format.
// The returned closer releases the log file.
func Open(path, level string, mirror io.Writer) (zerolog.Logger, io.Closer, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.DebugLevel
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("failed to open log file: %w", err)
	}

	var w io.Writer = f
	if mirror != nil {
		console := zerolog.NewConsoleWriter()
		console.Out = mirror
		console.TimeFormat = time.DateTime
		w = zerolog.MultiLevelWriter(f, console)
	}

	logger := zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Int("pid", os.Getpid()).
		Logger()

	return logger, f, nil
}
