package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New creates the application logger. The terminal itself is the UI,
// so logs go to a file; with an empty path everything is discarded.
// The returned closer is nil when no file was opened.
func New(path, level string) (zerolog.Logger, io.Closer, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	if path == "" {
		return zerolog.New(io.Discard).Level(lvl), nil, nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.Logger{}, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := zerolog.New(file).Level(lvl).With().Timestamp().Logger()
	return logger, file, nil
}
