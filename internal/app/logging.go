package app

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/dshills/gitward/internal/config"
)

// newLogger builds the application logger from the log section. With no
// file configured the logger is a no-op: the terminal owns stdout and
// stderr while the UI runs, so there is nowhere else to write. The
// returned closer is nil when there is nothing to close.
func newLogger(cfg config.LogConfig) (zerolog.Logger, io.Closer, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("parse log level %q: %w", cfg.Level, err)
	}

	if cfg.File == "" {
		return zerolog.Nop(), nil, nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}

	logger := zerolog.New(f).Level(level).With().Timestamp().Logger()
	return logger, f, nil
}
