package cfgmng

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// LogConfig configures the zerolog logger built by NewLogger.
type LogConfig struct {
	// Level is a zerolog level name; unknown values fall back to info
	Level string `mapstructure:"level"`

	// Format is "console" (default) or "json"
	Format string `mapstructure:"format"`
}

// NewLogger builds a logger writing to w, or stderr if w is nil.
func NewLogger(cfg LogConfig, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	if strings.ToLower(cfg.Format) != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
