package logger

import (
	"fmt"
	"io"
	stdlog "log"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config controls the diagnostic logger.
type Config struct {
	Level   string
	NoColor bool
}

// New returns a console logger writing to w. Diagnostics never go to
// stdout, which is reserved for check results.
func New(w io.Writer, cfg Config) (zerolog.Logger, error) {
	level := zerolog.WarnLevel
	if cfg.Level != "" {
		l, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = l
	}

	console := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    cfg.NoColor,
		TimeFormat: time.TimeOnly,
	}
	log := zerolog.New(console).Level(level).With().Timestamp().Logger()

	stdlog.SetOutput(log)
	stdlog.SetFlags(0)
	return log, nil
}
