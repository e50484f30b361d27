// Package logging configures the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mitchelldurbincs/warzone/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// ParseLevel maps a config level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// Setup installs the global logger described by c. Output goes to out, and
// additionally to c.File when set. The returned Closer releases the file.
func Setup(c config.LogConfig, out io.Writer) (io.Closer, error) {
	zerolog.SetGlobalLevel(ParseLevel(c.Level))

	var w io.Writer = out
	if c.Format != "json" {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	var closer io.Closer = nopCloser{}
	if c.File != "" {
		f, err := os.OpenFile(c.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file %s: %w", c.File, err)
		}
		// The file receives raw JSON lines.
		w = zerolog.MultiLevelWriter(w, f)
		closer = f
	}

	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	return closer, nil
}
