package helpers

import (
	"strings"
	"time"

	"github.com/sembesalum/tu-chat-api/internal/pkg/logger"
)

// ParseDuration parses a config duration. "0" yields zero, while empty or
// malformed input falls back to def.
func ParseDuration(raw string, def time.Duration) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		logger.Warn().Err(err).Str("value", raw).Dur("fallback", def).Msg("Invalid duration, using fallback")
		return def
	}
	return d
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(time.DateOnly, strings.TrimSpace(s))
}
