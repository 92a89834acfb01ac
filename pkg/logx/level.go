package logx

import (
	"strings"

	"github.com/rs/zerolog"
)

type Level = zerolog.Level

const (
	LevelTrace = zerolog.TraceLevel
	LevelDebug = zerolog.DebugLevel
	LevelInfo  = zerolog.InfoLevel
	LevelWarn  = zerolog.WarnLevel
	LevelError = zerolog.ErrorLevel

	// LevelNone silences a sink: not even error records reach it.
	LevelNone = zerolog.Disabled
)

// ParseLevel maps a level name to a Level. Unknown or empty names return def.
//
// Besides zerolog's names it accepts the npm/cli style names bot configs
// tend to carry over (silly, verbose, http, ...), folded onto the nearest level.
func ParseLevel(s string, def Level) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace", "silly", "verbose", "input", "prompt":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info", "http", "data", "help":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "none", "disabled", "off", "silent":
		return zerolog.Disabled
	default:
		return def
	}
}

// minLevel returns the most verbose of the given levels, ignoring disabled ones.
// ok is false when every level is disabled.
func minLevel(levels ...Level) (lvl Level, ok bool) {
	lvl = zerolog.Disabled
	for _, l := range levels {
		if l == zerolog.Disabled {
			continue
		}
		if !ok || l < lvl {
			lvl = l
			ok = true
		}
	}
	return lvl, ok
}
