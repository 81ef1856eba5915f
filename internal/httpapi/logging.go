package httpapi

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// zlog is the structured logger of the HTTP layer. Discards until SetLogger is called.
var zlog = zerolog.Nop()

// SetLogger installs a structured logger used by the HTTP layer.
func SetLogger(l zerolog.Logger) { zlog = l }

// LogLevel controls per-request logging behavior.
type LogLevel int

const (
	LevelOff LogLevel = iota
	LevelError
	LevelInfo
	LevelDebug
)

func parseLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "disabled", "":
		return LevelOff
	case "error", "fatal", "panic":
		return LevelError
	case "info", "warn":
		return LevelInfo
	case "debug", "trace":
		return LevelDebug
	default:
		return LevelInfo
	}
}

// defaultLogLevel applies when a request carries no override.
var defaultLogLevel = LevelInfo

// SetRequestLogLevel sets the default per-request log level (off|error|info|debug).
func SetRequestLogLevel(s string) { defaultLogLevel = parseLevel(s) }

func requestLogLevel(r *http.Request) LogLevel {
	// Per-request overrides
	if v := r.URL.Query().Get("log"); v != "" {
		if v == "1" {
			return LevelDebug
		}
		return parseLevel(v)
	}
	if v := r.Header.Get("X-Log-Level"); v != "" {
		return parseLevel(v)
	}
	return defaultLogLevel
}

// requestLogger returns zlog tagged with the request id. At LevelDebug the
// logger is lowered to debug so the classifier's score dump is emitted too.
func requestLogger(r *http.Request, lvl LogLevel) zerolog.Logger {
	l := zlog
	if lvl >= LevelDebug {
		l = l.Level(zerolog.DebugLevel)
	}
	if rid := middleware.GetReqID(r.Context()); rid != "" {
		l = l.With().Str("request_id", rid).Logger()
	}
	return l
}
