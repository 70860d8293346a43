package utils

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// InitLogger configures the global zerolog logger. format is "json" or "console".
func InitLogger(level, format string) zerolog.Logger {
	return InitLoggerWithWriter(os.Stdout, level, format)
}

func InitLoggerWithWriter(w io.Writer, level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	var l zerolog.Logger
	if strings.EqualFold(format, "json") {
		l = zerolog.New(w).With().Timestamp().Logger().Level(lvl)
	} else {
		l = zerolog.New(zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger().Level(lvl)
	}

	zlog.Logger = l
	return l
}

// LogEvent writes one service-level event with module/action/request_id.
// Keep message short and free of credentials.
func LogEvent(requestID, module, action, message string) {
	zlog.Info().
		Str("module", strings.ToLower(module)).
		Str("action", action).
		Str("request_id", strings.TrimSpace(requestID)).
		Msg(message)
}

// LogError is LogEvent at error level with the cause attached.
func LogError(requestID, module, action string, err error) {
	zlog.Error().
		Err(err).
		Str("module", strings.ToLower(module)).
		Str("action", action).
		Str("request_id", strings.TrimSpace(requestID)).
		Msg(action + " failed")
}
