// Package logger is an adaptation wrapper that simplifies logging in the main
// code whilst also allowing a pluggable test logger.
package logger

import (
	"io"
	"log/slog"
	"os"

	sloghttp "github.com/samber/slog-http"
)

// Logger is a global logger that is able to handle concurrent logging safely.
// It discards everything until Create is called.
var Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Exit terminates the program; it is pluggable for testing.
var Exit = os.Exit

// Create sets up the global logger to write text to w.
func Create(w io.Writer, opts *slog.HandlerOptions) {
	Logger = slog.New(slog.NewTextHandler(w, opts))
}

// HttpLogConfig is the request logging configuration used by the webserver.
func HttpLogConfig() sloghttp.Config {
	return sloghttp.Config{
		DefaultLevel:     slog.LevelInfo,
		ClientErrorLevel: slog.LevelWarn,
		ServerErrorLevel: slog.LevelError,
		WithUserAgent:    true,
	}
}

func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}
