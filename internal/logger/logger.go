package logger

import (
	"fmt"
	"log/slog"
	"os"
)

// Logger wraps slog with the package/function chaining used across the
// codebase. Values are cheap to copy; each chaining call returns a new
// Logger so a shared base can be specialized per call site.
type Logger struct {
	logger *slog.Logger
}

var defaultHandler slog.Handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
	Level: slog.LevelInfo,
})

// SetHandler swaps the handler for all subsequently created loggers.
func SetHandler(handler slog.Handler) {
	defaultHandler = handler
}

func New(pkg string) Logger {
	return Logger{
		logger: slog.New(defaultHandler).With("package", pkg),
	}
}

func (l Logger) Function(name string) Logger {
	return Logger{logger: l.logger.With("function", name)}
}

func (l Logger) File(name string) Logger {
	return Logger{logger: l.logger.With("file", name)}
}

func (l Logger) With(args ...any) Logger {
	return Logger{logger: l.logger.With(args...)}
}

func (l Logger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

func (l Logger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

func (l Logger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

// Er logs an error without returning one, for paths where the failure is
// swallowed after logging.
func (l Logger) Er(msg string, err error, args ...any) {
	l.logger.Error(msg, append([]any{"error", err}, args...)...)
}

// Err logs and returns the error wrapped with the message so callers can
// `return log.Err(...)` in one step.
func (l Logger) Err(msg string, err error, args ...any) error {
	l.logger.Error(msg, append([]any{"error", err}, args...)...)
	return fmt.Errorf("%s: %w", msg, err)
}

// Error logs and returns a new error built from the message alone.
func (l Logger) Error(msg string, args ...any) error {
	l.logger.Error(msg, args...)
	return fmt.Errorf("%s", msg)
}

func (l Logger) ErrMsg(msg string) error {
	l.logger.Error(msg)
	return fmt.Errorf("%s", msg)
}
