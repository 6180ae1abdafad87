package gosimplex

import (
	"context"
	"fmt"
	"log/slog"
)

type Logger interface {
	Print(v ...interface{})
}

type noopLogger struct{}

func (noopLogger) Print(v ...interface{}) {}

type slogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger adapts a structured logger; solver messages are logged
// at debug level.
func NewSlogLogger(logger *slog.Logger) Logger {
	return slogLogger{logger: logger.With("component", "gosimplex")}
}

func (l slogLogger) Print(v ...interface{}) {
	l.logger.Log(context.Background(), slog.LevelDebug, fmt.Sprint(v...))
}
