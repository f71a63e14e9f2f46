package clog

import (
	"fmt"
	"io"
	"sync"

	"github.com/apex/log"
)

// ContextLogger routes log entries to a logger chosen by a named context. Contexts
// without their own logger fall back to the global logger, tagged with ctx=<name>.
type ContextLogger struct {
	GlobalLogger   *log.Logger
	ContextLoggers sync.Map
}

const (
	GlobalLoggerCtx = "global"
	GeneratorCtx    = "generator"
	APICtx          = "api"
	QueryCtx        = "query"
)

func NewContextLogger(globalLoggerWriter io.WriteCloser) *ContextLogger {
	return &ContextLogger{
		GlobalLogger: &log.Logger{
			Handler: NewHandler(globalLoggerWriter),
			Level:   log.InfoLevel,
		},
	}
}

func (l *ContextLogger) AddLoggingContext(ctx string, w io.WriteCloser) {
	logger := &log.Logger{
		Handler: NewHandler(w),
		Level:   l.GlobalLogger.Level,
	}
	l.ContextLoggers.Store(ctx, logger)
}

func (l *ContextLogger) RemoveLoggingContext(ctx string) {
	logger, ok := l.ContextLoggers.LoadAndDelete(ctx)
	if !ok {
		return
	}

	if handler := handlerOf(castToLogger(logger)); handler != nil {
		handler.Close()
	}
}

func (l *ContextLogger) SetLevel(ctx string, level log.Level) {
	switch ctx {
	case GlobalLoggerCtx:
		l.GlobalLogger.Level = level
	default:
		if clogger := l.getContextLogger(ctx); clogger != nil {
			clogger.Level = level
		}
	}
}

func (l *ContextLogger) SetLevelFromString(ctx, s string) error {
	level, err := log.ParseLevel(s)
	if err != nil {
		return err
	}

	l.SetLevel(ctx, level)

	return nil
}

func (l *ContextLogger) SetOutput(ctx string, w io.WriteCloser) error {
	var handler *Handler
	if ctx == GlobalLoggerCtx {
		handler = handlerOf(l.GlobalLogger)
	} else {
		handler = handlerOf(l.getContextLogger(ctx))
	}

	if handler == nil {
		return fmt.Errorf("no such context %s", ctx)
	}

	handler.SetOutput(w)
	return nil
}

func (l *ContextLogger) UsingCtx(ctx string) *log.Entry {
	logger := l.getContextLogger(ctx)
	if logger == nil {
		return l.GlobalLogger.WithField("ctx", ctx)
	}
	return logger.WithField("ctx", ctx)
}

func (l *ContextLogger) Global() *log.Entry {
	return l.UsingCtx(GlobalLoggerCtx)
}

func (l *ContextLogger) getContextLogger(ctx string) *log.Logger {
	logger, ok := l.ContextLoggers.Load(ctx)
	if !ok {
		return nil
	}

	return castToLogger(logger)
}

func castToLogger(logger interface{}) *log.Logger {
	clogger, ok := logger.(*log.Logger)
	if !ok {
		return nil
	}

	return clogger
}

func handlerOf(logger *log.Logger) *Handler {
	if logger == nil {
		return nil
	}

	h, ok := logger.Handler.(*Handler)
	if !ok {
		return nil
	}

	return h
}
