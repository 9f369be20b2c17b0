package flashlog

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with flashlog-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithRegion adds a region name field to the logger.
func (l *Logger) WithRegion(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("region", name),
	}
}

// LogRecovery logs the outcome of the open-time recovery scan.
func (l *Logger) LogRecovery(slotCount, inUse int, highestSeq uint32, err error) {
	if err != nil {
		l.Error("recovery scan failed",
			"slots", slotCount,
			"error", err,
		)
	} else {
		l.Info("recovery scan completed",
			"slots", slotCount,
			"in_use", inUse,
			"highest_seq", highestSeq,
		)
	}
}

// LogReinitialize logs a full region reinitialization.
// All prior entries are destroyed when this happens.
func (l *Logger) LogReinitialize(payloadSize, slotCount int) {
	l.Warn("region reinitialized, prior entries erased",
		"payload_size", payloadSize,
		"slots", slotCount,
	)
}

// LogAppend logs an append operation.
func (l *Logger) LogAppend(seq uint32, slot int, err error) {
	if err != nil {
		l.Error("append failed",
			"slot", slot,
			"error", err,
		)
	} else {
		l.Debug("append completed",
			"seq", seq,
			"slot", slot,
		)
	}
}

// LogEvict logs the bulk eviction that makes room in a full ring.
func (l *Logger) LogEvict(evicted, newOldest int) {
	l.Debug("evicted oldest erase unit",
		"entries", evicted,
		"new_oldest", newOldest,
	)
}
