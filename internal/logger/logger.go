package logger

import (
	"fmt"

	"dish-quiz/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "dish-quiz"

var (
	// log starts as a no-op so packages and tests can log before Initialize.
	log   = zap.NewNop()
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

// Initialize builds the global logger: JSON in production, console
// otherwise, both on stdout.
func Initialize(loggerCfg config.LoggerConfig) error {
	if err := SetLevel(loggerCfg.Level); err != nil {
		return err
	}

	zc := zap.NewDevelopmentConfig()
	if loggerCfg.Env == "production" {
		zc = zap.NewProductionConfig()
		zc.Sampling = nil
	}
	zc.Level = level
	zc.OutputPaths = []string{"stdout"}
	zc.ErrorOutputPaths = []string{"stderr"}
	zc.EncoderConfig.TimeKey = "timestamp"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	zc.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder

	l, err := zc.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	log = l.With(zap.String("service", serviceName))
	return nil
}

// SetLevel changes the level of the global logger at runtime. An empty
// level means info.
func SetLevel(lvl string) error {
	parsed := zapcore.InfoLevel
	if lvl != "" {
		if err := parsed.Set(lvl); err != nil {
			return fmt.Errorf("invalid log level %q: %w", lvl, err)
		}
	}
	level.SetLevel(parsed)
	return nil
}

// Get returns the global logger instance
func Get() *zap.Logger {
	return log
}

// Session returns the global logger tagged with a quiz session ID.
func Session(id string) *zap.Logger {
	return log.With(zap.String("session_id", id))
}

// Replace swaps the global logger, returning a func that restores it.
func Replace(l *zap.Logger) (restore func()) {
	prev := log
	log = l
	return func() { log = prev }
}

// Sync flushes any buffered log entries
func Sync() error {
	return log.Sync()
}
