package util

import (
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger atomic.Pointer[zap.Logger]

// InitLogger initializes the global logger. An empty level keeps the
// default for the environment.
func InitLogger(env, level string) error {
	var config zap.Config

	if env == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if level != "" {
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return err
		}
		config.Level = lvl
	}

	built, err := config.Build()
	if err != nil {
		return err
	}

	named := built.Named("bakery")
	logger.Store(named)
	zap.ReplaceGlobals(named)
	return nil
}

// GetLogger returns the global logger, falling back to a development logger
// when InitLogger has not run. Safe for concurrent use.
func GetLogger() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	fallback, err := zap.NewDevelopment()
	if err != nil {
		fallback = zap.NewNop()
	}
	logger.CompareAndSwap(nil, fallback)
	return logger.Load()
}

// SyncLogger flushes any buffered log entries
func SyncLogger() {
	if l := logger.Load(); l != nil {
		_ = l.Sync()
	}
}
