// Package observability owns the process-wide zap logger, following the
// same lazy-init pattern the teacher used for its HTTP server logger.
package observability

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"triagesim/config"
)

// Logger is the global logger instance.
var Logger *zap.Logger

// InitializeLogger sets up the logging configuration.
func InitializeLogger() {
	var cfg zap.Config

	if config.IsProduction() {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	var err error
	Logger, err = cfg.Build()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
}

// GetLogger retrieves the global logger, building it on first use.
func GetLogger() *zap.Logger {
	if Logger == nil {
		InitializeLogger()
	}
	return Logger
}

// RunLogger returns a child logger with runID bound to every entry it
// emits, so a run's worker-queue lifecycle (started, persisted, failed) can
// be grepped out of mixed output by run_id alone.
func RunLogger(runID string) *zap.SugaredLogger {
	return GetLogger().With(zap.String("run_id", runID)).Sugar()
}
