package logger

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

var globalLogger = zap.NewNop()

// SetupLogger builds the application logger for the given environment and
// installs it as the package global used by HTTP middleware.
func SetupLogger(env string) *zap.Logger {
	var (
		l   *zap.Logger
		err error
	)

	switch env {
	case envLocal, envDev:
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		l, err = cfg.Build()
	case envProd:
		l, err = zap.NewProduction()
	default:
		l, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("cannot build logger: %s", err)
	}

	globalLogger = l

	return l
}

// Logger returns the logger installed by SetupLogger.
func Logger() *zap.Logger {
	return globalLogger
}
