package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates a zap logger.
// level: "debug", "info", "warn", "error" (default "info")
// format: "json" or "console" (default "json")
func NewLogger(level, format, serviceName string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	var config zap.Config
	if format == "console" {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		config.OutputPaths = []string{"stdout"}
		config.ErrorOutputPaths = []string{"stderr"}
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel)

	baseLogger, err := config.Build()
	if err != nil {
		return nil, err
	}

	if serviceName != "" {
		baseLogger = baseLogger.With(zap.String("service_name", serviceName))
	}
	if hostname, err := os.Hostname(); err == nil && hostname != "" {
		baseLogger = baseLogger.With(zap.String("hostname", hostname))
	}

	return baseLogger, nil
}
