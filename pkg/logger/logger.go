package logger

import (
	"go.uber.org/zap"
)

var global = zap.NewNop()

// SetupLogger builds the process-wide zap logger: human-readable in local
// envs, JSON in everything else. The returned logger is also installed as
// the package-level default used by the helpers below.
func SetupLogger(env string) *zap.Logger {
	var (
		l   *zap.Logger
		err error
	)

	switch env {
	case "local", "dev":
		cfg := zap.NewDevelopmentConfig()
		l, err = cfg.Build()
	default:
		l, err = zap.NewProduction()
	}
	if err != nil {
		l = zap.NewNop()
	}

	global = l

	return l
}

func Logger() *zap.Logger {
	return global
}

func Debug(msg string, fields ...zap.Field) {
	global.Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	global.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	global.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	global.Error(msg, fields...)
}
