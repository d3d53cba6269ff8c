package logger

import (
	"roulette_lab/internal/config/env"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New собирает логгер под окружение: цветной dev-вывод локально, JSON на dev/prod
func New(appEnv string) (*zap.Logger, error) {
	var cfg zap.Config

	switch appEnv {
	case env.EnvProd:
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	case env.EnvDev:
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
