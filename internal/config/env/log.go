package env

import (
	"fmt"
	"os"

	"roulette_lab/internal/config"
)

const appEnvName = "APP_ENV"

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

type logConfig struct {
	env string
}

// NewLogConfig читает APP_ENV, по умолчанию local
func NewLogConfig() (config.LogConfig, error) {
	env := os.Getenv(appEnvName)
	switch env {
	case "":
		env = EnvLocal
	case EnvLocal, EnvDev, EnvProd:
	default:
		return nil, fmt.Errorf("unknown %s %q", appEnvName, env)
	}

	return &logConfig{env: env}, nil
}

func (cfg *logConfig) Env() string {
	return cfg.env
}
