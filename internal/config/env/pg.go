package env

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"roulette_lab/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	dsnName      = "PG_DSN"
	maxConnsName = "PG_MAX_CONNS"
)

type pgConfig struct {
	dsn  string
	pool *pgxpool.Config
}

// NewPGConfig читает DSN и сразу разбирает его, чтобы ошибка в строке
// подключения всплыла при старте, а не на первом запросе
func NewPGConfig() (config.PGConfig, error) {
	const op = "env.NewPGConfig"

	dsn := os.Getenv(dsnName)
	if len(dsn) == 0 {
		return nil, errors.New("pg dsn not found")
	}

	pool, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid %s: %w", op, dsnName, err)
	}

	if raw := os.Getenv(maxConnsName); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%s: %s must be a positive integer, got %q", op, maxConnsName, raw)
		}
		pool.MaxConns = int32(n)
	}

	return &pgConfig{
		dsn:  dsn,
		pool: pool,
	}, nil
}

func (cfg *pgConfig) DSN() string {
	return cfg.dsn
}

func (cfg *pgConfig) Pool() *pgxpool.Config {
	return cfg.pool.Copy()
}
