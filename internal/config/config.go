package config

import (
	"roulette_lab/internal/roulette"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

// LabConfig - настройки игрового стола
type LabConfig interface {
	Chips() []decimal.Decimal
	MaxSimulationSpins() int
	DefaultVariant() roulette.Variant
	RecentSpins() int
}

// HouseConfig - настройки сводной статистики казино
type HouseConfig interface {
	WindowSize() int
	EdgeTolerance() decimal.Decimal
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	DSN() string
	// Pool - разобранная конфигурация пула, каждый вызов возвращает копию
	Pool() *pgxpool.Config
}

type LogConfig interface {
	Env() string
}
