package model

import (
	"time"

	"roulette_lab/internal/roulette"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Table - сохраняемое состояние игрового стола
type Table struct {
	ID        uuid.UUID
	Variant   roulette.Variant
	Ledger    roulette.LedgerSnapshot
	History   roulette.RunSnapshot
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableView - стол в том виде, в каком его видит игрок
type TableView struct {
	ID         uuid.UUID
	Variant    roulette.Variant
	Bets       []BetView
	TotalStake decimal.Decimal
	History    []roulette.HistoryEntry
	PnL        decimal.Decimal
	HouseEdge  decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type BetView struct {
	SpotID string
	Kind   roulette.Kind
	Label  string
	Payout int
	Stake  decimal.Decimal
}

// SpinOutcome - результат одного спина
type SpinOutcome struct {
	Entry   roulette.HistoryEntry
	Color   roulette.Color
	Winners []BetView
	Table   TableView
}

// SimulationResult - итог пакетной симуляции
type SimulationResult struct {
	Spins int
	PnL   decimal.Decimal
	Stats roulette.RunStats
	Table TableView
}

// VariantChange - стол после смены колеса и снятые ставки
type VariantChange struct {
	Table   TableView
	Dropped []string
}

// TableStats - статистика по истории стола
type TableStats struct {
	roulette.RunStats
	StakePerSpin    decimal.Decimal
	TheoreticalEdge decimal.Decimal
}
