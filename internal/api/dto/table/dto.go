package table

import (
	"time"

	"roulette_lab/internal/roulette"

	"github.com/shopspring/decimal"
)

type CreateTableRequest struct {
	Variant string `json:"variant" validate:"omitempty,max=16"` // EU или US, пусто - вариант по умолчанию
}

type BetRequest struct {
	SpotID string          `json:"spot_id" validate:"required,max=32"` // ID спота, например split:1-2
	Amount decimal.Decimal `json:"amount"`                             // Номинал фишки
}

type SetVariantRequest struct {
	Variant string `json:"variant" validate:"required,max=16"`
}

type SimulateRequest struct {
	Spins int `json:"spins"` // Количество спинов, приводится к [1, max]
}

type BetResponse struct {
	SpotID string          `json:"spot_id"`
	Kind   string          `json:"kind"`
	Label  string          `json:"label"`
	Payout int             `json:"payout"`
	Stake  decimal.Decimal `json:"stake"`
}

type TableResponse struct {
	ID         string                  `json:"id"`
	Variant    string                  `json:"variant"`
	Bets       []BetResponse           `json:"bets"`
	TotalStake decimal.Decimal         `json:"total_stake"`
	History    []roulette.HistoryEntry `json:"history"`
	PnL        decimal.Decimal         `json:"pnl"`
	HouseEdge  decimal.Decimal         `json:"house_edge"`
	CreatedAt  time.Time               `json:"created_at"`
	UpdatedAt  time.Time               `json:"updated_at"`
}

type SpinResponse struct {
	Outcome    string          `json:"outcome"`
	Color      string          `json:"color"`
	Stake      decimal.Decimal `json:"stake"`
	Net        decimal.Decimal `json:"net"`
	Cumulative decimal.Decimal `json:"cumulative"`
	Winners    []BetResponse   `json:"winners"`
	Table      TableResponse   `json:"table"`
}

type SimulateResponse struct {
	Spins int               `json:"spins"`
	PnL   decimal.Decimal   `json:"pnl"`
	Stats roulette.RunStats `json:"stats"`
	Table TableResponse     `json:"table"`
}

type VariantResponse struct {
	Dropped []string      `json:"dropped"` // Ставки, снятые при смене колеса
	Table   TableResponse `json:"table"`
}

type StatsResponse struct {
	roulette.RunStats
	StakePerSpin    decimal.Decimal `json:"stake_per_spin"`
	TheoreticalEdge decimal.Decimal `json:"theoretical_edge"`
}

type CatalogResponse struct {
	Variant   string            `json:"variant"`
	HouseEdge decimal.Decimal   `json:"house_edge"`
	Chips     []decimal.Decimal `json:"chips"`
	Spots     []roulette.Spot   `json:"spots"`
}

type DriftLogResponse struct {
	Timestamp  time.Time       `json:"timestamp"`
	Drifting   bool            `json:"drifting"`
	Reason     string          `json:"reason"`
	WindowEdge decimal.Decimal `json:"window_edge"`
	Expected   decimal.Decimal `json:"expected"`
}

type HouseStatsResponse struct {
	TotalSpins      int                 `json:"total_spins"`
	TotalStaked     decimal.Decimal     `json:"total_staked"`
	PlayerNet       decimal.Decimal     `json:"player_net"`
	RealizedEdge    decimal.NullDecimal `json:"realized_edge"`
	TheoreticalEdge decimal.NullDecimal `json:"theoretical_edge"`
	WindowSize      int                 `json:"window_size"`
	WindowSpins     int                 `json:"window_spins"`
	WindowEdge      decimal.NullDecimal `json:"window_edge"`
	Drifting        bool                `json:"drifting"`
	DriftLog        []DriftLogResponse  `json:"drift_log"`
	LastUpdateAt    *time.Time          `json:"last_update_at,omitempty"`
}
