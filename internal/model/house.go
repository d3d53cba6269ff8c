package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// HouseState - сводная статистика казино по всем столам
type HouseState struct {
	TotalSpins      int
	TotalStaked     decimal.Decimal
	PlayerNet       decimal.Decimal
	RealizedEdge    decimal.NullDecimal
	TheoreticalEdge decimal.NullDecimal

	WindowSize   int
	WindowSpins  int
	WindowEdge   decimal.NullDecimal
	Drifting     bool
	DriftLog     []DriftLog
	LastUpdateAt time.Time
}

// DriftLog - запись о смене флага отклонения
type DriftLog struct {
	Timestamp  time.Time
	Drifting   bool
	Reason     string
	WindowEdge decimal.Decimal
	Expected   decimal.Decimal
}

// HouseSpin - вклад одного спина в статистику казино
type HouseSpin struct {
	Stake decimal.Decimal
	Net   decimal.Decimal
	Edge  decimal.Decimal
}
