package journal

import (
	"github.com/shopspring/decimal"
)

type SessionRequest struct {
	Date            string          `json:"date" validate:"required,datetime=2006-01-02"`
	Venue           string          `json:"venue" validate:"max=128"`
	Game            string          `json:"game" validate:"required,oneof=Roulette Blackjack Slots Poker Autre"`
	BuyIn           decimal.Decimal `json:"buy_in"`
	CashOut         decimal.Decimal `json:"cash_out"`
	DurationMinutes int             `json:"duration_minutes" validate:"gte=0,lte=10080"`
	Notes           string          `json:"notes" validate:"max=2000"`
}

type SessionResponse struct {
	ID              string          `json:"id"`
	Date            string          `json:"date"`
	Venue           string          `json:"venue"`
	Game            string          `json:"game"`
	BuyIn           decimal.Decimal `json:"buy_in"`
	CashOut         decimal.Decimal `json:"cash_out"`
	Net             decimal.Decimal `json:"net"`
	DurationMinutes int             `json:"duration_minutes"`
	Notes           string          `json:"notes"`
}

type SummaryResponse struct {
	Sessions     int                 `json:"sessions"`
	TotalBuyIn   decimal.Decimal     `json:"total_buy_in"`
	TotalCashOut decimal.Decimal     `json:"total_cash_out"`
	Net          decimal.Decimal     `json:"net"`
	TotalMinutes int                 `json:"total_minutes"`
	NetPerHour   decimal.NullDecimal `json:"net_per_hour"`
}

type ImportResponse struct {
	Imported int `json:"imported"`
}
