package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Game - тип игры в журнале сессий
type Game string

const (
	GameRoulette  Game = "Roulette"
	GameBlackjack Game = "Blackjack"
	GameSlots     Game = "Slots"
	GamePoker     Game = "Poker"
	GameOther     Game = "Autre"
)

var Games = []Game{GameRoulette, GameBlackjack, GameSlots, GamePoker, GameOther}

func (g Game) Valid() bool {
	for _, v := range Games {
		if g == v {
			return true
		}
	}
	return false
}

// DateLayout - формат даты сессии
const DateLayout = "2006-01-02"

// JournalSession - запись о реальной игровой сессии
type JournalSession struct {
	ID              uuid.UUID
	Date            time.Time
	Venue           string
	Game            Game
	BuyIn           decimal.Decimal
	CashOut         decimal.Decimal
	DurationMinutes int
	Notes           string
	CreatedAt       time.Time
}

// Net - результат сессии: выход минус вход
func (s JournalSession) Net() decimal.Decimal {
	return s.CashOut.Sub(s.BuyIn)
}

// JournalFilter - фильтр списка сессий, пустой Game означает все игры
type JournalFilter struct {
	Game Game
}

// JournalSummary - итоги по журналу
type JournalSummary struct {
	Sessions     int
	TotalBuyIn   decimal.Decimal
	TotalCashOut decimal.Decimal
	Net          decimal.Decimal
	TotalMinutes int
	NetPerHour   decimal.NullDecimal
}
