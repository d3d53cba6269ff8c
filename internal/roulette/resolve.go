package roulette

import "github.com/shopspring/decimal"

// SpinResult - исход спина и чистый результат по всем ставкам
type SpinResult struct {
	Outcome Outcome         `json:"outcome"`
	Net     decimal.Decimal `json:"net"`
}

// Resolve считает чистый результат спина: выигравшая ставка приносит
// stake*payout, проигравшая теряет stake. Ledger не изменяется.
func Resolve(outcome Outcome, ledger *Ledger) decimal.Decimal {
	net := decimal.Zero
	for id, stake := range ledger.bets {
		spot, ok := ledger.catalog.Lookup(id)
		if !ok {
			continue
		}
		if spot.Covers(outcome) {
			net = net.Add(stake.Mul(decimal.NewFromInt(int64(spot.Payout))))
		} else {
			net = net.Sub(stake)
		}
	}
	return net
}

// Winners возвращает выигравшие ставки для исхода, в порядке каталога
func Winners(outcome Outcome, ledger *Ledger) []Bet {
	var out []Bet
	for _, b := range ledger.Bets() {
		if b.Spot.Covers(outcome) {
			out = append(out, b)
		}
	}
	return out
}
