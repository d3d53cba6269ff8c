package roulette

import (
	"slices"

	"github.com/shopspring/decimal"
)

// DefaultRecentSpins - сколько последних исходов показывать на табло
const DefaultRecentSpins = 24

// Streak - самая длинная серия одинаковых значений
type Streak struct {
	Color  Color `json:"color,omitempty"`
	Length int   `json:"length"`
}

// RunStats - описательная статистика по истории прогона
type RunStats struct {
	Spins        int                 `json:"spins"`
	ColorCounts  map[Color]int       `json:"color_counts"`
	Hits         map[Outcome]int     `json:"hits"`
	LongestColor Streak              `json:"longest_color"`
	Recent       []Outcome           `json:"recent"`
	FinalPnL     decimal.Decimal     `json:"final_pnl"`
	PeakPnL      decimal.Decimal     `json:"peak_pnl"`
	TroughPnL    decimal.Decimal     `json:"trough_pnl"`
	MaxDrawdown  decimal.Decimal     `json:"max_drawdown"`
	Wagered      decimal.Decimal     `json:"wagered"`
	RealizedEdge decimal.NullDecimal `json:"realized_edge"`
}

// LongestStreak ищет самую длинную серию подряд идущих равных элементов.
// При равной длине побеждает серия, встретившаяся раньше.
func LongestStreak[T comparable](items []T) (T, int) {
	var (
		best    T
		bestLen int
		cur     T
		curLen  int
	)
	for i, v := range items {
		if i > 0 && v == cur {
			curLen++
		} else {
			cur = v
			curLen = 1
		}
		if curLen > bestLen {
			best, bestLen = cur, curLen
		}
	}
	return best, bestLen
}

// Recent возвращает последние n исходов, начиная с самого свежего
func Recent(outcomes []Outcome, n int) []Outcome {
	if n > len(outcomes) {
		n = len(outcomes)
	}
	if n <= 0 {
		return []Outcome{}
	}
	out := slices.Clone(outcomes[len(outcomes)-n:])
	slices.Reverse(out)
	return out
}

// Analyze считает статистику прогона. Оборот берётся из ставок,
// записанных в каждом спине, а не из текущего ledger.
func Analyze(entries []HistoryEntry, recent int) RunStats {
	st := RunStats{
		Spins:       len(entries),
		ColorCounts: map[Color]int{Green: 0, Red: 0, Black: 0},
		Hits:        make(map[Outcome]int),
		FinalPnL:    decimal.Zero,
		PeakPnL:     decimal.Zero,
		TroughPnL:   decimal.Zero,
		MaxDrawdown: decimal.Zero,
		Wagered:     decimal.Zero,
	}

	colors := make([]Color, len(entries))
	outcomes := make([]Outcome, len(entries))

	// Пик считается от нулевой точки до первого спина
	peak := decimal.Zero
	for i, e := range entries {
		c := ColorOf(e.Outcome)
		colors[i] = c
		outcomes[i] = e.Outcome
		st.ColorCounts[c]++
		st.Hits[e.Outcome]++
		st.Wagered = st.Wagered.Add(e.Stake)

		if e.Cumulative.GreaterThan(st.PeakPnL) {
			st.PeakPnL = e.Cumulative
		}
		if e.Cumulative.LessThan(st.TroughPnL) {
			st.TroughPnL = e.Cumulative
		}
		if e.Cumulative.GreaterThan(peak) {
			peak = e.Cumulative
		}
		if dd := peak.Sub(e.Cumulative); dd.GreaterThan(st.MaxDrawdown) {
			st.MaxDrawdown = dd
		}
	}

	if n := len(entries); n > 0 {
		st.FinalPnL = entries[n-1].Cumulative
	}

	color, length := LongestStreak(colors)
	st.LongestColor = Streak{Color: color, Length: length}
	st.Recent = Recent(outcomes, recent)

	if st.Wagered.IsPositive() {
		st.RealizedEdge = decimal.NewNullDecimal(st.FinalPnL.Neg().Div(st.Wagered))
	}

	return st
}
