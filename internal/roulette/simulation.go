package roulette

import (
	"slices"

	"github.com/shopspring/decimal"
)

// MaxSimulationSpins - верхняя граница пакетной симуляции
const MaxSimulationSpins = 20000

// HistoryEntry - один спин в истории прогона
type HistoryEntry struct {
	Outcome    Outcome         `json:"outcome"`
	Stake      decimal.Decimal `json:"stake"`
	Net        decimal.Decimal `json:"net"`
	Cumulative decimal.Decimal `json:"cumulative"`
}

// Run - история спинов с накопленным P&L.
// Переходы: Reset очищает, SpinOnce добавляет одну запись, Simulate заменяет всё.
type Run struct {
	entries []HistoryEntry
}

func NewRun() *Run {
	return &Run{}
}

// ClampSpins приводит запрошенное число спинов к [1, limit]
func ClampSpins(n, limit int) int {
	if limit < 1 {
		limit = MaxSimulationSpins
	}
	if n < 1 {
		return 1
	}
	if n > limit {
		return limit
	}
	return n
}

// SpinOnce бросает шарик, считает результат и дописывает его в историю
func (r *Run) SpinOnce(wheel *Wheel, ledger *Ledger) HistoryEntry {
	outcome := wheel.Draw()
	net := Resolve(outcome, ledger)

	entry := HistoryEntry{
		Outcome:    outcome,
		Stake:      ledger.TotalStake(),
		Net:        net,
		Cumulative: r.PnL().Add(net),
	}
	r.entries = append(r.entries, entry)
	return entry
}

// Simulate прогоняет n независимых спинов с неизменным ledger и заменяет
// историю новой серией. n вне [1, MaxSimulationSpins] приводится к границе.
// Возвращает фактическое число спинов.
func (r *Run) Simulate(n int, wheel *Wheel, ledger *Ledger) int {
	return r.SimulateUpTo(n, MaxSimulationSpins, wheel, ledger)
}

// SimulateUpTo - Simulate с настраиваемой верхней границей
func (r *Run) SimulateUpTo(n, limit int, wheel *Wheel, ledger *Ledger) int {
	n = ClampSpins(n, limit)

	entries := make([]HistoryEntry, n)
	stake := ledger.TotalStake()
	cum := decimal.Zero
	for i := range entries {
		outcome := wheel.Draw()
		net := Resolve(outcome, ledger)
		cum = cum.Add(net)
		entries[i] = HistoryEntry{Outcome: outcome, Stake: stake, Net: net, Cumulative: cum}
	}

	r.entries = entries
	return n
}

func (r *Run) Reset() {
	r.entries = nil
}

func (r *Run) Len() int {
	return len(r.entries)
}

// Entries возвращает копию истории
func (r *Run) Entries() []HistoryEntry {
	return slices.Clone(r.entries)
}

// Outcomes - только исходы, в порядке выпадения
func (r *Run) Outcomes() []Outcome {
	out := make([]Outcome, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Outcome
	}
	return out
}

// PnL - накопленный результат последнего спина, ноль для пустой истории
func (r *Run) PnL() decimal.Decimal {
	if len(r.entries) == 0 {
		return decimal.Zero
	}
	return r.entries[len(r.entries)-1].Cumulative
}

// RunSnapshot - сериализуемая история прогона
type RunSnapshot struct {
	Entries []HistoryEntry `json:"entries"`
}

func (r *Run) Snapshot() RunSnapshot {
	return RunSnapshot{Entries: r.Entries()}
}

// RestoreRun восстанавливает историю из снимка. Накопленный P&L
// пересчитывается из Net, чтобы кривая всегда была согласована.
func RestoreRun(s RunSnapshot) *Run {
	r := &Run{entries: make([]HistoryEntry, len(s.Entries))}
	cum := decimal.Zero
	for i, e := range s.Entries {
		cum = cum.Add(e.Net)
		r.entries[i] = HistoryEntry{Outcome: e.Outcome, Stake: e.Stake, Net: e.Net, Cumulative: cum}
	}
	return r
}
