package roulette

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Bet - ставка на спот
type Bet struct {
	Spot  *Spot
	Stake decimal.Decimal
}

// Ledger - ставки на следующий спин, по одной записи на спот.
// Нулевые ставки не хранятся. Принадлежит одному владельцу, без блокировок.
type Ledger struct {
	catalog *Catalog
	bets    map[string]decimal.Decimal
}

func NewLedger(catalog *Catalog) *Ledger {
	return &Ledger{
		catalog: catalog,
		bets:    make(map[string]decimal.Decimal),
	}
}

func (l *Ledger) Catalog() *Catalog {
	return l.catalog
}

// Place добавляет amount к ставке на спот. Неизвестный спот или
// неположительная сумма игнорируются. Возвращает true, если ставка изменилась.
func (l *Ledger) Place(spotID string, amount decimal.Decimal) bool {
	if !amount.IsPositive() {
		return false
	}
	if _, ok := l.catalog.Lookup(spotID); !ok {
		return false
	}

	l.bets[spotID] = l.bets[spotID].Add(amount)
	l.checkInvariant()
	return true
}

// Remove уменьшает ставку на amount, но не ниже нуля.
// Ставка, дошедшая до нуля, удаляется.
func (l *Ledger) Remove(spotID string, amount decimal.Decimal) bool {
	if !amount.IsPositive() {
		return false
	}
	stake, ok := l.bets[spotID]
	if !ok {
		return false
	}

	next := stake.Sub(amount)
	if next.IsPositive() {
		l.bets[spotID] = next
	} else {
		delete(l.bets, spotID)
	}
	l.checkInvariant()
	return true
}

func (l *Ledger) Clear() {
	clear(l.bets)
}

// Stake - текущая ставка на спот (ноль, если ставки нет)
func (l *Ledger) Stake(spotID string) decimal.Decimal {
	return l.bets[spotID]
}

func (l *Ledger) Len() int {
	return len(l.bets)
}

func (l *Ledger) IsEmpty() bool {
	return len(l.bets) == 0
}

// TotalStake - сумма всех ставок на спин
func (l *Ledger) TotalStake() decimal.Decimal {
	total := decimal.Zero
	for _, stake := range l.bets {
		total = total.Add(stake)
	}
	return total
}

// Bets возвращает ставки в порядке каталога
func (l *Ledger) Bets() []Bet {
	out := make([]Bet, 0, len(l.bets))
	for id, stake := range l.bets {
		spot, _ := l.catalog.Lookup(id)
		out = append(out, Bet{Spot: spot, Stake: stake})
	}
	slices.SortFunc(out, func(a, b Bet) int {
		return a.Spot.pos - b.Spot.pos
	})
	return out
}

// Rebind переключает ledger на каталог другого варианта колеса.
// Ставки на споты, которых нет в новом каталоге, снимаются и возвращаются.
func (l *Ledger) Rebind(catalog *Catalog) []string {
	var dropped []string
	for id := range l.bets {
		if _, ok := catalog.Lookup(id); !ok {
			dropped = append(dropped, id)
			delete(l.bets, id)
		}
	}
	slices.Sort(dropped)
	l.catalog = catalog
	return dropped
}

// checkInvariant паникует, если в ledger осталась нулевая или отрицательная ставка
func (l *Ledger) checkInvariant() {
	for id, stake := range l.bets {
		if !stake.IsPositive() {
			panic("roulette: non-positive stake persisted for " + id)
		}
	}
}

// LedgerEntry - запись ставки для хранения вне движка
type LedgerEntry struct {
	SpotID string          `json:"spot_id"`
	Stake  decimal.Decimal `json:"stake"`
}

// LedgerSnapshot - сериализуемое состояние ledger
type LedgerSnapshot struct {
	Variant Variant       `json:"variant"`
	Entries []LedgerEntry `json:"entries"`
}

// Snapshot возвращает ставки в порядке каталога
func (l *Ledger) Snapshot() LedgerSnapshot {
	bets := l.Bets()
	entries := make([]LedgerEntry, len(bets))
	for i, b := range bets {
		entries[i] = LedgerEntry{SpotID: b.Spot.ID, Stake: b.Stake}
	}
	return LedgerSnapshot{Variant: l.catalog.Variant(), Entries: entries}
}

// RestoreLedger восстанавливает ledger из снимка. Записи с неизвестным
// спотом или неположительной ставкой пропускаются, повторы складываются.
func RestoreLedger(s LedgerSnapshot) *Ledger {
	v := s.Variant
	if !v.Valid() {
		v = European
	}
	l := NewLedger(CatalogFor(v))
	for _, e := range s.Entries {
		l.Place(e.SpotID, e.Stake)
	}
	return l
}
