package roulette

import (
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/shopspring/decimal"
)

// Variant - тип колеса
type Variant string

const (
	European Variant = "EU"
	American Variant = "US"
)

// Valid сообщает, известен ли вариант колеса
func (v Variant) Valid() bool {
	return v == European || v == American
}

// ParseVariant разбирает вариант колеса из строки запроса
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case European, "eu", "european":
		return European, nil
	case American, "us", "american":
		return American, nil
	}
	return "", fmt.Errorf("unknown wheel variant %q", s)
}

// Size - количество ячеек на колесе
func (v Variant) Size() int {
	switch v {
	case European:
		return 37
	case American:
		return 38
	}
	panic("roulette: unknown variant " + string(v))
}

// HouseEdge - теоретическое преимущество казино (доля зелёных ячеек)
func (v Variant) HouseEdge() decimal.Decimal {
	greens := int64(v.Size() - 36)
	return decimal.NewFromInt(greens).Div(decimal.NewFromInt(int64(v.Size())))
}

// Outcome - выпавшая ячейка. 0..36, DoubleZero только на американском колесе.
type Outcome int8

// DoubleZero - ячейка "00"
const DoubleZero Outcome = -1

func (o Outcome) String() string {
	if o == DoubleZero {
		return "00"
	}
	return strconv.Itoa(int(o))
}

// ParseOutcome разбирает "0".."36" и "00"
func ParseOutcome(s string) (Outcome, error) {
	if s == "00" {
		return DoubleZero, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 36 {
		return 0, fmt.Errorf("invalid outcome %q", s)
	}
	return Outcome(n), nil
}

// MarshalText кодирует ячейку строкой, чтобы "00" не путалась с 0
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Outcome) UnmarshalText(b []byte) error {
	v, err := ParseOutcome(string(b))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// In сообщает, существует ли ячейка на колесе варианта v
func (o Outcome) In(v Variant) bool {
	if o == DoubleZero {
		return v == American
	}
	return o >= 0 && o <= 36
}

// bit - позиция ячейки в маске покрытия спота
func (o Outcome) bit() uint64 {
	if o == DoubleZero {
		return 1 << 37
	}
	return 1 << uint(o)
}

type Color string

const (
	Green Color = "green"
	Red   Color = "red"
	Black Color = "black"
)

var redNumbers = [37]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true, 14: true, 16: true, 18: true,
	19: true, 21: true, 23: true, 25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

// ColorOf возвращает цвет ячейки
func ColorOf(o Outcome) Color {
	if o == 0 || o == DoubleZero {
		return Green
	}
	if redNumbers[o] {
		return Red
	}
	return Black
}

// Domain возвращает все ячейки колеса: 0, затем 00 (для US), затем 1..36
func Domain(v Variant) []Outcome {
	out := make([]Outcome, 0, v.Size())
	out = append(out, 0)
	if v == American {
		out = append(out, DoubleZero)
	}
	for n := 1; n <= 36; n++ {
		out = append(out, Outcome(n))
	}
	return out
}

// Wheel выдаёт независимые равновероятные ячейки.
// Не потокобезопасен: у каждого стола своё колесо.
type Wheel struct {
	variant Variant
	domain  []Outcome
	rng     *rand.Rand
}

// NewWheel создаёт колесо с генератором, засеянным из runtime
func NewWheel(v Variant) *Wheel {
	return NewSeededWheel(v, rand.Uint64(), rand.Uint64())
}

// NewSeededWheel создаёт колесо с детерминированным генератором PCG
func NewSeededWheel(v Variant, seed1, seed2 uint64) *Wheel {
	if !v.Valid() {
		panic("roulette: unknown variant " + string(v))
	}
	return &Wheel{
		variant: v,
		domain:  Domain(v),
		rng:     rand.New(rand.NewPCG(seed1, seed2)),
	}
}

func (w *Wheel) Variant() Variant {
	return w.variant
}

// Draw - один бросок шарика
func (w *Wheel) Draw() Outcome {
	return w.domain[w.rng.IntN(len(w.domain))]
}
