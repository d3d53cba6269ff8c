package roulette

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// Kind - тип ставки
type Kind string

const (
	KindStraight  Kind = "straight"
	KindSplit     Kind = "split"
	KindCorner    Kind = "corner"
	KindStreet    Kind = "street"
	KindSixLine   Kind = "sixline"
	KindDozen     Kind = "dozen"
	KindColumn    Kind = "column"
	KindEvenMoney Kind = "evenmoney"
)

// Payout - выплата к 1 для каждого типа ставки
func (k Kind) Payout() int {
	switch k {
	case KindStraight:
		return 35
	case KindSplit:
		return 17
	case KindStreet:
		return 11
	case KindCorner:
		return 8
	case KindSixLine:
		return 5
	case KindDozen, KindColumn:
		return 2
	case KindEvenMoney:
		return 1
	}
	panic("roulette: unknown spot kind " + string(k))
}

const (
	gridRows = 3
	gridCols = 12
)

// numAt - число в ячейке сетки. Row 0: 3,6..36; row 1: 2,5..35; row 2: 1,4..34
func numAt(row, col int) int {
	return 3*col + 3 - row
}

// Spot - место на сукне, куда можно поставить фишку
type Spot struct {
	ID      string    `json:"id"`
	Kind    Kind      `json:"kind"`
	Label   string    `json:"label"`
	Numbers []Outcome `json:"numbers"`
	Payout  int       `json:"payout"`

	mask uint64
	pos  int
}

// Covers сообщает, выигрывает ли спот при выпадении o
func (s *Spot) Covers(o Outcome) bool {
	return s.mask&o.bit() != 0
}

// Catalog - неизменяемый список всех спотов варианта колеса
type Catalog struct {
	variant Variant
	spots   []*Spot
	byID    map[string]*Spot
}

type sharedCatalog struct {
	once    sync.Once
	catalog *Catalog
}

var catalogs = map[Variant]*sharedCatalog{European: {}, American: {}}

// CatalogFor возвращает общий каталог варианта, построенный один раз на процесс
func CatalogFor(v Variant) *Catalog {
	sc, ok := catalogs[v]
	if !ok {
		panic("roulette: unknown variant " + string(v))
	}
	sc.once.Do(func() {
		sc.catalog = GenerateCatalog(v)
	})
	return sc.catalog
}

// GenerateCatalog строит каталог заново. Результат детерминирован.
func GenerateCatalog(v Variant) *Catalog {
	if !v.Valid() {
		panic("roulette: unknown variant " + string(v))
	}

	c := &Catalog{
		variant: v,
		byID:    make(map[string]*Spot, 160),
	}

	for _, o := range Domain(v) {
		c.add(KindStraight, o.String()+" (plein)", []int{int(o)})
	}

	// Сплиты по горизонтали: соседние колонки в одном ряду
	for row := 0; row < gridRows; row++ {
		for col := 0; col < gridCols-1; col++ {
			a, b := numAt(row, col), numAt(row, col+1)
			c.add(KindSplit, "", []int{a, b})
		}
	}
	// Сплиты по вертикали: соседние ряды в одной колонке
	for row := 0; row < gridRows-1; row++ {
		for col := 0; col < gridCols; col++ {
			a, b := numAt(row, col), numAt(row+1, col)
			c.add(KindSplit, "", []int{a, b})
		}
	}

	for row := 0; row < gridRows-1; row++ {
		for col := 0; col < gridCols-1; col++ {
			c.add(KindCorner, "", []int{
				numAt(row, col), numAt(row, col+1),
				numAt(row+1, col), numAt(row+1, col+1),
			})
		}
	}

	for col := 0; col < gridCols; col++ {
		c.add(KindStreet, "", streetNumbers(col))
	}

	for col := 0; col < gridCols-1; col++ {
		c.add(KindSixLine, "", append(streetNumbers(col), streetNumbers(col+1)...))
	}

	for d := 1; d <= 3; d++ {
		nums := make([]int, 0, 12)
		for n := (d-1)*12 + 1; n <= d*12; n++ {
			nums = append(nums, n)
		}
		c.addNamed(KindDozen, strconv.Itoa(d), dozenLabels[d-1], nums)
	}

	for k := 1; k <= 3; k++ {
		nums := make([]int, 0, 12)
		for n := 1; n <= 36; n++ {
			if n%3 == k%3 {
				nums = append(nums, n)
			}
		}
		c.addNamed(KindColumn, strconv.Itoa(k), fmt.Sprintf("Column %d (2:1)", k), nums)
	}

	for _, em := range evenMoney {
		nums := make([]int, 0, 18)
		for n := 1; n <= 36; n++ {
			if em.match(n) {
				nums = append(nums, n)
			}
		}
		c.addNamed(KindEvenMoney, em.name, em.label, nums)
	}

	return c
}

var dozenLabels = [3]string{"1st dozen (1-12)", "2nd dozen (13-24)", "3rd dozen (25-36)"}

var evenMoney = []struct {
	name  string
	label string
	match func(n int) bool
}{
	{"low", "1-18 (manque)", func(n int) bool { return n <= 18 }},
	{"high", "19-36 (passe)", func(n int) bool { return n >= 19 }},
	{"odd", "Odd (impair)", func(n int) bool { return n%2 == 1 }},
	{"even", "Even (pair)", func(n int) bool { return n%2 == 0 }},
	{"red", "Red (rouge)", func(n int) bool { return ColorOf(Outcome(n)) == Red }},
	{"black", "Black (noir)", func(n int) bool { return ColorOf(Outcome(n)) == Black }},
}

// streetNumbers - три числа колонки сетки: 3c+1, 3c+2, 3c+3
func streetNumbers(col int) []int {
	return []int{3*col + 1, 3*col + 2, 3*col + 3}
}

// SpotID - канонический ключ спота по типу и набору чисел.
// Для сплитов и корнеров порядок обхода не важен.
func SpotID(kind Kind, numbers []int) string {
	sorted := slices.Clone(numbers)
	slices.Sort(sorted)

	switch kind {
	case KindStraight:
		return "n:" + Outcome(sorted[0]).String()
	case KindSplit:
		return "split:" + joinInts(sorted)
	case KindCorner:
		return "corner:" + joinInts(sorted)
	case KindStreet:
		return "street:" + strconv.Itoa(sorted[0])
	case KindSixLine:
		return "six:" + strconv.Itoa(sorted[0])
	}
	panic("roulette: spot kind " + string(kind) + " has no numeric key")
}

func joinInts(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, "-")
}

func (c *Catalog) add(kind Kind, label string, numbers []int) {
	id := SpotID(kind, numbers)
	if label == "" {
		label = defaultLabel(kind, id)
	}
	c.insert(id, kind, label, numbers)
}

func (c *Catalog) addNamed(kind Kind, name, label string, numbers []int) {
	c.insert(namedPrefix[kind]+":"+name, kind, label, numbers)
}

var namedPrefix = map[Kind]string{
	KindDozen:     "dozen",
	KindColumn:    "col",
	KindEvenMoney: "even",
}

func defaultLabel(kind Kind, id string) string {
	_, members, _ := strings.Cut(id, ":")
	switch kind {
	case KindSplit:
		return "Split " + strings.ReplaceAll(members, "-", "/")
	case KindCorner:
		return "Corner " + members
	case KindStreet:
		n, _ := strconv.Atoi(members)
		return fmt.Sprintf("Street %d-%d", n, n+2)
	case KindSixLine:
		n, _ := strconv.Atoi(members)
		return fmt.Sprintf("Six-line %d-%d", n, n+5)
	}
	return id
}

func (c *Catalog) insert(id string, kind Kind, label string, numbers []int) {
	if _, dup := c.byID[id]; dup {
		panic("roulette: duplicate spot id " + id)
	}

	sorted := slices.Clone(numbers)
	slices.Sort(sorted)

	spot := &Spot{
		ID:      id,
		Kind:    kind,
		Label:   label,
		Numbers: make([]Outcome, len(sorted)),
		Payout:  kind.Payout(),
		pos:     len(c.spots),
	}
	for i, n := range sorted {
		o := Outcome(n)
		spot.Numbers[i] = o
		spot.mask |= o.bit()
	}

	c.spots = append(c.spots, spot)
	c.byID[id] = spot
}

func (c *Catalog) Variant() Variant {
	return c.variant
}

// Spots возвращает копию списка спотов в порядке генерации
func (c *Catalog) Spots() []Spot {
	out := make([]Spot, len(c.spots))
	for i, s := range c.spots {
		out[i] = *s
		out[i].Numbers = slices.Clone(s.Numbers)
	}
	return out
}

// Lookup ищет спот по ключу
func (c *Catalog) Lookup(id string) (*Spot, bool) {
	s, ok := c.byID[id]
	return s, ok
}

func (c *Catalog) Len() int {
	return len(c.spots)
}

// CountByKind - количество спотов каждого типа
func (c *Catalog) CountByKind() map[Kind]int {
	counts := make(map[Kind]int, 8)
	for _, s := range c.spots {
		counts[s.Kind]++
	}
	return counts
}
