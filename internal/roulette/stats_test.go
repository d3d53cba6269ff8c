package roulette

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

func TestLongestStreak(t *testing.T) {
	tests := []struct {
		name    string
		in      []Color
		want    Color
		wantLen int
	}{
		{"empty", nil, "", 0},
		{"single", []Color{Red}, Red, 1},
		{"tie keeps first", []Color{Red, Red, Black, Black}, Red, 2},
		{"longest in middle", []Color{Red, Black, Black, Black, Green, Red}, Black, 3},
		{"longest at end", []Color{Green, Red, Red, Black, Black, Black, Black}, Black, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n := LongestStreak(tt.in)
			if got != tt.want || n != tt.wantLen {
				t.Errorf("LongestStreak = (%s, %d), want (%s, %d)", got, n, tt.want, tt.wantLen)
			}
		})
	}
}

func TestRecentNewestFirst(t *testing.T) {
	in := []Outcome{1, 2, 3, 4, 5}
	if got := Recent(in, 3); !reflect.DeepEqual(got, []Outcome{5, 4, 3}) {
		t.Errorf("Recent(3) = %v", got)
	}
	if got := Recent(in, 24); len(got) != 5 || got[0] != 5 {
		t.Errorf("Recent(24) = %v", got)
	}
	if got := Recent(nil, 24); len(got) != 0 {
		t.Errorf("Recent(nil) = %v", got)
	}
}

func TestColorOf(t *testing.T) {
	tests := map[Outcome]Color{
		0:          Green,
		DoubleZero: Green,
		1:          Red,
		2:          Black,
		10:         Black,
		11:         Black,
		12:         Red,
		19:         Red,
		36:         Red,
	}
	for o, want := range tests {
		if got := ColorOf(o); got != want {
			t.Errorf("ColorOf(%s) = %s, want %s", o, got, want)
		}
	}
}

func TestAnalyze(t *testing.T) {
	entries := []HistoryEntry{
		{Outcome: 1, Stake: dec(10), Net: dec(10), Cumulative: dec(10)},
		{Outcome: 3, Stake: dec(10), Net: dec(10), Cumulative: dec(20)},
		{Outcome: 2, Stake: dec(10), Net: dec(-10), Cumulative: dec(10)},
		{Outcome: 0, Stake: dec(10), Net: dec(-10), Cumulative: dec(0)},
		{Outcome: 4, Stake: dec(10), Net: dec(-10), Cumulative: dec(-10)},
		{Outcome: 5, Stake: dec(10), Net: dec(10), Cumulative: dec(0)},
	}

	st := Analyze(entries, 4)

	if st.Spins != 6 {
		t.Errorf("spins = %d", st.Spins)
	}
	wantColors := map[Color]int{Red: 3, Black: 2, Green: 1}
	if !reflect.DeepEqual(st.ColorCounts, wantColors) {
		t.Errorf("colors = %v, want %v", st.ColorCounts, wantColors)
	}
	if st.LongestColor != (Streak{Color: Red, Length: 2}) {
		t.Errorf("longest = %+v", st.LongestColor)
	}
	if !reflect.DeepEqual(st.Recent, []Outcome{5, 4, 0, 2}) {
		t.Errorf("recent = %v", st.Recent)
	}
	if !st.PeakPnL.Equal(dec(20)) || !st.TroughPnL.Equal(dec(-10)) {
		t.Errorf("peak/trough = %s/%s", st.PeakPnL, st.TroughPnL)
	}
	if !st.MaxDrawdown.Equal(dec(30)) {
		t.Errorf("drawdown = %s, want 30", st.MaxDrawdown)
	}
	if !st.Wagered.Equal(dec(60)) {
		t.Errorf("wagered = %s, want 60", st.Wagered)
	}
	if !st.RealizedEdge.Valid || !st.RealizedEdge.Decimal.IsZero() {
		t.Errorf("edge = %+v, want 0", st.RealizedEdge)
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	st := Analyze(nil, DefaultRecentSpins)
	if st.Spins != 0 || st.LongestColor.Length != 0 || st.RealizedEdge.Valid {
		t.Fatalf("unexpected stats %+v", st)
	}
}

func TestAnalyzeSumsRecordedStakes(t *testing.T) {
	// Ставки менялись между спинами: оборот - сумма записанных ставок
	entries := []HistoryEntry{
		{Outcome: 17, Stake: dec(10), Net: dec(-10), Cumulative: dec(-10)},
		{Outcome: 17, Stake: dec(10), Net: dec(-10), Cumulative: dec(-20)},
		{Outcome: 17, Stake: dec(100), Net: dec(3500), Cumulative: dec(3480)},
		{Outcome: 0, Stake: decimal.Zero, Net: decimal.Zero, Cumulative: dec(3480)},
	}

	st := Analyze(entries, DefaultRecentSpins)
	if !st.Wagered.Equal(dec(120)) {
		t.Fatalf("wagered = %s, want 120", st.Wagered)
	}
	if !st.RealizedEdge.Valid || !st.RealizedEdge.Decimal.Equal(dec(-29)) {
		t.Fatalf("edge = %+v, want -29", st.RealizedEdge)
	}
}

func TestHouseEdge(t *testing.T) {
	eu := European.HouseEdge().Round(4)
	us := American.HouseEdge().Round(4)
	if !eu.Equal(decimal.RequireFromString("0.0270")) {
		t.Errorf("EU edge = %s", eu)
	}
	if !us.Equal(decimal.RequireFromString("0.0526")) {
		t.Errorf("US edge = %s", us)
	}
}

func TestWheelDrawCoversDomain(t *testing.T) {
	for _, v := range []Variant{European, American} {
		w := NewSeededWheel(v, 13, 14)
		seen := make(map[Outcome]int)
		for i := 0; i < 20000; i++ {
			o := w.Draw()
			if !o.In(v) {
				t.Fatalf("%s: drew %s outside the domain", v, o)
			}
			seen[o]++
		}
		if len(seen) != v.Size() {
			t.Errorf("%s: saw %d distinct outcomes, want %d", v, len(seen), v.Size())
		}
	}
}

func TestParseOutcome(t *testing.T) {
	for _, s := range []string{"0", "00", "17", "36"} {
		o, err := ParseOutcome(s)
		if err != nil || o.String() != s {
			t.Errorf("ParseOutcome(%q) = %s, %v", s, o, err)
		}
	}
	for _, s := range []string{"", "37", "-1", "x"} {
		if _, err := ParseOutcome(s); err == nil {
			t.Errorf("ParseOutcome(%q) should fail", s)
		}
	}
}
