package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"roulette_lab/internal/config/env"
	"roulette_lab/internal/logger"
	"roulette_lab/internal/logger/sl"
	"roulette_lab/internal/roulette"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// betFlags - повторяемый флаг -bet spot=amount
type betFlags []string

func (b *betFlags) String() string {
	return strings.Join(*b, ",")
}

func (b *betFlags) Set(v string) error {
	*b = append(*b, v)
	return nil
}

func main() {
	var (
		variant = flag.String("variant", "EU", "wheel variant: EU or US")
		spins   = flag.Int("spins", 1000, "number of spins, clamped to [1, 20000]")
		seed    = flag.Uint64("seed", 0, "rng seed, 0 for a random wheel")
		recent  = flag.Int("recent", roulette.DefaultRecentSpins, "how many recent outcomes to print")
		bets    betFlags
	)
	flag.Var(&bets, "bet", "bet as spot=amount, e.g. -bet even:red=10 (repeatable)")
	flag.Parse()

	log, err := logger.New(env.EnvLocal)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to build logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(log, *variant, *spins, *seed, *recent, bets); err != nil {
		log.Error("simulation failed", sl.Err(err))
		os.Exit(1)
	}
}

func run(log *zap.Logger, variant string, spins int, seed uint64, recent int, bets []string) error {
	v, err := roulette.ParseVariant(variant)
	if err != nil {
		return err
	}

	ledger := roulette.NewLedger(roulette.CatalogFor(v))
	for _, b := range bets {
		spotID, amount, err := parseBet(b)
		if err != nil {
			return err
		}
		if !ledger.Place(spotID, amount) {
			log.Warn("bet ignored", zap.String("bet", b))
		}
	}

	wheel := roulette.NewWheel(v)
	if seed != 0 {
		wheel = roulette.NewSeededWheel(v, seed, seed)
	}

	history := roulette.NewRun()
	n := history.Simulate(spins, wheel, ledger)
	st := roulette.Analyze(history.Entries(), recent)

	recentStr := make([]string, len(st.Recent))
	for i, o := range st.Recent {
		recentStr[i] = o.String()
	}

	fields := []zap.Field{
		zap.String("variant", string(v)),
		zap.Int("spins", n),
		zap.String("stake_per_spin", ledger.TotalStake().String()),
		zap.String("final_pnl", st.FinalPnL.String()),
		zap.String("peak_pnl", st.PeakPnL.String()),
		zap.String("trough_pnl", st.TroughPnL.String()),
		zap.String("max_drawdown", st.MaxDrawdown.String()),
		zap.Int("red", st.ColorCounts[roulette.Red]),
		zap.Int("black", st.ColorCounts[roulette.Black]),
		zap.Int("green", st.ColorCounts[roulette.Green]),
		zap.String("longest_streak", fmt.Sprintf("%s x%d", st.LongestColor.Color, st.LongestColor.Length)),
		zap.Strings("recent", recentStr),
		zap.String("theoretical_edge", v.HouseEdge().StringFixed(4)),
	}
	if st.RealizedEdge.Valid {
		fields = append(fields, zap.String("realized_edge", st.RealizedEdge.Decimal.StringFixed(4)))
	}
	log.Info("simulation finished", fields...)
	return nil
}

func parseBet(s string) (string, decimal.Decimal, error) {
	spotID, amount, ok := strings.Cut(s, "=")
	if !ok || spotID == "" {
		return "", decimal.Zero, fmt.Errorf("bad bet %q, want spot=amount", s)
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return "", decimal.Zero, fmt.Errorf("bad amount in %q: %w", s, err)
	}
	return spotID, d, nil
}
