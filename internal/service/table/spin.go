package table

import (
	"context"

	"roulette_lab/internal/model"
	"roulette_lab/internal/roulette"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Spin Один бросок: результат дописывается в историю стола
func (s *serv) Spin(ctx context.Context, id uuid.UUID) (*model.SpinOutcome, error) {
	const op = "table.Spin"

	var (
		res   *model.SpinOutcome
		stake decimal.Decimal
		edge  decimal.Decimal
	)
	err := s.withTable(ctx, op, id, func(st *tableState) error {
		wheel := s.newWheel(st.table.Variant)
		entry := st.run.SpinOnce(wheel, st.ledger)
		s.touch(st, true)

		winners := roulette.Winners(entry.Outcome, st.ledger)
		views := make([]model.BetView, len(winners))
		for i, b := range winners {
			views[i] = betView(b)
		}

		stake = entry.Stake
		edge = st.table.Variant.HouseEdge()
		res = &model.SpinOutcome{
			Entry:   entry,
			Color:   roulette.ColorOf(entry.Outcome),
			Winners: views,
			Table:   *s.view(st),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Статистику казино обновляем только после коммита
	s.houseRepo.Record([]model.HouseSpin{{Stake: stake, Net: res.Entry.Net, Edge: edge}})

	s.log.Debug("spin",
		zap.String("table_id", id.String()),
		zap.Stringer("outcome", res.Entry.Outcome),
		zap.String("net", res.Entry.Net.String()),
	)
	return res, nil
}

// Simulate Заменяет историю стола серией из n спинов на текущих ставках.
// n приводится к [1, max_simulation_spins]
func (s *serv) Simulate(ctx context.Context, id uuid.UUID, spins int) (*model.SimulationResult, error) {
	const op = "table.Simulate"

	var (
		res   *model.SimulationResult
		house []model.HouseSpin
	)
	err := s.withTable(ctx, op, id, func(st *tableState) error {
		wheel := s.newWheel(st.table.Variant)
		n := st.run.SimulateUpTo(spins, s.cfg.MaxSimulationSpins(), wheel, st.ledger)
		s.touch(st, true)

		edge := st.table.Variant.HouseEdge()
		entries := st.run.Entries()
		house = make([]model.HouseSpin, len(entries))
		for i, e := range entries {
			house[i] = model.HouseSpin{Stake: e.Stake, Net: e.Net, Edge: edge}
		}

		res = &model.SimulationResult{
			Spins: n,
			PnL:   st.run.PnL(),
			Stats: roulette.Analyze(entries, s.cfg.RecentSpins()),
			Table: *s.view(st),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.houseRepo.Record(house)

	s.log.Info("simulation finished",
		zap.String("table_id", id.String()),
		zap.Int("requested", spins),
		zap.Int("spins", res.Spins),
		zap.String("pnl", res.PnL.String()),
	)
	return res, nil
}

// Reset Очищает историю, ставки остаются
func (s *serv) Reset(ctx context.Context, id uuid.UUID) (*model.TableView, error) {
	var res *model.TableView
	err := s.withTable(ctx, "table.Reset", id, func(st *tableState) error {
		s.touch(st, st.run.Len() > 0)
		st.run.Reset()
		res = s.view(st)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Stats Аналитика по истории стола. StakePerSpin - текущая сумма ставок,
// оборот и реализованное преимущество считаются по ставкам каждого спина
func (s *serv) Stats(ctx context.Context, id uuid.UUID) (*model.TableStats, error) {
	var res *model.TableStats
	err := s.withTable(ctx, "table.Stats", id, func(st *tableState) error {
		stake := st.ledger.TotalStake()
		res = &model.TableStats{
			RunStats:        roulette.Analyze(st.run.Entries(), s.cfg.RecentSpins()),
			StakePerSpin:    stake,
			TheoreticalEdge: st.table.Variant.HouseEdge(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
