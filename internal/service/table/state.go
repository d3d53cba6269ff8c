package table

import (
	"context"
	"errors"
	"fmt"

	"roulette_lab/internal/model"
	"roulette_lab/internal/repository"
	"roulette_lab/internal/roulette"
	"roulette_lab/internal/service"

	"github.com/google/uuid"
)

// tableState - стол, поднятый из хранилища в объекты движка
type tableState struct {
	table  *model.Table
	ledger *roulette.Ledger
	run    *roulette.Run
	dirty  bool
}

func load(t *model.Table) *tableState {
	ledger := roulette.RestoreLedger(t.Ledger)
	if ledger.Catalog().Variant() != t.Variant {
		ledger.Rebind(roulette.CatalogFor(t.Variant))
	}
	return &tableState{
		table:  t,
		ledger: ledger,
		run:    roulette.RestoreRun(t.History),
	}
}

// withTable загружает стол в транзакции, вызывает fn и сохраняет стол, если fn его изменила
func (s *serv) withTable(ctx context.Context, op string, id uuid.UUID, fn func(st *tableState) error) error {
	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		t, err := s.repo.Get(txCtx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, service.ErrTableNotFound)
			}
			return fmt.Errorf("%s: %w", op, err)
		}
		if !t.Variant.Valid() {
			return fmt.Errorf("%s: stored table has variant %q", op, t.Variant)
		}

		st := load(t)
		if err := fn(st); err != nil {
			return err
		}
		if !st.dirty {
			return nil
		}

		t.Ledger = st.ledger.Snapshot()
		t.History = st.run.Snapshot()
		if err := s.repo.Save(txCtx, t); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	})
}

// touch помечает стол измененным
func (s *serv) touch(st *tableState, changed bool) {
	if !changed {
		return
	}
	st.dirty = true
	st.table.UpdatedAt = s.now()
}

func (s *serv) view(st *tableState) *model.TableView {
	bets := st.ledger.Bets()
	views := make([]model.BetView, len(bets))
	for i, b := range bets {
		views[i] = betView(b)
	}

	return &model.TableView{
		ID:         st.table.ID,
		Variant:    st.table.Variant,
		Bets:       views,
		TotalStake: st.ledger.TotalStake(),
		History:    st.run.Entries(),
		PnL:        st.run.PnL(),
		HouseEdge:  st.table.Variant.HouseEdge(),
		CreatedAt:  st.table.CreatedAt,
		UpdatedAt:  st.table.UpdatedAt,
	}
}

func betView(b roulette.Bet) model.BetView {
	return model.BetView{
		SpotID: b.Spot.ID,
		Kind:   b.Spot.Kind,
		Label:  b.Spot.Label,
		Payout: b.Spot.Payout,
		Stake:  b.Stake,
	}
}

// resolveVariant - пустой вариант заменяется вариантом по умолчанию
func (s *serv) resolveVariant(v roulette.Variant) (roulette.Variant, error) {
	if v == "" {
		return s.cfg.DefaultVariant(), nil
	}
	if !v.Valid() {
		return "", service.ErrInvalidVariant
	}
	return v, nil
}
