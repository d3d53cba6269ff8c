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
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Create Новый стол с пустыми ставками и историей
func (s *serv) Create(ctx context.Context, variant roulette.Variant) (*model.TableView, error) {
	const op = "table.Create"

	v, err := s.resolveVariant(variant)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now()
	t := &model.Table{
		ID:        uuid.New(),
		Variant:   v,
		Ledger:    roulette.NewLedger(roulette.CatalogFor(v)).Snapshot(),
		History:   roulette.NewRun().Snapshot(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.repo.Create(txCtx, t)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("table created", zap.String("table_id", t.ID.String()), zap.String("variant", string(v)))

	return s.view(load(t)), nil
}

func (s *serv) Get(ctx context.Context, id uuid.UUID) (*model.TableView, error) {
	var res *model.TableView
	err := s.withTable(ctx, "table.Get", id, func(st *tableState) error {
		res = s.view(st)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *serv) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "table.Delete"

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, id)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, service.ErrTableNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("table deleted", zap.String("table_id", id.String()))
	return nil
}

// Catalog Все споты варианта в порядке раскладки. Пустой вариант заменяется вариантом по умолчанию
func (s *serv) Catalog(variant roulette.Variant) (roulette.Variant, []roulette.Spot, error) {
	v, err := s.resolveVariant(variant)
	if err != nil {
		return "", nil, fmt.Errorf("table.Catalog: %w", err)
	}
	return v, roulette.CatalogFor(v).Spots(), nil
}

func (s *serv) Chips() []decimal.Decimal {
	return s.cfg.Chips()
}

func (s *serv) HouseStats() model.HouseState {
	return s.houseRepo.HouseState()
}
