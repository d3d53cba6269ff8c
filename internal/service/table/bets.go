package table

import (
	"context"
	"fmt"
	"slices"

	"roulette_lab/internal/model"
	"roulette_lab/internal/roulette"
	"roulette_lab/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Place Кладет фишку на спот. Неизвестный спот стол не меняет
func (s *serv) Place(ctx context.Context, id uuid.UUID, spotID string, amount decimal.Decimal) (*model.TableView, error) {
	const op = "table.Place"

	if !s.isChip(amount) {
		return nil, fmt.Errorf("%s: %w", op, service.ErrInvalidChip)
	}

	var res *model.TableView
	err := s.withTable(ctx, op, id, func(st *tableState) error {
		s.touch(st, st.ledger.Place(spotID, amount))
		res = s.view(st)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Remove Снимает фишку со спота, ставка не уходит ниже нуля
func (s *serv) Remove(ctx context.Context, id uuid.UUID, spotID string, amount decimal.Decimal) (*model.TableView, error) {
	const op = "table.Remove"

	if !s.isChip(amount) {
		return nil, fmt.Errorf("%s: %w", op, service.ErrInvalidChip)
	}

	var res *model.TableView
	err := s.withTable(ctx, op, id, func(st *tableState) error {
		s.touch(st, st.ledger.Remove(spotID, amount))
		res = s.view(st)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *serv) Clear(ctx context.Context, id uuid.UUID) (*model.TableView, error) {
	var res *model.TableView
	err := s.withTable(ctx, "table.Clear", id, func(st *tableState) error {
		s.touch(st, !st.ledger.IsEmpty())
		st.ledger.Clear()
		res = s.view(st)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// SetVariant Меняет колесо. История сохраняется, ставки на отсутствующие споты снимаются
func (s *serv) SetVariant(ctx context.Context, id uuid.UUID, variant roulette.Variant) (*model.VariantChange, error) {
	const op = "table.SetVariant"

	if !variant.Valid() {
		return nil, fmt.Errorf("%s: %w", op, service.ErrInvalidVariant)
	}

	var res *model.VariantChange
	err := s.withTable(ctx, op, id, func(st *tableState) error {
		dropped := []string{}
		if st.table.Variant != variant {
			dropped = st.ledger.Rebind(roulette.CatalogFor(variant))
			st.table.Variant = variant
			s.touch(st, true)
		}
		res = &model.VariantChange{Table: *s.view(st), Dropped: dropped}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(res.Dropped) > 0 {
		s.log.Info("bets dropped on variant change",
			zap.String("table_id", id.String()),
			zap.String("variant", string(variant)),
			zap.Strings("spots", res.Dropped),
		)
	}
	return res, nil
}

func (s *serv) isChip(amount decimal.Decimal) bool {
	return slices.ContainsFunc(s.cfg.Chips(), amount.Equal)
}
