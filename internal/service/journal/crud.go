package journal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"roulette_lab/internal/model"
	"roulette_lab/internal/repository"
	"roulette_lab/internal/service"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *serv) Create(ctx context.Context, in model.JournalSession) (*model.JournalSession, error) {
	const op = "journal.Create"

	in = normalize(in)
	if err := validate(in); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	in.ID = uuid.New()
	in.CreatedAt = s.now()

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.repo.Create(txCtx, &in)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("journal session created", zap.String("session_id", in.ID.String()), zap.String("game", string(in.Game)))
	return &in, nil
}

func (s *serv) Get(ctx context.Context, id uuid.UUID) (*model.JournalSession, error) {
	const op = "journal.Get"

	sess, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapNotFound(err))
	}
	return sess, nil
}

// List Сессии от новых к старым
func (s *serv) List(ctx context.Context, filter model.JournalFilter) ([]model.JournalSession, error) {
	const op = "journal.List"

	if filter.Game != "" && !filter.Game.Valid() {
		return nil, fmt.Errorf("%s: %w: unknown game %q", op, service.ErrInvalidSession, filter.Game)
	}

	list, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// Update Перезаписывает сессию целиком, дата создания не меняется
func (s *serv) Update(ctx context.Context, in model.JournalSession) (*model.JournalSession, error) {
	const op = "journal.Update"

	in = normalize(in)
	if err := validate(in); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var res *model.JournalSession
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		cur, err := s.repo.Get(txCtx, in.ID)
		if err != nil {
			return mapNotFound(err)
		}
		in.CreatedAt = cur.CreatedAt
		if err := s.repo.Update(txCtx, &in); err != nil {
			return mapNotFound(err)
		}
		res = &in
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

func (s *serv) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "journal.Delete"

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, id)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapNotFound(err))
	}

	s.log.Info("journal session deleted", zap.String("session_id", id.String()))
	return nil
}

func mapNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return service.ErrSessionNotFound
	}
	return err
}

func normalize(in model.JournalSession) model.JournalSession {
	in.Venue = strings.TrimSpace(in.Venue)
	in.Notes = strings.TrimSpace(in.Notes)
	return in
}

func validate(in model.JournalSession) error {
	switch {
	case in.Date.IsZero():
		return fmt.Errorf("%w: date is required", service.ErrInvalidSession)
	case !in.Game.Valid():
		return fmt.Errorf("%w: unknown game %q", service.ErrInvalidSession, in.Game)
	case in.BuyIn.IsNegative():
		return fmt.Errorf("%w: buy-in must not be negative", service.ErrInvalidSession)
	case in.CashOut.IsNegative():
		return fmt.Errorf("%w: cash-out must not be negative", service.ErrInvalidSession)
	case in.DurationMinutes < 0:
		return fmt.Errorf("%w: duration must not be negative", service.ErrInvalidSession)
	}
	return nil
}
