package repository

import (
	"context"
	"errors"

	"roulette_lab/internal/model"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("not found")

type TableRepository interface {
	Create(ctx context.Context, table *model.Table) error
	// Get внутри транзакции блокирует строку до коммита
	Get(ctx context.Context, id uuid.UUID) (*model.Table, error)
	Save(ctx context.Context, table *model.Table) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type JournalRepository interface {
	Create(ctx context.Context, s *model.JournalSession) error
	Get(ctx context.Context, id uuid.UUID) (*model.JournalSession, error)
	List(ctx context.Context, filter model.JournalFilter) ([]model.JournalSession, error)
	Update(ctx context.Context, s *model.JournalSession) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type HouseStatsRepository interface {
	HouseState() model.HouseState
	Record(spins []model.HouseSpin)
	Reset()
}
