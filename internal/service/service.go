package service

import (
	"context"
	"errors"

	"roulette_lab/internal/model"
	"roulette_lab/internal/roulette"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrTableNotFound   = errors.New("table not found")
	ErrSessionNotFound = errors.New("journal session not found")
	ErrInvalidVariant  = errors.New("invalid wheel variant")
	ErrInvalidChip     = errors.New("amount is not an allowed chip denomination")
	ErrInvalidSession  = errors.New("invalid journal session")
)

type TableService interface {
	Create(ctx context.Context, variant roulette.Variant) (*model.TableView, error)
	Get(ctx context.Context, id uuid.UUID) (*model.TableView, error)
	Delete(ctx context.Context, id uuid.UUID) error

	Place(ctx context.Context, id uuid.UUID, spotID string, amount decimal.Decimal) (*model.TableView, error)
	Remove(ctx context.Context, id uuid.UUID, spotID string, amount decimal.Decimal) (*model.TableView, error)
	Clear(ctx context.Context, id uuid.UUID) (*model.TableView, error)
	SetVariant(ctx context.Context, id uuid.UUID, variant roulette.Variant) (*model.VariantChange, error)

	Spin(ctx context.Context, id uuid.UUID) (*model.SpinOutcome, error)
	Simulate(ctx context.Context, id uuid.UUID, spins int) (*model.SimulationResult, error)
	Reset(ctx context.Context, id uuid.UUID) (*model.TableView, error)
	Stats(ctx context.Context, id uuid.UUID) (*model.TableStats, error)

	Catalog(variant roulette.Variant) (roulette.Variant, []roulette.Spot, error)
	Chips() []decimal.Decimal
	HouseStats() model.HouseState
}

type JournalService interface {
	Create(ctx context.Context, s model.JournalSession) (*model.JournalSession, error)
	Get(ctx context.Context, id uuid.UUID) (*model.JournalSession, error)
	List(ctx context.Context, filter model.JournalFilter) ([]model.JournalSession, error)
	Update(ctx context.Context, s model.JournalSession) (*model.JournalSession, error)
	Delete(ctx context.Context, id uuid.UUID) error

	Summary(ctx context.Context, filter model.JournalFilter) (*model.JournalSummary, error)
	Export(ctx context.Context) ([]byte, error)
	Import(ctx context.Context, data []byte) (int, error)
}
