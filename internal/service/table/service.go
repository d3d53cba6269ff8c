package table

import (
	"time"

	"roulette_lab/internal/config"
	"roulette_lab/internal/repository"
	"roulette_lab/internal/roulette"
	"roulette_lab/internal/service"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"go.uber.org/zap"
)

// WheelFactory выдает колесо для одного вызова сервиса
type WheelFactory func(v roulette.Variant) *roulette.Wheel

type serv struct {
	cfg       config.LabConfig
	repo      repository.TableRepository
	houseRepo repository.HouseStatsRepository
	txManager trm.Manager
	log       *zap.Logger

	newWheel WheelFactory
	now      func() time.Time
}

type Option func(*serv)

// WithWheelFactory подменяет генератор колес, например на засеянный
func WithWheelFactory(f WheelFactory) Option {
	return func(s *serv) {
		s.newWheel = f
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *serv) {
		s.now = now
	}
}

// NewTableService Сервис игровых столов поверх движка рулетки
func NewTableService(
	cfg config.LabConfig,
	repo repository.TableRepository,
	houseRepo repository.HouseStatsRepository,
	txManager trm.Manager,
	log *zap.Logger,
	opts ...Option,
) service.TableService {
	s := &serv{
		cfg:       cfg,
		repo:      repo,
		houseRepo: houseRepo,
		txManager: txManager,
		log:       log.With(zap.String("component", "table_service")),
		newWheel:  roulette.NewWheel,
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
