package journal

import (
	"time"

	"roulette_lab/internal/repository"
	"roulette_lab/internal/service"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"go.uber.org/zap"
)

type serv struct {
	repo      repository.JournalRepository
	txManager trm.Manager
	log       *zap.Logger
	now       func() time.Time
}

// NewJournalService Журнал реальных игровых сессий
func NewJournalService(repo repository.JournalRepository, txManager trm.Manager, log *zap.Logger) service.JournalService {
	return &serv{
		repo:      repo,
		txManager: txManager,
		log:       log.With(zap.String("component", "journal_service")),
		now:       func() time.Time { return time.Now().UTC() },
	}
}
