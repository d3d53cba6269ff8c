package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"roulette_lab/internal/model"
	"roulette_lab/internal/repository"
	"roulette_lab/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// record - формат файла экспорта журнала
type record struct {
	ID              string          `json:"id"`
	Date            string          `json:"date"`
	Venue           string          `json:"venue"`
	Game            model.Game      `json:"game"`
	BuyIn           decimal.Decimal `json:"buyIn"`
	CashOut         decimal.Decimal `json:"cashOut"`
	DurationMinutes int             `json:"durationMinutes"`
	Notes           string          `json:"notes"`
}

// Export Весь журнал одним JSON-массивом
func (s *serv) Export(ctx context.Context) ([]byte, error) {
	const op = "journal.Export"

	list, err := s.repo.List(ctx, model.JournalFilter{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]record, len(list))
	for i, sess := range list {
		out[i] = record{
			ID:              sess.ID.String(),
			Date:            sess.Date.Format(model.DateLayout),
			Venue:           sess.Venue,
			Game:            sess.Game,
			BuyIn:           sess.BuyIn,
			CashOut:         sess.CashOut,
			DurationMinutes: sess.DurationMinutes,
			Notes:           sess.Notes,
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return data, nil
}

// Import Загружает экспортированный журнал. Сессии с известным ID перезаписываются,
// остальные добавляются. Одна невалидная запись отменяет весь импорт
func (s *serv) Import(ctx context.Context, data []byte) (int, error) {
	const op = "journal.Import"

	var in []record
	if err := json.Unmarshal(data, &in); err != nil {
		return 0, fmt.Errorf("%s: %w: %v", op, service.ErrInvalidSession, err)
	}

	sessions := make([]model.JournalSession, len(in))
	for i, rec := range in {
		sess, err := fromRecord(rec)
		if err != nil {
			return 0, fmt.Errorf("%s: record %d: %w", op, i, err)
		}
		sessions[i] = sess
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		for i := range sessions {
			sess := &sessions[i]
			cur, err := s.repo.Get(txCtx, sess.ID)
			switch {
			case err == nil:
				sess.CreatedAt = cur.CreatedAt
				err = s.repo.Update(txCtx, sess)
			case errors.Is(err, repository.ErrNotFound):
				sess.CreatedAt = s.now()
				err = s.repo.Create(txCtx, sess)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("journal imported", zap.Int("sessions", len(sessions)))
	return len(sessions), nil
}

func fromRecord(rec record) (model.JournalSession, error) {
	sess := model.JournalSession{
		Venue:           rec.Venue,
		Game:            rec.Game,
		BuyIn:           rec.BuyIn,
		CashOut:         rec.CashOut,
		DurationMinutes: rec.DurationMinutes,
		Notes:           rec.Notes,
	}

	if rec.ID == "" {
		sess.ID = uuid.New()
	} else {
		id, err := uuid.Parse(rec.ID)
		if err != nil {
			return sess, fmt.Errorf("%w: bad id %q", service.ErrInvalidSession, rec.ID)
		}
		sess.ID = id
	}

	date, err := time.Parse(model.DateLayout, rec.Date)
	if err != nil {
		return sess, fmt.Errorf("%w: bad date %q", service.ErrInvalidSession, rec.Date)
	}
	sess.Date = date

	sess = normalize(sess)
	if err := validate(sess); err != nil {
		return sess, err
	}
	return sess, nil
}
