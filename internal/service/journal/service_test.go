package journal

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"roulette_lab/internal/model"
	"roulette_lab/internal/repository"
	"roulette_lab/internal/service"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	items map[uuid.UUID]model.JournalSession
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[uuid.UUID]model.JournalSession)}
}

func (r *fakeRepo) Create(_ context.Context, s *model.JournalSession) error {
	r.items[s.ID] = *s
	return nil
}

func (r *fakeRepo) Get(_ context.Context, id uuid.UUID) (*model.JournalSession, error) {
	s, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (r *fakeRepo) List(_ context.Context, f model.JournalFilter) ([]model.JournalSession, error) {
	out := make([]model.JournalSession, 0, len(r.items))
	for _, s := range r.items {
		if f.Game == "" || s.Game == f.Game {
			out = append(out, s)
		}
	}
	slices.SortFunc(out, func(a, b model.JournalSession) int {
		return b.Date.Compare(a.Date)
	})
	return out, nil
}

func (r *fakeRepo) Update(_ context.Context, s *model.JournalSession) error {
	if _, ok := r.items[s.ID]; !ok {
		return repository.ErrNotFound
	}
	r.items[s.ID] = *s
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func newServ() (*serv, *fakeRepo) {
	repo := newFakeRepo()
	s := NewJournalService(repo, fakeTxManager{}, zap.NewNop()).(*serv)
	return s, repo
}

func day(s string) time.Time {
	d, _ := time.Parse(model.DateLayout, s)
	return d
}

func session(date string, game model.Game, buyIn, cashOut int64, minutes int) model.JournalSession {
	return model.JournalSession{
		Date:            day(date),
		Venue:           " Casino de Monte-Carlo ",
		Game:            game,
		BuyIn:           decimal.NewFromInt(buyIn),
		CashOut:         decimal.NewFromInt(cashOut),
		DurationMinutes: minutes,
	}
}

func TestCreateValidates(t *testing.T) {
	ctx := context.Background()
	s, _ := newServ()

	tests := []struct {
		name string
		in   model.JournalSession
	}{
		{"no date", model.JournalSession{Game: model.GameRoulette}},
		{"bad game", session("2024-03-01", "Craps", 10, 0, 30)},
		{"negative buy-in", session("2024-03-01", model.GamePoker, -10, 0, 30)},
		{"negative duration", session("2024-03-01", model.GamePoker, 10, 0, -1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Create(ctx, tt.in); !errors.Is(err, service.ErrInvalidSession) {
				t.Fatalf("err = %v, want ErrInvalidSession", err)
			}
		})
	}
}

func TestCreateGetUpdateDelete(t *testing.T) {
	ctx := context.Background()
	s, _ := newServ()

	created, err := s.Create(ctx, session("2024-03-01", model.GameRoulette, 100, 140, 90))
	if err != nil {
		t.Fatal(err)
	}
	if created.Venue != "Casino de Monte-Carlo" {
		t.Errorf("venue not trimmed: %q", created.Venue)
	}
	if !created.Net().Equal(decimal.NewFromInt(40)) {
		t.Errorf("net = %s", created.Net())
	}

	upd := *created
	upd.CashOut = decimal.NewFromInt(60)
	got, err := s.Update(ctx, upd)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Net().Equal(decimal.NewFromInt(-40)) || !got.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("updated = %+v", got)
	}

	if err := s.Delete(ctx, created.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(ctx, created.ID); !errors.Is(err, service.ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
	if _, err := s.Update(ctx, upd); !errors.Is(err, service.ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	s, _ := newServ()

	for _, in := range []model.JournalSession{
		session("2024-03-01", model.GameRoulette, 100, 150, 60),
		session("2024-03-02", model.GameRoulette, 200, 50, 120),
		session("2024-03-03", model.GameBlackjack, 100, 300, 60),
	} {
		if _, err := s.Create(ctx, in); err != nil {
			t.Fatal(err)
		}
	}

	sum, err := s.Summary(ctx, model.JournalFilter{Game: model.GameRoulette})
	if err != nil {
		t.Fatal(err)
	}
	if sum.Sessions != 2 || !sum.Net.Equal(decimal.NewFromInt(-100)) || sum.TotalMinutes != 180 {
		t.Fatalf("summary = %+v", sum)
	}
	if !sum.NetPerHour.Valid || !sum.NetPerHour.Decimal.Equal(decimal.RequireFromString("-33.33")) {
		t.Fatalf("net per hour = %+v", sum.NetPerHour)
	}

	all, err := s.Summary(ctx, model.JournalFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if all.Sessions != 3 || !all.Net.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("summary = %+v", all)
	}
}

func TestSummaryEmpty(t *testing.T) {
	sum := summarize(nil)
	if sum.Sessions != 0 || sum.NetPerHour.Valid {
		t.Fatalf("summary = %+v", sum)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src, _ := newServ()
	for _, in := range []model.JournalSession{
		session("2024-01-10", model.GameSlots, 50, 0, 45),
		session("2024-01-11", model.GameOther, 20, 35, 15),
	} {
		if _, err := src.Create(ctx, in); err != nil {
			t.Fatal(err)
		}
	}

	data, err := src.Export(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"date": "2024-01-11"`) || !strings.Contains(string(data), `"game": "Autre"`) {
		t.Fatalf("unexpected export %s", data)
	}

	dst, repo := newServ()
	n, err := dst.Import(ctx, data)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 || len(repo.items) != 2 {
		t.Fatalf("imported %d, stored %d", n, len(repo.items))
	}

	// Повторный импорт перезаписывает, а не дублирует
	if _, err := dst.Import(ctx, data); err != nil {
		t.Fatal(err)
	}
	if len(repo.items) != 2 {
		t.Fatalf("stored %d after reimport", len(repo.items))
	}
}

func TestImportRejectsBadRecord(t *testing.T) {
	ctx := context.Background()
	s, repo := newServ()

	data := []byte(`[
		{"date": "2024-02-01", "venue": "A", "game": "Poker", "buyIn": "10", "cashOut": "0", "durationMinutes": 5},
		{"date": "01/02/2024", "venue": "B", "game": "Poker", "buyIn": "10", "cashOut": "0", "durationMinutes": 5}
	]`)
	if _, err := s.Import(ctx, data); !errors.Is(err, service.ErrInvalidSession) {
		t.Fatalf("err = %v, want ErrInvalidSession", err)
	}
	if len(repo.items) != 0 {
		t.Fatal("a failed import must not store anything")
	}

	if _, err := s.Import(ctx, []byte("{")); !errors.Is(err, service.ErrInvalidSession) {
		t.Fatalf("err = %v, want ErrInvalidSession", err)
	}
}
