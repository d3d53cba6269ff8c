package journal_repo

import (
	"context"
	"errors"
	"fmt"

	"roulette_lab/internal/model"
	"roulette_lab/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table              = "journal_sessions"
	colID              = "id"
	colDate            = "date"
	colVenue           = "venue"
	colGame            = "game"
	colBuyIn           = "buy_in"
	colCashOut         = "cash_out"
	colDurationMinutes = "duration_minutes"
	colNotes           = "notes"
	colCreatedAt       = "created_at"
)

var columns = []string{
	colID, colDate, colVenue, colGame, colBuyIn, colCashOut, colDurationMinutes, colNotes, colCreatedAt,
}

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewJournalRepository(dbc *pgxpool.Pool) repository.JournalRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

func (r *repo) Create(ctx context.Context, s *model.JournalSession) error {
	const op = "journal_repo.Create"

	query := sq.Insert(table).
		Columns(columns...).
		Values(s.ID, s.Date, s.Venue, string(s.Game), s.BuyIn, s.CashOut, s.DurationMinutes, s.Notes, s.CreatedAt).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *repo) Get(ctx context.Context, id uuid.UUID) (*model.JournalSession, error) {
	const op = "journal_repo.Get"

	query := sq.Select(columns...).
		From(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s, err := scanSession(r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s, nil
}

// List - сессии от новых к старым, с фильтром по игре
func (r *repo) List(ctx context.Context, filter model.JournalFilter) ([]model.JournalSession, error) {
	const op = "journal_repo.List"

	sqlStr, args, err := listQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	sessions := make([]model.JournalSession, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		sessions = append(sessions, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return sessions, nil
}

func (r *repo) Update(ctx context.Context, s *model.JournalSession) error {
	const op = "journal_repo.Update"

	query := sq.Update(table).
		Set(colDate, s.Date).
		Set(colVenue, s.Venue).
		Set(colGame, string(s.Game)).
		Set(colBuyIn, s.BuyIn).
		Set(colCashOut, s.CashOut).
		Set(colDurationMinutes, s.DurationMinutes).
		Set(colNotes, s.Notes).
		Where(sq.Eq{colID: s.ID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	return nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "journal_repo.Delete"

	query := sq.Delete(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	return nil
}

func listQuery(filter model.JournalFilter) sq.SelectBuilder {
	query := sq.Select(columns...).
		From(table).
		OrderBy(colDate+" DESC", colCreatedAt+" DESC").
		PlaceholderFormat(sq.Dollar)
	if filter.Game != "" {
		query = query.Where(sq.Eq{colGame: string(filter.Game)})
	}
	return query
}

func scanSession(row pgx.Row) (*model.JournalSession, error) {
	var (
		s    model.JournalSession
		game string
	)
	err := row.Scan(&s.ID, &s.Date, &s.Venue, &game, &s.BuyIn, &s.CashOut, &s.DurationMinutes, &s.Notes, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	s.Game = model.Game(game)
	return &s, nil
}
