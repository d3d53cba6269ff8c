package table_repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"roulette_lab/internal/model"
	"roulette_lab/internal/repository"
	"roulette_lab/internal/roulette"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table        = "roulette_tables"
	colID        = "id"
	colVariant   = "variant"
	colLedger    = "ledger"
	colHistory   = "history"
	colCreatedAt = "created_at"
	colUpdatedAt = "updated_at"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewTableRepository(dbc *pgxpool.Pool) repository.TableRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// Create - сохраняет новый стол. ID и метки времени выставляет вызывающий
func (r *repo) Create(ctx context.Context, t *model.Table) error {
	const op = "table_repo.Create"

	ledger, history, err := encodeState(t)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := sq.Insert(table).
		Columns(colID, colVariant, colLedger, colHistory, colCreatedAt, colUpdatedAt).
		Values(t.ID, string(t.Variant), ledger, history, t.CreatedAt, t.UpdatedAt).
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

// Get - возвращает стол по ID. Строка блокируется до конца транзакции
func (r *repo) Get(ctx context.Context, id uuid.UUID) (*model.Table, error) {
	const op = "table_repo.Get"

	sqlStr, args, err := getQuery(id).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var (
		t       model.Table
		variant string
		ledger  []byte
		history []byte
	)
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).
		Scan(&t.ID, &variant, &ledger, &history, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	t.Variant = roulette.Variant(variant)
	if err := decodeState(&t, ledger, history); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &t, nil
}

// getQuery - выборка стола с блокировкой строки
func getQuery(id uuid.UUID) sq.SelectBuilder {
	return sq.Select(colID, colVariant, colLedger, colHistory, colCreatedAt, colUpdatedAt).
		From(table).
		Where(sq.Eq{colID: id}).
		Suffix("FOR UPDATE").
		PlaceholderFormat(sq.Dollar)
}

// Save - перезаписывает вариант, ставки и историю стола
func (r *repo) Save(ctx context.Context, t *model.Table) error {
	const op = "table_repo.Save"

	ledger, history, err := encodeState(t)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = time.Now().UTC()
	}

	query := sq.Update(table).
		Set(colVariant, string(t.Variant)).
		Set(colLedger, ledger).
		Set(colHistory, history).
		Set(colUpdatedAt, t.UpdatedAt).
		Where(sq.Eq{colID: t.ID}).
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
	const op = "table_repo.Delete"

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

func encodeState(t *model.Table) (ledger, history []byte, err error) {
	ledger, err = json.Marshal(t.Ledger)
	if err != nil {
		return nil, nil, fmt.Errorf("encode ledger: %w", err)
	}
	history, err = json.Marshal(t.History)
	if err != nil {
		return nil, nil, fmt.Errorf("encode history: %w", err)
	}
	return ledger, history, nil
}

func decodeState(t *model.Table, ledger, history []byte) error {
	if err := json.Unmarshal(ledger, &t.Ledger); err != nil {
		return fmt.Errorf("decode ledger: %w", err)
	}
	if err := json.Unmarshal(history, &t.History); err != nil {
		return fmt.Errorf("decode history: %w", err)
	}
	return nil
}
