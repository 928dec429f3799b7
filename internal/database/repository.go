package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"lawFirmWebsite/internal/models"
)

// ListOptions narrows a List call. VisibleOnly keeps records the public site may show
// (isActive, or isApproved for reviews); admin lists leave it false.
type ListOptions struct {
	VisibleOnly bool
}

// Repository is the CRUD surface every collection exposes.
type Repository[T any] interface {
	List(ctx context.Context, opts ListOptions) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, record *T) error
	Update(ctx context.Context, id string, record *T) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// Table describes how a record type maps onto its SQL table. Columns excludes the id and
// timestamp columns, which every table has; Values and Targets must follow Columns' order.
type Table[T any] struct {
	Name          string
	Columns       []string
	OrderBy       string
	VisibleColumn string

	Meta    func(*T) *models.Meta
	Values  func(*T) []any
	Targets func(*T) []any
}

func (t Table[T]) selectColumns() string {
	return "id, created_at, updated_at, " + strings.Join(t.Columns, ", ")
}

func (t Table[T]) scan(row interface{ Scan(...any) error }) (*T, error) {
	var record T
	meta := t.Meta(&record)
	dest := append([]any{&meta.ID, &meta.CreatedAt, &meta.UpdatedAt}, t.Targets(&record)...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &record, nil
}

// SQLRepository implements Repository for any record described by a Table.
type SQLRepository[T any] struct {
	db    DBTX
	table Table[T]
	clock Clock
	ids   IDGenerator
}

func NewSQLRepository[T any](db DBTX, table Table[T], clock Clock, ids IDGenerator) *SQLRepository[T] {
	return &SQLRepository[T]{db: db, table: table, clock: clock, ids: ids}
}

// WithTx returns a copy of the repository bound to tx.
func (r *SQLRepository[T]) WithTx(tx DBTX) *SQLRepository[T] {
	return &SQLRepository[T]{db: tx, table: r.table, clock: r.clock, ids: r.ids}
}

func (r *SQLRepository[T]) List(ctx context.Context, opts ListOptions) ([]T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s", r.table.selectColumns(), r.table.Name)
	if opts.VisibleOnly && r.table.VisibleColumn != "" {
		query += fmt.Sprintf(" WHERE %s = 1", r.table.VisibleColumn)
	}
	query += " ORDER BY " + r.table.OrderBy

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", r.table.Name, err)
	}
	defer rows.Close()

	records := make([]T, 0)
	for rows.Next() {
		record, err := r.table.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", r.table.Name, err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", r.table.Name, err)
	}
	return records, nil
}

func (r *SQLRepository[T]) Get(ctx context.Context, id string) (*T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", r.table.selectColumns(), r.table.Name)
	record, err := r.table.scan(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting %s %s: %w", r.table.Name, id, err)
	}
	return record, nil
}

// Create assigns a fresh id and timestamps to record and inserts it.
func (r *SQLRepository[T]) Create(ctx context.Context, record *T) error {
	now := r.clock.Now()
	meta := r.table.Meta(record)
	meta.ID = r.ids.New()
	meta.CreatedAt = now
	meta.UpdatedAt = now

	columns := append([]string{"id", "created_at", "updated_at"}, r.table.Columns...)
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", r.table.Name, strings.Join(columns, ", "), placeholders)

	args := append([]any{meta.ID, meta.CreatedAt, meta.UpdatedAt}, r.table.Values(record)...)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("inserting into %s: %w", r.table.Name, err)
	}
	return nil
}

// Update replaces every field of the stored record. id and createdAt are preserved,
// updatedAt is refreshed, and record is overwritten with what was stored.
// Concurrent updates are last-write-wins.
func (r *SQLRepository[T]) Update(ctx context.Context, id string, record *T) error {
	assignments := make([]string, 0, len(r.table.Columns)+1)
	for _, column := range r.table.Columns {
		assignments = append(assignments, column+" = ?")
	}
	assignments = append(assignments, "updated_at = ?")
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", r.table.Name, strings.Join(assignments, ", "))

	args := append(r.table.Values(record), r.clock.Now(), id)
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("updating %s %s: %w", r.table.Name, id, err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}

	stored, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	*record = *stored
	return nil
}

func (r *SQLRepository[T]) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = ?", r.table.Name), id)
	if err != nil {
		return fmt.Errorf("deleting %s %s: %w", r.table.Name, id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting %s %s: %w", r.table.Name, id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLRepository[T]) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+r.table.Name).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting %s: %w", r.table.Name, err)
	}
	return n, nil
}
