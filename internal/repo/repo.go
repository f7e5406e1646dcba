package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"kaizenblitz/internal/domain"
)

var ErrNotFound = errors.New("not found")

// RowScanner is satisfied by *sql.Row and *sql.Rows.
type RowScanner interface {
	Scan(dest ...any) error
}

// Table binds an entity type to its storage layout. Columns holds the full
// column list with id first and created_at/updated_at last; Values returns
// the bound arguments in the same order.
type Table[T any] struct {
	Name    string
	Columns []string
	Values  func(*T) []any
	Scan    func(RowScanner) (T, error)
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repo is a persistence gateway for a single entity kind. Operations commit
// independently; no transaction spans multiple calls unless a caller uses the
// Tx variants inside its own transaction. A Repo instance is not safe for
// concurrent use without external serialization.
type Repo[T any, PT interface {
	*T
	domain.Record
}] struct {
	DB    *sql.DB
	Table Table[T]
	Now   func() time.Time
}

// New builds a repository for the given table binding.
func New[T any, PT interface {
	*T
	domain.Record
}](db *sql.DB, table Table[T]) *Repo[T, PT] {
	return &Repo[T, PT]{DB: db, Table: table, Now: time.Now}
}

func (r *Repo[T, PT]) now() string {
	if r.Now != nil {
		return r.Now().UTC().Format(time.RFC3339)
	}
	return time.Now().UTC().Format(time.RFC3339)
}

// GetAll returns every persisted instance in insertion order.
func (r *Repo[T, PT]) GetAll(ctx context.Context) ([]T, error) {
	return r.queryMany(ctx, r.DB, fmt.Sprintf(`SELECT %s FROM %s`, r.selectList(), r.Table.Name))
}

// GetByID returns the instance with the given id, or nil when absent.
// Absence is not an error.
func (r *Repo[T, PT]) GetByID(ctx context.Context, id string) (*T, error) {
	row := r.DB.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT %s FROM %s WHERE id=?`, r.selectList(), r.Table.Name), id)
	rec, err := r.Table.Scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", r.Table.Name, err)
	}
	return &rec, nil
}

// Create persists a new row, assigning an identity and timestamps when unset.
func (r *Repo[T, PT]) Create(ctx context.Context, rec PT) error {
	return r.create(ctx, r.DB, rec)
}

// CreateTx is Create inside a caller-owned transaction.
func (r *Repo[T, PT]) CreateTx(ctx context.Context, tx *sql.Tx, rec PT) error {
	return r.create(ctx, tx, rec)
}

func (r *Repo[T, PT]) create(ctx context.Context, q querier, rec PT) error {
	if rec.RecordID() == "" {
		rec.SetRecordID(uuid.New().String())
	}
	rec.Stamp(r.now())
	query := fmt.Sprintf(`INSERT INTO %s(%s) VALUES (%s)`,
		r.Table.Name, strings.Join(r.Table.Columns, ","), placeholders(len(r.Table.Columns)))
	if _, err := q.ExecContext(ctx, query, r.Table.Values((*T)(rec))...); err != nil {
		return fmt.Errorf("insert %s: %w", r.Table.Name, err)
	}
	return nil
}

// Update persists the in-memory state of an entity as an upsert: a row with
// the same id is overwritten, a missing row is created (merge semantics).
// The update timestamp is refreshed either way.
func (r *Repo[T, PT]) Update(ctx context.Context, rec PT) error {
	return r.update(ctx, r.DB, rec)
}

// UpdateTx is Update inside a caller-owned transaction.
func (r *Repo[T, PT]) UpdateTx(ctx context.Context, tx *sql.Tx, rec PT) error {
	return r.update(ctx, tx, rec)
}

func (r *Repo[T, PT]) update(ctx context.Context, q querier, rec PT) error {
	if rec.RecordID() == "" {
		rec.SetRecordID(uuid.New().String())
	}
	rec.Stamp(r.now())
	sets := make([]string, 0, len(r.Table.Columns)-1)
	for _, col := range r.Table.Columns[1:] {
		sets = append(sets, col+"=excluded."+col)
	}
	query := fmt.Sprintf(`INSERT INTO %s(%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s`,
		r.Table.Name, strings.Join(r.Table.Columns, ","), placeholders(len(r.Table.Columns)),
		strings.Join(sets, ", "))
	if _, err := q.ExecContext(ctx, query, r.Table.Values((*T)(rec))...); err != nil {
		return fmt.Errorf("upsert %s: %w", r.Table.Name, err)
	}
	return nil
}

// Delete removes the row with the given id and reports whether one existed.
// Deleting a missing id is not an error.
func (r *Repo[T, PT]) Delete(ctx context.Context, id string) (bool, error) {
	return r.delete(ctx, r.DB, id)
}

// DeleteTx is Delete inside a caller-owned transaction.
func (r *Repo[T, PT]) DeleteTx(ctx context.Context, tx *sql.Tx, id string) (bool, error) {
	return r.delete(ctx, tx, id)
}

func (r *Repo[T, PT]) delete(ctx context.Context, q querier, id string) (bool, error) {
	res, err := q.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id=?`, r.Table.Name), id)
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", r.Table.Name, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Search returns all instances where every named field equals the given
// value. Filter keys that are not columns of the bound table are skipped.
func (r *Repo[T, PT]) Search(ctx context.Context, filters map[string]any) ([]T, error) {
	var clauses []string
	var args []any
	for _, col := range r.Table.Columns {
		if v, ok := filters[col]; ok {
			clauses = append(clauses, col+"=?")
			args = append(args, v)
		}
	}
	query := fmt.Sprintf(`SELECT %s FROM %s`, r.selectList(), r.Table.Name)
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	return r.queryMany(ctx, r.DB, query, args...)
}

func (r *Repo[T, PT]) queryMany(ctx context.Context, q querier, query string, args ...any) ([]T, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", r.Table.Name, err)
	}
	defer rows.Close()
	var res []T
	for rows.Next() {
		rec, err := r.Table.Scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.Table.Name, err)
		}
		res = append(res, rec)
	}
	return res, rows.Err()
}

func (r *Repo[T, PT]) selectList() string {
	return strings.Join(r.Table.Columns, ",")
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func nullable(v string) any {
	if v == "" {
		return nil
	}
	return v
}

func nullableStringPtr(v *string) any {
	if v == nil {
		return nil
	}
	if *v == "" {
		return nil
	}
	return *v
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
