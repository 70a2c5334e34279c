package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mesh-intelligence/huntbook/pkg/types"
)

// dbtx is the subset of *sql.DB and *sql.Tx the tables need.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// tableDef describes how one entity type maps onto its SQLite table. The id
// column is implicit; columns lists the remaining columns in the order
// values returns them and scan reads them.
type tableDef[T any] struct {
	name     string
	columns  []string
	indexed  map[string]bool
	id       func(*T) int64
	setID    func(*T, int64)
	values   func(*T) []any
	scan     func(rowScanner) (*T, error)
	validate func(*T) error
}

func (d *tableDef[T]) hasColumn(field string) bool {
	for _, c := range d.columns {
		if c == field {
			return true
		}
	}
	return false
}

func (d *tableDef[T]) selectList() string {
	return "id, " + strings.Join(d.columns, ", ")
}

// Table provides CRUD access to one entity table. A Table is bound either to
// the database (conn set) or to a running transaction (conn nil).
type Table[T any] struct {
	def  *tableDef[T]
	db   dbtx
	conn *sql.DB
}

func newTable[T any](def *tableDef[T], db dbtx, conn *sql.DB) *Table[T] {
	return &Table[T]{def: def, db: db, conn: conn}
}

// Name returns the SQLite table name.
func (t *Table[T]) Name() string { return t.def.name }

// Add inserts v and assigns the generated id back to it.
func (t *Table[T]) Add(ctx context.Context, v *T) (int64, error) {
	if err := t.check(v); err != nil {
		return 0, err
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		t.def.name, strings.Join(t.def.columns, ", "), placeholders(len(t.def.columns)))
	res, err := t.db.ExecContext(ctx, query, t.def.values(v)...)
	if err != nil {
		return 0, t.wrap("insert", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, t.wrap("insert", err)
	}
	t.def.setID(v, id)
	return id, nil
}

// Get returns the row with the given id.
func (t *Table[T]) Get(ctx context.Context, id int64) (*T, error) {
	if id <= 0 {
		return nil, types.ErrInvalidID
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", t.def.selectList(), t.def.name)
	v, err := t.def.scan(t.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s %d: %w", t.def.name, id, types.ErrNotFound)
	}
	if err != nil {
		return nil, t.wrap("get", err)
	}
	return v, nil
}

// Update applies a partial update to the row with the given id. Field names
// are column names; unknown fields fail with ErrInvalidField.
func (t *Table[T]) Update(ctx context.Context, id int64, fields map[string]any) error {
	if id <= 0 {
		return types.ErrInvalidID
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		if !t.def.hasColumn(name) {
			return fmt.Errorf("%s.%s: %w", t.def.name, name, types.ErrInvalidField)
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		_, err := t.Get(ctx, id)
		return err
	}
	sort.Strings(names)

	sets := make([]string, len(names))
	args := make([]any, 0, len(names)+1)
	for i, name := range names {
		sets[i] = name + " = ?"
		args = append(args, deref(fields[name]))
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", t.def.name, strings.Join(sets, ", "))
	res, err := t.db.ExecContext(ctx, query, args...)
	if err != nil {
		return t.wrap("update", err)
	}
	return t.affected(res, id)
}

// Put writes v under its own id, inserting or replacing the row. A zero id
// behaves like Add.
func (t *Table[T]) Put(ctx context.Context, v *T) (int64, error) {
	id := t.def.id(v)
	if id == 0 {
		return t.Add(ctx, v)
	}
	if err := t.check(v); err != nil {
		return 0, err
	}
	sets := make([]string, len(t.def.columns))
	for i, c := range t.def.columns {
		sets[i] = c + " = excluded." + c
	}
	query := fmt.Sprintf("INSERT INTO %s (id, %s) VALUES (?, %s) ON CONFLICT(id) DO UPDATE SET %s",
		t.def.name, strings.Join(t.def.columns, ", "), placeholders(len(t.def.columns)), strings.Join(sets, ", "))
	args := append([]any{id}, t.def.values(v)...)
	if _, err := t.db.ExecContext(ctx, query, args...); err != nil {
		return 0, t.wrap("put", err)
	}
	return id, nil
}

// Delete removes the row with the given id.
func (t *Table[T]) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return types.ErrInvalidID
	}
	res, err := t.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = ?", t.def.name), id)
	if err != nil {
		return t.wrap("delete", err)
	}
	return t.affected(res, id)
}

// BulkAdd inserts all rows or none. Outside a transaction it opens its own;
// inside one, the caller's transaction decides the outcome.
func (t *Table[T]) BulkAdd(ctx context.Context, rows []*T) error {
	if t.conn == nil {
		return t.addAll(ctx, rows)
	}
	tx, err := t.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin bulk insert: %w", t.def.name, err)
	}
	defer tx.Rollback()

	if err := newTable(t.def, tx, nil).addAll(ctx, rows); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit bulk insert: %w", t.def.name, err)
	}
	return nil
}

func (t *Table[T]) addAll(ctx context.Context, rows []*T) error {
	for _, v := range rows {
		if _, err := t.Add(ctx, v); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of rows.
func (t *Table[T]) Count(ctx context.Context) (int, error) {
	var n int
	if err := t.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+t.def.name).Scan(&n); err != nil {
		return 0, t.wrap("count", err)
	}
	return n, nil
}

// All returns every row in id order.
func (t *Table[T]) All(ctx context.Context) ([]*T, error) {
	return t.query(ctx, "ORDER BY id")
}

// AllByIndex returns the rows whose indexed field equals value, in id order.
// A nil value matches NULL.
func (t *Table[T]) AllByIndex(ctx context.Context, field string, value any) ([]*T, error) {
	if !t.def.indexed[field] {
		return nil, fmt.Errorf("%s.%s is not indexed: %w", t.def.name, field, types.ErrInvalidField)
	}
	return t.query(ctx, fmt.Sprintf("WHERE %s IS ? ORDER BY id", field), value)
}

// AllOrderedBy returns every row sorted ascending by field, ties by id.
func (t *Table[T]) AllOrderedBy(ctx context.Context, field string) ([]*T, error) {
	if field != "id" && !t.def.hasColumn(field) {
		return nil, fmt.Errorf("%s.%s: %w", t.def.name, field, types.ErrInvalidField)
	}
	return t.query(ctx, fmt.Sprintf("ORDER BY %s, id", field))
}

// deleteWhere removes every row whose field equals value and reports how
// many went.
func (t *Table[T]) deleteWhere(ctx context.Context, field string, value any) (int64, error) {
	res, err := t.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE %s = ?", t.def.name, field), value)
	if err != nil {
		return 0, t.wrap("delete", err)
	}
	return res.RowsAffected()
}

func (t *Table[T]) deleteAll(ctx context.Context) error {
	if _, err := t.db.ExecContext(ctx, "DELETE FROM "+t.def.name); err != nil {
		return t.wrap("clear", err)
	}
	return nil
}

func (t *Table[T]) query(ctx context.Context, clause string, args ...any) ([]*T, error) {
	q := fmt.Sprintf("SELECT %s FROM %s %s", t.def.selectList(), t.def.name, clause)
	rows, err := t.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, t.wrap("query", err)
	}
	defer rows.Close()

	var out []*T
	for rows.Next() {
		v, err := t.def.scan(rows)
		if err != nil {
			return nil, t.wrap("scan", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, t.wrap("query", err)
	}
	return out, nil
}

func (t *Table[T]) check(v *T) error {
	if v == nil {
		return fmt.Errorf("%s: nil row: %w", t.def.name, types.ErrInvalidData)
	}
	if t.def.validate == nil {
		return nil
	}
	if err := t.def.validate(v); err != nil {
		return fmt.Errorf("%s: %w: %w", t.def.name, types.ErrInvalidData, err)
	}
	return nil
}

func (t *Table[T]) affected(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return t.wrap("rows affected", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", t.def.name, id, types.ErrNotFound)
	}
	return nil
}

func (t *Table[T]) wrap(op string, err error) error {
	return fmt.Errorf("%s %s: %w", t.def.name, op, mapError(err))
}

// mapError translates SQLite constraint failures into sentinel errors.
func mapError(err error) error {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return err
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return fmt.Errorf("%w: %v", types.ErrConstraintViolation, err)
	case sqlite3.SQLITE_CONSTRAINT_CHECK, sqlite3.SQLITE_CONSTRAINT_NOTNULL:
		return fmt.Errorf("%w: %v", types.ErrInvalidData, err)
	}
	if se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		msg := se.Error()
		switch {
		case strings.Contains(msg, "UNIQUE constraint failed"):
			return fmt.Errorf("%w: %v", types.ErrConstraintViolation, err)
		case strings.Contains(msg, "CHECK constraint failed"), strings.Contains(msg, "NOT NULL constraint failed"):
			return fmt.Errorf("%w: %v", types.ErrInvalidData, err)
		}
	}
	return err
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// deref turns pointer fields into driver values so nil pointers bind as NULL
// and named string types bind as plain text.
func deref(v any) any {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil
	}
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		if rv.Bool() {
			return int64(1)
		}
		return int64(0)
	case reflect.Int, reflect.Int64, reflect.Int32:
		return rv.Int()
	}
	return rv.Interface()
}

// blob binds an empty image as NULL so it reads back as nil.
func blob(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return b
}
