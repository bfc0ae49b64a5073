package row

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/quercus-db/quercus/schema"
)

// Key identifies a column within a decoded row. Rows may span several
// tables when the statement joined them, so the table name is part of the
// identity.
type Key struct {
	Table  string
	Column string
}

// Row is a decoded result row: a mapping from column identity to typed
// value, scoped to the columns the statement selected. A column that was
// not selected and a column that is NULL in storage both read back as the
// NULL value; row data alone cannot tell them apart.
type Row struct {
	values map[Key]schema.Value
}

// Value returns the decoded value of table.column, or NULL when the
// column is absent from the row.
func (r *Row) Value(table, column string) schema.Value {
	if v, ok := r.values[Key{Table: table, Column: column}]; ok {
		return v
	}
	return schema.NullValue()
}

// Has reports whether table.column was selected into the row.
func (r *Row) Has(table, column string) bool {
	_, ok := r.values[Key{Table: table, Column: column}]
	return ok
}

// Len returns the number of selected columns.
func (r *Row) Len() int { return len(r.values) }

// Decode converts one raw backend row into typed values. cells holds the
// scanned driver values in the same order as requested; each converts
// through the column's logical type from the registry. A storage tag that
// disagrees with the logical type fails with *schema.TypeMismatchError
// rather than best-effort coercion.
func Decode(reg *schema.Registry, requested []Key, cells []any) (*Row, error) {
	if len(cells) < len(requested) {
		missing := requested[len(cells)]
		return nil, &schema.MissingColumnError{Table: missing.Table, Column: missing.Column}
	}
	r := &Row{values: make(map[Key]schema.Value, len(requested))}
	for i, key := range requested {
		col, ok := reg.Resolve(key.Table, key.Column)
		if !ok {
			return nil, &schema.UnknownColumnError{Table: key.Table, Column: key.Column}
		}
		v, err := fromRaw(col, cells[i])
		if err != nil {
			return nil, locate(err, key)
		}
		r.values[key] = v
	}
	return r, nil
}

// Scanner is the subset of *sql.Rows that decoding needs. The driver's
// Rows wrapper satisfies it as well.
type Scanner interface {
	Close() error
	Err() error
	Next() bool
	Scan(dest ...any) error
}

var _ Scanner = (*sql.Rows)(nil)

// FromRows drains a result set into decoded rows and closes it. The result
// set's column order must match requested, which holds for any statement
// compiled by the quercus builders.
func FromRows(rows Scanner, reg *schema.Registry, requested []Key) ([]*Row, error) {
	defer rows.Close()
	var out []*Row
	for rows.Next() {
		cells := make([]any, len(requested))
		dest := make([]any, len(requested))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("quercus/row: scan: %w", err)
		}
		r, err := Decode(reg, requested, cells)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("quercus/row: rows: %w", err)
	}
	return out, nil
}

// fromRaw converts a cell through the value model, carrying the custom
// type tag for user-defined columns.
func fromRaw(col *schema.Column, raw any) (schema.Value, error) {
	v, err := schema.FromRaw(col.Type, raw)
	if err != nil {
		return schema.Value{}, err
	}
	if col.Type == schema.TypeCustom && !v.IsNull() {
		if p, ok := raw.([]byte); ok {
			return schema.CustomRawValue(col.CustomTag, p), nil
		}
	}
	return v, nil
}

// locate stamps the failing column onto a decode error.
func locate(err error, key Key) error {
	var tm *schema.TypeMismatchError
	if errors.As(err, &tm) {
		tm.Table, tm.Column = key.Table, key.Column
		return tm
	}
	var of *schema.OverflowError
	if errors.As(err, &of) {
		of.Table, of.Column = key.Table, key.Column
		return of
	}
	return err
}
