package sql

import (
	"context"
	"database/sql"
	"slices"
	"strings"

	"github.com/quercus-db/quercus/dialect"
	"github.com/quercus-db/quercus/filter"
	"github.com/quercus-db/quercus/row"
	"github.com/quercus-db/quercus/schema"
)

// InsertBuilder builds an INSERT statement from one or more records.
// The column list is presence-driven: a column absent from the records is
// left out of the statement entirely, so defaults and identity columns
// fire on the backend. A NOT NULL column with no default that is absent
// fails at compile time instead of at the backend.
type InsertBuilder struct {
	builder   *DialectBuilder
	table     string
	records   []*Record
	returning []string
}

// Values appends a record. Multi-record inserts require every record to
// set the same columns.
func (i *InsertBuilder) Values(rs ...*Record) *InsertBuilder {
	i.records = append(i.records, rs...)
	return i
}

// Returning requests the given columns back from the insert. Compiles only
// on dialects with RETURNING; use ExecReturning for a portable read-back.
func (i *InsertBuilder) Returning(cols ...string) *InsertBuilder {
	i.returning = append(i.returning, cols...)
	return i
}

// columnList derives the statement's column list from the first record:
// the table's declared columns filtered to those the record sets. Declared
// order keeps the output stable regardless of assignment order.
func (i *InsertBuilder) columnList(t *schema.Table, r *Record) ([]string, error) {
	var cols []string
	for _, c := range t.Columns() {
		if r.Has(c.Name) {
			cols = append(cols, c.Name)
			continue
		}
		if c.Nullable || c.Generated != nil || c.OmitIfAbsent() {
			continue
		}
		return nil, &schema.MissingColumnError{Table: t.Name(), Column: c.Name}
	}
	// Catch assignments to columns the table does not declare.
	for _, name := range r.Columns() {
		if _, ok := t.Column(name); !ok {
			return nil, &schema.UnknownColumnError{Table: t.Name(), Column: name}
		}
	}
	return cols, nil
}

// Query compiles the statement.
func (i *InsertBuilder) Query() (string, []schema.Value, error) {
	p := i.builder.profile
	t, err := i.builder.tableDesc(i.table)
	if err != nil {
		return "", nil, err
	}
	if len(i.records) == 0 {
		return "", nil, ErrEmptyInsert
	}
	cols, err := i.columnList(t, i.records[0])
	if err != nil {
		return "", nil, err
	}
	if len(i.returning) > 0 && !p.SupportsReturning() {
		return "", nil, &ReturningUnsupportedError{Dialect: p.Name()}
	}
	for _, name := range i.returning {
		if _, ok := t.Column(name); !ok {
			return "", nil, &schema.UnknownColumnError{Table: i.table, Column: name}
		}
	}

	var (
		sb    strings.Builder
		binds []schema.Value
		pos   = 1
	)
	sb.WriteString("INSERT INTO ")
	sb.WriteString(i.builder.ident(i.table))
	sb.WriteString(" (")
	for n, name := range cols {
		if n > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(i.builder.ident(name))
	}
	sb.WriteString(") VALUES ")

	for n, r := range i.records {
		if got := i.presentDeclared(t, r); !slices.Equal(got, cols) {
			return "", nil, &InconsistentColumnSetError{Table: i.table, Want: cols, Got: got}
		}
		if n > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(")
		for m, name := range cols {
			v, _ := r.Value(name)
			if _, err := checkAssign(t, name, v); err != nil {
				return "", nil, err
			}
			if m > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.Placeholder(pos))
			pos++
			binds = append(binds, v)
		}
		sb.WriteString(")")
	}

	if len(i.returning) > 0 {
		sb.WriteString(" RETURNING ")
		for n, name := range i.returning {
			if n > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(i.builder.ident(name))
		}
	}
	return sb.String(), binds, nil
}

// presentDeclared returns the record's present columns in declared order,
// for homogeneity comparison against the statement's column list.
func (i *InsertBuilder) presentDeclared(t *schema.Table, r *Record) []string {
	var cols []string
	for _, c := range t.Columns() {
		if r.Has(c.Name) {
			cols = append(cols, c.Name)
		}
	}
	return cols
}

// ExecReturning inserts a single record and reads the requested columns
// back. On dialects with RETURNING it is one round trip. Elsewhere it
// inserts, takes LastInsertId and re-selects by primary key; between those
// two statements another writer may touch the row, so the read-back is
// best-effort rather than snapshot-consistent.
func (i *InsertBuilder) ExecReturning(ctx context.Context, drv dialect.ExecQuerier, cols ...string) (*row.Row, error) {
	p := i.builder.profile
	t, err := i.builder.tableDesc(i.table)
	if err != nil {
		return nil, err
	}
	keys := make([]row.Key, len(cols))
	for n, name := range cols {
		keys[n] = row.Key{Table: i.table, Column: name}
	}

	if p.SupportsReturning() {
		query, binds, err := i.Returning(cols...).Query()
		if err != nil {
			return nil, err
		}
		var rows Rows
		if err := drv.Query(ctx, query, BindArgs(binds), &rows); err != nil {
			return nil, err
		}
		return one(rows, i.builder.registry, keys)
	}

	pk, ok := t.PrimaryKey()
	if !ok || !pk.AutoIncrement {
		return nil, &ReturningUnsupportedError{Dialect: p.Name()}
	}
	query, binds, err := i.Query()
	if err != nil {
		return nil, err
	}
	var res sql.Result
	if err := drv.Exec(ctx, query, BindArgs(binds), &res); err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	sel := i.builder.Select(i.table).
		Columns(columnsOf(i.table, cols)...).
		Where(filter.EQ(filter.C(i.table, pk.Name), schema.Int64Value(id)))
	q, vs, err := sel.Query()
	if err != nil {
		return nil, err
	}
	var rows Rows
	if err := drv.Query(ctx, q, BindArgs(vs), &rows); err != nil {
		return nil, err
	}
	return one(rows, i.builder.registry, keys)
}

func columnsOf(table string, names []string) []filter.Column {
	out := make([]filter.Column, len(names))
	for i, n := range names {
		out[i] = filter.C(table, n)
	}
	return out
}

// one decodes exactly the first row of a result set.
func one(rows Rows, reg *schema.Registry, keys []row.Key) (*row.Row, error) {
	decoded, err := row.FromRows(rows.ColumnScanner, reg, keys)
	if err != nil {
		return nil, err
	}
	if len(decoded) == 0 {
		return nil, sql.ErrNoRows
	}
	return decoded[0], nil
}
