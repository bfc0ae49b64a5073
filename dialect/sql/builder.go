package sql

import (
	"fmt"
	"strings"

	"github.com/quercus-db/quercus/dialect"
	"github.com/quercus-db/quercus/filter"
	"github.com/quercus-db/quercus/schema"
)

// DialectBuilder is the entry point for building statements against a
// specific dialect. It carries only the profile and the registry; the
// statement builders it hands out are single-use drafts.
type DialectBuilder struct {
	profile  dialect.Profile
	registry *schema.Registry
}

// Dialect creates a builder for the given dialect profile, resolving
// tables against the default registry.
func Dialect(p dialect.Profile) *DialectBuilder {
	return &DialectBuilder{profile: p, registry: schema.DefaultRegistry()}
}

// WithRegistry switches table resolution to reg.
func (b *DialectBuilder) WithRegistry(reg *schema.Registry) *DialectBuilder {
	b.registry = reg
	return b
}

// Profile returns the dialect profile statements compile against.
func (b *DialectBuilder) Profile() dialect.Profile { return b.profile }

// Select returns a SELECT draft over the given base table.
func (b *DialectBuilder) Select(table string) *Selector {
	return &Selector{builder: b, table: table}
}

// Insert returns an INSERT draft for the given table.
func (b *DialectBuilder) Insert(table string) *InsertBuilder {
	return &InsertBuilder{builder: b, table: table}
}

// Update returns an UPDATE draft for the given table.
func (b *DialectBuilder) Update(table string) *UpdateBuilder {
	return &UpdateBuilder{builder: b, table: table, record: NewRecord()}
}

// Delete returns a DELETE draft for the given table.
func (b *DialectBuilder) Delete(table string) *DeleteBuilder {
	return &DeleteBuilder{builder: b, table: table}
}

// CreateTable returns a CREATE TABLE draft for the given table.
func (b *DialectBuilder) CreateTable(table string) *CreateTableBuilder {
	return &CreateTableBuilder{builder: b, table: table}
}

// tableDesc looks a table up in the registry.
func (b *DialectBuilder) tableDesc(name string) (*schema.Table, error) {
	t, ok := b.registry.Table(name)
	if !ok {
		return nil, &schema.UnknownTableError{Name: name}
	}
	return t, nil
}

// ident quotes a single identifier.
func (b *DialectBuilder) ident(name string) string {
	return b.profile.QuoteIdent(name)
}

// qualify quotes a table.column pair.
func (b *DialectBuilder) qualify(table, column string) string {
	return b.profile.QuoteIdent(table) + "." + b.profile.QuoteIdent(column)
}

// Record is a sparse set of column assignments for INSERT and UPDATE
// statements. Presence is tri-state: a column may be set to a value, set
// to NULL explicitly, or absent. Absence means "say nothing about this
// column", which lets backend defaults and identity columns fire; it is
// never collapsed into binding NULL.
type Record struct {
	order  []string
	values map[string]schema.Value
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{values: make(map[string]schema.Value)}
}

// Set assigns a value to the column. Setting the same column again
// replaces the value but keeps its original position in the column list.
func (r *Record) Set(column string, v schema.Value) *Record {
	if _, ok := r.values[column]; !ok {
		r.order = append(r.order, column)
	}
	r.values[column] = v
	return r
}

// SetNull assigns SQL NULL to the column explicitly.
func (r *Record) SetNull(column string) *Record {
	return r.Set(column, schema.NullValue())
}

// Has reports whether the column is present in the record.
func (r *Record) Has(column string) bool {
	_, ok := r.values[column]
	return ok
}

// Value returns the assigned value of a present column.
func (r *Record) Value(column string) (schema.Value, bool) {
	v, ok := r.values[column]
	return v, ok
}

// Columns returns the present columns in assignment order.
func (r *Record) Columns() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of present columns.
func (r *Record) Len() int { return len(r.order) }

// scopedResolver restricts column resolution to the tables participating
// in one statement. A predicate naming any other table fails to compile
// even when that table is registered.
type scopedResolver struct {
	registry *schema.Registry
	tables   map[string]struct{}
}

func newScopedResolver(reg *schema.Registry, tables ...string) scopedResolver {
	r := scopedResolver{registry: reg, tables: make(map[string]struct{}, len(tables))}
	for _, t := range tables {
		r.tables[t] = struct{}{}
	}
	return r
}

func (r scopedResolver) Resolve(table, column string) (*schema.Column, bool) {
	if _, ok := r.tables[table]; !ok {
		return nil, false
	}
	return r.registry.Resolve(table, column)
}

var _ filter.Resolver = scopedResolver{}

// checkAssign validates one column assignment at compile time: the column
// must exist, must not be generated, NULL requires nullability, a non-NULL
// value must carry the declared logical type, and the column's validators
// must accept it.
func checkAssign(t *schema.Table, column string, v schema.Value) (*schema.Column, error) {
	col, ok := t.Column(column)
	if !ok {
		return nil, &schema.UnknownColumnError{Table: t.Name(), Column: column}
	}
	if col.Generated != nil {
		return nil, &GeneratedColumnError{Table: t.Name(), Column: column}
	}
	if v.IsNull() {
		if !col.Nullable {
			return nil, &NotNullError{Table: t.Name(), Column: column}
		}
		return col, nil
	}
	if v.Type() != col.Type {
		return nil, &schema.TypeMismatchError{
			Table:  t.Name(),
			Column: column,
			Type:   col.Type,
			Stored: v.Type().String(),
		}
	}
	if col.Type == schema.TypeCustom {
		// Custom values and columns must agree on the type tag.
		if tag, _ := v.CustomTag(); tag != col.CustomTag {
			return nil, &schema.TypeMismatchError{
				Table:  t.Name(),
				Column: column,
				Type:   col.Type,
				Stored: fmt.Sprintf("custom value tagged %q", tag),
			}
		}
	}
	if err := col.Validate(v); err != nil {
		return nil, err
	}
	return col, nil
}

// BindArgs converts compiled bind values into driver arguments.
func BindArgs(vs []schema.Value) []any {
	args := make([]any, len(vs))
	for i, v := range vs {
		args[i] = v.Bind()
	}
	return args
}

// writeWhere compiles the predicate and appends the WHERE clause,
// returning the bind values it consumed. pos is the 1-based position of
// the first placeholder the clause may use.
func writeWhere(sb *strings.Builder, n filter.Node, p dialect.Profile, r filter.Resolver, pos int) ([]schema.Value, error) {
	frag, binds, err := filter.Compile(n, p, r, pos)
	if err != nil {
		return nil, err
	}
	sb.WriteString(" WHERE ")
	sb.WriteString(frag)
	return binds, nil
}
