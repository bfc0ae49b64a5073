package sql

import (
	"strings"

	"github.com/quercus-db/quercus/filter"
	"github.com/quercus-db/quercus/schema"
)

// UpdateBuilder builds an UPDATE statement from a sparse patch. Only the
// columns the caller sets appear in the SET clause; everything else is
// untouched on the backend.
type UpdateBuilder struct {
	builder *DialectBuilder
	table   string
	record  *Record
	where   filter.Node
}

// Set assigns a value to the column.
func (u *UpdateBuilder) Set(column string, v schema.Value) *UpdateBuilder {
	u.record.Set(column, v)
	return u
}

// SetNull assigns SQL NULL to the column explicitly.
func (u *UpdateBuilder) SetNull(column string) *UpdateBuilder {
	u.record.SetNull(column)
	return u
}

// SetRecord merges a record's assignments into the patch.
func (u *UpdateBuilder) SetRecord(r *Record) *UpdateBuilder {
	for _, name := range r.Columns() {
		v, _ := r.Value(name)
		u.record.Set(name, v)
	}
	return u
}

// Where filters the rows to update. Multiple calls AND together. An
// UPDATE without a filter touches every row; unlike DELETE it needs no
// confirmation since the patch states exactly what changes.
func (u *UpdateBuilder) Where(n filter.Node) *UpdateBuilder {
	if u.where == nil {
		u.where = n
	} else {
		u.where = filter.And(u.where, n)
	}
	return u
}

// Query compiles the statement. SET binds come first, in assignment order,
// then the WHERE binds, matching placeholder order.
func (u *UpdateBuilder) Query() (string, []schema.Value, error) {
	p := u.builder.profile
	t, err := u.builder.tableDesc(u.table)
	if err != nil {
		return "", nil, err
	}
	if u.record.Len() == 0 {
		return "", nil, ErrEmptyUpdate
	}

	var (
		sb    strings.Builder
		binds []schema.Value
		pos   = 1
	)
	sb.WriteString("UPDATE ")
	sb.WriteString(u.builder.ident(u.table))
	sb.WriteString(" SET ")
	for n, name := range u.record.Columns() {
		v, _ := u.record.Value(name)
		if _, err := checkAssign(t, name, v); err != nil {
			return "", nil, err
		}
		if n > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(u.builder.ident(name))
		sb.WriteString(" = ")
		sb.WriteString(p.Placeholder(pos))
		pos++
		binds = append(binds, v)
	}

	if u.where != nil {
		resolver := newScopedResolver(u.builder.registry, u.table)
		vs, err := writeWhere(&sb, u.where, p, resolver, pos)
		if err != nil {
			return "", nil, err
		}
		binds = append(binds, vs...)
	}
	return sb.String(), binds, nil
}
