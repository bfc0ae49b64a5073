package sql

import (
	"strings"

	"github.com/quercus-db/quercus/filter"
	"github.com/quercus-db/quercus/schema"
)

// DeleteBuilder builds a DELETE statement. A delete with no filter wipes
// the table, so it must be confirmed with WithoutFilter; a missing filter
// alone fails at compile time.
type DeleteBuilder struct {
	builder    *DialectBuilder
	table      string
	where      filter.Node
	unfiltered bool
}

// Where filters the rows to delete. Multiple calls AND together.
func (d *DeleteBuilder) Where(n filter.Node) *DeleteBuilder {
	if d.where == nil {
		d.where = n
	} else {
		d.where = filter.And(d.where, n)
	}
	return d
}

// WithoutFilter confirms that the delete intentionally carries no filter
// and should remove every row.
func (d *DeleteBuilder) WithoutFilter() *DeleteBuilder {
	d.unfiltered = true
	return d
}

// Query compiles the statement.
func (d *DeleteBuilder) Query() (string, []schema.Value, error) {
	p := d.builder.profile
	if _, err := d.builder.tableDesc(d.table); err != nil {
		return "", nil, err
	}
	if d.where == nil && !d.unfiltered {
		return "", nil, ErrUnconfirmedDelete
	}

	var sb strings.Builder
	sb.WriteString("DELETE FROM ")
	sb.WriteString(d.builder.ident(d.table))
	if d.where == nil {
		return sb.String(), nil, nil
	}
	resolver := newScopedResolver(d.builder.registry, d.table)
	binds, err := writeWhere(&sb, d.where, p, resolver, 1)
	if err != nil {
		return "", nil, err
	}
	return sb.String(), binds, nil
}
