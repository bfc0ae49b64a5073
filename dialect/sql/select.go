package sql

import (
	"strconv"
	"strings"

	"github.com/quercus-db/quercus/dialect"
	"github.com/quercus-db/quercus/filter"
	"github.com/quercus-db/quercus/row"
	"github.com/quercus-db/quercus/schema"
)

// Selector builds a SELECT statement over a base table and its joins.
// The zero projection selects every declared column of every participating
// table, qualified, in declaration order; Columns narrows it.
type Selector struct {
	builder  *DialectBuilder
	table    string
	columns  []filter.Column
	joins    []joinClause
	where    filter.Node
	orderBy  []orderClause
	limit    int
	hasLimit bool
	offset   int
	distinct bool
}

type joinClause struct {
	kind  dialect.JoinKind
	table string
	on    filter.Node
}

type orderClause struct {
	col  filter.Column
	desc bool
}

// Columns narrows the projection to the given columns, in order. Calling
// it again appends.
func (s *Selector) Columns(cols ...filter.Column) *Selector {
	s.columns = append(s.columns, cols...)
	return s
}

// Join attaches a join of the given kind. Every kind except CROSS JOIN
// requires a predicate; CROSS JOIN rejects one. Violations and kinds the
// dialect does not support surface from Query, never as degraded SQL.
func (s *Selector) Join(kind dialect.JoinKind, table string, on filter.Node) *Selector {
	s.joins = append(s.joins, joinClause{kind: kind, table: table, on: on})
	return s
}

// InnerJoin attaches an inner join.
func (s *Selector) InnerJoin(table string, on filter.Node) *Selector {
	return s.Join(dialect.JoinInner, table, on)
}

// LeftJoin attaches a left outer join.
func (s *Selector) LeftJoin(table string, on filter.Node) *Selector {
	return s.Join(dialect.JoinLeft, table, on)
}

// RightJoin attaches a right outer join.
func (s *Selector) RightJoin(table string, on filter.Node) *Selector {
	return s.Join(dialect.JoinRight, table, on)
}

// FullJoin attaches a full outer join.
func (s *Selector) FullJoin(table string, on filter.Node) *Selector {
	return s.Join(dialect.JoinFull, table, on)
}

// CrossJoin attaches a cross join. Cross joins take no predicate.
func (s *Selector) CrossJoin(table string) *Selector {
	return s.Join(dialect.JoinCross, table, nil)
}

// Where filters the selection. Multiple calls AND together.
func (s *Selector) Where(n filter.Node) *Selector {
	if s.where == nil {
		s.where = n
	} else {
		s.where = filter.And(s.where, n)
	}
	return s
}

// OrderBy appends an ascending sort key.
func (s *Selector) OrderBy(col filter.Column) *Selector {
	s.orderBy = append(s.orderBy, orderClause{col: col})
	return s
}

// OrderByDesc appends a descending sort key.
func (s *Selector) OrderByDesc(col filter.Column) *Selector {
	s.orderBy = append(s.orderBy, orderClause{col: col, desc: true})
	return s
}

// Limit caps the number of returned rows.
func (s *Selector) Limit(n int) *Selector {
	s.limit, s.hasLimit = n, true
	return s
}

// Offset skips the first n rows.
func (s *Selector) Offset(n int) *Selector {
	s.offset = n
	return s
}

// Distinct deduplicates the result set.
func (s *Selector) Distinct() *Selector {
	s.distinct = true
	return s
}

// Keys returns the projection as decode keys, in the column order the
// compiled statement selects. Pass them to row.Decode or row.FromRows.
func (s *Selector) Keys() ([]row.Key, error) {
	cols, err := s.projection()
	if err != nil {
		return nil, err
	}
	keys := make([]row.Key, len(cols))
	for i, c := range cols {
		keys[i] = row.Key{Table: c.Table, Column: c.Name}
	}
	return keys, nil
}

// projection returns the effective column list: the explicit one, or every
// declared column of the base table followed by each joined table.
func (s *Selector) projection() ([]filter.Column, error) {
	if len(s.columns) > 0 {
		return s.columns, nil
	}
	tables := append([]string{s.table}, joinTables(s.joins)...)
	var cols []filter.Column
	for _, name := range tables {
		t, err := s.builder.tableDesc(name)
		if err != nil {
			return nil, err
		}
		for _, c := range t.Columns() {
			cols = append(cols, filter.C(name, c.Name))
		}
	}
	return cols, nil
}

func joinTables(joins []joinClause) []string {
	out := make([]string, len(joins))
	for i, j := range joins {
		out[i] = j.table
	}
	return out
}

// Query compiles the statement. Compilation is pure: it touches no
// connection, and the bind values come back in exactly the left-to-right
// placeholder order of the returned SQL.
func (s *Selector) Query() (string, []schema.Value, error) {
	p := s.builder.profile
	if _, err := s.builder.tableDesc(s.table); err != nil {
		return "", nil, err
	}
	resolver := newScopedResolver(s.builder.registry, append([]string{s.table}, joinTables(s.joins)...)...)

	cols, err := s.projection()
	if err != nil {
		return "", nil, err
	}
	proj := make([]string, len(cols))
	for i, c := range cols {
		if _, ok := resolver.Resolve(c.Table, c.Name); !ok {
			return "", nil, &schema.UnknownColumnError{Table: c.Table, Column: c.Name}
		}
		proj[i] = s.builder.qualify(c.Table, c.Name)
	}

	var (
		sb    strings.Builder
		binds []schema.Value
		pos   = 1
	)
	sb.WriteString("SELECT ")
	if s.distinct {
		sb.WriteString("DISTINCT ")
	}
	sb.WriteString(strings.Join(proj, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(s.builder.ident(s.table))

	for _, j := range s.joins {
		if !p.SupportsJoin(j.kind) {
			return "", nil, &UnsupportedJoinKindError{Dialect: p.Name(), Kind: j.kind}
		}
		if _, err := s.builder.tableDesc(j.table); err != nil {
			return "", nil, err
		}
		switch {
		case j.kind == dialect.JoinCross && j.on != nil:
			return "", nil, &UnexpectedPredicateError{Table: j.table, Kind: j.kind}
		case j.kind != dialect.JoinCross && j.on == nil:
			return "", nil, &UnexpectedPredicateError{Table: j.table, Kind: j.kind, Missing: true}
		}
		sb.WriteString(" ")
		sb.WriteString(string(j.kind))
		sb.WriteString(" ")
		sb.WriteString(s.builder.ident(j.table))
		if j.on != nil {
			frag, vs, err := filter.Compile(j.on, p, resolver, pos)
			if err != nil {
				return "", nil, err
			}
			sb.WriteString(" ON ")
			sb.WriteString(frag)
			binds = append(binds, vs...)
			pos += len(vs)
		}
	}

	if s.where != nil {
		vs, err := writeWhere(&sb, s.where, p, resolver, pos)
		if err != nil {
			return "", nil, err
		}
		binds = append(binds, vs...)
		pos += len(vs)
	}

	if len(s.orderBy) > 0 {
		parts := make([]string, len(s.orderBy))
		for i, o := range s.orderBy {
			if _, ok := resolver.Resolve(o.col.Table, o.col.Name); !ok {
				return "", nil, &schema.UnknownColumnError{Table: o.col.Table, Column: o.col.Name}
			}
			dir := " ASC"
			if o.desc {
				dir = " DESC"
			}
			parts[i] = s.builder.qualify(o.col.Table, o.col.Name) + dir
		}
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(parts, ", "))
	}

	if s.hasLimit {
		sb.WriteString(" LIMIT ")
		sb.WriteString(strconv.Itoa(s.limit))
	} else if s.offset > 0 {
		// MySQL and SQLite reject OFFSET without LIMIT.
		if frag := p.UnboundedLimit(); frag != "" {
			sb.WriteString(" LIMIT ")
			sb.WriteString(frag)
		}
	}
	if s.offset > 0 {
		sb.WriteString(" OFFSET ")
		sb.WriteString(strconv.Itoa(s.offset))
	}
	return sb.String(), binds, nil
}
