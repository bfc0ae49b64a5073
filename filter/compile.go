package filter

import (
	"fmt"
	"strings"

	"github.com/quercus-db/quercus/dialect"
	"github.com/quercus-db/quercus/schema"
)

// Tautologies emitted for degenerate predicates. Plain comparisons rather
// than TRUE/FALSE keywords, which not every backend accepts as standalone
// literals.
const (
	alwaysTrue  = "1 = 1"
	alwaysFalse = "1 = 0"
)

// Resolver validates column references against the tables participating in
// the statement under compilation. Statement builders implement it over a
// registry snapshot scoped to the base table and its joins.
type Resolver interface {
	Resolve(table, column string) (*schema.Column, bool)
}

// Compile turns a predicate tree into a SQL fragment and its ordered bind
// values. start is the 1-based position of the first placeholder the
// fragment may use; bind order exactly matches the left-to-right,
// depth-first placeholder order in the fragment, which is the order the
// driver binds against.
func Compile(n Node, p dialect.Profile, r Resolver, start int) (string, []schema.Value, error) {
	c := &compiler{profile: p, resolver: r, pos: start}
	frag, err := c.compile(n)
	if err != nil {
		return "", nil, err
	}
	return frag, c.binds, nil
}

type compiler struct {
	profile  dialect.Profile
	resolver Resolver
	pos      int // next placeholder position, 1-based
	binds    []schema.Value
}

// bind appends a value and returns its placeholder.
func (c *compiler) bind(v schema.Value) string {
	ph := c.profile.Placeholder(c.pos)
	c.pos++
	c.binds = append(c.binds, v)
	return ph
}

// column resolves and qualifies a column reference.
func (c *compiler) column(col Column) (string, error) {
	if _, ok := c.resolver.Resolve(col.Table, col.Name); !ok {
		return "", &schema.UnknownColumnError{Table: col.Table, Column: col.Name}
	}
	return c.profile.QuoteIdent(col.Table) + "." + c.profile.QuoteIdent(col.Name), nil
}

func (c *compiler) compile(n Node) (string, error) {
	switch n := n.(type) {
	case compare:
		return c.compare(n)
	case nullCheck:
		return c.nullCheck(n)
	case pattern:
		col, err := c.column(n.col)
		if err != nil {
			return "", err
		}
		ph := c.bind(schema.StringValue(c.profile.LikePattern(n.pattern, n.caseSensitive)))
		return c.profile.PatternExpr(col, ph, n.caseSensitive), nil
	case rangeCheck:
		col, err := c.column(n.col)
		if err != nil {
			return "", err
		}
		lo := c.bind(n.low)
		hi := c.bind(n.high)
		return fmt.Sprintf("%s BETWEEN %s AND %s", col, lo, hi), nil
	case membership:
		return c.membership(n)
	case and:
		return c.junction(n.children, "AND", alwaysTrue)
	case or:
		return c.junction(n.children, "OR", alwaysFalse)
	case not:
		// Push the negation into null-sensitive children so an equality
		// against NULL becomes IS NOT NULL at any nesting depth.
		if rewritten, ok := negate(n.child); ok {
			return c.compile(rewritten)
		}
		frag, err := c.compile(n.child)
		if err != nil {
			return "", err
		}
		return "NOT (" + frag + ")", nil
	default:
		return "", fmt.Errorf("quercus/filter: unknown node %T", n)
	}
}

func (c *compiler) compare(n compare) (string, error) {
	col, err := c.column(n.col)
	if err != nil {
		return "", err
	}
	switch {
	case n.right != nil:
		right, err := c.column(*n.right)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s %s %s", col, n.op.SQL(), right), nil
	case n.value.IsNull():
		// col = NULL and col <> NULL never match under three-valued
		// logic; emit the null check the caller almost certainly meant.
		switch n.op {
		case OpEQ:
			return col + " IS NULL", nil
		case OpNEQ:
			return col + " IS NOT NULL", nil
		default:
			return alwaysFalse, nil
		}
	default:
		ph := c.bind(n.value)
		return fmt.Sprintf("%s %s %s", col, n.op.SQL(), ph), nil
	}
}

func (c *compiler) nullCheck(n nullCheck) (string, error) {
	col, err := c.column(n.col)
	if err != nil {
		return "", err
	}
	if n.negated {
		return col + " IS NOT NULL", nil
	}
	return col + " IS NULL", nil
}

func (c *compiler) membership(n membership) (string, error) {
	col, err := c.column(n.col)
	if err != nil {
		return "", err
	}
	if len(n.values) == 0 {
		if n.negated {
			return alwaysTrue, nil
		}
		return alwaysFalse, nil
	}
	phs := make([]string, len(n.values))
	for i, v := range n.values {
		phs[i] = c.bind(v)
	}
	op := "IN"
	if n.negated {
		op = "NOT IN"
	}
	return fmt.Sprintf("%s %s (%s)", col, op, strings.Join(phs, ", ")), nil
}

// junction compiles an n-ary AND/OR. Zero children short-circuit to the
// identity fragment so composite builders never emit malformed SQL.
func (c *compiler) junction(children []Node, kw, identity string) (string, error) {
	if len(children) == 0 {
		return identity, nil
	}
	parts := make([]string, len(children))
	for i, child := range children {
		frag, err := c.compile(child)
		if err != nil {
			return "", err
		}
		parts[i] = frag
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return "(" + strings.Join(parts, " "+kw+" ") + ")", nil
}

// negate structurally rewrites the negation of null-sensitive nodes.
// It reports false when the child has no direct negation and must be
// wrapped in NOT (...).
func negate(n Node) (Node, bool) {
	switch n := n.(type) {
	case compare:
		if n.right == nil && n.value.IsNull() {
			switch n.op {
			case OpEQ:
				return nullCheck{col: n.col, negated: true}, true
			case OpNEQ:
				return nullCheck{col: n.col}, true
			}
		}
	case nullCheck:
		return nullCheck{col: n.col, negated: !n.negated}, true
	case membership:
		return membership{col: n.col, values: n.values, negated: !n.negated}, true
	case not:
		return n.child, true
	}
	return nil, false
}
