package filter

import "github.com/quercus-db/quercus/schema"

// Column references table.column inside a predicate. References are
// resolved when the statement is compiled, not when the tree is built, so
// filters can be constructed before joins are attached.
type Column struct {
	Table string
	Name  string
}

// C returns a column reference.
func C(table, name string) Column { return Column{Table: table, Name: name} }

// Op is a comparison operator.
type Op uint8

// Comparison operators.
const (
	OpEQ Op = iota
	OpNEQ
	OpGT
	OpGTE
	OpLT
	OpLTE
)

var opSQL = [...]string{
	OpEQ:  "=",
	OpNEQ: "<>",
	OpGT:  ">",
	OpGTE: ">=",
	OpLT:  "<",
	OpLTE: "<=",
}

// SQL returns the operator keyword.
func (o Op) SQL() string { return opSQL[o] }

// Node is an immutable predicate tree. Trees are built bottom-up with the
// constructors below; compiling never mutates a tree, so the same tree can
// be reused across statements.
type Node interface {
	node()
}

type (
	compare struct {
		col   Column
		op    Op
		value schema.Value
		right *Column // column-to-column comparison when set
	}

	nullCheck struct {
		col     Column
		negated bool // IS NOT NULL when true
	}

	pattern struct {
		col           Column
		pattern       string
		caseSensitive bool
	}

	rangeCheck struct {
		col       Column
		low, high schema.Value
	}

	membership struct {
		col     Column
		values  []schema.Value
		negated bool // NOT IN when true
	}

	and struct{ children []Node }
	or  struct{ children []Node }
	not struct{ child Node }
)

func (compare) node()    {}
func (nullCheck) node()  {}
func (pattern) node()    {}
func (rangeCheck) node() {}
func (membership) node() {}
func (and) node()        {}
func (or) node()         {}
func (not) node()        {}

// EQ returns a col = value predicate.
func EQ(col Column, v schema.Value) Node { return compare{col: col, op: OpEQ, value: v} }

// NEQ returns a col <> value predicate.
func NEQ(col Column, v schema.Value) Node { return compare{col: col, op: OpNEQ, value: v} }

// GT returns a col > value predicate.
func GT(col Column, v schema.Value) Node { return compare{col: col, op: OpGT, value: v} }

// GTE returns a col >= value predicate.
func GTE(col Column, v schema.Value) Node { return compare{col: col, op: OpGTE, value: v} }

// LT returns a col < value predicate.
func LT(col Column, v schema.Value) Node { return compare{col: col, op: OpLT, value: v} }

// LTE returns a col <= value predicate.
func LTE(col Column, v schema.Value) Node { return compare{col: col, op: OpLTE, value: v} }

// CompareColumns returns a column-to-column comparison, typically a join
// predicate.
func CompareColumns(a Column, op Op, b Column) Node {
	return compare{col: a, op: op, right: &b}
}

// EQColumn returns an a = b column comparison.
func EQColumn(a, b Column) Node { return CompareColumns(a, OpEQ, b) }

// IsNull returns a col IS NULL predicate.
func IsNull(col Column) Node { return nullCheck{col: col} }

// NotNull returns a col IS NOT NULL predicate.
func NotNull(col Column) Node { return nullCheck{col: col, negated: true} }

// Like returns a case-sensitive pattern match.
func Like(col Column, p string) Node {
	return pattern{col: col, pattern: p, caseSensitive: true}
}

// LikeFold returns a case-insensitive pattern match.
func LikeFold(col Column, p string) Node {
	return pattern{col: col, pattern: p}
}

// Between returns a low <= col <= high predicate. Both bounds bind.
func Between(col Column, low, high schema.Value) Node {
	return rangeCheck{col: col, low: low, high: high}
}

// In returns a set membership predicate. An empty set compiles to an
// always-false fragment.
func In(col Column, vs ...schema.Value) Node {
	return membership{col: col, values: vs}
}

// NotIn returns a negated set membership predicate. An empty set compiles
// to an always-true fragment.
func NotIn(col Column, vs ...schema.Value) Node {
	return membership{col: col, values: vs, negated: true}
}

// And returns the conjunction of the given predicates. And() with no
// children is the always-true predicate.
func And(children ...Node) Node { return and{children: children} }

// Or returns the disjunction of the given predicates. Or() with no
// children is the always-false predicate.
func Or(children ...Node) Node { return or{children: children} }

// Not negates a predicate. Negating an equality against NULL rewrites to
// the matching IS [NOT] NULL check instead of a NOT (col = NULL) fragment,
// which three-valued logic would never match.
func Not(child Node) Node { return not{child: child} }
