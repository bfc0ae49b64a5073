package dialect

import (
	"fmt"

	"github.com/quercus-db/quercus/schema"
)

// JoinKind is a SQL join flavor. The string value is the SQL keyword.
type JoinKind string

// Supported join kinds. Profiles report availability per backend.
const (
	JoinInner JoinKind = "JOIN"
	JoinLeft  JoinKind = "LEFT JOIN"
	JoinRight JoinKind = "RIGHT JOIN"
	JoinFull  JoinKind = "FULL JOIN"
	JoinCross JoinKind = "CROSS JOIN"
)

// Profile is the per-backend strategy consulted during compilation. It is
// a pure lookup table with no mutable state: identifier quoting, bind
// placeholder syntax, join-kind and RETURNING availability, type mapping
// and the DDL fragments that differ between engines. Adding a backend
// means providing one new Profile; no other component changes.
type Profile interface {
	// Name returns the dialect name (one of the constants above).
	Name() string
	// QuoteIdent quotes a single identifier according to backend rules.
	QuoteIdent(ident string) string
	// Placeholder returns the bind placeholder for the 1-based position.
	Placeholder(pos int) string
	// SupportsJoin reports whether the backend implements the join kind.
	SupportsJoin(k JoinKind) bool
	// SupportsReturning reports whether INSERT/UPDATE/DELETE may carry a
	// RETURNING clause.
	SupportsReturning() bool
	// ColumnType maps a logical type to the backend's column type.
	ColumnType(t schema.Type) string
	// AutoIncrement returns the identity DDL fragment, or "" when the
	// backend generates values without one (SQLite rowid).
	AutoIncrement() string
	// CurrentTimestamp returns the DDL expression for a
	// current-timestamp default.
	CurrentTimestamp() string
	// RandomUUID returns the DDL expression for a random-UUID default.
	RandomUUID() string
	// Literal renders a value as a DDL literal. Only DDL defaults are
	// ever rendered as text; statement compilation always binds.
	Literal(v schema.Value) string
	// PatternExpr builds a pattern-match fragment for the qualified
	// column and placeholder, honoring case sensitivity.
	PatternExpr(col, placeholder string, caseSensitive bool) string
	// LikePattern rewrites a LIKE pattern into the form PatternExpr's
	// fragment matches against. Most backends bind it untouched; SQLite
	// translates to GLOB syntax for case-sensitive matches.
	LikePattern(pattern string, caseSensitive bool) string
	// UnboundedLimit returns the LIMIT expression a standalone OFFSET
	// clause requires, or "" when the backend accepts OFFSET on its own.
	UnboundedLimit() string
}

// ProfileByName returns the profile for a dialect name.
func ProfileByName(name string) (Profile, error) {
	switch name {
	case MySQL:
		return MySQLProfile(), nil
	case Postgres:
		return PostgresProfile(), nil
	case SQLite:
		return SQLiteProfile(), nil
	default:
		return nil, fmt.Errorf("quercus/dialect: unsupported dialect %q", name)
	}
}
