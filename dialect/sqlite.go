package dialect

import (
	"fmt"
	"strings"

	"github.com/quercus-db/quercus/schema"
)

type sqliteProfile struct{}

// SQLiteProfile returns the SQLite dialect profile.
func SQLiteProfile() Profile { return sqliteProfile{} }

func (sqliteProfile) Name() string { return SQLite }

// QuoteIdent quotes with double quotes like Postgres.
func (sqliteProfile) QuoteIdent(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

func (sqliteProfile) Placeholder(int) string { return "?" }

func (sqliteProfile) SupportsJoin(k JoinKind) bool {
	return k == JoinInner || k == JoinLeft || k == JoinCross
}

func (sqliteProfile) SupportsReturning() bool { return true }

// ColumnType maps onto SQLite's affinity system; every integer width
// shares the INTEGER storage class.
func (sqliteProfile) ColumnType(t schema.Type) string {
	switch t {
	case schema.TypeBool:
		return "BOOLEAN"
	case schema.TypeInt8, schema.TypeInt16, schema.TypeInt32, schema.TypeInt64,
		schema.TypeUint8, schema.TypeUint16, schema.TypeUint32, schema.TypeUint64:
		return "INTEGER"
	case schema.TypeFloat32, schema.TypeFloat64:
		return "REAL"
	case schema.TypeBytes, schema.TypeCustom:
		return "BLOB"
	default:
		// Text, timestamps and UUIDs are stored as text.
		return "TEXT"
	}
}

// AutoIncrement is empty: an INTEGER PRIMARY KEY aliases the rowid and
// generates values without an explicit keyword.
func (sqliteProfile) AutoIncrement() string { return "" }

func (sqliteProfile) CurrentTimestamp() string { return "(datetime('now'))" }

func (sqliteProfile) RandomUUID() string { return "(lower(hex(randomblob(16))))" }

// Literal stores booleans as integers, like MySQL.
func (sqliteProfile) Literal(v schema.Value) string {
	if b, ok := v.Bool(); ok {
		if b {
			return "1"
		}
		return "0"
	}
	return literal(v)
}

// PatternExpr: SQLite LIKE is case-insensitive for ASCII, so the
// case-sensitive form matches with GLOB against a translated pattern and
// the insensitive form lowers both sides explicitly.
func (sqliteProfile) PatternExpr(col, ph string, caseSensitive bool) string {
	if caseSensitive {
		return fmt.Sprintf("%s GLOB %s", col, ph)
	}
	return fmt.Sprintf("LOWER(%s) LIKE LOWER(%s)", col, ph)
}

// UnboundedLimit is the negative-limit form OFFSET requires.
func (sqliteProfile) UnboundedLimit() string { return "-1" }

// LikePattern translates LIKE wildcards to GLOB syntax for case-sensitive
// matches: % becomes *, _ becomes ?, and GLOB's own metacharacters are
// escaped with character classes.
func (sqliteProfile) LikePattern(pattern string, caseSensitive bool) string {
	if !caseSensitive {
		return pattern
	}
	var sb strings.Builder
	sb.Grow(len(pattern))
	for _, r := range pattern {
		switch r {
		case '%':
			sb.WriteByte('*')
		case '_':
			sb.WriteByte('?')
		case '*':
			sb.WriteString("[*]")
		case '?':
			sb.WriteString("[?]")
		case '[':
			sb.WriteString("[[]")
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
