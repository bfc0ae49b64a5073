package dialect

import (
	"fmt"
	"strings"

	"github.com/quercus-db/quercus/schema"
)

type postgresProfile struct{}

// PostgresProfile returns the PostgreSQL dialect profile.
func PostgresProfile() Profile { return postgresProfile{} }

func (postgresProfile) Name() string { return Postgres }

// QuoteIdent quotes with double quotes, doubling embedded quotes.
func (postgresProfile) QuoteIdent(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

// Placeholder is positional: $1, $2, ...
func (postgresProfile) Placeholder(pos int) string {
	return fmt.Sprintf("$%d", pos)
}

func (postgresProfile) SupportsJoin(JoinKind) bool { return true }

func (postgresProfile) SupportsReturning() bool { return true }

func (postgresProfile) ColumnType(t schema.Type) string {
	switch t {
	case schema.TypeBool:
		return "BOOLEAN"
	case schema.TypeInt8, schema.TypeInt16, schema.TypeUint8:
		return "SMALLINT"
	case schema.TypeInt32, schema.TypeUint16:
		return "INTEGER"
	case schema.TypeInt64, schema.TypeUint32, schema.TypeUint64:
		return "BIGINT"
	case schema.TypeFloat32:
		return "REAL"
	case schema.TypeFloat64:
		return "DOUBLE PRECISION"
	case schema.TypeString:
		return "VARCHAR(255)"
	case schema.TypeBytes, schema.TypeCustom:
		return "BYTEA"
	case schema.TypeTime:
		return "TIMESTAMP WITH TIME ZONE"
	case schema.TypeUUID:
		return "UUID"
	default:
		return "TEXT"
	}
}

func (postgresProfile) AutoIncrement() string { return "GENERATED ALWAYS AS IDENTITY" }

func (postgresProfile) CurrentTimestamp() string { return "CURRENT_TIMESTAMP" }

func (postgresProfile) RandomUUID() string { return "gen_random_uuid()" }

func (postgresProfile) Literal(v schema.Value) string {
	switch v.Type() {
	case schema.TypeBytes, schema.TypeCustom:
		return `'\x` + hexBytes(v) + "'"
	default:
		return literal(v)
	}
}

func (postgresProfile) PatternExpr(col, ph string, caseSensitive bool) string {
	if caseSensitive {
		return fmt.Sprintf("%s LIKE %s", col, ph)
	}
	return fmt.Sprintf("%s ILIKE %s", col, ph)
}

func (postgresProfile) LikePattern(pattern string, _ bool) string { return pattern }

// UnboundedLimit is empty: OFFSET stands on its own.
func (postgresProfile) UnboundedLimit() string { return "" }
