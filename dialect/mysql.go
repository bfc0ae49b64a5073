package dialect

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/quercus-db/quercus/schema"
)

type mysqlProfile struct{}

// MySQLProfile returns the MySQL dialect profile.
func MySQLProfile() Profile { return mysqlProfile{} }

func (mysqlProfile) Name() string { return MySQL }

// QuoteIdent quotes with backticks, doubling embedded backticks.
func (mysqlProfile) QuoteIdent(ident string) string {
	return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
}

func (mysqlProfile) Placeholder(int) string { return "?" }

func (mysqlProfile) SupportsJoin(k JoinKind) bool { return k != JoinFull }

func (mysqlProfile) SupportsReturning() bool { return false }

func (mysqlProfile) ColumnType(t schema.Type) string {
	switch t {
	case schema.TypeBool:
		return "BOOLEAN"
	case schema.TypeInt8:
		return "TINYINT"
	case schema.TypeInt16:
		return "SMALLINT"
	case schema.TypeInt32:
		return "INTEGER"
	case schema.TypeInt64:
		return "BIGINT"
	case schema.TypeUint8:
		return "TINYINT UNSIGNED"
	case schema.TypeUint16:
		return "SMALLINT UNSIGNED"
	case schema.TypeUint32:
		return "INTEGER UNSIGNED"
	case schema.TypeUint64:
		return "BIGINT UNSIGNED"
	case schema.TypeFloat32:
		return "FLOAT"
	case schema.TypeFloat64:
		return "DOUBLE"
	case schema.TypeString:
		return "VARCHAR(255)"
	case schema.TypeBytes, schema.TypeCustom:
		return "BLOB"
	case schema.TypeTime:
		return "DATETIME"
	case schema.TypeUUID:
		return "CHAR(36)"
	default:
		return "TEXT"
	}
}

func (mysqlProfile) AutoIncrement() string { return "AUTO_INCREMENT" }

func (mysqlProfile) CurrentTimestamp() string { return "CURRENT_TIMESTAMP" }

func (mysqlProfile) RandomUUID() string { return "(UUID())" }

// Literal stores booleans as integers; the Value model keeps them as a
// distinct variant either way.
func (mysqlProfile) Literal(v schema.Value) string {
	if b, ok := v.Bool(); ok {
		if b {
			return "1"
		}
		return "0"
	}
	return literal(v)
}

func (mysqlProfile) PatternExpr(col, ph string, caseSensitive bool) string {
	// MySQL LIKE follows column collation; BINARY forces byte comparison.
	if caseSensitive {
		return fmt.Sprintf("%s LIKE BINARY %s", col, ph)
	}
	return fmt.Sprintf("LOWER(%s) LIKE LOWER(%s)", col, ph)
}

func (mysqlProfile) LikePattern(pattern string, _ bool) string { return pattern }

// UnboundedLimit is the documented way to use OFFSET without LIMIT.
func (mysqlProfile) UnboundedLimit() string { return "18446744073709551615" }

// literal renders the dialect-agnostic literal forms shared by the
// profiles. Strings escape single quotes by doubling.
func literal(v schema.Value) string {
	switch v.Type() {
	case schema.TypeNull:
		return "NULL"
	case schema.TypeBool:
		b, _ := v.Bool()
		if b {
			return "TRUE"
		}
		return "FALSE"
	case schema.TypeString:
		s, _ := v.Text()
		return "'" + strings.ReplaceAll(s, "'", "''") + "'"
	case schema.TypeBytes, schema.TypeCustom:
		return "X'" + strings.ToUpper(hexBytes(v)) + "'"
	case schema.TypeTime:
		t, _ := v.Time()
		return "'" + t.UTC().Format("2006-01-02 15:04:05") + "'"
	case schema.TypeUUID:
		id, _ := v.UUID()
		return "'" + id.String() + "'"
	default:
		if i, ok := v.Int(); ok {
			return fmt.Sprint(i)
		}
		if u, ok := v.Uint(); ok {
			return fmt.Sprint(u)
		}
		f, _ := v.Float()
		return fmt.Sprint(f)
	}
}

func hexBytes(v schema.Value) string {
	p, ok := v.Bytes()
	if !ok {
		p = v.Bind().([]byte)
	}
	return hex.EncodeToString(p)
}
