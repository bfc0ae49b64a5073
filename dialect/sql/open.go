package sql

import (
	"database/sql"

	"github.com/quercus-db/quercus/dialect"

	// Bundled database/sql drivers for the supported dialects.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// driverName maps a dialect name to the registered database/sql driver.
// The names coincide for the bundled drivers; the indirection keeps Open
// honest if a driver with a different registration name is swapped in.
func driverName(dialectName string) string {
	switch dialectName {
	case dialect.MySQL:
		return "mysql"
	case dialect.Postgres:
		return "postgres"
	case dialect.SQLite:
		return "sqlite"
	default:
		return dialectName
	}
}

// Open opens a connection to the database identified by the dialect name
// and data source, and returns a Driver ready for the statement builders.
func Open(dialectName, source string) (*Driver, error) {
	db, err := sql.Open(driverName(dialectName), source)
	if err != nil {
		return nil, err
	}
	return NewDriver(dialectName, Conn{db, dialectName}), nil
}
