// Package dialect provides the database dialect abstraction for quercus.
//
// It defines the Profile strategy interface consulted during statement
// compilation, one profile per supported backend, and the Driver interfaces
// that model the execution collaborator.
//
// # Supported Dialects
//
// Each dialect is identified by a constant string:
//
//	dialect.Postgres = "postgres"
//	dialect.MySQL    = "mysql"
//	dialect.SQLite   = "sqlite"
//
// # Dialect Profiles
//
// A Profile supplies everything that differs between engines: identifier
// quoting, placeholder syntax (? vs $n), supported join kinds, RETURNING
// availability, column type mapping and identity/default DDL fragments.
// Profiles are pure strategy tables; no backend-specific branching exists
// in the filter algebra or statement builders.
//
//	p := dialect.PostgresProfile()
//	p.Placeholder(1)                 // "$1"
//	p.QuoteIdent("users")            // "\"users\""
//	p.SupportsJoin(dialect.JoinFull) // true
//
// # Driver Interface
//
// The Driver interface models the external execution collaborator that
// owns connections, transactions and the wire protocol:
//
//	type Driver interface {
//	    Exec(ctx context.Context, query string, args, v any) error
//	    Query(ctx context.Context, query string, args, v any) error
//	    Tx(ctx context.Context) (Tx, error)
//	    Close() error
//	    Dialect() string
//	}
//
// dialect/sql implements it on top of database/sql. Wrap any Driver with
// Debug to log every outgoing statement through log/slog.
package dialect
