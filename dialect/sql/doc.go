// Package sql builds SQL statements from registered table metadata and
// executes them over database/sql.
//
// Statement builders are created through Dialect and compile with Query,
// which returns the SQL text and its bind values without touching any
// connection:
//
//	users := sql.Dialect(dialect.PostgresProfile())
//	query, binds, err := users.Select("users").
//		Where(filter.GT(filter.C("users", "age"), schema.Int32Value(21))).
//		Query()
//
// Values are always bound, never inlined into the statement text; the one
// exception is DDL default literals, rendered by the dialect profile.
// Drafts are single-use: build, compile once, discard.
package sql
