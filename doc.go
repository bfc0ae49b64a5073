// Package quercus is a typed query-compilation engine for SQL databases.
//
// Quercus sits between an application's typed data model and a SQL driver.
// A schema is declared once through fluent column builders, registered in a
// process-wide registry, and from then on every statement is compiled from
// descriptor metadata: dialect-correct SQL text plus an ordered list of bind
// values. Values are never interpolated into the statement text.
//
// # Packages
//
//   - schema: value model, column/table descriptors and the registry
//   - schema/field: fluent column builders
//   - filter: composable predicate algebra compiled to WHERE fragments
//   - dialect: dialect profiles (MySQL, PostgreSQL, SQLite) and driver interfaces
//   - dialect/sql: statement builders and the database/sql driver wrapper
//   - row: decoding raw result rows back into typed values
//
// # Example
//
//	users := schema.NewTable("users",
//	    field.Int64("id").PrimaryKey().AutoIncrement(),
//	    field.String("name").NotNull(),
//	    field.Bool("active").Default(true),
//	)
//	schema.Register(users)
//
//	query, args, err := sql.Dialect(dialect.PostgresProfile()).
//	    Select("users").
//	    Where(filter.And(
//	        filter.EQ(filter.C("users", "active"), schema.BoolValue(true)),
//	        filter.GT(filter.C("users", "id"), schema.Int64Value(100)),
//	    )).
//	    OrderBy(filter.C("users", "id")).
//	    Limit(10).
//	    Query()
//
// Execution belongs to the driver collaborator in dialect/sql; compilation
// itself performs no I/O.
package quercus
