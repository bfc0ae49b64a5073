// Package field provides fluent builders for declaring table columns.
//
// Each builder is typed to its column's logical type, so only the options
// that make sense for that type are available:
//
//	schema.NewTable("users",
//	    field.Int64("id").PrimaryKey().AutoIncrement(),
//	    field.String("name").NotNull().NotEmpty(),
//	    field.Int32("age"),
//	    field.Time("created_at").NotNull().DefaultNow(),
//	)
//
// Validators declared here run when a value is bound into an INSERT or
// UPDATE, before any statement is sent. Builder misuse (for example a
// custom column without a type tag) is carried on the descriptor and
// surfaces when the table is registered.
package field
