// Package schema holds the metadata layer: typed values, column and table
// descriptors, and the process-wide registry that resolves identifiers
// during statement compilation.
//
// # Values
//
// Value is the tagged union carried through filters, statements and decoded
// rows. Every value knows its logical type; NULL is a first-class value
// rather than a nil pointer:
//
//	v := schema.Int32Value(42)
//	v.Type()   // schema.TypeInt32
//	v.IsNull() // false
//	n, _ := v.Int()
//
// Conversions are strict. FromRaw converts a raw driver cell into the
// declared column type and fails with a TypeMismatchError or OverflowError
// instead of silently coercing.
//
// # Tables and columns
//
// Column descriptors are built with the fluent builders in schema/field and
// assembled into immutable Table descriptors:
//
//	users := schema.NewTable("users",
//	    field.Int64("id").PrimaryKey().AutoIncrement(),
//	    field.String("name").NotNull().NotEmpty(),
//	    field.Int32("age"),
//	)
//
// Construction errors are deferred: they surface from Table.Err and again
// when the table is registered, so schema definitions stay declarative.
//
// # Registry
//
// A Registry maps table names to descriptors and is the single resolution
// authority for column references. Registering the same structure twice is
// a no-op; registering a different structure under an existing name fails
// with ErrDuplicateTable. The registry is safe for concurrent use.
package schema
