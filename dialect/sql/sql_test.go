package sql

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quercus-db/quercus/dialect"
	"github.com/quercus-db/quercus/schema"
	"github.com/quercus-db/quercus/schema/field"
)

// testRegistry declares the fixture schema shared across builder tests.
func testRegistry(t *testing.T) *schema.Registry {
	t.Helper()
	reg := schema.NewRegistry()
	require.NoError(t, reg.Register(schema.NewTable("users",
		field.Int64("id").PrimaryKey().AutoIncrement(),
		field.String("name").NotNull().NotEmpty(),
		field.Int32("age"),
		field.String("nickname"),
	)))
	require.NoError(t, reg.Register(schema.NewTable("pets",
		field.Int64("id").PrimaryKey().AutoIncrement(),
		field.Int64("owner_id").NotNull(),
		field.String("name").NotNull(),
	)))
	return reg
}

func pgBuilder(t *testing.T) *DialectBuilder {
	t.Helper()
	return Dialect(dialect.PostgresProfile()).WithRegistry(testRegistry(t))
}

func myBuilder(t *testing.T) *DialectBuilder {
	t.Helper()
	return Dialect(dialect.MySQLProfile()).WithRegistry(testRegistry(t))
}

func liteBuilder(t *testing.T) *DialectBuilder {
	t.Helper()
	return Dialect(dialect.SQLiteProfile()).WithRegistry(testRegistry(t))
}
