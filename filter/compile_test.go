package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quercus-db/quercus/dialect"
	"github.com/quercus-db/quercus/schema"
	"github.com/quercus-db/quercus/schema/field"
)

func testRegistry(t *testing.T) *schema.Registry {
	t.Helper()
	reg := schema.NewRegistry()
	require.NoError(t, reg.Register(schema.NewTable("users",
		field.Int64("id").PrimaryKey().AutoIncrement(),
		field.String("name").NotNull(),
		field.Int32("age"),
		field.String("nickname"),
	)))
	return reg
}

func compilePG(t *testing.T, n Node) (string, []schema.Value) {
	t.Helper()
	frag, binds, err := Compile(n, dialect.PostgresProfile(), testRegistry(t), 1)
	require.NoError(t, err)
	return frag, binds
}

func TestCompileComparisons(t *testing.T) {
	frag, binds := compilePG(t, EQ(C("users", "name"), schema.StringValue("ada")))
	assert.Equal(t, `"users"."name" = $1`, frag)
	require.Len(t, binds, 1)
	assert.Equal(t, "ada", binds[0].Bind())

	frag, _ = compilePG(t, GTE(C("users", "age"), schema.Int32Value(18)))
	assert.Equal(t, `"users"."age" >= $1`, frag)
}

func TestCompileBindOrder(t *testing.T) {
	n := And(
		GT(C("users", "age"), schema.Int32Value(18)),
		Or(
			EQ(C("users", "name"), schema.StringValue("ada")),
			Between(C("users", "age"), schema.Int32Value(30), schema.Int32Value(40)),
		),
	)
	frag, binds, err := Compile(n, dialect.PostgresProfile(), testRegistry(t), 1)
	require.NoError(t, err)
	assert.Equal(t, `("users"."age" > $1 AND ("users"."name" = $2 OR "users"."age" BETWEEN $3 AND $4))`, frag)
	require.Len(t, binds, 4)
	// Binds follow left-to-right placeholder order, depth first.
	assert.Equal(t, int32(18), binds[0].Bind())
	assert.Equal(t, "ada", binds[1].Bind())
	assert.Equal(t, int32(30), binds[2].Bind())
	assert.Equal(t, int32(40), binds[3].Bind())
}

func TestCompileStartPosition(t *testing.T) {
	frag, _, err := Compile(EQ(C("users", "age"), schema.Int32Value(1)),
		dialect.PostgresProfile(), testRegistry(t), 3)
	require.NoError(t, err)
	assert.Equal(t, `"users"."age" = $3`, frag)
}

func TestCompileNullComparisons(t *testing.T) {
	frag, binds := compilePG(t, EQ(C("users", "nickname"), schema.NullValue()))
	assert.Equal(t, `"users"."nickname" IS NULL`, frag)
	assert.Empty(t, binds)

	frag, _ = compilePG(t, NEQ(C("users", "nickname"), schema.NullValue()))
	assert.Equal(t, `"users"."nickname" IS NOT NULL`, frag)

	// Ordering against NULL can never match.
	frag, _ = compilePG(t, LT(C("users", "age"), schema.NullValue()))
	assert.Equal(t, "1 = 0", frag)
}

func TestCompileNullChecks(t *testing.T) {
	frag, _ := compilePG(t, IsNull(C("users", "nickname")))
	assert.Equal(t, `"users"."nickname" IS NULL`, frag)

	frag, _ = compilePG(t, NotNull(C("users", "nickname")))
	assert.Equal(t, `"users"."nickname" IS NOT NULL`, frag)
}

func TestCompileNotPushdown(t *testing.T) {
	// The rewrite reaches equalities at any depth.
	frag, _ := compilePG(t, Not(EQ(C("users", "nickname"), schema.NullValue())))
	assert.Equal(t, `"users"."nickname" IS NOT NULL`, frag)

	frag, _ = compilePG(t, Not(NotNull(C("users", "nickname"))))
	assert.Equal(t, `"users"."nickname" IS NULL`, frag)

	frag, _ = compilePG(t, Not(In(C("users", "age"), schema.Int32Value(1))))
	assert.Equal(t, `"users"."age" NOT IN ($1)`, frag)

	frag, binds := compilePG(t, Not(EQ(C("users", "name"), schema.StringValue("ada"))))
	assert.Equal(t, `NOT ("users"."name" = $1)`, frag)
	assert.Len(t, binds, 1)
}

func TestCompileMembership(t *testing.T) {
	frag, binds := compilePG(t, In(C("users", "age"),
		schema.Int32Value(1), schema.Int32Value(2), schema.Int32Value(3)))
	assert.Equal(t, `"users"."age" IN ($1, $2, $3)`, frag)
	assert.Len(t, binds, 3)

	frag, binds = compilePG(t, In(C("users", "age")))
	assert.Equal(t, "1 = 0", frag)
	assert.Empty(t, binds)

	frag, _ = compilePG(t, NotIn(C("users", "age")))
	assert.Equal(t, "1 = 1", frag)
}

func TestCompileEmptyJunctions(t *testing.T) {
	frag, _ := compilePG(t, And())
	assert.Equal(t, "1 = 1", frag)

	frag, _ = compilePG(t, Or())
	assert.Equal(t, "1 = 0", frag)

	// Single-child junctions collapse without parentheses.
	frag, _ = compilePG(t, And(IsNull(C("users", "nickname"))))
	assert.Equal(t, `"users"."nickname" IS NULL`, frag)
}

func TestCompilePatterns(t *testing.T) {
	frag, binds := compilePG(t, Like(C("users", "name"), "ada%"))
	assert.Equal(t, `"users"."name" LIKE $1`, frag)
	require.Len(t, binds, 1)
	assert.Equal(t, "ada%", binds[0].Bind())

	frag, _ = compilePG(t, LikeFold(C("users", "name"), "ada%"))
	assert.Equal(t, `"users"."name" ILIKE $1`, frag)

	frag, _, err := Compile(Like(C("users", "name"), "ada%"),
		dialect.MySQLProfile(), testRegistry(t), 1)
	require.NoError(t, err)
	assert.Equal(t, "`users`.`name` LIKE BINARY ?", frag)

	// SQLite LIKE is case-insensitive, so Like compiles to GLOB with the
	// wildcards translated in the bound pattern.
	frag, vs, err := Compile(Like(C("users", "name"), "ada%"),
		dialect.SQLiteProfile(), testRegistry(t), 1)
	require.NoError(t, err)
	assert.Equal(t, `"users"."name" GLOB ?`, frag)
	require.Len(t, vs, 1)
	assert.Equal(t, "ada*", vs[0].Bind())
}

func TestCompileColumnComparison(t *testing.T) {
	frag, binds := compilePG(t, EQColumn(C("users", "name"), C("users", "nickname")))
	assert.Equal(t, `"users"."name" = "users"."nickname"`, frag)
	assert.Empty(t, binds)
}

func TestCompileUnknownColumn(t *testing.T) {
	_, _, err := Compile(EQ(C("users", "ghost"), schema.Int32Value(1)),
		dialect.PostgresProfile(), testRegistry(t), 1)
	require.Error(t, err)
	assert.True(t, schema.IsUnknownColumn(err))
}

func TestCompileIsPure(t *testing.T) {
	n := EQ(C("users", "age"), schema.Int32Value(7))
	reg := testRegistry(t)
	a, _, err := Compile(n, dialect.PostgresProfile(), reg, 1)
	require.NoError(t, err)
	b, _, err := Compile(n, dialect.MySQLProfile(), reg, 1)
	require.NoError(t, err)
	assert.Equal(t, `"users"."age" = $1`, a)
	assert.Equal(t, "`users`.`age` = ?", b)
}
