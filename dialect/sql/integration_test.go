package sql

import (
	"context"
	stdsql "database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quercus-db/quercus/dialect"
	"github.com/quercus-db/quercus/filter"
	"github.com/quercus-db/quercus/row"
	"github.com/quercus-db/quercus/schema"
)

// TestSQLiteRoundTrip drives the whole stack against an in-memory
// database: dump the DDL, create the schema, insert with an absent
// identity column, read back and decode into typed values.
func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	reg := testRegistry(t)
	b := Dialect(dialect.SQLiteProfile()).WithRegistry(reg)

	drv, err := Open(dialect.SQLite, ":memory:")
	require.NoError(t, err)
	defer drv.Close()

	ddl, err := b.Dump()
	require.NoError(t, err)
	for _, stmt := range strings.Split(strings.TrimSpace(ddl), ";\n") {
		if stmt == "" {
			continue
		}
		require.NoError(t, drv.Exec(ctx, stmt, []any{}, nil))
	}

	// id is absent so the rowid mechanism assigns it.
	query, binds, err := b.Insert("users").
		Values(NewRecord().
			Set("name", schema.StringValue("ada")).
			Set("age", schema.Int32Value(42))).
		Query()
	require.NoError(t, err)
	var res stdsql.Result
	require.NoError(t, drv.Exec(ctx, query, BindArgs(binds), &res))
	id, err := res.LastInsertId()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	sel := b.Select("users").
		Where(filter.EQ(filter.C("users", "id"), schema.Int64Value(id)))
	query, binds, err = sel.Query()
	require.NoError(t, err)
	keys, err := sel.Keys()
	require.NoError(t, err)

	var rows Rows
	require.NoError(t, drv.Query(ctx, query, BindArgs(binds), &rows))
	decoded, err := row.FromRows(rows.ColumnScanner, reg, keys)
	require.NoError(t, err)
	require.Len(t, decoded, 1)

	got := decoded[0]
	name, ok := got.Value("users", "name").Text()
	require.True(t, ok)
	assert.Equal(t, "ada", name)

	// The declared width survives the trip through SQLite's single
	// INTEGER affinity.
	age := got.Value("users", "age")
	assert.Equal(t, schema.TypeInt32, age.Type())
	n, ok := age.Int()
	require.True(t, ok)
	assert.Equal(t, int64(42), n)

	assert.True(t, got.Value("users", "nickname").IsNull())
}

func TestSQLiteLikeCaseSensitive(t *testing.T) {
	ctx := context.Background()
	reg := testRegistry(t)
	b := Dialect(dialect.SQLiteProfile()).WithRegistry(reg)

	drv, err := Open(dialect.SQLite, ":memory:")
	require.NoError(t, err)
	defer drv.Close()

	stmts, err := b.CreateTable("users").Queries()
	require.NoError(t, err)
	for _, stmt := range stmts {
		require.NoError(t, drv.Exec(ctx, stmt, []any{}, nil))
	}
	query, binds, err := b.Insert("users").
		Values(NewRecord().Set("name", schema.StringValue("ada"))).Query()
	require.NoError(t, err)
	require.NoError(t, drv.Exec(ctx, query, BindArgs(binds), nil))

	match := func(t *testing.T, p filter.Node) int {
		t.Helper()
		sel := b.Select("users").
			Columns(filter.C("users", "name")).
			Where(p)
		query, binds, err := sel.Query()
		require.NoError(t, err)
		keys, err := sel.Keys()
		require.NoError(t, err)
		var rows Rows
		require.NoError(t, drv.Query(ctx, query, BindArgs(binds), &rows))
		decoded, err := row.FromRows(rows.ColumnScanner, reg, keys)
		require.NoError(t, err)
		return len(decoded)
	}

	// Like is case-sensitive even though SQLite's own LIKE is not.
	assert.Equal(t, 0, match(t, filter.Like(filter.C("users", "name"), "ADA%")))
	assert.Equal(t, 1, match(t, filter.Like(filter.C("users", "name"), "ad_")))
	assert.Equal(t, 1, match(t, filter.LikeFold(filter.C("users", "name"), "ADA%")))
}

func TestSQLiteOffsetWithoutLimit(t *testing.T) {
	ctx := context.Background()
	reg := testRegistry(t)
	b := Dialect(dialect.SQLiteProfile()).WithRegistry(reg)

	drv, err := Open(dialect.SQLite, ":memory:")
	require.NoError(t, err)
	defer drv.Close()

	stmts, err := b.CreateTable("users").Queries()
	require.NoError(t, err)
	for _, stmt := range stmts {
		require.NoError(t, drv.Exec(ctx, stmt, []any{}, nil))
	}
	for _, name := range []string{"ada", "grace"} {
		query, binds, err := b.Insert("users").
			Values(NewRecord().Set("name", schema.StringValue(name))).Query()
		require.NoError(t, err)
		require.NoError(t, drv.Exec(ctx, query, BindArgs(binds), nil))
	}

	sel := b.Select("users").
		Columns(filter.C("users", "name")).
		OrderBy(filter.C("users", "id")).
		Offset(1)
	query, binds, err := sel.Query()
	require.NoError(t, err)
	keys, err := sel.Keys()
	require.NoError(t, err)

	var rows Rows
	require.NoError(t, drv.Query(ctx, query, BindArgs(binds), &rows))
	decoded, err := row.FromRows(rows.ColumnScanner, reg, keys)
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	name, _ := decoded[0].Value("users", "name").Text()
	assert.Equal(t, "grace", name)
}

func TestSQLiteExecReturning(t *testing.T) {
	ctx := context.Background()
	reg := testRegistry(t)
	b := Dialect(dialect.SQLiteProfile()).WithRegistry(reg)

	drv, err := Open(dialect.SQLite, ":memory:")
	require.NoError(t, err)
	defer drv.Close()

	stmts, err := b.CreateTable("users").Queries()
	require.NoError(t, err)
	for _, stmt := range stmts {
		require.NoError(t, drv.Exec(ctx, stmt, []any{}, nil))
	}

	got, err := b.Insert("users").
		Values(NewRecord().Set("name", schema.StringValue("grace"))).
		ExecReturning(ctx, drv, "id", "name")
	require.NoError(t, err)

	id, ok := got.Value("users", "id").Int()
	require.True(t, ok)
	assert.Equal(t, int64(1), id)
	name, _ := got.Value("users", "name").Text()
	assert.Equal(t, "grace", name)
}

func TestSQLiteUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	reg := testRegistry(t)
	b := Dialect(dialect.SQLiteProfile()).WithRegistry(reg)

	drv, err := Open(dialect.SQLite, ":memory:")
	require.NoError(t, err)
	defer drv.Close()

	stmts, err := b.CreateTable("users").Queries()
	require.NoError(t, err)
	for _, stmt := range stmts {
		require.NoError(t, drv.Exec(ctx, stmt, []any{}, nil))
	}
	for _, name := range []string{"ada", "grace"} {
		query, binds, err := b.Insert("users").
			Values(NewRecord().Set("name", schema.StringValue(name))).Query()
		require.NoError(t, err)
		require.NoError(t, drv.Exec(ctx, query, BindArgs(binds), nil))
	}

	query, binds, err := b.Update("users").
		Set("age", schema.Int32Value(30)).
		Where(filter.EQ(filter.C("users", "name"), schema.StringValue("ada"))).
		Query()
	require.NoError(t, err)
	var res stdsql.Result
	require.NoError(t, drv.Exec(ctx, query, BindArgs(binds), &res))
	affected, err := res.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	query, binds, err = b.Delete("users").
		Where(filter.IsNull(filter.C("users", "age"))).
		Query()
	require.NoError(t, err)
	require.NoError(t, drv.Exec(ctx, query, BindArgs(binds), &res))
	affected, err = res.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
}
