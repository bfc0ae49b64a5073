package sql

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quercus-db/quercus/dialect"
	"github.com/quercus-db/quercus/schema"
	"github.com/quercus-db/quercus/schema/field"
)

func TestInsertOmitsAbsentColumns(t *testing.T) {
	// id is backend-generated and age/nickname are nullable; only the
	// present column appears, so defaults fire on the backend.
	query, binds, err := myBuilder(t).Insert("users").
		Values(NewRecord().Set("name", schema.StringValue("ada"))).
		Query()
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO `users` (`name`) VALUES (?)", query)
	require.Len(t, binds, 1)
	assert.Equal(t, "ada", binds[0].Bind())
}

func TestInsertExplicitNullIsDistinctFromAbsent(t *testing.T) {
	query, binds, err := pgBuilder(t).Insert("users").
		Values(NewRecord().
			Set("name", schema.StringValue("ada")).
			SetNull("nickname")).
		Query()
	require.NoError(t, err)
	assert.Equal(t, `INSERT INTO "users" ("name", "nickname") VALUES ($1, $2)`, query)
	require.Len(t, binds, 2)
	assert.Nil(t, binds[1].Bind())
}

func TestInsertColumnListFollowsDeclaredOrder(t *testing.T) {
	query, _, err := pgBuilder(t).Insert("users").
		Values(NewRecord().
			Set("nickname", schema.StringValue("lady")).
			Set("name", schema.StringValue("ada")).
			Set("age", schema.Int32Value(36))).
		Query()
	require.NoError(t, err)
	assert.Equal(t, `INSERT INTO "users" ("name", "age", "nickname") VALUES ($1, $2, $3)`, query)
}

func TestInsertMany(t *testing.T) {
	query, binds, err := pgBuilder(t).Insert("users").
		Values(
			NewRecord().Set("name", schema.StringValue("ada")),
			NewRecord().Set("name", schema.StringValue("grace")),
		).
		Query()
	require.NoError(t, err)
	assert.Equal(t, `INSERT INTO "users" ("name") VALUES ($1), ($2)`, query)
	assert.Len(t, binds, 2)
}

func TestInsertManyRejectsInconsistentColumns(t *testing.T) {
	_, _, err := pgBuilder(t).Insert("users").
		Values(
			NewRecord().Set("name", schema.StringValue("ada")),
			NewRecord().Set("name", schema.StringValue("grace")).Set("age", schema.Int32Value(1)),
		).
		Query()
	var inc *InconsistentColumnSetError
	require.ErrorAs(t, err, &inc)
	assert.Equal(t, []string{"name"}, inc.Want)
	assert.Equal(t, []string{"name", "age"}, inc.Got)
}

func TestInsertMissingRequiredColumn(t *testing.T) {
	// name is NOT NULL with no default; leaving it absent fails before
	// any statement is built.
	_, _, err := pgBuilder(t).Insert("users").
		Values(NewRecord().Set("age", schema.Int32Value(30))).
		Query()
	var missing *schema.MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "name", missing.Column)
}

func TestInsertRejectsNullForNotNull(t *testing.T) {
	_, _, err := pgBuilder(t).Insert("users").
		Values(NewRecord().SetNull("name")).
		Query()
	var nn *NotNullError
	require.ErrorAs(t, err, &nn)
	assert.Equal(t, "name", nn.Column)
}

func TestInsertTypeMismatch(t *testing.T) {
	_, _, err := pgBuilder(t).Insert("users").
		Values(NewRecord().
			Set("name", schema.StringValue("ada")).
			Set("age", schema.Int64Value(30))).
		Query()
	var tm *schema.TypeMismatchError
	require.ErrorAs(t, err, &tm)
	assert.Equal(t, schema.TypeInt32, tm.Type)
}

func TestInsertRunsValidators(t *testing.T) {
	_, _, err := pgBuilder(t).Insert("users").
		Values(NewRecord().Set("name", schema.StringValue(""))).
		Query()
	assert.Error(t, err)
}

func TestInsertEmpty(t *testing.T) {
	_, _, err := pgBuilder(t).Insert("users").Query()
	assert.ErrorIs(t, err, ErrEmptyInsert)
}

func TestInsertReturning(t *testing.T) {
	query, _, err := pgBuilder(t).Insert("users").
		Values(NewRecord().Set("name", schema.StringValue("ada"))).
		Returning("id").
		Query()
	require.NoError(t, err)
	assert.Equal(t, `INSERT INTO "users" ("name") VALUES ($1) RETURNING "id"`, query)

	_, _, err = myBuilder(t).Insert("users").
		Values(NewRecord().Set("name", schema.StringValue("ada"))).
		Returning("id").
		Query()
	var unsup *ReturningUnsupportedError
	assert.ErrorAs(t, err, &unsup)
}

func TestInsertUnknownColumn(t *testing.T) {
	_, _, err := pgBuilder(t).Insert("users").
		Values(NewRecord().
			Set("name", schema.StringValue("ada")).
			Set("ghost", schema.Int32Value(1))).
		Query()
	assert.True(t, schema.IsUnknownColumn(err))
}

func TestInsertOmitsDefaultedColumn(t *testing.T) {
	reg := schema.NewRegistry()
	require.NoError(t, reg.Register(schema.NewTable("accounts",
		field.Int64("id").PrimaryKey().AutoIncrement(),
		field.String("name").NotNull(),
		field.Bool("active").NotNull().Default(true),
	)))
	b := Dialect(dialect.PostgresProfile()).WithRegistry(reg)

	// active is NOT NULL but defaulted, so leaving it absent excludes it
	// from the column list and the backend default fires.
	query, binds, err := b.Insert("accounts").
		Values(NewRecord().Set("name", schema.StringValue("ada"))).
		Query()
	require.NoError(t, err)
	assert.Equal(t, `INSERT INTO "accounts" ("name") VALUES ($1)`, query)
	assert.Len(t, binds, 1)

	// Setting it explicitly puts it back.
	query, binds, err = b.Insert("accounts").
		Values(NewRecord().
			Set("name", schema.StringValue("ada")).
			Set("active", schema.BoolValue(false))).
		Query()
	require.NoError(t, err)
	assert.Equal(t, `INSERT INTO "accounts" ("name", "active") VALUES ($1, $2)`, query)
	require.Len(t, binds, 2)
	assert.Equal(t, false, binds[1].Bind())
}

func TestInsertCustomTagMismatch(t *testing.T) {
	reg := schema.NewRegistry()
	require.NoError(t, reg.Register(schema.NewTable("shapes",
		field.Int64("id").PrimaryKey().AutoIncrement(),
		field.Custom("center", "point"),
	)))
	b := Dialect(dialect.PostgresProfile()).WithRegistry(reg)

	v, err := schema.CustomValue("vector", []float64{1, 2})
	require.NoError(t, err)
	_, _, err = b.Insert("shapes").Values(NewRecord().Set("center", v)).Query()
	var tm *schema.TypeMismatchError
	require.ErrorAs(t, err, &tm)
	assert.Equal(t, "center", tm.Column)

	v, err = schema.CustomValue("point", []float64{1, 2})
	require.NoError(t, err)
	_, _, err = b.Insert("shapes").Values(NewRecord().Set("center", v)).Query()
	require.NoError(t, err)
}

func TestExecReturningFallbackMySQL(t *testing.T) {
	// MySQL has no RETURNING: the insert runs, the generated key comes
	// from LastInsertId and a second statement reads the row back.
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	drv := OpenDB(dialect.MySQL, db)
	b := Dialect(dialect.MySQLProfile()).WithRegistry(testRegistry(t))

	mock.ExpectExec("INSERT INTO `users`").
		WithArgs("ada").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery("SELECT `users`.`id`, `users`.`name` FROM `users`").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(int64(7), "ada"))

	got, err := b.Insert("users").
		Values(NewRecord().Set("name", schema.StringValue("ada"))).
		ExecReturning(context.Background(), drv, "id", "name")
	require.NoError(t, err)

	id, ok := got.Value("users", "id").Int()
	require.True(t, ok)
	assert.Equal(t, int64(7), id)
	name, _ := got.Value("users", "name").Text()
	assert.Equal(t, "ada", name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecReturningFallbackRequiresGeneratedKey(t *testing.T) {
	// Without RETURNING and without a backend-generated primary key there
	// is no way to find the inserted row; the call fails before any I/O.
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	drv := OpenDB(dialect.MySQL, db)

	reg := schema.NewRegistry()
	require.NoError(t, reg.Register(schema.NewTable("settings",
		field.String("key").PrimaryKey(),
		field.String("value").NotNull(),
	)))
	b := Dialect(dialect.MySQLProfile()).WithRegistry(reg)

	_, err = b.Insert("settings").
		Values(NewRecord().
			Set("key", schema.StringValue("theme")).
			Set("value", schema.StringValue("dark"))).
		ExecReturning(context.Background(), drv, "key")
	var unsup *ReturningUnsupportedError
	require.ErrorAs(t, err, &unsup)
}
