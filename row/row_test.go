package row

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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
		field.Custom("meta", "point"),
	)))
	return reg
}

func TestDecode(t *testing.T) {
	reg := testRegistry(t)
	keys := []Key{
		{Table: "users", Column: "id"},
		{Table: "users", Column: "name"},
		{Table: "users", Column: "age"},
	}
	r, err := Decode(reg, keys, []any{int64(7), []byte("ada"), int64(42)})
	require.NoError(t, err)
	assert.Equal(t, 3, r.Len())

	id, ok := r.Value("users", "id").Int()
	require.True(t, ok)
	assert.Equal(t, int64(7), id)

	name, _ := r.Value("users", "name").Text()
	assert.Equal(t, "ada", name)

	// The cell decodes at the declared width, not the driver's.
	age := r.Value("users", "age")
	assert.Equal(t, schema.TypeInt32, age.Type())
}

func TestDecodeNullAndAbsentReadTheSame(t *testing.T) {
	reg := testRegistry(t)
	keys := []Key{{Table: "users", Column: "age"}}
	r, err := Decode(reg, keys, []any{nil})
	require.NoError(t, err)

	assert.True(t, r.Value("users", "age").IsNull())
	assert.True(t, r.Has("users", "age"))

	// A column that was never selected also reads as NULL; only Has can
	// tell the two apart.
	assert.True(t, r.Value("users", "name").IsNull())
	assert.False(t, r.Has("users", "name"))
}

func TestDecodeTypeMismatchLocatesColumn(t *testing.T) {
	reg := testRegistry(t)
	keys := []Key{{Table: "users", Column: "age"}}
	_, err := Decode(reg, keys, []any{"not a number"})
	var tm *schema.TypeMismatchError
	require.ErrorAs(t, err, &tm)
	assert.Equal(t, "users", tm.Table)
	assert.Equal(t, "age", tm.Column)
}

func TestDecodeOverflowLocatesColumn(t *testing.T) {
	reg := testRegistry(t)
	keys := []Key{{Table: "users", Column: "age"}}
	_, err := Decode(reg, keys, []any{int64(1) << 40})
	var of *schema.OverflowError
	require.ErrorAs(t, err, &of)
	assert.Equal(t, "age", of.Column)
}

func TestDecodeMissingColumn(t *testing.T) {
	reg := testRegistry(t)
	keys := []Key{
		{Table: "users", Column: "id"},
		{Table: "users", Column: "name"},
	}
	_, err := Decode(reg, keys, []any{int64(1)})
	var missing *schema.MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "name", missing.Column)
}

func TestDecodeUnknownColumn(t *testing.T) {
	reg := testRegistry(t)
	_, err := Decode(reg, []Key{{Table: "users", Column: "ghost"}}, []any{int64(1)})
	assert.True(t, schema.IsUnknownColumn(err))
}

func TestDecodeCustomCarriesTag(t *testing.T) {
	reg := testRegistry(t)
	type point struct {
		X, Y int
	}
	v, err := schema.CustomValue("point", point{X: 1, Y: 2})
	require.NoError(t, err)
	raw, ok := v.Bind().([]byte)
	require.True(t, ok)

	r, err := Decode(reg, []Key{{Table: "users", Column: "meta"}}, []any{raw})
	require.NoError(t, err)
	got := r.Value("users", "meta")
	tag, ok := got.CustomTag()
	require.True(t, ok)
	assert.Equal(t, "point", tag)

	var p point
	require.NoError(t, got.DecodeCustom(&p))
	assert.Equal(t, point{X: 1, Y: 2}, p)
}
