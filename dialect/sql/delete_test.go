package sql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quercus-db/quercus/filter"
	"github.com/quercus-db/quercus/schema"
)

func TestDeleteWithFilter(t *testing.T) {
	query, binds, err := pgBuilder(t).Delete("users").
		Where(filter.LT(filter.C("users", "age"), schema.Int32Value(18))).
		Query()
	require.NoError(t, err)
	assert.Equal(t, `DELETE FROM "users" WHERE "users"."age" < $1`, query)
	assert.Len(t, binds, 1)
}

func TestDeleteUnconfirmed(t *testing.T) {
	_, _, err := pgBuilder(t).Delete("users").Query()
	assert.ErrorIs(t, err, ErrUnconfirmedDelete)
}

func TestDeleteWithoutFilter(t *testing.T) {
	query, binds, err := myBuilder(t).Delete("users").WithoutFilter().Query()
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM `users`", query)
	assert.Empty(t, binds)
}

func TestDeleteUnknownTable(t *testing.T) {
	_, _, err := pgBuilder(t).Delete("ghosts").WithoutFilter().Query()
	assert.ErrorIs(t, err, schema.ErrUnknownTable)
}
