package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fullstack-starter/internal/schema"
)

func TestNewSnapshotDeclaredTables(t *testing.T) {
	snap, err := schema.NewSnapshot(schema.Models()...)
	require.NoError(t, err)

	require.Len(t, snap.Tables, 2)
	assert.Equal(t, "postgres", snap.Dialect)

	items := snap.Table("items")
	require.NotNil(t, items)
	require.Len(t, items.Columns, 1)
	name := items.Column("name")
	require.NotNil(t, name)
	assert.True(t, name.PrimaryKey)
	assert.True(t, name.NotNull)

	users := snap.Table("users")
	require.NotNil(t, users)
	require.Len(t, users.Columns, 4)

	id := users.Column("id")
	require.NotNil(t, id)
	assert.True(t, id.PrimaryKey)
	assert.True(t, id.AutoIncrement)
	assert.Equal(t, "bigserial", id.Type)

	email := users.Column("email")
	require.NotNil(t, email)
	assert.True(t, email.Unique)
	assert.True(t, email.NotNull)

	displayName := users.Column("name")
	require.NotNil(t, displayName)
	assert.False(t, displayName.NotNull)

	createdAt := users.Column("created_at")
	require.NotNil(t, createdAt)
	assert.True(t, createdAt.NotNull)
	assert.Equal(t, "current_timestamp", createdAt.Default)
}

func TestSnapshotHashStable(t *testing.T) {
	a, err := schema.NewSnapshot(schema.Models()...)
	require.NoError(t, err)
	b, err := schema.NewSnapshot(schema.Models()...)
	require.NoError(t, err)

	assert.Equal(t, a.Hash(), b.Hash())
}

func TestNewSnapshotRejectsNonStruct(t *testing.T) {
	_, err := schema.NewSnapshot("not a model")
	assert.Error(t, err)
}
