package db_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"fullstack-starter/internal/database"
	"fullstack-starter/internal/schema"
	"fullstack-starter/internal/users/db"
)

func setupTestDB(t *testing.T) *db.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, "file::memory:?cache=shared")
	require.NoError(t, err)

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { bunDB.Close() })

	require.NoError(t, bunDB.ResetModel(context.Background(), (*schema.User)(nil)))

	return &db.DB{Bun: bunDB}
}

func testEmail() string {
	return uuid.New().String() + "@example.com"
}

func TestCreateAndGetUser(t *testing.T) {
	userDB := setupTestDB(t)

	email := testEmail()
	created, err := userDB.CreateUser(schema.User{Email: email, Name: "Alice"})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotZero(t, created.ID, "insert should assign the surrogate id")

	got, err := userDB.GetUserByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, email, got.Email)
	assert.Equal(t, "Alice", got.Name)
	assert.False(t, got.CreatedAt.IsZero(), "created_at should come from the database default")

	byEmail, err := userDB.GetUserByEmail(email)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	_, err = userDB.GetUserByID(99999)
	assert.Error(t, err)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	userDB := setupTestDB(t)

	email := testEmail()
	_, err := userDB.CreateUser(schema.User{Email: email})
	require.NoError(t, err)

	_, err = userDB.CreateUser(schema.User{Email: email})
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err), "expected a unique violation, got: %v", err)
}

func TestUpdateUser(t *testing.T) {
	userDB := setupTestDB(t)

	created, err := userDB.CreateUser(schema.User{Email: testEmail(), Name: "Before"})
	require.NoError(t, err)

	created.Name = "After"
	require.NoError(t, userDB.UpdateUser(*created))

	got, err := userDB.GetUserByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", got.Name)
}

func TestListUsersOrdered(t *testing.T) {
	userDB := setupTestDB(t)

	first, err := userDB.CreateUser(schema.User{Email: testEmail()})
	require.NoError(t, err)
	second, err := userDB.CreateUser(schema.User{Email: testEmail()})
	require.NoError(t, err)

	list, err := userDB.ListUsers()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
}

func TestDeleteUser(t *testing.T) {
	userDB := setupTestDB(t)

	created, err := userDB.CreateUser(schema.User{Email: testEmail()})
	require.NoError(t, err)

	require.NoError(t, userDB.DeleteUser(created.ID))

	_, err = userDB.GetUserByID(created.ID)
	assert.Error(t, err)
}
