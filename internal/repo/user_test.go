package repo

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/phast_auth/internal/models"
)

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	r := NewGormRepo(initTestDB(t))

	require.NoError(t, r.CreateUser(ctx, "Ada", "ada@example.com", "hash-1"))

	err := r.CreateUser(ctx, "Other", "ada@example.com", "hash-2")
	require.ErrorIs(t, err, ErrUserAlreadyExist)

	hash, err := r.PasswordHashByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "hash-1", hash)
}

func TestPasswordHashByEmail_NotFound(t *testing.T) {
	r := NewGormRepo(initTestDB(t))

	_, err := r.PasswordHashByEmail(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestValidateLogin(t *testing.T) {
	ctx := context.Background()
	r := NewGormRepo(initTestDB(t))
	require.NoError(t, r.CreateUser(ctx, "Ada", "ada@example.com", "hash-1"))

	id, err := r.ValidateLogin(ctx, "ada@example.com", "hash-1")
	require.NoError(t, err)
	assert.NotZero(t, id)

	_, err = r.ValidateLogin(ctx, "ada@example.com", "wrong")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUserByID(t *testing.T) {
	ctx := context.Background()
	r := NewGormRepo(initTestDB(t))
	require.NoError(t, r.CreateUser(ctx, "Ada", "ada@example.com", "hash-1"))
	id, err := r.ValidateLogin(ctx, "ada@example.com", "hash-1")
	require.NoError(t, err)

	u, err := r.UserByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, "Ada", u.Name)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.False(t, u.CreatedAt.IsZero())

	_, err = r.UserByID(ctx, id+100)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	r := NewGormRepo(initTestDB(t))
	require.NoError(t, r.CreateUser(ctx, "Ada", "ada@example.com", "hash-1"))
	require.NoError(t, r.CreateUser(ctx, "Bob", "bob@example.com", "hash-2"))
	id, err := r.ValidateLogin(ctx, "ada@example.com", "hash-1")
	require.NoError(t, err)

	require.NoError(t, r.UpdateUser(ctx, id, "Ada L", "ada.l@example.com", "hash-3"))
	u, err := r.UserByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ada L", u.Name)
	assert.Equal(t, "ada.l@example.com", u.Email)

	err = r.UpdateUser(ctx, id, "Ada L", "bob@example.com", "hash-3")
	require.ErrorIs(t, err, ErrUserAlreadyExist)

	err = r.UpdateUser(ctx, id+100, "Ghost", "ghost@example.com", "hash-4")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	r := NewGormRepo(initTestDB(t))
	require.NoError(t, r.CreateUser(ctx, "Ada", "ada@example.com", "hash-1"))
	id, err := r.ValidateLogin(ctx, "ada@example.com", "hash-1")
	require.NoError(t, err)

	require.NoError(t, r.DeleteUser(ctx, id))
	_, err = r.UserByID(ctx, id)
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, r.DeleteUser(ctx, id), ErrNotFound)
}

func TestPing(t *testing.T) {
	r := NewGormRepo(initTestDB(t))
	require.NoError(t, r.Ping(context.Background()))
}
