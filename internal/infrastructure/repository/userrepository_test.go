package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"podelam/internal/infrastructure/persistence/models"
)

func TestUserRepository_GetByEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, testLogger())
	ctx := context.Background()

	require.NoError(t, db.Create(&models.UserModel{
		Name:      "Анна",
		Email:     "anna@example.com",
		CreatedAt: time.Now().UTC(),
	}).Error)

	t.Run("exact match", func(t *testing.T) {
		found, err := repo.GetByEmail(ctx, "anna@example.com")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Анна", found.Name())
	})

	t.Run("lookup normalizes case and whitespace", func(t *testing.T) {
		found, err := repo.GetByEmail(ctx, "  Anna@Example.COM ")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "anna@example.com", found.Email())
	})

	t.Run("unknown email returns nil without error", func(t *testing.T) {
		found, err := repo.GetByEmail(ctx, "ghost@example.com")
		assert.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestUserRepository_GetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, testLogger())
	ctx := context.Background()

	model := &models.UserModel{Name: "Пётр", Email: "petr@example.com", CreatedAt: time.Now().UTC()}
	require.NoError(t, db.Create(model).Error)

	found, err := repo.GetByID(ctx, model.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, model.ID, found.ID())

	missing, err := repo.GetByID(ctx, 9999)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}
