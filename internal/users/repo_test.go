package users

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/shopcartlabs/shopcart-backend/pkg/db/models"
	"github.com/shopcartlabs/shopcart-backend/pkg/objectid"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("SHOPCART_DB_DSN")
	if dsn == "" {
		t.Skip("SHOPCART_DB_DSN is not set")
	}

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	return conn
}

func TestRepositoryUserLifecycle(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	email := fmt.Sprintf("users_repo_%s@example.com", objectid.New())
	created, err := repo.Create(ctx, CreateUserDTO{Email: email})
	require.NoError(t, err)
	require.Len(t, created.ID, 24)
	assert.Equal(t, "user", created.Role, "role defaults when unset")
	t.Cleanup(func() {
		conn.Delete(&models.User{}, "id = ?", created.ID)
	})

	byID, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, email, byID.Email)

	byEmail, err := repo.FindByEmail(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	_, err = repo.FindByEmail(ctx, fmt.Sprintf("absent_%s@example.com", objectid.New()))
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
