package products

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shopcartlabs/shopcart-backend/pkg/db/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite test db: %v", err)
	}
	if err := conn.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("failed to migrate products table: %v", err)
	}
	return conn
}

func seedProduct(t *testing.T, conn *gorm.DB, title, price string) *models.Product {
	t.Helper()
	product := &models.Product{
		Title: title,
		Price: decimal.RequireFromString(price),
	}
	if err := conn.Create(product).Error; err != nil {
		t.Fatalf("seed product %q: %v", title, err)
	}
	return product
}

func TestRepositoryCreateAndFind(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()

	product := &models.Product{
		Title: "Drip Kettle",
		Price: decimal.RequireFromString("39.99"),
	}
	require.NoError(t, repo.Create(ctx, product))
	require.Len(t, product.ID, 24, "id should be assigned before insert")

	found, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Drip Kettle", found.Title)
	assert.True(t, found.Price.Equal(decimal.RequireFromString("39.99")))

	byTitle, err := repo.FindByTitle(ctx, "Drip Kettle")
	require.NoError(t, err)
	assert.Equal(t, product.ID, byTitle.ID)
}

func TestRepositoryFilterByTitlePrefix(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	seedProduct(t, conn, "Espresso Beans", "12.50")
	seedProduct(t, conn, "ESPRESSO Machine", "249.00")
	seedProduct(t, conn, "French Press", "24.00")

	rows, err := repo.FilterByTitlePrefix(ctx, "espresso")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "ESPRESSO Machine", rows[0].Title)
	assert.Equal(t, "Espresso Beans", rows[1].Title)

	none, err := repo.FilterByTitlePrefix(ctx, "press")
	require.NoError(t, err)
	assert.Empty(t, none, "prefix match must not hit substrings")
}

func TestRepositoryFilterEscapesWildcards(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	seedProduct(t, conn, "100% Arabica", "15.00")
	seedProduct(t, conn, "100x Arabica", "15.00")

	rows, err := repo.FilterByTitlePrefix(ctx, "100%")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "100% Arabica", rows[0].Title)
}

func TestRepositoryUpdate(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	product := seedProduct(t, conn, "Espresso Beans", "12.50")

	affected, err := repo.Update(ctx, product.ID, map[string]any{"title": "Espresso Beans Dark"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = repo.Update(ctx, "64a7f0c2e1b2c3d4e5f60799", map[string]any{"title": "Ghost"})
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestRepositoryDelete(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	product := seedProduct(t, conn, "Espresso Beans", "12.50")

	affected, err := repo.Delete(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = repo.Delete(ctx, product.ID)
	require.NoError(t, err)
	assert.Zero(t, affected)
}
