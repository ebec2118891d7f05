package basket

import (
	"context"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/shopcartlabs/shopcart-backend/pkg/db/models"
)

// Repository is the persistence surface the basket service depends on.
type Repository interface {
	Create(ctx context.Context, userID string) (*models.Basket, error)
	FindByID(ctx context.Context, id string) (*models.Basket, error)
	FindByUserID(ctx context.Context, userID string) (*models.Basket, error)
	Delete(ctx context.Context, id string) (int64, error)
	AppendProduct(ctx context.Context, basketID, productID string) (bool, error)
	RemoveProduct(ctx context.Context, basketID, productID string) (bool, error)
	ProductsByIDs(ctx context.Context, ids []string) ([]models.Product, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository constructs a basket repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, userID string) (*models.Basket, error) {
	row := &models.Basket{
		UserID:     userID,
		ProductIDs: []string{},
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *gormRepository) FindByID(ctx context.Context, id string) (*models.Basket, error) {
	var row models.Basket
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *gormRepository) FindByUserID(ctx context.Context, userID string) (*models.Basket, error) {
	var row models.Basket
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *gormRepository) Delete(ctx context.Context, id string) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Basket{}, "id = ?", id)
	return result.RowsAffected, result.Error
}

// AppendProduct adds the reference in a single guarded statement so two
// concurrent appends of the same product cannot both apply. Returns false when
// the row was not touched (basket missing or reference already present).
func (r *gormRepository) AppendProduct(ctx context.Context, basketID, productID string) (bool, error) {
	result := r.db.WithContext(ctx).Exec(
		`UPDATE baskets
		 SET product_ids = array_append(product_ids, ?), updated_at = now()
		 WHERE id = ? AND NOT (? = ANY(product_ids))`,
		productID, basketID, productID,
	)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// RemoveProduct drops every occurrence of the reference atomically. Returns
// false when the basket is missing or does not hold the reference.
func (r *gormRepository) RemoveProduct(ctx context.Context, basketID, productID string) (bool, error) {
	result := r.db.WithContext(ctx).Exec(
		`UPDATE baskets
		 SET product_ids = array_remove(product_ids, ?), updated_at = now()
		 WHERE id = ? AND ? = ANY(product_ids)`,
		productID, basketID, productID,
	)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ProductsByIDs hydrates the product rows a basket references.
func (r *gormRepository) ProductsByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	var rows []models.Product
	if err := r.db.WithContext(ctx).Where("id = ANY(?)", pq.Array(ids)).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
