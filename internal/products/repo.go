package products

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/shopcartlabs/shopcart-backend/pkg/db/models"
)

// Repository is the persistence surface the product service depends on.
type Repository interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id string) (*models.Product, error)
	FindByTitle(ctx context.Context, title string) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	FilterByTitlePrefix(ctx context.Context, prefix string) ([]models.Product, error)
	Update(ctx context.Context, id string, changes map[string]any) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository constructs a products repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *gormRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *gormRepository) FindByTitle(ctx context.Context, title string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Where("title = ?", title).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *gormRepository) List(ctx context.Context) ([]models.Product, error) {
	var rows []models.Product
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FilterByTitlePrefix matches case-insensitively on the start of the title.
// LOWER(...) LIKE keeps the query portable across Postgres and sqlite.
func (r *gormRepository) FilterByTitlePrefix(ctx context.Context, prefix string) ([]models.Product, error) {
	pattern := strings.ToLower(escapeLike(prefix)) + "%"
	var rows []models.Product
	if err := r.db.WithContext(ctx).
		Where("LOWER(title) LIKE ?", pattern).
		Order("title ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormRepository) Update(ctx context.Context, id string, changes map[string]any) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Updates(changes)
	return result.RowsAffected, result.Error
}

func (r *gormRepository) Delete(ctx context.Context, id string) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	return result.RowsAffected, result.Error
}

func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
