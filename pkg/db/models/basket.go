package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/shopcartlabs/shopcart-backend/pkg/objectid"
)

// Basket is the single per-user cart. ProductIDs holds unordered, unique
// product references; quantities are not modeled.
type Basket struct {
	ID         string         `gorm:"column:id;type:char(24);primaryKey"`
	UserID     string         `gorm:"column:user_id;type:char(24);not null;uniqueIndex:idx_baskets_user_id"`
	ProductIDs pq.StringArray `gorm:"column:product_ids;type:text[];not null;default:ARRAY[]::text[]"`
	OrderID    *string        `gorm:"column:order_id;type:char(24)"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"column:updated_at;autoUpdateTime"`

	// Loaded by the repository from ProductIDs; not a GORM relation.
	Products []Product `gorm:"-"`
	User     *User     `gorm:"-"`
}

func (Basket) TableName() string { return "baskets" }

// Keys are assigned app-side; Postgres has no default for this format.
func (b *Basket) BeforeCreate(*gorm.DB) error {
	if b.ID == "" {
		b.ID = objectid.New()
	}
	return nil
}

// HasProduct reports whether the basket already references productID.
func (b *Basket) HasProduct(productID string) bool {
	for _, id := range b.ProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}
