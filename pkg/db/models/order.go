package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shopcartlabs/shopcart-backend/pkg/objectid"
)

// Order is a converted basket. Checkout itself happens elsewhere; the row
// exists so baskets can point at the order that consumed them.
type Order struct {
	ID         string          `gorm:"column:id;type:char(24);primaryKey"`
	UserID     string          `gorm:"column:user_id;type:char(24);not null;index:idx_orders_user_id"`
	ProductIDs pq.StringArray  `gorm:"column:product_ids;type:text[];not null;default:ARRAY[]::text[]"`
	Total      decimal.Decimal `gorm:"column:total;type:numeric(12,2);not null;default:0"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Order) TableName() string { return "orders" }

func (o *Order) BeforeCreate(*gorm.DB) error {
	if o.ID == "" {
		o.ID = objectid.New()
	}
	return nil
}
