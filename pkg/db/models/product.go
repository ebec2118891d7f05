package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shopcartlabs/shopcart-backend/pkg/objectid"
)

// Product is a catalog listing.
type Product struct {
	ID           string          `gorm:"column:id;type:char(24);primaryKey"`
	Title        string          `gorm:"column:title;type:text;not null;uniqueIndex:idx_products_title"`
	Price        decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Introduction *string         `gorm:"column:introduction;type:text"`
	Body         *string         `gorm:"column:body;type:text"`
	Description  *string         `gorm:"column:description;type:text"`
	Status       *bool           `gorm:"column:status"`
	Stock        *int            `gorm:"column:stock"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Product) TableName() string { return "products" }

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = objectid.New()
	}
	return nil
}
