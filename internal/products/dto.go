package products

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopcartlabs/shopcart-backend/pkg/db/models"
)

// ProductDTO is the transport shape for a catalog listing.
type ProductDTO struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Price        decimal.Decimal `json:"price"`
	Introduction *string         `json:"introduction"`
	Body         *string         `json:"body"`
	Description  *string         `json:"description"`
	Status       *bool           `json:"status"`
	Stock        *int            `json:"stock"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// CreateProductInput is the request body for creating a listing.
type CreateProductInput struct {
	Title        string          `json:"title" validate:"required,min=1,max=255"`
	Price        decimal.Decimal `json:"price" validate:"required"`
	Introduction *string         `json:"introduction" validate:"omitempty,max=2000"`
	Body         *string         `json:"body"`
	Description  *string         `json:"description" validate:"omitempty,max=4000"`
	Status       *bool           `json:"status"`
	Stock        *int            `json:"stock" validate:"omitempty,gte=0"`
}

// UpdateProductInput carries a partial update; nil fields are left untouched.
type UpdateProductInput struct {
	Title        *string          `json:"title" validate:"omitempty,min=1,max=255"`
	Price        *decimal.Decimal `json:"price"`
	Introduction *string          `json:"introduction" validate:"omitempty,max=2000"`
	Body         *string          `json:"body"`
	Description  *string          `json:"description" validate:"omitempty,max=4000"`
	Status       *bool            `json:"status"`
	Stock        *int             `json:"stock" validate:"omitempty,gte=0"`
}

func FromModel(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	return &ProductDTO{
		ID:           p.ID,
		Title:        p.Title,
		Price:        p.Price,
		Introduction: p.Introduction,
		Body:         p.Body,
		Description:  p.Description,
		Status:       p.Status,
		Stock:        p.Stock,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func FromModels(rows []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}

func (c CreateProductInput) ToModel() *models.Product {
	return &models.Product{
		Title:        c.Title,
		Price:        c.Price,
		Introduction: c.Introduction,
		Body:         c.Body,
		Description:  c.Description,
		Status:       c.Status,
		Stock:        c.Stock,
	}
}

// Changes flattens the non-nil fields into a column update map.
func (u UpdateProductInput) Changes() map[string]any {
	changes := map[string]any{}
	if u.Title != nil {
		changes["title"] = *u.Title
	}
	if u.Price != nil {
		changes["price"] = *u.Price
	}
	if u.Introduction != nil {
		changes["introduction"] = *u.Introduction
	}
	if u.Body != nil {
		changes["body"] = *u.Body
	}
	if u.Description != nil {
		changes["description"] = *u.Description
	}
	if u.Status != nil {
		changes["status"] = *u.Status
	}
	if u.Stock != nil {
		changes["stock"] = *u.Stock
	}
	return changes
}
