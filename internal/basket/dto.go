package basket

import (
	"time"

	"github.com/shopcartlabs/shopcart-backend/internal/products"
	"github.com/shopcartlabs/shopcart-backend/internal/users"
	"github.com/shopcartlabs/shopcart-backend/pkg/db/models"
)

// BasketDTO is the transport shape for a basket. Ids keep their snake_case
// wire names; timestamps are camelCase, matching the public contract.
type BasketDTO struct {
	ID         string                `json:"id"`
	UserID     string                `json:"user_id"`
	ProductIDs []string              `json:"product_ids"`
	OrderID    *string               `json:"order_id"`
	Products   []products.ProductDTO `json:"products,omitempty"`
	User       *users.UserDTO        `json:"user,omitempty"`
	CreatedAt  time.Time             `json:"createdAt"`
	UpdatedAt  time.Time             `json:"updatedAt"`
}

func FromModel(b *models.Basket) *BasketDTO {
	if b == nil {
		return nil
	}
	ids := make([]string, len(b.ProductIDs))
	copy(ids, b.ProductIDs)
	return &BasketDTO{
		ID:         b.ID,
		UserID:     b.UserID,
		ProductIDs: ids,
		OrderID:    b.OrderID,
		Products:   products.FromModels(b.Products),
		User:       users.FromModel(b.User),
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}
