package users

import (
	"time"

	"github.com/shopcartlabs/shopcart-backend/pkg/db/models"
)

// UserDTO is the transport shape for a user row. JSON field names mirror the
// public API contract (createdAt/updatedAt camelCase, ids snake-free).
type UserDTO struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateUserDTO holds the data required to persist a new user.
type CreateUserDTO struct {
	Email string
	Role  string
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	role := c.Role
	if role == "" {
		role = "user"
	}
	return &models.User{
		Email: c.Email,
		Role:  role,
	}
}
