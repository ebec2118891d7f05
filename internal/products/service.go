package products

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/shopcartlabs/shopcart-backend/pkg/db"
	pkgerrors "github.com/shopcartlabs/shopcart-backend/pkg/errors"
	"github.com/shopcartlabs/shopcart-backend/pkg/objectid"
)

// Service exposes catalog management operations.
type Service interface {
	Create(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	GetByID(ctx context.Context, id string) (*ProductDTO, error)
	List(ctx context.Context) ([]ProductDTO, error)
	FilterByTitle(ctx context.Context, prefix string) ([]ProductDTO, error)
	Update(ctx context.Context, id string, input UpdateProductInput) (*ProductDTO, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

// NewService wires the product service dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "products repository required")
	}
	return &service{repo: repo}, nil
}

// Create inserts a listing; a duplicate title is a conflict.
func (s *service) Create(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	if _, err := s.repo.FindByTitle(ctx, input.Title); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "a product with this title already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check product title")
	}

	product := input.ToModel()
	if err := s.repo.Create(ctx, product); err != nil {
		if db.IsUniqueViolation(err, "idx_products_title") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a product with this title already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return FromModel(product), nil
}

func (s *service) GetByID(ctx context.Context, id string) (*ProductDTO, error) {
	if err := objectid.Validate("product_id", id); err != nil {
		return nil, err
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return FromModel(product), nil
}

func (s *service) List(ctx context.Context) ([]ProductDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return FromModels(rows), nil
}

// FilterByTitle returns listings whose title starts with prefix, ignoring case.
func (s *service) FilterByTitle(ctx context.Context, prefix string) ([]ProductDTO, error) {
	trimmed := strings.TrimSpace(prefix)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title filter is required")
	}
	rows, err := s.repo.FilterByTitlePrefix(ctx, trimmed)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "filter products")
	}
	return FromModels(rows), nil
}

func (s *service) Update(ctx context.Context, id string, input UpdateProductInput) (*ProductDTO, error) {
	if err := objectid.Validate("product_id", id); err != nil {
		return nil, err
	}
	changes := input.Changes()
	if len(changes) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	affected, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		if db.IsUniqueViolation(err, "idx_products_title") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a product with this title already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload product")
	}
	return FromModel(product), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := objectid.Validate("product_id", id); err != nil {
		return err
	}
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}
