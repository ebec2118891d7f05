package basket

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shopcartlabs/shopcart-backend/internal/users"
	"github.com/shopcartlabs/shopcart-backend/pkg/db"
	"github.com/shopcartlabs/shopcart-backend/pkg/db/models"
	pkgerrors "github.com/shopcartlabs/shopcart-backend/pkg/errors"
	"github.com/shopcartlabs/shopcart-backend/pkg/objectid"
)

// UserFinder is the slice of the users repository the basket service needs.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// ProductFinder is the slice of the products repository the basket service needs.
type ProductFinder interface {
	FindByID(ctx context.Context, id string) (*models.Product, error)
}

// ServiceParams groups dependencies for the basket service.
type ServiceParams struct {
	BasketRepo  Repository
	UserRepo    UserFinder
	ProductRepo ProductFinder
}

// Service applies basket mutations. Mutations arrive through the queue
// consumer; reads and advisory checks are called from the HTTP layer.
type Service interface {
	CreateBasket(ctx context.Context, userID string) (*BasketDTO, error)
	GetBasketByUserID(ctx context.Context, userID string) (*BasketDTO, error)
	DeleteBasket(ctx context.Context, basketID string) error
	AddProductToBasket(ctx context.Context, basketID, productID string) (*BasketDTO, error)
	RemoveProductFromBasket(ctx context.Context, basketID, productID string) (*BasketDTO, error)
	CheckAddProduct(ctx context.Context, basketID, productID string) error
	CheckRemoveProduct(ctx context.Context, basketID, productID string) error
}

type service struct {
	basketRepo  Repository
	userRepo    UserFinder
	productRepo ProductFinder
}

// NewService builds a basket service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.BasketRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "basket repo is required")
	}
	if params.UserRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "user repo is required")
	}
	if params.ProductRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "product repo is required")
	}
	return &service{
		basketRepo:  params.BasketRepo,
		userRepo:    params.UserRepo,
		productRepo: params.ProductRepo,
	}, nil
}

// CreateBasket inserts an empty basket for the user. The user must exist and
// must not already own a basket; a racing duplicate insert surfaces as the
// same conflict through the unique index on user_id.
func (s *service) CreateBasket(ctx context.Context, userID string) (*BasketDTO, error) {
	if err := objectid.Validate("user_id", userID); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("user with id %s not found", userID))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	if _, err := s.basketRepo.FindByUserID(ctx, userID); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("basket already exists for user %s", userID))
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check existing basket")
	}

	row, err := s.basketRepo.Create(ctx, userID)
	if err != nil {
		if db.IsUniqueViolation(err, "idx_baskets_user_id") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("basket already exists for user %s", userID))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create basket")
	}
	return FromModel(row), nil
}

// GetBasketByUserID returns the user's basket with product and user relations
// loaded, or (nil, nil) when the user has no basket.
func (s *service) GetBasketByUserID(ctx context.Context, userID string) (*BasketDTO, error) {
	if err := objectid.Validate("user_id", userID); err != nil {
		return nil, err
	}

	row, err := s.basketRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load basket")
	}

	if err := s.hydrateProducts(ctx, row); err != nil {
		return nil, err
	}
	if user, err := s.userRepo.FindByID(ctx, userID); err == nil {
		row.User = user
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load basket owner")
	}

	return FromModel(row), nil
}

// DeleteBasket removes the basket row; zero rows affected means it never
// existed (or a previous delivery already removed it).
func (s *service) DeleteBasket(ctx context.Context, basketID string) error {
	if err := objectid.Validate("basket_id", basketID); err != nil {
		return err
	}

	affected, err := s.basketRepo.Delete(ctx, basketID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete basket")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("basket with id %s not found", basketID))
	}
	return nil
}

// AddProductToBasket appends the product reference. A reference that is
// already present is a no-op returning the basket unchanged.
func (s *service) AddProductToBasket(ctx context.Context, basketID, productID string) (*BasketDTO, error) {
	if err := validatePair(basketID, productID); err != nil {
		return nil, err
	}

	row, err := s.loadBasket(ctx, basketID)
	if err != nil {
		return nil, err
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product with id %s not found", productID))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	if row.HasProduct(productID) {
		if err := s.hydrateProducts(ctx, row); err != nil {
			return nil, err
		}
		return FromModel(row), nil
	}

	// The guarded append also loses gracefully to a concurrent duplicate; a
	// zero-row update just means the reference is already there.
	if _, err := s.basketRepo.AppendProduct(ctx, basketID, productID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append product")
	}

	return s.reload(ctx, basketID)
}

// RemoveProductFromBasket drops the product reference. The basket must exist
// and hold the reference.
func (s *service) RemoveProductFromBasket(ctx context.Context, basketID, productID string) (*BasketDTO, error) {
	if err := validatePair(basketID, productID); err != nil {
		return nil, err
	}

	row, err := s.loadBasket(ctx, basketID)
	if err != nil {
		return nil, err
	}

	if !row.HasProduct(productID) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound,
			fmt.Sprintf("product %s not found in basket %s", productID, basketID))
	}

	applied, err := s.basketRepo.RemoveProduct(ctx, basketID, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove product")
	}
	if !applied {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound,
			fmt.Sprintf("product %s not found in basket %s", productID, basketID))
	}

	return s.reload(ctx, basketID)
}

// CheckAddProduct is the advisory pre-publish check: basket and product must
// exist right now. The consumer re-validates when the intent is applied.
func (s *service) CheckAddProduct(ctx context.Context, basketID, productID string) error {
	if err := validatePair(basketID, productID); err != nil {
		return err
	}
	if _, err := s.loadBasket(ctx, basketID); err != nil {
		return err
	}
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product with id %s not found", productID))
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return nil
}

// CheckRemoveProduct additionally requires the basket to hold the reference.
func (s *service) CheckRemoveProduct(ctx context.Context, basketID, productID string) error {
	if err := validatePair(basketID, productID); err != nil {
		return err
	}
	row, err := s.loadBasket(ctx, basketID)
	if err != nil {
		return err
	}
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product with id %s not found", productID))
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if !row.HasProduct(productID) {
		return pkgerrors.New(pkgerrors.CodeNotFound,
			fmt.Sprintf("product %s not found in basket %s", productID, basketID))
	}
	return nil
}

func (s *service) loadBasket(ctx context.Context, basketID string) (*models.Basket, error) {
	row, err := s.basketRepo.FindByID(ctx, basketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("basket with id %s not found", basketID))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load basket")
	}
	return row, nil
}

func (s *service) reload(ctx context.Context, basketID string) (*BasketDTO, error) {
	row, err := s.loadBasket(ctx, basketID)
	if err != nil {
		return nil, err
	}
	if err := s.hydrateProducts(ctx, row); err != nil {
		return nil, err
	}
	return FromModel(row), nil
}

func (s *service) hydrateProducts(ctx context.Context, row *models.Basket) error {
	rows, err := s.basketRepo.ProductsByIDs(ctx, row.ProductIDs)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load basket products")
	}
	row.Products = rows
	return nil
}

func validatePair(basketID, productID string) error {
	if err := objectid.Validate("basket_id", basketID); err != nil {
		return err
	}
	return objectid.Validate("product_id", productID)
}

var _ UserFinder = (*users.Repository)(nil)
