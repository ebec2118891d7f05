package products

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shopcartlabs/shopcart-backend/pkg/db/models"
	pkgerrors "github.com/shopcartlabs/shopcart-backend/pkg/errors"
)

type fakeRepository struct {
	createFn      func(ctx context.Context, product *models.Product) error
	findByIDFn    func(ctx context.Context, id string) (*models.Product, error)
	findByTitleFn func(ctx context.Context, title string) (*models.Product, error)
	listFn        func(ctx context.Context) ([]models.Product, error)
	filterFn      func(ctx context.Context, prefix string) ([]models.Product, error)
	updateFn      func(ctx context.Context, id string, changes map[string]any) (int64, error)
	deleteFn      func(ctx context.Context, id string) (int64, error)
}

func (f *fakeRepository) Create(ctx context.Context, product *models.Product) error {
	if f.createFn != nil {
		return f.createFn(ctx, product)
	}
	return nil
}

func (f *fakeRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) FindByTitle(ctx context.Context, title string) (*models.Product, error) {
	if f.findByTitleFn != nil {
		return f.findByTitleFn(ctx, title)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) List(ctx context.Context) ([]models.Product, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}
	return nil, nil
}

func (f *fakeRepository) FilterByTitlePrefix(ctx context.Context, prefix string) ([]models.Product, error) {
	if f.filterFn != nil {
		return f.filterFn(ctx, prefix)
	}
	return nil, nil
}

func (f *fakeRepository) Update(ctx context.Context, id string, changes map[string]any) (int64, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, changes)
	}
	return 0, nil
}

func (f *fakeRepository) Delete(ctx context.Context, id string) (int64, error) {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return 0, nil
}

func newServiceWithRepo(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo)
	require.NoError(t, err)
	return svc
}

const testProductID = "64a7f0c2e1b2c3d4e5f60719"

func TestServiceCreate_Success(t *testing.T) {
	repo := &fakeRepository{
		createFn: func(ctx context.Context, product *models.Product) error {
			product.ID = testProductID
			return nil
		},
	}
	svc := newServiceWithRepo(t, repo)

	dto, err := svc.Create(context.Background(), CreateProductInput{
		Title: "Espresso Beans",
		Price: decimal.RequireFromString("12.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, testProductID, dto.ID)
	assert.Equal(t, "Espresso Beans", dto.Title)
}

func TestServiceCreate_DuplicateTitle(t *testing.T) {
	repo := &fakeRepository{
		findByTitleFn: func(ctx context.Context, title string) (*models.Product, error) {
			return &models.Product{ID: testProductID, Title: title}, nil
		},
	}
	svc := newServiceWithRepo(t, repo)

	_, err := svc.Create(context.Background(), CreateProductInput{
		Title: "Espresso Beans",
		Price: decimal.RequireFromString("12.50"),
	})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeConflict))
}

func TestServiceGetByID(t *testing.T) {
	repo := &fakeRepository{
		findByIDFn: func(ctx context.Context, id string) (*models.Product, error) {
			return &models.Product{ID: id, Title: "Espresso Beans"}, nil
		},
	}
	svc := newServiceWithRepo(t, repo)

	dto, err := svc.GetByID(context.Background(), testProductID)
	require.NoError(t, err)
	assert.Equal(t, "Espresso Beans", dto.Title)
}

func TestServiceGetByID_InvalidID(t *testing.T) {
	svc := newServiceWithRepo(t, &fakeRepository{})

	_, err := svc.GetByID(context.Background(), "nope")
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeInvalidIdentifier))
}

func TestServiceGetByID_NotFound(t *testing.T) {
	svc := newServiceWithRepo(t, &fakeRepository{})

	_, err := svc.GetByID(context.Background(), testProductID)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestServiceFilterByTitle_RequiresPrefix(t *testing.T) {
	svc := newServiceWithRepo(t, &fakeRepository{})

	_, err := svc.FilterByTitle(context.Background(), "   ")
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

func TestServiceFilterByTitle_TrimsPrefix(t *testing.T) {
	var captured string
	repo := &fakeRepository{
		filterFn: func(ctx context.Context, prefix string) ([]models.Product, error) {
			captured = prefix
			return []models.Product{{ID: testProductID, Title: "Espresso Beans"}}, nil
		},
	}
	svc := newServiceWithRepo(t, repo)

	rows, err := svc.FilterByTitle(context.Background(), "  Espresso ")
	require.NoError(t, err)
	assert.Equal(t, "Espresso", captured)
	assert.Len(t, rows, 1)
}

func TestServiceUpdate_NotFound(t *testing.T) {
	repo := &fakeRepository{
		updateFn: func(ctx context.Context, id string, changes map[string]any) (int64, error) {
			return 0, nil
		},
	}
	svc := newServiceWithRepo(t, repo)

	title := "New Title"
	_, err := svc.Update(context.Background(), testProductID, UpdateProductInput{Title: &title})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestServiceUpdate_NoChanges(t *testing.T) {
	svc := newServiceWithRepo(t, &fakeRepository{})

	_, err := svc.Update(context.Background(), testProductID, UpdateProductInput{})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

func TestServiceDelete(t *testing.T) {
	deleted := false
	repo := &fakeRepository{
		deleteFn: func(ctx context.Context, id string) (int64, error) {
			deleted = true
			return 1, nil
		},
	}
	svc := newServiceWithRepo(t, repo)

	require.NoError(t, svc.Delete(context.Background(), testProductID))
	assert.True(t, deleted)
}

func TestServiceDelete_NotFound(t *testing.T) {
	svc := newServiceWithRepo(t, &fakeRepository{})

	err := svc.Delete(context.Background(), testProductID)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestServiceList_DependencyError(t *testing.T) {
	repo := &fakeRepository{
		listFn: func(ctx context.Context) ([]models.Product, error) {
			return nil, errors.New("connection reset")
		},
	}
	svc := newServiceWithRepo(t, repo)

	_, err := svc.List(context.Background())
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeDependency))
}
