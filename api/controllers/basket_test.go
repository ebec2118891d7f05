package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopcartlabs/shopcart-backend/internal/basket"
	pkgerrors "github.com/shopcartlabs/shopcart-backend/pkg/errors"
	"github.com/shopcartlabs/shopcart-backend/pkg/types"
)

const (
	testUserID    = "64a7f0c2e1b2c3d4e5f60711"
	testBasketID  = "64a7f0c2e1b2c3d4e5f60712"
	testProductID = "64a7f0c2e1b2c3d4e5f60713"
)

type fakeBasketService struct {
	getFn         func(ctx context.Context, userID string) (*basket.BasketDTO, error)
	checkAddFn    func(ctx context.Context, basketID, productID string) error
	checkRemoveFn func(ctx context.Context, basketID, productID string) error
}

func (f *fakeBasketService) CreateBasket(context.Context, string) (*basket.BasketDTO, error) {
	return nil, nil
}

func (f *fakeBasketService) GetBasketByUserID(ctx context.Context, userID string) (*basket.BasketDTO, error) {
	if f.getFn != nil {
		return f.getFn(ctx, userID)
	}
	return &basket.BasketDTO{ID: testBasketID, UserID: userID}, nil
}

func (f *fakeBasketService) DeleteBasket(context.Context, string) error { return nil }

func (f *fakeBasketService) AddProductToBasket(context.Context, string, string) (*basket.BasketDTO, error) {
	return nil, nil
}

func (f *fakeBasketService) RemoveProductFromBasket(context.Context, string, string) (*basket.BasketDTO, error) {
	return nil, nil
}

func (f *fakeBasketService) CheckAddProduct(ctx context.Context, basketID, productID string) error {
	if f.checkAddFn != nil {
		return f.checkAddFn(ctx, basketID, productID)
	}
	return nil
}

func (f *fakeBasketService) CheckRemoveProduct(ctx context.Context, basketID, productID string) error {
	if f.checkRemoveFn != nil {
		return f.checkRemoveFn(ctx, basketID, productID)
	}
	return nil
}

type fakePublisher struct {
	publishFn func(ctx context.Context, intent basket.Intent) error
	published []basket.Intent
}

func (f *fakePublisher) Publish(ctx context.Context, intent basket.Intent) error {
	f.published = append(f.published, intent)
	if f.publishFn != nil {
		return f.publishFn(ctx, intent)
	}
	return nil
}

func basketRouter(svc basket.Service, pub intentPublisher) http.Handler {
	r := chi.NewRouter()
	r.Route("/api/v1/basket", func(r chi.Router) {
		r.Post("/add-product", BasketAddProduct(svc, pub, nil))
		r.Delete("/remove-product", BasketRemoveProduct(svc, pub, nil))
		r.Post("/{id}", BasketCreate(pub, nil))
		r.Get("/{id}", BasketFetch(svc, nil))
		r.Delete("/{id}", BasketDelete(pub, nil))
	})
	return r
}

func doRequest(t *testing.T, handler http.Handler, method, path, body string) (*httptest.ResponseRecorder, types.Envelope) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	var envelope types.Envelope
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	return resp, envelope
}

func TestBasketCreate_QueuesIntent(t *testing.T) {
	pub := &fakePublisher{}
	handler := basketRouter(&fakeBasketService{}, pub)

	resp, envelope := doRequest(t, handler, http.MethodPost, "/api/v1/basket/"+testUserID, "")

	assert.Equal(t, http.StatusAccepted, resp.Code)
	assert.True(t, envelope.Success)
	assert.Equal(t, "Basket creation queued successfully", envelope.Message)

	require.Len(t, pub.published, 1)
	assert.Equal(t, basket.EventCreateBasket, pub.published[0].Event)
}

func TestBasketCreate_RejectsMalformedID(t *testing.T) {
	pub := &fakePublisher{}
	handler := basketRouter(&fakeBasketService{}, pub)

	resp, envelope := doRequest(t, handler, http.MethodPost, "/api/v1/basket/not-an-id", "")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.False(t, envelope.Success)
	assert.Empty(t, pub.published, "nothing may be queued for a malformed id")
}

func TestBasketCreate_ChannelUnavailable(t *testing.T) {
	pub := &fakePublisher{
		publishFn: func(context.Context, basket.Intent) error {
			return pkgerrors.New(pkgerrors.CodeChannelUnavailable, "basket intent channel is not available")
		},
	}
	handler := basketRouter(&fakeBasketService{}, pub)

	resp, envelope := doRequest(t, handler, http.MethodPost, "/api/v1/basket/"+testUserID, "")

	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
	assert.Equal(t, "basket intent channel is not available", envelope.Message)
}

func TestBasketFetch_ReturnsBasket(t *testing.T) {
	handler := basketRouter(&fakeBasketService{}, &fakePublisher{})

	resp, envelope := doRequest(t, handler, http.MethodGet, "/api/v1/basket/"+testUserID, "")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "Basket fetched successfully", envelope.Message)
	require.NotNil(t, envelope.Data)
}

func TestBasketFetch_NotFound(t *testing.T) {
	svc := &fakeBasketService{
		getFn: func(context.Context, string) (*basket.BasketDTO, error) {
			return nil, nil
		},
	}
	handler := basketRouter(svc, &fakePublisher{})

	resp, envelope := doRequest(t, handler, http.MethodGet, "/api/v1/basket/"+testUserID, "")

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "Basket not found for this user", envelope.Message)
}

func TestBasketDelete_QueuesIntent(t *testing.T) {
	pub := &fakePublisher{}
	handler := basketRouter(&fakeBasketService{}, pub)

	resp, envelope := doRequest(t, handler, http.MethodDelete, "/api/v1/basket/"+testBasketID, "")

	assert.Equal(t, http.StatusAccepted, resp.Code)
	assert.Equal(t, "Basket deletion queued successfully", envelope.Message)

	require.Len(t, pub.published, 1)
	assert.Equal(t, basket.EventDeleteBasket, pub.published[0].Event)
}

func TestBasketAddProduct_QueuesIntent(t *testing.T) {
	pub := &fakePublisher{}
	handler := basketRouter(&fakeBasketService{}, pub)

	body := `{"basket_id":"` + testBasketID + `","product_id":"` + testProductID + `"}`
	resp, envelope := doRequest(t, handler, http.MethodPost, "/api/v1/basket/add-product", body)

	assert.Equal(t, http.StatusAccepted, resp.Code)
	assert.Equal(t, "Added product successfully to basket", envelope.Message)

	require.Len(t, pub.published, 1)
	assert.Equal(t, basket.EventAddProduct, pub.published[0].Event)
}

func TestBasketAddProduct_RejectsIncompleteBody(t *testing.T) {
	pub := &fakePublisher{}
	handler := basketRouter(&fakeBasketService{}, pub)

	resp, envelope := doRequest(t, handler, http.MethodPost, "/api/v1/basket/add-product", `{"basket_id":"`+testBasketID+`"}`)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.False(t, envelope.Success)
	assert.Empty(t, pub.published)
}

func TestBasketAddProduct_AdvisoryCheckBlocksPublish(t *testing.T) {
	svc := &fakeBasketService{
		checkAddFn: func(context.Context, string, string) error {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product with id "+testProductID+" not found")
		},
	}
	pub := &fakePublisher{}
	handler := basketRouter(svc, pub)

	body := `{"basket_id":"` + testBasketID + `","product_id":"` + testProductID + `"}`
	resp, _ := doRequest(t, handler, http.MethodPost, "/api/v1/basket/add-product", body)

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Empty(t, pub.published, "failed check must not queue an intent")
}

func TestBasketRemoveProduct_QueuesIntent(t *testing.T) {
	pub := &fakePublisher{}
	handler := basketRouter(&fakeBasketService{}, pub)

	body := `{"basket_id":"` + testBasketID + `","product_id":"` + testProductID + `"}`
	resp, envelope := doRequest(t, handler, http.MethodDelete, "/api/v1/basket/remove-product", body)

	assert.Equal(t, http.StatusAccepted, resp.Code)
	assert.Equal(t, "Removed product successfully from basket", envelope.Message)

	require.Len(t, pub.published, 1)
	assert.Equal(t, basket.EventRemoveProduct, pub.published[0].Event)
}

func TestBasketRemoveProduct_MissingReference(t *testing.T) {
	svc := &fakeBasketService{
		checkRemoveFn: func(context.Context, string, string) error {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product "+testProductID+" not found in basket "+testBasketID)
		},
	}
	pub := &fakePublisher{}
	handler := basketRouter(svc, pub)

	body := `{"basket_id":"` + testBasketID + `","product_id":"` + testProductID + `"}`
	resp, _ := doRequest(t, handler, http.MethodDelete, "/api/v1/basket/remove-product", body)

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Empty(t, pub.published)
}
