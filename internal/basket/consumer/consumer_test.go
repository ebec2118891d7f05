package consumer

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	pubsub "cloud.google.com/go/pubsub/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopcartlabs/shopcart-backend/internal/basket"
	pkgerrors "github.com/shopcartlabs/shopcart-backend/pkg/errors"
	"github.com/shopcartlabs/shopcart-backend/pkg/logger"
)

const (
	testUserID    = "64a7f0c2e1b2c3d4e5f60711"
	testBasketID  = "64a7f0c2e1b2c3d4e5f60712"
	testProductID = "64a7f0c2e1b2c3d4e5f60713"
)

type fakeService struct {
	createFn func(ctx context.Context, userID string) (*basket.BasketDTO, error)
	deleteFn func(ctx context.Context, basketID string) error
	addFn    func(ctx context.Context, basketID, productID string) (*basket.BasketDTO, error)
	removeFn func(ctx context.Context, basketID, productID string) (*basket.BasketDTO, error)

	calls []string
}

func (f *fakeService) CreateBasket(ctx context.Context, userID string) (*basket.BasketDTO, error) {
	f.calls = append(f.calls, "create:"+userID)
	if f.createFn != nil {
		return f.createFn(ctx, userID)
	}
	return &basket.BasketDTO{ID: testBasketID, UserID: userID}, nil
}

func (f *fakeService) DeleteBasket(ctx context.Context, basketID string) error {
	f.calls = append(f.calls, "delete:"+basketID)
	if f.deleteFn != nil {
		return f.deleteFn(ctx, basketID)
	}
	return nil
}

func (f *fakeService) AddProductToBasket(ctx context.Context, basketID, productID string) (*basket.BasketDTO, error) {
	f.calls = append(f.calls, "add:"+basketID+":"+productID)
	if f.addFn != nil {
		return f.addFn(ctx, basketID, productID)
	}
	return &basket.BasketDTO{ID: basketID}, nil
}

func (f *fakeService) RemoveProductFromBasket(ctx context.Context, basketID, productID string) (*basket.BasketDTO, error) {
	f.calls = append(f.calls, "remove:"+basketID+":"+productID)
	if f.removeFn != nil {
		return f.removeFn(ctx, basketID, productID)
	}
	return &basket.BasketDTO{ID: basketID}, nil
}

func newTestConsumer(svc basketService) *Consumer {
	logg := logger.New(logger.Options{
		ServiceName: "consumer-test",
		Level:       zerolog.Disabled,
		Output:      io.Discard,
	})
	return &Consumer{svc: svc, logg: logg}
}

func intentMessage(t *testing.T, intent basket.Intent) *pubsub.Message {
	t.Helper()
	raw, err := json.Marshal(intent)
	require.NoError(t, err)
	return &pubsub.Message{ID: "msg-1", Data: raw}
}

func TestProcess_DispatchesEachEvent(t *testing.T) {
	cases := []struct {
		name   string
		intent basket.Intent
		want   string
	}{
		{"create", basket.NewCreateBasketIntent(testUserID), "create:" + testUserID},
		{"delete", basket.NewDeleteBasketIntent(testBasketID), "delete:" + testBasketID},
		{"add", basket.NewAddProductIntent(testBasketID, testProductID), "add:" + testBasketID + ":" + testProductID},
		{"remove", basket.NewRemoveProductIntent(testBasketID, testProductID), "remove:" + testBasketID + ":" + testProductID},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeService{}
			c := newTestConsumer(svc)

			c.process(context.Background(), intentMessage(t, tc.intent))

			require.Len(t, svc.calls, 1)
			assert.Equal(t, tc.want, svc.calls[0])
		})
	}
}

func TestProcess_MalformedPayloadIsDropped(t *testing.T) {
	svc := &fakeService{}
	c := newTestConsumer(svc)

	c.process(context.Background(), &pubsub.Message{ID: "msg-1", Data: []byte("not-json")})

	assert.Empty(t, svc.calls, "no service call for a malformed payload")
}

func TestProcess_UnknownEventIsDropped(t *testing.T) {
	svc := &fakeService{}
	c := newTestConsumer(svc)

	c.process(context.Background(), intentMessage(t, basket.Intent{
		Event: "update.basket",
		Data:  basket.DeleteBasketData{BasketID: testBasketID},
	}))

	assert.Empty(t, svc.calls)
}

func TestProcess_FailuresDoNotPropagate(t *testing.T) {
	svc := &fakeService{
		deleteFn: func(ctx context.Context, basketID string) error {
			return pkgerrors.New(pkgerrors.CodeNotFound, "basket not found")
		},
	}
	c := newTestConsumer(svc)

	// Processing a failed intent must not panic; the message is dropped.
	c.process(context.Background(), intentMessage(t, basket.NewDeleteBasketIntent(testBasketID)))

	require.Len(t, svc.calls, 1)
}

func TestProcess_DuplicateCreateIsDiscarded(t *testing.T) {
	svc := &fakeService{
		createFn: func(ctx context.Context, userID string) (*basket.BasketDTO, error) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "basket already exists for user "+userID)
		},
	}
	c := newTestConsumer(svc)

	c.process(context.Background(), intentMessage(t, basket.NewCreateBasketIntent(testUserID)))

	require.Len(t, svc.calls, 1)
}

func TestDiscardReason(t *testing.T) {
	assert.Equal(t, "not_found", discardReason(pkgerrors.New(pkgerrors.CodeNotFound, "missing")))
	assert.Equal(t, "conflict", discardReason(pkgerrors.New(pkgerrors.CodeConflict, "dup")))
	assert.Equal(t, "error", discardReason(assert.AnError))
}
