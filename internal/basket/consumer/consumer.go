package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	pubsub "cloud.google.com/go/pubsub/v2"

	"github.com/shopcartlabs/shopcart-backend/internal/basket"
	pkgerrors "github.com/shopcartlabs/shopcart-backend/pkg/errors"
	"github.com/shopcartlabs/shopcart-backend/pkg/logger"
	"github.com/shopcartlabs/shopcart-backend/pkg/metrics"
)

// basketService is the mutation surface the consumer drives.
type basketService interface {
	CreateBasket(ctx context.Context, userID string) (*basket.BasketDTO, error)
	DeleteBasket(ctx context.Context, basketID string) error
	AddProductToBasket(ctx context.Context, basketID, productID string) (*basket.BasketDTO, error)
	RemoveProductFromBasket(ctx context.Context, basketID, productID string) (*basket.BasketDTO, error)
}

// Consumer applies basket intents one at a time. Every message is acked,
// including failures: a failed intent is logged and dropped, never redelivered.
type Consumer struct {
	svc          basketService
	subscription *pubsub.Subscriber
	logg         *logger.Logger
	metrics      *metrics.QueueMetrics
}

// NewConsumer constructs a consumer bound to the basket subscription.
func NewConsumer(svc basketService, subscription *pubsub.Subscriber, logg *logger.Logger, m *metrics.QueueMetrics) (*Consumer, error) {
	if svc == nil {
		return nil, errors.New("basket service is required")
	}
	if subscription == nil {
		return nil, errors.New("basket subscription is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}
	return &Consumer{
		svc:          svc,
		subscription: subscription,
		logg:         logg,
		metrics:      m,
	}, nil
}

// Run processes messages until the context is canceled or the subscription
// errors. One outstanding message at a time keeps mutations serialized.
func (c *Consumer) Run(ctx context.Context) error {
	c.subscription.ReceiveSettings.MaxOutstandingMessages = 1
	c.subscription.ReceiveSettings.NumGoroutines = 1

	return c.subscription.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		c.process(ctx, msg)
		msg.Ack()
	})
}

func (c *Consumer) process(ctx context.Context, msg *pubsub.Message) {
	logCtx := c.logg.WithField(ctx, "message_id", msg.ID)

	env, err := basket.DecodeEnvelope(msg.Data)
	if err != nil {
		c.metrics.IncDiscarded("unknown", "malformed")
		c.logg.Error(logCtx, "discarding malformed basket intent", err)
		return
	}

	logCtx = c.logg.WithField(logCtx, "event", env.Event)
	c.metrics.IncReceived(env.Event)

	if !basket.KnownEvent(env.Event) {
		c.metrics.IncDiscarded(env.Event, "unknown_event")
		c.logg.Warn(logCtx, "discarding intent with unknown event tag")
		return
	}

	started := time.Now()
	err = c.dispatch(logCtx, env)
	c.metrics.ObserveHandleDuration(env.Event, time.Since(started))

	if err != nil {
		reason := discardReason(err)
		c.metrics.IncDiscarded(env.Event, reason)
		// A conflicting create is the expected shape of a redelivered
		// intent, so it only warrants a warning.
		if env.Event == basket.EventCreateBasket && pkgerrors.HasCode(err, pkgerrors.CodeConflict) {
			c.logg.Warn(c.logg.WithField(logCtx, "reason", reason), "discarding duplicate basket creation")
			return
		}
		c.logg.Error(c.logg.WithField(logCtx, "reason", reason), "discarding failed basket intent", err)
		return
	}

	c.metrics.IncProcessed(env.Event)
	c.logg.Info(logCtx, "basket intent applied")
}

func (c *Consumer) dispatch(ctx context.Context, env basket.Envelope) error {
	switch env.Event {
	case basket.EventCreateBasket:
		var data basket.CreateBasketData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode create.basket data")
		}
		_, err := c.svc.CreateBasket(ctx, data.UserID)
		return err

	case basket.EventDeleteBasket:
		var data basket.DeleteBasketData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode delete.basket data")
		}
		return c.svc.DeleteBasket(ctx, data.BasketID)

	case basket.EventAddProduct:
		var data basket.BasketProductData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode add.product.basket data")
		}
		_, err := c.svc.AddProductToBasket(ctx, data.BasketID, data.ProductID)
		return err

	case basket.EventRemoveProduct:
		var data basket.BasketProductData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode remove.product.basket data")
		}
		_, err := c.svc.RemoveProductFromBasket(ctx, data.BasketID, data.ProductID)
		return err
	}
	return nil
}

func discardReason(err error) string {
	if typed := pkgerrors.As(err); typed != nil {
		return strings.ToLower(string(typed.Code()))
	}
	return "error"
}
