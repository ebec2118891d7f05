package basket

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	pubsub "cloud.google.com/go/pubsub/v2"

	pkgerrors "github.com/shopcartlabs/shopcart-backend/pkg/errors"
	"github.com/shopcartlabs/shopcart-backend/pkg/logger"
	"github.com/shopcartlabs/shopcart-backend/pkg/metrics"
)

const defaultPublishTimeout = 10 * time.Second

// publishResult is the broker acknowledgement handle.
type publishResult interface {
	Get(ctx context.Context) (string, error)
}

// topic is the publishing surface the intent publisher depends on.
type topic interface {
	Publish(ctx context.Context, msg *pubsub.Message) publishResult
}

func newGCPTopic(p *pubsub.Publisher) topic {
	if p == nil {
		return nil
	}
	return &gcpTopic{Publisher: p}
}

type gcpTopic struct {
	*pubsub.Publisher
}

func (t *gcpTopic) Publish(ctx context.Context, msg *pubsub.Message) publishResult {
	if t == nil || t.Publisher == nil {
		return nil
	}
	return &gcpPublishResult{PublishResult: t.Publisher.Publish(ctx, msg)}
}

type gcpPublishResult struct {
	*pubsub.PublishResult
}

func (r *gcpPublishResult) Get(ctx context.Context) (string, error) {
	if r == nil || r.PublishResult == nil {
		return "", errors.New("publish result is nil")
	}
	return r.PublishResult.Get(ctx)
}

// Publisher hands basket intents to the broker. A successful publish means
// durable handoff, not that the mutation has been applied.
type Publisher struct {
	topic   topic
	timeout time.Duration
	metrics *metrics.QueueMetrics
	logg    *logger.Logger
}

// NewPublisher wraps the basket topic. A nil topic is allowed so the API can
// boot degraded; publishing then fails with a channel error.
func NewPublisher(t *pubsub.Publisher, timeout time.Duration, m *metrics.QueueMetrics, logg *logger.Logger) *Publisher {
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}
	p := &Publisher{timeout: timeout, metrics: m, logg: logg}
	if t != nil {
		p.topic = newGCPTopic(t)
	}
	return p
}

// Publish JSON-encodes the intent and blocks until the broker acknowledges it
// or the timeout elapses.
func (p *Publisher) Publish(ctx context.Context, intent Intent) error {
	if p == nil || p.topic == nil {
		return pkgerrors.New(pkgerrors.CodeChannelUnavailable, "basket intent channel is not available")
	}

	payload, err := json.Marshal(intent)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode basket intent")
	}

	publishCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	result := p.topic.Publish(publishCtx, &pubsub.Message{
		Data:       payload,
		Attributes: map[string]string{"event": intent.Event},
	})
	if result == nil {
		return pkgerrors.New(pkgerrors.CodeChannelUnavailable, "basket intent channel is not available")
	}

	if _, err := result.Get(publishCtx); err != nil {
		p.metrics.IncPublishFailure(intent.Event)
		if p.logg != nil {
			p.logg.Error(ctx, "failed to publish basket intent", err)
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "publish basket intent")
	}

	p.metrics.IncPublished(intent.Event)
	return nil
}
