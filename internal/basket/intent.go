package basket

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Event tags carried on the wire. Consumers dispatch on these exact strings.
const (
	EventCreateBasket  = "create.basket"
	EventDeleteBasket  = "delete.basket"
	EventAddProduct    = "add.product.basket"
	EventRemoveProduct = "remove.product.basket"
)

// Intent is the outbound message shape: an event tag plus its payload.
type Intent struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Envelope is the inbound shape; Data stays raw until the event tag picks
// the concrete payload type.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type CreateBasketData struct {
	UserID string `json:"user_id"`
}

type DeleteBasketData struct {
	BasketID string `json:"basket_id"`
}

// BasketProductData is shared by the add and remove product events.
type BasketProductData struct {
	BasketID  string `json:"basket_id"`
	ProductID string `json:"product_id"`
}

func NewCreateBasketIntent(userID string) Intent {
	return Intent{Event: EventCreateBasket, Data: CreateBasketData{UserID: userID}}
}

func NewDeleteBasketIntent(basketID string) Intent {
	return Intent{Event: EventDeleteBasket, Data: DeleteBasketData{BasketID: basketID}}
}

func NewAddProductIntent(basketID, productID string) Intent {
	return Intent{Event: EventAddProduct, Data: BasketProductData{BasketID: basketID, ProductID: productID}}
}

func NewRemoveProductIntent(basketID, productID string) Intent {
	return Intent{Event: EventRemoveProduct, Data: BasketProductData{BasketID: basketID, ProductID: productID}}
}

// KnownEvent reports whether the tag is one of the four basket events.
func KnownEvent(event string) bool {
	switch event {
	case EventCreateBasket, EventDeleteBasket, EventAddProduct, EventRemoveProduct:
		return true
	default:
		return false
	}
}

// DecodeEnvelope parses a raw queue payload into an envelope. The event tag
// must be present; the data payload is validated later against the tag.
func DecodeEnvelope(payload []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return Envelope{}, fmt.Errorf("unmarshaling intent envelope: %w", err)
	}
	if strings.TrimSpace(env.Event) == "" {
		return Envelope{}, fmt.Errorf("intent envelope missing event tag")
	}
	return env, nil
}
