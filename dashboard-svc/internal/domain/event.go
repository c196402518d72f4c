package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

const EventNewOrder = "new_order"

// OrderEvent is the envelope published by the storefront for every placed
// order. Only the fields the dashboard aggregates are decoded into Order;
// RawOrder keeps the order object as published for subscribers.
type OrderEvent struct {
	Type      string          `json:"type"`
	Order     OrderPayload    `json:"-"`
	RawOrder  json.RawMessage `json:"order"`
	Timestamp time.Time       `json:"timestamp"`
}

func (e *OrderEvent) UnmarshalJSON(b []byte) error {
	type envelope OrderEvent
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return err
	}
	*e = OrderEvent(env)
	if len(e.RawOrder) == 0 || string(e.RawOrder) == "null" {
		e.RawOrder = nil
		return nil
	}
	return json.Unmarshal(e.RawOrder, &e.Order)
}

type OrderPayload struct {
	ID           int             `json:"id"`
	CustomerName string          `json:"customerName"`
	TotalPrice   decimal.Decimal `json:"totalPrice"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// PlacedAt prefers the order's own creation time.
func (e OrderEvent) PlacedAt() time.Time {
	if !e.Order.CreatedAt.IsZero() {
		return e.Order.CreatedAt
	}
	return e.Timestamp
}

type Summary struct {
	Date    string          `json:"date"`
	Orders  int64           `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// Frame is one server-sent event.
type Frame struct {
	Event string
	Data  json.RawMessage
}
