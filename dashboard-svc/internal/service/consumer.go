package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"jollof-hub/dashboard-svc/internal/domain"
	"jollof-hub/logger"
)

const readBackoff = time.Second

type Consumer struct {
	Reader MessageReader
	Store  StoreInterface
	Hub    *Hub
	Log    *logger.Logger
}

func NewConsumer(reader MessageReader, store StoreInterface, hub *Hub, log *logger.Logger) *Consumer {
	if log == nil {
		log = logger.Discard()
	}
	return &Consumer{
		Reader: reader,
		Store:  store,
		Hub:    hub,
		Log:    log,
	}
}

// Start reads until ctx is cancelled or the reader is closed.
func (c *Consumer) Start(ctx context.Context) {
	c.Log.Info(ctx, "consumer_start", "Starting Dashboard Service consumer")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				c.Log.Info(ctx, "consumer_stop", "consumer stopped")
				return
			}
			c.Log.Error(ctx, "consumer_read", "error reading message", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(readBackoff):
			}
			continue
		}

		if err := c.ProcessOrder(ctx, message.Value); err != nil {
			c.Log.Error(ctx, "consumer_process", "error processing message", err,
				slog.Int64("offset", message.Offset), slog.Int("partition", message.Partition))
		}
	}
}

// ProcessOrder aggregates a new_order event and forwards the order itself to
// subscribers.
// Other event types are ignored.
func (c *Consumer) ProcessOrder(ctx context.Context, raw []byte) error {
	var event domain.OrderEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return fmt.Errorf("decode event: %w", err)
	}
	if event.Type != domain.EventNewOrder {
		return nil
	}
	if len(event.RawOrder) == 0 {
		return fmt.Errorf("decode event: %s without order", event.Type)
	}

	c.Log.Info(ctx, "order_event", "processing new order",
		slog.Int("order_id", event.Order.ID), slog.String("total", event.Order.TotalPrice.StringFixed(2)))

	var storeErr error
	if c.Store != nil {
		if err := c.Store.RecordOrder(ctx, event.Order.ID, event.PlacedAt(), event.Order.TotalPrice); err != nil {
			storeErr = fmt.Errorf("record order %d: %w", event.Order.ID, err)
		}
	}

	if c.Hub != nil {
		delivered := c.Hub.Publish(domain.Frame{Event: event.Type, Data: event.RawOrder})
		c.Log.Debug(ctx, "order_event", "event forwarded", slog.Int("subscribers", delivered))
	}
	return storeErr
}
