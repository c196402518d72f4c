package storage

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"sync/atomic"

	"jollof-hub/storefront-svc/internal/domain"

	"github.com/segmentio/kafka-go"
)

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaBroadcaster publishes order events to the dashboard topic. The writer
// is created on first use and shared afterwards.
type KafkaBroadcaster struct {
	newWriter func() MessageWriter

	once   sync.Once
	ready  atomic.Bool
	writer MessageWriter
}

func NewKafkaBroadcaster(newWriter func() MessageWriter) *KafkaBroadcaster {
	return &KafkaBroadcaster{newWriter: newWriter}
}

// Init creates the writer. Calls after the first one, concurrent or not, are
// no-ops.
func (b *KafkaBroadcaster) Init() MessageWriter {
	b.once.Do(func() {
		b.writer = b.newWriter()
		b.ready.Store(true)
	})
	return b.writer
}

func (b *KafkaBroadcaster) Publish(ctx context.Context, event domain.OrderEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return b.Init().WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.Itoa(event.Order.ID)),
		Value: payload,
	})
}

func (b *KafkaBroadcaster) Close() error {
	if !b.ready.Load() {
		return nil
	}
	return b.writer.Close()
}
