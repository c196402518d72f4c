package service

import (
	"context"
	"time"

	"jollof-hub/dashboard-svc/internal/domain"
	"jollof-hub/dashboard-svc/internal/storage"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

type StoreInterface interface {
	RecordOrder(ctx context.Context, orderID int, placedAt time.Time, total decimal.Decimal) error
	Summary(ctx context.Context, t time.Time) (*domain.Summary, error)
}

// MessageReader is the part of *kafka.Reader the consumer needs.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

type ConsumerInterface interface {
	Start(ctx context.Context)
	ProcessOrder(ctx context.Context, raw []byte) error
}

var (
	_ StoreInterface    = (*storage.Store)(nil)
	_ MessageReader     = (*kafka.Reader)(nil)
	_ ConsumerInterface = (*Consumer)(nil)
)
