package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"jollof-hub/logger"
	"jollof-hub/storefront-svc/internal/domain"
	"jollof-hub/storefront-svc/internal/validation"

	"github.com/shopspring/decimal"
)

// Submitted totals may differ from the recomputed sum by at most one cent.
var totalTolerance = decimal.New(1, -2)

type OrderInput struct {
	CustomerName string            `json:"customerName"`
	TotalPrice   validation.Number `json:"totalPrice"`
	Items        []OrderLineInput  `json:"items"`
}

type OrderLineInput struct {
	ID       validation.Number `json:"id"`
	Name     string            `json:"name"`
	Quantity validation.Number `json:"quantity"`
	Price    validation.Number `json:"price"`
}

func (in OrderInput) toOrder() (*domain.Order, error) {
	if err := validation.Required("customerName", in.CustomerName); err != nil {
		return nil, err
	}
	total, err := validation.Amount("totalPrice", in.TotalPrice)
	if err != nil {
		return nil, err
	}
	if len(in.Items) == 0 {
		return nil, validation.ValidationError{Field: "items", Message: "at least one item is required"}
	}

	lines := make([]domain.OrderLine, 0, len(in.Items))
	sum := decimal.Zero
	for i, item := range in.Items {
		field := fmt.Sprintf("items[%d]", i)
		id, err := validation.Count(field+".id", item.ID)
		if err != nil {
			return nil, err
		}
		if err := validation.Required(field+".name", item.Name); err != nil {
			return nil, err
		}
		qty, err := validation.Count(field+".quantity", item.Quantity)
		if err != nil {
			return nil, err
		}
		price, err := validation.Amount(field+".price", item.Price)
		if err != nil {
			return nil, err
		}
		sum = sum.Add(price.Mul(decimal.NewFromInt(int64(qty))))
		lines = append(lines, domain.OrderLine{ID: id, Name: item.Name, Quantity: qty, Price: price})
	}

	if sum.Sub(total).Abs().GreaterThan(totalTolerance) {
		return nil, validation.ValidationError{
			Field:   "totalPrice",
			Message: "does not match the sum of the items (" + sum.StringFixed(2) + ")",
		}
	}

	return &domain.Order{
		CustomerName: in.CustomerName,
		Items:        lines,
		TotalPrice:   total,
	}, nil
}

type OrderService struct {
	orders      OrderRepository
	users       UserRepository
	broadcaster Broadcaster
	dispatcher  *Dispatcher
	stats       StatsCache
	qrEncoder   QRGenerator
	log         *logger.Logger
}

func NewOrderService(orders OrderRepository, users UserRepository, broadcaster Broadcaster, dispatcher *Dispatcher, stats StatsCache, qr QRGenerator, log *logger.Logger) *OrderService {
	return &OrderService{
		orders:      orders,
		users:       users,
		broadcaster: broadcaster,
		dispatcher:  dispatcher,
		stats:       stats,
		qrEncoder:   qr,
		log:         log,
	}
}

func (s *OrderService) Create(ctx context.Context, input OrderInput, session *domain.Session) (*domain.Order, error) {
	order, err := input.toOrder()
	if err != nil {
		return nil, invalid(err)
	}

	if session != nil && session.UserID != "" {
		user := session.AsUser()
		if err := s.users.UpsertUser(ctx, user); err != nil {
			return nil, storeErr("upsert user", err)
		}
		order.UserID = &user.ID
		order.User = &domain.Submitter{Name: user.Name, Image: user.Image}
	}
	order.Status = domain.OrderPending

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, storeErr("create order", err)
	}
	s.log.Info(ctx, "order_created", "order placed",
		slog.Int("order_id", order.ID), slog.String("total", order.TotalPrice.StringFixed(2)))

	s.invalidateStats(ctx)

	if s.broadcaster != nil {
		event := domain.OrderEvent{Type: domain.EventNewOrder, Order: *order, Timestamp: time.Now().UTC()}
		s.dispatcher.Go(ctx, "broadcast_new_order", func(ctx context.Context) error {
			return s.broadcaster.Publish(ctx, event)
		})
	}

	return order, nil
}

// List returns orders newest first. A non-empty userID limits the result to
// that user's orders.
func (s *OrderService) List(ctx context.Context, userID string) ([]domain.Order, error) {
	orders, err := s.orders.ListOrders(ctx, userID)
	if err != nil {
		return nil, storeErr("list orders", err)
	}
	return orders, nil
}

func (s *OrderService) Get(ctx context.Context, id int) (*domain.Order, error) {
	order, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return nil, storeErr("get order", err)
	}
	return order, nil
}

// UpdateStatus writes any status from the order set. Transitions are not
// restricted, so repeating a status is a successful no-op.
func (s *OrderService) UpdateStatus(ctx context.Context, id int, status string) (*domain.Order, error) {
	next, err := validation.OrderStatus(status)
	if err != nil {
		return nil, invalid(err)
	}

	if err := s.orders.UpdateOrderStatus(ctx, id, next); err != nil {
		return nil, storeErr("update order status", err)
	}
	s.log.Info(ctx, "order_status_updated", "order status changed",
		slog.Int("order_id", id), slog.String("status", string(next)))

	s.invalidateStats(ctx)

	return s.Get(ctx, id)
}

func (s *OrderService) QRCode(ctx context.Context, id int) ([]byte, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	qr, err := s.qrEncoder.Generate(id)
	if err != nil {
		return nil, fmt.Errorf("generate qr code: %w", err)
	}
	return qr, nil
}

func (s *OrderService) invalidateStats(ctx context.Context) {
	if s.stats == nil {
		return
	}
	if err := s.stats.InvalidateStats(ctx); err != nil {
		s.log.Warn(ctx, "stats_cache", "failed to invalidate stats cache", slog.String("error", err.Error()))
	}
}
