package tests

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"jollof-hub/logger"
	"jollof-hub/storefront-svc/internal/domain"
	"jollof-hub/storefront-svc/internal/mocks"
	"jollof-hub/storefront-svc/internal/service"
	"jollof-hub/storefront-svc/internal/validation"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderDeps struct {
	orders      *mocks.OrderRepository
	users       *mocks.UserRepository
	broadcaster *mocks.Broadcaster
	stats       *mocks.StatsCache
	dispatcher  *service.Dispatcher
}

func newOrderService(t *testing.T) (*service.OrderService, orderDeps) {
	deps := orderDeps{
		orders:      mocks.NewOrderRepository(t),
		users:       mocks.NewUserRepository(t),
		broadcaster: mocks.NewBroadcaster(t),
		stats:       mocks.NewStatsCache(t),
		dispatcher:  service.NewDispatcher(time.Second, logger.Discard()),
	}
	svc := service.NewOrderService(deps.orders, deps.users, deps.broadcaster, deps.dispatcher, deps.stats,
		service.DefaultQRGenerator{BaseURL: "http://localhost:3000", Size: 128}, logger.Discard())
	return svc, deps
}

func jollofOrder() service.OrderInput {
	return service.OrderInput{
		CustomerName: "Kofi",
		TotalPrice:   validation.NumberFrom("37.50"),
		Items: []service.OrderLineInput{
			{ID: validation.NumberFrom("1"), Name: "Jollof Rice", Quantity: validation.NumberFrom("2"), Price: validation.NumberFrom("12.50")},
			{ID: validation.NumberFrom("4"), Name: "Kelewele", Quantity: validation.NumberFrom("1"), Price: validation.NumberFrom("12.50")},
		},
	}
}

func TestOrderService_Create(t *testing.T) {
	svc, deps := newOrderService(t)

	deps.orders.On("CreateOrder", mock.Anything, mock.AnythingOfType("*domain.Order")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Order).ID = 7
		}).Return(nil).Once()
	deps.stats.On("InvalidateStats", mock.Anything).Return(nil).Once()
	deps.broadcaster.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.OrderEvent) bool {
		return e.Type == domain.EventNewOrder && e.Order.ID == 7 && e.Order.Status == domain.OrderPending
	})).Return(nil).Once()

	order, err := svc.Create(context.Background(), jollofOrder(), nil)
	deps.dispatcher.Wait()

	require.NoError(t, err)
	assert.Equal(t, 7, order.ID)
	assert.Equal(t, domain.OrderPending, order.Status)
	assert.Nil(t, order.UserID)
	require.Len(t, order.Items, 2)
	assert.Equal(t, domain.OrderLine{ID: 1, Name: "Jollof Rice", Quantity: 2, Price: decimal.RequireFromString("12.50")}, order.Items[0])
	assert.True(t, order.TotalPrice.Equal(decimal.RequireFromString("37.5")))
}

func TestOrderService_CreateWithSession(t *testing.T) {
	svc, deps := newOrderService(t)
	session := &domain.Session{UserID: "u-1", Name: "Ama", Email: "ama@x.com"}

	deps.users.On("UpsertUser", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
		return u.ID == "u-1" && u.Email != nil && *u.Email == "ama@x.com"
	})).Return(nil).Once()
	deps.orders.On("CreateOrder", mock.Anything, mock.MatchedBy(func(o *domain.Order) bool {
		return o.UserID != nil && *o.UserID == "u-1"
	})).Return(nil).Once()
	deps.stats.On("InvalidateStats", mock.Anything).Return(nil).Once()
	deps.broadcaster.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()

	order, err := svc.Create(context.Background(), jollofOrder(), session)
	deps.dispatcher.Wait()

	require.NoError(t, err)
	require.NotNil(t, order.User)
	assert.Equal(t, "Ama", *order.User.Name)
}

func TestOrderService_CreateValidation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(in *service.OrderInput)
		wantField string
	}{
		{
			name:      "missing customer name",
			mutate:    func(in *service.OrderInput) { in.CustomerName = "  " },
			wantField: "customerName",
		},
		{
			name:      "empty items",
			mutate:    func(in *service.OrderInput) { in.Items = nil },
			wantField: "items",
		},
		{
			name:      "non numeric total",
			mutate:    func(in *service.OrderInput) { in.TotalPrice = validation.NumberFrom("abc") },
			wantField: "totalPrice",
		},
		{
			name:      "zero quantity",
			mutate:    func(in *service.OrderInput) { in.Items[0].Quantity = validation.NumberFrom("0") },
			wantField: "items[0].quantity",
		},
		{
			name:      "fractional quantity",
			mutate:    func(in *service.OrderInput) { in.Items[1].Quantity = validation.NumberFrom("1.5") },
			wantField: "items[1].quantity",
		},
		{
			name:      "negative price",
			mutate:    func(in *service.OrderInput) { in.Items[0].Price = validation.NumberFrom("-1") },
			wantField: "items[0].price",
		},
		{
			name:      "total does not match items",
			mutate:    func(in *service.OrderInput) { in.TotalPrice = validation.NumberFrom("30") },
			wantField: "totalPrice",
		},
		{
			name:      "total below one cent",
			mutate:    func(in *service.OrderInput) { in.TotalPrice = validation.NumberFrom("37.504") },
			wantField: "totalPrice",
		},
		{
			name:      "price too large to store",
			mutate:    func(in *service.OrderInput) { in.Items[0].Price = validation.NumberFrom("1e12") },
			wantField: "items[0].price",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			svc, deps := newOrderService(t)
			input := jollofOrder()
			testCase.mutate(&input)

			order, err := svc.Create(context.Background(), input, nil)
			deps.dispatcher.Wait()

			assert.Nil(t, order)
			require.ErrorIs(t, err, service.ErrValidation)
			var vErr validation.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, testCase.wantField, vErr.Field)
			deps.orders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
			deps.broadcaster.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
		})
	}
}

func TestOrderService_CreateToleratesRounding(t *testing.T) {
	svc, deps := newOrderService(t)
	input := jollofOrder()
	input.TotalPrice = validation.NumberFrom("37.51")

	deps.orders.On("CreateOrder", mock.Anything, mock.Anything).Return(nil).Once()
	deps.stats.On("InvalidateStats", mock.Anything).Return(nil).Once()
	deps.broadcaster.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()

	order, err := svc.Create(context.Background(), input, nil)
	deps.dispatcher.Wait()

	require.NoError(t, err)
	assert.Equal(t, "37.51", order.TotalPrice.StringFixed(2))
}

func TestOrderService_BroadcastFailureIsIsolated(t *testing.T) {
	svc, deps := newOrderService(t)

	deps.orders.On("CreateOrder", mock.Anything, mock.Anything).Return(nil).Once()
	deps.stats.On("InvalidateStats", mock.Anything).Return(errors.New("redis down")).Once()
	deps.broadcaster.On("Publish", mock.Anything, mock.Anything).Return(errors.New("kafka down")).Once()

	order, err := svc.Create(context.Background(), jollofOrder(), nil)
	deps.dispatcher.Wait()

	require.NoError(t, err)
	assert.Equal(t, domain.OrderPending, order.Status)
}

func TestOrderService_CreateStoreFailure(t *testing.T) {
	svc, deps := newOrderService(t)

	deps.orders.On("CreateOrder", mock.Anything, mock.Anything).Return(errors.New("connection refused")).Once()

	_, err := svc.Create(context.Background(), jollofOrder(), nil)
	deps.dispatcher.Wait()

	assert.ErrorIs(t, err, service.ErrStore)
	deps.broadcaster.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name         string
		status       string
		prepareMocks func(d orderDeps)
		wantErr      error
	}{
		{
			name:   "accepted",
			status: "ACCEPTED",
			prepareMocks: func(d orderDeps) {
				d.orders.On("UpdateOrderStatus", mock.Anything, 3, domain.OrderAccepted).Return(nil).Once()
				d.stats.On("InvalidateStats", mock.Anything).Return(nil).Once()
				d.orders.On("GetOrder", mock.Anything, 3).Return(&domain.Order{ID: 3, Status: domain.OrderAccepted}, nil).Once()
			},
		},
		{
			name:         "unknown status",
			status:       "DELIVERED",
			prepareMocks: func(d orderDeps) {},
			wantErr:      service.ErrValidation,
		},
		{
			name:         "lowercase status",
			status:       "accepted",
			prepareMocks: func(d orderDeps) {},
			wantErr:      service.ErrValidation,
		},
		{
			name:   "missing order",
			status: "COMPLETED",
			prepareMocks: func(d orderDeps) {
				d.orders.On("UpdateOrderStatus", mock.Anything, 3, domain.OrderCompleted).Return(sql.ErrNoRows).Once()
			},
			wantErr: service.ErrNotFound,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			svc, deps := newOrderService(t)
			testCase.prepareMocks(deps)

			order, err := svc.UpdateStatus(context.Background(), 3, testCase.status)

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				assert.Nil(t, order)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.OrderStatus(testCase.status), order.Status)
		})
	}
}

func TestOrderService_UpdateStatusIsIdempotent(t *testing.T) {
	svc, deps := newOrderService(t)

	deps.orders.On("UpdateOrderStatus", mock.Anything, 5, domain.OrderAccepted).Return(nil).Twice()
	deps.stats.On("InvalidateStats", mock.Anything).Return(nil).Twice()
	deps.orders.On("GetOrder", mock.Anything, 5).Return(&domain.Order{ID: 5, Status: domain.OrderAccepted}, nil).Twice()

	first, err := svc.UpdateStatus(context.Background(), 5, "ACCEPTED")
	require.NoError(t, err)
	second, err := svc.UpdateStatus(context.Background(), 5, "ACCEPTED")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestOrderService_QRCode(t *testing.T) {
	svc, deps := newOrderService(t)

	deps.orders.On("GetOrder", mock.Anything, 9).Return(&domain.Order{ID: 9}, nil).Once()
	deps.orders.On("GetOrder", mock.Anything, 10).Return(nil, sql.ErrNoRows).Once()

	png, err := svc.QRCode(context.Background(), 9)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(png), "\x89PNG"))

	_, err = svc.QRCode(context.Background(), 10)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestQRGenerator_Link(t *testing.T) {
	g := service.DefaultQRGenerator{BaseURL: "https://jollofhub.example/"}
	assert.Equal(t, "https://jollofhub.example/order-success?orderId=42", g.Link(42))
}
