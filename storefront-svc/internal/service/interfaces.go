package service

import (
	"context"
	"time"

	"jollof-hub/storefront-svc/internal/domain"

	"github.com/shopspring/decimal"
)

type OrderServiceInterface interface {
	Create(ctx context.Context, input OrderInput, session *domain.Session) (*domain.Order, error)
	List(ctx context.Context, userID string) ([]domain.Order, error)
	Get(ctx context.Context, id int) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id int, status string) (*domain.Order, error)
	QRCode(ctx context.Context, id int) ([]byte, error)
}

type ReservationServiceInterface interface {
	Create(ctx context.Context, input ReservationInput, session *domain.Session) (*domain.Reservation, error)
	List(ctx context.Context) ([]domain.Reservation, error)
	ListForUser(ctx context.Context, userID string) ([]domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int, status string) (*domain.Reservation, error)
}

type MenuServiceInterface interface {
	Create(ctx context.Context, input MenuItemInput) (*domain.MenuItem, error)
	List(ctx context.Context) ([]domain.MenuItem, error)
	Get(ctx context.Context, id int) (*domain.MenuItem, error)
	Update(ctx context.Context, id int, input MenuItemInput) (*domain.MenuItem, error)
	Delete(ctx context.Context, id int) error
}

type UserServiceInterface interface {
	List(ctx context.Context) ([]domain.UserSummary, error)
	Get(ctx context.Context, id string) (*domain.UserDetail, error)
}

type AnalyticsServiceInterface interface {
	Stats(ctx context.Context) (*domain.Stats, error)
	WeeklyRevenue(ctx context.Context) ([]domain.RevenuePoint, error)
}

type ContactServiceInterface interface {
	Submit(ctx context.Context, msg domain.ContactMessage) error
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, id int) (*domain.Order, error)
	ListOrders(ctx context.Context, userID string) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id int, status domain.OrderStatus) error
}

type ReservationRepository interface {
	CreateReservation(ctx context.Context, r *domain.Reservation) error
	GetReservation(ctx context.Context, id int) (*domain.Reservation, error)
	// ListReservations orders by reservation date, soonest first.
	ListReservations(ctx context.Context) ([]domain.Reservation, error)
	// ListUserReservations orders by submission time, newest first.
	ListUserReservations(ctx context.Context, userID string) ([]domain.Reservation, error)
	UpdateReservationStatus(ctx context.Context, id int, status domain.ReservationStatus) error
}

type MenuRepository interface {
	CreateMenuItem(ctx context.Context, item *domain.MenuItem) error
	ListMenuItems(ctx context.Context) ([]domain.MenuItem, error)
	GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error)
	UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error
	DeleteMenuItem(ctx context.Context, id int) (int64, error)
}

type UserRepository interface {
	UpsertUser(ctx context.Context, user domain.User) error
	ListUsers(ctx context.Context) ([]domain.UserSummary, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
}

type StatsRepository interface {
	Stats(ctx context.Context, dayStart time.Time) (*domain.Stats, error)
	// CompletedRevenueByDay keys revenue by calendar day (2006-01-02) in the
	// location of since.
	CompletedRevenueByDay(ctx context.Context, since time.Time) (map[string]decimal.Decimal, error)
}

type MenuCache interface {
	GetMenu(ctx context.Context) ([]domain.MenuItem, bool, error)
	SetMenu(ctx context.Context, items []domain.MenuItem) error
	InvalidateMenu(ctx context.Context) error
}

type StatsCache interface {
	GetStats(ctx context.Context) (*domain.Stats, bool, error)
	SetStats(ctx context.Context, stats *domain.Stats) error
	InvalidateStats(ctx context.Context) error
}

// Broadcaster pushes order events to dashboard subscribers.
type Broadcaster interface {
	Publish(ctx context.Context, event domain.OrderEvent) error
}

// Notifier sends outbound email.
type Notifier interface {
	Send(ctx context.Context, email domain.Email) error
}

var (
	_ OrderServiceInterface       = (*OrderService)(nil)
	_ ReservationServiceInterface = (*ReservationService)(nil)
	_ MenuServiceInterface        = (*MenuService)(nil)
	_ UserServiceInterface        = (*UserService)(nil)
	_ AnalyticsServiceInterface   = (*AnalyticsService)(nil)
	_ ContactServiceInterface     = (*ContactService)(nil)
)
