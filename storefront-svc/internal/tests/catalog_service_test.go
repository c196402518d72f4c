package tests

import (
	"context"
	"database/sql"
	"errors"
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

func TestMenuService_List(t *testing.T) {
	cached := []domain.MenuItem{{ID: 1, Name: "Jollof Rice"}}
	fresh := []domain.MenuItem{{ID: 1, Name: "Jollof Rice"}, {ID: 2, Name: "Waakye"}}

	tests := []struct {
		name         string
		prepareMocks func(repo *mocks.MenuRepository, cache *mocks.MenuCache)
		want         []domain.MenuItem
		wantErr      error
	}{
		{
			name: "cache hit",
			prepareMocks: func(repo *mocks.MenuRepository, cache *mocks.MenuCache) {
				cache.On("GetMenu", mock.Anything).Return(cached, true, nil).Once()
			},
			want: cached,
		},
		{
			name: "cache miss fills cache",
			prepareMocks: func(repo *mocks.MenuRepository, cache *mocks.MenuCache) {
				cache.On("GetMenu", mock.Anything).Return(nil, false, nil).Once()
				repo.On("ListMenuItems", mock.Anything).Return(fresh, nil).Once()
				cache.On("SetMenu", mock.Anything, fresh).Return(nil).Once()
			},
			want: fresh,
		},
		{
			name: "cache error falls back to database",
			prepareMocks: func(repo *mocks.MenuRepository, cache *mocks.MenuCache) {
				cache.On("GetMenu", mock.Anything).Return(nil, false, errors.New("redis down")).Once()
				repo.On("ListMenuItems", mock.Anything).Return(fresh, nil).Once()
				cache.On("SetMenu", mock.Anything, fresh).Return(errors.New("redis down")).Once()
			},
			want: fresh,
		},
		{
			name: "database error",
			prepareMocks: func(repo *mocks.MenuRepository, cache *mocks.MenuCache) {
				cache.On("GetMenu", mock.Anything).Return(nil, false, nil).Once()
				repo.On("ListMenuItems", mock.Anything).Return(nil, errors.New("timeout")).Once()
			},
			wantErr: service.ErrStore,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo := mocks.NewMenuRepository(t)
			cache := mocks.NewMenuCache(t)
			svc := service.NewMenuService(repo, cache, logger.Discard())
			testCase.prepareMocks(repo, cache)

			items, err := svc.List(context.Background())

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.want, items)
		})
	}
}

func TestMenuService_Writes(t *testing.T) {
	input := service.MenuItemInput{
		Name:        "Red Red",
		Description: "Black-eyed peas with fried plantain",
		Price:       validation.NumberFrom("45"),
		Category:    "Mains",
	}

	t.Run("create invalidates cache", func(t *testing.T) {
		repo := mocks.NewMenuRepository(t)
		cache := mocks.NewMenuCache(t)
		svc := service.NewMenuService(repo, cache, logger.Discard())

		repo.On("CreateMenuItem", mock.Anything, mock.AnythingOfType("*domain.MenuItem")).Return(nil).Once()
		cache.On("InvalidateMenu", mock.Anything).Return(nil).Once()

		item, err := svc.Create(context.Background(), input)
		require.NoError(t, err)
		assert.True(t, item.Price.Equal(decimal.NewFromInt(45)))
		assert.Nil(t, item.ImageURL)
	})

	t.Run("create rejects missing category", func(t *testing.T) {
		svc := service.NewMenuService(mocks.NewMenuRepository(t), mocks.NewMenuCache(t), logger.Discard())
		bad := input
		bad.Category = ""

		_, err := svc.Create(context.Background(), bad)
		assert.ErrorIs(t, err, service.ErrValidation)
	})

	t.Run("create rejects unstorable price", func(t *testing.T) {
		for _, price := range []string{"45.999", "100000000"} {
			svc := service.NewMenuService(mocks.NewMenuRepository(t), mocks.NewMenuCache(t), logger.Discard())
			bad := input
			bad.Price = validation.NumberFrom(price)

			_, err := svc.Create(context.Background(), bad)
			require.ErrorIs(t, err, service.ErrValidation, price)
			var vErr validation.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, "price", vErr.Field)
		}
	})

	t.Run("update missing item", func(t *testing.T) {
		repo := mocks.NewMenuRepository(t)
		svc := service.NewMenuService(repo, mocks.NewMenuCache(t), logger.Discard())

		repo.On("UpdateMenuItem", mock.Anything, mock.MatchedBy(func(m *domain.MenuItem) bool { return m.ID == 8 })).
			Return(sql.ErrNoRows).Once()

		_, err := svc.Update(context.Background(), 8, input)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		repo := mocks.NewMenuRepository(t)
		cache := mocks.NewMenuCache(t)
		svc := service.NewMenuService(repo, cache, logger.Discard())

		repo.On("DeleteMenuItem", mock.Anything, 3).Return(int64(1), nil).Once()
		repo.On("DeleteMenuItem", mock.Anything, 4).Return(int64(0), nil).Once()
		cache.On("InvalidateMenu", mock.Anything).Return(nil).Once()

		assert.NoError(t, svc.Delete(context.Background(), 3))
		assert.ErrorIs(t, svc.Delete(context.Background(), 4), service.ErrNotFound)
	})
}

func TestUserService_Get(t *testing.T) {
	name := "Kofi"
	users := mocks.NewUserRepository(t)
	orders := mocks.NewOrderRepository(t)
	svc := service.NewUserService(users, orders)

	users.On("GetUser", mock.Anything, "u-1").Return(&domain.User{ID: "u-1", Name: &name}, nil).Once()
	orders.On("ListOrders", mock.Anything, "u-1").Return([]domain.Order{{ID: 2}, {ID: 1}}, nil).Once()
	users.On("GetUser", mock.Anything, "ghost").Return(nil, sql.ErrNoRows).Once()

	detail, err := svc.Get(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "u-1", detail.ID)
	assert.Len(t, detail.Orders, 2)

	_, err = svc.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestAnalyticsService_WeeklyRevenue(t *testing.T) {
	repo := mocks.NewStatsRepository(t)
	now := time.Date(2025, 8, 6, 15, 30, 0, 0, time.UTC) // Wednesday
	svc := service.NewAnalyticsService(repo, nil, time.UTC, logger.Discard()).
		WithClock(func() time.Time { return now })

	since := time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC)
	repo.On("CompletedRevenueByDay", mock.Anything, since).Return(map[string]decimal.Decimal{
		"2025-07-31": decimal.RequireFromString("120.50"),
		"2025-08-04": decimal.RequireFromString("80"),
		"2025-08-06": decimal.RequireFromString("15.25"),
	}, nil).Once()

	points, err := svc.WeeklyRevenue(context.Background())
	require.NoError(t, err)
	require.Len(t, points, 7)

	names := make([]string, 0, len(points))
	for _, p := range points {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Thu", "Fri", "Sat", "Sun", "Mon", "Tue", "Wed"}, names)
	assert.Equal(t, "120.5", points[0].Revenue.String())
	assert.True(t, points[1].Revenue.IsZero())
	assert.Equal(t, "80", points[4].Revenue.String())
	assert.Equal(t, "15.25", points[6].Revenue.String())
}

func TestAnalyticsService_Stats(t *testing.T) {
	loc := time.FixedZone("GMT", 0)
	now := time.Date(2025, 8, 6, 9, 0, 0, 0, loc)
	want := &domain.Stats{TotalRevenue: decimal.NewFromInt(500), TotalOrders: 12, TotalCustomers: 5, TodaysOrders: 2}

	t.Run("miss loads from database", func(t *testing.T) {
		repo := mocks.NewStatsRepository(t)
		cache := mocks.NewStatsCache(t)
		svc := service.NewAnalyticsService(repo, cache, loc, logger.Discard()).WithClock(func() time.Time { return now })

		cache.On("GetStats", mock.Anything).Return(nil, false, nil).Once()
		repo.On("Stats", mock.Anything, time.Date(2025, 8, 6, 0, 0, 0, 0, loc)).Return(want, nil).Once()
		cache.On("SetStats", mock.Anything, want).Return(nil).Once()

		got, err := svc.Stats(context.Background())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("hit skips database", func(t *testing.T) {
		repo := mocks.NewStatsRepository(t)
		cache := mocks.NewStatsCache(t)
		svc := service.NewAnalyticsService(repo, cache, loc, logger.Discard())

		cache.On("GetStats", mock.Anything).Return(want, true, nil).Once()

		got, err := svc.Stats(context.Background())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestContactService_Submit(t *testing.T) {
	tests := []struct {
		name         string
		inbox        string
		msg          domain.ContactMessage
		prepareMocks func(n *mocks.Notifier)
		wantErr      bool
	}{
		{
			name:  "forwarded to inbox",
			inbox: "hello@jollofhub.example",
			msg:   domain.ContactMessage{Name: "Yaw", Email: "yaw@x.com", Message: "Do you cater?"},
			prepareMocks: func(n *mocks.Notifier) {
				n.On("Send", mock.Anything, mock.MatchedBy(func(e domain.Email) bool {
					return e.To == "hello@jollofhub.example" && e.Subject == "New contact message from Yaw"
				})).Return(nil).Once()
			},
		},
		{
			name:         "no inbox only logs",
			msg:          domain.ContactMessage{Name: "Yaw", Email: "yaw@x.com", Message: "Hi"},
			prepareMocks: func(n *mocks.Notifier) {},
		},
		{
			name:         "missing message",
			inbox:        "hello@jollofhub.example",
			msg:          domain.ContactMessage{Name: "Yaw", Email: "yaw@x.com"},
			prepareMocks: func(n *mocks.Notifier) {},
			wantErr:      true,
		},
		{
			name:         "invalid email",
			inbox:        "hello@jollofhub.example",
			msg:          domain.ContactMessage{Name: "Yaw", Email: "yaw", Message: "Hi"},
			prepareMocks: func(n *mocks.Notifier) {},
			wantErr:      true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			notifier := mocks.NewNotifier(t)
			dispatcher := service.NewDispatcher(time.Second, logger.Discard())
			svc := service.NewContactService(notifier, dispatcher, testCase.inbox, logger.Discard())
			testCase.prepareMocks(notifier)

			err := svc.Submit(context.Background(), testCase.msg)
			dispatcher.Wait()

			if testCase.wantErr {
				assert.ErrorIs(t, err, service.ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDispatcher_RecoversPanics(t *testing.T) {
	dispatcher := service.NewDispatcher(50*time.Millisecond, logger.Discard())

	dispatcher.Go(context.Background(), "boom", func(context.Context) error {
		panic("template exploded")
	})
	var deadline bool
	dispatcher.Go(context.Background(), "slow", func(ctx context.Context) error {
		<-ctx.Done()
		deadline = errors.Is(ctx.Err(), context.DeadlineExceeded)
		return ctx.Err()
	})
	dispatcher.Wait()

	assert.True(t, deadline)
}
