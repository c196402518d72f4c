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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type reservationDeps struct {
	reservations *mocks.ReservationRepository
	users        *mocks.UserRepository
	notifier     *mocks.Notifier
	dispatcher   *service.Dispatcher
}

func newReservationService(t *testing.T) (*service.ReservationService, reservationDeps) {
	deps := reservationDeps{
		reservations: mocks.NewReservationRepository(t),
		users:        mocks.NewUserRepository(t),
		notifier:     mocks.NewNotifier(t),
		dispatcher:   service.NewDispatcher(time.Second, logger.Discard()),
	}
	svc := service.NewReservationService(deps.reservations, deps.users, deps.notifier, deps.dispatcher, time.UTC, logger.Discard())
	return svc, deps
}

func amaReservation() service.ReservationInput {
	return service.ReservationInput{
		CustomerName:    "Ama",
		Email:           "ama@x.com",
		Phone:           "+233 20 000 0000",
		ReservationDate: "2025-08-01T19:00",
		PartySize:       validation.NumberFrom("4"),
	}
}

func TestReservationService_Create(t *testing.T) {
	svc, deps := newReservationService(t)

	deps.reservations.On("CreateReservation", mock.Anything, mock.AnythingOfType("*domain.Reservation")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Reservation).ID = 11
		}).Return(nil).Once()

	r, err := svc.Create(context.Background(), amaReservation(), nil)

	require.NoError(t, err)
	assert.Equal(t, 11, r.ID)
	assert.Equal(t, domain.ReservationPending, r.Status)
	assert.Equal(t, 4, r.PartySize)
	assert.Equal(t, time.Date(2025, 8, 1, 19, 0, 0, 0, time.UTC), r.ReservationDate)
	assert.Nil(t, r.Notes)
}

func TestReservationService_CreateStoresBareEmail(t *testing.T) {
	svc, deps := newReservationService(t)
	deps.reservations.On("CreateReservation", mock.Anything, mock.MatchedBy(func(r *domain.Reservation) bool {
		return r.Email == "ama@x.com"
	})).Return(nil).Once()

	input := amaReservation()
	input.Email = "Ama Mensah <ama@x.com>"
	r, err := svc.Create(context.Background(), input, nil)

	require.NoError(t, err)
	assert.Equal(t, "ama@x.com", r.Email)
}

func TestReservationService_CreateAcceptsDateTimeAlias(t *testing.T) {
	svc, deps := newReservationService(t)
	input := amaReservation()
	input.ReservationDate = ""
	input.ReservationDateTime = "2025-08-01T19:00:00Z"

	deps.reservations.On("CreateReservation", mock.Anything, mock.Anything).Return(nil).Once()

	r, err := svc.Create(context.Background(), input, nil)

	require.NoError(t, err)
	assert.True(t, r.ReservationDate.Equal(time.Date(2025, 8, 1, 19, 0, 0, 0, time.UTC)))
}

func TestReservationService_CreateValidation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(in *service.ReservationInput)
		wantField string
	}{
		{name: "missing name", mutate: func(in *service.ReservationInput) { in.CustomerName = "" }, wantField: "customerName"},
		{name: "bad email", mutate: func(in *service.ReservationInput) { in.Email = "ama-at-x" }, wantField: "email"},
		{name: "missing phone", mutate: func(in *service.ReservationInput) { in.Phone = "" }, wantField: "phone"},
		{name: "unparseable date", mutate: func(in *service.ReservationInput) { in.ReservationDate = "next friday" }, wantField: "reservationDate"},
		{name: "zero guests", mutate: func(in *service.ReservationInput) { in.PartySize = validation.NumberFrom("0") }, wantField: "partySize"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			svc, deps := newReservationService(t)
			input := amaReservation()
			testCase.mutate(&input)

			_, err := svc.Create(context.Background(), input, nil)

			require.ErrorIs(t, err, service.ErrValidation)
			var vErr validation.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, testCase.wantField, vErr.Field)
			deps.reservations.AssertNotCalled(t, "CreateReservation", mock.Anything, mock.Anything)
		})
	}
}

func TestReservationService_UpdateStatus(t *testing.T) {
	stored := func(status domain.ReservationStatus) *domain.Reservation {
		return &domain.Reservation{
			ID:              2,
			CustomerName:    "Ama",
			Email:           "ama@x.com",
			ReservationDate: time.Date(2025, 8, 1, 19, 0, 0, 0, time.UTC),
			PartySize:       4,
			Status:          status,
		}
	}

	tests := []struct {
		name         string
		status       string
		prepareMocks func(d reservationDeps)
		wantErr      error
	}{
		{
			name:   "confirmed sends mail",
			status: "CONFIRMED",
			prepareMocks: func(d reservationDeps) {
				d.reservations.On("UpdateReservationStatus", mock.Anything, 2, domain.ReservationConfirmed).Return(nil).Once()
				d.reservations.On("GetReservation", mock.Anything, 2).Return(stored(domain.ReservationConfirmed), nil).Once()
				d.notifier.On("Send", mock.Anything, mock.MatchedBy(func(e domain.Email) bool {
					return e.To == "ama@x.com" && e.Subject == "Your Reservation is Confirmed!"
				})).Return(nil).Once()
			},
		},
		{
			name:   "cancelled sends mail",
			status: "CANCELLED",
			prepareMocks: func(d reservationDeps) {
				d.reservations.On("UpdateReservationStatus", mock.Anything, 2, domain.ReservationCancelled).Return(nil).Once()
				d.reservations.On("GetReservation", mock.Anything, 2).Return(stored(domain.ReservationCancelled), nil).Once()
				d.notifier.On("Send", mock.Anything, mock.MatchedBy(func(e domain.Email) bool {
					return e.Subject == "Update on Your Reservation"
				})).Return(nil).Once()
			},
		},
		{
			name:   "completed does not mail",
			status: "COMPLETED",
			prepareMocks: func(d reservationDeps) {
				d.reservations.On("UpdateReservationStatus", mock.Anything, 2, domain.ReservationCompleted).Return(nil).Once()
				d.reservations.On("GetReservation", mock.Anything, 2).Return(stored(domain.ReservationCompleted), nil).Once()
			},
		},
		{
			name:   "mail failure still succeeds",
			status: "CONFIRMED",
			prepareMocks: func(d reservationDeps) {
				d.reservations.On("UpdateReservationStatus", mock.Anything, 2, domain.ReservationConfirmed).Return(nil).Once()
				d.reservations.On("GetReservation", mock.Anything, 2).Return(stored(domain.ReservationConfirmed), nil).Once()
				d.notifier.On("Send", mock.Anything, mock.Anything).Return(errors.New("smtp: 535 auth failed")).Once()
			},
		},
		{
			name:         "invalid status",
			status:       "SEATED",
			prepareMocks: func(d reservationDeps) {},
			wantErr:      service.ErrValidation,
		},
		{
			name:   "missing reservation",
			status: "CONFIRMED",
			prepareMocks: func(d reservationDeps) {
				d.reservations.On("UpdateReservationStatus", mock.Anything, 2, domain.ReservationConfirmed).Return(sql.ErrNoRows).Once()
			},
			wantErr: service.ErrNotFound,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			svc, deps := newReservationService(t)
			testCase.prepareMocks(deps)

			r, err := svc.UpdateStatus(context.Background(), 2, testCase.status)
			deps.dispatcher.Wait()

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				deps.notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.ReservationStatus(testCase.status), r.Status)
		})
	}
}

func TestReservationService_ConfirmationEndToEnd(t *testing.T) {
	svc, deps := newReservationService(t)

	var saved domain.Reservation
	deps.reservations.On("CreateReservation", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			r := args.Get(1).(*domain.Reservation)
			r.ID = 21
			saved = *r
		}).Return(nil).Once()

	created, err := svc.Create(context.Background(), amaReservation(), nil)
	require.NoError(t, err)
	require.Equal(t, domain.ReservationPending, created.Status)

	deps.reservations.On("UpdateReservationStatus", mock.Anything, 21, domain.ReservationConfirmed).
		Run(func(args mock.Arguments) {
			saved.Status = domain.ReservationConfirmed
		}).Return(nil).Once()
	deps.reservations.On("GetReservation", mock.Anything, 21).
		Return(func(context.Context, int) *domain.Reservation {
			r := saved
			return &r
		}, nil).Once()

	var sent domain.Email
	deps.notifier.On("Send", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			sent = args.Get(1).(domain.Email)
		}).Return(nil).Once()

	updated, err := svc.UpdateStatus(context.Background(), 21, "CONFIRMED")
	deps.dispatcher.Wait()

	require.NoError(t, err)
	assert.Equal(t, domain.ReservationConfirmed, updated.Status)
	assert.Equal(t, "ama@x.com", sent.To)
	assert.Contains(t, sent.Subject, "Confirmed")
	assert.Contains(t, sent.Text, "4 guests")
	assert.Contains(t, sent.Text, "Friday, August 1, 2025 at 7:00 PM")
}

func TestReservationService_Lists(t *testing.T) {
	svc, deps := newReservationService(t)
	soonest := []domain.Reservation{{ID: 2}, {ID: 1}}
	mine := []domain.Reservation{{ID: 1}}

	deps.reservations.On("ListReservations", mock.Anything).Return(soonest, nil).Once()
	deps.reservations.On("ListUserReservations", mock.Anything, "u-1").Return(mine, nil).Once()

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, soonest, all)

	own, err := svc.ListForUser(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, mine, own)
}
