package service

import (
	"context"
	"log/slog"
	"time"

	"jollof-hub/logger"
	"jollof-hub/storefront-svc/internal/domain"
	"jollof-hub/storefront-svc/internal/validation"
)

// ReservationInput is the customer submission. reservationDateTime is
// accepted as an alias of reservationDate.
type ReservationInput struct {
	CustomerName        string            `json:"customerName"`
	Email               string            `json:"email"`
	Phone               string            `json:"phone"`
	ReservationDate     string            `json:"reservationDate"`
	ReservationDateTime string            `json:"reservationDateTime"`
	PartySize           validation.Number `json:"partySize"`
	Notes               *string           `json:"notes"`
}

func (in ReservationInput) toReservation(loc *time.Location) (*domain.Reservation, error) {
	if err := validation.Required("customerName", in.CustomerName); err != nil {
		return nil, err
	}
	email, err := validation.Email("email", in.Email)
	if err != nil {
		return nil, err
	}
	if err := validation.Required("phone", in.Phone); err != nil {
		return nil, err
	}
	raw := in.ReservationDate
	if raw == "" {
		raw = in.ReservationDateTime
	}
	when, err := validation.DateTime("reservationDate", raw, loc)
	if err != nil {
		return nil, err
	}
	partySize, err := validation.Count("partySize", in.PartySize)
	if err != nil {
		return nil, err
	}

	var notes *string
	if in.Notes != nil && *in.Notes != "" {
		n := *in.Notes
		notes = &n
	}

	return &domain.Reservation{
		CustomerName:    in.CustomerName,
		Email:           email,
		Phone:           in.Phone,
		ReservationDate: when,
		PartySize:       partySize,
		Notes:           notes,
	}, nil
}

type ReservationService struct {
	reservations ReservationRepository
	users        UserRepository
	notifier     Notifier
	dispatcher   *Dispatcher
	loc          *time.Location
	log          *logger.Logger
}

func NewReservationService(reservations ReservationRepository, users UserRepository, notifier Notifier, dispatcher *Dispatcher, loc *time.Location, log *logger.Logger) *ReservationService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReservationService{
		reservations: reservations,
		users:        users,
		notifier:     notifier,
		dispatcher:   dispatcher,
		loc:          loc,
		log:          log,
	}
}

// Create records the request as PENDING. Opening hours and capacity are not
// checked.
func (s *ReservationService) Create(ctx context.Context, input ReservationInput, session *domain.Session) (*domain.Reservation, error) {
	reservation, err := input.toReservation(s.loc)
	if err != nil {
		return nil, invalid(err)
	}

	if session != nil && session.UserID != "" {
		user := session.AsUser()
		if err := s.users.UpsertUser(ctx, user); err != nil {
			return nil, storeErr("upsert user", err)
		}
		reservation.UserID = &user.ID
		reservation.User = &domain.Submitter{Name: user.Name, Image: user.Image}
	}
	reservation.Status = domain.ReservationPending

	if err := s.reservations.CreateReservation(ctx, reservation); err != nil {
		return nil, storeErr("create reservation", err)
	}
	s.log.Info(ctx, "reservation_created", "reservation requested",
		slog.Int("reservation_id", reservation.ID), slog.Int("party_size", reservation.PartySize))

	return reservation, nil
}

func (s *ReservationService) List(ctx context.Context) ([]domain.Reservation, error) {
	reservations, err := s.reservations.ListReservations(ctx)
	if err != nil {
		return nil, storeErr("list reservations", err)
	}
	return reservations, nil
}

func (s *ReservationService) ListForUser(ctx context.Context, userID string) ([]domain.Reservation, error) {
	reservations, err := s.reservations.ListUserReservations(ctx, userID)
	if err != nil {
		return nil, storeErr("list user reservations", err)
	}
	return reservations, nil
}

// UpdateStatus persists the status and, for confirmations and cancellations,
// mails the customer in the background. Mail failures never reach the caller.
func (s *ReservationService) UpdateStatus(ctx context.Context, id int, status string) (*domain.Reservation, error) {
	next, err := validation.ReservationStatus(status)
	if err != nil {
		return nil, invalid(err)
	}

	if err := s.reservations.UpdateReservationStatus(ctx, id, next); err != nil {
		return nil, storeErr("update reservation status", err)
	}
	s.log.Info(ctx, "reservation_status_updated", "reservation status changed",
		slog.Int("reservation_id", id), slog.String("status", string(next)))

	reservation, err := s.reservations.GetReservation(ctx, id)
	if err != nil {
		return nil, storeErr("get reservation", err)
	}

	if email, ok := reservationEmail(reservation, s.loc); ok && s.notifier != nil {
		s.dispatcher.Go(ctx, "reservation_email", func(ctx context.Context) error {
			return s.notifier.Send(ctx, email)
		})
	}

	return reservation, nil
}
