package service

import (
	"fmt"
	"time"

	"jollof-hub/storefront-svc/internal/domain"
)

const (
	restaurantName         = "Ghana Jollof Hub"
	reservationTimeLayout  = "Monday, January 2, 2006 at 3:04 PM"
	confirmedSubject       = "Your Reservation is Confirmed!"
	cancelledSubject       = "Update on Your Reservation"
	contactSubjectTemplate = "New contact message from %s"
)

// reservationEmail builds the customer mail for a status change. Only
// confirmations and cancellations are mailed.
func reservationEmail(r *domain.Reservation, loc *time.Location) (domain.Email, bool) {
	if loc == nil {
		loc = time.UTC
	}
	when := r.ReservationDate.In(loc).Format(reservationTimeLayout)

	switch r.Status {
	case domain.ReservationConfirmed:
		return domain.Email{
			To:      r.Email,
			Subject: confirmedSubject,
			Text: fmt.Sprintf("Hello %s,\n\nYour reservation for %d guests on %s has been confirmed. We look forward to seeing you!\n\nBest,\n%s",
				r.CustomerName, r.PartySize, when, restaurantName),
		}, true
	case domain.ReservationCancelled:
		return domain.Email{
			To:      r.Email,
			Subject: cancelledSubject,
			Text: fmt.Sprintf("Hello %s,\n\nUnfortunately, your reservation request for %s has been cancelled. Please contact us if you have any questions.\n\nBest,\n%s",
				r.CustomerName, when, restaurantName),
		}, true
	}
	return domain.Email{}, false
}

func contactEmail(inbox string, msg domain.ContactMessage) domain.Email {
	return domain.Email{
		To:      inbox,
		Subject: fmt.Sprintf(contactSubjectTemplate, msg.Name),
		Text:    fmt.Sprintf("From: %s <%s>\n\n%s", msg.Name, msg.Email, msg.Message),
	}
}
