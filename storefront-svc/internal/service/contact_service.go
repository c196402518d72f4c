package service

import (
	"context"
	"log/slog"

	"jollof-hub/logger"
	"jollof-hub/storefront-svc/internal/domain"
	"jollof-hub/storefront-svc/internal/validation"
)

type ContactService struct {
	notifier   Notifier
	dispatcher *Dispatcher
	inbox      string
	log        *logger.Logger
}

// NewContactService forwards submissions to inbox when both inbox and notifier
// are set. Otherwise submissions are only logged.
func NewContactService(notifier Notifier, dispatcher *Dispatcher, inbox string, log *logger.Logger) *ContactService {
	return &ContactService{notifier: notifier, dispatcher: dispatcher, inbox: inbox, log: log}
}

func (s *ContactService) Submit(ctx context.Context, msg domain.ContactMessage) error {
	if err := validation.Required("name", msg.Name); err != nil {
		return invalid(err)
	}
	email, err := validation.Email("email", msg.Email)
	if err != nil {
		return invalid(err)
	}
	msg.Email = email
	if err := validation.Required("message", msg.Message); err != nil {
		return invalid(err)
	}

	s.log.Info(ctx, "contact_submitted", "contact form received",
		slog.String("name", msg.Name), slog.String("email", msg.Email), slog.Int("length", len(msg.Message)))

	if s.inbox != "" && s.notifier != nil {
		notice := contactEmail(s.inbox, msg)
		s.dispatcher.Go(ctx, "contact_email", func(ctx context.Context) error {
			return s.notifier.Send(ctx, notice)
		})
	}
	return nil
}
