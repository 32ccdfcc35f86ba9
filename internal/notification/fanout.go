// Package notification fans participation domain events out to their side
// effects: email, persisted in-app notifications, and the live update channel.
// Every leg is best-effort; failures are logged and never surfaced to the
// operation that produced the event.
package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/eventhub/eventhub-api/internal/domain"
)

type UserFinder interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

type NotificationStore interface {
	Create(ctx context.Context, n domain.Notification) (domain.Notification, error)
}

type Broadcaster interface {
	Broadcast(eventID uint, message []byte)
}

type Fanout struct {
	mailer Mailer
	store  NotificationStore
	users  UserFinder
	hub    Broadcaster
	logger *zap.Logger
}

func NewFanout(mailer Mailer, store NotificationStore, users UserFinder, hub Broadcaster, logger *zap.Logger) *Fanout {
	return &Fanout{
		mailer: mailer,
		store:  store,
		users:  users,
		hub:    hub,
		logger: logger,
	}
}

// DispatchParticipation delivers a committed participation transition to the
// participant (always) and the organizer (registration and cancellation), and
// mirrors it onto the event's live channel.
func (f *Fanout) DispatchParticipation(ctx context.Context, e domain.ParticipationEvent) {
	switch e.Type {
	case domain.ParticipantRegistered:
		f.notify(ctx, e.UserID, e,
			fmt.Sprintf("Registration Confirmation - %s", e.EventTitle),
			fmt.Sprintf("You have registered for %s.", e.EventTitle))
		f.notify(ctx, e.OrganizerID, e,
			fmt.Sprintf("New Registration - %s", e.EventTitle),
			fmt.Sprintf("A new participant registered for %s.", e.EventTitle))
	case domain.ParticipantUnregistered:
		f.notify(ctx, e.UserID, e,
			fmt.Sprintf("Registration Cancelled - %s", e.EventTitle),
			fmt.Sprintf("Your registration for %s has been cancelled.", e.EventTitle))
		f.notify(ctx, e.OrganizerID, e,
			fmt.Sprintf("Registration Cancelled - %s", e.EventTitle),
			fmt.Sprintf("A participant cancelled their registration for %s.", e.EventTitle))
	case domain.ParticipantStatusChanged:
		f.notify(ctx, e.UserID, e,
			fmt.Sprintf("Registration Status Update - %s", e.EventTitle),
			fmt.Sprintf("Your registration status for %s has been updated to %s.", e.EventTitle, e.NewStatus))
	default:
		f.logger.Warn("unknown participation event type", zap.String("type", string(e.Type)))
		return
	}

	f.BroadcastEventUpdate(ctx, domain.EventUpdate{
		EventID:   e.EventID,
		Type:      string(e.Type),
		Payload:   e,
		Timestamp: e.OccurredAt,
	})
}

// BroadcastEventUpdate pushes a generic update to the event's live channel.
func (f *Fanout) BroadcastEventUpdate(_ context.Context, update domain.EventUpdate) {
	message, err := json.Marshal(update)
	if err != nil {
		f.logger.Error("failed to encode event update",
			zap.Uint("eventID", update.EventID),
			zap.Error(err))
		return
	}

	f.hub.Broadcast(update.EventID, message)
}

func (f *Fanout) notify(ctx context.Context, recipientID uint, e domain.ParticipationEvent, subject, message string) {
	if recipientID == 0 {
		return
	}

	if _, err := f.store.Create(ctx, domain.Notification{
		UserID:  recipientID,
		EventID: e.EventID,
		Type:    string(e.Type),
		Message: message,
	}); err != nil {
		f.logger.Warn("failed to persist in-app notification",
			zap.Uint("eventID", e.EventID),
			zap.Uint("recipientID", recipientID),
			zap.Error(err))
	}

	recipient, err := f.users.FindByID(ctx, recipientID)
	if err != nil {
		f.logger.Warn("failed to resolve notification recipient",
			zap.Uint("eventID", e.EventID),
			zap.Uint("recipientID", recipientID),
			zap.Error(err))
		return
	}

	if err = f.mailer.Send(recipient.Email, subject, message); err != nil {
		f.logger.Warn("failed to send notification email",
			zap.Uint("eventID", e.EventID),
			zap.Uint("recipientID", recipientID),
			zap.Error(err))
	}
}
