package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/eventhub/eventhub-api/internal/domain"
	"github.com/eventhub/eventhub-api/internal/repository"
)

var ErrNotificationNotFound = repository.ErrNotificationNotFound

type NotificationRepo interface {
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]domain.Notification, int64, error)
	MarkRead(ctx context.Context, userID, notificationID uint) error
}

// NotificationService serves the in-app notification feed the fan-out writes.
type NotificationService struct {
	repo NotificationRepo
}

func NewNotificationService(repo NotificationRepo) *NotificationService {
	return &NotificationService{
		repo: repo,
	}
}

func (s *NotificationService) List(ctx context.Context, userID uint, limit, offset int) ([]domain.Notification, int64, error) {
	notifications, total, err := s.repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.ListByUser -> %w", err)
	}

	return notifications, total, nil
}

// MarkRead marks one of the caller's notifications as read. Marking someone
// else's notification reports not found rather than forbidden.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uint) error {
	if err := s.repo.MarkRead(ctx, userID, notificationID); err != nil {
		if errors.Is(err, ErrNotificationNotFound) {
			return err
		}

		return fmt.Errorf("s.repo.MarkRead -> %w", err)
	}

	return nil
}
