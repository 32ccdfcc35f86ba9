package repository

import (
	"context"

	"github.com/eventhub/eventhub-api/internal/domain"
	"github.com/eventhub/eventhub-api/internal/repository/dao"
)

var ErrNotificationNotFound = dao.ErrNotificationNotFound

type NotificationDAO interface {
	Create(ctx context.Context, notification dao.Notification) (dao.Notification, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]dao.Notification, int64, error)
	MarkRead(ctx context.Context, userID, notificationID uint) error
}

type NotificationRepository struct {
	dao NotificationDAO
}

func NewNotificationRepository(dao NotificationDAO) *NotificationRepository {
	return &NotificationRepository{
		dao: dao,
	}
}

func (r *NotificationRepository) Create(ctx context.Context, n domain.Notification) (domain.Notification, error) {
	created, err := r.dao.Create(ctx, dao.Notification{
		UserID:  n.UserID,
		EventID: n.EventID,
		Type:    n.Type,
		Message: n.Message,
	})
	if err != nil {
		return domain.Notification{}, err
	}

	return notificationDaoToDomain(created), nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]domain.Notification, int64, error) {
	notifications, total, err := r.dao.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.Notification, len(notifications))
	for i, n := range notifications {
		result[i] = notificationDaoToDomain(n)
	}

	return result, total, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, userID, notificationID uint) error {
	return r.dao.MarkRead(ctx, userID, notificationID)
}

func notificationDaoToDomain(n dao.Notification) domain.Notification {
	return domain.Notification{
		ID:        n.ID,
		UserID:    n.UserID,
		EventID:   n.EventID,
		Type:      n.Type,
		Message:   n.Message,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}
