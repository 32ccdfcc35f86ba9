package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type NotificationDAO struct {
	db *gorm.DB
}

func NewNotificationDAO(db *gorm.DB) *NotificationDAO {
	return &NotificationDAO{
		db: db,
	}
}

func (d *NotificationDAO) Create(ctx context.Context, notification Notification) (Notification, error) {
	if err := d.db.WithContext(ctx).Create(&notification).Error; err != nil {
		return Notification{}, err
	}

	return notification, nil
}

func (d *NotificationDAO) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]Notification, int64, error) {
	query := d.db.WithContext(ctx).Model(&Notification{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []Notification
	err := query.
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

func (d *NotificationDAO) MarkRead(ctx context.Context, userID, notificationID uint) error {
	now := time.Now()
	result := d.db.WithContext(ctx).
		Model(&Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read_at", &now)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}

	return nil
}
