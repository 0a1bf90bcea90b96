package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/waatech/merch-backend/models"
)

// NotificationRepository persists the outcome of each email dispatch.
// Delivery itself never depends on this: a nil repository is valid and
// simply skips persistence.
type NotificationRepository interface {
	SaveLog(ctx context.Context, entry *models.NotificationLog) error
	GetLogs(ctx context.Context, orderID string) ([]models.NotificationLog, error)
}

type GormNotificationRepository struct {
	db *gorm.DB
}

func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

func (r *GormNotificationRepository) SaveLog(ctx context.Context, entry *models.NotificationLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *GormNotificationRepository) GetLogs(ctx context.Context, orderID string) ([]models.NotificationLog, error) {
	var logs []models.NotificationLog
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}
