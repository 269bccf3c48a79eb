package repository

import (
	"context"
	"time"

	"github.com/linskybing/robolab-go/internal/domain/notification"
	"gorm.io/gorm"
)

type NotificationRepo interface {
	QueueEmail(ctx context.Context, n *notification.Notification) error
	GetNotificationByID(ctx context.Context, id string) (notification.Notification, error)
	// ListDue returns pending rows scheduled at or before now, oldest first.
	ListDue(ctx context.Context, now time.Time, limit int) ([]notification.Notification, error)
	// Claim moves a row from pending to sending. It reports false when
	// another worker got there first.
	Claim(ctx context.Context, id string, now time.Time) (bool, error)
	SaveNotification(ctx context.Context, n *notification.Notification) error
	// ResetStale returns rows stuck in sending since before cutoff to pending.
	ResetStale(ctx context.Context, cutoff, now time.Time) (int64, error)
	ListNotifications(ctx context.Context, filter notification.ListFilter) ([]notification.Notification, error)
}

type DBNotificationRepo struct {
	db *gorm.DB
}

func NewNotificationRepo(db *gorm.DB) *DBNotificationRepo {
	return &DBNotificationRepo{
		db: db,
	}
}

func (r *DBNotificationRepo) QueueEmail(ctx context.Context, n *notification.Notification) error {
	return translate("queue email", r.db.WithContext(ctx).Create(n).Error)
}

func (r *DBNotificationRepo) GetNotificationByID(ctx context.Context, id string) (notification.Notification, error) {
	var n notification.Notification
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&n).Error
	return n, translate("get notification", err)
}

func (r *DBNotificationRepo) ListDue(ctx context.Context, now time.Time, limit int) ([]notification.Notification, error) {
	var rows []notification.Notification
	query := r.db.WithContext(ctx).
		Where("status = ? AND scheduled_for <= ?", notification.StatusPending, now).
		Order("scheduled_for ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&rows).Error
	return rows, translate("list due", err)
}

func (r *DBNotificationRepo) Claim(ctx context.Context, id string, now time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&notification.Notification{}).
		Where("id = ? AND status = ?", id, notification.StatusPending).
		Updates(map[string]any{"status": notification.StatusSending, "updated_at": now})
	if res.Error != nil {
		return false, translate("claim", res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *DBNotificationRepo) SaveNotification(ctx context.Context, n *notification.Notification) error {
	return translate("save notification", r.db.WithContext(ctx).Save(n).Error)
}

func (r *DBNotificationRepo) ResetStale(ctx context.Context, cutoff, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&notification.Notification{}).
		Where("status = ? AND updated_at < ?", notification.StatusSending, cutoff).
		Updates(map[string]any{"status": notification.StatusPending, "updated_at": now})
	return res.RowsAffected, translate("reset stale", res.Error)
}

func (r *DBNotificationRepo) ListNotifications(ctx context.Context, filter notification.ListFilter) ([]notification.Notification, error) {
	var rows []notification.Notification
	query := r.db.WithContext(ctx).Model(&notification.Notification{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	query = query.Order("created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	err := query.Find(&rows).Error
	return rows, translate("list notifications", err)
}
