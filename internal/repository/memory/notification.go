package memory

import (
	"context"
	"sort"
	"time"

	"github.com/hashicorp/go-memdb"
	"github.com/linskybing/robolab-go/internal/domain/notification"
	"github.com/linskybing/robolab-go/pkg/apperr"
)

type NotificationRepo struct {
	db *memdb.MemDB
}

func (r *NotificationRepo) QueueEmail(_ context.Context, n *notification.Notification) error {
	row := n.Clone()
	return insert(r.db, tableNotifications, &row)
}

func (r *NotificationRepo) GetNotificationByID(_ context.Context, id string) (notification.Notification, error) {
	row, err := first[notification.Notification](r.db, tableNotifications, indexID, id)
	if err != nil {
		return notification.Notification{}, err
	}
	return row.Clone(), nil
}

func (r *NotificationRepo) ListDue(_ context.Context, now time.Time, limit int) ([]notification.Notification, error) {
	txn := r.db.Txn(false)
	defer txn.Abort()
	rows, err := all[notification.Notification](txn, tableNotifications, indexStatus, string(notification.StatusPending))
	if err != nil {
		return nil, err
	}
	var out []notification.Notification
	for _, row := range rows {
		if !row.ScheduledFor.After(now) {
			out = append(out, row.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ScheduledFor.Before(out[j].ScheduledFor) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Claim relies on memdb allowing a single write transaction at a time.
func (r *NotificationRepo) Claim(_ context.Context, id string, now time.Time) (bool, error) {
	txn := r.db.Txn(true)
	defer txn.Abort()
	raw, err := txn.First(tableNotifications, indexID, id)
	if err != nil {
		return false, apperr.Store("claim", err)
	}
	if raw == nil {
		return false, apperr.ErrNotFound
	}
	row := raw.(*notification.Notification).Clone()
	if row.Status != notification.StatusPending {
		return false, nil
	}
	row.Status = notification.StatusSending
	row.UpdatedAt = now
	if err := txn.Insert(tableNotifications, &row); err != nil {
		return false, apperr.Store("claim", err)
	}
	txn.Commit()
	return true, nil
}

func (r *NotificationRepo) SaveNotification(_ context.Context, n *notification.Notification) error {
	row := n.Clone()
	return insert(r.db, tableNotifications, &row)
}

func (r *NotificationRepo) ResetStale(_ context.Context, cutoff, now time.Time) (int64, error) {
	txn := r.db.Txn(true)
	defer txn.Abort()
	rows, err := all[notification.Notification](txn, tableNotifications, indexStatus, string(notification.StatusSending))
	if err != nil {
		return 0, err
	}
	var n int64
	for _, raw := range rows {
		if !raw.UpdatedAt.Before(cutoff) {
			continue
		}
		row := raw.Clone()
		row.Status = notification.StatusPending
		row.UpdatedAt = now
		if err := txn.Insert(tableNotifications, &row); err != nil {
			return 0, apperr.Store("reset stale", err)
		}
		n++
	}
	txn.Commit()
	return n, nil
}

func (r *NotificationRepo) ListNotifications(_ context.Context, filter notification.ListFilter) ([]notification.Notification, error) {
	txn := r.db.Txn(false)
	defer txn.Abort()
	var rows []*notification.Notification
	var err error
	if filter.Status != nil {
		rows, err = all[notification.Notification](txn, tableNotifications, indexStatus, string(*filter.Status))
	} else {
		rows, err = all[notification.Notification](txn, tableNotifications, indexID)
	}
	if err != nil {
		return nil, err
	}
	out := make([]notification.Notification, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Clone())
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}
