package repository

import (
	"context"

	"github.com/linskybing/robolab-go/internal/domain/activity"
	"gorm.io/gorm"
)

type ActivityRepo interface {
	CreateEntry(ctx context.Context, e *activity.Entry) error
	ListEntries(ctx context.Context, params activity.QueryParams) ([]activity.Entry, error)
}

type DBActivityRepo struct {
	db *gorm.DB
}

func NewActivityRepo(db *gorm.DB) *DBActivityRepo {
	return &DBActivityRepo{
		db: db,
	}
}

func (r *DBActivityRepo) CreateEntry(ctx context.Context, e *activity.Entry) error {
	return translate("create activity", r.db.WithContext(ctx).Create(e).Error)
}

func (r *DBActivityRepo) ListEntries(ctx context.Context, params activity.QueryParams) ([]activity.Entry, error) {
	var entries []activity.Entry
	query := r.db.WithContext(ctx).Model(&activity.Entry{})

	if params.AdminID != "" {
		query = query.Where("admin_id = ?", params.AdminID)
	}
	if params.EntityType != "" {
		query = query.Where("entity_type = ?", params.EntityType)
	}
	if params.Action != "" {
		query = query.Where("action = ?", params.Action)
	}
	if params.StartTime != nil {
		query = query.Where("created_at >= ?", *params.StartTime)
	}
	if params.EndTime != nil {
		query = query.Where("created_at <= ?", *params.EndTime)
	}

	query = query.Order("created_at DESC")
	if params.Limit > 0 {
		query = query.Limit(params.Limit)
	}
	if params.Offset > 0 {
		query = query.Offset(params.Offset)
	}

	err := query.Find(&entries).Error
	return entries, translate("list activity", err)
}
