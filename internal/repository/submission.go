package repository

import (
	"context"

	"github.com/linskybing/robolab-go/internal/domain/submission"
	"github.com/linskybing/robolab-go/pkg/apperr"
	"gorm.io/gorm"
)

type SubmissionRepo interface {
	CreateSubmission(ctx context.Context, s *submission.Submission) error
	GetSubmissionByID(ctx context.Context, id string) (submission.Submission, error)
	// ListSubmissions returns rows newest first, optionally restricted to one status.
	ListSubmissions(ctx context.Context, status *submission.Status) ([]submission.Submission, error)
	// ApplyReview writes only the review fields. When expectedVersion is set
	// and does not match the stored version, ErrConflict is returned.
	ApplyReview(ctx context.Context, id string, u submission.ReviewUpdate, expectedVersion *int) (submission.Submission, error)
}

type DBSubmissionRepo struct {
	db *gorm.DB
}

func NewSubmissionRepo(db *gorm.DB) *DBSubmissionRepo {
	return &DBSubmissionRepo{
		db: db,
	}
}

func (r *DBSubmissionRepo) CreateSubmission(ctx context.Context, s *submission.Submission) error {
	return translate("create submission", r.db.WithContext(ctx).Create(s).Error)
}

func (r *DBSubmissionRepo) GetSubmissionByID(ctx context.Context, id string) (submission.Submission, error) {
	var s submission.Submission
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error
	return s, translate("get submission", err)
}

func (r *DBSubmissionRepo) ListSubmissions(ctx context.Context, status *submission.Status) ([]submission.Submission, error) {
	var subs []submission.Submission
	query := r.db.WithContext(ctx).Model(&submission.Submission{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	err := query.Order("created_at DESC").Find(&subs).Error
	return subs, translate("list submissions", err)
}

func (r *DBSubmissionRepo) ApplyReview(ctx context.Context, id string, u submission.ReviewUpdate, expectedVersion *int) (submission.Submission, error) {
	query := r.db.WithContext(ctx).Model(&submission.Submission{}).Where("id = ?", id)
	if expectedVersion != nil {
		query = query.Where("version = ?", *expectedVersion)
	}
	res := query.Updates(map[string]any{
		"status":           u.Status,
		"faculty_comments": u.FacultyComments,
		"reviewed_by":      u.ReviewedBy,
		"reviewed_at":      u.ReviewedAt,
		"updated_at":       u.ReviewedAt,
		"version":          gorm.Expr("version + 1"),
	})
	if res.Error != nil {
		return submission.Submission{}, translate("review submission", res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetSubmissionByID(ctx, id); err != nil {
			return submission.Submission{}, err
		}
		return submission.Submission{}, apperr.ErrConflict
	}
	return r.GetSubmissionByID(ctx, id)
}
