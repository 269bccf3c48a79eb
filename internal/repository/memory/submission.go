package memory

import (
	"context"
	"sort"

	"github.com/hashicorp/go-memdb"
	"github.com/linskybing/robolab-go/internal/domain/submission"
	"github.com/linskybing/robolab-go/pkg/apperr"
)

type SubmissionRepo struct {
	db *memdb.MemDB
}

func (r *SubmissionRepo) CreateSubmission(_ context.Context, s *submission.Submission) error {
	txn := r.db.Txn(true)
	defer txn.Abort()
	existing, err := txn.First(tableSubmissions, indexID, s.ID)
	if err != nil {
		return apperr.Store("create submission", err)
	}
	if existing != nil {
		return apperr.ErrConflict
	}
	row := s.Clone()
	if err := txn.Insert(tableSubmissions, &row); err != nil {
		return apperr.Store("create submission", err)
	}
	txn.Commit()
	return nil
}

func (r *SubmissionRepo) GetSubmissionByID(_ context.Context, id string) (submission.Submission, error) {
	row, err := first[submission.Submission](r.db, tableSubmissions, indexID, id)
	if err != nil {
		return submission.Submission{}, err
	}
	return row.Clone(), nil
}

func (r *SubmissionRepo) ListSubmissions(_ context.Context, status *submission.Status) ([]submission.Submission, error) {
	txn := r.db.Txn(false)
	defer txn.Abort()

	var rows []*submission.Submission
	var err error
	if status != nil {
		rows, err = all[submission.Submission](txn, tableSubmissions, indexStatus, string(*status))
	} else {
		rows, err = all[submission.Submission](txn, tableSubmissions, indexID)
	}
	if err != nil {
		return nil, err
	}

	out := make([]submission.Submission, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Clone())
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *SubmissionRepo) ApplyReview(_ context.Context, id string, u submission.ReviewUpdate, expectedVersion *int) (submission.Submission, error) {
	txn := r.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(tableSubmissions, indexID, id)
	if err != nil {
		return submission.Submission{}, apperr.Store("review submission", err)
	}
	if raw == nil {
		return submission.Submission{}, apperr.ErrNotFound
	}
	row := raw.(*submission.Submission).Clone()
	if expectedVersion != nil && row.Version != *expectedVersion {
		return submission.Submission{}, apperr.ErrConflict
	}

	reviewer := u.ReviewedBy
	reviewedAt := u.ReviewedAt
	row.Status = u.Status
	row.FacultyComments = u.FacultyComments
	row.ReviewedBy = &reviewer
	row.ReviewedAt = &reviewedAt
	row.UpdatedAt = u.ReviewedAt
	row.Version++

	stored := row.Clone()
	if err := txn.Insert(tableSubmissions, &stored); err != nil {
		return submission.Submission{}, apperr.Store("review submission", err)
	}
	txn.Commit()
	return row, nil
}
