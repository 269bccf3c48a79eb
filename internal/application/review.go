package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/linskybing/robolab-go/internal/domain/account"
	"github.com/linskybing/robolab-go/internal/domain/activity"
	"github.com/linskybing/robolab-go/internal/domain/submission"
	"github.com/linskybing/robolab-go/internal/repository"
	"github.com/linskybing/robolab-go/pkg/apperr"
)

type ReviewInput struct {
	SubmissionID    string
	Status          submission.Status
	Comments        string
	Reviewer        account.Principal
	ExpectedVersion *int
}

// ReviewService applies reviewer decisions to submissions.
type ReviewService struct {
	Repos    *repository.Repos
	access   *AccessService
	activity *ActivityService
	notify   *NotificationService
	policy   submission.TransitionPolicy
	now      func() time.Time
}

func NewReviewService(repos *repository.Repos, access *AccessService, activity *ActivityService, notify *NotificationService, policy submission.TransitionPolicy) *ReviewService {
	if policy == nil {
		policy = submission.PermissivePolicy()
	}
	return &ReviewService{
		Repos:    repos,
		access:   access,
		activity: activity,
		notify:   notify,
		policy:   policy,
		now:      utcNow,
	}
}

// Review checks authorization, comments and the transition policy before
// writing. Activity and email side effects run after the write and only log
// on failure.
func (s *ReviewService) Review(ctx context.Context, in ReviewInput) (submission.Submission, error) {
	reviewer, err := s.access.RequireReviewer(ctx, in.Reviewer)
	if err != nil {
		return submission.Submission{}, err
	}
	if !in.Status.Valid() {
		return submission.Submission{}, apperr.Invalid("status", fmt.Sprintf("unknown status %q", in.Status))
	}
	comments := strings.TrimSpace(in.Comments)
	if in.Status.RequiresComments() && comments == "" {
		return submission.Submission{}, apperr.Invalid("comments", fmt.Sprintf("comments are required when the status is %s", in.Status))
	}

	current, err := s.Repos.Submission.GetSubmissionByID(ctx, in.SubmissionID)
	if err != nil {
		return submission.Submission{}, err
	}
	if !s.policy.Allowed(current.Status, in.Status) {
		return submission.Submission{}, apperr.Invalid("status",
			fmt.Sprintf("cannot move from %s to %s under the %s policy", current.Status, in.Status, s.policy.Name()))
	}

	update := submission.ReviewUpdate{
		Status:     in.Status,
		ReviewedBy: reviewer.ID,
		ReviewedAt: s.now(),
	}
	if comments != "" {
		update.FacultyComments = &comments
	}
	updated, err := s.Repos.Submission.ApplyReview(ctx, in.SubmissionID, update, in.ExpectedVersion)
	if err != nil {
		return submission.Submission{}, err
	}

	if s.activity != nil {
		_, err := s.activity.Record(ctx, reviewer.ID, "Updated project status to "+string(in.Status),
			activity.EntitySubmission, updated.ID, map[string]any{
				"status":   in.Status,
				"comments": comments,
			})
		if err != nil {
			logSideEffect("activity", err)
		}
	}
	if s.notify != nil {
		if err := s.notify.QueueStatusUpdate(ctx, updated); err != nil {
			logSideEffect("status email", err)
		}
	}
	return updated, nil
}

// GetForReviewer returns one submission to a principal allowed to review.
func (s *ReviewService) GetForReviewer(ctx context.Context, p account.Principal, id string) (submission.Submission, error) {
	if _, err := s.access.RequireReviewer(ctx, p); err != nil {
		return submission.Submission{}, err
	}
	return s.Repos.Submission.GetSubmissionByID(ctx, id)
}
