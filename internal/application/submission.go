package application

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/linskybing/robolab-go/internal/domain/submission"
	"github.com/linskybing/robolab-go/internal/repository"
	"github.com/linskybing/robolab-go/pkg/apperr"
	"gorm.io/datatypes"
)

type SubmissionService struct {
	Repos    *repository.Repos
	notify   *NotificationService
	validate *validator.Validate
	now      func() time.Time
}

func NewSubmissionService(repos *repository.Repos, notify *NotificationService) *SubmissionService {
	return &SubmissionService{
		Repos:    repos,
		notify:   notify,
		validate: newValidator(),
		now:      utcNow,
	}
}

// Submit validates and stores a new proposal with status pending, then
// queues the student confirmation and admin alerts. Mail failures are
// logged and never undo the submission.
func (s *SubmissionService) Submit(ctx context.Context, input submission.CreateSubmissionInput) (submission.Submission, error) {
	in := normalizeSubmission(input)
	if err := s.validate.Struct(in); err != nil {
		return submission.Submission{}, fieldErrors(err)
	}
	if in.IsTeamProject && in.TeamSize != nil && *in.TeamSize < 1 {
		return submission.Submission{}, apperr.Invalid("team_size", "must be at least 1")
	}

	now := s.now()
	sub := submission.Submission{
		ID:                uuid.NewString(),
		StudentName:       in.StudentName,
		StudentEmail:      in.StudentEmail,
		RollNumber:        in.RollNumber,
		Branch:            in.Branch,
		Year:              in.Year,
		ContactNumber:     in.ContactNumber,
		IsTeamProject:     in.IsTeamProject,
		TeamSize:          in.TeamSize,
		TeamMembers:       in.TeamMembers,
		Category:          in.Category,
		ProjectTitle:      in.ProjectTitle,
		Description:       in.Description,
		ExpectedOutcomes:  in.ExpectedOutcomes,
		Duration:          in.Duration,
		RequiredResources: datatypes.JSONSlice[string](in.RequiredResources),
		OtherResources:    in.OtherResources,
		Status:            submission.StatusPending,
		Version:           1,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.Repos.Submission.CreateSubmission(ctx, &sub); err != nil {
		return submission.Submission{}, err
	}

	if s.notify != nil {
		if err := s.notify.QueueSubmissionConfirmation(ctx, sub); err != nil {
			logSideEffect("confirmation email", err)
		}
		if err := s.notify.QueueNewProjectAlerts(ctx, sub); err != nil {
			logSideEffect("new project alerts", err)
		}
	}
	return sub, nil
}

func (s *SubmissionService) GetSubmission(ctx context.Context, id string) (submission.Submission, error) {
	return s.Repos.Submission.GetSubmissionByID(ctx, id)
}

// normalizeSubmission trims text, drops empty optionals, collapses duplicate
// resources, clears team fields for solo projects and clears other_resources
// unless "Other" was selected.
func normalizeSubmission(in submission.CreateSubmissionInput) submission.CreateSubmissionInput {
	in.StudentName = strings.TrimSpace(in.StudentName)
	in.StudentEmail = strings.ToLower(strings.TrimSpace(in.StudentEmail))
	in.RollNumber = strings.TrimSpace(in.RollNumber)
	in.Branch = strings.TrimSpace(in.Branch)
	in.Year = strings.TrimSpace(in.Year)
	in.Category = strings.TrimSpace(in.Category)
	in.ProjectTitle = strings.TrimSpace(in.ProjectTitle)
	in.Description = strings.TrimSpace(in.Description)
	in.Duration = strings.TrimSpace(in.Duration)
	in.ContactNumber = trimOptional(in.ContactNumber)
	in.TeamMembers = trimOptional(in.TeamMembers)
	in.ExpectedOutcomes = trimOptional(in.ExpectedOutcomes)
	in.OtherResources = trimOptional(in.OtherResources)

	if !in.IsTeamProject {
		in.TeamSize = nil
		in.TeamMembers = nil
	}

	if in.RequiredResources != nil {
		seen := make(map[string]bool, len(in.RequiredResources))
		resources := make([]string, 0, len(in.RequiredResources))
		for _, r := range in.RequiredResources {
			r = strings.TrimSpace(r)
			if seen[r] {
				continue
			}
			seen[r] = true
			resources = append(resources, r)
		}
		in.RequiredResources = resources
	}
	if !containsString(in.RequiredResources, submission.ResourceOther) {
		in.OtherResources = nil
	}
	return in
}

func trimOptional(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func logSideEffect(what string, err error) {
	log.Printf("[side-effect] %s failed: %v", what, err)
}
