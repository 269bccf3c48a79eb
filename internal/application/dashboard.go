package application

import (
	"context"

	"github.com/linskybing/robolab-go/internal/domain/submission"
	"github.com/linskybing/robolab-go/internal/repository"
)

type Dashboard struct {
	Summary     submission.Summary      `json:"summary"`
	Submissions []submission.Submission `json:"submissions"`
}

// DashboardService is a read model over submissions. Nothing is cached.
type DashboardService struct {
	Repos *repository.Repos
}

func NewDashboardService(repos *repository.Repos) *DashboardService {
	return &DashboardService{
		Repos: repos,
	}
}

// ListSubmissions returns submissions newest first. The status filter is
// applied by the store; the text query is matched here.
func (s *DashboardService) ListSubmissions(ctx context.Context, filter submission.ListFilter) ([]submission.Submission, error) {
	subs, err := s.Repos.Submission.ListSubmissions(ctx, filter.Status)
	if err != nil {
		return nil, err
	}
	out := make([]submission.Submission, 0, len(subs))
	for _, sub := range subs {
		if filter.Matches(sub) {
			out = append(out, sub)
		}
	}
	return out, nil
}

// Summarize counts by status over the whole set, ignoring the filter.
func (s *DashboardService) Summarize(subs []submission.Submission) submission.Summary {
	return submission.Summarize(subs)
}

// Load returns the unfiltered summary together with the filtered list.
func (s *DashboardService) Load(ctx context.Context, filter submission.ListFilter) (Dashboard, error) {
	all, err := s.Repos.Submission.ListSubmissions(ctx, nil)
	if err != nil {
		return Dashboard{}, err
	}
	out := Dashboard{Summary: submission.Summarize(all), Submissions: []submission.Submission{}}
	for _, sub := range all {
		if filter.Matches(sub) {
			out.Submissions = append(out.Submissions, sub)
		}
	}
	return out, nil
}
