package application

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/linskybing/robolab-go/internal/domain/activity"
	"github.com/linskybing/robolab-go/internal/repository"
	"gorm.io/datatypes"
)

type ActivityService struct {
	Repos *repository.Repos
	now   func() time.Time
}

func NewActivityService(repos *repository.Repos) *ActivityService {
	return &ActivityService{
		Repos: repos,
		now:   utcNow,
	}
}

// Record appends one entry. Entries are never updated or removed.
func (s *ActivityService) Record(ctx context.Context, adminID, action, entityType, entityID string, details map[string]any) (activity.Entry, error) {
	e := activity.Entry{
		ID:         uuid.NewString(),
		AdminID:    adminID,
		Action:     action,
		EntityType: entityType,
		CreatedAt:  s.now(),
	}
	if entityID != "" {
		id := entityID
		e.EntityID = &id
	}
	if details != nil {
		raw, err := json.Marshal(details)
		if err != nil {
			return activity.Entry{}, fmt.Errorf("encode activity details: %w", err)
		}
		e.Details = datatypes.JSON(raw)
	}
	if err := s.Repos.Activity.CreateEntry(ctx, &e); err != nil {
		return activity.Entry{}, err
	}
	return e, nil
}

func (s *ActivityService) List(ctx context.Context, params activity.QueryParams) ([]activity.Entry, error) {
	if params.Limit <= 0 || params.Limit > 500 {
		params.Limit = 100
	}
	return s.Repos.Activity.ListEntries(ctx, params)
}
