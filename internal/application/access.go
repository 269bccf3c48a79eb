package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/linskybing/robolab-go/internal/domain/account"
	"github.com/linskybing/robolab-go/internal/domain/activity"
	"github.com/linskybing/robolab-go/internal/domain/profile"
	"github.com/linskybing/robolab-go/internal/repository"
	"github.com/linskybing/robolab-go/pkg/apperr"
)

type AccessOptions struct {
	// Allow maps lower-cased emails to the role a new profile starts with.
	Allow              map[string]profile.Role
	DefaultRole        profile.Role
	ReviewAllowFaculty bool
}

// AccessService resolves principals to profiles and answers role questions.
type AccessService struct {
	Repos    *repository.Repos
	activity *ActivityService
	opts     AccessOptions
	now      func() time.Time
}

func NewAccessService(repos *repository.Repos, activity *ActivityService, opts AccessOptions) *AccessService {
	if !opts.DefaultRole.Valid() || opts.DefaultRole.AtLeast(profile.RoleAdmin) {
		opts.DefaultRole = profile.RoleViewOnly
	}
	if opts.Allow == nil {
		opts.Allow = map[string]profile.Role{}
	}
	return &AccessService{
		Repos:    repos,
		activity: activity,
		opts:     opts,
		now:      utcNow,
	}
}

// ResolveProfile returns the principal's profile, creating it on first use.
// New profiles take their role from the allow-list, else the default role.
func (s *AccessService) ResolveProfile(ctx context.Context, p account.Principal) (profile.Profile, error) {
	if p.AccountID == "" {
		return profile.Profile{}, apperr.ErrUnauthenticated
	}
	existing, err := s.Repos.Profile.GetProfileByID(ctx, p.AccountID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return profile.Profile{}, err
	}

	now := s.now()
	email := account.NormalizeEmail(p.Email)
	role := s.RoleFor(email)
	return s.Repos.Profile.CreateProfileIfAbsent(ctx, &profile.Profile{
		ID:                p.AccountID,
		Email:             email,
		Role:              role,
		EmailOnNewProject: role.AtLeast(profile.RoleAdmin),
		CreatedAt:         now,
		UpdatedAt:         now,
	})
}

// RoleFor is the role a newly synthesized profile for email receives.
func (s *AccessService) RoleFor(email string) profile.Role {
	if role, ok := s.opts.Allow[strings.ToLower(strings.TrimSpace(email))]; ok {
		return role
	}
	return s.opts.DefaultRole
}

func (s *AccessService) IsAdmin(p profile.Profile) bool {
	return p.IsAdmin()
}

// CanReview reports whether p may change submission status and read submission details.
func (s *AccessService) CanReview(p profile.Profile) bool {
	if p.IsAdmin() {
		return true
	}
	return s.opts.ReviewAllowFaculty && p.Role == profile.RoleFaculty
}

// RequireReviewer resolves p and fails with ErrForbidden unless it may review.
func (s *AccessService) RequireReviewer(ctx context.Context, p account.Principal) (profile.Profile, error) {
	prof, err := s.ResolveProfile(ctx, p)
	if err != nil {
		return profile.Profile{}, err
	}
	if !s.CanReview(prof) {
		return profile.Profile{}, apperr.ErrForbidden
	}
	return prof, nil
}

// RequireAdmin resolves p and fails with ErrForbidden unless it is admin-class.
func (s *AccessService) RequireAdmin(ctx context.Context, p account.Principal) (profile.Profile, error) {
	prof, err := s.ResolveProfile(ctx, p)
	if err != nil {
		return profile.Profile{}, err
	}
	if !prof.IsAdmin() {
		return profile.Profile{}, apperr.ErrForbidden
	}
	return prof, nil
}

// UpdateRole changes a profile's role. Only super_admin may do this.
func (s *AccessService) UpdateRole(ctx context.Context, actor account.Principal, profileID string, role profile.Role) (profile.Profile, error) {
	if !role.Valid() {
		return profile.Profile{}, apperr.Invalid("role", fmt.Sprintf("unknown role %q", role))
	}
	actorProfile, err := s.ResolveProfile(ctx, actor)
	if err != nil {
		return profile.Profile{}, err
	}
	if actorProfile.Role != profile.RoleSuperAdmin {
		return profile.Profile{}, apperr.ErrForbidden
	}
	if profileID == actorProfile.ID && role != profile.RoleSuperAdmin {
		return profile.Profile{}, apperr.Invalid("role", "cannot demote your own super_admin profile")
	}

	before, err := s.Repos.Profile.GetProfileByID(ctx, profileID)
	if err != nil {
		return profile.Profile{}, err
	}
	updated, err := s.Repos.Profile.UpdateRole(ctx, profileID, role, s.now())
	if err != nil {
		return profile.Profile{}, err
	}
	s.recordActivity(ctx, actorProfile.ID, fmt.Sprintf("Updated role to %s", role), profileID, map[string]any{
		"from": before.Role,
		"to":   role,
	})
	return updated, nil
}

// GrantRole creates or updates the profile of an existing account. It backs
// the admin CLI and runs without an acting principal.
func (s *AccessService) GrantRole(ctx context.Context, acct account.Account, role profile.Role, notify *bool) (profile.Profile, error) {
	if !role.Valid() {
		return profile.Profile{}, apperr.Invalid("role", fmt.Sprintf("unknown role %q", role))
	}
	now := s.now()
	if _, err := s.Repos.Profile.CreateProfileIfAbsent(ctx, &profile.Profile{
		ID:        acct.ID,
		Email:     acct.Email,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		return profile.Profile{}, err
	}
	prof, err := s.Repos.Profile.UpdateRole(ctx, acct.ID, role, now)
	if err != nil {
		return profile.Profile{}, err
	}
	if notify != nil {
		if err := s.Repos.Profile.SetEmailOnNewProject(ctx, acct.ID, *notify, now); err != nil {
			return profile.Profile{}, err
		}
		prof.EmailOnNewProject = *notify
	}
	return prof, nil
}

func (s *AccessService) ListProfiles(ctx context.Context) ([]profile.Profile, error) {
	return s.Repos.Profile.ListProfiles(ctx)
}

func (s *AccessService) recordActivity(ctx context.Context, adminID, action, entityID string, details map[string]any) {
	if s.activity == nil {
		return
	}
	if _, err := s.activity.Record(ctx, adminID, action, activity.EntityProfile, entityID, details); err != nil {
		logSideEffect("activity", err)
	}
}
