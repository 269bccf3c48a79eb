package application

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/linskybing/robolab-go/internal/domain/account"
	"github.com/linskybing/robolab-go/internal/domain/activity"
	"github.com/linskybing/robolab-go/internal/domain/profile"
	"github.com/linskybing/robolab-go/internal/repository"
	"github.com/linskybing/robolab-go/internal/repository/mock"
	"github.com/linskybing/robolab-go/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --------------------- ResolveProfile ---------------------
func TestResolveProfile_UnknownPrincipalIsViewOnly(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	p, err := env.svcs.Access.ResolveProfile(context.Background(), account.Principal{AccountID: "acct-1", Email: "Stranger@Example.edu"})
	require.NoError(t, err)
	assert.Equal(t, "acct-1", p.ID)
	assert.Equal(t, "stranger@example.edu", p.Email)
	assert.Equal(t, profile.RoleViewOnly, p.Role)
	assert.False(t, env.svcs.Access.IsAdmin(p))
	assert.False(t, env.svcs.Access.CanReview(p))
}

func TestResolveProfile_AllowListedPrincipal(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	p, err := env.svcs.Access.ResolveProfile(context.Background(), account.Principal{AccountID: "acct-root", Email: "root@example.edu"})
	require.NoError(t, err)
	assert.Equal(t, profile.RoleSuperAdmin, p.Role)
	assert.True(t, p.EmailOnNewProject)
	assert.True(t, env.svcs.Access.IsAdmin(p))
}

func TestResolveProfile_ReturnsExistingProfile(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	prof := env.seedProfile(t, "prof@example.edu", profile.RoleFaculty, false)

	p, err := env.svcs.Access.ResolveProfile(context.Background(), prof)
	require.NoError(t, err)
	assert.Equal(t, profile.RoleFaculty, p.Role)

	again, err := env.svcs.Access.ResolveProfile(context.Background(), prof)
	require.NoError(t, err)
	assert.Equal(t, p, again)

	all, err := env.svcs.Access.ListProfiles(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestResolveProfile_StoreErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockProfile := mock.NewMockProfileRepo(ctrl)
	mockProfile.EXPECT().GetProfileByID(gomock.Any(), "acct-1").Return(profile.Profile{}, apperr.Store("get profile", assert.AnError))

	env := newTestEnv(t, nil, func(r *repository.Repos) { r.Profile = mockProfile })

	_, err := env.svcs.Access.ResolveProfile(context.Background(), account.Principal{AccountID: "acct-1"})
	var se *apperr.StoreError
	assert.ErrorAs(t, err, &se)
}

func TestNewAccessService_NeverDefaultsToPrivilegedRole(t *testing.T) {
	svc := NewAccessService(nil, nil, AccessOptions{DefaultRole: profile.RoleAdmin})
	assert.Equal(t, profile.RoleViewOnly, svc.RoleFor("anyone@example.edu"))
}

// --------------------- UpdateRole ---------------------
func TestUpdateRole_SuperAdmin(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	root := env.seedProfile(t, "root@example.edu", profile.RoleSuperAdmin, false)
	target := env.seedProfile(t, "prof@example.edu", profile.RoleViewOnly, false)

	updated, err := env.svcs.Access.UpdateRole(context.Background(), root, target.AccountID, profile.RoleFaculty)
	require.NoError(t, err)
	assert.Equal(t, profile.RoleFaculty, updated.Role)

	entries, err := env.svcs.Activity.List(context.Background(), activity.QueryParams{EntityType: activity.EntityProfile})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Updated role to faculty", entries[0].Action)
	assert.Equal(t, target.AccountID, *entries[0].EntityID)
}

func TestUpdateRole_Rejections(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	root := env.seedProfile(t, "root@example.edu", profile.RoleSuperAdmin, false)
	admin := env.seedProfile(t, "head@example.edu", profile.RoleAdmin, false)
	target := env.seedProfile(t, "prof@example.edu", profile.RoleViewOnly, false)

	_, err := env.svcs.Access.UpdateRole(context.Background(), admin, target.AccountID, profile.RoleFaculty)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = env.svcs.Access.UpdateRole(context.Background(), root, target.AccountID, "owner")
	var ve *apperr.ValidationError
	assert.ErrorAs(t, err, &ve)

	_, err = env.svcs.Access.UpdateRole(context.Background(), root, root.AccountID, profile.RoleAdmin)
	assert.ErrorAs(t, err, &ve)

	_, err = env.svcs.Access.UpdateRole(context.Background(), root, "missing", profile.RoleAdmin)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestGrantRole(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	acct := account.Account{ID: "acct-9", Email: "new@example.edu"}
	notify := true

	p, err := env.svcs.Access.GrantRole(context.Background(), acct, profile.RoleAdmin, &notify)
	require.NoError(t, err)
	assert.Equal(t, profile.RoleAdmin, p.Role)
	assert.True(t, p.EmailOnNewProject)

	p, err = env.svcs.Access.GrantRole(context.Background(), acct, profile.RoleFaculty, nil)
	require.NoError(t, err)
	assert.Equal(t, profile.RoleFaculty, p.Role)
	assert.True(t, p.EmailOnNewProject)
}
