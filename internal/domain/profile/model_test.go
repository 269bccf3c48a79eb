package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAdmin(t *testing.T) {
	assert.True(t, Profile{Role: RoleSuperAdmin}.IsAdmin())
	assert.True(t, Profile{Role: RoleAdmin}.IsAdmin())
	assert.False(t, Profile{Role: RoleFaculty}.IsAdmin())
	assert.False(t, Profile{Role: RoleViewOnly}.IsAdmin())
	assert.False(t, Profile{Role: "owner"}.IsAdmin())
}

func TestRoleRank(t *testing.T) {
	assert.True(t, RoleSuperAdmin.AtLeast(RoleAdmin))
	assert.True(t, RoleFaculty.AtLeast(RoleFaculty))
	assert.False(t, RoleViewOnly.AtLeast(RoleFaculty))
	assert.False(t, Role("unknown").Valid())
}
