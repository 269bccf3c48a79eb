package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/linskybing/robolab-go/internal/domain/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoles(t *testing.T) {
	raw := []byte("roles:\n  Admin@Example.edu: super_admin\n  prof@example.edu: faculty\n")
	roles, err := ParseRoles(raw)
	require.NoError(t, err)
	assert.Equal(t, profile.RoleSuperAdmin, roles["admin@example.edu"])
	assert.Equal(t, profile.RoleFaculty, roles["prof@example.edu"])
}

func TestParseRoles_UnknownRole(t *testing.T) {
	_, err := ParseRoles([]byte("roles:\n  a@b.c: owner\n"))
	assert.Error(t, err)
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DATA_STORE_URL", "")
	t.Setenv("USE_MOCK_STORE", "false")
	t.Setenv("EMAIL_PROVIDER", "log")
	t.Setenv("BOOTSTRAP_ADMIN_EMAIL", "Root@Example.edu")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, profile.RoleViewOnly, cfg.Access.DefaultRole)
	assert.False(t, cfg.Access.ReviewAllowFaculty)
	assert.False(t, cfg.StrictTransitions)
	assert.Equal(t, 3, cfg.Mail.MaxAttempts)
	assert.Equal(t, profile.RoleSuperAdmin, cfg.Access.Allow["root@example.edu"])
}

func TestLoad_RolesFileAndSQLite(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	rolesPath := filepath.Join(dir, "roles.yaml")
	require.NoError(t, os.WriteFile(rolesPath, []byte("roles:\n  prof@example.edu: faculty\n"), 0o600))

	t.Setenv("ROLES_FILE", rolesPath)
	t.Setenv("DATA_STORE_DRIVER", "sqlite")
	t.Setenv("DATA_STORE_URL", filepath.Join(dir, "lab.db"))
	t.Setenv("BOOTSTRAP_ADMIN_EMAIL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, filepath.Join(dir, "lab.db"), cfg.Store.DSN())
	assert.Equal(t, profile.RoleFaculty, cfg.Access.Allow["prof@example.edu"])
}

func TestLoad_RejectsPrivilegedDefaultRole(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DEFAULT_ROLE", "admin")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsBadDuration(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DEFAULT_ROLE", "view_only")
	t.Setenv("MAIL_RETRY_BACKOFF", "soon")
	_, err := Load()
	assert.Error(t, err)
}

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
