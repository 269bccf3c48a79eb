package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/robolab-go/internal/api/handlers"
	"github.com/linskybing/robolab-go/internal/application"
	"github.com/linskybing/robolab-go/internal/config"
	"github.com/linskybing/robolab-go/internal/domain/profile"
	"github.com/linskybing/robolab-go/internal/domain/submission"
	"github.com/linskybing/robolab-go/internal/mailer"
	"github.com/linskybing/robolab-go/internal/repository"
	"github.com/linskybing/robolab-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router *gin.Engine
	svcs   *application.Services
	repos  *repository.Repos
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Mail: config.MailConfig{MaxAttempts: 3, BatchSize: 10, RetryBackoff: time.Minute, SendingLease: time.Minute},
		Auth: config.AuthConfig{JWTSecret: "router-secret", Issuer: "robolab-test", SessionTTL: time.Hour},
		Access: config.AccessConfig{
			DefaultRole: profile.RoleViewOnly,
			Allow: map[string]profile.Role{
				"root@example.edu":  profile.RoleSuperAdmin,
				"admin@example.edu": profile.RoleAdmin,
			},
		},
		AppURL: "http://localhost:3000",
	}
	repos, err := memory.NewRepositories()
	require.NoError(t, err)
	svcs := application.New(cfg, repos, mailer.NewLogSender())
	h := handlers.New(svcs, false, nil)
	return &testServer{router: NewRouter(svcs, h, cfg.AppURL), svcs: svcs, repos: repos}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// login creates an account for email and returns a bearer token.
func (s *testServer) login(t *testing.T, email string) string {
	t.Helper()
	_, err := s.svcs.Auth.CreateAccount(context.Background(), email, "password123")
	require.NoError(t, err)
	w := s.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": email, "password": "password123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out.Token
}

func proposal(title string) map[string]any {
	return map[string]any{
		"student_name":       "Asha Verma",
		"student_email":      "asha@example.edu",
		"roll_number":        "221030",
		"branch":             "ECE",
		"year":               "3rd",
		"category":           "Autonomous Robots",
		"project_title":      title,
		"description":        strings.Repeat("A robot that follows a line using IR sensors. ", 4),
		"duration":           "1-3 months",
		"required_resources": []string{"Sensors & Actuators"},
	}
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestSubmissionIntake(t *testing.T) {
	s := newTestServer(t)

	t.Run("valid proposal is stored as pending", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/submissions", "", proposal("Line Follower"))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var sub submission.Submission
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sub))
		assert.Equal(t, submission.StatusPending, sub.Status)
		assert.NotEmpty(t, sub.ID)
	})

	t.Run("invalid proposal reports fields", func(t *testing.T) {
		body := proposal("Line Follower")
		body["student_email"] = "not-an-email"
		body["description"] = "too short"
		w := s.do(t, http.MethodPost, "/submissions", "", body)
		require.Equal(t, http.StatusBadRequest, w.Code)

		var out struct {
			Error  string            `json:"error"`
			Fields map[string]string `json:"fields"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		assert.Contains(t, out.Fields, "student_email")
		assert.Contains(t, out.Fields, "description")
	})

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/submissions", strings.NewReader("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "admin@example.edu")

	w := s.do(t, http.MethodGet, "/auth/session", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"admin"`)
	assert.Contains(t, w.Body.String(), `"is_admin":true`)

	w = s.do(t, http.MethodPost, "/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/auth/session", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	s := newTestServer(t)
	_, err := s.svcs.Auth.CreateAccount(context.Background(), "admin@example.edu", "password123")
	require.NoError(t, err)

	w := s.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": "admin@example.edu", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRoutesRequireSession(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/admin/dashboard", "/admin/submissions", "/admin/activity", "/admin/profiles"} {
		w := s.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	w := s.do(t, http.MethodGet, "/admin/dashboard", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReviewFlow(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, "admin@example.edu")
	viewer := s.login(t, "student@example.edu")

	w := s.do(t, http.MethodPost, "/submissions", "", proposal("Gripper Arm"))
	require.Equal(t, http.StatusCreated, w.Code)
	var created submission.Submission
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	reviewPath := "/admin/submissions/" + created.ID + "/review"

	t.Run("view_only cannot review", func(t *testing.T) {
		w := s.do(t, http.MethodPut, reviewPath, viewer, map[string]any{"status": "approved"})
		assert.Equal(t, http.StatusForbidden, w.Code)

		stored, err := s.repos.Submission.GetSubmissionByID(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, submission.StatusPending, stored.Status)
	})

	t.Run("view_only cannot read detail", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/admin/submissions/"+created.ID, viewer, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("view_only cannot list submissions", func(t *testing.T) {
		for _, path := range []string{"/admin/dashboard", "/admin/submissions", "/admin/submissions?q=gripper"} {
			w := s.do(t, http.MethodGet, path, viewer, nil)
			assert.Equal(t, http.StatusForbidden, w.Code, path)
			assert.NotContains(t, w.Body.String(), "student_email", path)
		}
	})

	t.Run("rejection requires comments", func(t *testing.T) {
		w := s.do(t, http.MethodPut, reviewPath, admin, map[string]any{"status": "rejected", "comments": "   "})
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "comments")
	})

	t.Run("unknown status", func(t *testing.T) {
		w := s.do(t, http.MethodPut, reviewPath, admin, map[string]any{"status": "archived"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("admin approves", func(t *testing.T) {
		w := s.do(t, http.MethodPut, reviewPath, admin, map[string]any{"status": "approved", "comments": "Go ahead"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var sub submission.Submission
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sub))
		assert.Equal(t, submission.StatusApproved, sub.Status)
		require.NotNil(t, sub.ReviewedBy)
		assert.Equal(t, 2, sub.Version)
	})

	t.Run("stale version conflicts", func(t *testing.T) {
		w := s.do(t, http.MethodPut, reviewPath, admin, map[string]any{"status": "completed", "comments": "Done", "version": 1})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("missing submission", func(t *testing.T) {
		w := s.do(t, http.MethodPut, "/admin/submissions/nope/review", admin, map[string]any{"status": "approved"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("dashboard counts and filters", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/submissions", "", proposal("Drone Swarm"))
		require.Equal(t, http.StatusCreated, w.Code)

		w = s.do(t, http.MethodGet, "/admin/dashboard?q=drone", admin, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var dash application.Dashboard
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dash))
		assert.Equal(t, 2, dash.Summary.Total)
		assert.Equal(t, 1, dash.Summary.Approved)
		assert.Equal(t, 1, dash.Summary.Pending)
		require.Len(t, dash.Submissions, 1)
		assert.Equal(t, "Drone Swarm", dash.Submissions[0].ProjectTitle)

		w = s.do(t, http.MethodGet, "/admin/submissions?status=bogus", admin, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("activity records the decision", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/admin/activity?entity_type=project", admin, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Updated project status to approved")

		w = s.do(t, http.MethodGet, "/admin/activity", viewer, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("notifications are queued", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/admin/notifications?status=pending", admin, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Project APPROVED - Gripper Arm")
	})
}

func TestRoleManagement(t *testing.T) {
	s := newTestServer(t)
	root := s.login(t, "root@example.edu")
	admin := s.login(t, "admin@example.edu")
	s.login(t, "prof@example.edu")

	acct, err := s.svcs.Auth.GetAccountByEmail(context.Background(), "prof@example.edu")
	require.NoError(t, err)
	path := "/admin/profiles/" + acct.ID + "/role"

	w := s.do(t, http.MethodPut, path, admin, map[string]string{"role": "faculty"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPut, path, root, map[string]string{"role": "wizard"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPut, path, root, map[string]string{"role": "faculty"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"role":"faculty"`)

	w = s.do(t, http.MethodGet, "/admin/profiles", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var profiles []profile.Profile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profiles))
	assert.Len(t, profiles, 3)
}
