package application

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/linskybing/robolab-go/internal/config"
	"github.com/linskybing/robolab-go/internal/domain/account"
	"github.com/linskybing/robolab-go/internal/domain/profile"
	"github.com/linskybing/robolab-go/internal/domain/submission"
	"github.com/linskybing/robolab-go/internal/mailer"
	"github.com/linskybing/robolab-go/internal/repository"
	"github.com/linskybing/robolab-go/internal/repository/memory"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Now().UTC().Truncate(time.Second)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type recordingSender struct {
	mu   sync.Mutex
	fail int
	sent []mailer.Message
}

func (s *recordingSender) Name() string { return "recording" }

func (s *recordingSender) Send(_ context.Context, msg mailer.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail > 0 {
		s.fail--
		return errors.New("provider unavailable")
	}
	s.sent = append(s.sent, msg)
	return nil
}

type testEnv struct {
	repos  *repository.Repos
	svcs   *Services
	clock  *fakeClock
	sender *recordingSender
}

func testConfig() *config.Config {
	return &config.Config{
		Mail: config.MailConfig{
			Provider:     "log",
			FromName:     "Robotics Lab",
			MaxAttempts:  3,
			BatchSize:    10,
			RetryBackoff: time.Minute,
			SendingLease: 10 * time.Minute,
		},
		Auth: config.AuthConfig{
			JWTSecret:  "test-secret",
			Issuer:     "robolab-test",
			SessionTTL: time.Hour,
		},
		Access: config.AccessConfig{
			DefaultRole: profile.RoleViewOnly,
			Allow: map[string]profile.Role{
				"root@example.edu": profile.RoleSuperAdmin,
			},
		},
		AppURL: "https://lab.example.edu",
	}
}

// newTestEnv wires all services over a fresh in-memory store. repos may be
// adjusted by tweak before services are built, e.g. to swap in a mock.
func newTestEnv(t *testing.T, cfg *config.Config, tweak func(*repository.Repos)) *testEnv {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}
	repos, err := memory.NewRepositories()
	require.NoError(t, err)
	if tweak != nil {
		tweak(repos)
	}

	clock := newFakeClock()
	sender := &recordingSender{}
	svcs := New(cfg, repos, sender)
	svcs.Auth.now = clock.Now
	svcs.Access.now = clock.Now
	svcs.Activity.now = clock.Now
	svcs.Submission.now = clock.Now
	svcs.Review.now = clock.Now
	svcs.Notification.now = clock.Now
	svcs.Delivery.now = clock.Now

	return &testEnv{repos: repos, svcs: svcs, clock: clock, sender: sender}
}

// seedProfile stores a profile with role and returns its principal.
func (e *testEnv) seedProfile(t *testing.T, email string, role profile.Role, notify bool) account.Principal {
	t.Helper()
	id := "acct-" + strings.SplitN(email, "@", 2)[0]
	_, err := e.repos.Profile.CreateProfileIfAbsent(context.Background(), &profile.Profile{
		ID:                id,
		Email:             email,
		Role:              role,
		EmailOnNewProject: notify,
		CreatedAt:         e.clock.Now(),
		UpdatedAt:         e.clock.Now(),
	})
	require.NoError(t, err)
	return account.Principal{AccountID: id, Email: email}
}

func validInput() submission.CreateSubmissionInput {
	return submission.CreateSubmissionInput{
		StudentName:       "  Asha Verma ",
		StudentEmail:      "Asha@Example.edu",
		RollNumber:        "221030",
		Branch:            "ECE",
		Year:              "3rd",
		Category:          "Autonomous Robots",
		ProjectTitle:      "Autonomous Line Follower",
		Description:       strings.Repeat("A robot that follows a line using IR sensors. ", 4),
		Duration:          "1-3 months",
		RequiredResources: []string{"Arduino & Development Kits", "Sensors & Actuators"},
	}
}

func (e *testEnv) submit(t *testing.T, title string) submission.Submission {
	t.Helper()
	in := validInput()
	in.ProjectTitle = title
	sub, err := e.svcs.Submission.Submit(context.Background(), in)
	require.NoError(t, err)
	e.clock.Advance(time.Minute)
	return sub
}

func ptrString(s string) *string { return &s }

func ptrInt(i int) *int { return &i }
