// Package repotest holds behavior checks shared by every persistence gateway.
package repotest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/linskybing/robolab-go/internal/domain/account"
	"github.com/linskybing/robolab-go/internal/domain/activity"
	"github.com/linskybing/robolab-go/internal/domain/notification"
	"github.com/linskybing/robolab-go/internal/domain/profile"
	"github.com/linskybing/robolab-go/internal/domain/submission"
	"github.com/linskybing/robolab-go/internal/repository"
	"github.com/linskybing/robolab-go/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

// Factory returns an empty gateway for one subtest.
type Factory func(t *testing.T) *repository.Repos

var base = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func Run(t *testing.T, newRepos Factory) {
	t.Run("submissions", func(t *testing.T) { testSubmissions(t, newRepos(t)) })
	t.Run("review versioning", func(t *testing.T) { testReviewVersioning(t, newRepos(t)) })
	t.Run("profiles", func(t *testing.T) { testProfiles(t, newRepos(t)) })
	t.Run("accounts and sessions", func(t *testing.T) { testAccounts(t, newRepos(t)) })
	t.Run("notification claim", func(t *testing.T) { testNotificationClaim(t, newRepos(t)) })
	t.Run("notification reset stale", func(t *testing.T) { testResetStale(t, newRepos(t)) })
	t.Run("activity", func(t *testing.T) { testActivity(t, newRepos(t)) })
}

func newSubmission(title string, created time.Time, status submission.Status) *submission.Submission {
	return &submission.Submission{
		ID:                uuid.NewString(),
		StudentName:       "Asha Verma",
		StudentEmail:      "asha@example.edu",
		RollNumber:        "221030",
		Branch:            "ECE",
		Year:              "3rd",
		Category:          "Autonomous Robots",
		ProjectTitle:      title,
		Description:       "A robot",
		Duration:          "1-3 months",
		RequiredResources: datatypes.JSONSlice[string]{"Sensors & Actuators"},
		Status:            status,
		Version:           1,
		CreatedAt:         created,
		UpdatedAt:         created,
	}
}

func testSubmissions(t *testing.T, repos *repository.Repos) {
	ctx := context.Background()
	older := newSubmission("Older", base, submission.StatusPending)
	newer := newSubmission("Newer", base.Add(time.Hour), submission.StatusApproved)
	require.NoError(t, repos.Submission.CreateSubmission(ctx, older))
	require.NoError(t, repos.Submission.CreateSubmission(ctx, newer))

	got, err := repos.Submission.GetSubmissionByID(ctx, older.ID)
	require.NoError(t, err)
	assert.Equal(t, "Older", got.ProjectTitle)
	assert.Equal(t, []string{"Sensors & Actuators"}, []string(got.RequiredResources))

	_, err = repos.Submission.GetSubmissionByID(ctx, "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	all, err := repos.Submission.ListSubmissions(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, newer.ID, all[0].ID)
	assert.Equal(t, older.ID, all[1].ID)

	pending := submission.StatusPending
	filtered, err := repos.Submission.ListSubmissions(ctx, &pending)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, older.ID, filtered[0].ID)
}

func testReviewVersioning(t *testing.T, repos *repository.Repos) {
	ctx := context.Background()
	sub := newSubmission("Arm", base, submission.StatusPending)
	require.NoError(t, repos.Submission.CreateSubmission(ctx, sub))

	comments := "Looks good"
	reviewedAt := base.Add(time.Hour)
	update := submission.ReviewUpdate{
		Status:          submission.StatusApproved,
		FacultyComments: &comments,
		ReviewedBy:      "reviewer-1",
		ReviewedAt:      reviewedAt,
	}
	v1 := 1
	updated, err := repos.Submission.ApplyReview(ctx, sub.ID, update, &v1)
	require.NoError(t, err)
	assert.Equal(t, submission.StatusApproved, updated.Status)
	assert.Equal(t, 2, updated.Version)
	require.NotNil(t, updated.ReviewedBy)
	assert.Equal(t, "reviewer-1", *updated.ReviewedBy)
	assert.Equal(t, "Arm", updated.ProjectTitle)

	update.Status = submission.StatusCompleted
	_, err = repos.Submission.ApplyReview(ctx, sub.ID, update, &v1)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	stored, err := repos.Submission.GetSubmissionByID(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, submission.StatusApproved, stored.Status)

	updated, err = repos.Submission.ApplyReview(ctx, sub.ID, update, nil)
	require.NoError(t, err)
	assert.Equal(t, submission.StatusCompleted, updated.Status)
	assert.Equal(t, 3, updated.Version)

	_, err = repos.Submission.ApplyReview(ctx, "missing", update, nil)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func testProfiles(t *testing.T, repos *repository.Repos) {
	ctx := context.Background()
	admin := &profile.Profile{ID: "p-admin", Email: "admin@example.edu", Role: profile.RoleAdmin, EmailOnNewProject: true, CreatedAt: base, UpdatedAt: base}
	viewer := &profile.Profile{ID: "p-viewer", Email: "viewer@example.edu", Role: profile.RoleViewOnly, CreatedAt: base, UpdatedAt: base}

	got, err := repos.Profile.CreateProfileIfAbsent(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, profile.RoleAdmin, got.Role)
	_, err = repos.Profile.CreateProfileIfAbsent(ctx, viewer)
	require.NoError(t, err)

	again := *admin
	again.Role = profile.RoleViewOnly
	got, err = repos.Profile.CreateProfileIfAbsent(ctx, &again)
	require.NoError(t, err)
	assert.Equal(t, profile.RoleAdmin, got.Role, "existing profile must not be overwritten")

	recipients, err := repos.Profile.ListNewProjectRecipients(ctx)
	require.NoError(t, err)
	require.Len(t, recipients, 1)
	assert.Equal(t, "p-admin", recipients[0].ID)

	updated, err := repos.Profile.UpdateRole(ctx, "p-viewer", profile.RoleFaculty, base.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, profile.RoleFaculty, updated.Role)

	_, err = repos.Profile.UpdateRole(ctx, "missing", profile.RoleFaculty, base)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	require.NoError(t, repos.Profile.SetEmailOnNewProject(ctx, "p-admin", false, base.Add(time.Minute)))
	recipients, err = repos.Profile.ListNewProjectRecipients(ctx)
	require.NoError(t, err)
	assert.Empty(t, recipients)

	all, err := repos.Profile.ListProfiles(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "admin@example.edu", all[0].Email)
}

func testAccounts(t *testing.T, repos *repository.Repos) {
	ctx := context.Background()
	acct := &account.Account{ID: "a-1", Email: "admin@example.edu", PasswordHash: "hash", CreatedAt: base, UpdatedAt: base}
	require.NoError(t, repos.Account.CreateAccount(ctx, acct))

	dup := &account.Account{ID: "a-2", Email: "admin@example.edu", PasswordHash: "hash", CreatedAt: base, UpdatedAt: base}
	assert.ErrorIs(t, repos.Account.CreateAccount(ctx, dup), apperr.ErrConflict)

	got, err := repos.Account.GetAccountByEmail(ctx, "admin@example.edu")
	require.NoError(t, err)
	assert.Equal(t, "a-1", got.ID)

	require.NoError(t, repos.Account.UpdatePassword(ctx, "a-1", "new-hash", base.Add(time.Minute)))
	got, err = repos.Account.GetAccountByID(ctx, "a-1")
	require.NoError(t, err)
	assert.Equal(t, "new-hash", got.PasswordHash)

	live := &account.Session{ID: "s-live", AccountID: "a-1", Email: acct.Email, ExpiresAt: base.Add(time.Hour), CreatedAt: base}
	dead := &account.Session{ID: "s-dead", AccountID: "a-1", Email: acct.Email, ExpiresAt: base.Add(-time.Hour), CreatedAt: base}
	require.NoError(t, repos.Session.CreateSession(ctx, live))
	require.NoError(t, repos.Session.CreateSession(ctx, dead))

	n, err := repos.Session.DeleteExpiredSessions(ctx, base)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = repos.Session.GetSessionByID(ctx, "s-dead")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	require.NoError(t, repos.Session.DeleteSession(ctx, "s-live"))
	_, err = repos.Session.GetSessionByID(ctx, "s-live")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func newNotification(scheduled time.Time) *notification.Notification {
	return &notification.Notification{
		ID:           uuid.NewString(),
		ToEmail:      "asha@example.edu",
		Subject:      "Hello",
		BodyHTML:     "<p>Hello</p>",
		BodyText:     "Hello",
		Status:       notification.StatusPending,
		MaxAttempts:  3,
		ScheduledFor: scheduled,
		CreatedAt:    scheduled,
		UpdatedAt:    scheduled,
	}
}

func testNotificationClaim(t *testing.T, repos *repository.Repos) {
	ctx := context.Background()
	due := newNotification(base)
	later := newNotification(base.Add(time.Hour))
	require.NoError(t, repos.Notification.QueueEmail(ctx, due))
	require.NoError(t, repos.Notification.QueueEmail(ctx, later))

	rows, err := repos.Notification.ListDue(ctx, base.Add(time.Minute), 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, due.ID, rows[0].ID)

	ok, err := repos.Notification.Claim(ctx, due.ID, base.Add(time.Minute))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repos.Notification.Claim(ctx, due.ID, base.Add(time.Minute))
	require.NoError(t, err)
	assert.False(t, ok, "a claimed row cannot be claimed twice")

	claimed, err := repos.Notification.GetNotificationByID(ctx, due.ID)
	require.NoError(t, err)
	assert.Equal(t, notification.StatusSending, claimed.Status)

	claimed.RecordSuccess(base.Add(2 * time.Minute))
	require.NoError(t, repos.Notification.SaveNotification(ctx, &claimed))

	sent := notification.StatusSent
	list, err := repos.Notification.ListNotifications(ctx, notification.ListFilter{Status: &sent})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].Attempts)
	assert.NotNil(t, list[0].SentAt)
}

func testResetStale(t *testing.T, repos *repository.Repos) {
	ctx := context.Background()
	n := newNotification(base)
	require.NoError(t, repos.Notification.QueueEmail(ctx, n))
	ok, err := repos.Notification.Claim(ctx, n.ID, base)
	require.NoError(t, err)
	require.True(t, ok)

	reset, err := repos.Notification.ResetStale(ctx, base.Add(-time.Minute), base.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(0), reset, "fresh claims stay leased")

	reset, err = repos.Notification.ResetStale(ctx, base.Add(time.Minute), base.Add(2*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), reset)

	got, err := repos.Notification.GetNotificationByID(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, notification.StatusPending, got.Status)
}

func testActivity(t *testing.T, repos *repository.Repos) {
	ctx := context.Background()
	subID := "sub-1"
	for i, action := range []string{"Updated project status to approved", "Changed role to faculty", "Updated project status to rejected"} {
		entityType := activity.EntitySubmission
		if i == 1 {
			entityType = activity.EntityProfile
		}
		require.NoError(t, repos.Activity.CreateEntry(ctx, &activity.Entry{
			ID:         uuid.NewString(),
			AdminID:    "admin-1",
			Action:     action,
			EntityType: entityType,
			EntityID:   &subID,
			Details:    datatypes.JSON(`{"status":"x"}`),
			CreatedAt:  base.Add(time.Duration(i) * time.Hour),
		}))
	}

	entries, err := repos.Activity.ListEntries(ctx, activity.QueryParams{EntityType: activity.EntitySubmission})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Updated project status to rejected", entries[0].Action)

	start := base.Add(30 * time.Minute)
	entries, err = repos.Activity.ListEntries(ctx, activity.QueryParams{StartTime: &start, Limit: 1})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Updated project status to rejected", entries[0].Action)

	entries, err = repos.Activity.ListEntries(ctx, activity.QueryParams{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Changed role to faculty", entries[0].Action)
}
