package application

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/linskybing/robolab-go/internal/domain/notification"
	"github.com/linskybing/robolab-go/internal/domain/profile"
	"github.com/linskybing/robolab-go/internal/domain/submission"
	"github.com/linskybing/robolab-go/internal/repository"
	"github.com/linskybing/robolab-go/internal/repository/mock"
	"github.com/linskybing/robolab-go/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --------------------- Submit ---------------------
func TestSubmit_Success(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	ctx := context.Background()

	sub, err := env.svcs.Submission.Submit(ctx, validInput())
	require.NoError(t, err)

	assert.NotEmpty(t, sub.ID)
	assert.Equal(t, submission.StatusPending, sub.Status)
	assert.Equal(t, "Asha Verma", sub.StudentName)
	assert.Equal(t, "asha@example.edu", sub.StudentEmail)
	assert.Equal(t, 1, sub.Version)
	assert.Nil(t, sub.ReviewedBy)

	stored, err := env.repos.Submission.GetSubmissionByID(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, sub.ProjectTitle, stored.ProjectTitle)

	queued, err := env.repos.Notification.ListNotifications(ctx, notification.ListFilter{})
	require.NoError(t, err)
	require.Len(t, queued, 1)
	assert.Equal(t, "asha@example.edu", queued[0].ToEmail)
	assert.Equal(t, "Project Submission Confirmed - Autonomous Line Follower", queued[0].Subject)
	assert.Equal(t, notification.StatusPending, queued[0].Status)
	assert.Equal(t, 0, queued[0].Attempts)
	assert.Contains(t, queued[0].BodyText, "pending faculty review")
	assert.Empty(t, env.sender.sent, "enqueue must not deliver")
}

func TestSubmit_NormalizesTeamAndResources(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	in := validInput()
	in.IsTeamProject = false
	in.TeamSize = ptrInt(3)
	in.TeamMembers = ptrString("Ravi, Meera")
	in.RequiredResources = []string{"Drone", "Drone", "3D Printer"}
	in.OtherResources = ptrString("oscilloscope")

	sub, err := env.svcs.Submission.Submit(context.Background(), in)
	require.NoError(t, err)
	assert.Nil(t, sub.TeamSize)
	assert.Nil(t, sub.TeamMembers)
	assert.Equal(t, []string{"Drone", "3D Printer"}, []string(sub.RequiredResources))
	assert.Nil(t, sub.OtherResources)
}

func TestSubmit_KeepsOtherResourcesWhenOtherSelected(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	in := validInput()
	in.IsTeamProject = true
	in.TeamSize = ptrInt(3)
	in.TeamMembers = ptrString("Ravi, Meera")
	in.RequiredResources = []string{"Other"}
	in.OtherResources = ptrString("  oscilloscope ")

	sub, err := env.svcs.Submission.Submit(context.Background(), in)
	require.NoError(t, err)
	require.NotNil(t, sub.OtherResources)
	assert.Equal(t, "oscilloscope", *sub.OtherResources)
	assert.Equal(t, 3, *sub.TeamSize)
}

func TestSubmit_ValidationErrors(t *testing.T) {
	cases := []struct {
		name  string
		mut   func(*submission.CreateSubmissionInput)
		field string
	}{
		{"short description", func(in *submission.CreateSubmissionInput) { in.Description = "too short" }, "description"},
		{"description one under minimum", func(in *submission.CreateSubmissionInput) { in.Description = strings.Repeat("x", 99) }, "description"},
		{"padded description under minimum", func(in *submission.CreateSubmissionInput) { in.Description = "  " + strings.Repeat("x", 99) + "  " }, "description"},
		{"long description", func(in *submission.CreateSubmissionInput) { in.Description = strings.Repeat("x", 1001) }, "description"},
		{"no resources", func(in *submission.CreateSubmissionInput) { in.RequiredResources = nil }, "required_resources"},
		{"empty resources", func(in *submission.CreateSubmissionInput) { in.RequiredResources = []string{} }, "required_resources"},
		{"unknown resource", func(in *submission.CreateSubmissionInput) { in.RequiredResources = []string{"Laser"} }, "required_resources"},
		{"bad email", func(in *submission.CreateSubmissionInput) { in.StudentEmail = "not-an-email" }, "student_email"},
		{"blank name", func(in *submission.CreateSubmissionInput) { in.StudentName = "   " }, "student_name"},
		{"unknown branch", func(in *submission.CreateSubmissionInput) { in.Branch = "Civil" }, "branch"},
		{"unknown year", func(in *submission.CreateSubmissionInput) { in.Year = "5th" }, "year"},
		{"unknown category", func(in *submission.CreateSubmissionInput) { in.Category = "Space" }, "category"},
		{"unknown duration", func(in *submission.CreateSubmissionInput) { in.Duration = "forever" }, "duration"},
		{"title too long", func(in *submission.CreateSubmissionInput) { in.ProjectTitle = strings.Repeat("t", 101) }, "project_title"},
		{"team too large", func(in *submission.CreateSubmissionInput) {
			in.IsTeamProject = true
			in.TeamSize = ptrInt(6)
		}, "team_size"},
		{"team size zero", func(in *submission.CreateSubmissionInput) {
			in.IsTeamProject = true
			in.TeamSize = ptrInt(0)
		}, "team_size"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t, nil, nil)
			in := validInput()
			tc.mut(&in)

			_, err := env.svcs.Submission.Submit(context.Background(), in)
			var ve *apperr.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Fields, tc.field)

			all, err := env.repos.Submission.ListSubmissions(context.Background(), nil)
			require.NoError(t, err)
			assert.Empty(t, all)
			queued, err := env.repos.Notification.ListNotifications(context.Background(), notification.ListFilter{})
			require.NoError(t, err)
			assert.Empty(t, queued)
		})
	}
}

func TestSubmit_DescriptionLengthBoundsInclusive(t *testing.T) {
	for _, n := range []int{100, 1000} {
		t.Run(strconv.Itoa(n), func(t *testing.T) {
			env := newTestEnv(t, nil, nil)
			in := validInput()
			in.Description = strings.Repeat("x", n)

			sub, err := env.svcs.Submission.Submit(context.Background(), in)
			require.NoError(t, err)
			assert.Equal(t, submission.StatusPending, sub.Status)
			assert.Len(t, sub.Description, n)

			queued, err := env.repos.Notification.ListNotifications(context.Background(), notification.ListFilter{})
			require.NoError(t, err)
			assert.NotEmpty(t, queued)
		})
	}
}

func TestSubmit_AlertsOptedInAdmins(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	env.seedProfile(t, "head@example.edu", profile.RoleAdmin, true)
	env.seedProfile(t, "quiet@example.edu", profile.RoleAdmin, false)
	env.seedProfile(t, "prof@example.edu", profile.RoleFaculty, true)

	sub := env.submit(t, "Quadruped Gait")

	queued, err := env.repos.Notification.ListNotifications(context.Background(), notification.ListFilter{})
	require.NoError(t, err)
	require.Len(t, queued, 2)

	var alert *notification.Notification
	for i := range queued {
		if queued[i].ToEmail == "head@example.edu" {
			alert = &queued[i]
		}
	}
	require.NotNil(t, alert)
	assert.Equal(t, "New Project: "+sub.ProjectTitle, alert.Subject)
	assert.Contains(t, alert.BodyHTML, "https://lab.example.edu/admin/dashboard")
}

func TestSubmit_EnqueueFailureKeepsSubmission(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockNotify := mock.NewMockNotificationRepo(ctrl)
	mockNotify.EXPECT().QueueEmail(gomock.Any(), gomock.Any()).Return(apperr.Store("queue email", errors.New("db down")))

	env := newTestEnv(t, nil, func(r *repository.Repos) { r.Notification = mockNotify })

	sub, err := env.svcs.Submission.Submit(context.Background(), validInput())
	require.NoError(t, err)

	stored, err := env.repos.Submission.GetSubmissionByID(context.Background(), sub.ID)
	require.NoError(t, err)
	assert.Equal(t, submission.StatusPending, stored.Status)
}

func TestSubmit_StoreFailureIsTransient(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSub := mock.NewMockSubmissionRepo(ctrl)
	mockSub.EXPECT().CreateSubmission(gomock.Any(), gomock.Any()).Return(apperr.Store("create submission", errors.New("connection reset")))

	env := newTestEnv(t, nil, func(r *repository.Repos) { r.Submission = mockSub })

	_, err := env.svcs.Submission.Submit(context.Background(), validInput())
	var se *apperr.StoreError
	assert.ErrorAs(t, err, &se)

	queued, err := env.repos.Notification.ListNotifications(context.Background(), notification.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, queued)
}
