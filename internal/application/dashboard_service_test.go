package application

import (
	"context"
	"testing"

	"github.com/linskybing/robolab-go/internal/domain/activity"
	"github.com/linskybing/robolab-go/internal/domain/profile"
	"github.com/linskybing/robolab-go/internal/domain/submission"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard_ListAndSummarize(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	admin := env.seedProfile(t, "head@example.edu", profile.RoleAdmin, false)
	ctx := context.Background()

	first := env.submit(t, "Line Follower")
	second := env.submit(t, "Quadruped Gait")
	third := env.submit(t, "Drone Mapping")

	_, err := env.svcs.Review.Review(ctx, ReviewInput{SubmissionID: second.ID, Status: submission.StatusApproved, Comments: "ok", Reviewer: admin})
	require.NoError(t, err)

	all, err := env.svcs.Dashboard.ListSubmissions(ctx, submission.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{third.ID, second.ID, first.ID}, []string{all[0].ID, all[1].ID, all[2].ID})

	approved := submission.StatusApproved
	only, err := env.svcs.Dashboard.ListSubmissions(ctx, submission.ListFilter{Status: &approved})
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, second.ID, only[0].ID)

	found, err := env.svcs.Dashboard.ListSubmissions(ctx, submission.ListFilter{Query: "drone"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, third.ID, found[0].ID)

	sum := env.svcs.Dashboard.Summarize(all)
	assert.Equal(t, submission.Summary{Total: 3, Pending: 2, Approved: 1}, sum)

	board, err := env.svcs.Dashboard.Load(ctx, submission.ListFilter{Query: "nothing-matches"})
	require.NoError(t, err)
	assert.Equal(t, 3, board.Summary.Total)
	assert.Empty(t, board.Submissions)
}

func TestActivity_ListFilters(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	ctx := context.Background()

	_, err := env.svcs.Activity.Record(ctx, "admin-a", "Updated project status to approved", activity.EntitySubmission, "p1", map[string]any{"status": "approved"})
	require.NoError(t, err)
	env.clock.Advance(1)
	_, err = env.svcs.Activity.Record(ctx, "admin-b", "Updated role to faculty", activity.EntityProfile, "u1", nil)
	require.NoError(t, err)

	byAdmin, err := env.svcs.Activity.List(ctx, activity.QueryParams{AdminID: "admin-a"})
	require.NoError(t, err)
	require.Len(t, byAdmin, 1)
	assert.Equal(t, "p1", *byAdmin[0].EntityID)

	paged, err := env.svcs.Activity.List(ctx, activity.QueryParams{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, "admin-a", paged[0].AdminID)
}
