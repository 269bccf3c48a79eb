package submission

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPermissivePolicyAllowsEveryPair(t *testing.T) {
	p := PermissivePolicy()
	for _, from := range Statuses {
		for _, to := range Statuses {
			assert.True(t, p.Allowed(from, to), "%s -> %s", from, to)
		}
	}
	assert.False(t, p.Allowed(StatusPending, Status("archived")))
}

func TestStrictPolicy(t *testing.T) {
	p := StrictPolicy()

	assert.True(t, p.Allowed(StatusPending, StatusUnderReview))
	assert.True(t, p.Allowed(StatusUnderReview, StatusApproved))
	assert.True(t, p.Allowed(StatusApproved, StatusCompleted))
	assert.True(t, p.Allowed(StatusApproved, StatusApproved))

	assert.False(t, p.Allowed(StatusPending, StatusCompleted))
	assert.False(t, p.Allowed(StatusRejected, StatusApproved))
	assert.False(t, p.Allowed(StatusRejected, StatusUnderReview))
	assert.True(t, p.Allowed(StatusRejected, StatusRejected))
	assert.False(t, p.Allowed(StatusCompleted, StatusPending))
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "UNDER REVIEW", StatusUnderReview.Label())
	assert.Equal(t, "APPROVED", StatusApproved.Label())
	assert.True(t, StatusRejected.RequiresComments())
	assert.False(t, StatusUnderReview.RequiresComments())
}

func TestSummarizeAndFilter(t *testing.T) {
	subs := []Submission{
		{ProjectTitle: "Autonomous Line Follower", StudentName: "Asha", RollNumber: "221030", StudentEmail: "asha@x.edu", Status: StatusPending},
		{ProjectTitle: "Quadruped Gait", StudentName: "Ravi", RollNumber: "221031", StudentEmail: "ravi@x.edu", Status: StatusApproved},
		{ProjectTitle: "Drone Mapping", StudentName: "Meera", RollNumber: "221032", StudentEmail: "meera@x.edu", Status: StatusUnderReview},
		{ProjectTitle: "Gripper", StudentName: "Karan", RollNumber: "221033", StudentEmail: "karan@x.edu", Status: StatusRejected},
	}

	sum := Summarize(subs)
	assert.Equal(t, Summary{Total: 4, Pending: 1, UnderReview: 1, Approved: 1, Rejected: 1}, sum)

	approved := StatusApproved
	assert.True(t, ListFilter{Status: &approved}.Matches(subs[1]))
	assert.False(t, ListFilter{Status: &approved}.Matches(subs[0]))

	assert.True(t, ListFilter{Query: "LINE"}.Matches(subs[0]))
	assert.True(t, ListFilter{Query: "221032"}.Matches(subs[2]))
	assert.True(t, ListFilter{Query: "karan@"}.Matches(subs[3]))
	assert.False(t, ListFilter{Query: "nothing"}.Matches(subs[3]))
}
