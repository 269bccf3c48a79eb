package submission

import (
	"time"

	"gorm.io/datatypes"
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusUnderReview Status = "under_review"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
	StatusCompleted   Status = "completed"
)

// Statuses lists every status in workflow order.
var Statuses = []Status{StatusPending, StatusUnderReview, StatusApproved, StatusRejected, StatusCompleted}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// RequiresComments reports whether a decision into s must carry faculty comments.
func (s Status) RequiresComments() bool {
	return s == StatusApproved || s == StatusRejected
}

// Label is the human form used in email subjects, e.g. "UNDER REVIEW".
func (s Status) Label() string {
	out := []rune(string(s))
	for i, r := range out {
		switch {
		case r == '_':
			out[i] = ' '
		case r >= 'a' && r <= 'z':
			out[i] = r - 'a' + 'A'
		}
	}
	return string(out)
}

// Submission is a student project proposal. Student and proposal fields are
// immutable once created; only the review fields change afterwards.
type Submission struct {
	ID            string  `json:"id" gorm:"primaryKey;size:36"`
	StudentName   string  `json:"student_name" gorm:"not null"`
	StudentEmail  string  `json:"student_email" gorm:"not null;index"`
	RollNumber    string  `json:"roll_number" gorm:"not null"`
	Branch        string  `json:"branch" gorm:"not null"`
	Year          string  `json:"year" gorm:"not null"`
	ContactNumber *string `json:"contact_number,omitempty"`

	IsTeamProject bool    `json:"is_team_project" gorm:"not null;default:false"`
	TeamSize      *int    `json:"team_size,omitempty"`
	TeamMembers   *string `json:"team_members,omitempty"`

	Category         string  `json:"category" gorm:"not null"`
	ProjectTitle     string  `json:"project_title" gorm:"not null"`
	Description      string  `json:"description" gorm:"type:text;not null"`
	ExpectedOutcomes *string `json:"expected_outcomes,omitempty" gorm:"type:text"`
	Duration         string  `json:"duration" gorm:"not null"`

	RequiredResources datatypes.JSONSlice[string] `json:"required_resources" gorm:"not null"`
	OtherResources    *string                     `json:"other_resources,omitempty"`

	Status          Status     `json:"status" gorm:"not null;default:'pending';index"`
	FacultyComments *string    `json:"faculty_comments,omitempty" gorm:"type:text"`
	ReviewedBy      *string    `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	Version         int        `json:"version" gorm:"not null;default:1"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Submission) TableName() string { return "projects" }

// Clone returns a deep copy so callers never share slices or pointers.
func (s Submission) Clone() Submission {
	out := s
	out.RequiredResources = append(datatypes.JSONSlice[string](nil), s.RequiredResources...)
	out.ContactNumber = cloneString(s.ContactNumber)
	out.TeamMembers = cloneString(s.TeamMembers)
	out.ExpectedOutcomes = cloneString(s.ExpectedOutcomes)
	out.OtherResources = cloneString(s.OtherResources)
	out.FacultyComments = cloneString(s.FacultyComments)
	out.ReviewedBy = cloneString(s.ReviewedBy)
	if s.TeamSize != nil {
		v := *s.TeamSize
		out.TeamSize = &v
	}
	if s.ReviewedAt != nil {
		v := *s.ReviewedAt
		out.ReviewedAt = &v
	}
	return out
}

// ReviewUpdate holds the only fields the review side is allowed to write.
type ReviewUpdate struct {
	Status          Status
	FacultyComments *string
	ReviewedBy      string
	ReviewedAt      time.Time
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
