package submission

// CreateSubmissionInput is the student-facing proposal form.
type CreateSubmissionInput struct {
	StudentName   string  `json:"student_name" validate:"required,max=100" example:"Asha Verma"`
	StudentEmail  string  `json:"student_email" validate:"required,email" example:"asha@example.edu"`
	RollNumber    string  `json:"roll_number" validate:"required,max=50" example:"221030"`
	Branch        string  `json:"branch" validate:"required,branch" example:"ECE"`
	Year          string  `json:"year" validate:"required,study_year" example:"3rd"`
	ContactNumber *string `json:"contact_number" validate:"omitempty,max=20"`

	IsTeamProject bool    `json:"is_team_project"`
	TeamSize      *int    `json:"team_size" validate:"omitempty,min=1,max=5"`
	TeamMembers   *string `json:"team_members" validate:"omitempty,max=500"`

	Category         string  `json:"category" validate:"required,category" example:"Autonomous Robots"`
	ProjectTitle     string  `json:"project_title" validate:"required,max=100" example:"Autonomous Line Follower"`
	Description      string  `json:"description" validate:"required,min=100,max=1000"`
	ExpectedOutcomes *string `json:"expected_outcomes" validate:"omitempty,max=500"`
	Duration         string  `json:"duration" validate:"required,duration_band" example:"1-3 months"`

	RequiredResources []string `json:"required_resources" validate:"required,min=1,dive,resource"`
	OtherResources    *string  `json:"other_resources" validate:"omitempty,max=300"`
}

// ReviewSubmissionInput is the admin decision payload.
type ReviewSubmissionInput struct {
	Status   Status `json:"status" binding:"required" example:"approved"`
	Comments string `json:"comments" example:"Great work, proceed to build phase."`
	Version  *int   `json:"version,omitempty"`
}

// ListFilter narrows the dashboard list. Empty fields match everything.
type ListFilter struct {
	Status *Status
	Query  string
}

// Summary counts submissions by status.
type Summary struct {
	Total       int `json:"total"`
	Pending     int `json:"pending"`
	UnderReview int `json:"under_review"`
	Approved    int `json:"approved"`
	Rejected    int `json:"rejected"`
	Completed   int `json:"completed"`
}
