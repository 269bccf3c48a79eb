package notification

import (
	"time"

	"gorm.io/datatypes"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusSending Status = "sending"
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
)

const DefaultMaxAttempts = 3

// Template names stored with each queued email.
const (
	TemplateConfirmation = "project_confirmation"
	TemplateStatusUpdate = "status_update"
	TemplateNewProject   = "new_project_admin"
)

// Notification is a queued outbound email. Rows are never deleted.
type Notification struct {
	ID           string         `json:"id" gorm:"primaryKey;size:36"`
	ToEmail      string         `json:"to_email" gorm:"not null"`
	ToName       *string        `json:"to_name,omitempty"`
	Subject      string         `json:"subject" gorm:"not null"`
	BodyHTML     string         `json:"body_html" gorm:"type:text;not null"`
	BodyText     string         `json:"body_text" gorm:"type:text"`
	TemplateName *string        `json:"template_name,omitempty"`
	TemplateData datatypes.JSON `json:"template_data,omitempty"`
	Status       Status         `json:"status" gorm:"not null;default:'pending';index"`
	Attempts     int            `json:"attempts" gorm:"not null;default:0"`
	MaxAttempts  int            `json:"max_attempts" gorm:"not null;default:3"`
	ErrorMessage *string        `json:"error_message,omitempty" gorm:"type:text"`
	ScheduledFor time.Time      `json:"scheduled_for" gorm:"not null;index"`
	SentAt       *time.Time     `json:"sent_at,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (Notification) TableName() string { return "email_queue" }

// Terminal reports whether no further delivery attempts will be made.
func (n Notification) Terminal() bool {
	return n.Status == StatusSent || n.Status == StatusFailed
}

// Retryable reports whether the row may be attempted again.
func (n Notification) Retryable() bool {
	return !n.Terminal() && n.Attempts < n.MaxAttempts
}

// RecordSuccess marks the row sent.
func (n *Notification) RecordSuccess(now time.Time) {
	n.Attempts++
	n.Status = StatusSent
	n.SentAt = &now
	n.ErrorMessage = nil
	n.UpdatedAt = now
}

// RecordFailure counts the attempt and either reschedules the row with a
// linear backoff or marks it failed once attempts reach MaxAttempts.
func (n *Notification) RecordFailure(err error, now time.Time, backoff time.Duration) {
	n.Attempts++
	msg := err.Error()
	n.ErrorMessage = &msg
	n.UpdatedAt = now
	if n.Attempts >= n.MaxAttempts {
		n.Status = StatusFailed
		return
	}
	n.Status = StatusPending
	n.ScheduledFor = now.Add(backoff * time.Duration(n.Attempts))
}

func (n Notification) Clone() Notification {
	out := n
	out.ToName = cloneString(n.ToName)
	out.TemplateName = cloneString(n.TemplateName)
	out.ErrorMessage = cloneString(n.ErrorMessage)
	out.TemplateData = append(datatypes.JSON(nil), n.TemplateData...)
	if n.SentAt != nil {
		v := *n.SentAt
		out.SentAt = &v
	}
	return out
}

// Email is the enqueue payload.
type Email struct {
	ToEmail      string
	ToName       string
	Subject      string
	HTML         string
	Text         string
	TemplateName string
	TemplateData map[string]any
}

// ListFilter narrows the admin queue view.
type ListFilter struct {
	Status *Status `form:"status"`
	Limit  int     `form:"limit"`
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
