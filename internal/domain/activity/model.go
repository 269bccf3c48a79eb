package activity

import (
	"time"

	"gorm.io/datatypes"
)

const EntitySubmission = "project"
const EntityProfile = "profile"

// Entry is one append-only audit record of an admin action.
type Entry struct {
	ID         string         `json:"id" gorm:"primaryKey;size:36"`
	AdminID    string         `json:"admin_id" gorm:"not null;index"`
	Action     string         `json:"action" gorm:"not null"`
	EntityType string         `json:"entity_type" gorm:"not null;index"`
	EntityID   *string        `json:"entity_id,omitempty" gorm:"index"`
	Details    datatypes.JSON `json:"details,omitempty"`
	CreatedAt  time.Time      `json:"created_at" gorm:"index"`
}

func (Entry) TableName() string { return "activity_logs" }

func (e Entry) Clone() Entry {
	out := e
	if e.EntityID != nil {
		v := *e.EntityID
		out.EntityID = &v
	}
	out.Details = append(datatypes.JSON(nil), e.Details...)
	return out
}

// QueryParams filters List. Zero values are ignored.
type QueryParams struct {
	AdminID    string     `form:"admin_id"`
	EntityType string     `form:"entity_type"`
	Action     string     `form:"action"`
	StartTime  *time.Time `form:"start_time" time_format:"2006-01-02T15:04:05Z07:00"`
	EndTime    *time.Time `form:"end_time" time_format:"2006-01-02T15:04:05Z07:00"`
	Limit      int        `form:"limit"`
	Offset     int        `form:"offset"`
}

func (q QueryParams) Matches(e Entry) bool {
	if q.AdminID != "" && e.AdminID != q.AdminID {
		return false
	}
	if q.EntityType != "" && e.EntityType != q.EntityType {
		return false
	}
	if q.Action != "" && e.Action != q.Action {
		return false
	}
	if q.StartTime != nil && e.CreatedAt.Before(*q.StartTime) {
		return false
	}
	if q.EndTime != nil && e.CreatedAt.After(*q.EndTime) {
		return false
	}
	return true
}
