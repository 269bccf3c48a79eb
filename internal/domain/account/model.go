package account

import (
	"strings"
	"time"
)

// Account is a credential record. Its id doubles as the profile id.
type Account struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Account) TableName() string { return "accounts" }

type Session struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	AccountID string    `json:"account_id" gorm:"not null;index"`
	Email     string    `json:"email" gorm:"not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (Session) TableName() string { return "sessions" }

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// NormalizeEmail lower-cases and trims an address for lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email" example:"admin@example.edu"`
	Password string `json:"password" binding:"required" example:"password123"`
}

type SessionDTO struct {
	Token     string    `json:"token,omitempty"`
	SessionID string    `json:"session_id"`
	AccountID string    `json:"account_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
	Role      string    `json:"role,omitempty"`
	IsAdmin   bool      `json:"is_admin"`
}

// Principal is the authenticated identity resolved from a session.
type Principal struct {
	AccountID string
	Email     string
	SessionID string
}
