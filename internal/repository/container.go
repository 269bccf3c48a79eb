package repository

import (
	"gorm.io/gorm"
)

// Repos is the persistence gateway handed to every service. The gorm-backed
// set comes from NewRepositories; the in-memory set from memory.NewRepositories.
type Repos struct {
	Submission   SubmissionRepo
	Profile      ProfileRepo
	Account      AccountRepo
	Session      SessionRepo
	Notification NotificationRepo
	Activity     ActivityRepo
}

func NewRepositories(db *gorm.DB) *Repos {
	return &Repos{
		Submission:   NewSubmissionRepo(db),
		Profile:      NewProfileRepo(db),
		Account:      NewAccountRepo(db),
		Session:      NewSessionRepo(db),
		Notification: NewNotificationRepo(db),
		Activity:     NewActivityRepo(db),
	}
}
