package handlers

import (
	"github.com/linskybing/robolab-go/internal/application"
)

type Handlers struct {
	Auth         *AuthHandler
	Submission   *SubmissionHandler
	Review       *ReviewHandler
	Activity     *ActivityHandler
	Notification *NotificationHandler
	Profile      *ProfileHandler
	Health       *HealthHandler
}

func New(svc *application.Services, secureCookies bool, ping Pinger) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(svc.Auth, svc.Access, secureCookies),
		Submission:   NewSubmissionHandler(svc.Submission),
		Review:       NewReviewHandler(svc.Review, svc.Dashboard),
		Activity:     NewActivityHandler(svc.Activity),
		Notification: NewNotificationHandler(svc.Notification),
		Profile:      NewProfileHandler(svc.Access),
		Health:       NewHealthHandler(ping),
	}
}
