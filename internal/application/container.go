package application

import (
	"github.com/linskybing/robolab-go/internal/auth"
	"github.com/linskybing/robolab-go/internal/config"
	"github.com/linskybing/robolab-go/internal/domain/submission"
	"github.com/linskybing/robolab-go/internal/mailer"
	"github.com/linskybing/robolab-go/internal/repository"
)

type Services struct {
	Auth         *AuthService
	Access       *AccessService
	Activity     *ActivityService
	Submission   *SubmissionService
	Review       *ReviewService
	Dashboard    *DashboardService
	Notification *NotificationService
	Delivery     *DeliveryService
}

// New wires every service over one gateway and one mail backend.
func New(cfg *config.Config, repos *repository.Repos, sender mailer.Sender) *Services {
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer)

	policy := submission.PermissivePolicy()
	if cfg.StrictTransitions {
		policy = submission.StrictPolicy()
	}

	activity := NewActivityService(repos)
	access := NewAccessService(repos, activity, AccessOptions{
		Allow:              cfg.Access.Allow,
		DefaultRole:        cfg.Access.DefaultRole,
		ReviewAllowFaculty: cfg.Access.ReviewAllowFaculty,
	})
	notify := NewNotificationService(repos, NotificationOptions{
		MaxAttempts: cfg.Mail.MaxAttempts,
		AppURL:      cfg.AppURL,
		LabName:     cfg.Mail.FromName,
	})

	return &Services{
		Auth:         NewAuthService(repos, tokens, cfg.Auth.SessionTTL),
		Access:       access,
		Activity:     activity,
		Submission:   NewSubmissionService(repos, notify),
		Review:       NewReviewService(repos, access, activity, notify, policy),
		Dashboard:    NewDashboardService(repos),
		Notification: notify,
		Delivery: NewDeliveryService(repos, sender, DeliveryOptions{
			BatchSize:    cfg.Mail.BatchSize,
			RetryBackoff: cfg.Mail.RetryBackoff,
			SendingLease: cfg.Mail.SendingLease,
		}),
	}
}
