package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/linskybing/robolab-go/internal/domain/notification"
	"github.com/linskybing/robolab-go/internal/domain/profile"
	"github.com/linskybing/robolab-go/internal/domain/submission"
	"github.com/linskybing/robolab-go/internal/repository"
	"github.com/linskybing/robolab-go/pkg/apperr"
	"gorm.io/datatypes"
)

type NotificationOptions struct {
	MaxAttempts int
	AppURL      string
	LabName     string
}

// NotificationService renders and queues outbound email. Delivery happens
// separately in DeliveryService.
type NotificationService struct {
	Repos     *repository.Repos
	opts      NotificationOptions
	templates *emailTemplates
	now       func() time.Time
}

func NewNotificationService(repos *repository.Repos, opts NotificationOptions) *NotificationService {
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = notification.DefaultMaxAttempts
	}
	if opts.LabName == "" {
		opts.LabName = "Robotics Lab"
	}
	return &NotificationService{
		Repos:     repos,
		opts:      opts,
		templates: parseEmailTemplates(),
		now:       utcNow,
	}
}

// Enqueue persists a pending row. No network call is made.
func (s *NotificationService) Enqueue(ctx context.Context, email notification.Email) (notification.Notification, error) {
	to := strings.TrimSpace(email.ToEmail)
	if to == "" {
		return notification.Notification{}, apperr.Invalid("to_email", "is required")
	}
	if strings.TrimSpace(email.Subject) == "" {
		return notification.Notification{}, apperr.Invalid("subject", "is required")
	}

	now := s.now()
	n := notification.Notification{
		ID:           uuid.NewString(),
		ToEmail:      to,
		Subject:      email.Subject,
		BodyHTML:     email.HTML,
		BodyText:     email.Text,
		Status:       notification.StatusPending,
		MaxAttempts:  s.opts.MaxAttempts,
		ScheduledFor: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if n.BodyText == "" {
		n.BodyText = HTMLToText(email.HTML)
	}
	if email.ToName != "" {
		name := email.ToName
		n.ToName = &name
	}
	if email.TemplateName != "" {
		tpl := email.TemplateName
		n.TemplateName = &tpl
	}
	if email.TemplateData != nil {
		raw, err := json.Marshal(email.TemplateData)
		if err != nil {
			return notification.Notification{}, fmt.Errorf("encode template data: %w", err)
		}
		n.TemplateData = datatypes.JSON(raw)
	}

	if err := s.Repos.Notification.QueueEmail(ctx, &n); err != nil {
		return notification.Notification{}, err
	}
	return n, nil
}

func (s *NotificationService) QueueSubmissionConfirmation(ctx context.Context, sub submission.Submission) error {
	data := map[string]any{
		"LabName":      s.opts.LabName,
		"StudentName":  sub.StudentName,
		"ProjectTitle": sub.ProjectTitle,
		"ShortID":      shortID(sub.ID),
		"Date":         longDate(sub.CreatedAt),
	}
	html, err := render(s.templates.confirmation, data)
	if err != nil {
		return err
	}
	_, err = s.Enqueue(ctx, notification.Email{
		ToEmail:      sub.StudentEmail,
		ToName:       sub.StudentName,
		Subject:      "Project Submission Confirmed - " + sub.ProjectTitle,
		HTML:         html,
		TemplateName: notification.TemplateConfirmation,
		TemplateData: map[string]any{
			"projectId":    sub.ID,
			"projectTitle": sub.ProjectTitle,
			"studentName":  sub.StudentName,
		},
	})
	return err
}

func (s *NotificationService) QueueStatusUpdate(ctx context.Context, sub submission.Submission) error {
	comments := ""
	if sub.FacultyComments != nil {
		comments = *sub.FacultyComments
	}
	data := map[string]any{
		"LabName":      s.opts.LabName,
		"StudentName":  sub.StudentName,
		"ProjectTitle": sub.ProjectTitle,
		"Status":       string(sub.Status),
		"StatusLabel":  sub.Status.Label(),
		"Comments":     comments,
	}
	html, err := render(s.templates.statusUpdate, data)
	if err != nil {
		return err
	}
	_, err = s.Enqueue(ctx, notification.Email{
		ToEmail:      sub.StudentEmail,
		ToName:       sub.StudentName,
		Subject:      fmt.Sprintf("Project %s - %s", sub.Status.Label(), sub.ProjectTitle),
		HTML:         html,
		TemplateName: notification.TemplateStatusUpdate,
		TemplateData: map[string]any{
			"projectId": sub.ID,
			"status":    sub.Status,
			"comments":  comments,
		},
	})
	return err
}

// QueueNewProjectAlerts mails every admin who opted into new-project
// notifications. Individual enqueue failures are logged and skipped.
func (s *NotificationService) QueueNewProjectAlerts(ctx context.Context, sub submission.Submission) error {
	admins, err := s.Repos.Profile.ListNewProjectRecipients(ctx)
	if err != nil {
		return err
	}
	for _, admin := range admins {
		if err := s.queueNewProject(ctx, admin, sub); err != nil {
			log.Printf("[notify] new project alert to %s failed: %v", admin.Email, err)
		}
	}
	return nil
}

func (s *NotificationService) queueNewProject(ctx context.Context, admin profile.Profile, sub submission.Submission) error {
	name := "Admin"
	if admin.FullName != nil && *admin.FullName != "" {
		name = *admin.FullName
	}
	data := map[string]any{
		"LabName":      s.opts.LabName,
		"AdminName":    name,
		"ProjectTitle": sub.ProjectTitle,
		"StudentName":  sub.StudentName,
		"Category":     sub.Category,
		"Date":         longDate(sub.CreatedAt),
		"DashboardURL": s.opts.AppURL + "/admin/dashboard",
	}
	html, err := render(s.templates.newProject, data)
	if err != nil {
		return err
	}
	_, err = s.Enqueue(ctx, notification.Email{
		ToEmail:      admin.Email,
		ToName:       name,
		Subject:      "New Project: " + sub.ProjectTitle,
		HTML:         html,
		TemplateName: notification.TemplateNewProject,
		TemplateData: map[string]any{
			"projectId":   sub.ID,
			"studentName": sub.StudentName,
			"category":    sub.Category,
		},
	})
	return err
}

func (s *NotificationService) ListNotifications(ctx context.Context, filter notification.ListFilter) ([]notification.Notification, error) {
	return s.Repos.Notification.ListNotifications(ctx, filter)
}

func utcNow() time.Time {
	return time.Now().UTC()
}
