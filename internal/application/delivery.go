package application

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/linskybing/robolab-go/internal/domain/notification"
	"github.com/linskybing/robolab-go/internal/mailer"
	"github.com/linskybing/robolab-go/internal/repository"
	"github.com/linskybing/robolab-go/pkg/apperr"
)

type DeliveryOptions struct {
	BatchSize    int
	RetryBackoff time.Duration
	SendingLease time.Duration
}

// DrainResult counts what one pass over the queue did.
type DrainResult struct {
	Sent    int   `json:"sent"`
	Retried int   `json:"retried"`
	Failed  int   `json:"failed"`
	Skipped int   `json:"skipped"`
	Reset   int64 `json:"reset"`
}

// DeliveryService moves queued rows through pending -> sending -> sent|failed.
type DeliveryService struct {
	Repos  *repository.Repos
	sender mailer.Sender
	opts   DeliveryOptions
	now    func() time.Time
}

func NewDeliveryService(repos *repository.Repos, sender mailer.Sender, opts DeliveryOptions) *DeliveryService {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 20
	}
	if opts.RetryBackoff <= 0 {
		opts.RetryBackoff = time.Minute
	}
	if opts.SendingLease <= 0 {
		opts.SendingLease = 10 * time.Minute
	}
	return &DeliveryService{Repos: repos, sender: sender, opts: opts, now: utcNow}
}

// Deliver makes one attempt for a row already claimed by the caller and
// records the outcome on it. The returned error is the delivery failure, if any.
func (s *DeliveryService) Deliver(ctx context.Context, n *notification.Notification) error {
	if n.Terminal() {
		return nil
	}
	msg := mailer.Message{
		ID:      n.ID,
		To:      n.ToEmail,
		Subject: n.Subject,
		HTML:    n.BodyHTML,
		Text:    n.BodyText,
	}
	if n.ToName != nil {
		msg.ToName = *n.ToName
	}

	sendErr := s.sender.Send(ctx, msg)
	if sendErr != nil {
		sendErr = &apperr.DeliveryError{Provider: s.sender.Name(), Err: sendErr}
		n.RecordFailure(sendErr, s.now(), s.opts.RetryBackoff)
	} else {
		n.RecordSuccess(s.now())
	}

	if err := s.Repos.Notification.SaveNotification(ctx, n); err != nil {
		return errors.Join(sendErr, err)
	}
	return sendErr
}

// DrainOnce releases stale claims, then claims and delivers up to one batch of due rows.
func (s *DeliveryService) DrainOnce(ctx context.Context) (DrainResult, error) {
	var res DrainResult

	reset, err := s.ResetStale(ctx)
	if err != nil {
		return res, err
	}
	res.Reset = reset

	due, err := s.Repos.Notification.ListDue(ctx, s.now(), s.opts.BatchSize)
	if err != nil {
		return res, err
	}

	for i := range due {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		n := due[i]
		claimed, err := s.Repos.Notification.Claim(ctx, n.ID, s.now())
		if err != nil {
			log.Printf("[mail] claim %s failed: %v", n.ID, err)
			res.Skipped++
			continue
		}
		if !claimed {
			res.Skipped++
			continue
		}
		n.Status = notification.StatusSending

		if err := s.Deliver(ctx, &n); err != nil {
			var de *apperr.DeliveryError
			if !errors.As(err, &de) {
				log.Printf("[mail] recording result for %s failed: %v", n.ID, err)
			} else {
				log.Printf("[mail] %s attempt %d/%d failed: %v", n.ID, n.Attempts, n.MaxAttempts, err)
			}
		}
		switch n.Status {
		case notification.StatusSent:
			res.Sent++
		case notification.StatusFailed:
			res.Failed++
		default:
			res.Retried++
		}
	}
	return res, nil
}

// ResetStale puts rows left in sending past the lease back to pending.
func (s *DeliveryService) ResetStale(ctx context.Context) (int64, error) {
	now := s.now()
	n, err := s.Repos.Notification.ResetStale(ctx, now.Add(-s.opts.SendingLease), now)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Printf("[mail] released %d stale sending rows", n)
	}
	return n, nil
}
