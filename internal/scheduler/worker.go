package scheduler

import (
	"context"
	"log"
	"sync"

	"github.com/linskybing/robolab-go/internal/application"
	"github.com/robfig/cron/v3"
)

// Drainer is one pass over the mail queue.
type Drainer interface {
	DrainOnce(ctx context.Context) (application.DrainResult, error)
}

// SessionSweeper removes expired sessions.
type SessionSweeper interface {
	CleanupExpiredSessions(ctx context.Context) (int64, error)
}

// Worker runs queue delivery and session cleanup on cron schedules.
// Overlapping runs of the same job are skipped.
type Worker struct {
	drainer      Drainer
	sweeper      SessionSweeper
	mailSpec     string
	sweepSpec    string
	running      bool
	mu           sync.Mutex
	drainRunning bool
}

func NewWorker(drainer Drainer, sweeper SessionSweeper, mailSpec string) *Worker {
	if mailSpec == "" {
		mailSpec = "@every 30s"
	}
	return &Worker{
		drainer:   drainer,
		sweeper:   sweeper,
		mailSpec:  mailSpec,
		sweepSpec: "@hourly",
	}
}

// Start blocks until ctx is cancelled, then waits for running jobs to finish.
func (w *Worker) Start(ctx context.Context) error {
	c := cron.New()
	if _, err := c.AddFunc(w.mailSpec, func() { w.RunOnce(ctx) }); err != nil {
		return err
	}
	if w.sweeper != nil {
		if _, err := c.AddFunc(w.sweepSpec, func() { w.sweep(ctx) }); err != nil {
			return err
		}
	}

	w.setRunning(true)
	log.Printf("Mail worker started (schedule %q)", w.mailSpec)
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()
	w.setRunning(false)
	log.Println("Mail worker stopped")
	return nil
}

// RunOnce drains the queue once unless a drain is already in progress.
func (w *Worker) RunOnce(ctx context.Context) (application.DrainResult, bool) {
	w.mu.Lock()
	if w.drainRunning {
		w.mu.Unlock()
		return application.DrainResult{}, false
	}
	w.drainRunning = true
	w.mu.Unlock()
	defer func() {
		w.mu.Lock()
		w.drainRunning = false
		w.mu.Unlock()
	}()

	res, err := w.drainer.DrainOnce(ctx)
	if err != nil {
		log.Printf("Mail drain error: %v", err)
	}
	if res.Sent+res.Retried+res.Failed > 0 {
		log.Printf("Mail drain: sent=%d retried=%d failed=%d skipped=%d", res.Sent, res.Retried, res.Failed, res.Skipped)
	}
	return res, true
}

func (w *Worker) sweep(ctx context.Context) {
	n, err := w.sweeper.CleanupExpiredSessions(ctx)
	if err != nil {
		log.Printf("Session cleanup error: %v", err)
		return
	}
	if n > 0 {
		log.Printf("Removed %d expired sessions", n)
	}
}

// IsRunning reports whether Start is active.
func (w *Worker) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Worker) setRunning(v bool) {
	w.mu.Lock()
	w.running = v
	w.mu.Unlock()
}
