package notification

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecordFailureRetriesThenFails(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	n := Notification{Status: StatusSending, MaxAttempts: 3, ScheduledFor: now}

	n.RecordFailure(errors.New("smtp down"), now, time.Minute)
	assert.Equal(t, StatusPending, n.Status)
	assert.Equal(t, 1, n.Attempts)
	assert.Equal(t, now.Add(time.Minute), n.ScheduledFor)
	assert.True(t, n.Retryable())

	n.RecordFailure(errors.New("smtp down"), now, time.Minute)
	assert.Equal(t, now.Add(2*time.Minute), n.ScheduledFor)

	n.RecordFailure(errors.New("smtp down"), now, time.Minute)
	assert.Equal(t, StatusFailed, n.Status)
	assert.Equal(t, 3, n.Attempts)
	assert.False(t, n.Retryable())
	if assert.NotNil(t, n.ErrorMessage) {
		assert.Equal(t, "smtp down", *n.ErrorMessage)
	}
}

func TestRecordSuccess(t *testing.T) {
	now := time.Now()
	msg := "previous"
	n := Notification{Status: StatusSending, MaxAttempts: 3, Attempts: 1, ErrorMessage: &msg}

	n.RecordSuccess(now)
	assert.Equal(t, StatusSent, n.Status)
	assert.Equal(t, 2, n.Attempts)
	assert.Nil(t, n.ErrorMessage)
	assert.True(t, n.Terminal())
	assert.False(t, n.Retryable())
}
