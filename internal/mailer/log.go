package mailer

import (
	"context"
	"log"
)

// LogSender writes messages to the log instead of delivering them.
type LogSender struct{}

func NewLogSender() *LogSender { return &LogSender{} }

func (LogSender) Name() string { return "log" }

func (LogSender) Send(_ context.Context, msg Message) error {
	log.Printf("[mail] to=%s subject=%q id=%s\n%s", msg.To, msg.Subject, msg.ID, msg.Text)
	return nil
}
