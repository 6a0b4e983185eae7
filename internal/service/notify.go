package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/weddingwander/weddingwander/internal/model"
)

// Notifier is told about ledger changes that a guest would be emailed about.
type Notifier interface {
	Registered(ctx context.Context, reg model.Registration, event model.Event)
	Canceled(ctx context.Context, reg model.Registration, event model.Event)
}

// LogNotifier stands in for email delivery by writing a log line.
type LogNotifier struct {
	Log logrus.FieldLogger
}

func (n LogNotifier) logger() logrus.FieldLogger {
	if n.Log == nil {
		return logrus.StandardLogger()
	}
	return n.Log
}

func (n LogNotifier) Registered(_ context.Context, reg model.Registration, event model.Event) {
	n.logger().WithFields(logrus.Fields{
		"user_id":         reg.UserID,
		"registration_id": reg.ID,
		"wedding":         event.Title,
		"guests":          reg.Guests,
	}).Info("registration confirmation email sent")
}

func (n LogNotifier) Canceled(_ context.Context, reg model.Registration, event model.Event) {
	n.logger().WithFields(logrus.Fields{
		"user_id":         reg.UserID,
		"registration_id": reg.ID,
		"wedding":         event.Title,
	}).Info("cancellation email sent")
}
