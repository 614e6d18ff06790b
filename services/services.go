package services

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Notifier receives events after a write commits. partnerID scopes the event
// to one partner's dashboards.
type Notifier interface {
	Broadcast(eventType string, partnerID uint, payload interface{})
}

type nopNotifier struct{}

func (nopNotifier) Broadcast(string, uint, interface{}) {}

func orNotifier(n Notifier) Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}

func orClock(now func() time.Time) func() time.Time {
	if now == nil {
		return time.Now
	}
	return now
}

func orLogger(log logrus.FieldLogger) logrus.FieldLogger {
	if log == nil {
		return logrus.StandardLogger()
	}
	return log
}
