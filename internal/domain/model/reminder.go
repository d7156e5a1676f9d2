package model

import "time"

type ReminderType string

const (
	Reminder24h ReminderType = "24h"
	Reminder1h  ReminderType = "1h"
)

// SubscriptionReminder marks that a pre-renewal reminder has already been
// emitted for a (user, subscription, type, renewalDate) tuple. Its existence
// is the sweep's only duplicate suppression.
type SubscriptionReminder struct {
	ID             string
	UserID         UserID
	SubscriptionID SubscriptionID
	ReminderType   ReminderType
	RenewalDate    time.Time
	Sent           bool
	SentAt         *time.Time
	CreatedAt      time.Time
}
