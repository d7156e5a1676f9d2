package model

import "time"

// TimelineEventType is an open enum. The listed constants cover the standard
// events; handlers historically also wrote ad hoc literals
// ("mandate_created", "subscription-renewal-failed") and those still round-trip.
type TimelineEventType string

const (
	EventRegistration          TimelineEventType = "registration"
	EventTrialStarted          TimelineEventType = "trial_started"
	EventSubscriptionCreated   TimelineEventType = "subscription_created"
	EventPaymentReceived       TimelineEventType = "payment_received"
	EventMandateCreated        TimelineEventType = "mandate_created"
	EventMandateApproved       TimelineEventType = "mandate_approved"
	EventSubscriptionActivated TimelineEventType = "subscription_activated"
	EventSubscriptionRenewed   TimelineEventType = "subscription_renewed"
	EventSubscriptionExpired   TimelineEventType = "subscription_expired"
	EventSubscriptionCancelled TimelineEventType = "subscription_cancelled"
	EventPaymentSuccess        TimelineEventType = "payment_success"
	EventPaymentFailed         TimelineEventType = "payment_failed"
	EventRenewalFailed         TimelineEventType = "subscription-renewal-failed"
	EventReminderSent          TimelineEventType = "renewal_reminder_sent"
)

// TimelineEvent is one append-only audit row on a user's history. Nothing
// ever updates or deletes these.
type TimelineEvent struct {
	ID          string // ULID, sortable by creation time
	UserID      UserID
	EventType   TimelineEventType
	Title       string
	Description string
	Metadata    map[string]any
	Timestamp   time.Time
}
