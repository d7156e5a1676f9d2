package model

import "time"

// WebhookLog captures every inbound gateway payload verbatim before any
// processing, for audit and replay during debugging. Processed is flipped
// only after the event actually mutated a subscription.
type WebhookLog struct {
	ID             string
	EventType      string
	Payload        []byte // raw JSON as received
	SubscriptionID GatewaySubscriptionID
	MandateID      MandateID
	UserID         UserID
	Processed      bool
	CreatedAt      time.Time
}
