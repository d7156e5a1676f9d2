package adapter

import (
	"context"

	"alertpe-admin/internal/domain/model"
)

// MandateLink is what a mandate-creation call hands back: a UPI intent the
// phone opens directly, plus a browser fallback. PaymentLinkID is the
// gateway's payment-link id; the approval redirect carries it back as
// razorpay_payment_link_id, so it is the callback's lookup key.
type MandateLink struct {
	PaymentLinkID string
	UPIIntentURL  string
	BrowserURL    string
}

// SubscriptionLink is the gateway's recurring-charge payment link.
type SubscriptionLink struct {
	GatewaySubscriptionID model.GatewaySubscriptionID
	PaymentURL            string
	UPIIntentURL          string
}

// PaymentGateway abstracts the external payment provider. Calls carry no
// retry or timeout policy beyond the client's own; a failure surfaces
// directly to the caller.
type PaymentGateway interface {
	Name() string
	CreateMandateLink(ctx context.Context, mandateID model.MandateID, amount int64, description string) (MandateLink, error)
	CreateSubscriptionLink(ctx context.Context, userID model.UserID, planID model.PlanID, amount int64, description string, customer Customer) (SubscriptionLink, error)
	CancelSubscription(ctx context.Context, id model.GatewaySubscriptionID) error
}

type Customer struct {
	Name    string
	Email   string
	Contact string
}
