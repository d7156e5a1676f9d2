// File: internal/infra/payment/noop_gateway.go
package payment

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"alertpe-admin/internal/domain/model"
	"alertpe-admin/internal/domain/ports/adapter"
)

var _ adapter.PaymentGateway = (*NoopGateway)(nil)

// NoopGateway fabricates gateway responses locally. Used in dev mode and
// whenever no Razorpay keys are configured; the mock webhook endpoint drives
// state transitions instead of real gateway callbacks.
type NoopGateway struct {
	merchantVPA string
	publicURL   string
}

func NewNoopGateway(merchantVPA, publicURL string) *NoopGateway {
	if merchantVPA == "" {
		merchantVPA = "alertpe@upi"
	}
	return &NoopGateway{merchantVPA: merchantVPA, publicURL: publicURL}
}

func (g *NoopGateway) Name() string { return "noop" }

func (g *NoopGateway) CreateMandateLink(ctx context.Context, mandateID model.MandateID, amount int64, description string) (adapter.MandateLink, error) {
	intent := fmt.Sprintf("upi://pay?pa=%s&pn=AlertPe&am=%d&tn=%s&cu=INR",
		url.QueryEscape(g.merchantVPA), amount, url.QueryEscape(mandateID.String()))
	// The browser link replays the gateway's own redirect shape, so the dev
	// approval flow exercises the same callback route as production.
	now := time.Now().UnixMilli()
	linkID := fmt.Sprintf("plink_noop_%d", now)
	callback := fmt.Sprintf("%s/razorpay/mandate-callback?razorpay_payment_link_id=%s&razorpay_payment_id=pay_noop_%d&razorpay_payment_link_status=paid",
		g.publicURL, url.QueryEscape(linkID), now)
	return adapter.MandateLink{
		PaymentLinkID: linkID,
		UPIIntentURL:  intent,
		BrowserURL:    callback,
	}, nil
}

func (g *NoopGateway) CreateSubscriptionLink(ctx context.Context, userID model.UserID, planID model.PlanID, amount int64, description string, customer adapter.Customer) (adapter.SubscriptionLink, error) {
	id := model.GatewaySubscriptionID(fmt.Sprintf("sub_noop_%d", time.Now().UnixMilli()))
	intent := fmt.Sprintf("upi://pay?pa=%s&pn=AlertPe&am=%d&tn=%s&cu=INR",
		url.QueryEscape(g.merchantVPA), amount, url.QueryEscape(id.String()))
	return adapter.SubscriptionLink{
		GatewaySubscriptionID: id,
		PaymentURL:            g.publicURL + "/pay/" + id.String(),
		UPIIntentURL:          intent,
	}, nil
}

func (g *NoopGateway) CancelSubscription(ctx context.Context, id model.GatewaySubscriptionID) error {
	return nil
}
