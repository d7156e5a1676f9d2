// File: internal/infra/payment/razorpay_gateway.go
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"alertpe-admin/internal/domain/model"
	"alertpe-admin/internal/domain/ports/adapter"
)

var _ adapter.PaymentGateway = (*RazorpayGateway)(nil)

// RazorpayGateway implements adapter.PaymentGateway with direct HTTP calls
// against the Razorpay REST API (basic auth with key id/secret).
type RazorpayGateway struct {
	keyID       string
	keySecret   string
	merchantVPA string
	callbackURL string // mandate-callback route; the redirect carries razorpay_payment_link_id back
	baseURL     string
	client      *http.Client
}

func NewRazorpayGateway(keyID, keySecret, merchantVPA, callbackURL string, sandbox bool) *RazorpayGateway {
	// Razorpay uses test-mode keys rather than a separate host; sandbox only
	// gates which key pair the config carries.
	_ = sandbox
	return &RazorpayGateway{
		keyID:       keyID,
		keySecret:   keySecret,
		merchantVPA: merchantVPA,
		callbackURL: callbackURL,
		baseURL:     "https://api.razorpay.com/v1",
		client:      &http.Client{Timeout: 15 * time.Second},
	}
}

func (g *RazorpayGateway) Name() string { return "razorpay" }

type razorpayPaymentLinkResponse struct {
	ID          string `json:"id"`
	ShortURL    string `json:"short_url"`
	Status      string `json:"status"`
	Description string `json:"description"`
	Error       struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

type razorpaySubscriptionResponse struct {
	ID       string `json:"id"`
	ShortURL string `json:"short_url"`
	Status   string `json:"status"`
	Error    struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateMandateLink registers a payment link for mandate approval and builds
// the upi:// intent the app opens directly.
func (g *RazorpayGateway) CreateMandateLink(ctx context.Context, mandateID model.MandateID, amount int64, description string) (adapter.MandateLink, error) {
	body := map[string]interface{}{
		"amount":       amount * 100, // rupees to paise
		"currency":     "INR",
		"description":  description,
		"reference_id": mandateID.String(),
		"upi_link":     true,
	}
	if g.callbackURL != "" {
		body["callback_url"] = g.callbackURL
		body["callback_method"] = "get"
	}

	var resp razorpayPaymentLinkResponse
	if err := g.post(ctx, "/payment_links", body, &resp); err != nil {
		return adapter.MandateLink{}, err
	}
	if resp.Error.Code != "" {
		return adapter.MandateLink{}, fmt.Errorf("razorpay error: %s: %s", resp.Error.Code, resp.Error.Description)
	}

	intent := fmt.Sprintf("upi://pay?pa=%s&pn=AlertPe&am=%d&tn=%s&cu=INR",
		url.QueryEscape(g.merchantVPA), amount, url.QueryEscape(mandateID.String()))
	return adapter.MandateLink{
		PaymentLinkID: resp.ID,
		UPIIntentURL:  intent,
		BrowserURL:    resp.ShortURL,
	}, nil
}

func (g *RazorpayGateway) CreateSubscriptionLink(ctx context.Context, userID model.UserID, planID model.PlanID, amount int64, description string, customer adapter.Customer) (adapter.SubscriptionLink, error) {
	body := map[string]interface{}{
		"plan_id":         planID.String(),
		"total_count":     12,
		"customer_notify": 1,
		"notes": map[string]string{
			"user_id":     userID.String(),
			"description": description,
		},
	}
	if customer.Email != "" || customer.Contact != "" {
		body["notify_info"] = map[string]string{
			"notify_email": customer.Email,
			"notify_phone": customer.Contact,
		}
	}

	var resp razorpaySubscriptionResponse
	if err := g.post(ctx, "/subscriptions", body, &resp); err != nil {
		return adapter.SubscriptionLink{}, err
	}
	if resp.Error.Code != "" {
		return adapter.SubscriptionLink{}, fmt.Errorf("razorpay error: %s: %s", resp.Error.Code, resp.Error.Description)
	}

	intent := fmt.Sprintf("upi://pay?pa=%s&pn=AlertPe&am=%d&tn=%s&cu=INR",
		url.QueryEscape(g.merchantVPA), amount, url.QueryEscape(resp.ID))
	return adapter.SubscriptionLink{
		GatewaySubscriptionID: model.GatewaySubscriptionID(resp.ID),
		PaymentURL:            resp.ShortURL,
		UPIIntentURL:          intent,
	}, nil
}

func (g *RazorpayGateway) CancelSubscription(ctx context.Context, id model.GatewaySubscriptionID) error {
	var resp razorpaySubscriptionResponse
	if err := g.post(ctx, "/subscriptions/"+id.String()+"/cancel", map[string]interface{}{
		"cancel_at_cycle_end": 0,
	}, &resp); err != nil {
		return err
	}
	if resp.Error.Code != "" {
		return fmt.Errorf("razorpay error: %s: %s", resp.Error.Code, resp.Error.Description)
	}
	return nil
}

func (g *RazorpayGateway) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request data: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(g.keyID, g.keySecret)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w, body: %s", err, string(raw))
	}
	return nil
}
