// File: internal/usecase/webhook_uc.go
package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"alertpe-admin/internal/domain"
	"alertpe-admin/internal/domain/model"
	"alertpe-admin/internal/domain/ports/adapter"
	"alertpe-admin/internal/domain/ports/repository"
)

var _ WebhookUseCase = (*webhookUC)(nil)

// WebhookVerifier checks a gateway signature over the raw request body.
type WebhookVerifier interface {
	Verify(body []byte, signature string) bool
}

// gatewayEvent mirrors the Razorpay webhook envelope, narrowed to the fields
// the handlers read.
type gatewayEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Subscription struct {
			Entity struct {
				ID         string `json:"id"`
				Status     string `json:"status"`
				CurrentEnd int64  `json:"current_end"`
			} `json:"entity"`
		} `json:"subscription"`
		Payment struct {
			Entity struct {
				ID               string `json:"id"`
				ErrorDescription string `json:"error_description"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

type WebhookUseCase interface {
	// ProcessWebhook verifies, logs and applies one gateway event. An event
	// referencing an unknown gateway subscription is logged and dropped, not
	// an error: the gateway retries on non-2xx and a retry cannot fix it.
	ProcessWebhook(ctx context.Context, body []byte, signature string) error
	// ProcessMockWebhook synthesizes a gateway event for manual testing and
	// runs it through the live path, skipping signature verification.
	ProcessMockWebhook(ctx context.Context, eventType string, gatewaySubID model.GatewaySubscriptionID) ([]byte, error)
	// CreateGatewaySubscription registers the user's subscription with the
	// gateway for recurring charges and stores the returned id. A user with
	// no subscription yet gets a fresh trial row linked to the gateway.
	CreateGatewaySubscription(ctx context.Context, userID model.UserID, planID model.PlanID) (*adapter.SubscriptionLink, error)
	// CancelGatewaySubscription tells the gateway to stop charging. The local
	// row is not touched; the cancellation webhook does that.
	CancelGatewaySubscription(ctx context.Context, userID model.UserID) error
	ListLogs(ctx context.Context, offset, limit int) ([]*model.WebhookLog, error)
}

type webhookUC struct {
	subs     repository.SubscriptionRepository
	plans    repository.PlanRepository
	users    repository.UserRepository
	timeline repository.TimelineRepository
	logs     repository.WebhookLogRepository
	txm      repository.TransactionManager
	gateway  adapter.PaymentGateway
	verifier WebhookVerifier
	now      func() time.Time
	log      *zerolog.Logger
}

func NewWebhookUseCase(
	subs repository.SubscriptionRepository,
	plans repository.PlanRepository,
	users repository.UserRepository,
	timeline repository.TimelineRepository,
	logs repository.WebhookLogRepository,
	txm repository.TransactionManager,
	gateway adapter.PaymentGateway,
	verifier WebhookVerifier,
	logger *zerolog.Logger,
) *webhookUC {
	l := logger.With().Str("component", "WebhookUC").Logger()
	return &webhookUC{
		subs:     subs,
		plans:    plans,
		users:    users,
		timeline: timeline,
		logs:     logs,
		txm:      txm,
		gateway:  gateway,
		verifier: verifier,
		now:      time.Now,
		log:      &l,
	}
}

func (u *webhookUC) ProcessWebhook(ctx context.Context, body []byte, signature string) error {
	if u.verifier != nil && !u.verifier.Verify(body, signature) {
		return domain.ErrBadSignature
	}
	return u.apply(ctx, body, false)
}

func (u *webhookUC) ProcessMockWebhook(ctx context.Context, eventType string, gatewaySubID model.GatewaySubscriptionID) ([]byte, error) {
	if eventType == "" || gatewaySubID.Empty() {
		return nil, domain.ErrInvalidArgument
	}
	ev := gatewayEvent{Event: eventType}
	ev.Payload.Subscription.Entity.ID = gatewaySubID.String()
	switch eventType {
	case "subscription.charged":
		ev.Payload.Subscription.Entity.Status = "active"
		ev.Payload.Subscription.Entity.CurrentEnd = u.now().AddDate(0, 1, 0).Unix()
		ev.Payload.Payment.Entity.ID = fmt.Sprintf("pay_mock_%d", u.now().UnixMilli())
	case "payment.failed":
		ev.Payload.Payment.Entity.ID = fmt.Sprintf("pay_mock_%d", u.now().UnixMilli())
		ev.Payload.Payment.Entity.ErrorDescription = "Insufficient funds in customer account"
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}
	if err := u.apply(ctx, body, true); err != nil {
		return nil, err
	}
	return body, nil
}

// apply logs the raw event first, then mutates state in one transaction.
// A handler failure leaves the log row unprocessed for later inspection.
// mock selects the mock endpoint's historical timeline event names; the
// real webhook writes payment_success / payment_failed.
func (u *webhookUC) apply(ctx context.Context, body []byte, mock bool) error {
	var ev gatewayEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("%w: malformed webhook body", domain.ErrInvalidArgument)
	}
	if ev.Event == "" {
		return fmt.Errorf("%w: missing event type", domain.ErrInvalidArgument)
	}

	gwID := model.GatewaySubscriptionID(ev.Payload.Subscription.Entity.ID)
	now := u.now()
	logRow := &model.WebhookLog{
		ID:        uuid.NewString(),
		EventType: ev.Event,
		Payload:   body,
		CreatedAt: now,
	}
	if err := u.logs.Save(ctx, repository.NoTX, logRow); err != nil {
		return err
	}

	if gwID.Empty() {
		u.log.Warn().Str("event", ev.Event).Msg("webhook without subscription id, logged only")
		return nil
	}

	sub, err := u.subs.FindByGatewaySubscriptionID(ctx, repository.NoTX, gwID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			u.log.Warn().Str("event", ev.Event).Str("gateway_subscription_id", gwID.String()).Msg("webhook for unknown subscription, dropped")
			return nil
		}
		return err
	}

	err = u.txm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		switch ev.Event {
		case "subscription.activated":
			return u.activate(ctx, tx, sub, now)
		case "subscription.charged":
			return u.charged(ctx, tx, sub, &ev, mock, now)
		case "subscription.cancelled":
			return u.transition(ctx, tx, sub, model.SubscriptionStatusCancelled, "", model.EventSubscriptionCancelled, "Subscription cancelled", "Cancelled at the payment gateway", now)
		case "subscription.completed":
			return u.transition(ctx, tx, sub, model.SubscriptionStatusExpired, "", model.EventSubscriptionExpired, "Subscription completed", "All scheduled charges completed", now)
		case "payment.failed", "subscription.payment_failed":
			reason := ev.Payload.Payment.Entity.ErrorDescription
			if reason == "" {
				reason = "payment failed"
			}
			eventType, title := model.EventPaymentFailed, "Payment failed"
			if mock {
				eventType, title = model.EventRenewalFailed, "Subscription renewal failed"
			}
			return u.transition(ctx, tx, sub, model.SubscriptionStatusExpired, reason, eventType, title, reason, now)
		default:
			u.log.Info().Str("event", ev.Event).Msg("unhandled webhook event, logged only")
			return nil
		}
	})
	if err != nil {
		return err
	}

	if err := u.logs.MarkProcessed(ctx, repository.NoTX, logRow.ID, sub.UserID); err != nil {
		u.log.Warn().Err(err).Str("log_id", logRow.ID).Msg("webhook log mark failed")
	}
	u.log.Info().Str("event", ev.Event).Str("subscription_id", sub.ID.String()).Msg("webhook applied")
	return nil
}

func (u *webhookUC) activate(ctx context.Context, tx repository.Tx, sub *model.Subscription, now time.Time) error {
	if sub.Status == model.SubscriptionStatusActive {
		return nil
	}
	sub.Status = model.SubscriptionStatusActive
	sub.SubscriptionStartDate = &now
	if sub.NextRenewalDate == nil {
		renewal := now.AddDate(0, 1, 0)
		sub.NextRenewalDate = &renewal
	}
	sub.FailureReason = ""
	sub.UpdatedAt = now
	if err := u.subs.Save(ctx, tx, sub); err != nil {
		return err
	}
	if err := u.users.UpdateSubscriptionState(ctx, tx, sub.UserID, string(model.SubscriptionStatusActive)); err != nil {
		return err
	}
	return u.timeline.Append(ctx, tx, &model.TimelineEvent{
		ID:          ulid.Make().String(),
		UserID:      sub.UserID,
		EventType:   model.EventSubscriptionActivated,
		Title:       "Subscription activated",
		Description: "Gateway confirmed the subscription",
		Metadata:    map[string]any{"subscriptionId": sub.ID.String(), "gatewaySubscriptionId": sub.GatewaySubscriptionID.String()},
		Timestamp:   now,
	})
}

func (u *webhookUC) charged(ctx context.Context, tx repository.Tx, sub *model.Subscription, ev *gatewayEvent, mock bool, now time.Time) error {
	// current_end is the gateway's authoritative next charge instant; fall
	// back to one month out when absent.
	renewal := now.AddDate(0, 1, 0)
	if ce := ev.Payload.Subscription.Entity.CurrentEnd; ce > 0 {
		renewal = time.Unix(ce, 0)
	}
	sub.Status = model.SubscriptionStatusActive
	sub.NextRenewalDate = &renewal
	sub.FailureReason = ""
	sub.UpdatedAt = now
	if err := u.subs.Save(ctx, tx, sub); err != nil {
		return err
	}
	if err := u.users.UpdateSubscriptionState(ctx, tx, sub.UserID, string(model.SubscriptionStatusActive)); err != nil {
		return err
	}
	eventType, title := model.EventPaymentSuccess, "Payment successful"
	if mock {
		eventType, title = model.EventSubscriptionRenewed, "Subscription renewed"
	}
	return u.timeline.Append(ctx, tx, &model.TimelineEvent{
		ID:          ulid.Make().String(),
		UserID:      sub.UserID,
		EventType:   eventType,
		Title:       title,
		Description: "Recurring charge succeeded",
		Metadata: map[string]any{
			"subscriptionId":  sub.ID.String(),
			"paymentId":       ev.Payload.Payment.Entity.ID,
			"nextRenewalDate": renewal.Format(time.RFC3339),
		},
		Timestamp: now,
	})
}

func (u *webhookUC) transition(ctx context.Context, tx repository.Tx, sub *model.Subscription, to model.SubscriptionStatus, reason string, eventType model.TimelineEventType, title, desc string, now time.Time) error {
	if sub.Status == to {
		return nil
	}
	sub.Status = to
	sub.SubscriptionEndDate = &now
	sub.FailureReason = reason
	sub.UpdatedAt = now
	if err := u.subs.Save(ctx, tx, sub); err != nil {
		return err
	}
	if err := u.users.UpdateSubscriptionState(ctx, tx, sub.UserID, string(to)); err != nil {
		return err
	}
	return u.timeline.Append(ctx, tx, &model.TimelineEvent{
		ID:          ulid.Make().String(),
		UserID:      sub.UserID,
		EventType:   eventType,
		Title:       title,
		Description: desc,
		Metadata:    map[string]any{"subscriptionId": sub.ID.String()},
		Timestamp:   now,
	})
}

func (u *webhookUC) CreateGatewaySubscription(ctx context.Context, userID model.UserID, planID model.PlanID) (*adapter.SubscriptionLink, error) {
	if userID.Empty() || planID.Empty() {
		return nil, domain.ErrInvalidArgument
	}
	user, err := u.users.FindByID(ctx, repository.NoTX, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	plan, err := u.plans.FindByID(ctx, repository.NoTX, planID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrPlanNotFound
		}
		return nil, err
	}

	now := u.now()
	sub, err := u.subs.FindBlockingByUser(ctx, repository.NoTX, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		// No live subscription yet: the gateway link gets a fresh trial row
		// so the activation webhook has something to flip.
		if sub, err = model.NewTrialSubscription(model.SubscriptionID(uuid.NewString()), userID, planID, plan.Price(), 7, now); err != nil {
			return nil, err
		}
	}

	link, err := u.gateway.CreateSubscriptionLink(ctx, userID, planID, plan.Price(), "AlertPe subscription", adapter.Customer{
		Name:    user.Username,
		Email:   user.Email,
		Contact: user.Mobile,
	})
	if err != nil {
		return nil, err
	}

	err = u.txm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		sub.GatewaySubscriptionID = link.GatewaySubscriptionID
		sub.UpdatedAt = now
		if err := u.subs.Save(ctx, tx, sub); err != nil {
			return err
		}
		return u.timeline.Append(ctx, tx, &model.TimelineEvent{
			ID:          ulid.Make().String(),
			UserID:      userID,
			EventType:   model.EventSubscriptionCreated,
			Title:       "Gateway subscription created",
			Description: "Recurring charge registered with the gateway",
			Metadata: map[string]any{
				"subscriptionId":        sub.ID.String(),
				"gatewaySubscriptionId": link.GatewaySubscriptionID.String(),
			},
			Timestamp: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (u *webhookUC) CancelGatewaySubscription(ctx context.Context, userID model.UserID) error {
	if userID.Empty() {
		return domain.ErrInvalidArgument
	}
	sub, err := u.subs.FindBlockingByUser(ctx, repository.NoTX, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNoSubscription
		}
		return err
	}
	if sub.GatewaySubscriptionID.Empty() {
		return domain.ErrNoSubscription
	}
	return u.gateway.CancelSubscription(ctx, sub.GatewaySubscriptionID)
}

func (u *webhookUC) ListLogs(ctx context.Context, offset, limit int) ([]*model.WebhookLog, error) {
	return u.logs.List(ctx, repository.NoTX, offset, limit)
}
