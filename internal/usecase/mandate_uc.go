// File: internal/usecase/mandate_uc.go
package usecase

import (
	"context"
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

var _ MandateUseCase = (*mandateUC)(nil)

// MandateLinkView bundles what the mobile app needs to drive approval.
type MandateLinkView struct {
	Mandate      *model.Mandate
	UPIIntentURL string
	BrowserURL   string
}

type MandateUseCase interface {
	// CreateMandate registers a pending mandate and returns the approval
	// links from the gateway. The billing frequency comes from the plan.
	CreateMandate(ctx context.Context, userID model.UserID, planID model.PlanID, amount int64) (*MandateLinkView, error)
	// HandleCallback processes the gateway redirect after the user acts on
	// the approval screen. The mandate is looked up by the payment-link id
	// the redirect echoes back; approval additionally requires the gateway's
	// payment id. An unknown link id is a no-op, not an error: the redirect
	// lands in a browser and a retry cannot fix it.
	HandleCallback(ctx context.Context, paymentLinkID, paymentID, linkStatus string) (*model.Mandate, error)
	ListByUser(ctx context.Context, userID model.UserID) ([]*model.Mandate, error)
	List(ctx context.Context, offset, limit int) ([]*model.Mandate, error)
}

type mandateUC struct {
	mandates repository.MandateRepository
	subs     repository.SubscriptionRepository
	plans    repository.PlanRepository
	users    repository.UserRepository
	timeline repository.TimelineRepository
	txm      repository.TransactionManager
	gateway  adapter.PaymentGateway
	now      func() time.Time
	log      *zerolog.Logger
}

func NewMandateUseCase(
	mandates repository.MandateRepository,
	subs repository.SubscriptionRepository,
	plans repository.PlanRepository,
	users repository.UserRepository,
	timeline repository.TimelineRepository,
	txm repository.TransactionManager,
	gateway adapter.PaymentGateway,
	logger *zerolog.Logger,
) *mandateUC {
	l := logger.With().Str("component", "MandateUC").Logger()
	return &mandateUC{
		mandates: mandates,
		subs:     subs,
		plans:    plans,
		users:    users,
		timeline: timeline,
		txm:      txm,
		gateway:  gateway,
		now:      time.Now,
		log:      &l,
	}
}

func (u *mandateUC) CreateMandate(ctx context.Context, userID model.UserID, planID model.PlanID, amount int64) (*MandateLinkView, error) {
	if userID.Empty() || planID.Empty() || amount <= 0 {
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
	frequency := "monthly"
	if plan.Duration == "yearly" {
		frequency = "yearly"
	}

	now := u.now()
	mandateID := model.GenerateMandateID(userID, now)
	link, err := u.gateway.CreateMandateLink(ctx, mandateID, amount, "AlertPe recurring payment")
	if err != nil {
		return nil, err
	}

	m, err := model.NewPendingMandate(uuid.NewString(), userID, mandateID, amount, frequency, user.Mobile, link.BrowserURL, now)
	if err != nil {
		return nil, err
	}
	m.PaymentLinkID = link.PaymentLinkID

	err = u.txm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		if err := u.mandates.Save(ctx, tx, m); err != nil {
			return err
		}
		return u.timeline.Append(ctx, tx, &model.TimelineEvent{
			ID:          ulid.Make().String(),
			UserID:      userID,
			EventType:   model.EventMandateCreated,
			Title:       "Mandate created",
			Description: fmt.Sprintf("UPI AutoPay mandate for %s awaiting approval", plan.Name),
			Metadata: map[string]any{
				"mandateId": mandateID.String(),
				"planId":    planID.String(),
				"planName":  plan.Name,
				"amount":    amount,
				"frequency": m.Frequency,
			},
			Timestamp: now,
		})
	})
	if err != nil {
		return nil, err
	}

	u.log.Info().Str("user_id", userID.String()).Str("mandate_id", mandateID.String()).Msg("mandate created")
	return &MandateLinkView{Mandate: m, UPIIntentURL: link.UPIIntentURL, BrowserURL: link.BrowserURL}, nil
}

func (u *mandateUC) HandleCallback(ctx context.Context, paymentLinkID, paymentID, linkStatus string) (*model.Mandate, error) {
	if paymentLinkID == "" {
		return nil, domain.ErrInvalidArgument
	}

	found, err := u.mandates.FindByPaymentLinkID(ctx, repository.NoTX, paymentLinkID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			u.log.Warn().Str("payment_link_id", paymentLinkID).Str("link_status", linkStatus).Msg("mandate callback for unknown payment link, dropped")
			return nil, nil
		}
		return nil, err
	}
	if linkStatus == "paid" && paymentID == "" {
		u.log.Warn().Str("payment_link_id", paymentLinkID).Msg("paid callback without a payment id, dropped")
		return found, nil
	}

	now := u.now()
	var m *model.Mandate
	err = u.txm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		var err error
		m, err = u.mandates.FindByMandateID(ctx, tx, found.MandateID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrMandateNotFound
			}
			return err
		}
		mandateID := m.MandateID

		if linkStatus != "paid" {
			m.Status = model.MandateStatusRejected
			m.UpdatedAt = now
			if err := u.mandates.Save(ctx, tx, m); err != nil {
				return err
			}
			return u.timeline.Append(ctx, tx, &model.TimelineEvent{
				ID:          ulid.Make().String(),
				UserID:      m.UserID,
				EventType:   model.EventPaymentFailed,
				Title:       "Mandate rejected",
				Description: "User declined the AutoPay mandate",
				Metadata:    map[string]any{"mandateId": mandateID.String(), "linkStatus": linkStatus},
				Timestamp:   now,
			})
		}

		m.Status = model.MandateStatusApproved
		m.ApprovedAt = &now
		m.UpdatedAt = now
		if err := u.mandates.Save(ctx, tx, m); err != nil {
			return err
		}

		// An approved mandate converts the user's trial to a paid plan on the
		// spot. No blocking subscription is not an error: the mandate may
		// precede signup completion.
		sub, err := u.subs.FindBlockingByUser(ctx, tx, m.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return u.timeline.Append(ctx, tx, mandateApprovedEvent(m, paymentID, now))
			}
			return err
		}
		if sub.Status == model.SubscriptionStatusTrial {
			renewal := now.AddDate(0, 1, 0)
			if m.Frequency == "yearly" {
				renewal = now.AddDate(1, 0, 0)
			}
			sub.Status = model.SubscriptionStatusActive
			sub.SubscriptionStartDate = &now
			sub.NextRenewalDate = &renewal
			sub.MandateID = mandateID
			sub.UpdatedAt = now
			if err := u.subs.Save(ctx, tx, sub); err != nil {
				return err
			}
			if err := u.users.UpdateSubscriptionState(ctx, tx, m.UserID, string(model.SubscriptionStatusActive)); err != nil {
				return err
			}
			if err := u.timeline.Append(ctx, tx, &model.TimelineEvent{
				ID:          ulid.Make().String(),
				UserID:      m.UserID,
				EventType:   model.EventSubscriptionActivated,
				Title:       "Subscription activated",
				Description: "Activated via approved AutoPay mandate",
				Metadata: map[string]any{
					"subscriptionId": sub.ID.String(),
					"mandateId":      mandateID.String(),
				},
				Timestamp: now,
			}); err != nil {
				return err
			}
		}
		return u.timeline.Append(ctx, tx, mandateApprovedEvent(m, paymentID, now))
	})
	if err != nil {
		return nil, err
	}

	u.log.Info().Str("mandate_id", m.MandateID.String()).Str("link_status", linkStatus).Msg("mandate callback handled")
	return m, nil
}

func mandateApprovedEvent(m *model.Mandate, paymentID string, now time.Time) *model.TimelineEvent {
	return &model.TimelineEvent{
		ID:          ulid.Make().String(),
		UserID:      m.UserID,
		EventType:   model.EventMandateApproved,
		Title:       "Mandate approved",
		Description: "UPI AutoPay mandate approved",
		Metadata:    map[string]any{"mandateId": m.MandateID.String(), "paymentId": paymentID, "amount": m.Amount},
		Timestamp:   now,
	}
}

func (u *mandateUC) ListByUser(ctx context.Context, userID model.UserID) ([]*model.Mandate, error) {
	if userID.Empty() {
		return nil, domain.ErrInvalidArgument
	}
	return u.mandates.ListByUser(ctx, repository.NoTX, userID)
}

func (u *mandateUC) List(ctx context.Context, offset, limit int) ([]*model.Mandate, error) {
	return u.mandates.List(ctx, repository.NoTX, offset, limit)
}
