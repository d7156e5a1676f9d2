// File: internal/usecase/subscription_uc.go
package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"alertpe-admin/internal/domain"
	"alertpe-admin/internal/domain/model"
	"alertpe-admin/internal/domain/ports/repository"
)

var _ SubscriptionUseCase = (*subscriptionUC)(nil)

// StatusView is the app-facing snapshot of a user's subscription.
type StatusView struct {
	HasSubscription bool
	Subscription    *model.Subscription
	Plan            *model.Plan
	Mandate         *model.Mandate
	DaysRemaining   int
}

type SubscriptionUseCase interface {
	// StartTrial opens a trial for a user with no trial/active subscription.
	// trialDays overrides the configured trial length; zero or negative
	// falls back to the config default.
	StartTrial(ctx context.Context, userID model.UserID, planID model.PlanID, trialDays int) (*model.Subscription, error)
	// Create activates a paid subscription immediately, bypassing the trial.
	Create(ctx context.Context, userID model.UserID, planID model.PlanID) (*model.Subscription, error)
	// Cancel moves the user's blocking subscription to cancelled. Terminal.
	Cancel(ctx context.Context, userID model.UserID, reason string) (*model.Subscription, error)
	// Downgrade expires the user's blocking subscription on the spot.
	Downgrade(ctx context.Context, userID model.UserID) (*model.Subscription, error)
	Status(ctx context.Context, userID model.UserID) (*StatusView, error)
	List(ctx context.Context, offset, limit int) ([]*model.Subscription, error)
}

type subscriptionUC struct {
	subs     repository.SubscriptionRepository
	plans    repository.PlanRepository
	users    repository.UserRepository
	mandates repository.MandateRepository
	timeline repository.TimelineRepository
	txm      repository.TransactionManager

	trialEnabled bool
	trialDays    int
	now          func() time.Time
	log          *zerolog.Logger
}

func NewSubscriptionUseCase(
	subs repository.SubscriptionRepository,
	plans repository.PlanRepository,
	users repository.UserRepository,
	mandates repository.MandateRepository,
	timeline repository.TimelineRepository,
	txm repository.TransactionManager,
	trialEnabled bool,
	trialDays int,
	logger *zerolog.Logger,
) *subscriptionUC {
	l := logger.With().Str("component", "SubscriptionUC").Logger()
	if trialDays <= 0 {
		trialDays = 7
	}
	return &subscriptionUC{
		subs:         subs,
		plans:        plans,
		users:        users,
		mandates:     mandates,
		timeline:     timeline,
		txm:          txm,
		trialEnabled: trialEnabled,
		trialDays:    trialDays,
		now:          time.Now,
		log:          &l,
	}
}

func (u *subscriptionUC) StartTrial(ctx context.Context, userID model.UserID, planID model.PlanID, trialDays int) (*model.Subscription, error) {
	if !u.trialEnabled {
		return nil, domain.ErrTrialDisabled
	}
	if userID.Empty() || planID.Empty() {
		return nil, domain.ErrInvalidArgument
	}
	if trialDays <= 0 {
		trialDays = u.trialDays
	}

	plan, err := u.plans.FindByID(ctx, repository.NoTX, planID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrPlanNotFound
		}
		return nil, err
	}

	now := u.now()
	sub, err := model.NewTrialSubscription(model.SubscriptionID(uuid.NewString()), userID, planID, plan.Price(), trialDays, now)
	if err != nil {
		return nil, err
	}

	err = u.txm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		if existing, err := u.subs.FindBlockingByUser(ctx, tx, userID); err == nil && existing != nil {
			return domain.ErrAlreadySubscribed
		} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		if err := u.subs.Save(ctx, tx, sub); err != nil {
			return err
		}
		if err := u.users.UpdateSubscriptionState(ctx, tx, userID, string(model.SubscriptionStatusTrial)); err != nil {
			return err
		}
		return u.timeline.Append(ctx, tx, u.event(userID, model.EventTrialStarted, "Trial started", "Free trial activated", map[string]any{
			"subscriptionId": sub.ID.String(),
			"planId":         planID.String(),
			"trialEndDate":   sub.TrialEndDate.Format(time.RFC3339),
		}, now))
	})
	if err != nil {
		return nil, err
	}

	u.log.Info().Str("user_id", userID.String()).Str("plan_id", planID.String()).Msg("trial started")
	return sub, nil
}

func (u *subscriptionUC) Create(ctx context.Context, userID model.UserID, planID model.PlanID) (*model.Subscription, error) {
	if userID.Empty() || planID.Empty() {
		return nil, domain.ErrInvalidArgument
	}
	plan, err := u.plans.FindByID(ctx, repository.NoTX, planID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrPlanNotFound
		}
		return nil, err
	}

	now := u.now()
	end := now.AddDate(0, 1, 0)
	if plan.Duration == "yearly" {
		end = now.AddDate(1, 0, 0)
	}
	sub := &model.Subscription{
		ID:                    model.SubscriptionID(uuid.NewString()),
		UserID:                userID,
		PlanID:                planID,
		Status:                model.SubscriptionStatusActive,
		SubscriptionStartDate: &now,
		SubscriptionEndDate:   &end,
		NextRenewalDate:       &end,
		Amount:                plan.Price(),
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	err = u.txm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		if existing, err := u.subs.FindBlockingByUser(ctx, tx, userID); err == nil && existing != nil {
			return domain.ErrAlreadySubscribed
		} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		if err := u.subs.Save(ctx, tx, sub); err != nil {
			return err
		}
		if err := u.users.UpdateSubscriptionState(ctx, tx, userID, string(model.SubscriptionStatusActive)); err != nil {
			return err
		}
		return u.timeline.Append(ctx, tx, u.event(userID, model.EventSubscriptionCreated, "Subscription created", plan.Name+" subscription activated", map[string]any{
			"subscriptionId": sub.ID.String(),
			"planId":         planID.String(),
			"amount":         plan.Price(),
		}, now))
	})
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (u *subscriptionUC) Cancel(ctx context.Context, userID model.UserID, reason string) (*model.Subscription, error) {
	return u.terminate(ctx, userID, model.SubscriptionStatusCancelled, reason, model.EventSubscriptionCancelled, "Subscription cancelled")
}

func (u *subscriptionUC) Downgrade(ctx context.Context, userID model.UserID) (*model.Subscription, error) {
	return u.terminate(ctx, userID, model.SubscriptionStatusExpired, "downgraded by admin", model.EventSubscriptionExpired, "Subscription expired")
}

func (u *subscriptionUC) terminate(ctx context.Context, userID model.UserID, to model.SubscriptionStatus, reason string, eventType model.TimelineEventType, title string) (*model.Subscription, error) {
	if userID.Empty() {
		return nil, domain.ErrInvalidArgument
	}
	now := u.now()
	var sub *model.Subscription
	err := u.txm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		var err error
		sub, err = u.subs.FindBlockingByUser(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrNoSubscription
			}
			return err
		}
		sub.Status = to
		sub.SubscriptionEndDate = &now
		sub.FailureReason = reason
		sub.UpdatedAt = now
		if err := u.subs.Save(ctx, tx, sub); err != nil {
			return err
		}
		if err := u.users.UpdateSubscriptionState(ctx, tx, userID, string(to)); err != nil {
			return err
		}
		return u.timeline.Append(ctx, tx, u.event(userID, eventType, title, reason, map[string]any{
			"subscriptionId": sub.ID.String(),
		}, now))
	})
	if err != nil {
		return nil, err
	}
	u.log.Info().Str("user_id", userID.String()).Str("status", string(to)).Msg("subscription terminated")
	return sub, nil
}

func (u *subscriptionUC) Status(ctx context.Context, userID model.UserID) (*StatusView, error) {
	if userID.Empty() {
		return nil, domain.ErrInvalidArgument
	}
	sub, err := u.subs.FindByUser(ctx, repository.NoTX, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &StatusView{HasSubscription: false}, nil
		}
		return nil, err
	}

	view := &StatusView{HasSubscription: true, Subscription: sub}
	if plan, err := u.plans.FindByID(ctx, repository.NoTX, sub.PlanID); err == nil {
		view.Plan = plan
	}
	if !sub.MandateID.Empty() {
		if m, err := u.mandates.FindByMandateID(ctx, repository.NoTX, sub.MandateID); err == nil {
			view.Mandate = m
		}
	}

	now := u.now()
	var until *time.Time
	switch sub.Status {
	case model.SubscriptionStatusTrial:
		until = sub.TrialEndDate
	case model.SubscriptionStatusActive:
		until = sub.NextRenewalDate
	}
	if until != nil && until.After(now) {
		view.DaysRemaining = int(until.Sub(now).Hours() / 24)
	}
	return view, nil
}

func (u *subscriptionUC) List(ctx context.Context, offset, limit int) ([]*model.Subscription, error) {
	return u.subs.List(ctx, repository.NoTX, offset, limit)
}

func (u *subscriptionUC) event(userID model.UserID, t model.TimelineEventType, title, desc string, meta map[string]any, now time.Time) *model.TimelineEvent {
	return &model.TimelineEvent{
		ID:          ulid.Make().String(),
		UserID:      userID,
		EventType:   t,
		Title:       title,
		Description: desc,
		Metadata:    meta,
		Timestamp:   now,
	}
}
