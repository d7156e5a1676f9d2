// File: internal/usecase/sweep_uc.go
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"alertpe-admin/internal/domain/model"
	"alertpe-admin/internal/domain/ports/adapter"
	"alertpe-admin/internal/domain/ports/repository"
)

var _ SweepUseCase = (*sweepUC)(nil)

// SweepResult summarizes one scheduler pass.
type SweepResult struct {
	ExpiredTrials    int `json:"expiredTrials"`
	Renewed          int `json:"renewed"`
	RemindersCreated int `json:"remindersCreated"`
	ProcessedCount   int `json:"processedCount"`
}

type SweepUseCase interface {
	// Sweep runs the three maintenance passes: expire lapsed trials, advance
	// overdue renewals, and queue upcoming renewal reminders. Each
	// subscription mutates in its own transaction; a single failure is
	// logged and skipped, never aborting the sweep.
	Sweep(ctx context.Context) (*SweepResult, error)
	ListReminders(ctx context.Context, offset, limit int) ([]*model.SubscriptionReminder, error)
}

type sweepUC struct {
	subs      repository.SubscriptionRepository
	users     repository.UserRepository
	timeline  repository.TimelineRepository
	reminders repository.ReminderRepository
	txm       repository.TransactionManager
	notifier  adapter.Notifier
	now       func() time.Time
	log       *zerolog.Logger
}

func NewSweepUseCase(
	subs repository.SubscriptionRepository,
	users repository.UserRepository,
	timeline repository.TimelineRepository,
	reminders repository.ReminderRepository,
	txm repository.TransactionManager,
	notifier adapter.Notifier,
	logger *zerolog.Logger,
) *sweepUC {
	l := logger.With().Str("component", "SweepUC").Logger()
	return &sweepUC{
		subs:      subs,
		users:     users,
		timeline:  timeline,
		reminders: reminders,
		txm:       txm,
		notifier:  notifier,
		now:       time.Now,
		log:       &l,
	}
}

func (u *sweepUC) Sweep(ctx context.Context) (*SweepResult, error) {
	now := u.now()
	res := &SweepResult{}

	// Reminder candidates are snapshotted before the renewal pass so that a
	// subscription renewed in this very sweep is still reminded against the
	// renewal date it had when the sweep began.
	reminderCandidates, err := u.subs.ListActiveWithRenewal(ctx, repository.NoTX)
	if err != nil {
		return nil, err
	}

	expired, err := u.subs.ListExpiredTrials(ctx, repository.NoTX, now)
	if err != nil {
		return nil, err
	}
	for _, sub := range expired {
		if err := u.expireTrial(ctx, sub, now); err != nil {
			u.log.Error().Err(err).Str("subscription_id", sub.ID.String()).Msg("trial expiry failed")
			continue
		}
		res.ExpiredTrials++
	}

	due, err := u.subs.ListDueForRenewal(ctx, repository.NoTX, now)
	if err != nil {
		return nil, err
	}
	for _, sub := range due {
		if err := u.advanceRenewal(ctx, sub, now); err != nil {
			u.log.Error().Err(err).Str("subscription_id", sub.ID.String()).Msg("renewal advance failed")
			continue
		}
		res.Renewed++
	}

	for _, sub := range reminderCandidates {
		n, err := u.remind(ctx, sub, now)
		if err != nil {
			u.log.Error().Err(err).Str("subscription_id", sub.ID.String()).Msg("reminder pass failed")
			continue
		}
		res.RemindersCreated += n
	}

	res.ProcessedCount = res.ExpiredTrials + res.Renewed + res.RemindersCreated
	u.log.Info().
		Int("expired_trials", res.ExpiredTrials).
		Int("renewed", res.Renewed).
		Int("reminders", res.RemindersCreated).
		Msg("sweep finished")
	return res, nil
}

func (u *sweepUC) ListReminders(ctx context.Context, offset, limit int) ([]*model.SubscriptionReminder, error) {
	return u.reminders.List(ctx, repository.NoTX, offset, limit)
}

func (u *sweepUC) expireTrial(ctx context.Context, sub *model.Subscription, now time.Time) error {
	return u.txm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		sub.Status = model.SubscriptionStatusExpired
		sub.SubscriptionEndDate = &now
		sub.FailureReason = "trial ended without an approved mandate"
		sub.UpdatedAt = now
		if err := u.subs.Save(ctx, tx, sub); err != nil {
			return err
		}
		if err := u.users.UpdateSubscriptionState(ctx, tx, sub.UserID, string(model.SubscriptionStatusExpired)); err != nil {
			return err
		}
		return u.timeline.Append(ctx, tx, &model.TimelineEvent{
			ID:          ulid.Make().String(),
			UserID:      sub.UserID,
			EventType:   model.EventSubscriptionExpired,
			Title:       "Trial expired",
			Description: "Trial period ended",
			Metadata:    map[string]any{"subscriptionId": sub.ID.String()},
			Timestamp:   now,
		})
	})
}

// advanceRenewal pushes the renewal date one month forward. The actual
// charge is the gateway's job; its webhook corrects the date if they differ.
func (u *sweepUC) advanceRenewal(ctx context.Context, sub *model.Subscription, now time.Time) error {
	return u.txm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		var next time.Time
		if sub.NextRenewalDate != nil {
			next = sub.NextRenewalDate.AddDate(0, 1, 0)
		} else {
			next = now.AddDate(0, 1, 0)
		}
		sub.NextRenewalDate = &next
		sub.UpdatedAt = now
		if err := u.subs.Save(ctx, tx, sub); err != nil {
			return err
		}
		return u.timeline.Append(ctx, tx, &model.TimelineEvent{
			ID:          ulid.Make().String(),
			UserID:      sub.UserID,
			EventType:   model.EventSubscriptionRenewed,
			Title:       "Subscription renewed",
			Description: "Renewal date advanced by the scheduler",
			Metadata: map[string]any{
				"subscriptionId":  sub.ID.String(),
				"nextRenewalDate": next.Format(time.RFC3339),
			},
			Timestamp: now,
		})
	})
}

func (u *sweepUC) remind(ctx context.Context, sub *model.Subscription, now time.Time) (int, error) {
	if sub.NextRenewalDate == nil {
		return 0, nil
	}
	renewal := *sub.NextRenewalDate
	untilRenewal := renewal.Sub(now)
	if untilRenewal <= 0 {
		return 0, nil
	}

	created := 0
	for _, rt := range []struct {
		kind   model.ReminderType
		within time.Duration
	}{
		{model.Reminder24h, 24 * time.Hour},
		{model.Reminder1h, time.Hour},
	} {
		if untilRenewal > rt.within {
			continue
		}
		exists, err := u.reminders.Exists(ctx, repository.NoTX, sub.ID, rt.kind, renewal)
		if err != nil {
			return created, err
		}
		if exists {
			continue
		}
		if err := u.createReminder(ctx, sub, rt.kind, renewal, now); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func (u *sweepUC) createReminder(ctx context.Context, sub *model.Subscription, kind model.ReminderType, renewal, now time.Time) error {
	sent := false
	var sentAt *time.Time
	if u.notifier != nil {
		body := fmt.Sprintf("Your AlertPe subscription renews at %s.", renewal.Format("02 Jan 2006 15:04"))
		if err := u.notifier.Send(ctx, sub.UserID, "Renewal reminder", body); err != nil {
			u.log.Warn().Err(err).Str("user_id", sub.UserID.String()).Msg("reminder delivery failed")
		} else {
			sent = true
			sentAt = &now
		}
	}

	return u.txm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		if err := u.reminders.Save(ctx, tx, &model.SubscriptionReminder{
			ID:             uuid.NewString(),
			UserID:         sub.UserID,
			SubscriptionID: sub.ID,
			ReminderType:   kind,
			RenewalDate:    renewal,
			Sent:           sent,
			SentAt:         sentAt,
			CreatedAt:      now,
		}); err != nil {
			return err
		}
		return u.timeline.Append(ctx, tx, &model.TimelineEvent{
			ID:          ulid.Make().String(),
			UserID:      sub.UserID,
			EventType:   model.EventReminderSent,
			Title:       "Renewal reminder",
			Description: string(kind) + " renewal reminder queued",
			Metadata: map[string]any{
				"subscriptionId": sub.ID.String(),
				"reminderType":   string(kind),
				"renewalDate":    renewal.Format(time.RFC3339),
			},
			Timestamp: now,
		})
	})
}
