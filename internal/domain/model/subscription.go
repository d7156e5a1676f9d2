package model

import (
	"time"

	"alertpe-admin/internal/domain"
)

type SubscriptionStatus string

const (
	SubscriptionStatusTrial     SubscriptionStatus = "trial"
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
)

// Subscription is one user's billing relationship to a plan.
//
// Transitions are one-directional except active<->expired: a successful
// gateway charge resurrects an expired record, a failed one expires an
// active record. trial/cancelled never come back.
type Subscription struct {
	ID                    SubscriptionID
	UserID                UserID
	PlanID                PlanID
	Status                SubscriptionStatus
	TrialStartDate        *time.Time
	TrialEndDate          *time.Time
	SubscriptionStartDate *time.Time
	SubscriptionEndDate   *time.Time
	NextRenewalDate       *time.Time
	MandateID             MandateID
	GatewaySubscriptionID GatewaySubscriptionID
	Amount                int64
	FailureReason         string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// NewTrialSubscription computes the trial window from now:
// trial ends after trialDays, paid period starts at trial end, and the first
// renewal is pencilled in 30 days after that.
func NewTrialSubscription(id SubscriptionID, userID UserID, planID PlanID, amount int64, trialDays int, now time.Time) (*Subscription, error) {
	if id.Empty() || userID.Empty() || planID.Empty() || trialDays <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	trialEnd := now.AddDate(0, 0, trialDays)
	firstRenewal := trialEnd.Add(30 * 24 * time.Hour)
	return &Subscription{
		ID:                    id,
		UserID:                userID,
		PlanID:                planID,
		Status:                SubscriptionStatusTrial,
		TrialStartDate:        &now,
		TrialEndDate:          &trialEnd,
		SubscriptionStartDate: &trialEnd,
		NextRenewalDate:       &firstRenewal,
		Amount:                amount,
		CreatedAt:             now,
		UpdatedAt:             now,
	}, nil
}

// Blocking reports whether this subscription blocks the user from starting a
// new trial (the at-most-one-non-terminal-subscription invariant).
func (s *Subscription) Blocking() bool {
	return s.Status == SubscriptionStatusTrial || s.Status == SubscriptionStatusActive
}

// TrialExpired reports whether a trial subscription's trial window has closed.
func (s *Subscription) TrialExpired(now time.Time) bool {
	return s.Status == SubscriptionStatusTrial && s.TrialEndDate != nil && !s.TrialEndDate.After(now)
}

// RenewalDue reports whether an active subscription has passed its renewal
// instant.
func (s *Subscription) RenewalDue(now time.Time) bool {
	return s.Status == SubscriptionStatusActive && s.NextRenewalDate != nil && !s.NextRenewalDate.After(now)
}
