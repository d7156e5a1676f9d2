// File: internal/usecase/stats_uc.go
package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"alertpe-admin/internal/domain/model"
	"alertpe-admin/internal/domain/ports/repository"
)

var _ StatsUseCase = (*statsUC)(nil)

// DashboardStats is the admin landing-page aggregate.
type DashboardStats struct {
	TotalUsers             int   `json:"totalUsers"`
	TotalPayments          int   `json:"totalPayments"`
	TodayAmount            int64 `json:"todayAmount"`
	WeekAmount             int64 `json:"weekAmount"`
	MonthAmount            int64 `json:"monthAmount"`
	TrialSubscriptions     int   `json:"trialSubscriptions"`
	ActiveSubscriptions    int   `json:"activeSubscriptions"`
	ExpiredSubscriptions   int   `json:"expiredSubscriptions"`
	CancelledSubscriptions int   `json:"cancelledSubscriptions"`
}

type StatsUseCase interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
}

type statsUC struct {
	users    repository.UserRepository
	payments repository.PaymentRepository
	subs     repository.SubscriptionRepository
	log      *zerolog.Logger
}

func NewStatsUseCase(users repository.UserRepository, payments repository.PaymentRepository, subs repository.SubscriptionRepository, logger *zerolog.Logger) *statsUC {
	l := logger.With().Str("component", "StatsUC").Logger()
	return &statsUC{users: users, payments: payments, subs: subs, log: &l}
}

func (u *statsUC) Dashboard(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	var err error
	if stats.TotalUsers, err = u.users.CountUsers(ctx, repository.NoTX); err != nil {
		return nil, err
	}
	if stats.TotalPayments, err = u.payments.CountPayments(ctx, repository.NoTX); err != nil {
		return nil, err
	}
	if stats.TodayAmount, err = u.payments.SumByPeriod(ctx, repository.NoTX, "today"); err != nil {
		return nil, err
	}
	if stats.WeekAmount, err = u.payments.SumByPeriod(ctx, repository.NoTX, "week"); err != nil {
		return nil, err
	}
	if stats.MonthAmount, err = u.payments.SumByPeriod(ctx, repository.NoTX, "month"); err != nil {
		return nil, err
	}

	byStatus, err := u.subs.CountByStatus(ctx, repository.NoTX)
	if err != nil {
		return nil, err
	}
	stats.TrialSubscriptions = byStatus[model.SubscriptionStatusTrial]
	stats.ActiveSubscriptions = byStatus[model.SubscriptionStatusActive]
	stats.ExpiredSubscriptions = byStatus[model.SubscriptionStatusExpired]
	stats.CancelledSubscriptions = byStatus[model.SubscriptionStatusCancelled]
	return stats, nil
}
