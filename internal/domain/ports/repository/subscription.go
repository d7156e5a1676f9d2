package repository

import (
	"context"
	"time"

	"alertpe-admin/internal/domain/model"
)

type SubscriptionRepository interface {
	Save(ctx context.Context, tx Tx, s *model.Subscription) error
	FindByID(ctx context.Context, tx Tx, id model.SubscriptionID) (*model.Subscription, error)
	// FindByUser returns the user's most recent subscription row regardless
	// of status (the store allows several terminal rows per user).
	FindByUser(ctx context.Context, tx Tx, userID model.UserID) (*model.Subscription, error)
	// FindBlockingByUser returns a trial or active subscription if one exists.
	FindBlockingByUser(ctx context.Context, tx Tx, userID model.UserID) (*model.Subscription, error)
	FindByGatewaySubscriptionID(ctx context.Context, tx Tx, id model.GatewaySubscriptionID) (*model.Subscription, error)
	ListExpiredTrials(ctx context.Context, tx Tx, asOf time.Time) ([]*model.Subscription, error)
	ListDueForRenewal(ctx context.Context, tx Tx, asOf time.Time) ([]*model.Subscription, error)
	ListActiveWithRenewal(ctx context.Context, tx Tx) ([]*model.Subscription, error)
	List(ctx context.Context, tx Tx, offset, limit int) ([]*model.Subscription, error)
	CountByStatus(ctx context.Context, tx Tx) (map[model.SubscriptionStatus]int, error)
}
