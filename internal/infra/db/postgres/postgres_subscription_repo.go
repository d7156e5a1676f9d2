// File: internal/infra/db/postgres/postgres_subscription_repo.go
package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"alertpe-admin/internal/domain/model"
	"alertpe-admin/internal/domain/ports/repository"
)

var _ repository.SubscriptionRepository = (*subscriptionRepo)(nil)

const subCols = `id, user_id, plan_id, status, trial_start_date, trial_end_date, subscription_start_date, subscription_end_date, next_renewal_date, mandate_id, gateway_subscription_id, amount, failure_reason, created_at, updated_at`

type subscriptionRepo struct{ pool *pgxpool.Pool }

func NewSubscriptionRepo(pool *pgxpool.Pool) *subscriptionRepo {
	return &subscriptionRepo{pool: pool}
}

func (r *subscriptionRepo) Save(ctx context.Context, tx repository.Tx, s *model.Subscription) error {
	const q = `
INSERT INTO subscriptions (` + subCols + `) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
ON CONFLICT (id) DO UPDATE SET
  status=$4, trial_start_date=$5, trial_end_date=$6, subscription_start_date=$7,
  subscription_end_date=$8, next_renewal_date=$9, mandate_id=$10,
  gateway_subscription_id=$11, amount=$12, failure_reason=$13, updated_at=$15;`
	_, err := execSQL(ctx, r.pool, tx, q,
		s.ID, s.UserID, s.PlanID, s.Status, s.TrialStartDate, s.TrialEndDate,
		s.SubscriptionStartDate, s.SubscriptionEndDate, s.NextRenewalDate,
		s.MandateID, s.GatewaySubscriptionID, s.Amount, s.FailureReason,
		s.CreatedAt, s.UpdatedAt)
	return mapWriteErr(err)
}

func (r *subscriptionRepo) FindByID(ctx context.Context, tx repository.Tx, id model.SubscriptionID) (*model.Subscription, error) {
	const q = `SELECT ` + subCols + ` FROM subscriptions WHERE id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return scanSubscription(row.Scan)
}

func (r *subscriptionRepo) FindByUser(ctx context.Context, tx repository.Tx, userID model.UserID) (*model.Subscription, error) {
	const q = `SELECT ` + subCols + ` FROM subscriptions WHERE user_id=$1 ORDER BY updated_at DESC LIMIT 1;`
	row, err := pickRow(ctx, r.pool, tx, q, userID)
	if err != nil {
		return nil, err
	}
	return scanSubscription(row.Scan)
}

func (r *subscriptionRepo) FindBlockingByUser(ctx context.Context, tx repository.Tx, userID model.UserID) (*model.Subscription, error) {
	const q = `SELECT ` + subCols + ` FROM subscriptions
WHERE user_id=$1 AND status IN ('trial','active') ORDER BY updated_at DESC LIMIT 1;`
	row, err := pickRow(ctx, r.pool, tx, q, userID)
	if err != nil {
		return nil, err
	}
	return scanSubscription(row.Scan)
}

func (r *subscriptionRepo) FindByGatewaySubscriptionID(ctx context.Context, tx repository.Tx, id model.GatewaySubscriptionID) (*model.Subscription, error) {
	const q = `SELECT ` + subCols + ` FROM subscriptions WHERE gateway_subscription_id=$1 LIMIT 1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return scanSubscription(row.Scan)
}

func (r *subscriptionRepo) ListExpiredTrials(ctx context.Context, tx repository.Tx, asOf time.Time) ([]*model.Subscription, error) {
	const q = `SELECT ` + subCols + ` FROM subscriptions
WHERE status='trial' AND trial_end_date <= $1 ORDER BY trial_end_date ASC;`
	return r.queryList(ctx, tx, q, asOf)
}

func (r *subscriptionRepo) ListDueForRenewal(ctx context.Context, tx repository.Tx, asOf time.Time) ([]*model.Subscription, error) {
	const q = `SELECT ` + subCols + ` FROM subscriptions
WHERE status='active' AND next_renewal_date IS NOT NULL AND next_renewal_date <= $1
ORDER BY next_renewal_date ASC;`
	return r.queryList(ctx, tx, q, asOf)
}

func (r *subscriptionRepo) ListActiveWithRenewal(ctx context.Context, tx repository.Tx) ([]*model.Subscription, error) {
	const q = `SELECT ` + subCols + ` FROM subscriptions
WHERE status='active' AND next_renewal_date IS NOT NULL ORDER BY next_renewal_date ASC;`
	return r.queryList(ctx, tx, q)
}

func (r *subscriptionRepo) List(ctx context.Context, tx repository.Tx, offset, limit int) ([]*model.Subscription, error) {
	if limit <= 0 {
		limit = 100
	}
	const q = `SELECT ` + subCols + ` FROM subscriptions ORDER BY updated_at DESC LIMIT $1 OFFSET $2;`
	return r.queryList(ctx, tx, q, limit, offset)
}

func (r *subscriptionRepo) CountByStatus(ctx context.Context, tx repository.Tx) (map[model.SubscriptionStatus]int, error) {
	rows, err := queryRows(ctx, r.pool, tx, `SELECT status, COUNT(*) FROM subscriptions GROUP BY status;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[model.SubscriptionStatus]int)
	for rows.Next() {
		var status model.SubscriptionStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, mapReadErr(err)
		}
		out[status] = n
	}
	return out, nil
}

func (r *subscriptionRepo) queryList(ctx context.Context, tx repository.Tx, q string, args ...interface{}) ([]*model.Subscription, error) {
	rows, err := queryRows(ctx, r.pool, tx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Subscription
	for rows.Next() {
		s, err := scanSubscription(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func scanSubscription(scan func(...interface{}) error) (*model.Subscription, error) {
	s := &model.Subscription{}
	if err := scan(&s.ID, &s.UserID, &s.PlanID, &s.Status, &s.TrialStartDate, &s.TrialEndDate,
		&s.SubscriptionStartDate, &s.SubscriptionEndDate, &s.NextRenewalDate,
		&s.MandateID, &s.GatewaySubscriptionID, &s.Amount, &s.FailureReason,
		&s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, mapReadErr(err)
	}
	return s, nil
}
