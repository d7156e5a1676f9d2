// File: internal/infra/db/postgres/postgres_reminder_repo.go
package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"alertpe-admin/internal/domain/model"
	"alertpe-admin/internal/domain/ports/repository"
)

var _ repository.ReminderRepository = (*reminderRepo)(nil)

const reminderCols = `id, user_id, subscription_id, reminder_type, renewal_date, sent, sent_at, created_at`

type reminderRepo struct{ pool *pgxpool.Pool }

func NewReminderRepo(pool *pgxpool.Pool) *reminderRepo {
	return &reminderRepo{pool: pool}
}

func (r *reminderRepo) Save(ctx context.Context, tx repository.Tx, rem *model.SubscriptionReminder) error {
	// The unique (subscription_id, reminder_type, renewal_date) index is the
	// backstop against concurrent sweeps; conflicts are ignored.
	const q = `
INSERT INTO subscription_reminders (` + reminderCols + `) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
ON CONFLICT (subscription_id, reminder_type, renewal_date) DO NOTHING;`
	_, err := execSQL(ctx, r.pool, tx, q, rem.ID, rem.UserID, rem.SubscriptionID, rem.ReminderType, rem.RenewalDate, rem.Sent, rem.SentAt, rem.CreatedAt)
	return mapWriteErr(err)
}

func (r *reminderRepo) Exists(ctx context.Context, tx repository.Tx, subscriptionID model.SubscriptionID, reminderType model.ReminderType, renewalDate time.Time) (bool, error) {
	const q = `SELECT EXISTS (
  SELECT 1 FROM subscription_reminders
  WHERE subscription_id=$1 AND reminder_type=$2 AND renewal_date=$3
);`
	row, err := pickRow(ctx, r.pool, tx, q, subscriptionID, reminderType, renewalDate)
	if err != nil {
		return false, err
	}
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, mapReadErr(err)
	}
	return exists, nil
}

func (r *reminderRepo) ListByUser(ctx context.Context, tx repository.Tx, userID model.UserID) ([]*model.SubscriptionReminder, error) {
	const q = `SELECT ` + reminderCols + ` FROM subscription_reminders WHERE user_id=$1 ORDER BY created_at DESC;`
	return r.queryList(ctx, tx, q, userID)
}

func (r *reminderRepo) List(ctx context.Context, tx repository.Tx, offset, limit int) ([]*model.SubscriptionReminder, error) {
	if limit <= 0 {
		limit = 100
	}
	const q = `SELECT ` + reminderCols + ` FROM subscription_reminders ORDER BY created_at DESC LIMIT $1 OFFSET $2;`
	return r.queryList(ctx, tx, q, limit, offset)
}

func (r *reminderRepo) queryList(ctx context.Context, tx repository.Tx, q string, args ...interface{}) ([]*model.SubscriptionReminder, error) {
	rows, err := queryRows(ctx, r.pool, tx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.SubscriptionReminder
	for rows.Next() {
		rem := &model.SubscriptionReminder{}
		if err := rows.Scan(&rem.ID, &rem.UserID, &rem.SubscriptionID, &rem.ReminderType, &rem.RenewalDate, &rem.Sent, &rem.SentAt, &rem.CreatedAt); err != nil {
			return nil, mapReadErr(err)
		}
		out = append(out, rem)
	}
	return out, nil
}
