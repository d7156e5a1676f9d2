// File: internal/infra/db/postgres/postgres_webhook_log_repo.go
package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	"alertpe-admin/internal/domain/model"
	"alertpe-admin/internal/domain/ports/repository"
)

var _ repository.WebhookLogRepository = (*webhookLogRepo)(nil)

const webhookLogCols = `id, event_type, payload, subscription_id, mandate_id, user_id, processed, created_at`

type webhookLogRepo struct{ pool *pgxpool.Pool }

func NewWebhookLogRepo(pool *pgxpool.Pool) *webhookLogRepo {
	return &webhookLogRepo{pool: pool}
}

func (r *webhookLogRepo) Save(ctx context.Context, tx repository.Tx, l *model.WebhookLog) error {
	const q = `INSERT INTO webhook_logs (` + webhookLogCols + `) VALUES ($1,$2,$3,$4,$5,$6,$7,$8);`
	_, err := execSQL(ctx, r.pool, tx, q, l.ID, l.EventType, l.Payload, l.SubscriptionID, l.MandateID, l.UserID, l.Processed, l.CreatedAt)
	return mapWriteErr(err)
}

func (r *webhookLogRepo) MarkProcessed(ctx context.Context, tx repository.Tx, id string, userID model.UserID) error {
	const q = `UPDATE webhook_logs SET processed=TRUE, user_id=$2 WHERE id=$1;`
	_, err := execSQL(ctx, r.pool, tx, q, id, userID)
	return mapWriteErr(err)
}

func (r *webhookLogRepo) List(ctx context.Context, tx repository.Tx, offset, limit int) ([]*model.WebhookLog, error) {
	if limit <= 0 {
		limit = 100
	}
	const q = `SELECT ` + webhookLogCols + ` FROM webhook_logs ORDER BY created_at DESC LIMIT $1 OFFSET $2;`
	rows, err := queryRows(ctx, r.pool, tx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.WebhookLog
	for rows.Next() {
		l := &model.WebhookLog{}
		if err := rows.Scan(&l.ID, &l.EventType, &l.Payload, &l.SubscriptionID, &l.MandateID, &l.UserID, &l.Processed, &l.CreatedAt); err != nil {
			return nil, mapReadErr(err)
		}
		out = append(out, l)
	}
	return out, nil
}
