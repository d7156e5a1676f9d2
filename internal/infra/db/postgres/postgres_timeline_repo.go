// File: internal/infra/db/postgres/postgres_timeline_repo.go
package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v4/pgxpool"

	"alertpe-admin/internal/domain/model"
	"alertpe-admin/internal/domain/ports/repository"
)

var _ repository.TimelineRepository = (*timelineRepo)(nil)

const timelineCols = `id, user_id, event_type, title, description, metadata, ts`

type timelineRepo struct{ pool *pgxpool.Pool }

func NewTimelineRepo(pool *pgxpool.Pool) *timelineRepo {
	return &timelineRepo{pool: pool}
}

func (r *timelineRepo) Append(ctx context.Context, tx repository.Tx, e *model.TimelineEvent) error {
	meta := []byte("{}")
	if e.Metadata != nil {
		var err error
		if meta, err = json.Marshal(e.Metadata); err != nil {
			return err
		}
	}
	const q = `INSERT INTO timeline_events (` + timelineCols + `) VALUES ($1,$2,$3,$4,$5,$6,$7);`
	_, err := execSQL(ctx, r.pool, tx, q, e.ID, e.UserID, e.EventType, e.Title, e.Description, meta, e.Timestamp)
	return mapWriteErr(err)
}

func (r *timelineRepo) ListByUser(ctx context.Context, tx repository.Tx, userID model.UserID, limit int) ([]*model.TimelineEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	const q = `SELECT ` + timelineCols + ` FROM timeline_events WHERE user_id=$1 ORDER BY ts DESC LIMIT $2;`
	return r.queryList(ctx, tx, q, userID, limit)
}

func (r *timelineRepo) ListAll(ctx context.Context, tx repository.Tx, offset, limit int) ([]*model.TimelineEvent, error) {
	if limit <= 0 {
		limit = 100
	}
	const q = `SELECT ` + timelineCols + ` FROM timeline_events ORDER BY ts DESC LIMIT $1 OFFSET $2;`
	return r.queryList(ctx, tx, q, limit, offset)
}

func (r *timelineRepo) queryList(ctx context.Context, tx repository.Tx, q string, args ...interface{}) ([]*model.TimelineEvent, error) {
	rows, err := queryRows(ctx, r.pool, tx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.TimelineEvent
	for rows.Next() {
		e := &model.TimelineEvent{}
		var meta []byte
		if err := rows.Scan(&e.ID, &e.UserID, &e.EventType, &e.Title, &e.Description, &meta, &e.Timestamp); err != nil {
			return nil, mapReadErr(err)
		}
		if len(meta) > 0 {
			_ = json.Unmarshal(meta, &e.Metadata)
		}
		out = append(out, e)
	}
	return out, nil
}
