// File: internal/infra/db/postgres/postgres_qr_repo.go
package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	"alertpe-admin/internal/domain/model"
	"alertpe-admin/internal/domain/ports/repository"
)

var _ repository.QRCodeRepository = (*qrRepo)(nil)

const qrCols = `id, user_id, upi_id, qr_data, created_at`

type qrRepo struct{ pool *pgxpool.Pool }

func NewQRRepo(pool *pgxpool.Pool) *qrRepo {
	return &qrRepo{pool: pool}
}

func (r *qrRepo) Save(ctx context.Context, tx repository.Tx, q *model.QRCode) error {
	const sql = `INSERT INTO qr_codes (` + qrCols + `) VALUES ($1,$2,$3,$4,$5);`
	_, err := execSQL(ctx, r.pool, tx, sql, q.ID, q.UserID, q.UpiID, q.QRData, q.CreatedAt)
	return mapWriteErr(err)
}

func (r *qrRepo) ListByUser(ctx context.Context, tx repository.Tx, userID model.UserID, limit int) ([]*model.QRCode, error) {
	if limit <= 0 {
		limit = 10
	}
	const sql = `SELECT ` + qrCols + ` FROM qr_codes WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2;`
	return r.queryList(ctx, tx, sql, userID, limit)
}

func (r *qrRepo) ListAll(ctx context.Context, tx repository.Tx, limit int) ([]*model.QRCode, error) {
	if limit <= 0 {
		limit = 50
	}
	const sql = `SELECT ` + qrCols + ` FROM qr_codes ORDER BY created_at DESC LIMIT $1;`
	return r.queryList(ctx, tx, sql, limit)
}

func (r *qrRepo) queryList(ctx context.Context, tx repository.Tx, sql string, args ...interface{}) ([]*model.QRCode, error) {
	rows, err := queryRows(ctx, r.pool, tx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.QRCode
	for rows.Next() {
		q := &model.QRCode{}
		if err := rows.Scan(&q.ID, &q.UserID, &q.UpiID, &q.QRData, &q.CreatedAt); err != nil {
			return nil, mapReadErr(err)
		}
		out = append(out, q)
	}
	return out, nil
}
