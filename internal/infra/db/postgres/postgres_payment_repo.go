// File: internal/infra/db/postgres/postgres_payment_repo.go
package postgres

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"alertpe-admin/internal/domain"
	"alertpe-admin/internal/domain/model"
	"alertpe-admin/internal/domain/ports/repository"
	"alertpe-admin/internal/infra/security"
)

var _ repository.PaymentRepository = (*paymentRepo)(nil)

const paymentCols = `id, user_id, amount, payment_app, upi_id, transaction_id, notification_text, status, ts, date_display, time_display`

// paymentRepo stores payments with the notification text encrypted at rest
// when an encryption service is configured.
type paymentRepo struct {
	pool *pgxpool.Pool
	enc  *security.EncryptionService
}

func NewPaymentRepo(pool *pgxpool.Pool, enc *security.EncryptionService) *paymentRepo {
	return &paymentRepo{pool: pool, enc: enc}
}

func (r *paymentRepo) Save(ctx context.Context, tx repository.Tx, p *model.Payment) error {
	text := p.NotificationText
	if r.enc != nil && text != "" {
		var err error
		if text, err = r.enc.Encrypt(text); err != nil {
			return domain.ErrOperationFailed
		}
	}
	const q = `
INSERT INTO payments (` + paymentCols + `) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
ON CONFLICT (id) DO UPDATE SET
  amount=$3, payment_app=$4, upi_id=$5, transaction_id=$6, notification_text=$7, status=$8;`
	_, err := execSQL(ctx, r.pool, tx, q, p.ID, p.UserID, p.Amount, p.PaymentApp, p.UpiID, p.TransactionID, text, p.Status, p.Timestamp, p.Date, p.Time)
	return mapWriteErr(err)
}

func (r *paymentRepo) FindByID(ctx context.Context, tx repository.Tx, id model.PaymentID) (*model.Payment, error) {
	const q = `SELECT ` + paymentCols + ` FROM payments WHERE id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return r.scanPayment(row.Scan)
}

func (r *paymentRepo) FindDuplicate(ctx context.Context, tx repository.Tx, transactionID, upiID, amount string, from, to time.Time) (*model.Payment, error) {
	const q = `SELECT ` + paymentCols + ` FROM payments
WHERE transaction_id=$1 OR (upi_id=$2 AND amount=$3 AND ts BETWEEN $4 AND $5)
LIMIT 1;`
	row, err := pickRow(ctx, r.pool, tx, q, transactionID, upiID, amount, from, to)
	if err != nil {
		return nil, err
	}
	return r.scanPayment(row.Scan)
}

func (r *paymentRepo) ListByUser(ctx context.Context, tx repository.Tx, userID model.UserID, from, to *time.Time, limit int) ([]*model.Payment, error) {
	q := `SELECT ` + paymentCols + ` FROM payments WHERE user_id=$1`
	args := []interface{}{userID}
	if from != nil && to != nil {
		q += ` AND ts >= $2 AND ts < $3`
		args = append(args, *from, *to)
	}
	q += ` ORDER BY ts DESC`
	if limit > 0 {
		args = append(args, limit)
		q += ` LIMIT $` + strconv.Itoa(len(args))
	}
	rows, err := queryRows(ctx, r.pool, tx, q+";", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collect(rows.Next, rows.Scan)
}

func (r *paymentRepo) ListAll(ctx context.Context, tx repository.Tx, offset, limit int) ([]*model.Payment, error) {
	q := `SELECT ` + paymentCols + ` FROM payments ORDER BY ts ASC`
	args := []interface{}{}
	if limit > 0 {
		args = append(args, limit, offset)
		q += ` LIMIT $1 OFFSET $2`
	}
	rows, err := queryRows(ctx, r.pool, tx, q+";", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collect(rows.Next, rows.Scan)
}

func (r *paymentRepo) Delete(ctx context.Context, tx repository.Tx, ids ...model.PaymentID) (int64, error) {
	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}
	const q = `DELETE FROM payments WHERE id = ANY($1);`
	tag, err := execSQL(ctx, r.pool, tx, q, raw)
	if err != nil {
		return 0, mapWriteErr(err)
	}
	return tag.RowsAffected(), nil
}

// SumByPeriod parses the stored decimal text server-side; rows that are not
// numeric after stripping commas count as zero.
func (r *paymentRepo) SumByPeriod(ctx context.Context, tx repository.Tx, period string) (int64, error) {
	var since string
	switch period {
	case "today":
		since = `DATE_TRUNC('day', NOW())`
	case "week":
		since = `DATE_TRUNC('week', NOW())`
	case "month":
		since = `DATE_TRUNC('month', NOW())`
	default:
		return 0, domain.ErrInvalidArgument
	}
	q := `SELECT COALESCE(SUM(
  CASE WHEN REPLACE(amount, ',', '') ~ '^[0-9]+(\.[0-9]+)?$'
       THEN REPLACE(amount, ',', '')::NUMERIC ELSE 0 END
), 0)::BIGINT FROM payments WHERE ts >= ` + since + `;`
	row, err := pickRow(ctx, r.pool, tx, q)
	if err != nil {
		return 0, err
	}
	var sum int64
	if err := row.Scan(&sum); err != nil {
		return 0, mapReadErr(err)
	}
	return sum, nil
}

func (r *paymentRepo) CountPayments(ctx context.Context, tx repository.Tx) (int, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT COUNT(*) FROM payments;`)
	if err != nil {
		return 0, err
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, mapReadErr(err)
	}
	return n, nil
}

func (r *paymentRepo) scanPayment(scan func(...interface{}) error) (*model.Payment, error) {
	p := &model.Payment{}
	if err := scan(&p.ID, &p.UserID, &p.Amount, &p.PaymentApp, &p.UpiID, &p.TransactionID, &p.NotificationText, &p.Status, &p.Timestamp, &p.Date, &p.Time); err != nil {
		return nil, mapReadErr(err)
	}
	if r.enc != nil && p.NotificationText != "" {
		if pt, err := r.enc.Decrypt(p.NotificationText); err == nil {
			p.NotificationText = pt
		}
		// Pre-encryption rows stay as stored.
	}
	return p, nil
}

func (r *paymentRepo) collect(next func() bool, scan func(...interface{}) error) ([]*model.Payment, error) {
	var out []*model.Payment
	for next() {
		p, err := r.scanPayment(scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
