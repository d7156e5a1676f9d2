// File: internal/infra/db/postgres/postgres_mandate_repo.go
package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	"alertpe-admin/internal/domain/model"
	"alertpe-admin/internal/domain/ports/repository"
)

var _ repository.MandateRepository = (*mandateRepo)(nil)

const mandateCols = `id, user_id, mandate_id, payment_link_id, status, amount, frequency, bank_account, approval_url, approved_at, created_at, updated_at`

type mandateRepo struct{ pool *pgxpool.Pool }

func NewMandateRepo(pool *pgxpool.Pool) *mandateRepo {
	return &mandateRepo{pool: pool}
}

func (r *mandateRepo) Save(ctx context.Context, tx repository.Tx, m *model.Mandate) error {
	const q = `
INSERT INTO mandates (` + mandateCols + `) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
ON CONFLICT (id) DO UPDATE SET
  payment_link_id=$4, status=$5, amount=$6, frequency=$7, bank_account=$8, approval_url=$9, approved_at=$10, updated_at=$12;`
	_, err := execSQL(ctx, r.pool, tx, q, m.ID, m.UserID, m.MandateID, m.PaymentLinkID, m.Status, m.Amount, m.Frequency, m.BankAccount, m.ApprovalURL, m.ApprovedAt, m.CreatedAt, m.UpdatedAt)
	return mapWriteErr(err)
}

func (r *mandateRepo) FindByPaymentLinkID(ctx context.Context, tx repository.Tx, linkID string) (*model.Mandate, error) {
	const q = `SELECT ` + mandateCols + ` FROM mandates WHERE payment_link_id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, linkID)
	if err != nil {
		return nil, err
	}
	return scanMandate(row.Scan)
}

func (r *mandateRepo) FindByMandateID(ctx context.Context, tx repository.Tx, id model.MandateID) (*model.Mandate, error) {
	const q = `SELECT ` + mandateCols + ` FROM mandates WHERE mandate_id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return scanMandate(row.Scan)
}

func (r *mandateRepo) ListByUser(ctx context.Context, tx repository.Tx, userID model.UserID) ([]*model.Mandate, error) {
	const q = `SELECT ` + mandateCols + ` FROM mandates WHERE user_id=$1 ORDER BY created_at DESC;`
	return r.queryList(ctx, tx, q, userID)
}

func (r *mandateRepo) List(ctx context.Context, tx repository.Tx, offset, limit int) ([]*model.Mandate, error) {
	if limit <= 0 {
		limit = 100
	}
	const q = `SELECT ` + mandateCols + ` FROM mandates ORDER BY created_at DESC LIMIT $1 OFFSET $2;`
	return r.queryList(ctx, tx, q, limit, offset)
}

func (r *mandateRepo) queryList(ctx context.Context, tx repository.Tx, q string, args ...interface{}) ([]*model.Mandate, error) {
	rows, err := queryRows(ctx, r.pool, tx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Mandate
	for rows.Next() {
		m, err := scanMandate(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func scanMandate(scan func(...interface{}) error) (*model.Mandate, error) {
	m := &model.Mandate{}
	if err := scan(&m.ID, &m.UserID, &m.MandateID, &m.PaymentLinkID, &m.Status, &m.Amount, &m.Frequency, &m.BankAccount, &m.ApprovalURL, &m.ApprovedAt, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, mapReadErr(err)
	}
	return m, nil
}
