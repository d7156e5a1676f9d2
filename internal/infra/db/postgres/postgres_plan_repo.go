// File: internal/infra/db/postgres/postgres_plan_repo.go
package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v4/pgxpool"

	"alertpe-admin/internal/domain/model"
	"alertpe-admin/internal/domain/ports/repository"
)

var _ repository.PlanRepository = (*planRepo)(nil)

const planCols = `id, name, monthly_price, yearly_price, duration, features, active, created_at`

type planRepo struct{ pool *pgxpool.Pool }

func NewPlanRepo(pool *pgxpool.Pool) *planRepo {
	return &planRepo{pool: pool}
}

func (r *planRepo) Save(ctx context.Context, tx repository.Tx, p *model.Plan) error {
	features, err := json.Marshal(p.Features)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO plans (` + planCols + `) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
ON CONFLICT (id) DO UPDATE SET
  name=$2, monthly_price=$3, yearly_price=$4, duration=$5, features=$6, active=$7;`
	_, err = execSQL(ctx, r.pool, tx, q, p.ID, p.Name, p.MonthlyPrice, p.YearlyPrice, p.Duration, features, p.Active, p.CreatedAt)
	return mapWriteErr(err)
}

func (r *planRepo) FindByID(ctx context.Context, tx repository.Tx, id model.PlanID) (*model.Plan, error) {
	const q = `SELECT ` + planCols + ` FROM plans WHERE id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return scanPlan(row.Scan)
}

func (r *planRepo) List(ctx context.Context, tx repository.Tx) ([]*model.Plan, error) {
	const q = `SELECT ` + planCols + ` FROM plans WHERE active ORDER BY monthly_price ASC;`
	rows, err := queryRows(ctx, r.pool, tx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Plan
	for rows.Next() {
		p, err := scanPlan(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Delete deactivates; plan rows are referenced by subscriptions and never
// physically removed.
func (r *planRepo) Delete(ctx context.Context, tx repository.Tx, id model.PlanID) error {
	const q = `UPDATE plans SET active=FALSE WHERE id=$1;`
	_, err := execSQL(ctx, r.pool, tx, q, id)
	return mapWriteErr(err)
}

func scanPlan(scan func(...interface{}) error) (*model.Plan, error) {
	p := &model.Plan{}
	var features []byte
	if err := scan(&p.ID, &p.Name, &p.MonthlyPrice, &p.YearlyPrice, &p.Duration, &features, &p.Active, &p.CreatedAt); err != nil {
		return nil, mapReadErr(err)
	}
	if len(features) > 0 {
		_ = json.Unmarshal(features, &p.Features)
	}
	return p, nil
}
