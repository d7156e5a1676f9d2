// File: internal/infra/db/postgres/postgres_upi_app_repo.go
package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	"alertpe-admin/internal/domain/model"
	"alertpe-admin/internal/domain/ports/repository"
)

var _ repository.UpiAppRepository = (*upiAppRepo)(nil)

const upiAppCols = `id, name, package_name, icon, priority, active, created_at, updated_at`

type upiAppRepo struct{ pool *pgxpool.Pool }

func NewUpiAppRepo(pool *pgxpool.Pool) *upiAppRepo {
	return &upiAppRepo{pool: pool}
}

func (r *upiAppRepo) Save(ctx context.Context, tx repository.Tx, a *model.UpiApp) error {
	const sql = `
INSERT INTO upi_apps (` + upiAppCols + `) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
ON CONFLICT (id) DO UPDATE SET
  name=$2, package_name=$3, icon=$4, priority=$5, active=$6, updated_at=$8;`
	_, err := execSQL(ctx, r.pool, tx, sql, a.ID, a.Name, a.PackageName, a.Icon, a.Priority, a.Active, a.CreatedAt, a.UpdatedAt)
	return mapWriteErr(err)
}

func (r *upiAppRepo) ListActive(ctx context.Context, tx repository.Tx) ([]*model.UpiApp, error) {
	const sql = `SELECT ` + upiAppCols + ` FROM upi_apps WHERE active ORDER BY priority DESC, name ASC;`
	rows, err := queryRows(ctx, r.pool, tx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.UpiApp
	for rows.Next() {
		a := &model.UpiApp{}
		if err := rows.Scan(&a.ID, &a.Name, &a.PackageName, &a.Icon, &a.Priority, &a.Active, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, mapReadErr(err)
		}
		out = append(out, a)
	}
	return out, nil
}
