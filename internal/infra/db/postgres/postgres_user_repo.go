// File: internal/infra/db/postgres/postgres_user_repo.go
package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	"alertpe-admin/internal/domain/model"
	"alertpe-admin/internal/domain/ports/repository"
)

var _ repository.UserRepository = (*userRepo)(nil)

const userCols = `id, username, email, mobile, device_id, subscription, registered_at, updated_at`

type userRepo struct{ pool *pgxpool.Pool }

func NewUserRepo(pool *pgxpool.Pool) *userRepo {
	return &userRepo{pool: pool}
}

func (r *userRepo) Save(ctx context.Context, tx repository.Tx, u *model.User) error {
	const q = `
INSERT INTO users (` + userCols + `) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
ON CONFLICT (id) DO UPDATE SET
  username=$2, email=$3, mobile=$4, device_id=$5, subscription=$6, updated_at=$8;`
	_, err := execSQL(ctx, r.pool, tx, q, u.ID, u.Username, u.Email, u.Mobile, u.DeviceID, u.Subscription, u.RegisteredAt, u.UpdatedAt)
	return mapWriteErr(err)
}

func (r *userRepo) FindByID(ctx context.Context, tx repository.Tx, id model.UserID) (*model.User, error) {
	const q = `SELECT ` + userCols + ` FROM users WHERE id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	u := &model.User{}
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Mobile, &u.DeviceID, &u.Subscription, &u.RegisteredAt, &u.UpdatedAt); err != nil {
		return nil, mapReadErr(err)
	}
	return u, nil
}

func (r *userRepo) List(ctx context.Context, tx repository.Tx, offset, limit int) ([]*model.User, error) {
	if limit <= 0 {
		limit = 100
	}
	const q = `SELECT ` + userCols + ` FROM users ORDER BY registered_at DESC LIMIT $1 OFFSET $2;`
	rows, err := queryRows(ctx, r.pool, tx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.User
	for rows.Next() {
		u := &model.User{}
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Mobile, &u.DeviceID, &u.Subscription, &u.RegisteredAt, &u.UpdatedAt); err != nil {
			return nil, mapReadErr(err)
		}
		out = append(out, u)
	}
	return out, nil
}

func (r *userRepo) CountUsers(ctx context.Context, tx repository.Tx) (int, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT COUNT(*) FROM users;`)
	if err != nil {
		return 0, err
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, mapReadErr(err)
	}
	return n, nil
}

func (r *userRepo) UpdateSubscriptionState(ctx context.Context, tx repository.Tx, id model.UserID, state string) error {
	const q = `UPDATE users SET subscription=$2, updated_at=NOW() WHERE id=$1;`
	_, err := execSQL(ctx, r.pool, tx, q, id, state)
	return mapWriteErr(err)
}
