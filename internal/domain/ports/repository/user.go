package repository

import (
	"context"

	"alertpe-admin/internal/domain/model"
)

type UserRepository interface {
	Save(ctx context.Context, tx Tx, u *model.User) error
	FindByID(ctx context.Context, tx Tx, id model.UserID) (*model.User, error)
	List(ctx context.Context, tx Tx, offset, limit int) ([]*model.User, error)
	CountUsers(ctx context.Context, tx Tx) (int, error)
	UpdateSubscriptionState(ctx context.Context, tx Tx, id model.UserID, state string) error
}
