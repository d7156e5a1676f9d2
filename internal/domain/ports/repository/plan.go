package repository

import (
	"context"

	"alertpe-admin/internal/domain/model"
)

type PlanRepository interface {
	Save(ctx context.Context, tx Tx, p *model.Plan) error
	FindByID(ctx context.Context, tx Tx, id model.PlanID) (*model.Plan, error)
	List(ctx context.Context, tx Tx) ([]*model.Plan, error)
	Delete(ctx context.Context, tx Tx, id model.PlanID) error
}
