package repository

import (
	"context"

	"alertpe-admin/internal/domain/model"
)

type UpiAppRepository interface {
	Save(ctx context.Context, tx Tx, a *model.UpiApp) error
	// ListActive returns enabled apps, highest priority first.
	ListActive(ctx context.Context, tx Tx) ([]*model.UpiApp, error)
}
