package repository

import (
	"context"

	"alertpe-admin/internal/domain/model"
)

// TimelineRepository is append-only: there is deliberately no update or
// delete.
type TimelineRepository interface {
	Append(ctx context.Context, tx Tx, e *model.TimelineEvent) error
	ListByUser(ctx context.Context, tx Tx, userID model.UserID, limit int) ([]*model.TimelineEvent, error)
	ListAll(ctx context.Context, tx Tx, offset, limit int) ([]*model.TimelineEvent, error)
}
