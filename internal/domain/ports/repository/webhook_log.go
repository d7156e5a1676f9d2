package repository

import (
	"context"

	"alertpe-admin/internal/domain/model"
)

type WebhookLogRepository interface {
	Save(ctx context.Context, tx Tx, l *model.WebhookLog) error
	MarkProcessed(ctx context.Context, tx Tx, id string, userID model.UserID) error
	List(ctx context.Context, tx Tx, offset, limit int) ([]*model.WebhookLog, error)
}
