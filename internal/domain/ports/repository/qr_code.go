package repository

import (
	"context"

	"alertpe-admin/internal/domain/model"
)

type QRCodeRepository interface {
	Save(ctx context.Context, tx Tx, q *model.QRCode) error
	ListByUser(ctx context.Context, tx Tx, userID model.UserID, limit int) ([]*model.QRCode, error)
	ListAll(ctx context.Context, tx Tx, limit int) ([]*model.QRCode, error)
}
