package repository

import (
	"context"

	"alertpe-admin/internal/domain/model"
)

type MandateRepository interface {
	Save(ctx context.Context, tx Tx, m *model.Mandate) error
	FindByMandateID(ctx context.Context, tx Tx, id model.MandateID) (*model.Mandate, error)
	FindByPaymentLinkID(ctx context.Context, tx Tx, linkID string) (*model.Mandate, error)
	ListByUser(ctx context.Context, tx Tx, userID model.UserID) ([]*model.Mandate, error)
	List(ctx context.Context, tx Tx, offset, limit int) ([]*model.Mandate, error)
}
