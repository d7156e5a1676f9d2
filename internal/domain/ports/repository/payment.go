package repository

import (
	"context"
	"time"

	"alertpe-admin/internal/domain/model"
)

type PaymentRepository interface {
	Save(ctx context.Context, tx Tx, p *model.Payment) error
	FindByID(ctx context.Context, tx Tx, id model.PaymentID) (*model.Payment, error)
	// FindDuplicate returns a payment matching either the transaction id or
	// the (upiId, amount) pair with a timestamp inside [from, to].
	// ErrNotFound means no duplicate.
	FindDuplicate(ctx context.Context, tx Tx, transactionID, upiID, amount string, from, to time.Time) (*model.Payment, error)
	ListByUser(ctx context.Context, tx Tx, userID model.UserID, from, to *time.Time, limit int) ([]*model.Payment, error)
	ListAll(ctx context.Context, tx Tx, offset, limit int) ([]*model.Payment, error)
	Delete(ctx context.Context, tx Tx, ids ...model.PaymentID) (int64, error)
	// SumByPeriod totals numeric amounts for "today" | "week" | "month".
	SumByPeriod(ctx context.Context, tx Tx, period string) (int64, error)
	CountPayments(ctx context.Context, tx Tx) (int, error)
}
