package repository

import (
	"context"
	"time"

	"alertpe-admin/internal/domain/model"
)

type ReminderRepository interface {
	Save(ctx context.Context, tx Tx, r *model.SubscriptionReminder) error
	// Exists matches renewalDate by exact equality; an advanced renewal date
	// is a different dedupe key on purpose.
	Exists(ctx context.Context, tx Tx, subscriptionID model.SubscriptionID, reminderType model.ReminderType, renewalDate time.Time) (bool, error)
	ListByUser(ctx context.Context, tx Tx, userID model.UserID) ([]*model.SubscriptionReminder, error)
	List(ctx context.Context, tx Tx, offset, limit int) ([]*model.SubscriptionReminder, error)
}
