package adapter

import (
	"context"

	"alertpe-admin/internal/domain/model"
)

// Notifier delivers renewal reminders to a user. Actual push/SMS transport
// lives outside this service; the sweep only needs a best-effort send.
type Notifier interface {
	Send(ctx context.Context, userID model.UserID, title, body string) error
}
