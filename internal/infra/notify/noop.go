// File: internal/infra/notify/noop.go
package notify

import (
	"context"

	"github.com/rs/zerolog"

	"alertpe-admin/internal/domain/model"
	"alertpe-admin/internal/domain/ports/adapter"
)

var _ adapter.Notifier = (*LogNotifier)(nil)

// LogNotifier records reminder sends in the log. Push delivery is handled by
// the mobile backend; this service only needs the attempt on record.
type LogNotifier struct {
	log *zerolog.Logger
}

func NewLogNotifier(logger *zerolog.Logger) *LogNotifier {
	l := logger.With().Str("component", "Notifier").Logger()
	return &LogNotifier{log: &l}
}

func (n *LogNotifier) Send(ctx context.Context, userID model.UserID, title, body string) error {
	n.log.Info().Str("user_id", userID.String()).Str("title", title).Str("body", body).Msg("notification")
	return nil
}
