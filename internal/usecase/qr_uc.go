// File: internal/usecase/qr_uc.go
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"alertpe-admin/internal/domain/model"
	"alertpe-admin/internal/domain/ports/repository"
)

var _ QRUseCase = (*qrUC)(nil)

type QRUseCase interface {
	// Create stores a soundbox QR for the user and returns it with the
	// generated UPI intent payload.
	Create(ctx context.Context, userID model.UserID, upiID string) (*model.QRCode, error)
	ListByUser(ctx context.Context, userID model.UserID, limit int) ([]*model.QRCode, error)
	ListAll(ctx context.Context, limit int) ([]*model.QRCode, error)
}

type qrUC struct {
	codes repository.QRCodeRepository
	now   func() time.Time
	log   *zerolog.Logger
}

func NewQRUseCase(codes repository.QRCodeRepository, logger *zerolog.Logger) *qrUC {
	l := logger.With().Str("component", "QRUC").Logger()
	return &qrUC{codes: codes, now: time.Now, log: &l}
}

func (u *qrUC) Create(ctx context.Context, userID model.UserID, upiID string) (*model.QRCode, error) {
	q, err := model.NewQRCode(uuid.NewString(), userID, upiID, u.now())
	if err != nil {
		return nil, err
	}
	if err := u.codes.Save(ctx, repository.NoTX, q); err != nil {
		return nil, err
	}
	u.log.Info().Str("user_id", userID.String()).Str("upi_id", upiID).Msg("qr code stored")
	return q, nil
}

func (u *qrUC) ListByUser(ctx context.Context, userID model.UserID, limit int) ([]*model.QRCode, error) {
	return u.codes.ListByUser(ctx, repository.NoTX, userID, limit)
}

func (u *qrUC) ListAll(ctx context.Context, limit int) ([]*model.QRCode, error) {
	return u.codes.ListAll(ctx, repository.NoTX, limit)
}
