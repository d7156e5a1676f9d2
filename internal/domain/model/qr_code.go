package model

import (
	"fmt"
	"time"

	"alertpe-admin/internal/domain"
)

// QRCode is a stored soundbox QR: the UPI intent string the admin prints
// for a merchant. Rows are append-only.
type QRCode struct {
	ID        string
	UserID    UserID
	UpiID     string
	QRData    string
	CreatedAt time.Time
}

func NewQRCode(id string, userID UserID, upiID string, now time.Time) (*QRCode, error) {
	if id == "" || userID.Empty() || upiID == "" {
		return nil, domain.ErrMissingFields
	}
	return &QRCode{
		ID:        id,
		UserID:    userID,
		UpiID:     upiID,
		QRData:    fmt.Sprintf("upi://pay?pa=%s&pn=AlertPe%%20Soundbox&cu=INR", upiID),
		CreatedAt: now,
	}, nil
}
