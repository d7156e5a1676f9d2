package model

import (
	"fmt"
	"strings"
	"time"

	"alertpe-admin/internal/domain"
)

// UnknownUPISentinel is what the mobile client sends when it could not pull a
// payer address out of the notification; such reports are rejected.
const UnknownUPISentinel = "unknown@upi"

// Payment is one UPI credit detected on a user's phone. Amount stays the
// decimal text the client scraped ("199", "1,250.00"); it is display data,
// never arithmetic input.
type Payment struct {
	ID               PaymentID
	UserID           UserID
	Amount           string
	PaymentApp       string
	UpiID            string
	TransactionID    string
	NotificationText string
	Status           string // free text, "Received" on creation and never transitioned
	Timestamp        time.Time
	Date             string // display strings the mobile UI renders verbatim
	Time             string
}

const PaymentStatusReceived = "Received"

// NewPayment validates the ingest fields and stamps display strings from now.
// A missing transaction id is synthesized as TXN<epochMillis>.
func NewPayment(id PaymentID, userID UserID, amount, paymentApp, upiID, transactionID, notificationText string, now time.Time) (*Payment, error) {
	if userID.Empty() || amount == "" || paymentApp == "" {
		return nil, domain.ErrMissingFields
	}
	if !ValidUPIID(upiID) {
		return nil, domain.ErrInvalidUPIID
	}
	if transactionID == "" {
		transactionID = SynthesizeTransactionID(now)
	}
	return &Payment{
		ID:               id,
		UserID:           userID,
		Amount:           amount,
		PaymentApp:       paymentApp,
		UpiID:            upiID,
		TransactionID:    transactionID,
		NotificationText: notificationText,
		Status:           PaymentStatusReceived,
		Timestamp:        now,
		Date:             now.Format("Mon Jan 02 2006"),
		Time:             now.Format("15:04"),
	}, nil
}

// ValidUPIID accepts handle@provider addresses and rejects the client's
// unknown sentinel.
func ValidUPIID(upiID string) bool {
	return upiID != "" && upiID != UnknownUPISentinel && strings.Contains(upiID, "@")
}

func SynthesizeTransactionID(now time.Time) string {
	return fmt.Sprintf("TXN%d", now.UnixMilli())
}

// DedupKey is the fast-path cache key for the upiId+amount window check.
func (p *Payment) DedupKey() string {
	return DedupKey(p.UpiID, p.Amount)
}

func DedupKey(upiID, amount string) string {
	return upiID + "|" + amount
}
