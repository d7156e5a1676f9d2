package model

import (
	"fmt"
	"time"

	"alertpe-admin/internal/domain"
)

type MandateStatus string

const (
	MandateStatusPending  MandateStatus = "pending"
	MandateStatusApproved MandateStatus = "approved"
	MandateStatusRejected MandateStatus = "rejected"
	MandateStatusCancelled MandateStatus = "cancelled"
)

// Mandate is a standing authorization for recurring UPI debits. Created
// pending; the gateway's redirect callback flips it to approved/rejected.
// Mandates never auto-expire.
type Mandate struct {
	ID            string // row id
	UserID        UserID
	MandateID     MandateID
	PaymentLinkID string // gateway payment-link id, echoed on the approval redirect
	Status        MandateStatus
	Amount        int64
	Frequency     string // "monthly" | "yearly"
	BankAccount   string // identifier shown to the admin; the app uses the mobile number
	ApprovalURL   string
	ApprovedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewPendingMandate(rowID string, userID UserID, mandateID MandateID, amount int64, frequency, bankAccount, approvalURL string, now time.Time) (*Mandate, error) {
	if rowID == "" || userID.Empty() || mandateID.Empty() || amount <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	if frequency == "" {
		frequency = "monthly"
	}
	return &Mandate{
		ID:          rowID,
		UserID:      userID,
		MandateID:   mandateID,
		Status:      MandateStatusPending,
		Amount:      amount,
		Frequency:   frequency,
		BankAccount: bankAccount,
		ApprovalURL: approvalURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// GenerateMandateID follows the wire format the mobile app already parses:
// mandate_<epochMillis>_<last 6 of the user id>.
func GenerateMandateID(userID UserID, now time.Time) MandateID {
	suffix := userID.String()
	if len(suffix) > 6 {
		suffix = suffix[len(suffix)-6:]
	}
	return MandateID(fmt.Sprintf("mandate_%d_%s", now.UnixMilli(), suffix))
}
