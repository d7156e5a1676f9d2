// File: internal/usecase/payment_uc.go
package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"alertpe-admin/internal/domain"
	"alertpe-admin/internal/domain/model"
	"alertpe-admin/internal/domain/ports/repository"
)

// Compile-time check
var _ PaymentUseCase = (*paymentUC)(nil)

// DedupeCache is the short-lived fast path in front of the database window
// check. A cache miss is never an error: the repository check stays
// authoritative.
type DedupeCache interface {
	Seen(ctx context.Context, key string) (bool, error)
	Remember(ctx context.Context, key string) error
}

type IngestInput struct {
	UserID           model.UserID
	Amount           string
	PaymentApp       string
	UpiID            string
	TransactionID    string
	NotificationText string
}

type PaymentUseCase interface {
	// Ingest validates and stores one detected UPI credit, rejecting
	// duplicates per the transaction-id and upiId+amount window rules.
	Ingest(ctx context.Context, in IngestInput) (*model.Payment, error)
	// ListByUser returns payments for a user; dateFilter is "today" or "all".
	ListByUser(ctx context.Context, userID model.UserID, dateFilter string, limit int) ([]*model.Payment, error)
	ListAll(ctx context.Context, offset, limit int) ([]*model.Payment, error)
	Delete(ctx context.Context, ids ...model.PaymentID) (int64, error)
	// CleanupDuplicates is the batch pass: pairwise scan, delete the later of
	// any two payments sharing user and amount within two minutes.
	CleanupDuplicates(ctx context.Context) (int, error)
}

type paymentUC struct {
	payments    repository.PaymentRepository
	dedupe      DedupeCache
	dedupWindow time.Duration
	cleanupGap  time.Duration
	now         func() time.Time
	log         *zerolog.Logger
}

func NewPaymentUseCase(payments repository.PaymentRepository, dedupe DedupeCache, dedupWindow, cleanupGap time.Duration, logger *zerolog.Logger) *paymentUC {
	l := logger.With().Str("component", "PaymentUC").Logger()
	if dedupWindow <= 0 {
		dedupWindow = 5 * time.Minute
	}
	if cleanupGap <= 0 {
		cleanupGap = 2 * time.Minute
	}
	return &paymentUC{
		payments:    payments,
		dedupe:      dedupe,
		dedupWindow: dedupWindow,
		cleanupGap:  cleanupGap,
		now:         time.Now,
		log:         &l,
	}
}

func (u *paymentUC) Ingest(ctx context.Context, in IngestInput) (*model.Payment, error) {
	now := u.now()
	p, err := model.NewPayment(model.PaymentID(uuid.NewString()), in.UserID, in.Amount, in.PaymentApp, in.UpiID, in.TransactionID, in.NotificationText, now)
	if err != nil {
		return nil, err
	}

	// Fast path: a successful ingest leaves a 5-minute marker in Redis; a hit
	// here saves the window query. Cache errors fall through to the database.
	if u.dedupe != nil {
		if seen, err := u.dedupe.Seen(ctx, p.DedupKey()); err == nil && seen {
			return nil, domain.ErrDuplicatePayment
		}
	}

	from := now.Add(-u.dedupWindow)
	to := now.Add(u.dedupWindow)
	if _, err := u.payments.FindDuplicate(ctx, repository.NoTX, p.TransactionID, p.UpiID, p.Amount, from, to); err == nil {
		return nil, domain.ErrDuplicatePayment
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if err := u.payments.Save(ctx, repository.NoTX, p); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			// transaction id unique index raced us
			return nil, domain.ErrDuplicatePayment
		}
		return nil, err
	}

	if u.dedupe != nil {
		if err := u.dedupe.Remember(ctx, p.DedupKey()); err != nil {
			u.log.Warn().Err(err).Msg("dedupe cache write failed")
		}
	}

	u.log.Info().Str("user_id", p.UserID.String()).Str("app", p.PaymentApp).Str("amount", p.Amount).Msg("payment recorded")
	return p, nil
}

func (u *paymentUC) ListByUser(ctx context.Context, userID model.UserID, dateFilter string, limit int) ([]*model.Payment, error) {
	if userID.Empty() {
		return nil, domain.ErrInvalidArgument
	}
	var from, to *time.Time
	if dateFilter != "all" {
		now := u.now()
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		end := start.AddDate(0, 0, 1)
		from, to = &start, &end
	}
	return u.payments.ListByUser(ctx, repository.NoTX, userID, from, to, limit)
}

func (u *paymentUC) ListAll(ctx context.Context, offset, limit int) ([]*model.Payment, error) {
	return u.payments.ListAll(ctx, repository.NoTX, offset, limit)
}

func (u *paymentUC) Delete(ctx context.Context, ids ...model.PaymentID) (int64, error) {
	if len(ids) == 0 {
		return 0, domain.ErrInvalidArgument
	}
	return u.payments.Delete(ctx, repository.NoTX, ids...)
}

// CleanupDuplicates keeps the earlier row of every duplicate pair. The scan
// is quadratic over all stored payments; this is an operator-triggered batch
// correction, not part of the ingest path.
func (u *paymentUC) CleanupDuplicates(ctx context.Context) (int, error) {
	all, err := u.payments.ListAll(ctx, repository.NoTX, 0, 0)
	if err != nil {
		return 0, err
	}

	var doomed []model.PaymentID
	seen := make(map[model.PaymentID]bool)
	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			a, b := all[i], all[j]
			if a.UserID != b.UserID || a.Amount != b.Amount {
				continue
			}
			delta := b.Timestamp.Sub(a.Timestamp)
			if delta < 0 {
				delta = -delta
			}
			if delta < u.cleanupGap && !seen[b.ID] {
				seen[b.ID] = true
				doomed = append(doomed, b.ID)
			}
		}
	}

	if len(doomed) == 0 {
		return 0, nil
	}
	if _, err := u.payments.Delete(ctx, repository.NoTX, doomed...); err != nil {
		return 0, err
	}
	u.log.Info().Int("removed", len(doomed)).Msg("duplicate payments removed")
	return len(doomed), nil
}
