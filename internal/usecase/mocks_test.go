// File: internal/usecase/mocks_test.go
package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"alertpe-admin/internal/domain"
	"alertpe-admin/internal/domain/model"
	"alertpe-admin/internal/domain/ports/adapter"
	"alertpe-admin/internal/domain/ports/repository"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// ---- transaction manager ----

// memTxManager runs fn directly with a nil tx handle. Repositories in this
// file ignore the handle, so "in a transaction" and "not" behave the same.
type memTxManager struct {
	mu    sync.Mutex
	calls int
	err   error // returned before fn runs, to simulate a begin failure
}

func newMemTxManager() *memTxManager { return &memTxManager{} }

func (m *memTxManager) WithTx(ctx context.Context, _ pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	m.mu.Lock()
	m.calls++
	err := m.err
	m.mu.Unlock()
	if err != nil {
		return err
	}
	return fn(ctx, repository.NoTX)
}

// ---- payment repository ----

type memPaymentRepo struct {
	mu    sync.RWMutex
	store map[model.PaymentID]*model.Payment

	SaveFunc          func(ctx context.Context, tx repository.Tx, p *model.Payment) error
	FindDuplicateFunc func(ctx context.Context, tx repository.Tx, transactionID, upiID, amount string, from, to time.Time) (*model.Payment, error)
}

func newMemPaymentRepo() *memPaymentRepo {
	return &memPaymentRepo{store: make(map[model.PaymentID]*model.Payment)}
}

func (m *memPaymentRepo) Save(ctx context.Context, tx repository.Tx, p *model.Payment) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, tx, p)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.store {
		if e.TransactionID == p.TransactionID && e.ID != p.ID {
			return domain.ErrAlreadyExists
		}
	}
	cp := *p
	m.store[p.ID] = &cp
	return nil
}

func (m *memPaymentRepo) FindByID(ctx context.Context, tx repository.Tx, id model.PaymentID) (*model.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memPaymentRepo) FindDuplicate(ctx context.Context, tx repository.Tx, transactionID, upiID, amount string, from, to time.Time) (*model.Payment, error) {
	if m.FindDuplicateFunc != nil {
		return m.FindDuplicateFunc(ctx, tx, transactionID, upiID, amount, from, to)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.store {
		if p.TransactionID == transactionID {
			cp := *p
			return &cp, nil
		}
		if p.UpiID == upiID && p.Amount == amount && !p.Timestamp.Before(from) && !p.Timestamp.After(to) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memPaymentRepo) ListByUser(ctx context.Context, tx repository.Tx, userID model.UserID, from, to *time.Time, limit int) ([]*model.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Payment
	for _, p := range m.store {
		if p.UserID != userID {
			continue
		}
		if from != nil && p.Timestamp.Before(*from) {
			continue
		}
		if to != nil && !p.Timestamp.Before(*to) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memPaymentRepo) ListAll(ctx context.Context, tx repository.Tx, offset, limit int) ([]*model.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Payment, 0, len(m.store))
	for _, p := range m.store {
		cp := *p
		out = append(out, &cp)
	}
	// oldest first, so cleanup's "keep the earlier row" is deterministic
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].Timestamp.Before(out[i].Timestamp) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (m *memPaymentRepo) Delete(ctx context.Context, tx repository.Tx, ids ...model.PaymentID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, id := range ids {
		if _, ok := m.store[id]; ok {
			delete(m.store, id)
			n++
		}
	}
	return n, nil
}

func (m *memPaymentRepo) SumByPeriod(ctx context.Context, tx repository.Tx, period string) (int64, error) {
	return 0, nil
}

func (m *memPaymentRepo) CountPayments(ctx context.Context, tx repository.Tx) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store), nil
}

// ---- user repository ----

type memUserRepo struct {
	mu     sync.RWMutex
	store  map[model.UserID]*model.User
	states map[model.UserID]string // last UpdateSubscriptionState per user
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{store: make(map[model.UserID]*model.User), states: make(map[model.UserID]string)}
}

func (m *memUserRepo) Save(ctx context.Context, tx repository.Tx, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.store[u.ID] = &cp
	return nil
}

func (m *memUserRepo) FindByID(ctx context.Context, tx repository.Tx, id model.UserID) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) List(ctx context.Context, tx repository.Tx, offset, limit int) ([]*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.User, 0, len(m.store))
	for _, u := range m.store {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memUserRepo) CountUsers(ctx context.Context, tx repository.Tx) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store), nil
}

func (m *memUserRepo) UpdateSubscriptionState(ctx context.Context, tx repository.Tx, id model.UserID, state string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[id] = state
	if u, ok := m.store[id]; ok {
		u.Subscription = state
	}
	return nil
}

func (m *memUserRepo) lastState(id model.UserID) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.states[id]
}

// ---- plan repository ----

type memPlanRepo struct {
	mu    sync.RWMutex
	store map[model.PlanID]*model.Plan
}

func newMemPlanRepo() *memPlanRepo {
	return &memPlanRepo{store: make(map[model.PlanID]*model.Plan)}
}

func (m *memPlanRepo) Save(ctx context.Context, tx repository.Tx, p *model.Plan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.store[p.ID] = &cp
	return nil
}

func (m *memPlanRepo) FindByID(ctx context.Context, tx repository.Tx, id model.PlanID) (*model.Plan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memPlanRepo) List(ctx context.Context, tx repository.Tx) ([]*model.Plan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Plan, 0, len(m.store))
	for _, p := range m.store {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memPlanRepo) Delete(ctx context.Context, tx repository.Tx, id model.PlanID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Active = false
	return nil
}

// ---- subscription repository ----

type memSubRepo struct {
	mu    sync.RWMutex
	store map[model.SubscriptionID]*model.Subscription

	SaveFunc func(ctx context.Context, tx repository.Tx, s *model.Subscription) error
}

func newMemSubRepo() *memSubRepo {
	return &memSubRepo{store: make(map[model.SubscriptionID]*model.Subscription)}
}

func (m *memSubRepo) Save(ctx context.Context, tx repository.Tx, s *model.Subscription) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, tx, s)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.store[s.ID] = &cp
	return nil
}

func (m *memSubRepo) FindByID(ctx context.Context, tx repository.Tx, id model.SubscriptionID) (*model.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memSubRepo) FindByUser(ctx context.Context, tx repository.Tx, userID model.UserID) (*model.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var latest *model.Subscription
	for _, s := range m.store {
		if s.UserID != userID {
			continue
		}
		if latest == nil || s.CreatedAt.After(latest.CreatedAt) {
			latest = s
		}
	}
	if latest == nil {
		return nil, domain.ErrNotFound
	}
	cp := *latest
	return &cp, nil
}

func (m *memSubRepo) FindBlockingByUser(ctx context.Context, tx repository.Tx, userID model.UserID) (*model.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.store {
		if s.UserID == userID && s.Blocking() {
			cp := *s
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memSubRepo) FindByGatewaySubscriptionID(ctx context.Context, tx repository.Tx, id model.GatewaySubscriptionID) (*model.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.store {
		if s.GatewaySubscriptionID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memSubRepo) ListExpiredTrials(ctx context.Context, tx repository.Tx, asOf time.Time) ([]*model.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Subscription
	for _, s := range m.store {
		if s.TrialExpired(asOf) {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memSubRepo) ListDueForRenewal(ctx context.Context, tx repository.Tx, asOf time.Time) ([]*model.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Subscription
	for _, s := range m.store {
		if s.RenewalDue(asOf) {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memSubRepo) ListActiveWithRenewal(ctx context.Context, tx repository.Tx) ([]*model.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Subscription
	for _, s := range m.store {
		if s.Status == model.SubscriptionStatusActive && s.NextRenewalDate != nil {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memSubRepo) List(ctx context.Context, tx repository.Tx, offset, limit int) ([]*model.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Subscription, 0, len(m.store))
	for _, s := range m.store {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memSubRepo) CountByStatus(ctx context.Context, tx repository.Tx) (map[model.SubscriptionStatus]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[model.SubscriptionStatus]int)
	for _, s := range m.store {
		out[s.Status]++
	}
	return out, nil
}

func (m *memSubRepo) get(id model.SubscriptionID) *model.Subscription {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.store[id]
	if !ok {
		return nil
	}
	cp := *s
	return &cp
}

// ---- mandate repository ----

type memMandateRepo struct {
	mu    sync.RWMutex
	store map[model.MandateID]*model.Mandate
}

func newMemMandateRepo() *memMandateRepo {
	return &memMandateRepo{store: make(map[model.MandateID]*model.Mandate)}
}

func (m *memMandateRepo) Save(ctx context.Context, tx repository.Tx, md *model.Mandate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *md
	m.store[md.MandateID] = &cp
	return nil
}

func (m *memMandateRepo) FindByMandateID(ctx context.Context, tx repository.Tx, id model.MandateID) (*model.Mandate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	md, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *md
	return &cp, nil
}

func (m *memMandateRepo) FindByPaymentLinkID(ctx context.Context, tx repository.Tx, linkID string) (*model.Mandate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, md := range m.store {
		if md.PaymentLinkID == linkID {
			cp := *md
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memMandateRepo) ListByUser(ctx context.Context, tx repository.Tx, userID model.UserID) ([]*model.Mandate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Mandate
	for _, md := range m.store {
		if md.UserID == userID {
			cp := *md
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memMandateRepo) List(ctx context.Context, tx repository.Tx, offset, limit int) ([]*model.Mandate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Mandate, 0, len(m.store))
	for _, md := range m.store {
		cp := *md
		out = append(out, &cp)
	}
	return out, nil
}

// ---- timeline repository ----

type memTimelineRepo struct {
	mu     sync.RWMutex
	events []*model.TimelineEvent

	AppendFunc func(ctx context.Context, tx repository.Tx, e *model.TimelineEvent) error
}

func newMemTimelineRepo() *memTimelineRepo { return &memTimelineRepo{} }

func (m *memTimelineRepo) Append(ctx context.Context, tx repository.Tx, e *model.TimelineEvent) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, tx, e)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *e
	m.events = append(m.events, &cp)
	return nil
}

func (m *memTimelineRepo) ListByUser(ctx context.Context, tx repository.Tx, userID model.UserID, limit int) ([]*model.TimelineEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.TimelineEvent
	for _, e := range m.events {
		if e.UserID == userID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memTimelineRepo) ListAll(ctx context.Context, tx repository.Tx, offset, limit int) ([]*model.TimelineEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.TimelineEvent, 0, len(m.events))
	for _, e := range m.events {
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memTimelineRepo) ofType(t model.TimelineEventType) []*model.TimelineEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.TimelineEvent
	for _, e := range m.events {
		if e.EventType == t {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out
}

// ---- reminder repository ----

type reminderKey struct {
	sub  model.SubscriptionID
	kind model.ReminderType
	at   int64
}

type memReminderRepo struct {
	mu    sync.RWMutex
	store map[reminderKey]*model.SubscriptionReminder
}

func newMemReminderRepo() *memReminderRepo {
	return &memReminderRepo{store: make(map[reminderKey]*model.SubscriptionReminder)}
}

func (m *memReminderRepo) key(r *model.SubscriptionReminder) reminderKey {
	return reminderKey{sub: r.SubscriptionID, kind: r.ReminderType, at: r.RenewalDate.UnixNano()}
}

func (m *memReminderRepo) Save(ctx context.Context, tx repository.Tx, r *model.SubscriptionReminder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := m.key(r)
	if _, ok := m.store[k]; ok {
		return nil // mirrors ON CONFLICT DO NOTHING
	}
	cp := *r
	m.store[k] = &cp
	return nil
}

func (m *memReminderRepo) Exists(ctx context.Context, tx repository.Tx, subscriptionID model.SubscriptionID, reminderType model.ReminderType, renewalDate time.Time) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.store[reminderKey{sub: subscriptionID, kind: reminderType, at: renewalDate.UnixNano()}]
	return ok, nil
}

func (m *memReminderRepo) ListByUser(ctx context.Context, tx repository.Tx, userID model.UserID) ([]*model.SubscriptionReminder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.SubscriptionReminder
	for _, r := range m.store {
		if r.UserID == userID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memReminderRepo) List(ctx context.Context, tx repository.Tx, offset, limit int) ([]*model.SubscriptionReminder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.SubscriptionReminder, 0, len(m.store))
	for _, r := range m.store {
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

// ---- webhook log repository ----

type memWebhookLogRepo struct {
	mu    sync.RWMutex
	store map[string]*model.WebhookLog
}

func newMemWebhookLogRepo() *memWebhookLogRepo {
	return &memWebhookLogRepo{store: make(map[string]*model.WebhookLog)}
}

func (m *memWebhookLogRepo) Save(ctx context.Context, tx repository.Tx, l *model.WebhookLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *l
	m.store[l.ID] = &cp
	return nil
}

func (m *memWebhookLogRepo) MarkProcessed(ctx context.Context, tx repository.Tx, id string, userID model.UserID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.store[id]
	if !ok {
		return domain.ErrNotFound
	}
	l.Processed = true
	l.UserID = userID
	return nil
}

func (m *memWebhookLogRepo) List(ctx context.Context, tx repository.Tx, offset, limit int) ([]*model.WebhookLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.WebhookLog, 0, len(m.store))
	for _, l := range m.store {
		cp := *l
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memWebhookLogRepo) processedCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, l := range m.store {
		if l.Processed {
			n++
		}
	}
	return n
}

// ---- qr code repository ----

type memQRRepo struct {
	mu    sync.RWMutex
	codes []*model.QRCode

	SaveFunc func(ctx context.Context, tx repository.Tx, q *model.QRCode) error
}

func newMemQRRepo() *memQRRepo { return &memQRRepo{} }

func (m *memQRRepo) Save(ctx context.Context, tx repository.Tx, q *model.QRCode) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, tx, q)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *q
	m.codes = append(m.codes, &cp)
	return nil
}

func (m *memQRRepo) ListByUser(ctx context.Context, tx repository.Tx, userID model.UserID, limit int) ([]*model.QRCode, error) {
	if limit <= 0 {
		limit = 10
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.QRCode
	for i := len(m.codes) - 1; i >= 0 && len(out) < limit; i-- {
		if m.codes[i].UserID == userID {
			cp := *m.codes[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memQRRepo) ListAll(ctx context.Context, tx repository.Tx, limit int) ([]*model.QRCode, error) {
	if limit <= 0 {
		limit = 50
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.QRCode
	for i := len(m.codes) - 1; i >= 0 && len(out) < limit; i-- {
		cp := *m.codes[i]
		out = append(out, &cp)
	}
	return out, nil
}

// ---- upi app repository ----

type memUpiAppRepo struct {
	mu    sync.RWMutex
	store map[string]*model.UpiApp
}

func newMemUpiAppRepo() *memUpiAppRepo {
	return &memUpiAppRepo{store: make(map[string]*model.UpiApp)}
}

func (m *memUpiAppRepo) Save(ctx context.Context, tx repository.Tx, a *model.UpiApp) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.store {
		if e.PackageName == a.PackageName && e.ID != a.ID {
			return domain.ErrAlreadyExists
		}
	}
	cp := *a
	m.store[a.ID] = &cp
	return nil
}

func (m *memUpiAppRepo) ListActive(ctx context.Context, tx repository.Tx) ([]*model.UpiApp, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.UpiApp
	for _, a := range m.store {
		if a.Active {
			cp := *a
			out = append(out, &cp)
		}
	}
	// highest priority first, matching the SQL ordering
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].Priority > out[i].Priority {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

// ---- gateway, notifier, verifier, dedupe cache ----

type mockGateway struct {
	CreateMandateLinkFunc      func(ctx context.Context, mandateID model.MandateID, amount int64, description string) (adapter.MandateLink, error)
	CreateSubscriptionLinkFunc func(ctx context.Context, userID model.UserID, planID model.PlanID, amount int64, description string, c adapter.Customer) (adapter.SubscriptionLink, error)
	CancelSubscriptionFunc     func(ctx context.Context, id model.GatewaySubscriptionID) error

	mu        sync.Mutex
	cancelled []model.GatewaySubscriptionID
}

func (g *mockGateway) Name() string { return "mock" }

func (g *mockGateway) CreateMandateLink(ctx context.Context, mandateID model.MandateID, amount int64, description string) (adapter.MandateLink, error) {
	if g.CreateMandateLinkFunc != nil {
		return g.CreateMandateLinkFunc(ctx, mandateID, amount, description)
	}
	return adapter.MandateLink{
		PaymentLinkID: "plink_" + mandateID.String(),
		UPIIntentURL:  "upi://mandate/" + mandateID.String(),
		BrowserURL:    "https://gw.test/mandate/" + mandateID.String(),
	}, nil
}

func (g *mockGateway) CreateSubscriptionLink(ctx context.Context, userID model.UserID, planID model.PlanID, amount int64, description string, c adapter.Customer) (adapter.SubscriptionLink, error) {
	if g.CreateSubscriptionLinkFunc != nil {
		return g.CreateSubscriptionLinkFunc(ctx, userID, planID, amount, description, c)
	}
	return adapter.SubscriptionLink{
		GatewaySubscriptionID: "sub_mock_1",
		PaymentURL:            "https://gw.test/sub/sub_mock_1",
		UPIIntentURL:          "upi://sub/sub_mock_1",
	}, nil
}

func (g *mockGateway) CancelSubscription(ctx context.Context, id model.GatewaySubscriptionID) error {
	if g.CancelSubscriptionFunc != nil {
		return g.CancelSubscriptionFunc(ctx, id)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cancelled = append(g.cancelled, id)
	return nil
}

type mockNotifier struct {
	mu    sync.Mutex
	sends []string // userID
	err   error
}

func (n *mockNotifier) Send(ctx context.Context, userID model.UserID, title, body string) error {
	if n.err != nil {
		return n.err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sends = append(n.sends, userID.String())
	return nil
}

type mockVerifier struct{ ok bool }

func (v *mockVerifier) Verify(body []byte, signature string) bool { return v.ok }

type memDedupeCache struct {
	mu   sync.Mutex
	keys map[string]bool

	SeenFunc func(ctx context.Context, key string) (bool, error)
}

func newMemDedupeCache() *memDedupeCache {
	return &memDedupeCache{keys: make(map[string]bool)}
}

func (c *memDedupeCache) Seen(ctx context.Context, key string) (bool, error) {
	if c.SeenFunc != nil {
		return c.SeenFunc(ctx, key)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.keys[key], nil
}

func (c *memDedupeCache) Remember(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.keys[key] = true
	return nil
}
