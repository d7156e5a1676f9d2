// File: internal/infra/web/mocks_test.go
package web

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"alertpe-admin/internal/domain/model"
	"alertpe-admin/internal/domain/ports/adapter"
	"alertpe-admin/internal/usecase"
)

// Handler tests stub the use-case interfaces with func fields; an unset
// field returns zero values.

type stubPaymentUC struct {
	IngestFunc            func(ctx context.Context, in usecase.IngestInput) (*model.Payment, error)
	ListByUserFunc        func(ctx context.Context, userID model.UserID, dateFilter string, limit int) ([]*model.Payment, error)
	ListAllFunc           func(ctx context.Context, offset, limit int) ([]*model.Payment, error)
	DeleteFunc            func(ctx context.Context, ids ...model.PaymentID) (int64, error)
	CleanupDuplicatesFunc func(ctx context.Context) (int, error)
}

func (s *stubPaymentUC) Ingest(ctx context.Context, in usecase.IngestInput) (*model.Payment, error) {
	if s.IngestFunc != nil {
		return s.IngestFunc(ctx, in)
	}
	return &model.Payment{}, nil
}

func (s *stubPaymentUC) ListByUser(ctx context.Context, userID model.UserID, dateFilter string, limit int) ([]*model.Payment, error) {
	if s.ListByUserFunc != nil {
		return s.ListByUserFunc(ctx, userID, dateFilter, limit)
	}
	return nil, nil
}

func (s *stubPaymentUC) ListAll(ctx context.Context, offset, limit int) ([]*model.Payment, error) {
	if s.ListAllFunc != nil {
		return s.ListAllFunc(ctx, offset, limit)
	}
	return nil, nil
}

func (s *stubPaymentUC) Delete(ctx context.Context, ids ...model.PaymentID) (int64, error) {
	if s.DeleteFunc != nil {
		return s.DeleteFunc(ctx, ids...)
	}
	return int64(len(ids)), nil
}

func (s *stubPaymentUC) CleanupDuplicates(ctx context.Context) (int, error) {
	if s.CleanupDuplicatesFunc != nil {
		return s.CleanupDuplicatesFunc(ctx)
	}
	return 0, nil
}

type stubSubscriptionUC struct {
	StartTrialFunc func(ctx context.Context, userID model.UserID, planID model.PlanID, trialDays int) (*model.Subscription, error)
	StatusFunc     func(ctx context.Context, userID model.UserID) (*usecase.StatusView, error)
}

func (s *stubSubscriptionUC) StartTrial(ctx context.Context, userID model.UserID, planID model.PlanID, trialDays int) (*model.Subscription, error) {
	if s.StartTrialFunc != nil {
		return s.StartTrialFunc(ctx, userID, planID, trialDays)
	}
	return &model.Subscription{}, nil
}

func (s *stubSubscriptionUC) Create(ctx context.Context, userID model.UserID, planID model.PlanID) (*model.Subscription, error) {
	return &model.Subscription{}, nil
}

func (s *stubSubscriptionUC) Cancel(ctx context.Context, userID model.UserID, reason string) (*model.Subscription, error) {
	return &model.Subscription{}, nil
}

func (s *stubSubscriptionUC) Downgrade(ctx context.Context, userID model.UserID) (*model.Subscription, error) {
	return &model.Subscription{}, nil
}

func (s *stubSubscriptionUC) Status(ctx context.Context, userID model.UserID) (*usecase.StatusView, error) {
	if s.StatusFunc != nil {
		return s.StatusFunc(ctx, userID)
	}
	return &usecase.StatusView{}, nil
}

func (s *stubSubscriptionUC) List(ctx context.Context, offset, limit int) ([]*model.Subscription, error) {
	return nil, nil
}

type stubMandateUC struct {
	CreateMandateFunc  func(ctx context.Context, userID model.UserID, planID model.PlanID, amount int64) (*usecase.MandateLinkView, error)
	HandleCallbackFunc func(ctx context.Context, paymentLinkID, paymentID, linkStatus string) (*model.Mandate, error)
}

func (s *stubMandateUC) CreateMandate(ctx context.Context, userID model.UserID, planID model.PlanID, amount int64) (*usecase.MandateLinkView, error) {
	if s.CreateMandateFunc != nil {
		return s.CreateMandateFunc(ctx, userID, planID, amount)
	}
	return &usecase.MandateLinkView{Mandate: &model.Mandate{}}, nil
}

func (s *stubMandateUC) HandleCallback(ctx context.Context, paymentLinkID, paymentID, linkStatus string) (*model.Mandate, error) {
	if s.HandleCallbackFunc != nil {
		return s.HandleCallbackFunc(ctx, paymentLinkID, paymentID, linkStatus)
	}
	return &model.Mandate{}, nil
}

func (s *stubMandateUC) ListByUser(ctx context.Context, userID model.UserID) ([]*model.Mandate, error) {
	return nil, nil
}

func (s *stubMandateUC) List(ctx context.Context, offset, limit int) ([]*model.Mandate, error) {
	return nil, nil
}

type stubWebhookUC struct {
	ProcessWebhookFunc func(ctx context.Context, body []byte, signature string) error
}

func (s *stubWebhookUC) ProcessWebhook(ctx context.Context, body []byte, signature string) error {
	if s.ProcessWebhookFunc != nil {
		return s.ProcessWebhookFunc(ctx, body, signature)
	}
	return nil
}

func (s *stubWebhookUC) ProcessMockWebhook(ctx context.Context, eventType string, gatewaySubID model.GatewaySubscriptionID) ([]byte, error) {
	return []byte(`{"event":"` + eventType + `"}`), nil
}

func (s *stubWebhookUC) CreateGatewaySubscription(ctx context.Context, userID model.UserID, planID model.PlanID) (*adapter.SubscriptionLink, error) {
	return &adapter.SubscriptionLink{GatewaySubscriptionID: "sub_stub"}, nil
}

func (s *stubWebhookUC) CancelGatewaySubscription(ctx context.Context, userID model.UserID) error {
	return nil
}

func (s *stubWebhookUC) ListLogs(ctx context.Context, offset, limit int) ([]*model.WebhookLog, error) {
	return nil, nil
}

type stubSweepUC struct {
	SweepFunc func(ctx context.Context) (*usecase.SweepResult, error)
}

func (s *stubSweepUC) Sweep(ctx context.Context) (*usecase.SweepResult, error) {
	if s.SweepFunc != nil {
		return s.SweepFunc(ctx)
	}
	return &usecase.SweepResult{}, nil
}

func (s *stubSweepUC) ListReminders(ctx context.Context, offset, limit int) ([]*model.SubscriptionReminder, error) {
	return nil, nil
}

type stubStatsUC struct{}

func (s *stubStatsUC) Dashboard(ctx context.Context) (*usecase.DashboardStats, error) {
	return &usecase.DashboardStats{}, nil
}

type stubUserUC struct{}

func (s *stubUserUC) Register(ctx context.Context, in usecase.RegisterUserInput) (*model.User, error) {
	return &model.User{ID: "user-1", Username: in.Username}, nil
}

func (s *stubUserUC) Get(ctx context.Context, id model.UserID) (*model.User, error) {
	return &model.User{ID: id}, nil
}

func (s *stubUserUC) List(ctx context.Context, offset, limit int) ([]*model.User, error) {
	return nil, nil
}

func (s *stubUserUC) Timeline(ctx context.Context, userID model.UserID, limit int) ([]*model.TimelineEvent, error) {
	return nil, nil
}

func (s *stubUserUC) AddTimelineEvent(ctx context.Context, userID model.UserID, eventType, title, description string, metadata map[string]any) (*model.TimelineEvent, error) {
	return &model.TimelineEvent{UserID: userID}, nil
}

type stubPlanUC struct{}

func (s *stubPlanUC) Create(ctx context.Context, in usecase.PlanInput) (*model.Plan, error) {
	return &model.Plan{Name: in.Name}, nil
}

func (s *stubPlanUC) Update(ctx context.Context, id model.PlanID, in usecase.PlanInput) (*model.Plan, error) {
	return &model.Plan{ID: id}, nil
}

func (s *stubPlanUC) Get(ctx context.Context, id model.PlanID) (*model.Plan, error) {
	return &model.Plan{ID: id}, nil
}

func (s *stubPlanUC) List(ctx context.Context) ([]*model.Plan, error) { return nil, nil }

func (s *stubPlanUC) Delete(ctx context.Context, id model.PlanID) error { return nil }

type stubQRUC struct {
	CreateFunc  func(ctx context.Context, userID model.UserID, upiID string) (*model.QRCode, error)
	ListAllFunc func(ctx context.Context, limit int) ([]*model.QRCode, error)
	ListFunc    func(ctx context.Context, userID model.UserID, limit int) ([]*model.QRCode, error)
}

func (s *stubQRUC) Create(ctx context.Context, userID model.UserID, upiID string) (*model.QRCode, error) {
	if s.CreateFunc != nil {
		return s.CreateFunc(ctx, userID, upiID)
	}
	return &model.QRCode{UserID: userID, UpiID: upiID}, nil
}

func (s *stubQRUC) ListByUser(ctx context.Context, userID model.UserID, limit int) ([]*model.QRCode, error) {
	if s.ListFunc != nil {
		return s.ListFunc(ctx, userID, limit)
	}
	return nil, nil
}

func (s *stubQRUC) ListAll(ctx context.Context, limit int) ([]*model.QRCode, error) {
	if s.ListAllFunc != nil {
		return s.ListAllFunc(ctx, limit)
	}
	return nil, nil
}

type stubUpiAppUC struct {
	ListFunc func(ctx context.Context) ([]*model.UpiApp, error)
}

func (s *stubUpiAppUC) List(ctx context.Context) ([]*model.UpiApp, error) {
	if s.ListFunc != nil {
		return s.ListFunc(ctx)
	}
	return nil, nil
}

func (s *stubUpiAppUC) Create(ctx context.Context, in usecase.UpiAppInput) (*model.UpiApp, error) {
	return &model.UpiApp{Name: in.Name, PackageName: in.PackageName}, nil
}

type stubLimiter struct {
	allow bool
	err   error
}

func (l *stubLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	return l.allow, l.err
}

// serverDeps bundles the stubs behind a default Server for handler tests.
type serverDeps struct {
	payments *stubPaymentUC
	subs     *stubSubscriptionUC
	mandates *stubMandateUC
	webhooks *stubWebhookUC
	sweep    *stubSweepUC
	qr       *stubQRUC
	upiApps  *stubUpiAppUC
	limiter  RateLimiter
	auth     *AuthManager
}

func newServerDeps() *serverDeps {
	return &serverDeps{
		payments: &stubPaymentUC{},
		subs:     &stubSubscriptionUC{},
		mandates: &stubMandateUC{},
		webhooks: &stubWebhookUC{},
		sweep:    &stubSweepUC{},
		qr:       &stubQRUC{},
		upiApps:  &stubUpiAppUC{},
		auth:     NewAuthManager("test-admin-secret", false, "", time.Minute),
	}
}

func (d *serverDeps) newServer() *Server {
	logger := zerolog.Nop()
	return NewServer(d.payments, d.subs, d.mandates, d.webhooks, d.sweep,
		&stubStatsUC{}, &stubUserUC{}, &stubPlanUC{}, d.qr, d.upiApps,
		d.auth, d.limiter, "test-admin-secret",
		ServerConfig{PublicURL: "https://app.test", RateLimit: 30, RateWindow: time.Minute, Dev: true},
		&logger)
}
