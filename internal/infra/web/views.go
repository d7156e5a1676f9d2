// File: internal/infra/web/views.go
package web

import (
	"time"

	"alertpe-admin/internal/domain/model"
)

// JSON projections of the domain models. Field names are the wire contract
// with the mobile app and the dashboard; they stay camelCase.

type paymentView struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Amount        string    `json:"amount"`
	PaymentApp    string    `json:"paymentApp"`
	UpiID         string    `json:"upiId"`
	TransactionID string    `json:"transactionId"`
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
}

func toPaymentView(p *model.Payment) paymentView {
	return paymentView{
		ID:            p.ID.String(),
		UserID:        p.UserID.String(),
		Amount:        p.Amount,
		PaymentApp:    p.PaymentApp,
		UpiID:         p.UpiID,
		TransactionID: p.TransactionID,
		Status:        p.Status,
		Timestamp:     p.Timestamp,
		Date:          p.Date,
		Time:          p.Time,
	}
}

func toPaymentViews(ps []*model.Payment) []paymentView {
	out := make([]paymentView, 0, len(ps))
	for _, p := range ps {
		out = append(out, toPaymentView(p))
	}
	return out
}

type subscriptionView struct {
	ID                    string     `json:"id"`
	UserID                string     `json:"userId"`
	PlanID                string     `json:"planId"`
	Status                string     `json:"status"`
	TrialStartDate        *time.Time `json:"trialStartDate,omitempty"`
	TrialEndDate          *time.Time `json:"trialEndDate,omitempty"`
	SubscriptionStartDate *time.Time `json:"subscriptionStartDate,omitempty"`
	SubscriptionEndDate   *time.Time `json:"subscriptionEndDate,omitempty"`
	NextRenewalDate       *time.Time `json:"nextRenewalDate,omitempty"`
	MandateID             string     `json:"mandateId,omitempty"`
	GatewaySubscriptionID string     `json:"gatewaySubscriptionId,omitempty"`
	Amount                int64      `json:"amount"`
	FailureReason         string     `json:"failureReason,omitempty"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}

func toSubscriptionView(s *model.Subscription) subscriptionView {
	return subscriptionView{
		ID:                    s.ID.String(),
		UserID:                s.UserID.String(),
		PlanID:                s.PlanID.String(),
		Status:                string(s.Status),
		TrialStartDate:        s.TrialStartDate,
		TrialEndDate:          s.TrialEndDate,
		SubscriptionStartDate: s.SubscriptionStartDate,
		SubscriptionEndDate:   s.SubscriptionEndDate,
		NextRenewalDate:       s.NextRenewalDate,
		MandateID:             s.MandateID.String(),
		GatewaySubscriptionID: s.GatewaySubscriptionID.String(),
		Amount:                s.Amount,
		FailureReason:         s.FailureReason,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}
}

func toSubscriptionViews(ss []*model.Subscription) []subscriptionView {
	out := make([]subscriptionView, 0, len(ss))
	for _, s := range ss {
		out = append(out, toSubscriptionView(s))
	}
	return out
}

type mandateView struct {
	ID            string     `json:"id"`
	UserID        string     `json:"userId"`
	MandateID     string     `json:"mandateId"`
	PaymentLinkID string     `json:"paymentLinkId,omitempty"`
	Status        string     `json:"status"`
	Amount        int64      `json:"amount"`
	Frequency     string     `json:"frequency"`
	BankAccount   string     `json:"bankAccount"`
	ApprovalURL   string     `json:"approvalUrl,omitempty"`
	ApprovedAt    *time.Time `json:"approvedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

func toMandateView(m *model.Mandate) mandateView {
	return mandateView{
		ID:            m.ID,
		UserID:        m.UserID.String(),
		MandateID:     m.MandateID.String(),
		PaymentLinkID: m.PaymentLinkID,
		Status:        string(m.Status),
		Amount:        m.Amount,
		Frequency:     m.Frequency,
		BankAccount:   m.BankAccount,
		ApprovalURL:   m.ApprovalURL,
		ApprovedAt:    m.ApprovedAt,
		CreatedAt:     m.CreatedAt,
	}
}

func toMandateViews(ms []*model.Mandate) []mandateView {
	out := make([]mandateView, 0, len(ms))
	for _, m := range ms {
		out = append(out, toMandateView(m))
	}
	return out
}

type userView struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	Mobile       string    `json:"mobile"`
	DeviceID     string    `json:"deviceId,omitempty"`
	Subscription string    `json:"subscription"`
	RegisteredAt time.Time `json:"registeredAt"`
}

func toUserView(u *model.User) userView {
	return userView{
		ID:           u.ID.String(),
		Username:     u.Username,
		Email:        u.Email,
		Mobile:       u.Mobile,
		DeviceID:     u.DeviceID,
		Subscription: u.Subscription,
		RegisteredAt: u.RegisteredAt,
	}
}

func toUserViews(us []*model.User) []userView {
	out := make([]userView, 0, len(us))
	for _, u := range us {
		out = append(out, toUserView(u))
	}
	return out
}

type planView struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	MonthlyPrice int64    `json:"monthlyPrice"`
	YearlyPrice  int64    `json:"yearlyPrice"`
	Duration     string   `json:"duration"`
	Features     []string `json:"features"`
	Active       bool     `json:"active"`
}

func toPlanView(p *model.Plan) planView {
	return planView{
		ID:           p.ID.String(),
		Name:         p.Name,
		MonthlyPrice: p.MonthlyPrice,
		YearlyPrice:  p.YearlyPrice,
		Duration:     p.Duration,
		Features:     p.Features,
		Active:       p.Active,
	}
}

type timelineView struct {
	ID          string         `json:"id"`
	UserID      string         `json:"userId"`
	EventType   string         `json:"eventType"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	Timestamp   time.Time      `json:"timestamp"`
}

func toTimelineViews(es []*model.TimelineEvent) []timelineView {
	out := make([]timelineView, 0, len(es))
	for _, e := range es {
		out = append(out, timelineView{
			ID:          e.ID,
			UserID:      e.UserID.String(),
			EventType:   string(e.EventType),
			Title:       e.Title,
			Description: e.Description,
			Metadata:    e.Metadata,
			Timestamp:   e.Timestamp,
		})
	}
	return out
}

type qrCodeView struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	UpiID     string    `json:"upiId"`
	QRData    string    `json:"qrData"`
	CreatedAt time.Time `json:"createdAt"`
}

func toQRCodeView(q *model.QRCode) qrCodeView {
	return qrCodeView{
		ID:        q.ID,
		UserID:    q.UserID.String(),
		UpiID:     q.UpiID,
		QRData:    q.QRData,
		CreatedAt: q.CreatedAt,
	}
}

func toQRCodeViews(qs []*model.QRCode) []qrCodeView {
	out := make([]qrCodeView, 0, len(qs))
	for _, q := range qs {
		out = append(out, toQRCodeView(q))
	}
	return out
}

type upiAppView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PackageName string `json:"packageName"`
	Icon        string `json:"icon"`
	Priority    int    `json:"priority"`
	Active      bool   `json:"isActive"`
}

func toUpiAppViews(as []*model.UpiApp) []upiAppView {
	out := make([]upiAppView, 0, len(as))
	for _, a := range as {
		out = append(out, upiAppView{
			ID:          a.ID,
			Name:        a.Name,
			PackageName: a.PackageName,
			Icon:        a.Icon,
			Priority:    a.Priority,
			Active:      a.Active,
		})
	}
	return out
}

type webhookLogView struct {
	ID        string    `json:"id"`
	EventType string    `json:"eventType"`
	UserID    string    `json:"userId,omitempty"`
	Processed bool      `json:"processed"`
	CreatedAt time.Time `json:"createdAt"`
}

func toWebhookLogViews(ls []*model.WebhookLog) []webhookLogView {
	out := make([]webhookLogView, 0, len(ls))
	for _, l := range ls {
		out = append(out, webhookLogView{
			ID:        l.ID,
			EventType: l.EventType,
			UserID:    l.UserID.String(),
			Processed: l.Processed,
			CreatedAt: l.CreatedAt,
		})
	}
	return out
}

type reminderView struct {
	ID             string     `json:"id"`
	UserID         string     `json:"userId"`
	SubscriptionID string     `json:"subscriptionId"`
	ReminderType   string     `json:"reminderType"`
	RenewalDate    time.Time  `json:"renewalDate"`
	Sent           bool       `json:"sent"`
	SentAt         *time.Time `json:"sentAt,omitempty"`
}

func toReminderViews(rs []*model.SubscriptionReminder) []reminderView {
	out := make([]reminderView, 0, len(rs))
	for _, r := range rs {
		out = append(out, reminderView{
			ID:             r.ID,
			UserID:         r.UserID.String(),
			SubscriptionID: r.SubscriptionID.String(),
			ReminderType:   string(r.ReminderType),
			RenewalDate:    r.RenewalDate,
			Sent:           r.Sent,
			SentAt:         r.SentAt,
		})
	}
	return out
}
