//go:build !integration

// File: internal/infra/web/server_test.go
package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"alertpe-admin/internal/domain"
	"alertpe-admin/internal/domain/model"
	"alertpe-admin/internal/usecase"
)

func doJSON(t *testing.T, h http.Handler, method, path string, body string, mutate ...func(*http.Request)) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var rd *bytes.Reader
	if body != "" {
		rd = bytes.NewReader([]byte(body))
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	for _, m := range mutate {
		m(req)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	out := map[string]any{}
	if rec.Body.Len() > 0 && strings.Contains(rec.Header().Get("Content-Type"), "json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("bad json response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, out
}

func TestHealth(t *testing.T) {
	h := newServerDeps().newServer().Router()
	rec, out := doJSON(t, h, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if out["success"] != true || out["status"] != "ok" {
		t.Fatalf("body = %v", out)
	}
}

func TestIngestPayment(t *testing.T) {
	ingestBody := `{"userId":"user-1","amount":"199","paymentApp":"GPay","upiId":"shop@ybl"}`

	t.Run("created", func(t *testing.T) {
		deps := newServerDeps()
		deps.payments.IngestFunc = func(ctx context.Context, in usecase.IngestInput) (*model.Payment, error) {
			if in.UserID != "user-1" || in.Amount != "199" {
				t.Errorf("input not forwarded: %+v", in)
			}
			return &model.Payment{ID: "p-1", UserID: in.UserID, Amount: in.Amount, Status: model.PaymentStatusReceived}, nil
		}
		rec, out := doJSON(t, deps.newServer().Router(), http.MethodPost, "/payments", ingestBody)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		if out["success"] != true {
			t.Fatalf("body = %v", out)
		}
		if _, ok := out["payment"]; !ok {
			t.Fatal("payment missing from the response")
		}
	})

	t.Run("duplicate maps to 400 with the canonical message", func(t *testing.T) {
		deps := newServerDeps()
		deps.payments.IngestFunc = func(ctx context.Context, in usecase.IngestInput) (*model.Payment, error) {
			return nil, domain.ErrDuplicatePayment
		}
		rec, out := doJSON(t, deps.newServer().Router(), http.MethodPost, "/payments", ingestBody)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
		if out["success"] != false || out["error"] != "Duplicate payment detected" {
			t.Fatalf("body = %v", out)
		}
	})

	t.Run("invalid upi maps to 400", func(t *testing.T) {
		deps := newServerDeps()
		deps.payments.IngestFunc = func(ctx context.Context, in usecase.IngestInput) (*model.Payment, error) {
			return nil, domain.ErrInvalidUPIID
		}
		rec, _ := doJSON(t, deps.newServer().Router(), http.MethodPost, "/payments", ingestBody)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		deps := newServerDeps()
		rec, _ := doJSON(t, deps.newServer().Router(), http.MethodPost, "/payments", "{not json")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("over the rate limit", func(t *testing.T) {
		deps := newServerDeps()
		deps.limiter = &stubLimiter{allow: false}
		rec, _ := doJSON(t, deps.newServer().Router(), http.MethodPost, "/payments", ingestBody)
		if rec.Code != http.StatusTooManyRequests {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("limiter outage never blocks ingest", func(t *testing.T) {
		deps := newServerDeps()
		deps.limiter = &stubLimiter{err: errors.New("redis down")}
		rec, _ := doJSON(t, deps.newServer().Router(), http.MethodPost, "/payments", ingestBody)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}

func TestSubscriptionStatus(t *testing.T) {
	t.Run("userId is required", func(t *testing.T) {
		rec, _ := doJSON(t, newServerDeps().newServer().Router(), http.MethodGet, "/subscription/status", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("optional sections appear only when present", func(t *testing.T) {
		deps := newServerDeps()
		deps.subs.StatusFunc = func(ctx context.Context, userID model.UserID) (*usecase.StatusView, error) {
			return &usecase.StatusView{HasSubscription: false}, nil
		}
		rec, out := doJSON(t, deps.newServer().Router(), http.MethodGet, "/subscription/status?userId=user-1", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if out["hasSubscription"] != false {
			t.Fatalf("body = %v", out)
		}
		if _, ok := out["subscription"]; ok {
			t.Error("subscription section present for a user without one")
		}
	})
}

func TestWebhookRoute(t *testing.T) {
	body := `{"event":"subscription.charged","payload":{}}`

	t.Run("signature header reaches the use case", func(t *testing.T) {
		deps := newServerDeps()
		var gotSig string
		deps.webhooks.ProcessWebhookFunc = func(ctx context.Context, b []byte, signature string) error {
			gotSig = signature
			if string(b) != body {
				t.Errorf("body altered in transit: %q", b)
			}
			return nil
		}
		rec, _ := doJSON(t, deps.newServer().Router(), http.MethodPost, "/razorpay/webhook", body, func(r *http.Request) {
			r.Header.Set("X-Razorpay-Signature", "sig-abc")
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if gotSig != "sig-abc" {
			t.Fatalf("signature = %q", gotSig)
		}
	})

	t.Run("bad signature maps to 401", func(t *testing.T) {
		deps := newServerDeps()
		deps.webhooks.ProcessWebhookFunc = func(ctx context.Context, b []byte, signature string) error {
			return domain.ErrBadSignature
		}
		rec, _ := doJSON(t, deps.newServer().Router(), http.MethodPost, "/razorpay/webhook", body)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}

func TestMandateCallbackRedirects(t *testing.T) {
	t.Run("gateway redirect params reach the use case", func(t *testing.T) {
		deps := newServerDeps()
		var gotLink, gotPayment, gotStatus string
		deps.mandates.HandleCallbackFunc = func(ctx context.Context, paymentLinkID, paymentID, linkStatus string) (*model.Mandate, error) {
			gotLink, gotPayment, gotStatus = paymentLinkID, paymentID, linkStatus
			return &model.Mandate{PaymentLinkID: paymentLinkID}, nil
		}
		rec, _ := doJSON(t, deps.newServer().Router(), http.MethodGet,
			"/razorpay/mandate-callback?razorpay_payment_id=pay_abc&razorpay_payment_link_id=plink_abc&razorpay_payment_link_status=paid", "")
		if rec.Code != http.StatusFound {
			t.Fatalf("status = %d", rec.Code)
		}
		if gotLink != "plink_abc" || gotPayment != "pay_abc" || gotStatus != "paid" {
			t.Errorf("callback params = (%q, %q, %q)", gotLink, gotPayment, gotStatus)
		}
		if loc := rec.Header().Get("Location"); loc != "https://app.test/mandate/success" {
			t.Errorf("redirect = %q", loc)
		}
	})

	t.Run("non-paid status redirects to the error page", func(t *testing.T) {
		deps := newServerDeps()
		deps.mandates.HandleCallbackFunc = func(ctx context.Context, paymentLinkID, paymentID, linkStatus string) (*model.Mandate, error) {
			return &model.Mandate{}, nil
		}
		rec, _ := doJSON(t, deps.newServer().Router(), http.MethodGet,
			"/razorpay/mandate-callback?razorpay_payment_link_id=plink_abc&razorpay_payment_link_status=expired", "")
		if rec.Code != http.StatusFound {
			t.Fatalf("status = %d", rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "https://app.test/mandate/error" {
			t.Errorf("redirect = %q", loc)
		}
	})

	t.Run("unknown link still redirects to success", func(t *testing.T) {
		deps := newServerDeps()
		deps.mandates.HandleCallbackFunc = func(ctx context.Context, paymentLinkID, paymentID, linkStatus string) (*model.Mandate, error) {
			return nil, nil
		}
		rec, _ := doJSON(t, deps.newServer().Router(), http.MethodGet,
			"/razorpay/mandate-callback?razorpay_payment_id=pay_abc&razorpay_payment_link_id=plink_ghost&razorpay_payment_link_status=paid", "")
		if rec.Code != http.StatusFound {
			t.Fatalf("status = %d", rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "https://app.test/mandate/success" {
			t.Errorf("redirect = %q", loc)
		}
	})
}

func TestStartTrialRoute(t *testing.T) {
	deps := newServerDeps()
	var gotDays int
	deps.subs.StartTrialFunc = func(ctx context.Context, userID model.UserID, planID model.PlanID, trialDays int) (*model.Subscription, error) {
		gotDays = trialDays
		return &model.Subscription{UserID: userID, PlanID: planID}, nil
	}
	rec, _ := doJSON(t, deps.newServer().Router(), http.MethodPost, "/subscription/start-trial",
		`{"userId":"user-1","planId":"plan-1","trialDays":30}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}
	if gotDays != 30 {
		t.Errorf("trialDays = %d, want 30", gotDays)
	}
}

func TestCreateMandateRoute(t *testing.T) {
	deps := newServerDeps()
	var gotPlan model.PlanID
	deps.mandates.CreateMandateFunc = func(ctx context.Context, userID model.UserID, planID model.PlanID, amount int64) (*usecase.MandateLinkView, error) {
		gotPlan = planID
		return &usecase.MandateLinkView{
			Mandate:      &model.Mandate{UserID: userID, Amount: amount},
			UPIIntentURL: "upi://x",
			BrowserURL:   "https://gw.test/x",
		}, nil
	}
	rec, out := doJSON(t, deps.newServer().Router(), http.MethodPost, "/razorpay/create-mandate",
		`{"userId":"user-1","planId":"plan-1","amount":199}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if gotPlan != "plan-1" {
		t.Errorf("planId = %q, want plan-1", gotPlan)
	}
	if out["upiIntentUrl"] != "upi://x" {
		t.Fatalf("body = %v", out)
	}
}

func TestQRRoutes(t *testing.T) {
	t.Run("create forwards user and upi id", func(t *testing.T) {
		deps := newServerDeps()
		deps.qr.CreateFunc = func(ctx context.Context, userID model.UserID, upiID string) (*model.QRCode, error) {
			if userID != "user-1" || upiID != "shop@ybl" {
				t.Errorf("input = (%q, %q)", userID, upiID)
			}
			return &model.QRCode{ID: "qr-1", UserID: userID, UpiID: upiID, QRData: "upi://pay?pa=shop@ybl"}, nil
		}
		rec, out := doJSON(t, deps.newServer().Router(), http.MethodPost, "/qr",
			`{"userId":"user-1","upiId":"shop@ybl"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d", rec.Code)
		}
		if _, ok := out["qrCode"]; !ok {
			t.Fatal("qrCode missing from the response")
		}
	})

	t.Run("list requires userId", func(t *testing.T) {
		rec, _ := doJSON(t, newServerDeps().newServer().Router(), http.MethodGet, "/qr", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("userId=all lists across users", func(t *testing.T) {
		deps := newServerDeps()
		var allCalled bool
		deps.qr.ListAllFunc = func(ctx context.Context, limit int) ([]*model.QRCode, error) {
			allCalled = true
			return []*model.QRCode{{ID: "qr-1"}}, nil
		}
		rec, _ := doJSON(t, deps.newServer().Router(), http.MethodGet, "/qr?userId=all", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if !allCalled {
			t.Error("cross-user listing not used for userId=all")
		}
	})
}

func TestUpiAppRoutes(t *testing.T) {
	t.Run("list is open to the app", func(t *testing.T) {
		deps := newServerDeps()
		deps.upiApps.ListFunc = func(ctx context.Context) ([]*model.UpiApp, error) {
			return []*model.UpiApp{{ID: "app-1", Name: "PhonePe", PackageName: "com.phonepe.app", Priority: 5, Active: true}}, nil
		}
		rec, out := doJSON(t, deps.newServer().Router(), http.MethodGet, "/upi-apps", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		apps, _ := out["upiApps"].([]any)
		if len(apps) != 1 {
			t.Fatalf("body = %v", out)
		}
	})

	t.Run("create sits behind admin auth", func(t *testing.T) {
		rec, _ := doJSON(t, newServerDeps().newServer().Router(), http.MethodPost, "/upi-apps",
			`{"name":"PhonePe","packageName":"com.phonepe.app","icon":"x.png"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})
}

func TestSchedulerRun(t *testing.T) {
	deps := newServerDeps()
	deps.sweep.SweepFunc = func(ctx context.Context) (*usecase.SweepResult, error) {
		return &usecase.SweepResult{ExpiredTrials: 2, Renewed: 1, RemindersCreated: 3, ProcessedCount: 6}, nil
	}
	rec, out := doJSON(t, deps.newServer().Router(), http.MethodPost, "/scheduler/run", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if out["processedCount"] != float64(6) || out["remindersCreated"] != float64(3) {
		t.Fatalf("body = %v", out)
	}
}

func TestAdminAuth(t *testing.T) {
	deps := newServerDeps()
	h := deps.newServer().Router()

	t.Run("dashboard routes reject anonymous requests", func(t *testing.T) {
		for _, path := range []string{"/stats", "/users", "/subscriptions", "/mandates", "/reminders"} {
			rec, _ := doJSON(t, h, http.MethodGet, path, "")
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("%s: status = %d, want 401", path, rec.Code)
			}
		}
	})

	t.Run("wrong secret cannot log in", func(t *testing.T) {
		rec, _ := doJSON(t, h, http.MethodPost, "/admin/login", `{"secret":"wrong"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("login token opens the dashboard", func(t *testing.T) {
		rec, out := doJSON(t, h, http.MethodPost, "/admin/login", `{"secret":"test-admin-secret"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("login status = %d", rec.Code)
		}
		token, _ := out["token"].(string)
		if token == "" {
			t.Fatal("no token in the login response")
		}

		rec, out = doJSON(t, h, http.MethodGet, "/stats", "", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+token)
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("stats status = %d, body = %s", rec.Code, rec.Body.String())
		}
		if out["success"] != true {
			t.Fatalf("body = %v", out)
		}
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		shortDeps := newServerDeps()
		shortDeps.auth = NewAuthManager("test-admin-secret", false, "", -time.Minute)
		sh := shortDeps.newServer().Router()
		rec, out := doJSON(t, sh, http.MethodPost, "/admin/login", `{"secret":"test-admin-secret"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("login status = %d", rec.Code)
		}
		token, _ := out["token"].(string)
		rec, _ = doJSON(t, sh, http.MethodGet, "/stats", "", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+token)
		})
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})
}

func TestDeletePayments(t *testing.T) {
	deps := newServerDeps()
	h := deps.newServer().Router()
	_, out := doJSON(t, h, http.MethodPost, "/admin/login", `{"secret":"test-admin-secret"}`)
	token := out["token"].(string)
	withToken := func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }

	t.Run("empty id list is a 400", func(t *testing.T) {
		rec, _ := doJSON(t, h, http.MethodDelete, "/payments", `{"ids":[]}`, withToken)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("reports the deleted count", func(t *testing.T) {
		rec, out := doJSON(t, h, http.MethodDelete, "/payments", `{"ids":["p-1","p-2"]}`, withToken)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if out["deleted"] != float64(2) {
			t.Fatalf("body = %v", out)
		}
	})
}
