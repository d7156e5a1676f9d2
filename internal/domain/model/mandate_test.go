//go:build !integration

// File: internal/domain/model/mandate_test.go
package model

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"alertpe-admin/internal/domain"
)

var mandNow = time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

func TestGenerateMandateID(t *testing.T) {
	t.Run("uses the last six characters of the user id", func(t *testing.T) {
		got := GenerateMandateID("user-abcdef123456", mandNow)
		want := MandateID(fmt.Sprintf("mandate_%d_123456", mandNow.UnixMilli()))
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("short user ids are used whole", func(t *testing.T) {
		got := GenerateMandateID("u1", mandNow)
		want := MandateID(fmt.Sprintf("mandate_%d_u1", mandNow.UnixMilli()))
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})
}

func TestNewPendingMandate(t *testing.T) {
	t.Run("defaults the frequency to monthly", func(t *testing.T) {
		m, err := NewPendingMandate("row-1", "user-1", "mandate_1_u", 199, "", "9999", "http://approve", mandNow)
		if err != nil {
			t.Fatal(err)
		}
		if m.Frequency != "monthly" {
			t.Errorf("frequency = %q, want monthly", m.Frequency)
		}
		if m.Status != MandateStatusPending {
			t.Errorf("status = %q, want pending", m.Status)
		}
		if m.ApprovedAt != nil {
			t.Error("new mandate must not be approved")
		}
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		if _, err := NewPendingMandate("row-1", "user-1", "mandate_1_u", 0, "monthly", "", "", mandNow); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("got %v", err)
		}
	})
}

func TestPlanPrice(t *testing.T) {
	monthly, err := NewPlan("p1", "Pro", 199, 1999, "monthly", nil)
	if err != nil {
		t.Fatal(err)
	}
	if monthly.Price() != 199 {
		t.Errorf("monthly price = %d", monthly.Price())
	}
	yearly, err := NewPlan("p2", "Pro", 199, 1999, "yearly", nil)
	if err != nil {
		t.Fatal(err)
	}
	if yearly.Price() != 1999 {
		t.Errorf("yearly price = %d", yearly.Price())
	}
}
