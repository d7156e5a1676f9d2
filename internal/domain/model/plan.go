package model

import (
	"time"

	"alertpe-admin/internal/domain"
)

// Plan is a billable subscription plan. Prices are rupees as integers; the
// app has no sub-rupee plans.
type Plan struct {
	ID           PlanID
	Name         string
	MonthlyPrice int64
	YearlyPrice  int64
	Duration     string // "monthly" | "yearly"
	Features     []string
	Active       bool
	CreatedAt    time.Time
}

// Price returns the charge amount for the plan's billing duration.
func (p *Plan) Price() int64 {
	if p.Duration == "yearly" {
		return p.YearlyPrice
	}
	return p.MonthlyPrice
}

func NewPlan(id PlanID, name string, monthly, yearly int64, duration string, features []string) (*Plan, error) {
	if id.Empty() || name == "" || monthly < 0 || yearly < 0 {
		return nil, domain.ErrInvalidArgument
	}
	if duration == "" {
		duration = "monthly"
	}
	return &Plan{
		ID:           id,
		Name:         name,
		MonthlyPrice: monthly,
		YearlyPrice:  yearly,
		Duration:     duration,
		Features:     features,
		Active:       true,
		CreatedAt:    time.Now(),
	}, nil
}
