package model

import (
	"time"

	"alertpe-admin/internal/domain"
)

// UpiApp is one entry in the payment-app picker the mobile client renders.
// Higher priority sorts first.
type UpiApp struct {
	ID          string
	Name        string
	PackageName string
	Icon        string
	Priority    int
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewUpiApp(id, name, packageName, icon string, priority int, active bool, now time.Time) (*UpiApp, error) {
	if id == "" || name == "" || packageName == "" || icon == "" {
		return nil, domain.ErrMissingFields
	}
	return &UpiApp{
		ID:          id,
		Name:        name,
		PackageName: packageName,
		Icon:        icon,
		Priority:    priority,
		Active:      active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
