package model

import "time"

// User is an AlertPe account holder (mobile app user or admin).
type User struct {
	ID           UserID
	Username     string
	Email        string
	Mobile       string
	DeviceID     string
	Subscription string // denormalized subscription state shown in the admin list
	RegisteredAt time.Time
	UpdatedAt    time.Time
}
