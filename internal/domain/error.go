package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound           = errors.New("entity not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrPlanNotFound       = errors.New("plan not found")
	ErrMandateNotFound    = errors.New("mandate not found")
	ErrNoSubscription     = errors.New("no subscription found")
	ErrAlreadyExists      = errors.New("entity already exists")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrInvalidExecContext = errors.New("invalid executor context")
	ErrOperationFailed    = errors.New("operation failed")
	ErrReadDatabaseRow    = errors.New("failed to read database row")

	// Payment ingest
	ErrMissingFields    = errors.New("missing required fields")
	ErrInvalidUPIID     = errors.New("invalid UPI ID")
	ErrDuplicatePayment = errors.New("duplicate payment detected")

	// Subscription lifecycle
	ErrAlreadySubscribed = errors.New("user already has an active subscription or trial")
	ErrTrialDisabled     = errors.New("trials are disabled")

	// Webhook / gateway
	ErrBadSignature = errors.New("invalid webhook signature")
	ErrGatewayCall  = errors.New("payment gateway call failed")
)
