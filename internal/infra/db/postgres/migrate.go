// File: internal/infra/db/postgres/migrate.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
)

// Migrate applies the schema idempotently at startup. Statements only ever
// add; dropping or altering existing columns is done by hand.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL,
			email TEXT NOT NULL DEFAULT '',
			mobile TEXT NOT NULL,
			device_id TEXT NOT NULL DEFAULT '',
			subscription TEXT NOT NULL DEFAULT 'none',
			registered_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS plans (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			monthly_price BIGINT NOT NULL DEFAULT 0,
			yearly_price BIGINT NOT NULL DEFAULT 0,
			duration TEXT NOT NULL DEFAULT 'monthly',
			features JSONB NOT NULL DEFAULT '[]',
			active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS subscriptions (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id),
			plan_id TEXT NOT NULL,
			status TEXT NOT NULL,
			trial_start_date TIMESTAMPTZ,
			trial_end_date TIMESTAMPTZ,
			subscription_start_date TIMESTAMPTZ,
			subscription_end_date TIMESTAMPTZ,
			next_renewal_date TIMESTAMPTZ,
			mandate_id TEXT NOT NULL DEFAULT '',
			gateway_subscription_id TEXT NOT NULL DEFAULT '',
			amount BIGINT NOT NULL DEFAULT 0,
			failure_reason TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_subscriptions_user ON subscriptions (user_id, updated_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_subscriptions_gateway ON subscriptions (gateway_subscription_id) WHERE gateway_subscription_id <> '';`,
		`CREATE INDEX IF NOT EXISTS idx_subscriptions_status ON subscriptions (status);`,
		`CREATE TABLE IF NOT EXISTS payments (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			amount TEXT NOT NULL,
			payment_app TEXT NOT NULL,
			upi_id TEXT NOT NULL,
			transaction_id TEXT NOT NULL,
			notification_text TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'Received',
			ts TIMESTAMPTZ NOT NULL,
			date_display TEXT NOT NULL DEFAULT '',
			time_display TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_payments_txn ON payments (transaction_id);`,
		`CREATE INDEX IF NOT EXISTS idx_payments_window ON payments (upi_id, amount, ts);`,
		`CREATE INDEX IF NOT EXISTS idx_payments_user_ts ON payments (user_id, ts DESC);`,
		`CREATE TABLE IF NOT EXISTS mandates (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			mandate_id TEXT NOT NULL UNIQUE,
			payment_link_id TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			amount BIGINT NOT NULL,
			frequency TEXT NOT NULL DEFAULT 'monthly',
			bank_account TEXT NOT NULL DEFAULT '',
			approval_url TEXT NOT NULL DEFAULT '',
			approved_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_mandates_payment_link ON mandates (payment_link_id) WHERE payment_link_id <> '';`,
		`CREATE TABLE IF NOT EXISTS timeline_events (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			event_type TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			metadata JSONB NOT NULL DEFAULT '{}',
			ts TIMESTAMPTZ NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_timeline_user_ts ON timeline_events (user_id, ts DESC);`,
		`CREATE TABLE IF NOT EXISTS subscription_reminders (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			subscription_id TEXT NOT NULL,
			reminder_type TEXT NOT NULL,
			renewal_date TIMESTAMPTZ NOT NULL,
			sent BOOLEAN NOT NULL DEFAULT FALSE,
			sent_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL,
			UNIQUE (subscription_id, reminder_type, renewal_date)
		);`,
		`CREATE TABLE IF NOT EXISTS webhook_logs (
			id TEXT PRIMARY KEY,
			event_type TEXT NOT NULL,
			payload JSONB NOT NULL,
			subscription_id TEXT NOT NULL DEFAULT '',
			mandate_id TEXT NOT NULL DEFAULT '',
			user_id TEXT NOT NULL DEFAULT '',
			processed BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS qr_codes (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			upi_id TEXT NOT NULL,
			qr_data TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_qr_codes_user ON qr_codes (user_id, created_at DESC);`,
		`CREATE TABLE IF NOT EXISTS upi_apps (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			package_name TEXT NOT NULL UNIQUE,
			icon TEXT NOT NULL,
			priority INT NOT NULL DEFAULT 0,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);`,
	}
	for _, s := range stmts {
		if _, err := pool.Exec(ctx, s); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
