package database

import (
	"context"
	"fmt"
)

// RunMigrations creates the database schema.
func RunMigrations(ctx context.Context, db PGXDB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS profiles (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			type TEXT NOT NULL CHECK (type IN ('personal', 'business')),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_profiles_user_id ON profiles(user_id)`,
		`CREATE TABLE IF NOT EXISTS accounts (
			id BIGSERIAL PRIMARY KEY,
			profile_id BIGINT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			balance NUMERIC(15, 2) NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_accounts_profile_id ON accounts(profile_id)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id BIGSERIAL PRIMARY KEY,
			profile_id BIGINT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			parent_category_id BIGINT REFERENCES categories(id) ON DELETE SET NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_profile_name ON categories(profile_id, LOWER(name))`,
		`CREATE TABLE IF NOT EXISTS payment_methods (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id BIGSERIAL PRIMARY KEY,
			account_id BIGINT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
			type TEXT NOT NULL CHECK (type IN ('income', 'expense')),
			amount NUMERIC(15, 2) NOT NULL CHECK (amount > 0),
			description TEXT NOT NULL DEFAULT '',
			category_id BIGINT REFERENCES categories(id) ON DELETE SET NULL,
			payment_method_id BIGINT REFERENCES payment_methods(id) ON DELETE SET NULL,
			time_stamp TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_account_id ON transactions(account_id)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_time_stamp ON transactions(time_stamp)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_category_id ON transactions(category_id)`,
		`CREATE TABLE IF NOT EXISTS budgets (
			id BIGSERIAL PRIMARY KEY,
			profile_id BIGINT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
			category_id BIGINT NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
			budget NUMERIC(15, 2) NOT NULL,
			month INTEGER NOT NULL CHECK (month BETWEEN 1 AND 12),
			year INTEGER NOT NULL,
			UNIQUE (profile_id, category_id, month, year)
		)`,
		`CREATE TABLE IF NOT EXISTS recurring_transactions (
			id BIGSERIAL PRIMARY KEY,
			profile_id BIGINT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
			category_id BIGINT REFERENCES categories(id) ON DELETE SET NULL,
			description TEXT NOT NULL DEFAULT '',
			amount NUMERIC(15, 2) NOT NULL CHECK (amount > 0),
			frequency TEXT NOT NULL,
			end_date DATE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`ALTER TABLE recurring_transactions ADD COLUMN IF NOT EXISTS type TEXT NOT NULL DEFAULT 'expense'`,
		`CREATE TABLE IF NOT EXISTS investments (
			id BIGSERIAL PRIMARY KEY,
			profile_id BIGINT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			type TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS investment_transactions (
			id BIGSERIAL PRIMARY KEY,
			investment_id BIGINT NOT NULL REFERENCES investments(id) ON DELETE CASCADE,
			account_id BIGINT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
			transaction_type TEXT NOT NULL CHECK (transaction_type IN ('Buy', 'Sell')),
			quantity NUMERIC(18, 6) NOT NULL,
			price_per_unit NUMERIC(18, 6) NOT NULL,
			transaction_date DATE NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_investment_transactions_investment_id ON investment_transactions(investment_id)`,
		`CREATE TABLE IF NOT EXISTS notifications (
			id BIGSERIAL PRIMARY KEY,
			profile_id BIGINT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
			message TEXT NOT NULL,
			is_read BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_profile_id ON notifications(profile_id)`,
		`CREATE TABLE IF NOT EXISTS financial_goals (
			id BIGSERIAL PRIMARY KEY,
			profile_id BIGINT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
			goal_name TEXT NOT NULL,
			target_amount NUMERIC(15,2) NOT NULL CHECK (target_amount > 0),
			current_amount NUMERIC(15,2) NOT NULL DEFAULT 0,
			target_date DATE,
			status TEXT NOT NULL DEFAULT 'In Progress',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_financial_goals_profile_id ON financial_goals(profile_id)`,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}

// DefaultPaymentMethods are seeded on startup.
var DefaultPaymentMethods = []string{
	"Credit Card",
	"Debit Card",
	"Cash",
	"Bank Transfer",
	"PayPal",
	"Venmo",
	"Zelle",
	"Check",
	"Apple Pay",
	"Google Pay",
}

// SeedPaymentMethods inserts the default payment methods.
func SeedPaymentMethods(ctx context.Context, db PGXDB) error {
	for _, name := range DefaultPaymentMethods {
		_, err := db.Exec(ctx,
			`INSERT INTO payment_methods (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`,
			name,
		)
		if err != nil {
			return fmt.Errorf("failed to seed payment method %q: %w", name, err)
		}
	}
	return nil
}
