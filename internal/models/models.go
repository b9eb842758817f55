// Package models defines the domain entities for the finance tracker.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxCategoryNameLength is the maximum allowed length for category names.
const MaxCategoryNameLength = 50

// Profile types.
const (
	ProfileTypePersonal = "personal"
	ProfileTypeBusiness = "business"
)

// Transaction types.
const (
	TransactionTypeIncome  = "income"
	TransactionTypeExpense = "expense"
)

// Investment transaction types.
const (
	InvestmentBuy  = "Buy"
	InvestmentSell = "Sell"
)

// DefaultRecurringDescription is used when a recurring definition has no description.
const DefaultRecurringDescription = "Recurring Transaction"

// User is an authenticated identity. Users own profiles.
type User struct {
	ID        int64     `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile is a named financial context owned by a user.
type Profile struct {
	ID        int64     `json:"profile_id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"profile_name"`
	Type      string    `json:"profile_type"`
	CreatedAt time.Time `json:"created_at"`
}

// Account is a balance-holding container within a profile.
type Account struct {
	ID        int64           `json:"account_id"`
	ProfileID int64           `json:"profile_id"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}

// Category scopes transactions and budgets within a profile.
type Category struct {
	ID               int64     `json:"category_id"`
	ProfileID        int64     `json:"profile_id"`
	Name             string    `json:"name"`
	ParentCategoryID *int64    `json:"parent_category_id"`
	CreatedAt        time.Time `json:"created_at"`
}

// PaymentMethod is a globally seeded way of paying.
type PaymentMethod struct {
	ID   int64  `json:"payment_method_id"`
	Name string `json:"name"`
}

// Transaction is a single income or expense event on an account.
type Transaction struct {
	ID              int64           `json:"transaction_id"`
	AccountID       int64           `json:"account_id"`
	Type            string          `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	CategoryID      *int64          `json:"category_id"`
	PaymentMethodID *int64          `json:"payment_method_id"`
	Timestamp       time.Time       `json:"time_stamp"`

	// Populated by listing queries only.
	CategoryName string `json:"category_name,omitempty"`
	AccountName  string `json:"account_name,omitempty"`
}

// SignedAmount returns the balance effect of the transaction:
// +amount for income, -amount for expense.
func (t Transaction) SignedAmount() decimal.Decimal {
	return SignedAmount(t.Type, t.Amount)
}

// SignedAmount returns +amount for income and -amount for anything else.
func SignedAmount(txType string, amount decimal.Decimal) decimal.Decimal {
	if txType == TransactionTypeIncome {
		return amount
	}
	return amount.Neg()
}

// IsValidTransactionType reports whether t is income or expense.
func IsValidTransactionType(t string) bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Budget is a spending limit for a category within a month.
// SpentAmount is derived on read and never stored.
type Budget struct {
	ID          int64           `json:"budget_id"`
	ProfileID   int64           `json:"profile_id"`
	CategoryID  int64           `json:"category_id"`
	Limit       decimal.Decimal `json:"budget"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	SpentAmount decimal.Decimal `json:"spent_amount"`

	CategoryName string `json:"category_name,omitempty"`
}

// RecurringTransaction is a template for generating transactions on demand.
// Frequency is descriptive only.
type RecurringTransaction struct {
	ID          int64           `json:"recurring_id"`
	ProfileID   int64           `json:"profile_id"`
	CategoryID  *int64          `json:"category_id"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Frequency   string          `json:"frequency"`
	EndDate     *time.Time      `json:"end_date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Investment is a holding tracked by a profile.
type Investment struct {
	ID        int64     `json:"investment_id"`
	ProfileID int64     `json:"profile_id"`
	Name      string    `json:"investment_name"`
	Type      string    `json:"investment_type"`
	CreatedAt time.Time `json:"created_at"`
}

// InvestmentTransaction records a buy or sell funded by an account.
type InvestmentTransaction struct {
	ID           int64           `json:"inv_transaction_id"`
	InvestmentID int64           `json:"investment_id"`
	AccountID    int64           `json:"account_id"`
	Type         string          `json:"transaction_type"`
	Quantity     decimal.Decimal `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	Date         time.Time       `json:"transaction_date"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Total returns quantity * price per unit.
func (t InvestmentTransaction) Total() decimal.Decimal {
	return t.Quantity.Mul(t.PricePerUnit)
}

// Notification is a message addressed to a profile.
type Notification struct {
	ID        int64     `json:"notification_id"`
	ProfileID int64     `json:"profile_id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// Financial goal statuses.
const (
	GoalInProgress = "In Progress"
	GoalAchieved   = "Achieved"
	GoalCancelled  = "Cancelled"
)

// IsValidGoalStatus reports whether s is a known goal status.
func IsValidGoalStatus(s string) bool {
	return s == GoalInProgress || s == GoalAchieved || s == GoalCancelled
}

// FinancialGoal is a savings target a profile is working towards.
type FinancialGoal struct {
	ID            int64           `json:"goal_id"`
	ProfileID     int64           `json:"profile_id"`
	Name          string          `json:"goal_name"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	TargetDate    *time.Time      `json:"target_date"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// NetWorthPoint is one day of a net-worth history series.
type NetWorthPoint struct {
	Date     string          `json:"date"`
	NetWorth decimal.Decimal `json:"netWorth"`
	Label    string          `json:"label"`
}
