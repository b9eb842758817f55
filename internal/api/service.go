package api

import (
	"context"

	"github.com/shopspring/decimal"

	"gitlab.com/yelinaung/fintrack/internal/gemini"
	"gitlab.com/yelinaung/fintrack/internal/ledger"
	"gitlab.com/yelinaung/fintrack/internal/models"
)

// Ledger is the subset of *ledger.Service the handlers call.
type Ledger interface {
	UserResolver

	CreateTransaction(ctx context.Context, userID int64, in ledger.CreateTransactionInput) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, transactionID int64) error
	ListAccountTransactions(ctx context.Context, userID, accountID int64) ([]models.Transaction, error)
	ListProfileTransactions(ctx context.Context, userID, profileID int64, limit int) ([]models.Transaction, error)
	ListRecentTransactions(ctx context.Context, userID int64, limit int) ([]models.Transaction, error)

	CreateBudget(ctx context.Context, userID int64, in ledger.BudgetInput) (*models.Budget, error)
	ListBudgets(ctx context.Context, userID, profileID int64, year, month int) ([]models.Budget, error)
	UpdateBudget(ctx context.Context, userID, budgetID int64, limit decimal.Decimal) (*models.Budget, error)
	DeleteBudget(ctx context.Context, userID, budgetID int64) error

	CreateRecurring(ctx context.Context, userID int64, in ledger.RecurringInput) (*models.RecurringTransaction, error)
	ListRecurring(ctx context.Context, userID, profileID int64) ([]models.RecurringTransaction, error)
	UpdateRecurring(ctx context.Context, userID, recurringID int64, in ledger.RecurringInput) (*models.RecurringTransaction, error)
	DeleteRecurring(ctx context.Context, userID, recurringID int64) error
	ExecuteRecurring(ctx context.Context, userID int64, in ledger.ExecuteRecurringInput) (*models.Transaction, error)

	CreateInvestment(ctx context.Context, userID, profileID int64, name, invType string) (*models.Investment, error)
	ListInvestments(ctx context.Context, userID, profileID int64) ([]models.Investment, error)
	ListInvestmentTransactions(ctx context.Context, userID, investmentID int64) ([]models.InvestmentTransaction, error)
	CreateInvestmentTransaction(ctx context.Context, userID int64, in ledger.InvestmentTransactionInput) (*models.InvestmentTransaction, error)

	CurrentNetWorth(ctx context.Context, userID, profileID int64) (decimal.Decimal, error)
	UserNetWorth(ctx context.Context, userID int64) (decimal.Decimal, error)
	HistoricalNetWorth(ctx context.Context, userID, profileID int64, days int) ([]models.NetWorthPoint, error)

	CreateProfile(ctx context.Context, userID int64, name, profileType string) (*models.Profile, error)
	ListProfiles(ctx context.Context, userID int64) ([]models.Profile, error)
	UpdateProfile(ctx context.Context, userID, profileID int64, name, profileType string) (*models.Profile, error)
	DeleteProfile(ctx context.Context, userID, profileID int64) error

	CreateAccount(ctx context.Context, userID, profileID int64, name string, opening decimal.Decimal) (*models.Account, error)
	GetAccount(ctx context.Context, userID, accountID int64) (*models.Account, error)
	ListAccounts(ctx context.Context, userID int64) ([]models.Account, error)
	ListProfileAccounts(ctx context.Context, userID, profileID int64) ([]models.Account, error)
	UpdateAccount(ctx context.Context, userID, accountID int64, upd ledger.AccountUpdate) (*models.Account, error)
	DeleteAccount(ctx context.Context, userID, accountID int64) error
	ListPaymentMethods(ctx context.Context) ([]models.PaymentMethod, error)

	CreateCategory(ctx context.Context, userID, profileID int64, name string, parentID *int64) (*models.Category, error)
	ListCategories(ctx context.Context, userID, profileID int64) ([]models.Category, error)
	RenameCategory(ctx context.Context, userID, categoryID int64, name string) (*models.Category, error)
	DeleteCategory(ctx context.Context, userID, categoryID int64) error

	ListNotifications(ctx context.Context, userID, profileID int64, unreadOnly bool) ([]models.Notification, error)
	CreateNotification(ctx context.Context, userID, profileID int64, message string) (*models.Notification, error)
	MarkNotificationRead(ctx context.Context, userID, notificationID int64) error
	MarkAllNotificationsRead(ctx context.Context, userID, profileID int64) (int, error)
	DeleteNotification(ctx context.Context, userID, notificationID int64) error

	CreateGoal(ctx context.Context, userID int64, in ledger.GoalInput) (*models.FinancialGoal, error)
	ListGoals(ctx context.Context, userID, profileID int64) ([]models.FinancialGoal, error)
	UpdateGoal(ctx context.Context, userID, goalID int64, upd ledger.GoalUpdate) (*models.FinancialGoal, error)
	DeleteGoal(ctx context.Context, userID, goalID int64) error
}

// CategorySuggester picks a category for a free-text description.
type CategorySuggester interface {
	SuggestCategory(ctx context.Context, description, txType string, categories []string) (*gemini.Suggestion, error)
}

var (
	_ Ledger            = (*ledger.Service)(nil)
	_ CategorySuggester = (*gemini.Client)(nil)
)
