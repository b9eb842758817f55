package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"gitlab.com/yelinaung/fintrack/internal/gemini"
	"gitlab.com/yelinaung/fintrack/internal/ledger"
	"gitlab.com/yelinaung/fintrack/internal/models"
)

var testSecret = []byte("test-secret-with-enough-entropy-123")

const testUserID int64 = 42

// fakeLedger embeds Ledger so that calling a method the test did not stub
// panics, which Recoverer turns into a 500.
type fakeLedger struct {
	Ledger

	users map[int64]bool

	createTx        func(in ledger.CreateTransactionInput) (*models.Transaction, error)
	deleteTx        func(id int64) error
	accountTxs      []models.Transaction
	listBudgets     func(profileID int64, year, month int) ([]models.Budget, error)
	categories      []models.Category
	execute         func(in ledger.ExecuteRecurringInput) (*models.Transaction, error)
	createRecurring func(in ledger.RecurringInput) (*models.RecurringTransaction, error)
	createInvTx     func(in ledger.InvestmentTransactionInput) (*models.InvestmentTransaction, error)
	history         func(profileID int64, days int) ([]models.NetWorthPoint, error)
	netWorth        decimal.Decimal
	updateProfile   func(id int64, name, profileType string) (*models.Profile, error)
	createGoal      func(in ledger.GoalInput) (*models.FinancialGoal, error)
	updateGoal      func(id int64, upd ledger.GoalUpdate) (*models.FinancialGoal, error)
	deleteGoal      func(id int64) error
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{users: map[int64]bool{testUserID: true}}
}

func (f *fakeLedger) GetUser(_ context.Context, userID int64) (*models.User, error) {
	if !f.users[userID] {
		return nil, ledger.ErrNotFound
	}
	return &models.User{ID: userID, Name: "Test"}, nil
}

func (f *fakeLedger) CreateTransaction(_ context.Context, _ int64, in ledger.CreateTransactionInput) (*models.Transaction, error) {
	return f.createTx(in)
}

func (f *fakeLedger) DeleteTransaction(_ context.Context, _ int64, id int64) error {
	return f.deleteTx(id)
}

func (f *fakeLedger) ListAccountTransactions(context.Context, int64, int64) ([]models.Transaction, error) {
	return f.accountTxs, nil
}

func (f *fakeLedger) ListBudgets(_ context.Context, _ int64, profileID int64, year, month int) ([]models.Budget, error) {
	return f.listBudgets(profileID, year, month)
}

func (f *fakeLedger) ListCategories(_ context.Context, _ int64, _ int64) ([]models.Category, error) {
	return f.categories, nil
}

func (f *fakeLedger) ExecuteRecurring(_ context.Context, _ int64, in ledger.ExecuteRecurringInput) (*models.Transaction, error) {
	return f.execute(in)
}

func (f *fakeLedger) CreateRecurring(_ context.Context, _ int64, in ledger.RecurringInput) (*models.RecurringTransaction, error) {
	return f.createRecurring(in)
}

func (f *fakeLedger) CreateInvestmentTransaction(_ context.Context, _ int64, in ledger.InvestmentTransactionInput) (*models.InvestmentTransaction, error) {
	return f.createInvTx(in)
}

func (f *fakeLedger) HistoricalNetWorth(_ context.Context, _ int64, profileID int64, days int) ([]models.NetWorthPoint, error) {
	return f.history(profileID, days)
}

func (f *fakeLedger) UserNetWorth(context.Context, int64) (decimal.Decimal, error) {
	return f.netWorth, nil
}

func (f *fakeLedger) UpdateProfile(_ context.Context, _ int64, id int64, name, profileType string) (*models.Profile, error) {
	return f.updateProfile(id, name, profileType)
}

func (f *fakeLedger) CreateGoal(_ context.Context, _ int64, in ledger.GoalInput) (*models.FinancialGoal, error) {
	return f.createGoal(in)
}

func (f *fakeLedger) UpdateGoal(_ context.Context, _ int64, id int64, upd ledger.GoalUpdate) (*models.FinancialGoal, error) {
	return f.updateGoal(id, upd)
}

func (f *fakeLedger) DeleteGoal(_ context.Context, _ int64, id int64) error {
	return f.deleteGoal(id)
}

type fakeSuggester struct {
	suggestion *gemini.Suggestion
	err        error
	gotNames   []string
}

func (s *fakeSuggester) SuggestCategory(_ context.Context, _, _ string, categories []string) (*gemini.Suggestion, error) {
	s.gotNames = categories
	return s.suggestion, s.err
}

func newTestRouter(t *testing.T, l Ledger, s CategorySuggester) http.Handler {
	t.Helper()
	deps := Deps{
		Ledger:      l,
		Secret:      testSecret,
		Location:    time.UTC,
		AllowOrigin: func(origin string) bool { return origin == "https://app.example.com" },
	}
	if s != nil {
		deps.Suggester = s
	}
	return NewRouter(deps)
}

func bearer(t *testing.T, userID int64) string {
	t.Helper()
	tok, err := IssueToken(testSecret, userID, time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}

// do sends an authenticated request for testUserID.
func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", bearer(t, testUserID))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
