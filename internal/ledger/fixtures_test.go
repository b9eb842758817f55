package ledger

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"gitlab.com/yelinaung/fintrack/internal/database"
	"gitlab.com/yelinaung/fintrack/internal/models"
	"gitlab.com/yelinaung/fintrack/internal/repository"
)

var emailSeq atomic.Int64

type fixture struct {
	db      database.DB
	ctx     context.Context
	svc     *Service
	user    *models.User
	profile *models.Profile
	account *models.Account
}

func newTestService(db database.DB) *Service {
	return NewService(db, Options{Location: time.UTC})
}

// setupFixture creates a user owning one profile with one account, inside a
// test transaction that is rolled back at cleanup.
func setupFixture(t *testing.T, opening string) *fixture {
	t.Helper()
	return setupFixtureOn(t, database.TestTx(t), opening)
}

// setupCommittedFixture builds the same fixture directly on the shared pool so
// that concurrent service calls see each other's commits. The user, and every
// row cascading from it, is deleted at cleanup.
func setupCommittedFixture(t *testing.T, opening string) *fixture {
	t.Helper()

	pool := database.TestPool(t)
	f := setupFixtureOn(t, pool, opening)
	t.Cleanup(func() {
		_, err := pool.Exec(context.Background(), "DELETE FROM users WHERE id = $1", f.user.ID)
		require.NoError(t, err)
	})
	return f
}

func setupFixtureOn(t *testing.T, db database.DB, opening string) *fixture {
	t.Helper()

	f := &fixture{db: db, ctx: context.Background(), svc: newTestService(db)}
	f.user = f.newUser(t)
	f.profile = f.newProfile(t, f.user.ID)
	f.account = f.newAccount(t, f.profile.ID, opening)
	return f
}

func (f *fixture) newUser(t *testing.T) *models.User {
	t.Helper()
	u := &models.User{Name: "Ledger User", Email: fmt.Sprintf("ledger-%d@example.com", emailSeq.Add(1))}
	require.NoError(t, repository.NewUserRepository(f.db).Create(f.ctx, u))
	return u
}

func (f *fixture) newProfile(t *testing.T, userID int64) *models.Profile {
	t.Helper()
	p, err := f.svc.CreateProfile(f.ctx, userID, "Personal", models.ProfileTypePersonal)
	require.NoError(t, err)
	return p
}

func (f *fixture) newAccount(t *testing.T, profileID int64, opening string) *models.Account {
	t.Helper()
	var userID int64
	p, err := repository.NewProfileRepository(f.db).GetByID(f.ctx, profileID)
	require.NoError(t, err)
	userID = p.UserID
	a, err := f.svc.CreateAccount(f.ctx, userID, profileID, "Checking", decimal.RequireFromString(opening))
	require.NoError(t, err)
	return a
}

func (f *fixture) newCategory(t *testing.T, name string) *models.Category {
	t.Helper()
	c, err := f.svc.CreateCategory(f.ctx, f.user.ID, f.profile.ID, name, nil)
	require.NoError(t, err)
	return c
}

func (f *fixture) balance(t require.TestingT, accountID int64) decimal.Decimal {
	a, err := repository.NewAccountRepository(f.db).GetByID(f.ctx, accountID)
	require.NoError(t, err)
	return a.Balance
}

func (f *fixture) expense(t *testing.T, amount string, categoryID *int64) *models.Transaction {
	t.Helper()
	tx, err := f.svc.CreateTransaction(f.ctx, f.user.ID, CreateTransactionInput{
		AccountID:  f.account.ID,
		Type:       models.TransactionTypeExpense,
		Amount:     decimal.RequireFromString(amount),
		CategoryID: categoryID,
	})
	require.NoError(t, err)
	return tx
}

func requireDecimal(t require.TestingT, expected string, got decimal.Decimal) {
	require.True(t, decimal.RequireFromString(expected).Equal(got), "expected %s, got %s", expected, got)
}
