package repository

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gitlab.com/yelinaung/fintrack/internal/database"
	"gitlab.com/yelinaung/fintrack/internal/models"
)

var emailSeq atomic.Int64

type fixture struct {
	db      database.DB
	ctx     context.Context
	user    *models.User
	profile *models.Profile
	account *models.Account
}

// setupFixture creates a user with one personal profile and one account
// inside a rolled-back test transaction.
func setupFixture(t *testing.T, opening string) *fixture {
	t.Helper()

	db := database.TestTx(t)
	ctx := context.Background()

	user := &models.User{Name: "Test User", Email: fmt.Sprintf("repo-%d@example.com", emailSeq.Add(1))}
	require.NoError(t, NewUserRepository(db).Create(ctx, user))

	profile := &models.Profile{UserID: user.ID, Name: "Personal", Type: models.ProfileTypePersonal}
	require.NoError(t, NewProfileRepository(db).Create(ctx, profile))

	account := &models.Account{ProfileID: profile.ID, Name: "Checking", Balance: decimal.RequireFromString(opening)}
	require.NoError(t, NewAccountRepository(db).Create(ctx, account))

	return &fixture{db: db, ctx: ctx, user: user, profile: profile, account: account}
}

func (f *fixture) category(t *testing.T, name string) *models.Category {
	t.Helper()
	cat := &models.Category{ProfileID: f.profile.ID, Name: name}
	require.NoError(t, NewCategoryRepository(f.db).Create(f.ctx, cat))
	return cat
}
