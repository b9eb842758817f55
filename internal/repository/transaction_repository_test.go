package repository

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gitlab.com/yelinaung/fintrack/internal/models"
)

func TestTransactionRepository_CreateAndGet(t *testing.T) {
	f := setupFixture(t, "0")
	repo := NewTransactionRepository(f.db)
	cat := f.category(t, "Food")

	t.Run("creates transaction with category", func(t *testing.T) {
		tx := &models.Transaction{
			AccountID:   f.account.ID,
			Type:        models.TransactionTypeExpense,
			Amount:      decimal.RequireFromString("25.50"),
			Description: "Lunch",
			CategoryID:  &cat.ID,
		}
		require.NoError(t, repo.Create(f.ctx, tx))
		require.NotZero(t, tx.ID)
		require.False(t, tx.Timestamp.IsZero())

		fetched, err := repo.GetByID(f.ctx, tx.ID)
		require.NoError(t, err)
		require.Equal(t, "Lunch", fetched.Description)
		require.True(t, tx.Amount.Equal(fetched.Amount))
		require.Equal(t, cat.ID, *fetched.CategoryID)
		require.Nil(t, fetched.PaymentMethodID)
	})

	t.Run("creates transaction without category", func(t *testing.T) {
		tx := &models.Transaction{
			AccountID: f.account.ID,
			Type:      models.TransactionTypeIncome,
			Amount:    decimal.RequireFromString("10"),
		}
		require.NoError(t, repo.Create(f.ctx, tx))

		fetched, err := repo.GetByIDForUpdate(f.ctx, tx.ID)
		require.NoError(t, err)
		require.Nil(t, fetched.CategoryID)
	})

	t.Run("returns not found for missing transaction", func(t *testing.T) {
		_, err := repo.GetByID(f.ctx, -1)
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestTransactionRepository_Listing(t *testing.T) {
	f := setupFixture(t, "0")
	repo := NewTransactionRepository(f.db)
	cat := f.category(t, "Transport")

	for i := range 5 {
		tx := &models.Transaction{
			AccountID:  f.account.ID,
			Type:       models.TransactionTypeExpense,
			Amount:     decimal.NewFromInt(int64(i + 1)),
			CategoryID: &cat.ID,
		}
		require.NoError(t, repo.Create(f.ctx, tx))
	}

	t.Run("lists by account with joins", func(t *testing.T) {
		txs, err := repo.ListByAccount(f.ctx, f.account.ID)
		require.NoError(t, err)
		require.Len(t, txs, 5)
		require.Equal(t, "Transport", txs[0].CategoryName)
		require.Equal(t, "Checking", txs[0].AccountName)
	})

	t.Run("limits recent profile transactions", func(t *testing.T) {
		txs, err := repo.ListRecentByProfile(f.ctx, f.profile.ID, 3)
		require.NoError(t, err)
		require.Len(t, txs, 3)
	})

	t.Run("limits recent user transactions", func(t *testing.T) {
		txs, err := repo.ListRecentByUser(f.ctx, f.user.ID, 2)
		require.NoError(t, err)
		require.Len(t, txs, 2)
	})

	t.Run("lists since a point in time oldest first", func(t *testing.T) {
		txs, err := repo.ListByProfileSince(f.ctx, f.profile.ID, time.Now().Add(-time.Hour))
		require.NoError(t, err)
		require.Len(t, txs, 5)
		require.False(t, txs[0].Timestamp.After(txs[4].Timestamp))

		txs, err = repo.ListByProfileSince(f.ctx, f.profile.ID, time.Now().Add(time.Hour))
		require.NoError(t, err)
		require.Empty(t, txs)
	})

	t.Run("returns empty for account with no transactions", func(t *testing.T) {
		txs, err := repo.ListByAccount(f.ctx, -1)
		require.NoError(t, err)
		require.Empty(t, txs)
	})
}

func TestTransactionRepository_Aggregates(t *testing.T) {
	f := setupFixture(t, "0")
	repo := NewTransactionRepository(f.db)
	food := f.category(t, "Food")
	fun := f.category(t, "Fun")

	create := func(txType, amount string, cat *models.Category) *models.Transaction {
		tx := &models.Transaction{AccountID: f.account.ID, Type: txType, Amount: decimal.RequireFromString(amount)}
		if cat != nil {
			tx.CategoryID = &cat.ID
		}
		require.NoError(t, repo.Create(f.ctx, tx))
		return tx
	}

	create(models.TransactionTypeExpense, "30", food)
	create(models.TransactionTypeExpense, "12.50", food)
	create(models.TransactionTypeIncome, "100", food)
	create(models.TransactionTypeExpense, "7", fun)
	last := create(models.TransactionTypeExpense, "1.25", nil)

	start := time.Now().Add(-time.Hour)
	end := time.Now().Add(time.Hour)

	t.Run("spent counts only expenses of the category", func(t *testing.T) {
		spent, err := repo.SpentAmount(f.ctx, f.profile.ID, food.ID, start, end)
		require.NoError(t, err)
		require.Equal(t, "42.50", spent.StringFixed(2))
	})

	t.Run("spent is zero outside the window", func(t *testing.T) {
		spent, err := repo.SpentAmount(f.ctx, f.profile.ID, food.ID, end, end.Add(time.Hour))
		require.NoError(t, err)
		require.True(t, spent.IsZero())
	})

	t.Run("signed sum replays the ledger", func(t *testing.T) {
		sum, err := repo.SumSignedByAccount(f.ctx, f.account.ID)
		require.NoError(t, err)
		require.Equal(t, "49.25", sum.StringFixed(2))
	})

	t.Run("delete removes row", func(t *testing.T) {
		require.NoError(t, repo.Delete(f.ctx, last.ID))
		require.ErrorIs(t, repo.Delete(f.ctx, last.ID), ErrNotFound)

		sum, err := repo.SumSignedByAccount(f.ctx, f.account.ID)
		require.NoError(t, err)
		require.Equal(t, "50.50", sum.StringFixed(2))
	})
}
