package repository

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gitlab.com/yelinaung/fintrack/internal/models"
)

func TestBudgetRepository(t *testing.T) {
	f := setupFixture(t, "0")
	repo := NewBudgetRepository(f.db)
	txRepo := NewTransactionRepository(f.db)
	food := f.category(t, "Food")

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0)

	budget := &models.Budget{
		ProfileID:  f.profile.ID,
		CategoryID: food.ID,
		Limit:      decimal.RequireFromString("25"),
		Month:      int(now.Month()),
		Year:       now.Year(),
	}
	require.NoError(t, repo.Create(f.ctx, budget))
	require.NotZero(t, budget.ID)

	t.Run("derives spent amount from transactions", func(t *testing.T) {
		budgets, err := repo.ListWithSpent(f.ctx, f.profile.ID, budget.Year, budget.Month, start, end)
		require.NoError(t, err)
		require.Len(t, budgets, 1)
		require.True(t, budgets[0].SpentAmount.IsZero())
		require.Equal(t, "Food", budgets[0].CategoryName)

		tx := &models.Transaction{
			AccountID:  f.account.ID,
			Type:       models.TransactionTypeExpense,
			Amount:     decimal.RequireFromString("30"),
			CategoryID: &food.ID,
		}
		require.NoError(t, txRepo.Create(f.ctx, tx))

		budgets, err = repo.ListWithSpent(f.ctx, f.profile.ID, budget.Year, budget.Month, start, end)
		require.NoError(t, err)
		require.Equal(t, "30.00", budgets[0].SpentAmount.StringFixed(2))
	})

	t.Run("gets budget for period", func(t *testing.T) {
		b, err := repo.GetForPeriod(f.ctx, f.profile.ID, food.ID, budget.Year, budget.Month)
		require.NoError(t, err)
		require.Equal(t, budget.ID, b.ID)
		require.Equal(t, "Food", b.CategoryName)

		_, err = repo.GetForPeriod(f.ctx, f.profile.ID, food.ID, budget.Year+1, budget.Month)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("updates limit", func(t *testing.T) {
		require.NoError(t, repo.UpdateLimit(f.ctx, budget.ID, decimal.RequireFromString("40")))

		b, err := repo.GetByID(f.ctx, budget.ID)
		require.NoError(t, err)
		require.Equal(t, "40.00", b.Limit.StringFixed(2))
	})

	t.Run("rejects duplicate period", func(t *testing.T) {
		dup := &models.Budget{
			ProfileID:  f.profile.ID,
			CategoryID: food.ID,
			Limit:      decimal.NewFromInt(1),
			Month:      budget.Month,
			Year:       budget.Year,
		}
		require.ErrorIs(t, repo.Create(f.ctx, dup), ErrDuplicate)
	})
}

func TestBudgetRepository_Delete(t *testing.T) {
	f := setupFixture(t, "0")
	repo := NewBudgetRepository(f.db)
	cat := f.category(t, "Bills")

	b := &models.Budget{ProfileID: f.profile.ID, CategoryID: cat.ID, Limit: decimal.NewFromInt(5), Month: 1, Year: 2026}
	require.NoError(t, repo.Create(f.ctx, b))

	require.NoError(t, repo.Delete(f.ctx, b.ID))
	require.ErrorIs(t, repo.Delete(f.ctx, b.ID), ErrNotFound)
	require.ErrorIs(t, repo.UpdateLimit(f.ctx, b.ID, decimal.NewFromInt(1)), ErrNotFound)
}
