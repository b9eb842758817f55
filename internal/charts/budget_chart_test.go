package charts

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"gitlab.com/yelinaung/fintrack/internal/models"
)

func budget(name string, spent string) models.Budget {
	return models.Budget{CategoryName: name, Limit: decimal.NewFromInt(100), SpentAmount: decimal.RequireFromString(spent)}
}

func TestBudgetSpendChart(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		budgets []models.Budget
		wantErr error
	}{
		{
			name:    "multiple categories",
			budgets: []models.Budget{budget("Food", "30.00"), budget("Rent", "1200"), budget("Fun", "12.50")},
		},
		{
			name:    "single category",
			budgets: []models.Budget{budget("Food", "30.00")},
		},
		{
			name:    "nothing spent",
			budgets: []models.Budget{budget("Food", "0"), budget("Rent", "0")},
			wantErr: ErrNoSpending,
		},
		{
			name:    "no budgets",
			budgets: nil,
			wantErr: ErrNoSpending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			png, err := BudgetSpendChart(tt.budgets, "March 2024")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Nil(t, png)
				return
			}
			require.NoError(t, err)
			require.True(t, bytes.HasPrefix(png, []byte("\x89PNG")), "output is not a PNG")
		})
	}
}

func TestSpendSlices(t *testing.T) {
	t.Parallel()

	names, values := spendSlices([]models.Budget{
		budget("Rent", "1200"),
		budget("Food", "30.25"),
		budget("Idle", "0"),
		{CategoryID: 9, SpentAmount: decimal.NewFromInt(4)},
	})

	require.Equal(t, []string{"Category 9", "Food", "Rent"}, names)
	require.Equal(t, []float64{4, 30.25, 1200}, values)
}
