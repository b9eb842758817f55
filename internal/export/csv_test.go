package export

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"gitlab.com/yelinaung/fintrack/internal/models"
)

func TestTransactionsCSV(t *testing.T) {
	t.Parallel()

	t.Run("header and rows", func(t *testing.T) {
		t.Parallel()

		txs := []models.Transaction{
			{
				ID:           1,
				Type:         models.TransactionTypeExpense,
				Amount:       decimal.NewFromFloat(10.5),
				Description:  "Coffee",
				Timestamp:    time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC),
				CategoryName: "Food",
				AccountName:  "Checking",
			},
			{
				ID:          2,
				Type:        models.TransactionTypeIncome,
				Amount:      decimal.NewFromInt(2500),
				Description: "Salary",
				Timestamp:   time.Date(2026, 1, 31, 23, 0, 0, 0, time.UTC),
				AccountName: "Checking",
			},
		}

		data, err := TransactionsCSV(txs, time.UTC)
		require.NoError(t, err)

		records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 3)
		require.Equal(t, TransactionsHeader, records[0])
		require.Equal(t, []string{"1", "2026-01-15 10:30:00", "expense", "10.50", "-10.50", "Coffee", "Food", "Checking"}, records[1])
		require.Equal(t, []string{"2", "2026-01-31 23:00:00", "income", "2500.00", "2500.00", "Salary", "Uncategorized", "Checking"}, records[2])
	})

	t.Run("renders in location", func(t *testing.T) {
		t.Parallel()

		loc := time.FixedZone("UTC+8", 8*3600)
		txs := []models.Transaction{{
			ID:        3,
			Type:      models.TransactionTypeExpense,
			Amount:    decimal.NewFromInt(1),
			Timestamp: time.Date(2026, 1, 31, 20, 0, 0, 0, time.UTC),
		}}

		data, err := TransactionsCSV(txs, loc)
		require.NoError(t, err)
		require.Contains(t, string(data), "2026-02-01 04:00:00")
	})

	t.Run("empty list has header only", func(t *testing.T) {
		t.Parallel()

		data, err := TransactionsCSV(nil, nil)
		require.NoError(t, err)
		records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 1)
	})

	t.Run("quotes commas and escapes formulas", func(t *testing.T) {
		t.Parallel()

		txs := []models.Transaction{{
			ID:          4,
			Type:        models.TransactionTypeExpense,
			Amount:      decimal.NewFromInt(5),
			Description: "=HYPERLINK(\"x\"), lunch",
			Timestamp:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		}}

		data, err := TransactionsCSV(txs, time.UTC)
		require.NoError(t, err)
		records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
		require.NoError(t, err)
		require.Equal(t, "'=HYPERLINK(\"x\"), lunch", records[1][5])
	})
}

func TestEscapeCell(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "Groceries", want: "Groceries"},
		{in: "=1+1", want: "'=1+1"},
		{in: "+44 call", want: "'+44 call"},
		{in: "-refund", want: "'-refund"},
		{in: "@mention", want: "'@mention"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, escapeCell(tt.in), tt.in)
	}
}

func TestTransactionsFilename(t *testing.T) {
	t.Parallel()

	got := TransactionsFilename(7, time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC))
	require.Equal(t, "transactions_account_7_2024-03-05.csv", got)
}
