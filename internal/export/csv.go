// Package export renders ledger data as downloadable files.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gitlab.com/yelinaung/fintrack/internal/models"
)

// TransactionsHeader is the first CSV row written by TransactionsCSV.
var TransactionsHeader = []string{"ID", "Date", "Type", "Amount", "Signed Amount", "Description", "Category", "Account"}

// TransactionsCSV writes transactions as CSV with timestamps rendered in loc.
func TransactionsCSV(txs []models.Transaction, loc *time.Location) ([]byte, error) {
	if loc == nil {
		loc = time.UTC
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(TransactionsHeader); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i := range txs {
		category := txs[i].CategoryName
		if category == "" {
			category = "Uncategorized"
		}

		row := []string{
			strconv.FormatInt(txs[i].ID, 10),
			txs[i].Timestamp.In(loc).Format(time.DateTime),
			txs[i].Type,
			txs[i].Amount.StringFixed(2),
			txs[i].SignedAmount().StringFixed(2),
			escapeCell(txs[i].Description),
			escapeCell(category),
			escapeCell(txs[i].AccountName),
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// TransactionsFilename names an account export, e.g. transactions_account_7_2024-03-05.csv.
func TransactionsFilename(accountID int64, now time.Time) string {
	return fmt.Sprintf("transactions_account_%d_%s.csv", accountID, now.Format(time.DateOnly))
}

// escapeCell stops spreadsheet apps from evaluating user text as a formula.
func escapeCell(s string) string {
	if s == "" {
		return s
	}
	if strings.ContainsRune("=+-@\t\r", rune(s[0])) {
		return "'" + s
	}
	return s
}
