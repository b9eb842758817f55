// Package charts renders budget reports as PNG images.
package charts

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-analyze/charts"
	"github.com/shopspring/decimal"

	"gitlab.com/yelinaung/fintrack/internal/models"
)

// ErrNoSpending is returned when no budgeted category has any spending.
var ErrNoSpending = errors.New("no spending to chart")

// BudgetSpendChart renders a pie chart of spent amount per budgeted category.
// period is shown in the title, for example "March 2024".
func BudgetSpendChart(budgets []models.Budget, period string) ([]byte, error) {
	names, values := spendSlices(budgets)
	if len(values) == 0 {
		return nil, ErrNoSpending
	}

	p, err := charts.PieRender(
		values,
		charts.TitleOptionFunc(charts.TitleOption{
			Text: fmt.Sprintf("Budget Spend - %s", period),
		}),
		charts.LegendLabelsOptionFunc(names),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf, nil
}

// spendSlices returns category labels and spent values, sorted by label,
// skipping categories with nothing spent. Repeated names are summed.
func spendSlices(budgets []models.Budget) ([]string, []float64) {
	totals := make(map[string]decimal.Decimal)
	for _, b := range budgets {
		if !b.SpentAmount.IsPositive() {
			continue
		}
		name := b.CategoryName
		if name == "" {
			name = fmt.Sprintf("Category %d", b.CategoryID)
		}
		totals[name] = totals[name].Add(b.SpentAmount)
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)

	values := make([]float64, len(names))
	for i, name := range names {
		values[i] = totals[name].InexactFloat64()
	}
	return names, values
}
