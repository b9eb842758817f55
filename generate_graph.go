//go:build ignore

// Renders a sample budget chart to budget_chart.png for eyeballing layout
// changes. Run with: go run generate_graph.go
package main

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"gitlab.com/yelinaung/fintrack/internal/charts"
	"gitlab.com/yelinaung/fintrack/internal/models"
)

func main() {
	budgets := []models.Budget{
		{CategoryID: 1, CategoryName: "Food - Groceries", Limit: decimal.NewFromInt(400), SpentAmount: decimal.NewFromFloat(150.50)},
		{CategoryID: 2, CategoryName: "Food - Dining Out", Limit: decimal.NewFromInt(200), SpentAmount: decimal.NewFromFloat(130.50)},
		{CategoryID: 3, CategoryName: "Transportation", Limit: decimal.NewFromInt(100), SpentAmount: decimal.NewFromInt(60)},
		{CategoryID: 4, CategoryName: "Entertainment", Limit: decimal.NewFromInt(80), SpentAmount: decimal.NewFromInt(25)},
		{CategoryID: 5, CategoryName: "Bills & Utilities", Limit: decimal.NewFromInt(300), SpentAmount: decimal.Zero},
	}

	png, err := charts.BudgetSpendChart(budgets, "March 2024")
	if err != nil {
		fmt.Fprintf(os.Stderr, "render chart: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile("budget_chart.png", png, 0o600); err != nil {
		fmt.Fprintf(os.Stderr, "write chart: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Wrote budget_chart.png")
}
