// Package calculator holds the pure arithmetic behind the billing reports.
package calculator

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gsdgroup/billing/internal/models"
)

// MonthlyTotals sums amount plus tax of every line per calendar month of its
// issue date, taken in UTC. Months of different years share one bucket.
//
// The result is ordered January to December and contains only months that
// have at least one line. Missing taxes count as zero.
func MonthlyTotals(lines []models.ChargeLine) []models.MonthlyAmount {
	var (
		totals [12]decimal.Decimal
		seen   [12]bool
	)

	for _, line := range lines {
		i := line.IssueDate.UTC().Month() - time.January
		totals[i] = totals[i].Add(line.Total())
		seen[i] = true
	}

	var result []models.MonthlyAmount
	for i := range totals {
		if !seen[i] {
			continue
		}
		result = append(result, models.MonthlyAmount{
			Month: time.January + time.Month(i),
			Total: models.Money(totals[i]),
		})
	}

	return result
}
