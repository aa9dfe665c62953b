package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"

	"github.com/ivanoskov/gasto_efectivo/internal/model"
)

// Uncategorized is the display name for expenses whose category reference
// is unset or no longer resolves.
const Uncategorized = "uncategorized"

// MonthlySnapshot is the dashboard header for one month.
type MonthlySnapshot struct {
	Month          model.Date `json:"month"`
	Budget         float64    `json:"budget"`
	Spent          float64    `json:"spent"`
	Remaining      float64    `json:"remaining"`
	PrevMonthSpent float64    `json:"prev_month_spent"`
}

// EnrichedExpense is an expense with its category resolved to a display
// name.
type EnrichedExpense struct {
	model.Expense
	Category string `json:"category"`
}

// CategoryTotal is one slice of the category breakdown.
type CategoryTotal struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// DailyTotal is one point of the daily evolution series.
type DailyTotal struct {
	Date   model.Date `json:"date"`
	Amount float64    `json:"amount"`
}

// RangeReport aggregates the expenses of an inclusive date range.
type RangeReport struct {
	From      model.Date        `json:"from"`
	To        model.Date        `json:"to"`
	Total     float64           `json:"total"`
	Expenses  []EnrichedExpense `json:"expenses"`
	Breakdown []CategoryTotal   `json:"breakdown"`
	Daily     []DailyTotal      `json:"daily"`
}

// MonthlySnapshot computes the dashboard metrics for the month containing
// today: the month's budget, what was spent, what remains, and the
// previous month's spend for comparison. A failed budget read degrades to
// a zero budget instead of taking the whole dashboard down.
func (s *ExpenseTracker) MonthlySnapshot(ctx context.Context, today model.Date) (*MonthlySnapshot, error) {
	monthStart := today.MonthStart()

	budgetAmount := 0.0
	budget, err := s.repo.BudgetFor(ctx, monthStart)
	if err != nil {
		log.Printf("budget lookup for %s failed, showing zero: %v", monthStart, err)
	} else if budget != nil {
		budgetAmount = budget.Amount
	}

	current, err := s.repo.ExpensesBetween(ctx, monthStart, today.MonthEnd())
	if err != nil {
		return nil, fmt.Errorf("failed to get current month expenses: %w", err)
	}
	spent := PeriodTotal(current)

	prev, err := s.repo.ExpensesBetween(ctx, monthStart.AddMonths(-1), monthStart.AddDays(-1))
	if err != nil {
		return nil, fmt.Errorf("failed to get previous month expenses: %w", err)
	}

	return &MonthlySnapshot{
		Month:          monthStart,
		Budget:         budgetAmount,
		Spent:          spent,
		Remaining:      math.Max(budgetAmount-spent, 0),
		PrevMonthSpent: PeriodTotal(prev),
	}, nil
}

// RangeReport fetches the range once and derives every report view from
// it: enriched detail rows (newest first, as fetched), the category
// breakdown, and the daily series.
func (s *ExpenseTracker) RangeReport(ctx context.Context, from, to model.Date) (*RangeReport, error) {
	expenses, err := s.repo.ExpensesBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses: %w", err)
	}
	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	enriched := Enrich(expenses, categories)
	return &RangeReport{
		From:      from,
		To:        to,
		Total:     PeriodTotal(expenses),
		Expenses:  enriched,
		Breakdown: Breakdown(enriched),
		Daily:     DailySeries(expenses),
	}, nil
}

// Enrich attaches a category display name to each expense. Dangling
// references degrade to Uncategorized, never to an error.
func Enrich(expenses []model.Expense, categories []model.Category) []EnrichedExpense {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	enriched := make([]EnrichedExpense, len(expenses))
	for i, e := range expenses {
		name := Uncategorized
		if e.CategoryID != nil {
			if n, ok := names[*e.CategoryID]; ok {
				name = n
			}
		}
		enriched[i] = EnrichedExpense{Expense: e, Category: name}
	}
	return enriched
}

// PeriodTotal sums the amounts of a sequence. An empty sequence totals
// zero.
func PeriodTotal(expenses []model.Expense) float64 {
	total := 0.0
	for _, e := range expenses {
		total += e.Amount
	}
	return total
}

// Breakdown groups enriched expenses by display name and sums each group,
// sorted descending by total. The sort is stable: ties keep the order in
// which the groups first appeared.
func Breakdown(expenses []EnrichedExpense) []CategoryTotal {
	totals := make(map[string]float64)
	var order []string
	for _, e := range expenses {
		if _, seen := totals[e.Category]; !seen {
			order = append(order, e.Category)
		}
		totals[e.Category] += e.Amount
	}

	breakdown := make([]CategoryTotal, len(order))
	for i, name := range order {
		breakdown[i] = CategoryTotal{Category: name, Amount: totals[name]}
	}
	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Amount > breakdown[j].Amount
	})
	return breakdown
}

// DailySeries groups expenses by calendar date and sums each day,
// ascending by date so the result charts as a time series whatever order
// the expenses arrived in.
func DailySeries(expenses []model.Expense) []DailyTotal {
	totals := make(map[model.Date]float64)
	for _, e := range expenses {
		totals[e.ExpenseDate] += e.Amount
	}

	series := make([]DailyTotal, 0, len(totals))
	for day, amount := range totals {
		series = append(series, DailyTotal{Date: day, Amount: amount})
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})
	return series
}
