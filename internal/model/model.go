package model

import "time"

// Category is a user-defined expense label. Names are unique per user.
type Category struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Budget is the spending limit for one calendar month. BudgetMonth is
// always the first day of the month; the store enforces at most one row
// per (user, month).
type Budget struct {
	ID          string  `json:"id,omitempty"`
	BudgetMonth Date    `json:"budget_month"`
	Amount      float64 `json:"amount"`
}

// Expense is a single cash expense. CategoryID is a weak reference: the
// category may have been deleted since, and a nil value means the expense
// was never categorized. Expenses are never edited, only added and deleted.
type Expense struct {
	ID          string    `json:"id,omitempty"`
	ExpenseDate Date      `json:"expense_date"`
	Amount      float64   `json:"amount"`
	CategoryID  *string   `json:"category_id"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}
