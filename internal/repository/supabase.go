// Package repository is the data access layer: typed operations over the
// three Supabase tables. Row ownership is enforced by the store's
// row-level security, never by client-side filters, so a client holding
// one user's token can only ever see that user's rows.
package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"

	"github.com/ivanoskov/gasto_efectivo/internal/model"
)

// budgetConflictKey matches the unique(user_id, budget_month) constraint
// on the budgets table.
const budgetConflictKey = "user_id,budget_month"

// StoreError wraps any failure returned by the record store. Callers can
// pick it out with errors.As to distinguish store failures from
// validation or auth failures.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Supabase talks to the tables through a session-scoped client. Construct
// one per authenticated session.
type Supabase struct {
	client *supabase.Client
}

func NewSupabase(client *supabase.Client) *Supabase {
	return &Supabase{client: client}
}

// Categories returns all of the user's categories ordered by name. An
// empty table yields an empty slice.
func (r *Supabase) Categories(ctx context.Context) ([]model.Category, error) {
	data, _, err := r.client.From("categories").
		Select("id,name,created_at", "", false).
		Order("name", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, &StoreError{Op: "list categories", Err: err}
	}

	var categories []model.Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, &StoreError{Op: "list categories", Err: err}
	}
	return categories, nil
}

// CreateCategory inserts the category and fills in the server-generated
// id and timestamp from the insert representation.
func (r *Supabase) CreateCategory(ctx context.Context, category *model.Category) error {
	data, _, err := r.client.From("categories").
		Insert(category, false, "", "", "").
		Execute()
	if err != nil {
		return &StoreError{Op: "create category", Err: err}
	}

	var created []model.Category
	if err := json.Unmarshal(data, &created); err != nil {
		return &StoreError{Op: "create category", Err: err}
	}
	if len(created) > 0 {
		category.ID = created[0].ID
		category.CreatedAt = created[0].CreatedAt
	}
	return nil
}

// DeleteCategory deletes by id. Deleting an id that no longer exists is
// not an error. Dependent expenses keep their (now dangling) reference;
// the store clears it to null.
func (r *Supabase) DeleteCategory(ctx context.Context, id string) error {
	_, _, err := r.client.From("categories").
		Delete("", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return &StoreError{Op: "delete category", Err: err}
	}
	return nil
}

// UpsertBudget writes the month's budget, replacing any existing row for
// the same (user, month) key.
func (r *Supabase) UpsertBudget(ctx context.Context, budget *model.Budget) error {
	data, _, err := r.client.From("budgets").
		Insert(budget, true, budgetConflictKey, "", "").
		Execute()
	if err != nil {
		return &StoreError{Op: "upsert budget", Err: err}
	}

	var upserted []model.Budget
	if err := json.Unmarshal(data, &upserted); err != nil {
		return &StoreError{Op: "upsert budget", Err: err}
	}
	if len(upserted) > 0 {
		budget.ID = upserted[0].ID
	}
	return nil
}

// BudgetFor returns the budget stored for the given month key, or nil if
// none is set. Absence is not an error.
func (r *Supabase) BudgetFor(ctx context.Context, month model.Date) (*model.Budget, error) {
	data, _, err := r.client.From("budgets").
		Select("id,budget_month,amount", "", false).
		Eq("budget_month", month.String()).
		Execute()
	if err != nil {
		return nil, &StoreError{Op: "fetch budget", Err: err}
	}

	var budgets []model.Budget
	if err := json.Unmarshal(data, &budgets); err != nil {
		return nil, &StoreError{Op: "fetch budget", Err: err}
	}
	if len(budgets) == 0 {
		return nil, nil
	}
	return &budgets[0], nil
}

func (r *Supabase) DeleteBudget(ctx context.Context, id string) error {
	_, _, err := r.client.From("budgets").
		Delete("", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return &StoreError{Op: "delete budget", Err: err}
	}
	return nil
}

// CreateExpense inserts the expense and fills in the server-generated id
// and timestamp.
func (r *Supabase) CreateExpense(ctx context.Context, expense *model.Expense) error {
	data, _, err := r.client.From("expenses").
		Insert(expense, false, "", "", "").
		Execute()
	if err != nil {
		return &StoreError{Op: "create expense", Err: err}
	}

	var created []model.Expense
	if err := json.Unmarshal(data, &created); err != nil {
		return &StoreError{Op: "create expense", Err: err}
	}
	if len(created) > 0 {
		expense.ID = created[0].ID
		expense.CreatedAt = created[0].CreatedAt
	}
	return nil
}

// ExpensesBetween returns every expense with from <= expense_date <= to,
// newest first. Both bounds are inclusive. The full range is returned in
// one shot; per-user volumes are small enough that pagination would be
// noise.
func (r *Supabase) ExpensesBetween(ctx context.Context, from, to model.Date) ([]model.Expense, error) {
	data, _, err := r.client.From("expenses").
		Select("id,expense_date,amount,description,category_id,created_at", "", false).
		Gte("expense_date", from.String()).
		Lte("expense_date", to.String()).
		Order("expense_date", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, &StoreError{Op: "list expenses", Err: err}
	}

	var expenses []model.Expense
	if err := json.Unmarshal(data, &expenses); err != nil {
		return nil, &StoreError{Op: "list expenses", Err: err}
	}
	return expenses, nil
}

func (r *Supabase) DeleteExpense(ctx context.Context, id string) error {
	_, _, err := r.client.From("expenses").
		Delete("", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return &StoreError{Op: "delete expense", Err: err}
	}
	return nil
}
