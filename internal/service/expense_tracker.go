package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ivanoskov/gasto_efectivo/internal/model"
)

// Repository defines the store operations the tracker needs.
type Repository interface {
	Categories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, category *model.Category) error
	DeleteCategory(ctx context.Context, id string) error

	UpsertBudget(ctx context.Context, budget *model.Budget) error
	BudgetFor(ctx context.Context, month model.Date) (*model.Budget, error)
	DeleteBudget(ctx context.Context, id string) error

	CreateExpense(ctx context.Context, expense *model.Expense) error
	ExpensesBetween(ctx context.Context, from, to model.Date) ([]model.Expense, error)
	DeleteExpense(ctx context.Context, id string) error
}

// ValidationError reports caller input that fails a precondition. Nothing
// is written when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ExpenseTracker provides the application's operations over one user's
// data: category and budget management, expense capture, and the
// aggregated views.
type ExpenseTracker struct {
	repo Repository
}

func NewExpenseTracker(repo Repository) *ExpenseTracker {
	return &ExpenseTracker{repo: repo}
}

func (s *ExpenseTracker) Categories(ctx context.Context) ([]model.Category, error) {
	return s.repo.Categories(ctx)
}

// AddCategory trims the name and inserts it. An empty name after trimming
// is rejected rather than silently dropped, so the caller gets feedback.
func (s *ExpenseTracker) AddCategory(ctx context.Context, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	category := &model.Category{
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *ExpenseTracker) DeleteCategory(ctx context.Context, id string) error {
	return s.repo.DeleteCategory(ctx, id)
}

// SetBudget stores the budget for the month containing day. Any day of
// the month may be passed; it is normalized to the month key. A negative
// amount is clamped to zero.
func (s *ExpenseTracker) SetBudget(ctx context.Context, day model.Date, amount float64) (*model.Budget, error) {
	budget := &model.Budget{
		BudgetMonth: day.MonthStart(),
		Amount:      math.Max(amount, 0),
	}
	if err := s.repo.UpsertBudget(ctx, budget); err != nil {
		return nil, err
	}
	return budget, nil
}

// BudgetFor returns the budget of the month containing day, or nil if
// none is set.
func (s *ExpenseTracker) BudgetFor(ctx context.Context, day model.Date) (*model.Budget, error) {
	return s.repo.BudgetFor(ctx, day.MonthStart())
}

func (s *ExpenseTracker) DeleteBudget(ctx context.Context, id string) error {
	return s.repo.DeleteBudget(ctx, id)
}

// AddExpense records an expense. The description is trimmed and stored as
// null when empty; a negative amount is clamped to zero.
func (s *ExpenseTracker) AddExpense(ctx context.Context, day model.Date, amount float64, categoryID *string, description string) (*model.Expense, error) {
	expense := &model.Expense{
		ExpenseDate: day,
		Amount:      math.Max(amount, 0),
		CategoryID:  categoryID,
		CreatedAt:   time.Now(),
	}
	if trimmed := strings.TrimSpace(description); trimmed != "" {
		expense.Description = &trimmed
	}
	if err := s.repo.CreateExpense(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// Expenses returns the raw expenses in the inclusive range, newest first.
func (s *ExpenseTracker) Expenses(ctx context.Context, from, to model.Date) ([]model.Expense, error) {
	return s.repo.ExpensesBetween(ctx, from, to)
}

func (s *ExpenseTracker) DeleteExpense(ctx context.Context, id string) error {
	return s.repo.DeleteExpense(ctx, id)
}
