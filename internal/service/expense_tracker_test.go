package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ivanoskov/gasto_efectivo/internal/model"
)

func TestAddCategoryTrims(t *testing.T) {
	repo := &fakeRepo{}
	tracker := NewExpenseTracker(repo)

	category, err := tracker.AddCategory(context.Background(), "  Comida  ")
	if err != nil {
		t.Fatalf("AddCategory: %v", err)
	}
	if category.Name != "Comida" {
		t.Errorf("Name = %q, want trimmed %q", category.Name, "Comida")
	}
	if category.ID == "" {
		t.Error("ID should be filled from the store")
	}
}

func TestAddCategoryEmptyName(t *testing.T) {
	repo := &fakeRepo{}
	tracker := NewExpenseTracker(repo)

	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := tracker.AddCategory(context.Background(), name)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("AddCategory(%q) error = %v, want ValidationError", name, err)
		}
	}
	if len(repo.createdCats) != 0 {
		t.Error("no write should happen for an invalid name")
	}
}

func TestSetBudgetNormalizesMonth(t *testing.T) {
	repo := &fakeRepo{}
	tracker := NewExpenseTracker(repo)

	budget, err := tracker.SetBudget(context.Background(), model.NewDate(2024, time.March, 17), 500)
	if err != nil {
		t.Fatalf("SetBudget: %v", err)
	}
	if budget.BudgetMonth.String() != "2024-03-01" {
		t.Errorf("BudgetMonth = %s, want 2024-03-01", budget.BudgetMonth)
	}
	if len(repo.upserted) != 1 {
		t.Fatalf("upserts = %d, want 1", len(repo.upserted))
	}
}

func TestSetBudgetClampsNegative(t *testing.T) {
	tracker := NewExpenseTracker(&fakeRepo{})
	budget, err := tracker.SetBudget(context.Background(), model.NewDate(2024, time.March, 1), -50)
	if err != nil {
		t.Fatalf("SetBudget: %v", err)
	}
	if budget.Amount != 0 {
		t.Errorf("Amount = %v, want 0", budget.Amount)
	}
}

func TestBudgetForUsesMonthKey(t *testing.T) {
	month := model.NewDate(2024, time.March, 1)
	repo := &fakeRepo{budget: &model.Budget{ID: "b1", BudgetMonth: month, Amount: 300}}
	tracker := NewExpenseTracker(repo)

	budget, err := tracker.BudgetFor(context.Background(), model.NewDate(2024, time.March, 28))
	if err != nil {
		t.Fatalf("BudgetFor: %v", err)
	}
	if budget == nil || budget.ID != "b1" {
		t.Errorf("budget = %+v, want b1", budget)
	}

	missing, err := tracker.BudgetFor(context.Background(), model.NewDate(2024, time.April, 1))
	if err != nil {
		t.Fatalf("BudgetFor: %v", err)
	}
	if missing != nil {
		t.Errorf("budget for unset month = %+v, want nil", missing)
	}
}

func TestAddExpense(t *testing.T) {
	repo := &fakeRepo{}
	tracker := NewExpenseTracker(repo)
	categoryID := "c1"

	e, err := tracker.AddExpense(context.Background(), model.NewDate(2024, time.March, 2), 12.5, &categoryID, "  taxi  ")
	if err != nil {
		t.Fatalf("AddExpense: %v", err)
	}
	if e.Description == nil || *e.Description != "taxi" {
		t.Errorf("Description = %v, want trimmed taxi", e.Description)
	}
	if e.CategoryID == nil || *e.CategoryID != "c1" {
		t.Errorf("CategoryID = %v, want c1", e.CategoryID)
	}
}

func TestAddExpenseEmptyDescriptionStoredAsNull(t *testing.T) {
	repo := &fakeRepo{}
	tracker := NewExpenseTracker(repo)

	e, err := tracker.AddExpense(context.Background(), model.NewDate(2024, time.March, 2), 10, nil, "   ")
	if err != nil {
		t.Fatalf("AddExpense: %v", err)
	}
	if e.Description != nil {
		t.Errorf("Description = %q, want nil", *e.Description)
	}
}

func TestAddExpenseClampsNegativeAmount(t *testing.T) {
	repo := &fakeRepo{}
	tracker := NewExpenseTracker(repo)

	e, err := tracker.AddExpense(context.Background(), model.NewDate(2024, time.March, 2), -7, nil, "")
	if err != nil {
		t.Fatalf("AddExpense: %v", err)
	}
	if e.Amount != 0 {
		t.Errorf("Amount = %v, want 0", e.Amount)
	}
}

func TestDeletePassthrough(t *testing.T) {
	repo := &fakeRepo{}
	tracker := NewExpenseTracker(repo)
	ctx := context.Background()

	if err := tracker.DeleteCategory(ctx, "c1"); err != nil {
		t.Errorf("DeleteCategory: %v", err)
	}
	if err := tracker.DeleteBudget(ctx, "b1"); err != nil {
		t.Errorf("DeleteBudget: %v", err)
	}
	if err := tracker.DeleteExpense(ctx, "e1"); err != nil {
		t.Errorf("DeleteExpense: %v", err)
	}
	if len(repo.deleted) != 3 {
		t.Errorf("deletes = %v, want 3 ids", repo.deleted)
	}
}
