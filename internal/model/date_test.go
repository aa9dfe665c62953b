package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-15")
	if err != nil {
		t.Fatalf("ParseDate returned error: %v", err)
	}
	if d.String() != "2024-03-15" {
		t.Errorf("round trip mismatch: got %s", d.String())
	}

	if _, err := ParseDate("15.03.2024"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestMonthBounds(t *testing.T) {
	tests := []struct {
		in    string
		start string
		end   string
	}{
		{"2024-03-15", "2024-03-01", "2024-03-31"},
		{"2024-02-10", "2024-02-01", "2024-02-29"}, // leap year
		{"2023-02-10", "2023-02-01", "2023-02-28"},
		{"2024-12-31", "2024-12-01", "2024-12-31"},
		{"2024-01-01", "2024-01-01", "2024-01-31"},
	}
	for _, tt := range tests {
		d, err := ParseDate(tt.in)
		if err != nil {
			t.Fatalf("ParseDate(%s): %v", tt.in, err)
		}
		if got := d.MonthStart().String(); got != tt.start {
			t.Errorf("MonthStart(%s) = %s, want %s", tt.in, got, tt.start)
		}
		if got := d.MonthEnd().String(); got != tt.end {
			t.Errorf("MonthEnd(%s) = %s, want %s", tt.in, got, tt.end)
		}
	}
}

func TestPreviousMonthWindow(t *testing.T) {
	// The previous month window is [month start - 1 month, month start - 1 day].
	d := NewDate(2024, time.March, 15).MonthStart()
	if got := d.AddMonths(-1).String(); got != "2024-02-01" {
		t.Errorf("previous month start = %s, want 2024-02-01", got)
	}
	if got := d.AddDays(-1).String(); got != "2024-02-29" {
		t.Errorf("previous month end = %s, want 2024-02-29", got)
	}
}

func TestDateOrdering(t *testing.T) {
	a := NewDate(2024, time.March, 1)
	b := NewDate(2024, time.March, 2)
	if !a.Before(b) || b.Before(a) {
		t.Error("Before ordering broken")
	}
	if !b.After(a) || a.After(b) {
		t.Error("After ordering broken")
	}
	if a.Before(a) || a.After(a) {
		t.Error("a date compares against itself")
	}
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2024, time.March, 1)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2024-03-01"` {
		t.Errorf("marshal = %s", b)
	}

	var parsed Date
	if err := json.Unmarshal([]byte(`"2024-03-01"`), &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if parsed != d {
		t.Errorf("unmarshal = %v, want %v", parsed, d)
	}

	var zero Date
	if err := json.Unmarshal([]byte(`null`), &zero); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !zero.IsZero() {
		t.Error("null should decode to the zero date")
	}
}
