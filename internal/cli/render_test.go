package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/ledgercal/ledgercal/pkg/calendar"
	"github.com/ledgercal/ledgercal/pkg/item"
	"github.com/ledgercal/ledgercal/pkg/money"
	"github.com/ledgercal/ledgercal/pkg/projection"
	"github.com/ledgercal/ledgercal/pkg/schedule"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		cents money.Money
		want  string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{235000, "$2,350.00"},
		{123456789, "$1,234,567.89"},
		{-4999, "-$49.99"},
		{-123456789, "-$1,234,567.89"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.cents); got != tt.want {
			t.Errorf("FormatMoney(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func marchSnapshot() calendar.Snapshot {
	state := calendar.MonthState{Year: 2024, Month: time.March}
	return calendar.Snapshot{
		State: state,
		Items: []item.BudgetItem{
			{ID: 1, Name: "Rent", Amount: 150000, Type: item.TypeExpense, DisplayOrder: 1},
		},
		Occurrences: []schedule.Occurrence{
			{ID: 11, BudgetItemID: 1, Date: "2024-03-03"},
		},
		Projection: projection.Project(projection.Input{
			Year:            2024,
			Month:           time.March,
			Items:           []item.BudgetItem{{ID: 1, Name: "Rent", Amount: 150000, Type: item.TypeExpense}},
			Occurrences:     []schedule.Occurrence{{ID: 11, BudgetItemID: 1, Date: "2024-03-03"}},
			StartingBalance: 250000,
		}),
	}
}

func TestRenderMonth(t *testing.T) {
	out := RenderMonth(marchSnapshot(), "2024-03-15")

	if !strings.Contains(out, "March 2024") {
		t.Errorf("missing month title in output:\n%s", out)
	}
	if !strings.Contains(out, "$2,500.00") {
		t.Errorf("missing starting balance in output:\n%s", out)
	}
	if !strings.Contains(out, "$1,000.00") {
		t.Errorf("missing post-expense balance in output:\n%s", out)
	}
	// 31 day cells plus the weekday header row.
	if got := strings.Count(out, "\n"); got < 12 {
		t.Errorf("grid looks too short, %d lines:\n%s", got, out)
	}
}

func TestRenderMonth_UnresolvedFootnote(t *testing.T) {
	snap := marchSnapshot()
	snap.Projection = projection.Project(projection.Input{
		Year:            2024,
		Month:           time.March,
		Occurrences:     []schedule.Occurrence{{ID: 42, BudgetItemID: 999, Date: "2024-03-08"}},
		StartingBalance: 250000,
	})

	out := RenderMonth(snap, "")
	if !strings.Contains(out, "deleted budget item") {
		t.Errorf("missing unresolved footnote in output:\n%s", out)
	}
}

func TestRenderDayDetail(t *testing.T) {
	snap := marchSnapshot()

	out := renderDayDetail(snap, 3)
	if !strings.Contains(out, "2024-03-03") || !strings.Contains(out, "Rent") {
		t.Errorf("day detail missing entry:\n%s", out)
	}

	out = renderDayDetail(snap, 4)
	if !strings.Contains(out, "Nothing scheduled") {
		t.Errorf("empty day should say so:\n%s", out)
	}
}
