package projection

import (
	"testing"
	"time"

	"github.com/ledgercal/ledgercal/pkg/item"
	"github.com/ledgercal/ledgercal/pkg/money"
	"github.com/ledgercal/ledgercal/pkg/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testItems = []item.BudgetItem{
	{ID: 1, Name: "Rent", Amount: 15000, Type: item.TypeExpense},
	{ID: 2, Name: "Groceries", Amount: 20000, Type: item.TypeExpense},
	{ID: 3, Name: "Paycheck", Amount: 30000, Type: item.TypeIncome},
}

func march(in Input) Input {
	in.Year = 2024
	in.Month = time.March
	if in.Items == nil {
		in.Items = testItems
	}
	return in
}

func TestProject_EmptyMonthKeepsStartingBalance(t *testing.T) {
	got := Project(march(Input{StartingBalance: 250000}))

	require.Len(t, got.Days, 31)
	for _, day := range got.Days {
		assert.EqualValues(t, 250000, day.RunningBalance, "day %d", day.Day)
		assert.Equal(t, IndicatorNone, day.Indicator, "day %d", day.Day)
		assert.False(t, day.HasPin, "day %d", day.Day)
	}
	assert.Empty(t, got.Unresolved)
}

func TestProject_SingleExpenseFoldsForward(t *testing.T) {
	got := Project(march(Input{
		StartingBalance: 250000,
		Occurrences: []schedule.Occurrence{
			{ID: 11, BudgetItemID: 1, Date: "2024-03-03"},
		},
	}))

	assert.EqualValues(t, 250000, got.Days[0].RunningBalance)
	assert.EqualValues(t, 250000, got.Days[1].RunningBalance)
	assert.EqualValues(t, 235000, got.Days[2].RunningBalance)
	for day := 4; day <= 31; day++ {
		assert.EqualValues(t, 235000, got.Days[day-1].RunningBalance, "day %d", day)
	}
	assert.Equal(t, IndicatorExpense, got.Days[2].Indicator)
}

func TestProject_MixedDayNetsContributions(t *testing.T) {
	got := Project(march(Input{
		StartingBalance: 250000,
		Occurrences: []schedule.Occurrence{
			{ID: 11, BudgetItemID: 2, Date: "2024-03-05"}, // -200
			{ID: 12, BudgetItemID: 3, Date: "2024-03-05"}, // +300
		},
	}))

	assert.Equal(t, IndicatorMixed, got.Days[4].Indicator)
	assert.Equal(t, got.Days[3].RunningBalance+10000, got.Days[4].RunningBalance)
}

func TestProject_OverridesSupersedeTemplate(t *testing.T) {
	override := money.Money(5000)
	got := Project(march(Input{
		StartingBalance: 100000,
		Occurrences: []schedule.Occurrence{
			{ID: 11, BudgetItemID: 1, Date: "2024-03-02", Amount: &override},
		},
	}))

	// $50 override instead of the $150 template amount.
	assert.EqualValues(t, 95000, got.Days[1].RunningBalance)
	// Type is always inherited: still an expense.
	assert.Equal(t, IndicatorExpense, got.Days[1].Indicator)
}

func TestProject_DanglingReferenceContributesNothing(t *testing.T) {
	got := Project(march(Input{
		StartingBalance: 250000,
		Occurrences: []schedule.Occurrence{
			{ID: 42, BudgetItemID: 999, Date: "2024-03-08"},
		},
	}))

	for _, day := range got.Days {
		assert.EqualValues(t, 250000, day.RunningBalance, "day %d", day.Day)
	}
	// A zero-amount defaulted expense must not register visually.
	assert.Equal(t, IndicatorNone, got.Days[7].Indicator)
	assert.Equal(t, []int{42}, got.Unresolved)
}

func TestProject_BackendResolvedSnapshotFillsGaps(t *testing.T) {
	// The item was deleted from the list, but the backend still embedded
	// its snapshot in the occurrence.
	snapshot := item.BudgetItem{ID: 999, Name: "Old gym", Amount: 4000, Type: item.TypeExpense}
	got := Project(march(Input{
		StartingBalance: 100000,
		Occurrences: []schedule.Occurrence{
			{ID: 42, BudgetItemID: 999, Date: "2024-03-08", Item: &snapshot},
		},
	}))

	assert.EqualValues(t, 96000, got.Days[7].RunningBalance)
	assert.Equal(t, IndicatorExpense, got.Days[7].Indicator)
	assert.Empty(t, got.Unresolved)
}

func TestProject_SameDayOrderIndependent(t *testing.T) {
	occurrences := []schedule.Occurrence{
		{ID: 1, BudgetItemID: 1, Date: "2024-03-05"},
		{ID: 2, BudgetItemID: 3, Date: "2024-03-05"},
		{ID: 3, BudgetItemID: 2, Date: "2024-03-05"},
	}
	forward := Project(march(Input{StartingBalance: 250000, Occurrences: occurrences}))

	reversed := []schedule.Occurrence{occurrences[2], occurrences[1], occurrences[0]}
	backward := Project(march(Input{StartingBalance: 250000, Occurrences: reversed}))

	assert.Equal(t, forward.Days, backward.Days)
}

func TestProject_Idempotent(t *testing.T) {
	in := march(Input{
		StartingBalance: 250000,
		LatestPinDate:   "2024-03-10",
		Occurrences: []schedule.Occurrence{
			{ID: 1, BudgetItemID: 1, Date: "2024-03-03"},
			{ID: 2, BudgetItemID: 3, Date: "2024-03-20"},
		},
	})
	first := Project(in)
	second := Project(in)
	assert.Equal(t, first, second)
}

func TestProject_PinAnnotation(t *testing.T) {
	t.Run("latest pin inside the month marks exactly one day", func(t *testing.T) {
		got := Project(march(Input{StartingBalance: 100000, LatestPinDate: "2024-03-10"}))

		pinned := 0
		for _, day := range got.Days {
			if day.HasPin {
				pinned++
				assert.Equal(t, 10, day.Day)
			}
		}
		assert.Equal(t, 1, pinned)
	})

	t.Run("latest pin outside the month marks nothing", func(t *testing.T) {
		got := Project(march(Input{StartingBalance: 100000, LatestPinDate: "2024-04-02"}))
		for _, day := range got.Days {
			assert.False(t, day.HasPin, "day %d", day.Day)
		}
	})

	t.Run("no pins", func(t *testing.T) {
		got := Project(march(Input{StartingBalance: 100000}))
		for _, day := range got.Days {
			assert.False(t, day.HasPin, "day %d", day.Day)
		}
	})
}

func TestProject_IgnoresOccurrencesOutsideMonth(t *testing.T) {
	got := Project(march(Input{
		StartingBalance: 100000,
		Occurrences: []schedule.Occurrence{
			{ID: 1, BudgetItemID: 1, Date: "2024-02-28"},
			{ID: 2, BudgetItemID: 1, Date: "not-a-date"},
		},
	}))
	for _, day := range got.Days {
		assert.EqualValues(t, 100000, day.RunningBalance, "day %d", day.Day)
	}
}

func TestProject_FebruaryLeapYearLength(t *testing.T) {
	got := Project(Input{Year: 2024, Month: time.February, Items: testItems, StartingBalance: 1})
	assert.Len(t, got.Days, 29)

	got = Project(Input{Year: 2023, Month: time.February, Items: testItems, StartingBalance: 1})
	assert.Len(t, got.Days, 28)
}
