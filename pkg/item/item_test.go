package item

import (
	"testing"
)

func TestBudgetItem_Validate(t *testing.T) {
	tests := []struct {
		name    string
		item    BudgetItem
		wantErr error
	}{
		{"valid expense", BudgetItem{Name: "Rent", Amount: 120000, Type: TypeExpense}, nil},
		{"valid income", BudgetItem{Name: "Salary", Amount: 300000, Type: TypeIncome}, nil},
		{"blank name", BudgetItem{Name: "   ", Amount: 100, Type: TypeExpense}, ErrEmptyName},
		{"zero amount", BudgetItem{Name: "Rent", Amount: 0, Type: TypeExpense}, ErrInvalidAmount},
		{"negative amount", BudgetItem{Name: "Rent", Amount: -100, Type: TypeExpense}, ErrInvalidAmount},
		{"unknown type", BudgetItem{Name: "Rent", Amount: 100, Type: "transfer"}, ErrInvalidType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.item.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSorted(t *testing.T) {
	items := []BudgetItem{
		{ID: 3, DisplayOrder: 2},
		{ID: 1, DisplayOrder: 3},
		{ID: 5, DisplayOrder: 1},
		{ID: 2, DisplayOrder: 2},
	}
	sorted := Sorted(items)

	wantIDs := []int{5, 2, 3, 1}
	for idx, want := range wantIDs {
		if sorted[idx].ID != want {
			t.Fatalf("Sorted()[%d].ID = %d, want %d", idx, sorted[idx].ID, want)
		}
	}
	// input untouched
	if items[0].ID != 3 {
		t.Error("Sorted() mutated its input")
	}
}

func TestMoveTo(t *testing.T) {
	items := []BudgetItem{
		{ID: 10, DisplayOrder: 1},
		{ID: 20, DisplayOrder: 2},
		{ID: 30, DisplayOrder: 3},
	}

	t.Run("move first to last", func(t *testing.T) {
		batch, err := MoveTo(items, 10, 2)
		if err != nil {
			t.Fatal(err)
		}
		want := []ReorderEntry{{20, 1}, {30, 2}, {10, 3}}
		assertBatch(t, batch, want)
	})

	t.Run("move last to first", func(t *testing.T) {
		batch, err := MoveTo(items, 30, 0)
		if err != nil {
			t.Fatal(err)
		}
		want := []ReorderEntry{{30, 1}, {10, 2}, {20, 3}}
		assertBatch(t, batch, want)
	})

	t.Run("target beyond end is clamped", func(t *testing.T) {
		batch, err := MoveTo(items, 10, 99)
		if err != nil {
			t.Fatal(err)
		}
		want := []ReorderEntry{{20, 1}, {30, 2}, {10, 3}}
		assertBatch(t, batch, want)
	})

	t.Run("unknown id", func(t *testing.T) {
		if _, err := MoveTo(items, 99, 0); err == nil {
			t.Fatal("expected error for unknown id")
		}
	})

	t.Run("batch is total and contiguous", func(t *testing.T) {
		batch, err := MoveTo(items, 20, 0)
		if err != nil {
			t.Fatal(err)
		}
		if len(batch) != len(items) {
			t.Fatalf("batch covers %d items, want %d", len(batch), len(items))
		}
		seen := map[int]bool{}
		for _, entry := range batch {
			if entry.DisplayOrder < 1 || entry.DisplayOrder > len(items) {
				t.Errorf("displayOrder %d out of 1..%d", entry.DisplayOrder, len(items))
			}
			if seen[entry.DisplayOrder] {
				t.Errorf("duplicate displayOrder %d", entry.DisplayOrder)
			}
			seen[entry.DisplayOrder] = true
		}
	})
}

func assertBatch(t *testing.T, got, want []ReorderEntry) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("batch length = %d, want %d", len(got), len(want))
	}
	for idx := range want {
		if got[idx] != want[idx] {
			t.Errorf("batch[%d] = %+v, want %+v", idx, got[idx], want[idx])
		}
	}
}
