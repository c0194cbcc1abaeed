package item

import (
	"errors"
	"sort"
	"strings"

	"github.com/ledgercal/ledgercal/pkg/money"
)

type ItemType string

const (
	TypeExpense ItemType = "expense"
	TypeIncome  ItemType = "income"
)

var (
	ErrEmptyName     = errors.New("item name must not be blank")
	ErrInvalidAmount = errors.New("item amount must be positive")
	ErrInvalidType   = errors.New("item type must be expense or income")
)

// BudgetItem is a recurring expense or income template. Occurrences placed
// on the calendar reference it and inherit its amount, name, and type
// unless they carry overrides.
type BudgetItem struct {
	ID     int
	Name   string
	Amount money.Money
	Type   ItemType
	// DisplayOrder is the user-controlled position in the item list.
	// The full list always carries contiguous 1-based values.
	DisplayOrder int
}

func (i BudgetItem) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrEmptyName
	}
	if i.Amount <= 0 {
		return ErrInvalidAmount
	}
	if i.Type != TypeExpense && i.Type != TypeIncome {
		return ErrInvalidType
	}
	return nil
}

// Sorted returns a copy of items in display order, ties broken by ID.
func Sorted(items []BudgetItem) []BudgetItem {
	sorted := make([]BudgetItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(a, b int) bool {
		if sorted[a].DisplayOrder != sorted[b].DisplayOrder {
			return sorted[a].DisplayOrder < sorted[b].DisplayOrder
		}
		return sorted[a].ID < sorted[b].ID
	})
	return sorted
}

// ReorderEntry is one element of a reorder batch. A batch always covers
// every item in the list; partial reorders are not a supported shape.
type ReorderEntry struct {
	ID           int
	DisplayOrder int
}

// MoveTo computes the total reorder batch that results from moving the
// item with the given id to targetIndex (0-based position in the visually
// sorted list). Every item receives a new contiguous 1..N DisplayOrder.
func MoveTo(items []BudgetItem, id int, targetIndex int) ([]ReorderEntry, error) {
	sorted := Sorted(items)

	sourceIndex := -1
	for idx, it := range sorted {
		if it.ID == id {
			sourceIndex = idx
			break
		}
	}
	if sourceIndex == -1 {
		return nil, errors.New("item not found in list")
	}

	if targetIndex < 0 {
		targetIndex = 0
	}
	if targetIndex > len(sorted)-1 {
		targetIndex = len(sorted) - 1
	}

	moved := sorted[sourceIndex]
	sorted = append(sorted[:sourceIndex], sorted[sourceIndex+1:]...)
	sorted = append(sorted[:targetIndex], append([]BudgetItem{moved}, sorted[targetIndex:]...)...)

	batch := make([]ReorderEntry, 0, len(sorted))
	for idx, it := range sorted {
		batch = append(batch, ReorderEntry{ID: it.ID, DisplayOrder: idx + 1})
	}
	return batch, nil
}
