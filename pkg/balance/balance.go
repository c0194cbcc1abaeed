package balance

import (
	"sort"

	"github.com/ledgercal/ledgercal/pkg/money"
)

// Adjustment is a balance pin: a user-asserted "the account balance is
// exactly Amount as of start-of-day on Date" fact. At most one adjustment
// is authoritative per date; a newer write for the same date replaces the
// old one.
type Adjustment struct {
	ID int
	// Date in YYYY-MM-DD form. Lexicographic order on this format is
	// chronological order, which is what the index below relies on.
	Date   string
	Amount money.Money
}

// AdjustmentSet is a date-sorted index over a snapshot of pins. It is
// rebuilt wholesale on every refresh and queried by binary search, so a
// render pass never re-sorts.
type AdjustmentSet struct {
	// ascending by date, one entry per date
	sorted []Adjustment
}

// NewAdjustmentSet builds the index. If the input carries duplicate dates
// (the store contract says it should not), the entry with the highest ID
// wins, mirroring the store's last-write-wins rule.
func NewAdjustmentSet(adjustments []Adjustment) AdjustmentSet {
	sorted := make([]Adjustment, len(adjustments))
	copy(sorted, adjustments)
	sort.SliceStable(sorted, func(a, b int) bool {
		if sorted[a].Date != sorted[b].Date {
			return sorted[a].Date < sorted[b].Date
		}
		return sorted[a].ID < sorted[b].ID
	})

	deduped := sorted[:0]
	for _, adj := range sorted {
		if len(deduped) > 0 && deduped[len(deduped)-1].Date == adj.Date {
			deduped[len(deduped)-1] = adj
			continue
		}
		deduped = append(deduped, adj)
	}
	return AdjustmentSet{sorted: deduped}
}

// Len reports the number of distinct pin dates.
func (s AdjustmentSet) Len() int {
	return len(s.sorted)
}

// All returns the pins in ascending date order.
func (s AdjustmentSet) All() []Adjustment {
	out := make([]Adjustment, len(s.sorted))
	copy(out, s.sorted)
	return out
}

// LatestAtOrBefore returns the pin with the maximum date <= ref.
func (s AdjustmentSet) LatestAtOrBefore(ref string) (Adjustment, bool) {
	// first index with date > ref
	idx := sort.Search(len(s.sorted), func(i int) bool {
		return s.sorted[i].Date > ref
	})
	if idx == 0 {
		return Adjustment{}, false
	}
	return s.sorted[idx-1], true
}

// Latest returns the chronologically last pin across the whole set. Only
// this pin ever carries the calendar's pin annotation.
func (s AdjustmentSet) Latest() (Adjustment, bool) {
	if len(s.sorted) == 0 {
		return Adjustment{}, false
	}
	return s.sorted[len(s.sorted)-1], true
}

// EffectiveStartingBalance resolves the balance in force at start-of-day
// on ref: the most recent pin at or before ref, or base when no pin
// applies yet.
func (s AdjustmentSet) EffectiveStartingBalance(ref string, base money.Money) money.Money {
	if pin, ok := s.LatestAtOrBefore(ref); ok {
		return pin.Amount
	}
	return base
}
