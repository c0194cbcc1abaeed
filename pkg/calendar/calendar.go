// Package calendar owns the month view: which month is displayed, the
// wholesale-refreshed caches of the three remote stores, and the projected
// balance column derived from them.
package calendar

import (
	"fmt"
	"time"

	"github.com/ledgercal/ledgercal/pkg/balance"
	"github.com/ledgercal/ledgercal/pkg/item"
	"github.com/ledgercal/ledgercal/pkg/projection"
	"github.com/ledgercal/ledgercal/pkg/schedule"
)

// MonthState identifies the displayed month.
type MonthState struct {
	Year  int
	Month time.Month
}

// FirstDay is the month's reference date: the starting balance folded
// into day 1 is the balance in force at start of this day.
func (m MonthState) FirstDay() string {
	return fmt.Sprintf("%04d-%02d-01", m.Year, int(m.Month))
}

// DateString renders a day of this month in wire format.
func (m MonthState) DateString(day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", m.Year, int(m.Month), day)
}

func (m MonthState) String() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}

// Previous and Next navigate across month (and year) boundaries.
func (m MonthState) Previous() MonthState {
	t := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	return MonthState{Year: t.Year(), Month: t.Month()}
}

func (m MonthState) Next() MonthState {
	t := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return MonthState{Year: t.Year(), Month: t.Month()}
}

// Snapshot is one consistent view of the displayed month: the collaborator
// caches plus the projection derived from them. A failed refresh never
// replaces the previous snapshot.
type Snapshot struct {
	State       MonthState
	Items       []item.BudgetItem
	Occurrences []schedule.Occurrence
	Adjustments balance.AdjustmentSet
	Projection  projection.MonthProjection
}

// OccurrencesOn returns the snapshot's occurrences landing on the given
// day, for the date-detail view.
func (s Snapshot) OccurrencesOn(day int) []schedule.Occurrence {
	return schedule.ForDate(s.Occurrences, s.State.DateString(day))
}
