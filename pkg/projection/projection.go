// Package projection folds one month of scheduled occurrences into the
// per-day running balance column shown on the calendar. It is pure: no
// I/O, no state beyond its input, identical output on every recomputation.
package projection

import (
	"sort"
	"time"

	"github.com/ledgercal/ledgercal/pkg/item"
	"github.com/ledgercal/ledgercal/pkg/money"
	"github.com/ledgercal/ledgercal/pkg/schedule"
)

// Indicator categorizes the occurrences landing on a day.
type Indicator string

const (
	IndicatorNone    Indicator = "none"
	IndicatorExpense Indicator = "expense"
	IndicatorIncome  Indicator = "income"
	IndicatorMixed   Indicator = "mixed"
)

type DayProjection struct {
	// Day of the month, 1-based.
	Day int
	// RunningBalance is the projected account balance at end-of-day.
	RunningBalance money.Money
	Indicator      Indicator
	// HasPin marks the day carrying the single chronologically-latest
	// balance adjustment. Annotation only; it plays no part in the fold.
	HasPin bool
}

type MonthProjection struct {
	Year  int
	Month time.Month
	// Days has one entry per calendar day, index 0 = day 1.
	Days []DayProjection
	// Unresolved lists occurrence IDs whose budget item reference could
	// not be resolved. Those occurrences contribute zero to the fold and
	// nothing to the indicators.
	Unresolved []int
}

// Input is everything a render pass feeds the engine. StartingBalance is
// the effective starting balance for the month's reference date; the
// engine itself never looks at adjustment pins except for the annotation
// date.
type Input struct {
	Year        int
	Month       time.Month
	Items       []item.BudgetItem
	Occurrences []schedule.Occurrence
	// StartingBalance is the balance in force entering day 1.
	StartingBalance money.Money
	// LatestPinDate is the date (YYYY-MM-DD) of the globally latest
	// adjustment pin, or "" when no pins exist.
	LatestPinDate string
}

// Project computes the month's day-by-day projection. The fold is strictly
// sequential across days; within a day, occurrence order does not matter
// because contributions are summed.
func Project(in Input) MonthProjection {
	byID := make(map[int]item.BudgetItem, len(in.Items))
	for _, it := range in.Items {
		byID[it.ID] = it
	}

	daysInMonth := time.Date(in.Year, in.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	byDay := make(map[int][]schedule.Occurrence)
	var unresolved []int
	for _, occ := range in.Occurrences {
		date, err := schedule.ParseDate(occ.Date)
		if err != nil || date.Year() != in.Year || date.Month() != in.Month {
			// The Schedule Store contract scopes the set to this month;
			// anything else cannot be placed and is skipped.
			continue
		}
		byDay[date.Day()] = append(byDay[date.Day()], occ)
		if _, ok := resolve(occ, byID); !ok {
			unresolved = append(unresolved, occ.ID)
		}
	}
	sort.Ints(unresolved)

	pinDay := 0
	if in.LatestPinDate != "" {
		if date, err := schedule.ParseDate(in.LatestPinDate); err == nil &&
			date.Year() == in.Year && date.Month() == in.Month {
			pinDay = date.Day()
		}
	}

	projection := MonthProjection{
		Year:       in.Year,
		Month:      in.Month,
		Days:       make([]DayProjection, 0, daysInMonth),
		Unresolved: unresolved,
	}

	balance := in.StartingBalance
	for day := 1; day <= daysInMonth; day++ {
		occurrences := byDay[day]

		hasExpense, hasIncome := false, false
		for _, occ := range occurrences {
			resolved, ok := resolve(occ, byID)

			amount := money.Money(0)
			if occ.Amount != nil {
				amount = *occ.Amount
			} else if ok {
				amount = resolved.Amount
			}

			effectiveType := item.TypeExpense
			if ok {
				effectiveType = resolved.Type
			}

			if effectiveType == item.TypeIncome {
				balance += amount
			} else {
				balance -= amount
			}

			// Dangling references are excluded from the type mix: their
			// defaulted expense type carries a zero amount and should not
			// register visually.
			if ok {
				switch effectiveType {
				case item.TypeIncome:
					hasIncome = true
				default:
					hasExpense = true
				}
			}
		}

		projection.Days = append(projection.Days, DayProjection{
			Day:            day,
			RunningBalance: balance,
			Indicator:      indicator(hasExpense, hasIncome),
			HasPin:         day == pinDay && pinDay != 0,
		})
	}

	return projection
}

// resolve looks the occurrence's reference up in the supplied item set,
// falling back to the backend-resolved snapshot embedded in the
// occurrence. The second result is false for a dangling reference.
func resolve(occ schedule.Occurrence, byID map[int]item.BudgetItem) (item.BudgetItem, bool) {
	if it, ok := byID[occ.BudgetItemID]; ok {
		return it, true
	}
	if occ.Item != nil {
		return *occ.Item, true
	}
	return item.BudgetItem{}, false
}

func indicator(hasExpense, hasIncome bool) Indicator {
	switch {
	case hasExpense && hasIncome:
		return IndicatorMixed
	case hasIncome:
		return IndicatorIncome
	case hasExpense:
		return IndicatorExpense
	default:
		return IndicatorNone
	}
}
