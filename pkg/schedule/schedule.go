package schedule

import (
	"errors"
	"time"

	"github.com/ledgercal/ledgercal/pkg/item"
	"github.com/ledgercal/ledgercal/pkg/money"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("date must be in YYYY-MM-DD format")

// Occurrence places one budget item on one calendar date. Amount and Name
// are optional overrides layered on top of the referenced item's template
// values; the type is always inherited and cannot be overridden.
//
// The reference to the budget item is weak: the item may have been deleted
// since the occurrence was created, and the projection treats that as a
// first-class state rather than an error.
type Occurrence struct {
	ID           int
	BudgetItemID int
	// Date in YYYY-MM-DD form. Occurrences never span months.
	Date   string
	Amount *money.Money
	Name   *string
	// Item is the referenced template as resolved by the backend at list
	// time, when it still exists.
	Item *item.BudgetItem
}

// ParseDate validates and parses a YYYY-MM-DD calendar date.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// ForDate filters occurrences to those landing on the given date.
func ForDate(occurrences []Occurrence, date string) []Occurrence {
	var onDate []Occurrence
	for _, occ := range occurrences {
		if occ.Date == date {
			onDate = append(onDate, occ)
		}
	}
	return onDate
}

// EffectiveName is the occurrence's name after applying the override, or
// "" when neither an override nor a resolved item is available.
func (o Occurrence) EffectiveName() string {
	if o.Name != nil && *o.Name != "" {
		return *o.Name
	}
	if o.Item != nil {
		return o.Item.Name
	}
	return ""
}
