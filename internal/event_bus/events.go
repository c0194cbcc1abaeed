package event_bus

// Change events published by the store services after the remote API has
// confirmed a mutation. Payloads identify what changed so subscribers can
// decide whether a refresh is needed.

const (
	ItemsChangedEvent    EventType = "items.changed"
	ScheduleChangedEvent EventType = "schedule.changed"
	BalanceChangedEvent  EventType = "balance.changed"
)

type ItemsChanged struct {
	// ItemID is the mutated item, or 0 for batch operations (reorder).
	ItemID int
}

type ScheduleChanged struct {
	OccurrenceID int
	// Date of the affected occurrence, YYYY-MM-DD.
	Date string
}

type BalanceChanged struct {
	// Date of the created, replaced, or deleted pin, YYYY-MM-DD.
	Date string
}
