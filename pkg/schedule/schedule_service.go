package schedule

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ledgercal/ledgercal/internal/event_bus"
	"github.com/ledgercal/ledgercal/pkg/item"
	"github.com/ledgercal/ledgercal/pkg/money"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	MonthOccurrences(ctx context.Context, year int, month time.Month) ([]Occurrence, error)
	// ScheduleDrop is the drag-drop intent: it creates exactly one new
	// occurrence for (item, date) with no overrides. Overrides are only
	// ever set later, from the date-detail view.
	ScheduleDrop(ctx context.Context, budgetItemID int, date string) (Occurrence, error)
	// Override applies name/amount overrides to an existing occurrence.
	// A nil field clears nothing; pass the current value to keep it.
	Override(ctx context.Context, occ Occurrence, name *string, amount *money.Money) error
	Remove(ctx context.Context, occ Occurrence) error
}

type ServiceImpl struct {
	store Store
	bus   *event_bus.EventBus
}

func NewService(store Store, bus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{store: store, bus: bus}
}

func (s *ServiceImpl) MonthOccurrences(ctx context.Context, year int, month time.Month) ([]Occurrence, error) {
	return s.store.ListMonth(ctx, year, month)
}

func (s *ServiceImpl) ScheduleDrop(ctx context.Context, budgetItemID int, date string) (Occurrence, error) {
	if budgetItemID == 0 {
		return Occurrence{}, fmt.Errorf("a budget item reference is required")
	}
	if _, err := ParseDate(date); err != nil {
		return Occurrence{}, err
	}

	created, err := s.store.Create(ctx, Occurrence{
		BudgetItemID: budgetItemID,
		Date:         date,
	})
	if err != nil {
		return Occurrence{}, err
	}
	log.Debugf("scheduled item %d on %s as occurrence %d", budgetItemID, date, created.ID)
	s.notify(ctx, created.ID, created.Date)
	return created, nil
}

func (s *ServiceImpl) Override(ctx context.Context, occ Occurrence, name *string, amount *money.Money) error {
	if occ.ID == 0 {
		return fmt.Errorf("occurrence id is required for override")
	}
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return item.ErrEmptyName
		}
		occ.Name = &trimmed
	}
	if amount != nil {
		if *amount <= 0 {
			return item.ErrInvalidAmount
		}
		occ.Amount = amount
	}

	if err := s.store.Update(ctx, occ); err != nil {
		return err
	}
	s.notify(ctx, occ.ID, occ.Date)
	return nil
}

func (s *ServiceImpl) Remove(ctx context.Context, occ Occurrence) error {
	if err := s.store.Delete(ctx, occ.ID); err != nil {
		return err
	}
	s.notify(ctx, occ.ID, occ.Date)
	return nil
}

func (s *ServiceImpl) notify(ctx context.Context, occurrenceID int, date string) {
	err := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.ScheduleChangedEvent, event_bus.ScheduleChanged{
		OccurrenceID: occurrenceID,
		Date:         date,
	}))
	if err != nil {
		log.Warnf("schedule change notification failed: %v", err)
	}
}
