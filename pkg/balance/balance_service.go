package balance

import (
	"context"
	"fmt"

	"github.com/ledgercal/ledgercal/internal/event_bus"
	"github.com/ledgercal/ledgercal/pkg/money"
	"github.com/ledgercal/ledgercal/pkg/schedule"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	// Adjustments returns a fresh sorted index over all pins. Duplicate
	// dates are collapsed to the authoritative entry.
	Adjustments(ctx context.Context) (AdjustmentSet, error)
	// List returns every pin exactly as the store holds it, including any
	// date duplicates a misbehaving backend may have accumulated. Deletion
	// by ID goes through this view so shadowed pins stay reachable.
	List(ctx context.Context) ([]Adjustment, error)
	Set(ctx context.Context, date string, amount money.Money) (Adjustment, error)
	Delete(ctx context.Context, adj Adjustment) error
}

type ServiceImpl struct {
	store Store
	bus   *event_bus.EventBus
}

func NewService(store Store, bus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{store: store, bus: bus}
}

func (s *ServiceImpl) Adjustments(ctx context.Context) (AdjustmentSet, error) {
	adjustments, err := s.store.List(ctx)
	if err != nil {
		return AdjustmentSet{}, err
	}
	return NewAdjustmentSet(adjustments), nil
}

func (s *ServiceImpl) List(ctx context.Context) ([]Adjustment, error) {
	return s.store.List(ctx)
}

func (s *ServiceImpl) Set(ctx context.Context, date string, amount money.Money) (Adjustment, error) {
	if _, err := schedule.ParseDate(date); err != nil {
		return Adjustment{}, err
	}
	adj, err := s.store.SetForDate(ctx, date, amount)
	if err != nil {
		return Adjustment{}, err
	}
	log.Debugf("pinned balance %s as of %s", amount, date)
	s.notify(ctx, date)
	return adj, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, adj Adjustment) error {
	if adj.ID == 0 {
		return fmt.Errorf("adjustment id is required for delete")
	}
	if err := s.store.Delete(ctx, adj.ID); err != nil {
		return err
	}
	s.notify(ctx, adj.Date)
	return nil
}

func (s *ServiceImpl) notify(ctx context.Context, date string) {
	err := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.BalanceChangedEvent, event_bus.BalanceChanged{Date: date}))
	if err != nil {
		log.Warnf("balance change notification failed: %v", err)
	}
}
