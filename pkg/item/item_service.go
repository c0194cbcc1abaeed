package item

import (
	"context"
	"fmt"

	"github.com/ledgercal/ledgercal/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	// List returns all items in display order.
	List(ctx context.Context) ([]BudgetItem, error)
	Create(ctx context.Context, item BudgetItem) (BudgetItem, error)
	Update(ctx context.Context, item BudgetItem) error
	Delete(ctx context.Context, id int) error
	// Move places the item at the given 0-based position in the list and
	// submits the resulting total reorder batch.
	Move(ctx context.Context, id int, targetIndex int) error
}

type ServiceImpl struct {
	store Store
	bus   *event_bus.EventBus
}

func NewService(store Store, bus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{store: store, bus: bus}
}

func (s *ServiceImpl) List(ctx context.Context) ([]BudgetItem, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return Sorted(items), nil
}

func (s *ServiceImpl) Create(ctx context.Context, item BudgetItem) (BudgetItem, error) {
	if err := item.Validate(); err != nil {
		return BudgetItem{}, err
	}
	created, err := s.store.Create(ctx, item)
	if err != nil {
		return BudgetItem{}, err
	}
	s.notify(ctx, created.ID)
	return created, nil
}

func (s *ServiceImpl) Update(ctx context.Context, item BudgetItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if item.ID == 0 {
		return fmt.Errorf("item id is required for update")
	}
	if err := s.store.Update(ctx, item); err != nil {
		return err
	}
	s.notify(ctx, item.ID)
	return nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.notify(ctx, id)
	return nil
}

func (s *ServiceImpl) Move(ctx context.Context, id int, targetIndex int) error {
	items, err := s.store.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load items before reorder: %w", err)
	}
	batch, err := MoveTo(items, id, targetIndex)
	if err != nil {
		return err
	}
	if err := s.store.Reorder(ctx, batch); err != nil {
		return err
	}
	s.notify(ctx, 0)
	return nil
}

func (s *ServiceImpl) notify(ctx context.Context, itemID int) {
	err := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.ItemsChangedEvent, event_bus.ItemsChanged{ItemID: itemID}))
	if err != nil {
		log.Warnf("items change notification failed: %v", err)
	}
}
