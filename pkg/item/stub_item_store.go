package item

import (
	"context"
	"errors"
)

// StubStore is an in-memory Store for tests.
type StubStore struct {
	nextID int
	data   map[int]BudgetItem

	FailNext error
}

func NewStubStore() *StubStore {
	return &StubStore{data: map[int]BudgetItem{}}
}

func (s *StubStore) takeFailure() error {
	err := s.FailNext
	s.FailNext = nil
	return err
}

func (s *StubStore) List(ctx context.Context) ([]BudgetItem, error) {
	if err := s.takeFailure(); err != nil {
		return nil, err
	}
	items := make([]BudgetItem, 0, len(s.data))
	for _, it := range s.data {
		items = append(items, it)
	}
	return items, nil
}

func (s *StubStore) Create(ctx context.Context, item BudgetItem) (BudgetItem, error) {
	if err := s.takeFailure(); err != nil {
		return BudgetItem{}, err
	}
	s.nextID++
	item.ID = s.nextID
	if item.DisplayOrder == 0 {
		item.DisplayOrder = len(s.data) + 1
	}
	s.data[item.ID] = item
	return item, nil
}

func (s *StubStore) Update(ctx context.Context, item BudgetItem) error {
	if err := s.takeFailure(); err != nil {
		return err
	}
	if _, ok := s.data[item.ID]; !ok {
		return errors.New("item not found")
	}
	s.data[item.ID] = item
	return nil
}

func (s *StubStore) Delete(ctx context.Context, id int) error {
	if err := s.takeFailure(); err != nil {
		return err
	}
	delete(s.data, id)
	return nil
}

func (s *StubStore) Reorder(ctx context.Context, batch []ReorderEntry) error {
	if err := s.takeFailure(); err != nil {
		return err
	}
	for _, entry := range batch {
		it, ok := s.data[entry.ID]
		if !ok {
			return errors.New("item not found")
		}
		it.DisplayOrder = entry.DisplayOrder
		s.data[entry.ID] = it
	}
	return nil
}

func (s *StubStore) Cleanup() {
	s.data = map[int]BudgetItem{}
	s.nextID = 0
	s.FailNext = nil
}
