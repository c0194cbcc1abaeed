package balance

import (
	"context"
	"errors"

	"github.com/ledgercal/ledgercal/pkg/money"
)

// StubStore is an in-memory Store for tests. Like the real store it keeps
// one pin per date, replacing on repeated writes.
type StubStore struct {
	nextID int
	byDate map[string]Adjustment

	FailNext error
}

func NewStubStore() *StubStore {
	return &StubStore{byDate: map[string]Adjustment{}}
}

func (s *StubStore) takeFailure() error {
	err := s.FailNext
	s.FailNext = nil
	return err
}

func (s *StubStore) List(ctx context.Context) ([]Adjustment, error) {
	if err := s.takeFailure(); err != nil {
		return nil, err
	}
	adjustments := make([]Adjustment, 0, len(s.byDate))
	for _, adj := range s.byDate {
		adjustments = append(adjustments, adj)
	}
	return adjustments, nil
}

func (s *StubStore) SetForDate(ctx context.Context, date string, amount money.Money) (Adjustment, error) {
	if err := s.takeFailure(); err != nil {
		return Adjustment{}, err
	}
	adj, ok := s.byDate[date]
	if !ok {
		s.nextID++
		adj = Adjustment{ID: s.nextID, Date: date}
	}
	adj.Amount = amount
	s.byDate[date] = adj
	return adj, nil
}

func (s *StubStore) Delete(ctx context.Context, id int) error {
	if err := s.takeFailure(); err != nil {
		return err
	}
	for date, adj := range s.byDate {
		if adj.ID == id {
			delete(s.byDate, date)
			return nil
		}
	}
	return errors.New("adjustment not found")
}

func (s *StubStore) Cleanup() {
	s.byDate = map[string]Adjustment{}
	s.nextID = 0
	s.FailNext = nil
}
