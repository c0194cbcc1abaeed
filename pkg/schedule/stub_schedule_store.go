package schedule

import (
	"context"
	"errors"
	"strings"
	"time"
)

// StubStore is an in-memory Store for tests.
type StubStore struct {
	nextID int
	data   map[int]Occurrence

	FailNext error
}

func NewStubStore() *StubStore {
	return &StubStore{data: map[int]Occurrence{}}
}

func (s *StubStore) takeFailure() error {
	err := s.FailNext
	s.FailNext = nil
	return err
}

func (s *StubStore) ListMonth(ctx context.Context, year int, month time.Month) ([]Occurrence, error) {
	if err := s.takeFailure(); err != nil {
		return nil, err
	}
	prefix := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
	var occurrences []Occurrence
	for _, occ := range s.data {
		if strings.HasPrefix(occ.Date, prefix) {
			occurrences = append(occurrences, occ)
		}
	}
	return occurrences, nil
}

func (s *StubStore) Create(ctx context.Context, occ Occurrence) (Occurrence, error) {
	if err := s.takeFailure(); err != nil {
		return Occurrence{}, err
	}
	s.nextID++
	occ.ID = s.nextID
	s.data[occ.ID] = occ
	return occ, nil
}

func (s *StubStore) Update(ctx context.Context, occ Occurrence) error {
	if err := s.takeFailure(); err != nil {
		return err
	}
	if _, ok := s.data[occ.ID]; !ok {
		return errors.New("occurrence not found")
	}
	s.data[occ.ID] = occ
	return nil
}

func (s *StubStore) Delete(ctx context.Context, id int) error {
	if err := s.takeFailure(); err != nil {
		return err
	}
	delete(s.data, id)
	return nil
}

func (s *StubStore) Cleanup() {
	s.data = map[int]Occurrence{}
	s.nextID = 0
	s.FailNext = nil
}
