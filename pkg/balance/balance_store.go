package balance

import (
	"context"
	"fmt"

	"github.com/ledgercal/ledgercal/internal/rest"
	"github.com/ledgercal/ledgercal/pkg/money"
)

// Store is the Balance Adjustment Store collaborator.
type Store interface {
	List(ctx context.Context) ([]Adjustment, error)
	// SetForDate creates the pin for a date, or replaces an existing one
	// (last-write-wins by date).
	SetForDate(ctx context.Context, date string, amount money.Money) (Adjustment, error)
	Delete(ctx context.Context, id int) error
}

type adjustmentDTO struct {
	ID     int     `json:"id,omitempty"`
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// RestStore talks to the remote Balance Adjustment Store over HTTP.
type RestStore struct {
	client *rest.Client
}

func NewRestStore(client *rest.Client) *RestStore {
	return &RestStore{client: client}
}

func (s *RestStore) List(ctx context.Context) ([]Adjustment, error) {
	var dtos []adjustmentDTO
	if err := s.client.Get(ctx, "/api/balance-adjustments", &dtos); err != nil {
		return nil, fmt.Errorf("failed to list balance adjustments: %w", err)
	}
	adjustments := make([]Adjustment, 0, len(dtos))
	for _, dto := range dtos {
		adjustments = append(adjustments, Adjustment{
			ID:     dto.ID,
			Date:   dto.Date,
			Amount: money.FromDollars(dto.Amount),
		})
	}
	return adjustments, nil
}

func (s *RestStore) SetForDate(ctx context.Context, date string, amount money.Money) (Adjustment, error) {
	body := adjustmentDTO{Date: date, Amount: amount.Dollars()}
	var created adjustmentDTO
	if err := s.client.Post(ctx, "/api/balance-adjustments", body, &created); err != nil {
		return Adjustment{}, fmt.Errorf("failed to set balance adjustment for %s: %w", date, err)
	}
	return Adjustment{ID: created.ID, Date: created.Date, Amount: money.FromDollars(created.Amount)}, nil
}

func (s *RestStore) Delete(ctx context.Context, id int) error {
	if err := s.client.Delete(ctx, fmt.Sprintf("/api/balance-adjustments/%d", id)); err != nil {
		return fmt.Errorf("failed to delete balance adjustment %d: %w", id, err)
	}
	return nil
}
