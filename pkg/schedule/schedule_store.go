package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/ledgercal/ledgercal/internal/rest"
	"github.com/ledgercal/ledgercal/pkg/item"
	"github.com/ledgercal/ledgercal/pkg/money"
)

// Store is the Schedule Store collaborator: the remote service that owns
// scheduled occurrences.
type Store interface {
	// ListMonth returns the occurrences whose date falls within the given
	// month.
	ListMonth(ctx context.Context, year int, month time.Month) ([]Occurrence, error)
	Create(ctx context.Context, occ Occurrence) (Occurrence, error)
	Update(ctx context.Context, occ Occurrence) error
	Delete(ctx context.Context, id int) error
}

type occurrenceDTO struct {
	ID           int      `json:"id,omitempty"`
	BudgetItemID int      `json:"budgetItemId"`
	Date         string   `json:"date"`
	Amount       *float64 `json:"amount,omitempty"`
	Name         *string  `json:"name,omitempty"`
	Item         *itemDTO `json:"budgetItem,omitempty"`
}

type itemDTO struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Amount       float64 `json:"amount"`
	Type         string  `json:"type"`
	DisplayOrder int     `json:"displayOrder,omitempty"`
}

// RestStore talks to the remote Schedule Store over HTTP.
type RestStore struct {
	client *rest.Client
}

func NewRestStore(client *rest.Client) *RestStore {
	return &RestStore{client: client}
}

func (s *RestStore) ListMonth(ctx context.Context, year int, month time.Month) ([]Occurrence, error) {
	path := fmt.Sprintf("/api/scheduled-items/month?year=%d&month=%d", year, int(month))
	var dtos []occurrenceDTO
	if err := s.client.Get(ctx, path, &dtos); err != nil {
		return nil, fmt.Errorf("failed to list occurrences for %d-%02d: %w", year, int(month), err)
	}
	occurrences := make([]Occurrence, 0, len(dtos))
	for _, dto := range dtos {
		occurrences = append(occurrences, dtoToOccurrence(dto))
	}
	return occurrences, nil
}

func (s *RestStore) Create(ctx context.Context, occ Occurrence) (Occurrence, error) {
	var created occurrenceDTO
	if err := s.client.Post(ctx, "/api/scheduled-items", occurrenceToDTO(occ), &created); err != nil {
		return Occurrence{}, fmt.Errorf("failed to create occurrence: %w", err)
	}
	return dtoToOccurrence(created), nil
}

func (s *RestStore) Update(ctx context.Context, occ Occurrence) error {
	path := fmt.Sprintf("/api/scheduled-items/%d", occ.ID)
	if err := s.client.Put(ctx, path, occurrenceToDTO(occ), nil); err != nil {
		return fmt.Errorf("failed to update occurrence %d: %w", occ.ID, err)
	}
	return nil
}

func (s *RestStore) Delete(ctx context.Context, id int) error {
	if err := s.client.Delete(ctx, fmt.Sprintf("/api/scheduled-items/%d", id)); err != nil {
		return fmt.Errorf("failed to delete occurrence %d: %w", id, err)
	}
	return nil
}

func occurrenceToDTO(occ Occurrence) occurrenceDTO {
	dto := occurrenceDTO{
		ID:           occ.ID,
		BudgetItemID: occ.BudgetItemID,
		Date:         occ.Date,
		Name:         occ.Name,
	}
	if occ.Amount != nil {
		dollars := occ.Amount.Dollars()
		dto.Amount = &dollars
	}
	return dto
}

func dtoToOccurrence(dto occurrenceDTO) Occurrence {
	occ := Occurrence{
		ID:           dto.ID,
		BudgetItemID: dto.BudgetItemID,
		Date:         dto.Date,
		Name:         dto.Name,
	}
	if dto.Amount != nil {
		cents := money.FromDollars(*dto.Amount)
		occ.Amount = &cents
	}
	if dto.Item != nil {
		occ.Item = &item.BudgetItem{
			ID:           dto.Item.ID,
			Name:         dto.Item.Name,
			Amount:       money.FromDollars(dto.Item.Amount),
			Type:         item.ItemType(dto.Item.Type),
			DisplayOrder: dto.Item.DisplayOrder,
		}
	}
	return occ
}
