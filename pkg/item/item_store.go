package item

import (
	"context"
	"fmt"

	"github.com/ledgercal/ledgercal/internal/rest"
	"github.com/ledgercal/ledgercal/pkg/money"
	log "github.com/sirupsen/logrus"
)

// Store is the Item Store collaborator: the remote service that owns the
// canonical list of recurring budget items.
type Store interface {
	List(ctx context.Context) ([]BudgetItem, error)
	Create(ctx context.Context, item BudgetItem) (BudgetItem, error)
	Update(ctx context.Context, item BudgetItem) error
	Delete(ctx context.Context, id int) error
	// Reorder submits a full displayOrder reassignment for every item as
	// one atomic batch.
	Reorder(ctx context.Context, batch []ReorderEntry) error
}

type itemDTO struct {
	ID           int     `json:"id,omitempty"`
	Name         string  `json:"name"`
	Amount       float64 `json:"amount"`
	Type         string  `json:"type"`
	DisplayOrder int     `json:"displayOrder,omitempty"`
}

type reorderDTO struct {
	ID           int `json:"id"`
	DisplayOrder int `json:"displayOrder"`
}

// RestStore talks to the remote Item Store over HTTP.
type RestStore struct {
	client *rest.Client
}

func NewRestStore(client *rest.Client) *RestStore {
	return &RestStore{client: client}
}

func (s *RestStore) List(ctx context.Context) ([]BudgetItem, error) {
	var dtos []itemDTO
	if err := s.client.Get(ctx, "/api/items", &dtos); err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	items := make([]BudgetItem, 0, len(dtos))
	for _, dto := range dtos {
		items = append(items, dtoToItem(dto))
	}
	return items, nil
}

func (s *RestStore) Create(ctx context.Context, item BudgetItem) (BudgetItem, error) {
	var created itemDTO
	if err := s.client.Post(ctx, "/api/items", itemToDTO(item), &created); err != nil {
		return BudgetItem{}, fmt.Errorf("failed to create item: %w", err)
	}
	log.Debugf("created budget item %d", created.ID)
	return dtoToItem(created), nil
}

func (s *RestStore) Update(ctx context.Context, item BudgetItem) error {
	path := fmt.Sprintf("/api/items/%d", item.ID)
	if err := s.client.Put(ctx, path, itemToDTO(item), nil); err != nil {
		return fmt.Errorf("failed to update item %d: %w", item.ID, err)
	}
	return nil
}

func (s *RestStore) Delete(ctx context.Context, id int) error {
	if err := s.client.Delete(ctx, fmt.Sprintf("/api/items/%d", id)); err != nil {
		return fmt.Errorf("failed to delete item %d: %w", id, err)
	}
	return nil
}

func (s *RestStore) Reorder(ctx context.Context, batch []ReorderEntry) error {
	dtos := make([]reorderDTO, 0, len(batch))
	for _, entry := range batch {
		dtos = append(dtos, reorderDTO(entry))
	}
	if err := s.client.Put(ctx, "/api/items/reorder", dtos, nil); err != nil {
		return fmt.Errorf("failed to reorder items: %w", err)
	}
	return nil
}

func itemToDTO(item BudgetItem) itemDTO {
	return itemDTO{
		ID:           item.ID,
		Name:         item.Name,
		Amount:       item.Amount.Dollars(),
		Type:         string(item.Type),
		DisplayOrder: item.DisplayOrder,
	}
}

func dtoToItem(dto itemDTO) BudgetItem {
	return BudgetItem{
		ID:           dto.ID,
		Name:         dto.Name,
		Amount:       money.FromDollars(dto.Amount),
		Type:         ItemType(dto.Type),
		DisplayOrder: dto.DisplayOrder,
	}
}
