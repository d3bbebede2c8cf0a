package memory

import (
	"context"
	"strings"

	models "Roomio/models/postgres"
	"Roomio/store"
)

func (s *Store) CreateItem(ctx context.Context, item *models.MarketplaceItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ensureID(&item.ID)
	now := s.now()
	item.CreatedAt, item.UpdatedAt = now, now
	stored := *item
	s.items[item.ID] = &stored
	s.itemOrder = append(s.itemOrder, item.ID)
	return nil
}

func (s *Store) GetItem(ctx context.Context, id string) (*models.MarketplaceItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.items[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := *it
	return &out, nil
}

func (s *Store) UpdateItem(ctx context.Context, item *models.MarketplaceItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[item.ID]; !ok {
		return store.ErrNotFound
	}
	item.UpdatedAt = s.now()
	stored := *item
	s.items[item.ID] = &stored
	return nil
}

func (s *Store) DeleteItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.items, id)
	for i, itemID := range s.itemOrder {
		if itemID == id {
			s.itemOrder = append(s.itemOrder[:i], s.itemOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) ListItems(ctx context.Context, filter store.ItemFilter) ([]models.MarketplaceItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := strings.ToLower(filter.Query)
	var out []models.MarketplaceItem
	skipped := 0
	for i := len(s.itemOrder) - 1; i >= 0; i-- {
		it := s.items[s.itemOrder[i]]
		if filter.Category != "" && it.Category != filter.Category {
			continue
		}
		if filter.Status != "" && it.Status != filter.Status {
			continue
		}
		if filter.SellerID != "" && it.SellerID != filter.SellerID {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(it.Title), query) &&
			!strings.Contains(strings.ToLower(it.Description), query) {
			continue
		}
		if skipped < filter.Offset {
			skipped++
			continue
		}
		out = append(out, *it)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}
