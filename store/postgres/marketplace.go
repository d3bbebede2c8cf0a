package postgres

import (
	"context"
	"strings"

	models "Roomio/models/postgres"
	"Roomio/store"
)

func (s *Store) CreateItem(ctx context.Context, item *models.MarketplaceItem) error {
	return translate(s.db.WithContext(ctx).Create(item).Error)
}

func (s *Store) GetItem(ctx context.Context, id string) (*models.MarketplaceItem, error) {
	var item models.MarketplaceItem
	if err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (s *Store) UpdateItem(ctx context.Context, item *models.MarketplaceItem) error {
	res := s.db.WithContext(ctx).Model(&models.MarketplaceItem{}).Where("id = ?", item.ID).
		Select("title", "description", "price_cents", "category", "image_url", "status", "updated_at").
		Updates(item)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteItem(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.MarketplaceItem{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) ListItems(ctx context.Context, filter store.ItemFilter) ([]models.MarketplaceItem, error) {
	q := s.db.WithContext(ctx).Model(&models.MarketplaceItem{})
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.SellerID != "" {
		q = q.Where("seller_id = ?", filter.SellerID)
	}
	if filter.Query != "" {
		like := "%" + strings.ToLower(filter.Query) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var items []models.MarketplaceItem
	err := q.Order("created_at DESC, id DESC").Find(&items).Error
	return items, translate(err)
}
