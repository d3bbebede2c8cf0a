package services

import (
	"context"
	"strings"
	"unicode/utf8"

	models "Roomio/models/postgres"
	"Roomio/pkg/apperror"
	"Roomio/store"
	"Roomio/utils"
)

type MarketplaceService struct {
	store store.Store
}

type ItemInput struct {
	Title       string
	Description string
	PriceCents  int64
	Category    string
	ImageURL    string
}

type ItemUpdate struct {
	Title       *string
	Description *string
	PriceCents  *int64
	Category    *string
	ImageURL    *string
	Status      *string
}

type ItemQuery struct {
	Category string
	Status   string
	SellerID string
	Query    string
	Limit    int
	Offset   int
}

func validItemStatus(status string) bool {
	return status == models.ItemStatusAvailable || status == models.ItemStatusSold
}

func cleanTitle(title string) (string, error) {
	title = utils.SanitizeText(title)
	if title == "" {
		return "", apperror.Validation("title is required")
	}
	if utf8.RuneCountInString(title) > 120 {
		return "", apperror.Validation("title must be at most 120 characters")
	}
	return title, nil
}

func cleanDescription(description string) (string, error) {
	description = utils.SanitizeText(description)
	if utf8.RuneCountInString(description) > 2000 {
		return "", apperror.Validation("description must be at most 2000 characters")
	}
	return description, nil
}

func (s *MarketplaceService) ListItems(ctx context.Context, q ItemQuery) ([]ItemView, error) {
	if q.Status != "" && !validItemStatus(q.Status) {
		return nil, apperror.Validation("status must be 'available' or 'sold'")
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	items, err := s.store.ListItems(ctx, store.ItemFilter{
		Category: strings.TrimSpace(q.Category),
		Status:   q.Status,
		SellerID: strings.TrimSpace(q.SellerID),
		Query:    strings.TrimSpace(q.Query),
		Limit:    clampLimit(q.Limit, 20, 100),
		Offset:   q.Offset,
	})
	if err != nil {
		return nil, internal(err, "list items")
	}
	out := make([]ItemView, 0, len(items))
	for i := range items {
		out = append(out, itemViewOf(&items[i]))
	}
	return out, nil
}

func (s *MarketplaceService) CreateItem(ctx context.Context, userID string, in ItemInput) (*ItemView, error) {
	title, err := cleanTitle(in.Title)
	if err != nil {
		return nil, err
	}
	description, err := cleanDescription(in.Description)
	if err != nil {
		return nil, err
	}
	if in.PriceCents < 0 {
		return nil, apperror.Validation("priceCents cannot be negative")
	}

	item := &models.MarketplaceItem{
		SellerID:    userID,
		Title:       title,
		Description: description,
		PriceCents:  in.PriceCents,
		Category:    utils.SanitizeText(in.Category),
		ImageURL:    strings.TrimSpace(in.ImageURL),
		Status:      models.ItemStatusAvailable,
	}
	if err := s.store.CreateItem(ctx, item); err != nil {
		return nil, internal(err, "create item")
	}
	view := itemViewOf(item)
	return &view, nil
}

func (s *MarketplaceService) GetItem(ctx context.Context, itemID string) (*ItemView, error) {
	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return nil, notFoundOr(err, "Item not found", "get item")
	}
	view := itemViewOf(item)
	return &view, nil
}

func (s *MarketplaceService) ownedItem(ctx context.Context, userID, itemID string) (*models.MarketplaceItem, error) {
	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return nil, notFoundOr(err, "Item not found", "get item")
	}
	if item.SellerID != userID {
		return nil, apperror.Forbidden("Only the seller can modify this item")
	}
	return item, nil
}

func (s *MarketplaceService) UpdateItem(ctx context.Context, userID, itemID string, in ItemUpdate) (*ItemView, error) {
	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if item.Title, err = cleanTitle(*in.Title); err != nil {
			return nil, err
		}
	}
	if in.Description != nil {
		if item.Description, err = cleanDescription(*in.Description); err != nil {
			return nil, err
		}
	}
	if in.PriceCents != nil {
		if *in.PriceCents < 0 {
			return nil, apperror.Validation("priceCents cannot be negative")
		}
		item.PriceCents = *in.PriceCents
	}
	if in.Category != nil {
		item.Category = utils.SanitizeText(*in.Category)
	}
	if in.ImageURL != nil {
		item.ImageURL = strings.TrimSpace(*in.ImageURL)
	}
	if in.Status != nil {
		if !validItemStatus(*in.Status) {
			return nil, apperror.Validation("status must be 'available' or 'sold'")
		}
		item.Status = *in.Status
	}

	if err := s.store.UpdateItem(ctx, item); err != nil {
		return nil, notFoundOr(err, "Item not found", "update item")
	}
	view := itemViewOf(item)
	return &view, nil
}

func (s *MarketplaceService) DeleteItem(ctx context.Context, userID, itemID string) error {
	if _, err := s.ownedItem(ctx, userID, itemID); err != nil {
		return err
	}
	if err := s.store.DeleteItem(ctx, itemID); err != nil {
		return notFoundOr(err, "Item not found", "delete item")
	}
	return nil
}
