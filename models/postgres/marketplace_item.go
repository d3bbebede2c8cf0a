package postgres

import (
	"time"

	"gorm.io/gorm"
)

const (
	ItemStatusAvailable = "available"
	ItemStatusSold      = "sold"
)

type MarketplaceItem struct {
	ID          string `gorm:"primaryKey;size:36"`
	SellerID    string `gorm:"size:36;not null;index:idx_marketplace_items_seller"`
	Title       string `gorm:"size:120;not null"`
	Description string `gorm:"size:2000"`
	PriceCents  int64  `gorm:"not null;default:0"`
	Category    string `gorm:"size:50;index:idx_marketplace_items_category"`
	ImageURL    string `gorm:"size:500"`
	Status      string `gorm:"size:20;not null;default:'available'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (m *MarketplaceItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = newID()
	}
	return nil
}
