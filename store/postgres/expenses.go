package postgres

import (
	"context"

	models "Roomio/models/postgres"
	"Roomio/store"

	"gorm.io/gorm"
)

// CreateExpense writes the expense and its shares atomically through the association.
func (s *Store) CreateExpense(ctx context.Context, expense *models.Expense) error {
	return translate(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Group{}).Where("id = ?", expense.GroupID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return store.ErrNotFound
		}
		return tx.Create(expense).Error
	}))
}

func (s *Store) ListExpenses(ctx context.Context, groupID string) ([]models.Expense, error) {
	var expenses []models.Expense
	err := s.db.WithContext(ctx).
		Preload("Shares", func(db *gorm.DB) *gorm.DB { return db.Order("user_id ASC") }).
		Where("group_id = ?", groupID).
		Order("created_at DESC, id DESC").
		Find(&expenses).Error
	return expenses, translate(err)
}
