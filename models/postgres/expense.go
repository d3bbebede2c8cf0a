package postgres

import (
	"time"

	"gorm.io/gorm"
)

// Expense is paid by one member and split into shares among members of the same group.
type Expense struct {
	ID          string `gorm:"primaryKey;size:36"`
	GroupID     string `gorm:"size:36;not null;index:idx_expenses_group"`
	PaidBy      string `gorm:"size:36;not null"`
	Description string `gorm:"size:255;not null"`
	AmountCents int64  `gorm:"not null"`
	CreatedAt   time.Time

	Shares []ExpenseShare `gorm:"foreignKey:ExpenseID;constraint:OnDelete:CASCADE"`
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = newID()
	}
	return nil
}

type ExpenseShare struct {
	ExpenseID  string `gorm:"primaryKey;size:36"`
	UserID     string `gorm:"primaryKey;size:36"`
	ShareCents int64  `gorm:"not null"`
}
