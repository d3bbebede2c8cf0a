// Package postgres implements store.Store on top of gorm and PostgreSQL.
package postgres

import (
	"errors"

	"Roomio/store"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// SQLSTATE codes PostgreSQL reports for constraint hits.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

type Store struct {
	db *gorm.DB
}

var _ store.Store = (*Store)(nil)

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// translate maps driver errors onto the store sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return store.ErrConflict
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case uniqueViolation:
			return store.ErrConflict
		case foreignKeyViolation:
			// the referenced row is gone
			return store.ErrNotFound
		}
	}
	return err
}
