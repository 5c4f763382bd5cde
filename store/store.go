// Package store is the gorm-backed persistence layer. It owns no connection
// of its own: the handle is opened and closed by the caller.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/Kariqs/farmkart-api/models"
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Ping checks that the underlying database answers.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return classify(err, "get database handle")
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return classify(err, "ping database")
	}
	return nil
}

// classify maps gorm failures onto the domain error taxonomy.
func classify(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", models.ErrNotFound, what)
	}
	return fmt.Errorf("%w: %s: %w", models.ErrStorage, what, err)
}
