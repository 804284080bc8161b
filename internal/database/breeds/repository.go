// Package breeds provides read access to the breed catalog.
//
// The catalog is written only by database.Initialize. This package never
// modifies breed rows.
//
// # Usage
//
//	repo := breeds.NewRepository(db)
//	all, err := repo.ListBreeds(ctx)
//
// Wrap the repository with NewCachedRepository to serve repeated catalog
// reads from memory.
package breeds

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/dogspotter/internal/database"
	"github.com/mrlokans/dogspotter/internal/entities"
)

// Repository handles breed catalog queries.
type Repository struct {
	db database.Connector
}

// NewRepository creates a new breeds repository.
func NewRepository(db database.Connector) *Repository {
	return &Repository{db: db}
}

// ListBreeds returns every breed ordered by name.
func (r *Repository) ListBreeds(ctx context.Context) ([]entities.Breed, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, err
	}

	var breeds []entities.Breed
	if err := conn.Order("name ASC").Order("id ASC").Find(&breeds).Error; err != nil {
		return nil, fmt.Errorf("list breeds: %w", err)
	}
	return breeds, nil
}

// GetBreed returns the breed with the given id, or nil when it does not exist.
func (r *Repository) GetBreed(ctx context.Context, id string) (*entities.Breed, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, err
	}

	var breed entities.Breed
	err = conn.Where("id = ?", id).First(&breed).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get breed %s: %w", id, err)
	}
	return &breed, nil
}

// CountBreeds returns the catalog size.
func (r *Repository) CountBreeds(ctx context.Context) (int64, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := conn.Model(&entities.Breed{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count breeds: %w", err)
	}
	return count, nil
}
