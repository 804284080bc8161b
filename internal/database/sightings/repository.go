// Package sightings stores the user's sighting log.
//
// Sightings are create-only. The breed reference is weak: rows keep their
// breed_id even after the breed leaves the catalog.
package sightings

import (
	"context"
	"fmt"

	"github.com/mrlokans/dogspotter/internal/database"
	"github.com/mrlokans/dogspotter/internal/entities"
)

// Repository handles sighting database operations.
type Repository struct {
	db database.Connector
}

// NewRepository creates a new sightings repository.
func NewRepository(db database.Connector) *Repository {
	return &Repository{db: db}
}

// ListSightings returns every sighting, most recent first.
func (r *Repository) ListSightings(ctx context.Context) ([]entities.Sighting, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, err
	}

	var sightings []entities.Sighting
	if err := conn.Order("timestamp DESC").Order("id ASC").Find(&sightings).Error; err != nil {
		return nil, fmt.Errorf("list sightings: %w", err)
	}
	return sightings, nil
}

// AddSighting inserts a fully formed sighting.
func (r *Repository) AddSighting(ctx context.Context, sighting *entities.Sighting) error {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return err
	}

	if err := conn.Create(sighting).Error; err != nil {
		return fmt.Errorf("add sighting: %w", err)
	}
	return nil
}

// CountSightings returns the number of recorded sightings.
func (r *Repository) CountSightings(ctx context.Context) (int64, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := conn.Model(&entities.Sighting{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count sightings: %w", err)
	}
	return count, nil
}

// CountDistinctBreeds returns how many different breeds have been sighted.
// Sightings without a breed are ignored.
func (r *Repository) CountDistinctBreeds(ctx context.Context) (int64, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	err = conn.Model(&entities.Sighting{}).
		Where("breed_id IS NOT NULL AND breed_id <> ''").
		Distinct("breed_id").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count sighted breeds: %w", err)
	}
	return count, nil
}
