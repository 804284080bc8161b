package services

import (
	"context"

	"github.com/mrlokans/dogspotter/internal/entities"
)

// BreedReader provides read-only access to the breed catalog.
type BreedReader interface {
	GetBreed(ctx context.Context, id string) (*entities.Breed, error)
	CountBreeds(ctx context.Context) (int64, error)
}

// SightingStore persists and counts sightings.
type SightingStore interface {
	ListSightings(ctx context.Context) ([]entities.Sighting, error)
	AddSighting(ctx context.Context, sighting *entities.Sighting) error
	CountSightings(ctx context.Context) (int64, error)
	CountDistinctBreeds(ctx context.Context) (int64, error)
}

// SightingRecorder is notified after every stored sighting.
type SightingRecorder interface {
	RecordSighting()
}

// Stats summarizes the sighting log against the catalog.
type Stats struct {
	Sightings    int64 `json:"sightings"`
	UniqueBreeds int64 `json:"unique_breeds"`
	TotalBreeds  int64 `json:"total_breeds"`
}
