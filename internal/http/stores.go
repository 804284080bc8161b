package http

import (
	"context"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/dogspotter/internal/entities"
	"github.com/mrlokans/dogspotter/internal/services"
)

// This file consolidates the interfaces controllers depend on.

// BreedReader provides read access to the breed catalog.
type BreedReader interface {
	ListBreeds(ctx context.Context) ([]entities.Breed, error)
	GetBreed(ctx context.Context, id string) (*entities.Breed, error)
}

// ImageResolver resolves a breed name to cached image files.
type ImageResolver interface {
	Resolve(ctx context.Context, breedName string) []string
}

// SightingService records and lists sightings.
type SightingService interface {
	ListSightings(ctx context.Context) ([]entities.Sighting, error)
	RecordSighting(ctx context.Context, in services.SightingInput) (*entities.Sighting, error)
	Stats(ctx context.Context) (services.Stats, error)
}

// TaskQueue enqueues background tasks and reports their status.
type TaskQueue interface {
	Add(tasks ...backlite.Task) *backlite.TaskAddOp
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// Pinger checks storage connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}
