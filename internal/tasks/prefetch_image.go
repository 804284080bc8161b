package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/dogspotter/internal/entities"
)

const (
	PrefetchBreedImageQueue = "prefetch_breed_image"
	PrefetchAllImagesQueue  = "prefetch_all_images"
)

// BreedGetter provides single breed lookups.
type BreedGetter interface {
	GetBreed(ctx context.Context, id string) (*entities.Breed, error)
}

// ImageResolver downloads and caches breed images.
type ImageResolver interface {
	Resolve(ctx context.Context, breedName string) []string
}

// TaskRecorder receives the outcome of every processed task.
type TaskRecorder interface {
	RecordTask(queue string, err error)
}

// PrefetchBreedImageTask resolves and caches the image of one breed.
type PrefetchBreedImageTask struct {
	BreedID string `json:"breed_id"`
}

// Config returns the queue configuration for single image prefetch tasks.
func (t PrefetchBreedImageTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        PrefetchBreedImageQueue,
		MaxAttempts: 2,
		Backoff:     time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// PrefetchBreedImageProcessor creates a processor function for PrefetchBreedImageTask.
// A breed without an image is not a failure. A breed that left the catalog
// is skipped.
func PrefetchBreedImageProcessor(breeds BreedGetter, resolver ImageResolver) backlite.QueueProcessor[PrefetchBreedImageTask] {
	return func(ctx context.Context, task PrefetchBreedImageTask) error {
		if breeds == nil || resolver == nil {
			return fmt.Errorf("image prefetch not configured")
		}

		breed, err := breeds.GetBreed(ctx, task.BreedID)
		if err != nil {
			return fmt.Errorf("get breed %s: %w", task.BreedID, err)
		}
		entry := logrus.WithFields(logrus.Fields{"component": "tasks", "breed_id": task.BreedID})
		if breed == nil {
			entry.Info("Breed no longer in catalog, skipping image prefetch")
			return nil
		}

		if paths := resolver.Resolve(ctx, breed.Name); len(paths) > 0 {
			entry.WithField("path", paths[0]).Debug("Breed image cached")
		} else {
			entry.WithField("breed", breed.Name).Info("No image available for breed")
		}
		return nil
	}
}

// NewPrefetchBreedImageQueue creates a backlite queue for single image prefetch tasks.
func NewPrefetchBreedImageQueue(breeds BreedGetter, resolver ImageResolver, recorder TaskRecorder) backlite.Queue {
	return backlite.NewQueue(observed(PrefetchBreedImageQueue, recorder, PrefetchBreedImageProcessor(breeds, resolver)))
}

// observed reports every run of fn to recorder.
func observed[T backlite.Task](queue string, recorder TaskRecorder, fn backlite.QueueProcessor[T]) backlite.QueueProcessor[T] {
	if recorder == nil {
		return fn
	}
	return func(ctx context.Context, task T) error {
		err := fn(ctx, task)
		recorder.RecordTask(queue, err)
		return err
	}
}
