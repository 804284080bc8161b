package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/dogspotter/internal/entities"
)

// BreedLister lists the whole catalog.
type BreedLister interface {
	ListBreeds(ctx context.Context) ([]entities.Breed, error)
}

// ImageCache reports whether a breed image is already on disk.
type ImageCache interface {
	Cached(breedName string) bool
}

// TaskAdder enqueues tasks.
type TaskAdder interface {
	Add(tasks ...backlite.Task) *backlite.TaskAddOp
}

// PrefetchAllImagesTask fans out one PrefetchBreedImageTask per uncached breed.
type PrefetchAllImagesTask struct{}

// Config returns the queue configuration for bulk prefetch tasks.
func (t PrefetchAllImagesTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        PrefetchAllImagesQueue,
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     5 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// PrefetchAllImagesProcessor creates a processor function for PrefetchAllImagesTask.
func PrefetchAllImagesProcessor(breeds BreedLister, cache ImageCache, adder TaskAdder) backlite.QueueProcessor[PrefetchAllImagesTask] {
	return func(ctx context.Context, task PrefetchAllImagesTask) error {
		if breeds == nil || cache == nil || adder == nil {
			return fmt.Errorf("image prefetch not configured")
		}

		all, err := breeds.ListBreeds(ctx)
		if err != nil {
			return fmt.Errorf("list breeds: %w", err)
		}

		var pending []backlite.Task
		for _, b := range all {
			if !cache.Cached(b.Name) {
				pending = append(pending, PrefetchBreedImageTask{BreedID: b.ID})
			}
		}

		entry := logrus.WithField("component", "tasks")
		if len(pending) == 0 {
			entry.Infof("All %d breed images already cached", len(all))
			return nil
		}

		if _, err := adder.Add(pending...).Save(); err != nil {
			return fmt.Errorf("enqueue image prefetch: %w", err)
		}
		entry.Infof("Queued image prefetch for %d of %d breeds", len(pending), len(all))
		return nil
	}
}

// NewPrefetchAllImagesQueue creates a backlite queue for bulk prefetch tasks.
func NewPrefetchAllImagesQueue(breeds BreedLister, cache ImageCache, adder TaskAdder, recorder TaskRecorder) backlite.Queue {
	return backlite.NewQueue(observed(PrefetchAllImagesQueue, recorder, PrefetchAllImagesProcessor(breeds, cache, adder)))
}
