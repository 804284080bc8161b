package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/dogspotter/internal/tasks"
)

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateSchedule checks a five-field cron expression.
func ValidateSchedule(schedule string) error {
	if _, err := cronParser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", schedule, err)
	}
	return nil
}

// ImagePrefetchScheduler periodically queues a prefetch of every uncached
// breed image.
type ImagePrefetchScheduler struct {
	adder    tasks.TaskAdder
	schedule string
	enabled  bool
	log      *logrus.Entry

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewImagePrefetchScheduler creates a new scheduler instance
func NewImagePrefetchScheduler(adder tasks.TaskAdder, enabled bool, schedule string) *ImagePrefetchScheduler {
	return &ImagePrefetchScheduler{
		adder:    adder,
		schedule: schedule,
		enabled:  enabled,
		log:      logrus.WithField("component", "scheduler"),
		cron:     cron.New(cron.WithParser(cronParser)),
	}
}

// Start begins the scheduler if prefetch is enabled
func (s *ImagePrefetchScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.enabled {
		s.log.Info("Image prefetch scheduler: disabled")
		return nil
	}

	if s.adder == nil {
		s.log.Info("Image prefetch scheduler: task queue not available, skipping")
		return nil
	}

	if err := ValidateSchedule(s.schedule); err != nil {
		return err
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		if err := s.enqueue(); err != nil {
			s.log.WithError(err).Error("Image prefetch: failed to queue")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule prefetch job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	s.log.Infof("Image prefetch scheduler: started with schedule '%s'. Next run: %v",
		s.schedule, s.cron.Entry(entryID).Next)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler
func (s *ImagePrefetchScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	// Wait for a running job before releasing the monitor goroutine
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.cron.Remove(s.entryID)
	s.isRunning = false
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}

	s.log.Info("Image prefetch scheduler: stopped")
}

// RunNow queues a prefetch immediately
func (s *ImagePrefetchScheduler) RunNow() error {
	if s.adder == nil {
		return fmt.Errorf("task queue not available")
	}
	return s.enqueue()
}

// IsRunning returns whether the scheduler is active
func (s *ImagePrefetchScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next prefetch will be queued
func (s *ImagePrefetchScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	entry := s.cron.Entry(s.entryID)
	if !entry.Valid() {
		return nil
	}
	t := entry.Next
	return &t
}

func (s *ImagePrefetchScheduler) enqueue() error {
	ids, err := s.adder.Add(tasks.PrefetchAllImagesTask{}).Save()
	if err != nil {
		return fmt.Errorf("enqueue image prefetch: %w", err)
	}
	s.log.WithField("task_ids", ids).Info("Image prefetch: queued")
	return nil
}
