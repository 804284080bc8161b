package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/dogspotter/internal/entities"
)

const (
	// upsertBatchSize keeps each INSERT well below SQLite's host parameter limit.
	upsertBatchSize = 50
	// deleteChunkSize bounds the IN (...) list of a single prune statement.
	deleteChunkSize = 500
)

// Connector hands out the shared store connection.
type Connector interface {
	Conn(ctx context.Context) (*gorm.DB, error)
}

// Database owns the local SQLite store. The connection is opened lazily on
// first use and shared by every caller afterwards.
type Database struct {
	path string
	log  *logrus.Entry

	mu    sync.Mutex
	db    *gorm.DB
	opens int
}

// SyncResult summarizes a catalog synchronization.
type SyncResult struct {
	Upserted int
	Removed  int
	Duration time.Duration
}

// NewDatabase prepares a store at dbPath without touching the filesystem.
func NewDatabase(dbPath string) *Database {
	return &Database{
		path: dbPath,
		log:  logrus.WithField("component", "database"),
	}
}

// Path returns the database file path.
func (d *Database) Path() string {
	return d.path
}

// Conn returns the shared connection, opening it on first use. Concurrent
// first callers wait for a single open. A failed open is not cached.
func (d *Database) Conn(ctx context.Context) (*gorm.DB, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db == nil {
		db, err := gorm.Open(sqlite.Open(d.path+"?_busy_timeout=5000"), &gorm.Config{
			Logger: logger.New(gormWriter{d.log}, logger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  logger.Warn,
				IgnoreRecordNotFoundError: true,
			}),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		d.db = db
		d.opens++
		d.log.Infof("Opened database at %s", d.path)
	}

	return d.db.WithContext(ctx), nil
}

// Initialize makes the store ready for use: it creates missing tables and
// mirrors the breed table onto the given reference dataset. Every dataset
// breed is inserted or overwritten by id, then every breed whose id is not in
// the dataset is removed. Both phases share one transaction, so a failure
// leaves the previous catalog untouched. Safe to call repeatedly.
func (d *Database) Initialize(ctx context.Context, breeds []entities.Breed) (SyncResult, error) {
	start := time.Now()

	conn, err := d.Conn(ctx)
	if err != nil {
		return SyncResult{}, err
	}

	if err := conn.AutoMigrate(&entities.Breed{}, &entities.Sighting{}); err != nil {
		return SyncResult{}, fmt.Errorf("failed to migrate database: %w", err)
	}

	keep := make(map[string]struct{}, len(breeds))
	for _, b := range breeds {
		keep[b.ID] = struct{}{}
	}

	var removed int
	err = conn.Transaction(func(tx *gorm.DB) error {
		if len(breeds) > 0 {
			rows := make([]entities.Breed, len(breeds))
			copy(rows, breeds)
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				UpdateAll: true,
			}).CreateInBatches(&rows, upsertBatchSize).Error
			if err != nil {
				return fmt.Errorf("upsert breeds: %w", err)
			}
		}

		var existing []string
		if err := tx.Model(&entities.Breed{}).Pluck("id", &existing).Error; err != nil {
			return fmt.Errorf("list breed ids: %w", err)
		}

		var stale []string
		for _, id := range existing {
			if _, ok := keep[id]; !ok {
				stale = append(stale, id)
			}
		}

		for i := 0; i < len(stale); i += deleteChunkSize {
			end := min(i+deleteChunkSize, len(stale))
			res := tx.Where("id IN ?", stale[i:end]).Delete(&entities.Breed{})
			if res.Error != nil {
				return fmt.Errorf("remove stale breeds: %w", res.Error)
			}
			removed += int(res.RowsAffected)
		}
		return nil
	})
	if err != nil {
		return SyncResult{}, fmt.Errorf("failed to sync breeds: %w", err)
	}

	result := SyncResult{
		Upserted: len(keep),
		Removed:  removed,
		Duration: time.Since(start),
	}
	d.log.Infof("Breed sync complete: %d upserted, %d removed in %v",
		result.Upserted, result.Removed, result.Duration.Round(time.Millisecond))

	return result, nil
}

// gormWriter sends GORM's messages to logrus at warn level. GORM only logs
// errors, slow queries and warnings at the configured level.
type gormWriter struct {
	log *logrus.Entry
}

func (w gormWriter) Printf(format string, args ...any) {
	w.log.Warnf(format, args...)
}

// Ping checks that the store is reachable.
func (d *Database) Ping(ctx context.Context) error {
	conn, err := d.Conn(ctx)
	if err != nil {
		return err
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection if it was ever opened.
func (d *Database) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db == nil {
		return nil
	}
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	d.db = nil
	return sqlDB.Close()
}
