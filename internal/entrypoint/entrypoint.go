package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/dogspotter/internal/config"
	"github.com/mrlokans/dogspotter/internal/database"
	"github.com/mrlokans/dogspotter/internal/database/breeds"
	"github.com/mrlokans/dogspotter/internal/database/sightings"
	"github.com/mrlokans/dogspotter/internal/dataset"
	http_controllers "github.com/mrlokans/dogspotter/internal/http"
	"github.com/mrlokans/dogspotter/internal/images"
	"github.com/mrlokans/dogspotter/internal/metrics"
	"github.com/mrlokans/dogspotter/internal/scheduler"
	"github.com/mrlokans/dogspotter/internal/services"
	"github.com/mrlokans/dogspotter/internal/tasks"
	"github.com/mrlokans/dogspotter/internal/wikipedia"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// SyncCatalog loads the reference dataset and mirrors it into the store.
// The returned database is open; the caller closes it.
func SyncCatalog(ctx context.Context, cfg *config.Config, m *metrics.Metrics) (*database.Database, database.SyncResult, error) {
	breedList, err := dataset.Load(cfg.Dataset.Path)
	if err != nil {
		return nil, database.SyncResult{}, fmt.Errorf("load dataset: %w", err)
	}

	db := database.NewDatabase(cfg.Database.Path)
	result, err := db.Initialize(ctx, breedList)
	if err != nil {
		db.Close()
		return nil, database.SyncResult{}, err
	}
	m.RecordSync(result.Upserted, result.Removed, result.Duration)

	return db, result, nil
}

// NewImageResolver wires the Wikipedia client into a breed image resolver.
// A nil m disables metrics; its methods are nil-safe.
func NewImageResolver(cfg *config.Config, version string, m *metrics.Metrics) *images.Resolver {
	wiki := wikipedia.NewClient(wikipedia.Config{
		APIURL:    cfg.Wikipedia.APIURL,
		Timeout:   cfg.Wikipedia.Timeout,
		RateLimit: cfg.Wikipedia.RateLimit,
		Version:   version,
		Recorder:  m,
	})

	return images.NewResolver(cfg.Images.CacheDir, wiki, images.Options{
		UserAgent: wiki.UserAgent(),
		Recorder:  m,
	})
}

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	serveErr := make(chan error, 1)
	go func() {
		logrus.Infof("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}
	logrus.Infof("Shutdown Server, waiting %v before killing", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work before the listener goes away
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logrus.Info("Server exiting")
	return nil
}

// Run synchronizes the catalog and serves the API until interrupted.
// A failed synchronization is returned before anything is served.
func Run(cfg *config.Config, version string) error {
	log := logrus.WithField("component", "entrypoint")
	log.Infof("Starting DogSpotter v%s", version)

	m, err := metrics.New()
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}

	db, result, err := SyncCatalog(context.Background(), cfg, m)
	if err != nil {
		return fmt.Errorf("catalog initialization failed: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.WithError(err).Error("Error closing database")
		}
	}()
	log.WithFields(logrus.Fields{
		"upserted": result.Upserted,
		"removed":  result.Removed,
		"duration": result.Duration,
	}).Info("Breed catalog synchronized")

	catalog := breeds.NewCachedRepository(breeds.NewRepository(db), cfg.Database.CatalogCacheTTL)
	sightingService := services.NewSightingService(catalog, sightings.NewRepository(db), m)
	resolver := NewImageResolver(cfg, version, m)

	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	var prefetchScheduler *scheduler.ImagePrefetchScheduler
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		})
		if err != nil {
			return fmt.Errorf("init task queue: %w", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.WithError(err).Error("Error closing task client")
			}
		}()

		taskClient.Register(
			tasks.NewPrefetchBreedImageQueue(catalog, resolver, m),
			tasks.NewPrefetchAllImagesQueue(catalog, resolver, taskClient, m),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		prefetchScheduler = scheduler.NewImagePrefetchScheduler(taskClient, cfg.ImagePrefetch.Enabled, cfg.ImagePrefetch.Schedule)
		if err := prefetchScheduler.Start(taskCtx); err != nil {
			taskCtxCancel()
			return fmt.Errorf("start image prefetch scheduler: %w", err)
		}
	} else {
		log.Info("Task queue disabled, image prefetch endpoints are off")
	}

	routerCfg := http_controllers.RouterConfig{
		Breeds:             catalog,
		Sightings:          sightingService,
		Database:           db,
		Images:             resolver,
		ThumbnailMaxSize:   cfg.Images.ThumbnailMaxSize,
		Metrics:            m,
		CORSAllowedOrigins: cfg.HTTP.CORSAllowedOrigins,
		Version:            version,
	}
	if taskClient != nil {
		routerCfg.TaskQueue = taskClient
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if prefetchScheduler != nil {
			prefetchScheduler.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	return Serve(router, cfg, onShutdown)
}
