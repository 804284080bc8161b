package http

import (
	"github.com/mrlokans/dogspotter/internal/metrics"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Breeds    BreedReader
	Sightings SightingService
	Database  Pinger

	// Breed images
	Images           ImageResolver
	ThumbnailMaxSize int

	// Task queue (optional)
	TaskQueue TaskQueue

	// Metrics exposed at /metrics (optional)
	Metrics *metrics.Metrics

	// Allowed CORS origins, "*" allows any
	CORSAllowedOrigins []string

	// Application info
	Version string
}
