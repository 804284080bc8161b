package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/dogspotter/internal/database"
	"github.com/mrlokans/dogspotter/internal/database/breeds"
	"github.com/mrlokans/dogspotter/internal/database/sightings"
	"github.com/mrlokans/dogspotter/internal/http"
	"github.com/mrlokans/dogspotter/internal/images"
	"github.com/mrlokans/dogspotter/internal/metrics"
	"github.com/mrlokans/dogspotter/internal/services"
	"github.com/mrlokans/dogspotter/internal/tasks"
	"github.com/mrlokans/dogspotter/internal/wikipedia"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ database.Connector = (*database.Database)(nil)
var _ http.Pinger = (*database.Database)(nil)

// Breed catalog readers
var _ breeds.Reader = (*breeds.Repository)(nil)
var _ breeds.Reader = (*breeds.CachedRepository)(nil)
var _ http.BreedReader = (*breeds.Repository)(nil)
var _ http.BreedReader = (*breeds.CachedRepository)(nil)
var _ services.BreedReader = (*breeds.CachedRepository)(nil)
var _ tasks.BreedGetter = (*breeds.CachedRepository)(nil)
var _ tasks.BreedLister = (*breeds.CachedRepository)(nil)

// SightingStore implementations
var _ services.SightingStore = (*sightings.Repository)(nil)
var _ http.SightingService = (*services.SightingService)(nil)

// =============================================================================
// Images
// =============================================================================

var _ images.Lookup = (*wikipedia.Client)(nil)
var _ http.ImageResolver = (*images.Resolver)(nil)
var _ tasks.ImageResolver = (*images.Resolver)(nil)
var _ tasks.ImageCache = (*images.Resolver)(nil)

// =============================================================================
// Task Queue
// =============================================================================

var _ http.TaskQueue = (*tasks.Client)(nil)
var _ tasks.TaskAdder = (*tasks.Client)(nil)

// =============================================================================
// Metrics
// =============================================================================

var _ wikipedia.Recorder = (*metrics.Metrics)(nil)
var _ images.Recorder = (*metrics.Metrics)(nil)
var _ services.SightingRecorder = (*metrics.Metrics)(nil)
var _ tasks.TaskRecorder = (*metrics.Metrics)(nil)
