// Package interfaces documents the core abstractions used throughout the application.
//
// Consumers declare the narrow interface they need next to their own code;
// this package only holds the compile-time checks tying implementations to them.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - database.Connector: lazily opened GORM handle (internal/database/database.go)
//   - breeds.Reader: breed catalog reads, served by Repository and CachedRepository
//     (internal/database/breeds)
//   - services.SightingStore: sighting persistence (internal/services/interfaces.go)
//   - http.BreedReader, http.SightingService, http.Pinger (internal/http/stores.go)
//
// ## External Service Interfaces
//
//   - images.Lookup: page image lookup, implemented by wikipedia.Client
//     (internal/images/resolver.go)
//   - http.ImageResolver, tasks.ImageResolver, tasks.ImageCache: breed image
//     resolution, implemented by images.Resolver
//
// ## Background Work
//
//   - http.TaskQueue, tasks.TaskAdder: backlite task submission, implemented by tasks.Client
//
// ## Observability
//
//   - wikipedia.Recorder, images.Recorder, services.SightingRecorder,
//     tasks.TaskRecorder: implemented by *metrics.Metrics, whose methods accept a
//     nil receiver
//
// # Adding a New Image Source
//
// To resolve breed images from a source other than Wikipedia:
//
//  1. Implement images.Lookup in its own package:
//
//     type CommonsClient struct {
//         httpClient *http.Client
//     }
//
//     func (c *CommonsClient) LookupImage(ctx context.Context, title string) (string, error)
//
//  2. Return wikipedia.ErrNotFound-style sentinels for misses; the resolver
//     treats any error as "no image".
//
//  3. Pass it to images.NewResolver in entrypoint.go and add a check here:
//
//     var _ images.Lookup = (*commons.CommonsClient)(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the full list.
package interfaces
