package config

// Default paths for local state
const (
	// DefaultDatabasePath is the default path for the catalog and sighting database
	DefaultDatabasePath = "./dogspotter.db"

	// DefaultImageCacheDir is where downloaded breed images are kept
	DefaultImageCacheDir = "./breed_images"

	// DefaultEnvFile is loaded into the environment when present
	DefaultEnvFile = ".env"
)
