// Package database provides the local data layer for the field guide.
//
// # Architecture
//
// The store is a single SQLite file with two tables:
//
//	database/
//	├── database.go      # Lazy connection, migrations, catalog synchronization
//	├── breeds/          # Read access to the breed catalog
//	└── sightings/       # Create-only sighting log
//
// The breed table is reference data. It is rewritten on every startup by
// Initialize so that it mirrors the bundled dataset exactly. Sightings are
// user data and are never touched by synchronization.
//
// # Using Sub-packages
//
// Repositories receive the Database (or any Connector) instead of a raw
// *gorm.DB, so the connection is only opened when first needed:
//
//	db := database.NewDatabase("./dogspotter.db")
//	if _, err := db.Initialize(ctx, breeds); err != nil {
//		log.Fatal(err)
//	}
//
//	breedsRepo := breeds.NewRepository(db)
//	sightingsRepo := sightings.NewRepository(db)
//
// # List Columns
//
// List-typed fields (alt_names, colors, temperament, photo_uris) are stored as
// JSON text through entities.StringList.
package database
