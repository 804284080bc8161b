package entities

// DefaultDogName is used for sightings recorded without a name.
const DefaultDogName = "Unnamed Dog"

// Sighting is a user-recorded encounter with a dog. Sightings are create-only.
//
// BreedID is a weak reference: no foreign key is enforced, and the referenced
// breed may disappear after a catalog sync.
type Sighting struct {
	ID        string     `gorm:"primaryKey;size:64" json:"id"`
	BreedID   *string    `gorm:"column:breed_id;index;size:64" json:"breed_id"`
	DogName   string     `gorm:"column:dog_name;size:256" json:"dog_name"`
	PhotoURIs StringList `gorm:"column:photo_uris" json:"photo_uris"`
	Timestamp int64      `gorm:"column:timestamp;index" json:"timestamp"` // epoch milliseconds
	Latitude  *float64   `gorm:"column:latitude" json:"latitude"`
	Longitude *float64   `gorm:"column:longitude" json:"longitude"`
	Notes     string     `gorm:"column:notes;type:text" json:"notes"`
}

func (Sighting) TableName() string {
	return "sightings"
}

// HasLocation reports whether the sighting carries a coordinate pair.
func (s Sighting) HasLocation() bool {
	return s.Latitude != nil && s.Longitude != nil
}
