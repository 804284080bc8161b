package entities

// Size is the categorical weight bucket of a breed.
type Size string

const (
	SizeToy    Size = "toy"
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
	SizeGiant  Size = "giant"
)

// Sizes lists every size bucket from smallest to largest.
var Sizes = []Size{SizeToy, SizeSmall, SizeMedium, SizeLarge, SizeGiant}

// Defaults applied when the reference dataset lacks an attribute.
const (
	DefaultOrigin     = "Unknown"
	DefaultCoatLength = "short"
	DefaultCoatType   = "smooth"
	DefaultEars       = "droopy"
	DefaultTail       = "straight"
)

// Breed is a reference catalog entry. Rows are only written by the store synchronizer.
type Breed struct {
	ID          string     `gorm:"primaryKey;size:64" json:"id"`
	Name        string     `gorm:"not null;index;size:256" json:"name"`
	AltNames    StringList `gorm:"column:alt_names" json:"alt_names"`
	Origin      string     `gorm:"size:256" json:"origin"`
	Size        Size       `gorm:"size:16;index" json:"size"`
	CoatLength  string     `gorm:"size:32" json:"coat_length"`
	CoatType    string     `gorm:"size:64" json:"coat_type"`
	Colors      StringList `gorm:"column:colors" json:"colors"`
	Ears        string     `gorm:"size:32" json:"ears"`
	Tail        string     `gorm:"size:32" json:"tail"`
	Temperament StringList `gorm:"column:temperament" json:"temperament"`
	Description string     `gorm:"type:text" json:"description"`
}

func (Breed) TableName() string {
	return "breeds"
}
