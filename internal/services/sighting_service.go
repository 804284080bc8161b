package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/dogspotter/internal/entities"
)

// ErrInvalidSighting is returned when a sighting fails validation.
var ErrInvalidSighting = errors.New("invalid sighting")

// SightingInput is a sighting as submitted by a client. Blank fields are
// filled with defaults by RecordSighting.
type SightingInput struct {
	ID        string   `json:"id"`
	BreedID   string   `json:"breed_id"`
	DogName   string   `json:"dog_name"`
	PhotoURIs []string `json:"photo_uris"`
	Timestamp int64    `json:"timestamp"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Notes     string   `json:"notes"`
}

// SightingService records sightings and reports log statistics.
type SightingService struct {
	breeds    BreedReader
	sightings SightingStore
	recorder  SightingRecorder
	now       func() time.Time
	newID     func() string
	log       *logrus.Entry
}

// NewSightingService creates a sighting service. recorder may be nil.
func NewSightingService(breeds BreedReader, sightings SightingStore, recorder SightingRecorder) *SightingService {
	return &SightingService{
		breeds:    breeds,
		sightings: sightings,
		recorder:  recorder,
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
		log:       logrus.WithField("component", "sightings"),
	}
}

// ListSightings returns the log, most recent first.
func (s *SightingService) ListSightings(ctx context.Context) ([]entities.Sighting, error) {
	return s.sightings.ListSightings(ctx)
}

// RecordSighting applies defaults, validates and stores a sighting.
//
// A blank id gets a random UUID, a blank dog name becomes "Unnamed Dog" and a
// zero timestamp becomes the current time. At least one photo is required.
// Coordinates must be given together and lie within valid ranges. A non-empty
// breed id must refer to a breed currently in the catalog.
func (s *SightingService) RecordSighting(ctx context.Context, in SightingInput) (*entities.Sighting, error) {
	sighting, err := s.build(in)
	if err != nil {
		return nil, err
	}

	if sighting.BreedID != nil {
		breed, err := s.breeds.GetBreed(ctx, *sighting.BreedID)
		if err != nil {
			return nil, fmt.Errorf("check breed: %w", err)
		}
		if breed == nil {
			return nil, fmt.Errorf("%w: unknown breed %q", ErrInvalidSighting, *sighting.BreedID)
		}
	}

	if err := s.sightings.AddSighting(ctx, sighting); err != nil {
		return nil, err
	}
	if s.recorder != nil {
		s.recorder.RecordSighting()
	}

	s.log.WithFields(logrus.Fields{
		"id":       sighting.ID,
		"breed_id": in.BreedID,
	}).Info("Recorded sighting")

	return sighting, nil
}

func (s *SightingService) build(in SightingInput) (*entities.Sighting, error) {
	photos := make(entities.StringList, 0, len(in.PhotoURIs))
	for _, uri := range in.PhotoURIs {
		if uri = strings.TrimSpace(uri); uri != "" {
			photos = append(photos, uri)
		}
	}
	if len(photos) == 0 {
		return nil, fmt.Errorf("%w: a photo is required", ErrInvalidSighting)
	}

	if (in.Latitude == nil) != (in.Longitude == nil) {
		return nil, fmt.Errorf("%w: latitude and longitude must be given together", ErrInvalidSighting)
	}
	if in.Latitude != nil {
		if *in.Latitude < -90 || *in.Latitude > 90 {
			return nil, fmt.Errorf("%w: latitude %v out of range", ErrInvalidSighting, *in.Latitude)
		}
		if *in.Longitude < -180 || *in.Longitude > 180 {
			return nil, fmt.Errorf("%w: longitude %v out of range", ErrInvalidSighting, *in.Longitude)
		}
	}
	if in.Timestamp < 0 {
		return nil, fmt.Errorf("%w: negative timestamp", ErrInvalidSighting)
	}

	sighting := &entities.Sighting{
		ID:        strings.TrimSpace(in.ID),
		DogName:   strings.TrimSpace(in.DogName),
		PhotoURIs: photos,
		Timestamp: in.Timestamp,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		Notes:     in.Notes,
	}
	if sighting.ID == "" {
		sighting.ID = s.newID()
	}
	if sighting.DogName == "" {
		sighting.DogName = entities.DefaultDogName
	}
	if sighting.Timestamp == 0 {
		sighting.Timestamp = s.now().UnixMilli()
	}
	if breedID := strings.TrimSpace(in.BreedID); breedID != "" {
		sighting.BreedID = &breedID
	}
	return sighting, nil
}

// Stats counts sightings, distinct sighted breeds and catalog size.
func (s *SightingService) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	var err error

	if stats.Sightings, err = s.sightings.CountSightings(ctx); err != nil {
		return Stats{}, err
	}
	if stats.UniqueBreeds, err = s.sightings.CountDistinctBreeds(ctx); err != nil {
		return Stats{}, err
	}
	if stats.TotalBreeds, err = s.breeds.CountBreeds(ctx); err != nil {
		return Stats{}, err
	}
	return stats, nil
}
