package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/dogspotter/internal/entities"
	"github.com/mrlokans/dogspotter/internal/services"
)

type sightingList struct {
	Sightings []entities.Sighting `json:"sightings"`
	Count     int                 `json:"count"`
}

func TestSightingsController_CreateAndList(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, "POST", "/api/sightings", map[string]any{
		"breed_id":   "6",
		"dog_name":   "Hachi",
		"photo_uris": []string{"file:///hachi.jpg"},
		"timestamp":  1000,
		"latitude":   35.6,
		"longitude":  139.7,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[entities.Sighting](t, w)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Hachi", created.DogName)

	w = env.do(t, "POST", "/api/sightings", map[string]any{
		"photo_uris": []string{"file:///stray.jpg"},
		"timestamp":  2000,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, entities.DefaultDogName, decode[entities.Sighting](t, w).DogName)

	w = env.do(t, "GET", "/api/sightings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[sightingList](t, w)
	require.Equal(t, 2, list.Count)
	assert.Equal(t, int64(2000), list.Sightings[0].Timestamp)
	assert.Equal(t, int64(1000), list.Sightings[1].Timestamp)
	assert.Nil(t, list.Sightings[0].BreedID)
}

func TestSightingsController_Validation(t *testing.T) {
	env := setupTestEnv(t)

	tests := []struct {
		name string
		body any
	}{
		{"missing photo", map[string]any{"dog_name": "Rex"}},
		{"half a coordinate", map[string]any{"photo_uris": []string{"p"}, "latitude": 1.5}},
		{"unknown breed", map[string]any{"photo_uris": []string{"p"}, "breed_id": "999"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, "POST", "/api/sightings", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decode[ErrorResponse](t, w)
			assert.Equal(t, "validation_failed", resp.Code)
		})
	}

	t.Run("malformed body", func(t *testing.T) {
		w := env.do(t, "POST", "/api/sightings", "not an object")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSightingsController_Stats(t *testing.T) {
	env := setupTestEnv(t)

	for _, breedID := range []string{"6", "6", "10"} {
		w := env.do(t, "POST", "/api/sightings", map[string]any{
			"breed_id":   breedID,
			"photo_uris": []string{"p"},
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := env.do(t, "GET", "/api/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, services.Stats{Sightings: 3, UniqueBreeds: 2, TotalBreeds: 3}, decode[services.Stats](t, w))
}
