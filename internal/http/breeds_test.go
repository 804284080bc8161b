package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/dogspotter/internal/entities"
)

type breedList struct {
	Breeds []entities.Breed `json:"breeds"`
	Count  int              `json:"count"`
}

func names(list []entities.Breed) []string {
	out := make([]string, len(list))
	for i, b := range list {
		out[i] = b.Name
	}
	return out
}

func TestBreedsController_ListBreeds(t *testing.T) {
	env := setupTestEnv(t)

	t.Run("all breeds ordered by name", func(t *testing.T) {
		w := env.do(t, "GET", "/api/breeds", nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode[breedList](t, w)
		assert.Equal(t, 3, resp.Count)
		assert.Equal(t, []string{"Akita", "Beagle", "Cavalier King Charles Spaniel"}, names(resp.Breeds))
	})

	t.Run("search by alternative name", func(t *testing.T) {
		w := env.do(t, "GET", "/api/breeds?q=inu", nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode[breedList](t, w)
		assert.Equal(t, []string{"Akita"}, names(resp.Breeds))
	})

	t.Run("no match is an empty list", func(t *testing.T) {
		w := env.do(t, "GET", "/api/breeds?q=poodle", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"breeds": [], "count": 0}`, w.Body.String())
	})
}

func TestBreedsController_GetBreed(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, "GET", "/api/breeds/6", nil)
	require.Equal(t, http.StatusOK, w.Code)

	breed := decode[entities.Breed](t, w)
	assert.Equal(t, "Akita", breed.Name)
	assert.Equal(t, entities.StringList{"Akita Inu"}, breed.AltNames)
	assert.Contains(t, w.Body.String(), `"colors":[]`)

	w = env.do(t, "GET", "/api/breeds/404", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "breed not found")
}

func TestBreedsController_StorageFailure(t *testing.T) {
	env := setupTestEnv(t)
	conn, err := env.db.Conn(context.Background())
	require.NoError(t, err)
	require.NoError(t, conn.Exec("DROP TABLE breeds").Error)

	w := env.do(t, "GET", "/api/breeds", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error": "internal server error"}`, w.Body.String())
}
