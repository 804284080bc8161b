package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/dogspotter/internal/database"
	"github.com/mrlokans/dogspotter/internal/database/breeds"
	"github.com/mrlokans/dogspotter/internal/database/sightings"
	"github.com/mrlokans/dogspotter/internal/entities"
	"github.com/mrlokans/dogspotter/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubResolver maps breed names to fixed paths.
type stubResolver struct {
	mu    sync.Mutex
	paths map[string]string
	calls []string
}

func (s *stubResolver) Resolve(_ context.Context, name string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, name)
	if p, ok := s.paths[name]; ok {
		return []string{p}
	}
	return []string{}
}

func testBreeds() []entities.Breed {
	return []entities.Breed{
		{ID: "6", Name: "Akita", AltNames: entities.StringList{"Akita Inu"}, Origin: "Japan", Size: entities.SizeGiant, CoatLength: "short", Ears: "pricked"},
		{ID: "10", Name: "Beagle", Size: entities.SizeSmall, CoatLength: "short", Ears: "droopy"},
		{ID: "31", Name: "Cavalier King Charles Spaniel", Size: entities.SizeSmall, CoatLength: "long", Ears: "droopy"},
	}
}

type testEnv struct {
	router   *gin.Engine
	db       *database.Database
	resolver *stubResolver
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := database.NewDatabase(filepath.Join(t.TempDir(), "http.db"))
	t.Cleanup(func() { db.Close() })

	_, err := db.Initialize(context.Background(), testBreeds())
	require.NoError(t, err)

	breedRepo := breeds.NewRepository(db)
	resolver := &stubResolver{paths: map[string]string{}}

	router := NewRouter(RouterConfig{
		Breeds:           breedRepo,
		Sightings:        services.NewSightingService(breedRepo, sightings.NewRepository(db), nil),
		Database:         db,
		Images:           resolver,
		ThumbnailMaxSize: 64,
		Version:          "test",
	})

	return &testEnv{router: router, db: db, resolver: resolver}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
