package http

import (
	"net/http"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/dogspotter/internal/tasks"
)

func setupTasksRouter(t *testing.T) *gin.Engine {
	t.Helper()
	client, err := tasks.NewClient(filepath.Join(t.TempDir(), "main.db"), tasks.DefaultConfig())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	// Registered but never started, so enqueued tasks stay pending.
	client.Register(tasks.NewPrefetchAllImagesQueue(nil, nil, client, nil))

	return NewRouter(RouterConfig{TaskQueue: client})
}

func TestTasksController_PrefetchImages(t *testing.T) {
	router := setupTasksRouter(t)
	env := &testEnv{router: router}

	w := env.do(t, "POST", "/api/tasks/prefetch-images", nil)
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

	resp := decode[struct {
		Message string `json:"message"`
		Data    struct {
			TaskID string `json:"task_id"`
			Type   string `json:"type"`
		} `json:"data"`
	}](t, w)
	assert.Equal(t, "task enqueued", resp.Message)
	assert.Equal(t, tasks.PrefetchAllImagesQueue, resp.Data.Type)
	require.NotEmpty(t, resp.Data.TaskID)

	w = env.do(t, "GET", "/api/tasks/"+resp.Data.TaskID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id": "`+resp.Data.TaskID+`", "status": "pending"}`, w.Body.String())
}

func TestTasksController_UnknownTask(t *testing.T) {
	env := &testEnv{router: setupTasksRouter(t)}

	w := env.do(t, "GET", "/api/tasks/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTaskStatusToString(t *testing.T) {
	assert.Equal(t, "pending", taskStatusToString(backlite.TaskStatusPending))
	assert.Equal(t, "running", taskStatusToString(backlite.TaskStatusRunning))
	assert.Equal(t, "success", taskStatusToString(backlite.TaskStatusSuccess))
	assert.Equal(t, "failure", taskStatusToString(backlite.TaskStatusFailure))
	assert.Equal(t, "not_found", taskStatusToString(backlite.TaskStatusNotFound))
}
