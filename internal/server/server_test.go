package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fullstack-starter/internal/config"
	"fullstack-starter/internal/items"
	itemdb "fullstack-starter/internal/items/db"
	"fullstack-starter/internal/logger"
	"fullstack-starter/internal/schema"
	"fullstack-starter/internal/server"
	"fullstack-starter/internal/users"
	userdb "fullstack-starter/internal/users/db"
)

func newTestServer(t *testing.T) *server.Server {
	t.Helper()

	bunDB := newTestBunDB(t)
	t.Cleanup(func() { bunDB.Close() })

	for _, model := range schema.Models() {
		require.NoError(t, bunDB.ResetModel(context.Background(), model))
	}

	cfg := &config.Config{}
	cfg.Server.Port = "0"

	return server.New(cfg, logger.NewConsoleLogger(), bunDB,
		users.NewUserService(&userdb.DB{Bun: bunDB}),
		items.NewItemService(&itemdb.DB{Bun: bunDB}))
}

func TestRouterHealthRoute(t *testing.T) {
	srv := newTestServer(t)

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUserLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	body, _ := json.Marshal(map[string]string{"email": "alice@example.com", "name": "Alice"})
	resp, err := http.Post(ts.URL+"/api/users", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Duplicate email must surface as a conflict, enforced by the database.
	resp, err = http.Post(ts.URL+"/api/users", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/api/users/9999")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestItemRoutes(t *testing.T) {
	srv := newTestServer(t)

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	body, _ := json.Marshal(map[string]string{"name": "widget"})
	resp, err := http.Post(ts.URL+"/api/items", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/items/widget", nil)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
