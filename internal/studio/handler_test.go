package studio_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fullstack-starter/internal/logger"
	"fullstack-starter/internal/studio"
)

type fakeInspector struct{}

func (fakeInspector) Tables(context.Context) ([]string, error) {
	return []string{"items", "users"}, nil
}

func (fakeInspector) Columns(_ context.Context, table string) ([]studio.ColumnInfo, error) {
	return []studio.ColumnInfo{
		{Name: "id", Type: "bigint", Nullable: "NO", Default: "nextval(...)"},
		{Name: "email", Type: "character varying", Nullable: "NO"},
	}, nil
}

func (fakeInspector) Rows(_ context.Context, table string, limit int) (*studio.RowSet, error) {
	return &studio.RowSet{
		Columns: []string{"id", "email"},
		Rows:    [][]string{{"1", "alice@example.com"}},
	}, nil
}

func newStudioServer(t *testing.T) *httptest.Server {
	t.Helper()

	handler := &studio.Handler{
		Inspector: fakeInspector{},
		Logger:    logger.NewConsoleLogger(),
		RowLimit:  50,
	}

	r := chi.NewRouter()
	handler.RegisterRoutes(r)

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts
}

func TestIndexListsTables(t *testing.T) {
	ts := newStudioServer(t)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := readBody(t, resp)
	assert.Contains(t, body, `href="/tables/users"`)
	assert.Contains(t, body, `href="/tables/items"`)
}

func TestTablePage(t *testing.T) {
	ts := newStudioServer(t)

	resp, err := http.Get(ts.URL + "/tables/users")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := readBody(t, resp)
	assert.Contains(t, body, "<h1>users</h1>")
	assert.Contains(t, body, "alice@example.com")
	assert.Contains(t, body, "character varying")
}

func TestUnknownTableIs404(t *testing.T) {
	ts := newStudioServer(t)

	resp, err := http.Get(ts.URL + "/tables/secrets")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}
