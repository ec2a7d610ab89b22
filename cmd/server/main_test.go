package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gsdgroup/billing/internal/config"
	"github.com/gsdgroup/billing/internal/middleware"
	"github.com/gsdgroup/billing/internal/storage/sqlite"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg, err := config.Load(context.Background(), envconfig.MapLookuper(map[string]string{
		"BILLING_DATABASE_PATH": filepath.Join(t.TempDir(), "billing.db"),
	}))
	require.NoError(t, err)
	return cfg
}

func TestPipeline(t *testing.T) {
	cfg := testConfig(t)
	store, err := sqlite.New(cfg.Database.Path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	srv := httptest.NewServer(newHandler(cfg, store))
	t.Cleanup(srv.Close)

	resp, err := http.Post(srv.URL+"/accounts", "application/json", strings.NewReader(`{"firstName":"Ada","lastName":"Lovelace"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(body), `billing_http_requests_total{method="POST",route="POST /accounts",status="200"} 1`)
}

func TestPipelineWithoutMetrics(t *testing.T) {
	cfg := testConfig(t)
	cfg.Metrics.Enabled = false
	store, err := sqlite.New(cfg.Database.Path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	rec := httptest.NewRecorder()
	newHandler(cfg, store).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMigrateCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "billing.db")
	t.Setenv("BILLING_DATABASE_PATH", dbPath)

	root := newRootCmd()
	root.SetArgs([]string{"migrate", "--log-format", "json", "--log-level", "error"})
	require.NoError(t, root.ExecuteContext(context.Background()))

	_, err := os.Stat(dbPath)
	require.NoError(t, err)
}

func TestRootRejectsBadFlags(t *testing.T) {
	t.Setenv("BILLING_DATABASE_PATH", filepath.Join(t.TempDir(), "billing.db"))

	root := newRootCmd()
	root.SetArgs([]string{"migrate", "--log-format", "xml"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	require.ErrorContains(t, root.ExecuteContext(context.Background()), "unknown log format")
}
