package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesaYaDash/internal/app"
	"mesaYaDash/internal/config"
	"mesaYaDash/internal/platform/export"
	"mesaYaDash/internal/shared/forms"
)

func testCLI(t *testing.T, backend http.Handler) *cli {
	t.Helper()
	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	cfg := &config.Config{
		REST:    config.RESTConfig{BaseURL: server.URL, Timeout: time.Second},
		Cache:   config.CacheConfig{StaleTime: time.Minute},
		Sources: config.SourcesConfig{CRM: "clients", Messaging: "whatsapp"},
		Metrics: config.MetricsConfig{Namespace: "test"},
	}
	services, err := app.NewServices(cfg, prometheus.NewRegistry())
	require.NoError(t, err)
	return &cli{cfg: cfg, services: services}
}

func run(t *testing.T, cl *cli, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(cl)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestTablesStatusPrintsBeforeAndAfter(t *testing.T) {
	var patched atomic.Int32
	cl := testCLI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/mobile/tables":
			_, _ = w.Write([]byte(`[{"id":"T-1","nombre":"1","zona":"terraza","capacidad_min":2,"capacidad_max":4,"estado":"libre"}]`))
		case r.Method == http.MethodPatch && r.URL.Path == "/api/mobile/tables/T-1/status":
			patched.Add(1)
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	out, err := run(t, cl, "tables", "status", "T-1", "occupied")
	require.NoError(t, err)
	assert.Equal(t, "T-1: Libre -> Ocupada\n", out)
	assert.Equal(t, int32(1), patched.Load())
}

func TestTablesStatusRejectsUnknownStatus(t *testing.T) {
	cl := testCLI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))

	_, err := run(t, cl, "tables", "status", "T-1", "rota")
	assert.ErrorContains(t, err, "invalid table status")
}

func TestReservationsCreateValidatesBeforeSending(t *testing.T) {
	var calls atomic.Int32
	cl := testCLI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusCreated)
	}))

	_, err := run(t, cl, "reservations", "create", "--name", "Ana", "--phone", "123", "--date", "2024-05-10", "--time", "21:30")
	verr, ok := forms.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "phone")
	assert.Zero(t, calls.Load())
}

func TestActivityExportWritesEveryPage(t *testing.T) {
	cl := testCLI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/activity", r.URL.Path)
		if r.URL.Query().Get("page") == "1" {
			_, _ = w.Write([]byte(`{"items":[{"id":1,"entity":"mesa","action":"status","detail":"libre, ocupada"}],"total":2}`))
			return
		}
		_, _ = w.Write([]byte(`{"items":[{"id":2,"entity":"reserva","action":"created"}],"total":2}`))
	}))

	file := filepath.Join(t.TempDir(), "activity.csv")
	out, err := run(t, cl, "activity", "export", "--out", file)
	require.NoError(t, err)
	assert.Contains(t, out, "exported 2 rows to "+file)

	f, err := os.Open(file)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "id", records[0][0])
	assert.Equal(t, "tables", records[1][3])
	assert.Equal(t, "libre, ocupada", records[1][6])
	assert.Equal(t, "reservations", records[2][3])
}

func TestExportToS3RequiresBucket(t *testing.T) {
	cl := testCLI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[],"total":0}`))
	}))

	_, err := run(t, cl, "messages", "export", "--s3")
	assert.ErrorIs(t, err, export.ErrMissingBucket)
}

func TestCollectPagesStopsOnEmptyPage(t *testing.T) {
	calls := 0
	items, err := collectPages(50, func(page int) ([]int, int, error) {
		calls++
		if page > 2 {
			return nil, 100, nil
		}
		return []int{page}, 100, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, items)
	assert.Equal(t, 3, calls)
}

func TestCollectPagesKeepsReadingFullPagesWithoutTotal(t *testing.T) {
	rows := make([]int, 450)
	items, err := collectPages(200, func(page int) ([]int, int, error) {
		start := min((page-1)*200, len(rows))
		end := min(start+200, len(rows))
		chunk := rows[start:end]
		return chunk, len(chunk), nil
	})
	require.NoError(t, err)
	assert.Len(t, items, 450)
}

func TestReservationsExportReadsEveryBareArrayPage(t *testing.T) {
	const stored = 450
	cl := testCLI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/reservations", r.URL.Path)
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		start := min((page-1)*limit, stored)
		end := min(start+limit, stored)
		rows := make([]map[string]any, 0, end-start)
		for i := start; i < end; i++ {
			rows = append(rows, map[string]any{"id": i + 1, "customer_name": "Ana", "date": "2024-05-10", "time": "21:30", "party_size": 2})
		}
		_ = json.NewEncoder(w).Encode(rows)
	}))

	file := filepath.Join(t.TempDir(), "reservations.csv")
	out, err := run(t, cl, "reservations", "export", "--date", "2024-05-10", "--out", file)
	require.NoError(t, err)
	assert.Contains(t, out, "exported 450 rows")

	f, err := os.Open(file)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, stored+1)
	assert.Equal(t, "450", records[stored][0])
}

func TestVersionShort(t *testing.T) {
	out, err := run(t, &cli{}, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)
}
