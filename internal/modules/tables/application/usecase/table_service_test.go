package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesaYaDash/internal/modules/tables/domain"
	"mesaYaDash/internal/modules/tables/infrastructure"
	"mesaYaDash/internal/platform/querycache"
	"mesaYaDash/internal/platform/rest"
	"mesaYaDash/internal/shared/forms"
)

type floorBackend struct {
	mu          sync.Mutex
	statuses    map[string]string
	failStatus  bool
	lists       int
	patches     int
	creates     int
	cacheDuring func()
}

func (b *floorBackend) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/mobile/tables":
			b.lists++
			rows := []map[string]any{
				{"id": "T-1", "nombre": "1", "zona": "terraza", "capacidad_min": 2, "capacidad_max": 4, "estado": b.statuses["T-1"]},
				{"id": "T-2", "nombre": "2", "zona": "salon", "capacidad_min": 4, "capacidad_max": 6, "estado": b.statuses["T-2"]},
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"mesas": rows})
		case r.Method == http.MethodPatch:
			b.patches++
			if b.cacheDuring != nil {
				b.cacheDuring()
			}
			if b.failStatus {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			b.statuses[r.PathValue("id")] = body["estado"]
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodPost && r.URL.Path == "/api/tables":
			b.creates++
			raw, _ := io.ReadAll(r.Body)
			var body map[string]any
			_ = json.Unmarshal(raw, &body)
			body["id"] = 3
			_ = json.NewEncoder(w).Encode(body)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func newFloor(t *testing.T, backend *floorBackend) (*Service, *querycache.Cache) {
	t.Helper()
	mux := http.NewServeMux()
	mux.Handle("PATCH /api/mobile/tables/{id}/status", backend.handler(t))
	mux.Handle("/", backend.handler(t))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cache := querycache.New(querycache.WithStaleTime(time.Minute))
	return NewService(infrastructure.NewHTTPGateway(rest.NewClient(srv.URL, time.Second)), cache), cache
}

func TestChangeStatusRevertsOnServerError(t *testing.T) {
	backend := &floorBackend{statuses: map[string]string{"T-1": "libre", "T-2": "libre"}, failStatus: true}
	service, cache := newFloor(t, backend)

	tables, err := service.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.StatusFree, tables[0].Status)

	var during []domain.Table
	backend.cacheDuring = func() { during, _ = querycache.Cached[[]domain.Table](cache, ListKey) }

	_, err = service.ChangeStatus(context.Background(), domain.UpdateStatusCommand{ID: "T-1", Status: "Ocupada"})
	require.Error(t, err)
	apiErr, ok := rest.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "Internal Server Error", apiErr.Error())

	require.Len(t, during, 2)
	assert.Equal(t, domain.StatusOccupied, during[0].Status)
	assert.Equal(t, domain.StatusFree, during[1].Status)

	after, err := service.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFree, after[0].Status)
	assert.Equal(t, domain.StatusFree, after[1].Status)
	assert.Equal(t, 1, backend.lists, "revert must not refetch")
	assert.Equal(t, 1, backend.patches, "failed mutation must not be retried")
}

func TestChangeStatusSuccessReconcilesWithServer(t *testing.T) {
	backend := &floorBackend{statuses: map[string]string{"T-1": "libre", "T-2": "reservada"}}
	service, _ := newFloor(t, backend)

	_, err := service.List(context.Background())
	require.NoError(t, err)

	change, err := service.ChangeStatus(context.Background(), domain.UpdateStatusCommand{ID: "T-1", Status: "ocupada"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFree, change.Before.Status)
	assert.Equal(t, domain.StatusOccupied, change.After.Status)
	assert.Equal(t, "terraza", change.After.Location)

	tables, err := service.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, backend.lists)
	assert.Equal(t, domain.StatusOccupied, tables[0].Status)
	assert.Equal(t, domain.StatusReserved, tables[1].Status)
}

func TestChangeStatusRejectsUnknownStatus(t *testing.T) {
	backend := &floorBackend{statuses: map[string]string{}}
	service, _ := newFloor(t, backend)

	_, err := service.ChangeStatus(context.Background(), domain.UpdateStatusCommand{ID: "T-1", Status: "limpieza"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	_, err = service.ChangeStatus(context.Background(), domain.UpdateStatusCommand{Status: "libre"})
	assert.ErrorIs(t, err, domain.ErrMissingID)
	assert.Zero(t, backend.patches)
}

func TestCreateValidatesBeforeSending(t *testing.T) {
	backend := &floorBackend{statuses: map[string]string{}}
	service, _ := newFloor(t, backend)

	_, err := service.Create(context.Background(), domain.TableForm{Number: "", Capacity: 40})
	verr, ok := forms.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "numero")
	assert.Contains(t, verr.Fields, "capacidad")
	assert.Zero(t, backend.creates)

	table, err := service.Create(context.Background(), domain.TableForm{Number: "12", Location: "barra", Capacity: 2, MaxCapacity: 3})
	require.NoError(t, err)
	assert.Equal(t, "3", table.ID)
	assert.Equal(t, "barra", table.Location)
	assert.Equal(t, 1, backend.creates)
}

func TestGetMissingTable(t *testing.T) {
	backend := &floorBackend{statuses: map[string]string{"T-1": "libre"}}
	service, _ := newFloor(t, backend)

	_, err := service.Get(context.Background(), "T-404")
	assert.True(t, errors.Is(err, domain.ErrTableNotFound))
}
