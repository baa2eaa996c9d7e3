package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apidashio/apidash/pkg/model"
)

// fakeServer is an in-memory endpoints API for collection tests.
type fakeServer struct {
	mu        sync.Mutex
	rows      []model.Endpoint
	listCalls atomic.Int64
	listDelay time.Duration
}

func (f *fakeServer) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/endpoints", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			f.listCalls.Add(1)
			time.Sleep(f.listDelay)
			f.mu.Lock()
			rows := append([]model.Endpoint(nil), f.rows...)
			f.mu.Unlock()
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(rows)

		case http.MethodPost:
			var fields EndpointFields
			_ = json.NewDecoder(r.Body).Decode(&fields)
			row := model.Endpoint{
				ID:     uuid.New(),
				Name:   fields.Name,
				Path:   fields.Path,
				Method: fields.Method,
				Status: model.EndpointStatusActive,
			}
			f.mu.Lock()
			f.rows = append(f.rows, row)
			f.mu.Unlock()
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(row)

		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/endpoints/", func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.URL.Path[len("/endpoints/"):])
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if r.Method != http.MethodDelete {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		f.mu.Lock()
		defer f.mu.Unlock()
		for i := range f.rows {
			if f.rows[i].ID == id {
				f.rows = append(f.rows[:i], f.rows[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]map[string]string{
			"error": {"message": "endpoint not found"},
		})
	})

	return mux
}

func newTestCollection(t *testing.T, fake *fakeServer) *Collection {
	t.Helper()
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)
	return NewCollection(New(srv.URL, "test-token"))
}

func TestCreateValidation(t *testing.T) {
	fake := &fakeServer{}
	collection := newTestCollection(t, fake)

	_, err := collection.Create(context.Background(), EndpointFields{Path: "/api/v1/widgets"})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, int64(0), fake.listCalls.Load())
	assert.Empty(t, collection.Rows(), "failed create must not touch the list")
}

func TestCreateAppendsOnce(t *testing.T) {
	fake := &fakeServer{}
	collection := newTestCollection(t, fake)
	ctx := context.Background()

	created, err := collection.Create(ctx, EndpointFields{
		Name: "Get Widgets", Path: "/api/v1/widgets", Method: "GET",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, model.EndpointStatusActive, created.Status)

	count := func() int {
		n := 0
		for _, row := range collection.Rows() {
			if row.ID == created.ID {
				n++
			}
		}
		return n
	}
	assert.Equal(t, 1, count(), "created id should be in the list exactly once")

	// A subsequent fetch replaces the list and still yields the id once.
	require.NoError(t, collection.Fetch(ctx))
	assert.Equal(t, 1, count(), "fetched list should still hold the id exactly once")
}

func TestFetchJoinsInflightCall(t *testing.T) {
	fake := &fakeServer{listDelay: 100 * time.Millisecond}
	fake.rows = []model.Endpoint{{ID: uuid.New(), Name: "Get Widgets", Status: model.EndpointStatusActive}}
	collection := newTestCollection(t, fake)

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = collection.Fetch(context.Background())
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "fetch %d", i)
	}
	assert.LessOrEqual(t, fake.listCalls.Load(), int64(2), "concurrent fetches should join, not race")
	assert.Len(t, collection.Rows(), 1)
}

func TestRemoveDropsRowLocally(t *testing.T) {
	fake := &fakeServer{}
	collection := newTestCollection(t, fake)
	ctx := context.Background()

	created, err := collection.Create(ctx, EndpointFields{Name: "Get Widgets", Path: "/api/v1/widgets"})
	require.NoError(t, err)
	require.Len(t, collection.Rows(), 1)

	require.NoError(t, collection.Remove(ctx, created.ID))
	assert.Empty(t, collection.Rows())

	// Second remove: the row is gone server-side, the error propagates and
	// the list is untouched.
	err = collection.Remove(ctx, created.ID)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "endpoint not found", apiErr.Message)
}

func TestStats(t *testing.T) {
	fake := &fakeServer{}
	fake.rows = []model.Endpoint{
		{ID: uuid.New(), Status: model.EndpointStatusActive, TotalRequests: 900, AvgLatencyMs: 120, ErrorRate: 2},
		{ID: uuid.New(), Status: model.EndpointStatusActive, TotalRequests: 80, AvgLatencyMs: 60, ErrorRate: 1},
		{ID: uuid.New(), Status: model.EndpointStatusInactive, TotalRequests: 20, AvgLatencyMs: 30, ErrorRate: 0},
	}
	collection := newTestCollection(t, fake)

	require.NoError(t, collection.Fetch(context.Background()))

	stats := collection.Stats()
	assert.Equal(t, 3, stats.Count)
	assert.Equal(t, 2, stats.ActiveCount)
	assert.Equal(t, int64(1000), stats.TotalRequests)
	assert.Equal(t, 70.0, stats.AvgLatencyMs)
	assert.Equal(t, 1.0, stats.AvgErrorRate)
}

func TestStatsEmptyList(t *testing.T) {
	collection := NewCollection(New("http://localhost", "token"))

	stats := collection.Stats()
	assert.Equal(t, Stats{}, stats)
	assert.NotPanics(t, func() { _ = stats.AvgLatencyMs })
}
