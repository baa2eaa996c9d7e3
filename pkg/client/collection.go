package client

import (
	"context"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/apidashio/apidash/pkg/model"
)

// EndpointFields are the caller-supplied fields of an endpoint row.
type EndpointFields struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	Method    string `json:"method"`
	RateLimit int    `json:"rate_limit,omitempty"`
}

// EndpointUpdateFields is a partial update; nil fields are left untouched.
type EndpointUpdateFields struct {
	Name      *string `json:"name,omitempty"`
	Path      *string `json:"path,omitempty"`
	Method    *string `json:"method,omitempty"`
	Status    *string `json:"status,omitempty"`
	RateLimit *int    `json:"rate_limit,omitempty"`
}

// Stats aggregates a collection's rows. Always recomputed from the held
// list, never cached.
type Stats struct {
	Count         int
	ActiveCount   int
	TotalRequests int64
	AvgLatencyMs  float64
	AvgErrorRate  float64
}

// fetchCall tracks one in-flight fetch so concurrent callers can join it.
type fetchCall struct {
	done chan struct{}
	err  error
}

// Collection owns an in-memory list of the caller's endpoint rows and keeps
// it consistent with the server. All list access goes through one mutex;
// mutations update the list optimistically from the server's response rather
// than triggering a refetch.
type Collection struct {
	client *Client

	mu       sync.Mutex
	rows     []model.Endpoint
	inflight *fetchCall
}

// NewCollection creates a collection backed by the given client.
func NewCollection(client *Client) *Collection {
	return &Collection{client: client}
}

// Fetch replaces the list with the server's current page of rows. A fetch
// already in flight is joined: the second caller blocks until the live
// request lands and observes its result instead of issuing a duplicate.
func (c *Collection) Fetch(ctx context.Context) error {
	c.mu.Lock()
	if call := c.inflight; call != nil {
		c.mu.Unlock()
		select {
		case <-call.done:
			return call.err
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	call := &fetchCall{done: make(chan struct{})}
	c.inflight = call
	c.mu.Unlock()

	var rows []model.Endpoint
	err := c.client.do(ctx, http.MethodGet, "/endpoints", nil, &rows)

	c.mu.Lock()
	if err == nil {
		c.rows = rows
	}
	call.err = err
	c.inflight = nil
	close(call.done)
	c.mu.Unlock()

	return err
}

// Create validates the fields, creates the row remotely, and appends the
// server's row to the list exactly once. The list is untouched on failure.
func (c *Collection) Create(ctx context.Context, fields EndpointFields) (*model.Endpoint, error) {
	if fields.Name == "" || fields.Path == "" {
		return nil, &ValidationError{Message: "name and path are required"}
	}
	if fields.Method == "" {
		fields.Method = http.MethodGet
	}

	var created model.Endpoint
	if err := c.client.do(ctx, http.MethodPost, "/endpoints", fields, &created); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.upsertLocked(created)
	c.mu.Unlock()
	return &created, nil
}

// Update applies a partial update remotely and replaces the row in place.
func (c *Collection) Update(ctx context.Context, id uuid.UUID, fields EndpointUpdateFields) (*model.Endpoint, error) {
	var updated model.Endpoint
	if err := c.client.do(ctx, http.MethodPatch, "/endpoints/"+id.String(), fields, &updated); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.upsertLocked(updated)
	c.mu.Unlock()
	return &updated, nil
}

// Remove soft-deletes the row remotely, then drops it from the local list
// for immediate feedback. No refetch.
func (c *Collection) Remove(ctx context.Context, id uuid.UUID) error {
	if err := c.client.do(ctx, http.MethodDelete, "/endpoints/"+id.String(), nil, nil); err != nil {
		return err
	}

	c.mu.Lock()
	for i := range c.rows {
		if c.rows[i].ID == id {
			c.rows = append(c.rows[:i], c.rows[i+1:]...)
			break
		}
	}
	c.mu.Unlock()
	return nil
}

// upsertLocked replaces the row with the same id, or appends. Callers hold
// the mutex.
func (c *Collection) upsertLocked(row model.Endpoint) {
	for i := range c.rows {
		if c.rows[i].ID == row.ID {
			c.rows[i] = row
			return
		}
	}
	c.rows = append(c.rows, row)
}

// Rows returns a copy of the current list.
func (c *Collection) Rows() []model.Endpoint {
	c.mu.Lock()
	defer c.mu.Unlock()
	rows := make([]model.Endpoint, len(c.rows))
	copy(rows, c.rows)
	return rows
}

// Stats computes aggregates over the current list. An empty list reports
// zeros, never NaN.
func (c *Collection) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := Stats{Count: len(c.rows)}
	var latencySum, errorRateSum float64
	for _, row := range c.rows {
		if row.IsActive() {
			stats.ActiveCount++
		}
		stats.TotalRequests += row.TotalRequests
		latencySum += row.AvgLatencyMs
		errorRateSum += row.ErrorRate
	}
	if stats.Count > 0 {
		stats.AvgLatencyMs = latencySum / float64(stats.Count)
		stats.AvgErrorRate = errorRateSum / float64(stats.Count)
	}
	return stats
}
