package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReorderer_MoveAppliesAndPersists(t *testing.T) {
	var persisted []string
	r := NewReorderer([]string{"a", "b", "c", "d"}, func(_ context.Context, movedID string, to int, orderedIDs []string) ([]string, error) {
		assert.Equal(t, "d", movedID)
		assert.Equal(t, 0, to)
		persisted = orderedIDs
		return orderedIDs, nil
	})

	order, err := r.Move(context.Background(), "d", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"d", "a", "b", "c"}, order)
	assert.Equal(t, []string{"d", "a", "b", "c"}, persisted)
	assert.Equal(t, []string{"d", "a", "b", "c"}, r.Order())
}

func TestReorderer_RollsBackOnFailure(t *testing.T) {
	r := NewReorderer([]string{"a", "b", "c"}, func(context.Context, string, int, []string) ([]string, error) {
		return nil, errors.New("server rejected the order")
	})

	order, err := r.Move(context.Background(), "c", 0)
	require.Error(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, []string{"a", "b", "c"}, r.Order())
}

func TestReorderer_AdoptsCanonicalOrder(t *testing.T) {
	r := NewReorderer([]string{"a", "b", "c"}, func(context.Context, string, int, []string) ([]string, error) {
		// Server interleaves an element this client had not seen yet.
		return []string{"b", "x", "a", "c"}, nil
	})

	order, err := r.Move(context.Background(), "b", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "x", "a", "c"}, order)
}

func TestReorderer_RejectsOverlappingMoves(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var startedOnce sync.Once
	r := NewReorderer([]string{"a", "b"}, func(context.Context, string, int, []string) ([]string, error) {
		startedOnce.Do(func() { close(started) })
		<-release
		return nil, nil
	})

	done := make(chan error, 1)
	go func() {
		_, err := r.Move(context.Background(), "b", 0)
		done <- err
	}()

	<-started
	_, err := r.Move(context.Background(), "a", 1)
	assert.ErrorIs(t, err, ErrReorderInFlight)

	close(release)
	require.NoError(t, <-done)

	// The guard lifts once the first move resolves.
	_, err = r.Move(context.Background(), "a", 1)
	assert.NoError(t, err)
}

func TestReorderer_RejectsBadMoves(t *testing.T) {
	r := NewReorderer([]string{"a", "b"}, func(context.Context, string, int, []string) ([]string, error) {
		t.Fatal("persist should not run")
		return nil, nil
	})

	order, err := r.Move(context.Background(), "missing", 0)
	assert.Error(t, err)
	assert.Equal(t, []string{"a", "b"}, order)

	order, err = r.Move(context.Background(), "a", 5)
	assert.Error(t, err)
	assert.Equal(t, []string{"a", "b"}, order)
}

func TestFieldReorderer_PersistsFullOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/collections/col1/fields/order", r.URL.Path)
		require.Equal(t, http.MethodPut, r.Method)

		var body struct {
			FieldIDs []string `json:"field_ids"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"f2", "f1", "f3"}, body.FieldIDs)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"fields": []map[string]interface{}{
				{"id": "f2", "position": 1},
				{"id": "f1", "position": 2},
				{"id": "f3", "position": 3},
			},
		})
	}))
	defer server.Close()

	c, err := New(server.URL, WithAccessToken("token"))
	require.NoError(t, err)

	r := c.FieldReorderer("col1", []string{"f1", "f2", "f3"})
	order, err := r.Move(context.Background(), "f2", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"f2", "f1", "f3"}, order)
}

func TestImageReorderer_PersistsMovedIndex(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/items/item1/images/img3/position", r.URL.Path)

		var body struct {
			Position int `json:"position"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 0, body.Position)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"images": []map[string]interface{}{
				{"id": "img3", "position": 0},
				{"id": "img1", "position": 1},
				{"id": "img2", "position": 2},
			},
		})
	}))
	defer server.Close()

	c, err := New(server.URL, WithAccessToken("token"))
	require.NoError(t, err)

	r := c.ImageReorderer("item1", []string{"img1", "img2", "img3"})
	order, err := r.Move(context.Background(), "img3", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"img3", "img1", "img2"}, order)
}
