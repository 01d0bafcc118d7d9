package homeassistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntotao/baby-tracker/internal/domain"
)

const entity = "input_boolean.baby_feeding"

type fakeHA struct {
	mu    sync.Mutex
	state string
	calls []string
}

func (f *fakeHA) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/services/input_boolean/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, entity, body["entity_id"])

		f.mu.Lock()
		defer f.mu.Unlock()
		f.calls = append(f.calls, r.URL.Path)
		if r.URL.Path == "/api/services/input_boolean/turn_on" {
			f.state = "on"
		} else {
			f.state = "off"
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("[]"))
	})
	mux.HandleFunc("/api/states/"+entity, func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		_ = json.NewEncoder(w).Encode(entityState{EntityID: entity, State: f.state})
	})
	return mux
}

func TestClient_Toggle(t *testing.T) {
	t.Parallel()

	ha := &fakeHA{state: "off"}
	srv := httptest.NewServer(ha.handler(t))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "secret", entity, time.Second, nil)
	ctx := context.Background()

	active, err := c.Active(ctx)
	require.NoError(t, err)
	assert.False(t, active)

	require.NoError(t, c.SetActive(ctx, true))
	active, err = c.Active(ctx)
	require.NoError(t, err)
	assert.True(t, active)

	require.NoError(t, c.SetActive(ctx, false))
	assert.Equal(t, []string{
		"/api/services/input_boolean/turn_on",
		"/api/services/input_boolean/turn_off",
	}, ha.calls)
}

func TestClient_Errors(t *testing.T) {
	t.Parallel()

	ha := &fakeHA{}
	srv := httptest.NewServer(ha.handler(t))
	defer srv.Close()
	ctx := context.Background()

	err := NewClient(srv.URL, "wrong", entity, time.Second, nil).SetActive(ctx, true)
	require.ErrorIs(t, err, domain.ErrStorageUnavailable)

	_, err = NewClient(srv.URL, "secret", "input_boolean.missing", time.Second, nil).Active(ctx)
	require.ErrorIs(t, err, domain.ErrNotFound)

	srv.Close()
	_, err = NewClient(srv.URL, "secret", entity, 100*time.Millisecond, nil).Active(ctx)
	require.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

func TestLocalFlag(t *testing.T) {
	t.Parallel()

	var f LocalFlag
	ctx := context.Background()

	active, _ := f.Active(ctx)
	assert.False(t, active)

	require.NoError(t, f.SetActive(ctx, true))
	require.NoError(t, f.SetActive(ctx, true))
	require.NoError(t, f.SetActive(ctx, false))
	active, _ = f.Active(ctx)
	assert.True(t, active, "one timer still running")

	require.NoError(t, f.SetActive(ctx, false))
	require.NoError(t, f.SetActive(ctx, false))
	active, _ = f.Active(ctx)
	assert.False(t, active)
}
