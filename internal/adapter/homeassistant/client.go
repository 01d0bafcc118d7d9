// Package homeassistant mirrors the live timer on a Home Assistant
// input_boolean helper so dashboards and automations can react to it.
package homeassistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ntotao/baby-tracker/internal/domain"
)

// Client talks to the Home Assistant REST API.
type Client struct {
	baseURL string
	token   string
	entity  string
	http    *http.Client
}

// NewClient creates a client toggling entity (e.g. input_boolean.baby_feeding).
// A nil httpClient gets a client with the given timeout.
func NewClient(baseURL, token, entity string, timeout time.Duration, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		entity:  entity,
		http:    httpClient,
	}
}

type entityState struct {
	EntityID string `json:"entity_id"`
	State    string `json:"state"`
}

// SetActive turns the helper on or off.
func (c *Client) SetActive(ctx context.Context, active bool) error {
	service := "turn_off"
	if active {
		service = "turn_on"
	}

	body, err := json.Marshal(map[string]string{"entity_id": c.entity})
	if err != nil {
		return fmt.Errorf("encode service data: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/api/services/input_boolean/"+service, bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("input_boolean.%s: status %d: %w", service, resp.StatusCode, domain.ErrStorageUnavailable)
	}
	return nil
}

// Active reports whether the helper is on.
func (c *Client) Active(ctx context.Context) (bool, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/states/"+c.entity, nil)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, fmt.Errorf("entity %s: %w", c.entity, domain.ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return false, fmt.Errorf("get state %s: status %d: %w", c.entity, resp.StatusCode, domain.ErrStorageUnavailable)
	}

	var st entityState
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return false, fmt.Errorf("decode state: %w", err)
	}
	return st.State == "on", nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("home assistant %s %s: %w: %v", method, path, domain.ErrStorageUnavailable, err)
	}
	return resp, nil
}

// LocalFlag is the in-process toggle used when Home Assistant is not
// configured. It counts running timers across conversations.
type LocalFlag struct {
	running atomic.Int64
}

// SetActive records a timer start or stop.
func (f *LocalFlag) SetActive(_ context.Context, active bool) error {
	if active {
		f.running.Add(1)
		return nil
	}
	for {
		n := f.running.Load()
		if n <= 0 || f.running.CompareAndSwap(n, n-1) {
			return nil
		}
	}
}

// Active reports whether any timer is running.
func (f *LocalFlag) Active(context.Context) (bool, error) {
	return f.running.Load() > 0, nil
}
