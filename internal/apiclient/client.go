// README: HTTP consumer of the itinerary API; backs a local chat.Chat and the CLI.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"voyage/internal/itinerary"
	"voyage/internal/maps"
	"voyage/internal/modules/trips"
)

// ClientIDHeader matches the header the server buckets quota and rate limits on.
const ClientIDHeader = "X-Client-ID"

// StatusError is a non-2xx reply. Message carries the server's error field
// when the body had one.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

type Client struct {
	baseURL    string
	clientID   string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

// WithClientID sets the identity sent on every request.
func WithClientID(id string) Option {
	return func(cl *Client) { cl.clientID = id }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 2 * time.Minute},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type itineraryEnvelope struct {
	Success   bool            `json:"success"`
	Itinerary json.RawMessage `json:"itinerary"`
	Error     string          `json:"error"`
}

// Generate calls POST /api/generate-itinerary.
func (c *Client) Generate(ctx context.Context, prompt string) (*itinerary.Itinerary, error) {
	return c.itineraryCall(ctx, "/api/generate-itinerary", map[string]any{"prompt": prompt})
}

// Refine calls POST /api/refine-itinerary with the full current itinerary.
func (c *Client) Refine(ctx context.Context, current itinerary.Itinerary, instruction string) (*itinerary.Itinerary, error) {
	return c.itineraryCall(ctx, "/api/refine-itinerary", map[string]any{
		"itinerary":  current,
		"refinement": instruction,
	})
}

func (c *Client) itineraryCall(ctx context.Context, path string, body any) (*itinerary.Itinerary, error) {
	var env itineraryEnvelope
	if err := c.do(ctx, http.MethodPost, path, body, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		if env.Error != "" {
			return nil, errors.New(env.Error)
		}
		return nil, errors.New("request failed")
	}
	it, err := itinerary.Parse(env.Itinerary)
	if err != nil {
		return nil, fmt.Errorf("invalid itinerary in response: %w", err)
	}
	return it, nil
}

func (c *Client) ListTrips(ctx context.Context, limit int) ([]trips.Summary, error) {
	path := "/api/trips"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var out struct {
		Trips []trips.Summary `json:"trips"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Trips, nil
}

func (c *Client) GetTrip(ctx context.Context, id string) (*itinerary.Itinerary, error) {
	var out struct {
		Itinerary json.RawMessage `json:"itinerary"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/trips/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return itinerary.Parse(out.Itinerary)
}

// SaveTrip stores it under id. The returned copy carries the server's
// created_at.
func (c *Client) SaveTrip(ctx context.Context, id string, it itinerary.Itinerary) (*itinerary.Itinerary, error) {
	var out struct {
		Itinerary json.RawMessage `json:"itinerary"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/trips/"+url.PathEscape(id), it, &out); err != nil {
		return nil, err
	}
	return itinerary.Parse(out.Itinerary)
}

func (c *Client) DeleteTrip(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/trips/"+url.PathEscape(id), nil, nil)
}

func (c *Client) Legs(ctx context.Context, id string) ([]maps.Leg, error) {
	var out struct {
		Legs []maps.Leg `json:"legs"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/trips/"+url.PathEscape(id)+"/legs", nil, &out); err != nil {
		return nil, err
	}
	return out.Legs, nil
}

// Places searches near each destination of trip id.
func (c *Client) Places(ctx context.Context, id, query string) ([]maps.Place, error) {
	var out struct {
		Places []maps.Place `json:"places"`
	}
	path := "/api/trips/" + url.PathEscape(id) + "/places?q=" + url.QueryEscape(query)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Places, nil
}

// do sends body as JSON and decodes a 2xx reply into out. out may be nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		rd = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.clientID != "" {
		req.Header.Set(ClientIDHeader, c.clientID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &StatusError{Code: resp.StatusCode}
		var eb struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &eb) == nil {
			se.Message = eb.Error
		}
		return se
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
