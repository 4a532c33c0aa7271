package polymarket

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/alanyoungcy/polysnap/internal/domain"
)

// GammaClient is the REST client for the Polymarket Gamma API, which
// provides event and market metadata.
type GammaClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewGammaClient creates a new Gamma API client.
//
// baseURL is the Gamma API root, e.g. "https://gamma-api.polymarket.com".
func NewGammaClient(baseURL string) *GammaClient {
	return &GammaClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GetEventBySlug returns the event matching the given URL slug.
//
// The events endpoint answers either with an array of event objects or with
// a single object; both shapes are normalized here, at the boundary. An
// empty array maps to domain.ErrNotFound.
func (g *GammaClient) GetEventBySlug(ctx context.Context, slug string) (domain.Event, error) {
	params := url.Values{}
	params.Set("slug", slug)

	body, err := doGet(ctx, g.httpClient, g.baseURL+"/events?"+params.Encode())
	if err != nil {
		return domain.Event{}, fmt.Errorf("polymarket/gamma: get event by slug %s: %w", slug, err)
	}

	raw, err := firstEventObject(body)
	if err != nil {
		return domain.Event{}, fmt.Errorf("polymarket/gamma: event by slug %s: %w", slug, err)
	}

	var apiEvent APIEvent
	if err := json.Unmarshal(raw, &apiEvent); err != nil {
		return domain.Event{}, fmt.Errorf("polymarket/gamma: decode event: %w", err)
	}

	return apiEvent.ToDomainEvent(raw), nil
}

// firstEventObject extracts the event object to use from a Gamma events
// response body. Array responses yield their first element; an empty array
// is domain.ErrNotFound; a non-array body is taken to be the event itself.
func firstEventObject(body []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, domain.ErrNotFound
	}
	if trimmed[0] != '[' {
		return json.RawMessage(body), nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("decode events array: %w", err)
	}
	if len(items) == 0 {
		return nil, domain.ErrNotFound
	}
	return items[0], nil
}
