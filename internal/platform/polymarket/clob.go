package polymarket

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/alanyoungcy/polysnap/internal/domain"
)

// ClobClient is the REST client for the Polymarket CLOB (Central Limit
// Order Book) API. The snapshot pipeline only uses its public
// prices-history endpoint.
type ClobClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewClobClient creates a new CLOB REST client.
//
// baseURL is the CLOB API root, e.g. "https://clob.polymarket.com".
func NewClobClient(baseURL string) *ClobClient {
	return &ClobClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GetPriceHistory returns the price series for one outcome token from
// startTs (Unix seconds) to now at the given fidelity (1 = minute-level).
//
// A response without a "history" key returns domain.ErrNoHistory; a present
// but empty series is a valid zero-point history.
func (c *ClobClient) GetPriceHistory(ctx context.Context, tokenID string, startTs int64, fidelity int) (domain.PriceHistory, error) {
	params := url.Values{}
	params.Set("market", tokenID)
	params.Set("startTs", strconv.FormatInt(startTs, 10))
	params.Set("fidelity", strconv.Itoa(fidelity))

	body, err := doGet(ctx, c.httpClient, c.baseURL+"/prices-history?"+params.Encode())
	if err != nil {
		return domain.PriceHistory{}, fmt.Errorf("polymarket/clob: get price history for %s: %w", tokenID, err)
	}

	h, err := domain.ParsePriceHistory(body)
	if err != nil {
		return domain.PriceHistory{}, fmt.Errorf("polymarket/clob: price history for %s: %w", tokenID, err)
	}

	return h, nil
}
