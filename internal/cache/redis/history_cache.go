package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/alanyoungcy/polysnap/internal/domain"
)

// HistoryCache implements domain.HistoryCache using plain Redis strings.
// The raw prices-history body is stored verbatim at key
// "history:{tokenID}:{startTs}:{fidelity}" so a cache hit reproduces the
// exact bytes an HTTP fetch would have persisted.
type HistoryCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewHistoryCache creates a HistoryCache backed by the given Client. ttl
// bounds how long a cached payload serves re-runs.
func NewHistoryCache(c *Client, ttl time.Duration) *HistoryCache {
	return &HistoryCache{rdb: c.Underlying(), ttl: ttl}
}

func historyKey(tokenID string, startTs int64, fidelity int) string {
	return "history:" + tokenID + ":" + strconv.FormatInt(startTs, 10) + ":" + strconv.Itoa(fidelity)
}

// Get retrieves a cached history payload. It returns domain.ErrNotFound on a
// miss.
func (hc *HistoryCache) Get(ctx context.Context, tokenID string, startTs int64, fidelity int) (domain.PriceHistory, error) {
	key := historyKey(tokenID, startTs, fidelity)
	raw, err := hc.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.PriceHistory{}, domain.ErrNotFound
		}
		return domain.PriceHistory{}, fmt.Errorf("redis: get history %s: %w", tokenID, err)
	}

	h, err := domain.ParsePriceHistory(raw)
	if err != nil {
		// A corrupt entry is indistinguishable from a miss to the caller.
		return domain.PriceHistory{}, domain.ErrNotFound
	}
	return h, nil
}

// Set stores the raw history payload with the configured TTL.
func (hc *HistoryCache) Set(ctx context.Context, tokenID string, startTs int64, fidelity int, h domain.PriceHistory) error {
	key := historyKey(tokenID, startTs, fidelity)
	if err := hc.rdb.Set(ctx, key, []byte(h.Raw), hc.ttl).Err(); err != nil {
		return fmt.Errorf("redis: set history %s: %w", tokenID, err)
	}
	return nil
}
