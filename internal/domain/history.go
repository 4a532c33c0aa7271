package domain

import (
	"encoding/json"
	"fmt"
)

// PricePoint is a single price observation from the CLOB prices-history
// endpoint.
type PricePoint struct {
	Timestamp int64   `json:"t"`
	Price     float64 `json:"p"`
}

// PriceHistory is the time series for one outcome token. Raw is the verbatim
// response body; history artifacts are written from it so unknown fields
// survive the round trip. Points is parsed only for counting and summaries.
type PriceHistory struct {
	Points []PricePoint
	Raw    json.RawMessage
}

// ParsePriceHistory decodes a prices-history response body. A body without a
// "history" key returns ErrNoHistory; a present-but-empty array is a valid
// zero-point history.
func ParsePriceHistory(raw []byte) (PriceHistory, error) {
	var resp struct {
		History []PricePoint `json:"history"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return PriceHistory{}, fmt.Errorf("decode price history: %w", err)
	}
	if resp.History == nil {
		return PriceHistory{}, ErrNoHistory
	}
	return PriceHistory{
		Points: resp.History,
		Raw:    json.RawMessage(raw),
	}, nil
}
