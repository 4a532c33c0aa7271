// Package domain holds the core types of the snapshot pipeline and the
// interfaces implemented by the storage, cache, and blob adapters. It has no
// dependencies on the API clients or on any infrastructure package.
package domain

import "encoding/json"

// Event is a prediction-market event resolved from the Gamma API. Raw holds
// the verbatim JSON body of the selected event object so it can be persisted
// exactly as the API returned it.
type Event struct {
	ID      string
	Slug    string
	Title   string
	Markets []Market
	Raw     json.RawMessage
}

// Market is one tradable yes/no question within an event. TokenIDs holds the
// outcome token identifiers in API order; by Polymarket convention the first
// entry is the YES outcome.
type Market struct {
	ID       string
	Question string
	TokenIDs []string
	Volume   float64
}

// YesTokenID returns the affirmative-outcome token identifier, or "" when
// the market carries no tokens.
func (m Market) YesTokenID() string {
	if len(m.TokenIDs) == 0 {
		return ""
	}
	return m.TokenIDs[0]
}

// MarketStat is the per-market summary record written to summary.json, one
// entry per market whose history fetch succeeded, in processing order.
type MarketStat struct {
	ID       string  `json:"id"`
	Question string  `json:"question"`
	TokenID  string  `json:"token_id"`
	Points   int     `json:"points"`
	Volume   float64 `json:"volume"`
}
