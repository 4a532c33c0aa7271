package polymarket

import (
	"encoding/json"
	"strconv"

	"github.com/alanyoungcy/polysnap/internal/domain"
)

// --------------------------------------------------------------------------
// Flexible field decoders
//
// The Gamma API is loose about scalar encodings: ids arrive as strings or
// numbers, volumes as numbers or numeric strings, and clobTokenIds as either
// a native array or a JSON-encoded string. All of that is normalized here so
// nothing downstream branches on source format.
// --------------------------------------------------------------------------

// flexString unmarshals from a JSON string or number.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// flexFloat unmarshals from a JSON number or numeric string. Missing or
// undecodable values stay zero.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*f = flexFloat(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*f = 0
		return nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		*f = flexFloat(v)
	}
	return nil
}

// tokenList unmarshals the clobTokenIds field, which arrives either as a
// native array or as a JSON-encoded string like "[\"123\",\"456\"]".
// Undecodable payloads degrade to an empty list rather than failing the
// whole event decode; a market without tokens is simply skipped.
type tokenList []string

func (t *tokenList) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err == nil {
		*t = ids
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*t = nil
		return nil
	}
	if err := json.Unmarshal([]byte(s), &ids); err != nil {
		*t = nil
		return nil
	}
	*t = ids
	return nil
}

// --------------------------------------------------------------------------
// Gamma API DTOs
// --------------------------------------------------------------------------

// APIEvent represents an event as returned by the Gamma events endpoint. An
// event groups one or more related markets.
type APIEvent struct {
	ID      flexString  `json:"id"`
	Title   string      `json:"title"`
	Slug    string      `json:"slug"`
	Markets []APIMarket `json:"markets"`
}

// APIMarket represents a market as embedded in a Gamma event response.
type APIMarket struct {
	ID           flexString `json:"id"`
	Question     string     `json:"question"`
	Slug         string     `json:"slug"`
	ClobTokenIDs tokenList  `json:"clobTokenIds"`
	Volume       flexFloat  `json:"volume"`
}

// ToDomainEvent converts an APIEvent to a domain.Event. raw is the verbatim
// JSON body of the event object, carried along so artifacts can persist the
// response exactly as received.
func (e *APIEvent) ToDomainEvent(raw json.RawMessage) domain.Event {
	ev := domain.Event{
		ID:    string(e.ID),
		Title: e.Title,
		Slug:  e.Slug,
		Raw:   raw,
	}
	ev.Markets = make([]domain.Market, 0, len(e.Markets))
	for i := range e.Markets {
		ev.Markets = append(ev.Markets, e.Markets[i].ToDomainMarket())
	}
	return ev
}

// ToDomainMarket converts an APIMarket to a domain.Market.
func (m *APIMarket) ToDomainMarket() domain.Market {
	return domain.Market{
		ID:       string(m.ID),
		Question: m.Question,
		TokenIDs: []string(m.ClobTokenIDs),
		Volume:   float64(m.Volume),
	}
}
