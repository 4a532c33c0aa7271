package domain

import (
	"errors"
	"testing"
)

func TestParsePriceHistory(t *testing.T) {
	raw := []byte(`{"history":[{"t":1,"p":0.5},{"t":2,"p":0.6}],"extra":"kept"}`)
	h, err := ParsePriceHistory(raw)
	if err != nil {
		t.Fatalf("ParsePriceHistory: %v", err)
	}
	if len(h.Points) != 2 || h.Points[0].Price != 0.5 || h.Points[1].Timestamp != 2 {
		t.Fatalf("points: %+v", h.Points)
	}
	if string(h.Raw) != string(raw) {
		t.Fatal("raw body not preserved")
	}
}

func TestParsePriceHistoryMissingKey(t *testing.T) {
	_, err := ParsePriceHistory([]byte(`{"message":"nothing here"}`))
	if !errors.Is(err, ErrNoHistory) {
		t.Fatalf("expected ErrNoHistory, got %v", err)
	}
}

func TestParsePriceHistoryEmptySeries(t *testing.T) {
	h, err := ParsePriceHistory([]byte(`{"history":[]}`))
	if err != nil {
		t.Fatalf("empty series is valid: %v", err)
	}
	if len(h.Points) != 0 {
		t.Fatalf("points: %+v", h.Points)
	}
}

func TestParsePriceHistoryMalformed(t *testing.T) {
	if _, err := ParsePriceHistory([]byte(`not json`)); err == nil {
		t.Fatal("expected decode error")
	}
}
