package polymarket

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alanyoungcy/polysnap/internal/domain"
)

func TestGetPriceHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/prices-history" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("market") != "t1" || q.Get("startTs") != "1700000000" || q.Get("fidelity") != "1" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"history":[{"t":1700000060,"p":0.5},{"t":1700000120,"p":0.6}]}`))
	}))
	defer srv.Close()

	h, err := NewClobClient(srv.URL).GetPriceHistory(context.Background(), "t1", 1700000000, 1)
	if err != nil {
		t.Fatalf("GetPriceHistory: %v", err)
	}
	if len(h.Points) != 2 {
		t.Fatalf("points: %d, want 2", len(h.Points))
	}
	if h.Points[1].Price != 0.6 {
		t.Fatalf("point[1]: %+v", h.Points[1])
	}
	if len(h.Raw) == 0 {
		t.Fatal("raw body missing")
	}
}

func TestGetPriceHistoryMissingHistoryKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"no data"}`))
	}))
	defer srv.Close()

	_, err := NewClobClient(srv.URL).GetPriceHistory(context.Background(), "t1", 0, 1)
	if !errors.Is(err, domain.ErrNoHistory) {
		t.Fatalf("expected ErrNoHistory, got %v", err)
	}
}

func TestGetPriceHistoryEmptySeries(t *testing.T) {
	// A present-but-empty history array is a valid zero-point series, not an
	// absence.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"history":[]}`))
	}))
	defer srv.Close()

	h, err := NewClobClient(srv.URL).GetPriceHistory(context.Background(), "t1", 0, 1)
	if err != nil {
		t.Fatalf("GetPriceHistory: %v", err)
	}
	if len(h.Points) != 0 {
		t.Fatalf("points: %d, want 0", len(h.Points))
	}
}

func TestGetPriceHistoryHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewClobClient(srv.URL).GetPriceHistory(context.Background(), "t1", 0, 1)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
