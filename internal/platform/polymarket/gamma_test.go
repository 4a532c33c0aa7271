package polymarket

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alanyoungcy/polysnap/internal/domain"
)

func TestGetEventBySlugArrayResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/events" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("slug"); got != "test-election" {
			t.Errorf("slug param = %q", got)
		}
		w.Write([]byte(`[{"id":"e1","slug":"test-election","markets":[{"id":"m1","question":"Q?","clobTokenIds":["t1"]}]},{"id":"e2"}]`))
	}))
	defer srv.Close()

	ev, err := NewGammaClient(srv.URL).GetEventBySlug(context.Background(), "test-election")
	if err != nil {
		t.Fatalf("GetEventBySlug: %v", err)
	}
	if ev.ID != "e1" {
		t.Fatalf("expected first array element, got event %q", ev.ID)
	}
	if len(ev.Markets) != 1 || ev.Markets[0].ID != "m1" {
		t.Fatalf("markets: %+v", ev.Markets)
	}
}

func TestGetEventBySlugObjectResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"e1","slug":"test-election","markets":[]}`))
	}))
	defer srv.Close()

	ev, err := NewGammaClient(srv.URL).GetEventBySlug(context.Background(), "test-election")
	if err != nil {
		t.Fatalf("GetEventBySlug: %v", err)
	}
	if ev.ID != "e1" {
		t.Fatalf("event: %+v", ev)
	}
}

func TestGetEventBySlugEmptyArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := NewGammaClient(srv.URL).GetEventBySlug(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetEventBySlugHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewGammaClient(srv.URL).GetEventBySlug(context.Background(), "test")
	if err == nil {
		t.Fatal("expected error for HTTP 500")
	}
}

func TestGetEventBySlugRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewGammaClient(srv.URL).GetEventBySlug(context.Background(), "test")
	if !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}
