package hotels

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"assistbot/bot/apperr"
	"assistbot/bot/session"
)

func fixedNow() time.Time {
	return time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
}

func TestSearchBuildsQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("destination"); got != "Paris" {
			t.Errorf("destination = %q", got)
		}
		if got := q.Get("checkIn"); got != "2026-05-15" {
			t.Errorf("checkIn = %q", got)
		}
		if got := q.Get("checkOut"); got != "2026-05-16" {
			t.Errorf("checkOut = %q", got)
		}
		if got := q.Get("priceMin"); got != "4000" {
			t.Errorf("priceMin = %q", got)
		}
		if got := q.Get("priceMax"); got != "6000" {
			t.Errorf("priceMax = %q", got)
		}
		if got := q.Get("pageSize"); got != "5" {
			t.Errorf("pageSize = %q", got)
		}
		if got := r.Header.Get("X-RapidAPI-Key"); got != "k" {
			t.Errorf("api key header = %q", got)
		}
		w.Write([]byte(`{"data":{"body":{"searchResults":{"results":[
			{"name":"Hotel du Nord","ratePlan":{"price":{"current":"RUB 5,100"}},
			 "address":{"streetAddress":"1 Rue Test"},"starRating":4}
		]}}}}`))
	}))
	defer srv.Close()

	c := New(srv.Client(), Config{BaseURL: srv.URL, APIKey: "k"})
	c.now = fixedNow

	hotels, err := c.Search(context.Background(), "Paris", session.MonthDay{Day: 15, Month: 5}, 5000)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hotels) != 1 {
		t.Fatalf("expected 1 hotel, got %d", len(hotels))
	}
	h := hotels[0]
	if h.Name != "Hotel du Nord" || h.Price != "RUB 5,100" || h.Address != "1 Rue Test" || h.Stars != 4 {
		t.Fatalf("hotel: %+v", h)
	}
}

func TestSearchEmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{}}`))
	}))
	defer srv.Close()

	c := New(srv.Client(), Config{BaseURL: srv.URL, APIKey: "k"})
	c.now = fixedNow

	hotels, err := c.Search(context.Background(), "Paris", session.MonthDay{Day: 15, Month: 5}, 5000)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hotels) != 0 {
		t.Fatalf("expected no hotels, got %d", len(hotels))
	}
}

func TestSearchProviderFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := New(srv.Client(), Config{BaseURL: srv.URL, APIKey: "k"})
	c.now = fixedNow

	_, err := c.Search(context.Background(), "Paris", session.MonthDay{Day: 15, Month: 5}, 5000)
	var svcErr *apperr.ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
}

func TestResolveCheckInRollsToNextYear(t *testing.T) {
	c := New(nil, Config{})
	c.now = fixedNow

	// March 10th 2026: January 5th has already passed this year.
	got := c.resolveCheckIn(session.MonthDay{Day: 5, Month: 1})
	if got.Year() != 2027 {
		t.Fatalf("expected next year, got %v", got)
	}

	got = c.resolveCheckIn(session.MonthDay{Day: 10, Month: 3})
	if got.Year() != 2026 {
		t.Fatalf("today must stay in the current year, got %v", got)
	}
}
