package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"assistbot/bot/apperr"
)

func TestFetchSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Paris" {
			t.Errorf("q = %q", got)
		}
		if got := r.URL.Query().Get("units"); got != "metric" {
			t.Errorf("units = %q", got)
		}
		w.Write([]byte(`{
			"cod": 200,
			"name": "Paris",
			"main": {"temp": 18.4, "feels_like": 17.9, "humidity": 62},
			"wind": {"speed": 3.1},
			"weather": [{"description": "light rain"}],
			"sys": {"country": "FR"}
		}`))
	}))
	defer srv.Close()

	c := New(srv.Client(), Config{BaseURL: srv.URL, APIKey: "k"})
	report, err := c.Fetch(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if report.City != "Paris" || report.Country != "FR" {
		t.Fatalf("place: %+v", report)
	}
	if report.Temp != 18.4 || report.FeelsLike != 17.9 || report.Humidity != 62 || report.WindSpeed != 3.1 {
		t.Fatalf("numbers: %+v", report)
	}
	if report.Description != "light rain" {
		t.Fatalf("description: %q", report.Description)
	}
}

func TestFetchCityNotFound(t *testing.T) {
	// The provider returns cod as a string on errors.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"cod": "404", "message": "city not found"}`))
	}))
	defer srv.Close()

	c := New(srv.Client(), Config{BaseURL: srv.URL, APIKey: "k"})
	_, err := c.Fetch(context.Background(), "Nowhere")
	var svcErr *apperr.ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
	if svcErr.UserMessage() == "" {
		t.Fatal("expected a user-facing message")
	}
}

func TestFetchUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from now on

	c := New(http.DefaultClient, Config{BaseURL: srv.URL, APIKey: "k"})
	_, err := c.Fetch(context.Background(), "Paris")
	var svcErr *apperr.ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
}
