package currency

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
		w.Write([]byte(`{"Valute":{"USD":{"Value":92.53},"EUR":{"Value":99.18}}}`))
	}))
	defer srv.Close()

	c := New(srv.Client(), Config{URL: srv.URL})
	rates, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if rates.USD != 92.53 || rates.EUR != 99.18 {
		t.Fatalf("rates: %+v", rates)
	}
}

func TestFetchMissingRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Valute":{}}`))
	}))
	defer srv.Close()

	c := New(srv.Client(), Config{URL: srv.URL})
	_, err := c.Fetch(context.Background())
	var svcErr *apperr.ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
}

func TestFetchUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(http.DefaultClient, Config{URL: srv.URL})
	_, err := c.Fetch(context.Background())
	var svcErr *apperr.ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
}
