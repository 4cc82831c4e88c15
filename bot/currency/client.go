// Package currency wraps the CBR daily exchange-rates feed.
package currency

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"assistbot/bot/apperr"
	"assistbot/core/logger"

	"log/slog"
)

const defaultURL = "https://www.cbr-xml-daily.ru/daily_json.js"

// Config holds provider settings.
type Config struct {
	URL string `yaml:"url"`
}

// Client fetches daily USD/EUR rates.
type Client struct {
	http *http.Client
	cfg  Config
}

// New constructs a Client, applying defaults for empty config fields.
func New(httpClient *http.Client, cfg Config) *Client {
	if cfg.URL == "" {
		cfg.URL = defaultURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{http: httpClient, cfg: cfg}
}

// Rates holds the two rates shown to the user.
type Rates struct {
	USD float64
	EUR float64
}

type response struct {
	Valute struct {
		USD struct {
			Value float64 `json:"Value"`
		} `json:"USD"`
		EUR struct {
			Value float64 `json:"Value"`
		} `json:"EUR"`
	} `json:"Valute"`
}

// Fetch returns today's USD and EUR rates.
func (c *Client) Fetch(ctx context.Context) (Rates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL, nil)
	if err != nil {
		return Rates{}, apperr.Service("currency", "Could not fetch currency rates.", err)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.SVCCurrency.Error("request failed",
			slog.String("event", "currency.fetch"),
			slog.String("err", err.Error()),
		)
		return Rates{}, apperr.Service("currency", "Could not fetch currency rates.", err)
	}
	defer resp.Body.Close()

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		logger.SVCCurrency.Error("decode failed",
			slog.String("event", "currency.fetch"),
			slog.String("err", err.Error()),
		)
		return Rates{}, apperr.Service("currency", "Could not fetch currency rates.", err)
	}
	if body.Valute.USD.Value == 0 && body.Valute.EUR.Value == 0 {
		return Rates{}, apperr.Service("currency", "Could not fetch currency rates.", nil)
	}

	logger.SVCCurrency.Debug("fetched",
		slog.String("event", "currency.fetch"),
		slog.String("status", "ok"),
		slog.Duration("duration", logger.Took(start)),
	)
	return Rates{USD: body.Valute.USD.Value, EUR: body.Valute.EUR.Value}, nil
}
