// Package hotels wraps the RapidAPI hotels properties/list endpoint.
package hotels

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"assistbot/bot/apperr"
	"assistbot/bot/session"
	"assistbot/core/logger"

	"log/slog"
)

const (
	defaultBaseURL  = "https://hotels4.p.rapidapi.com"
	defaultHost     = "hotels4.p.rapidapi.com"
	defaultLocale   = "ru_RU"
	defaultCurrency = "RUB"
	defaultPageSize = 5
	// Search window around the target price per night. Business rule
	// taken as given; override via config.
	defaultWindowLow  = 0.8
	defaultWindowHigh = 1.2
)

// Config holds provider settings.
type Config struct {
	BaseURL     string  `yaml:"base_url"`
	APIKey      string  `yaml:"api_key" envconfig:"RAPIDAPI_KEY"`
	Host        string  `yaml:"host"`
	Locale      string  `yaml:"locale"`
	Currency    string  `yaml:"currency"`
	PageSize    int     `yaml:"page_size"`
	WindowLow   float64 `yaml:"price_window_low"`
	WindowHigh  float64 `yaml:"price_window_high"`
}

// Client searches hotel offers around a target price per night.
type Client struct {
	http *http.Client
	cfg  Config
	now  func() time.Time
}

// New constructs a Client, applying defaults for empty config fields.
func New(httpClient *http.Client, cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Host == "" {
		cfg.Host = defaultHost
	}
	if cfg.Locale == "" {
		cfg.Locale = defaultLocale
	}
	if cfg.Currency == "" {
		cfg.Currency = defaultCurrency
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	if cfg.WindowLow <= 0 {
		cfg.WindowLow = defaultWindowLow
	}
	if cfg.WindowHigh <= 0 {
		cfg.WindowHigh = defaultWindowHigh
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{http: httpClient, cfg: cfg, now: time.Now}
}

// Hotel is one search result.
type Hotel struct {
	Name    string
	Price   string
	Address string
	Stars   float64
}

type response struct {
	Data struct {
		Body struct {
			SearchResults struct {
				Results []struct {
					Name     string `json:"name"`
					RatePlan struct {
						Price struct {
							Current string `json:"current"`
						} `json:"price"`
					} `json:"ratePlan"`
					Address struct {
						StreetAddress string `json:"streetAddress"`
					} `json:"address"`
					StarRating float64 `json:"starRating"`
				} `json:"results"`
			} `json:"searchResults"`
		} `json:"body"`
	} `json:"data"`
}

// resolveCheckIn places a day.month value in the current year, rolling
// to the next year when the date has already passed.
func (c *Client) resolveCheckIn(md session.MonthDay) time.Time {
	now := c.now()
	checkIn := time.Date(now.Year(), time.Month(md.Month), md.Day, 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if checkIn.Before(today) {
		checkIn = checkIn.AddDate(1, 0, 0)
	}
	return checkIn
}

// Search returns up to PageSize offers in city around pricePerNight for
// a one-night stay starting at checkIn. An empty slice means the
// provider found nothing; errors are transport or shape failures.
func (c *Client) Search(ctx context.Context, city string, checkIn session.MonthDay, pricePerNight float64) ([]Hotel, error) {
	in := c.resolveCheckIn(checkIn)
	out := in.AddDate(0, 0, 1)

	q := url.Values{}
	q.Set("destination", city)
	q.Set("checkIn", in.Format("2006-01-02"))
	q.Set("checkOut", out.Format("2006-01-02"))
	q.Set("adults1", "1")
	q.Set("priceMin", strconv.Itoa(int(pricePerNight*c.cfg.WindowLow)))
	q.Set("priceMax", strconv.Itoa(int(pricePerNight*c.cfg.WindowHigh)))
	q.Set("sortOrder", "PRICE")
	q.Set("locale", c.cfg.Locale)
	q.Set("currency", c.cfg.Currency)
	q.Set("pageNumber", "1")
	q.Set("pageSize", strconv.Itoa(c.cfg.PageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/properties/list?"+q.Encode(), nil)
	if err != nil {
		return nil, apperr.Service("hotels", "The hotel search is unavailable right now.", err)
	}
	req.Header.Set("X-RapidAPI-Key", c.cfg.APIKey)
	req.Header.Set("X-RapidAPI-Host", c.cfg.Host)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.SVCHotels.Error("request failed",
			slog.String("event", "hotels.search"),
			slog.String("city", city),
			slog.String("err", err.Error()),
		)
		return nil, apperr.Service("hotels", "The hotel search is unavailable right now.", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.SVCHotels.Warn("provider rejected query",
			slog.String("event", "hotels.search"),
			slog.String("city", city),
			slog.Int("http_code", resp.StatusCode),
		)
		return nil, apperr.Service("hotels",
			"The hotel search is unavailable right now.",
			fmt.Errorf("provider status %s", resp.Status))
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		logger.SVCHotels.Error("decode failed",
			slog.String("event", "hotels.search"),
			slog.String("city", city),
			slog.String("err", err.Error()),
		)
		return nil, apperr.Service("hotels", "The hotel search returned an unexpected answer.", err)
	}

	results := body.Data.Body.SearchResults.Results
	hotels := make([]Hotel, 0, len(results))
	for _, r := range results {
		hotels = append(hotels, Hotel{
			Name:    r.Name,
			Price:   r.RatePlan.Price.Current,
			Address: r.Address.StreetAddress,
			Stars:   r.StarRating,
		})
	}

	logger.SVCHotels.Debug("searched",
		slog.String("event", "hotels.search"),
		slog.String("status", "ok"),
		slog.String("city", city),
		slog.Int("count", len(hotels)),
		slog.Duration("duration", logger.Took(start)),
	)
	return hotels, nil
}
