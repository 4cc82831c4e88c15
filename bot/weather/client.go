// Package weather wraps the OpenWeather current-weather endpoint.
package weather

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"assistbot/bot/apperr"
	"assistbot/core/logger"

	"log/slog"
)

const defaultBaseURL = "http://api.openweathermap.org/data/2.5"

// Config holds provider settings.
type Config struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key" envconfig:"OPENWEATHER_API_KEY"`
	Units   string `yaml:"units"`
	Lang    string `yaml:"lang"`
}

// Client fetches the current weather for a city.
type Client struct {
	http *http.Client
	cfg  Config
}

// New constructs a Client, applying defaults for empty config fields.
func New(httpClient *http.Client, cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Units == "" {
		cfg.Units = "metric"
	}
	if cfg.Lang == "" {
		cfg.Lang = "ru"
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{http: httpClient, cfg: cfg}
}

// Report is the subset of the provider response shown to the user.
type Report struct {
	City        string
	Country     string
	Temp        float64
	FeelsLike   float64
	Humidity    int
	WindSpeed   float64
	Description string
}

// statusCode tolerates the provider returning "cod" as a number on
// success and as a quoted string on errors.
type statusCode int

func (s *statusCode) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	v, err := strconv.Atoi(string(b))
	if err != nil {
		return fmt.Errorf("cod: %w", err)
	}
	*s = statusCode(v)
	return nil
}

type response struct {
	Cod     statusCode `json:"cod"`
	Message string     `json:"message"`
	Name    string     `json:"name"`
	Main    struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Sys struct {
		Country string `json:"country"`
	} `json:"sys"`
}

// Fetch returns the current weather for city. Any transport, decode, or
// provider failure collapses into a single ServiceError.
func (c *Client) Fetch(ctx context.Context, city string) (Report, error) {
	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", c.cfg.APIKey)
	q.Set("units", c.cfg.Units)
	q.Set("lang", c.cfg.Lang)
	endpoint := c.cfg.BaseURL + "/weather?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Report{}, apperr.Service("weather", "The weather service is unavailable right now.", err)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.SVCWeather.Error("request failed",
			slog.String("event", "weather.fetch"),
			slog.String("city", city),
			slog.String("err", err.Error()),
		)
		return Report{}, apperr.Service("weather", "The weather service is unavailable right now.", err)
	}
	defer resp.Body.Close()

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		logger.SVCWeather.Error("decode failed",
			slog.String("event", "weather.fetch"),
			slog.String("city", city),
			slog.String("err", err.Error()),
		)
		return Report{}, apperr.Service("weather", "The weather service returned an unexpected answer.", err)
	}

	if body.Cod != http.StatusOK {
		logger.SVCWeather.Warn("provider rejected query",
			slog.String("event", "weather.fetch"),
			slog.String("city", city),
			slog.Int("http_code", int(body.Cod)),
			slog.String("cause", body.Message),
		)
		return Report{}, apperr.Service("weather",
			"City not found. Check the name and try again.",
			fmt.Errorf("provider cod %d: %s", body.Cod, body.Message))
	}
	if len(body.Weather) == 0 {
		return Report{}, apperr.Service("weather",
			"The weather service returned an unexpected answer.",
			fmt.Errorf("empty weather array"))
	}

	logger.SVCWeather.Debug("fetched",
		slog.String("event", "weather.fetch"),
		slog.String("status", "ok"),
		slog.String("city", body.Name),
		slog.Duration("duration", logger.Took(start)),
	)

	return Report{
		City:        body.Name,
		Country:     body.Sys.Country,
		Temp:        body.Main.Temp,
		FeelsLike:   body.Main.FeelsLike,
		Humidity:    body.Main.Humidity,
		WindSpeed:   body.Wind.Speed,
		Description: body.Weather[0].Description,
	}, nil
}
