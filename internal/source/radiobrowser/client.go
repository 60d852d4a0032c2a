// Package radiobrowser implements the radio-browser.info station source.
// Unlike the default catalog it exposes the optional capabilities: native
// name search and a country facet list.
package radiobrowser

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dlamsal/airwave/internal/domain"
)

// DefaultBaseURL is a public radio-browser API mirror.
const DefaultBaseURL = "https://de1.api.radio-browser.info/json"

const (
	defaultTimeout = 15 * time.Second
	userAgent      = "Airwave/1.0"
)

// Client implements domain.StationSource, domain.StationSearcher, and
// domain.CountryLister for the radio-browser directory.
type Client struct {
	baseURL    string
	country    string // catalog slice fetched by FetchStations
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a radio-browser client. An empty baseURL selects the
// default mirror; an empty country falls back to "Nepal".
func NewClient(baseURL, country string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if country == "" {
		country = "Nepal"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		country: country,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// ID returns the source identifier.
func (c *Client) ID() string { return "radio-browser" }

// SetCountry changes the catalog slice subsequent FetchStations calls load.
func (c *Client) SetCountry(country string) {
	if country != "" {
		c.country = country
	}
}

// doRequest performs a GET and returns the response body.
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	reqURL := fmt.Sprintf("%s%s", c.baseURL, path)
	if query != nil {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("radio-browser request", "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("radio-browser request failed", "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("radio-browser request error", "status", resp.StatusCode, "bodyLen", len(body))
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return body, nil
}

// FetchStations returns the configured country's stations, dead entries
// already dropped.
func (c *Client) FetchStations(ctx context.Context) ([]domain.Station, error) {
	path := "/stations/bycountry/" + url.PathEscape(strings.ToLower(c.country))
	body, err := c.doRequest(ctx, path, nil)
	if err != nil {
		return nil, err
	}

	var dtos []stationDTO
	if err := json.Unmarshal(body, &dtos); err != nil {
		return nil, fmt.Errorf("failed to decode stations: %w", err)
	}

	stations := mapStations(dtos)
	c.logger.Debug("radio-browser fetch complete", "country", c.country, "count", len(stations))
	return stations, nil
}

// SearchStations queries the directory's name-search endpoint.
func (c *Client) SearchStations(ctx context.Context, query string) ([]domain.Station, error) {
	q := url.Values{}
	q.Set("name", query)

	body, err := c.doRequest(ctx, "/stations/search", q)
	if err != nil {
		return nil, err
	}

	var dtos []stationDTO
	if err := json.Unmarshal(body, &dtos); err != nil {
		return nil, fmt.Errorf("failed to decode search results: %w", err)
	}

	return mapStations(dtos), nil
}

// FetchCountries returns the names of countries the directory has
// stations for.
func (c *Client) FetchCountries(ctx context.Context) ([]string, error) {
	body, err := c.doRequest(ctx, "/countries", nil)
	if err != nil {
		return nil, err
	}

	var dtos []countryDTO
	if err := json.Unmarshal(body, &dtos); err != nil {
		return nil, fmt.Errorf("failed to decode countries: %w", err)
	}

	countries := make([]string, 0, len(dtos))
	for _, dto := range dtos {
		if dto.Name != "" && dto.StationCount > 0 {
			countries = append(countries, dto.Name)
		}
	}
	return countries, nil
}
