// Package yoradio implements the default static-catalog station source: a
// single JSON document already shaped like the canonical station record.
package yoradio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dlamsal/airwave/internal/domain"
)

// DefaultBaseURL is the published location of the catalog document.
const DefaultBaseURL = "https://shubhamnpk.github.io/yoradio-api/data/"

const (
	defaultTimeout = 15 * time.Second
	userAgent      = "Airwave/1.0"
)

// Client fetches the default catalog. It has no native search and no
// country list; the catalog is Nepal-only and its records carry no
// country field.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a catalog client. An empty baseURL selects the
// published endpoint.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// ID returns the source identifier.
func (c *Client) ID() string { return "yoradio" }

// FetchStations downloads and decodes the full catalog document. The wire
// format matches the canonical station shape, so no mapping layer is
// needed here.
func (c *Client) FetchStations(ctx context.Context) ([]domain.Station, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("yoradio request", "url", c.baseURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("yoradio request error", "status", resp.StatusCode, "bodyLen", len(body))
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var stations []domain.Station
	if err := json.NewDecoder(resp.Body).Decode(&stations); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	// Drop records with nothing to play.
	playable := stations[:0]
	for _, st := range stations {
		if st.StreamURL != "" {
			playable = append(playable, st)
		}
	}

	c.logger.Debug("yoradio fetch complete", "count", len(playable))
	return playable, nil
}
