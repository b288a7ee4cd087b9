package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/dakotasky/weather-backend/internal/models"
)

const userAgent = "dakotasky-weather-backend (alerts@dakotasky.dev)"

// Client fetches the current set of active alerts from the public NWS
// alert feed for a single region.
type Client struct {
	httpClient *http.Client
	baseURL    string
	area       string
	logger     *zap.Logger
}

// NewClient creates a feed client for the given endpoint and region code.
func NewClient(baseURL, area string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		area:       area,
		logger:     logger,
	}
}

// FetchActiveAlerts returns the feed's active alerts filtered to the
// relevant event-type allow-list. Any network or payload error is
// returned as-is; there is no partial feed, so the caller aborts the run
// and the next scheduled poll retries naturally.
func (c *Client) FetchActiveAlerts(ctx context.Context) ([]models.AlertFeature, error) {
	endpoint := fmt.Sprintf("%s/alerts/active?area=%s", c.baseURL, url.QueryEscape(c.area))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}
	// The NWS API rejects requests without an identifying User-Agent.
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/geo+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch alert feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("alert feed returned status %d", resp.StatusCode)
	}

	var payload models.FeedResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode alert feed: %w", err)
	}

	relevant := make([]models.AlertFeature, 0, len(payload.Features))
	for _, feature := range payload.Features {
		if models.IsRelevantEventType(feature.Properties.Event) {
			relevant = append(relevant, feature)
		}
	}
	c.logger.Info("fetched active alerts",
		zap.Int("total", len(payload.Features)),
		zap.Int("relevant", len(relevant)),
		zap.String("area", c.area),
	)
	return relevant, nil
}
