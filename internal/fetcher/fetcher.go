// Package fetcher performs the single robots.txt GET per monitored site.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/robotswatch/robotswatch/internal/common"
	"github.com/robotswatch/robotswatch/internal/config"
	"github.com/robotswatch/robotswatch/internal/models"
)

// Fetcher downloads robots.txt content. Failures never escape as Go errors:
// the orchestrator always receives a FetchResult, with Err populated when the
// fetch could not be completed.
type Fetcher struct {
	httpClient *http.Client
	logger     zerolog.Logger
	cfg        *config.MonitorConfig
}

// NewFetcher creates a new Fetcher. When client is nil a client with the
// configured timeout is built; a caller-supplied client is copied before the
// redirect policy is applied, so the caller's client is never mutated.
// Redirects are never followed: a redirected robots.txt surfaces as an HTTP
// status error rather than the target's file.
func NewFetcher(client *http.Client, logger zerolog.Logger, cfg *config.MonitorConfig) *Fetcher {
	if client == nil {
		client = &http.Client{
			Timeout: time.Duration(cfg.FetchTimeoutSeconds) * time.Second,
		}
	} else {
		clone := *client
		client = &clone
	}
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}

	return &Fetcher{
		httpClient: client,
		logger:     logger.With().Str("component", "Fetcher").Logger(),
		cfg:        cfg,
	}
}

// Fetch issues a GET against the site's robots.txt URL and returns the result.
func (f *Fetcher) Fetch(ctx context.Context, site models.MonitoredSite) models.FetchResult {
	result := models.FetchResult{
		Site:      site,
		Timestamp: time.Now(),
	}
	robotsURL := site.RobotsURL()

	content, status, err := f.download(ctx, robotsURL)
	result.HTTPStatus = status
	if err != nil {
		result.Err = classifyFetchError(err)
		f.logger.Warn().Err(err).Str("url", robotsURL).Msg("robots.txt fetch failed")
		return result
	}

	result.Content = content
	f.logger.Debug().Str("url", robotsURL).Int("bytes", len(content)).Msg("robots.txt fetched")
	return result
}

// download performs the request and reports failures as common.NetworkError
// or common.HTTPError values.
func (f *Fetcher) download(ctx context.Context, robotsURL string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return "", 0, common.NewNetworkError(robotsURL, "invalid robots.txt URL", err)
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", 0, f.transportError(robotsURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", resp.StatusCode, common.NewHTTPError(robotsURL, resp.StatusCode)
	}

	body, err := f.readBody(resp.Body)
	if err != nil {
		return "", resp.StatusCode, common.NewNetworkError(robotsURL, "failed to read robots.txt body", err)
	}
	return string(body), resp.StatusCode, nil
}

// transportError wraps a transport failure, flagging timeouts explicitly since
// they are the most common transient failure.
func (f *Fetcher) transportError(robotsURL string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return common.NewNetworkError(robotsURL, "timed out before sending a valid response", err)
	}
	return common.NewNetworkError(robotsURL, "connection failed", err)
}

// classifyFetchError maps the typed download errors onto the FetchError kinds
// consumed by the change detector.
func classifyFetchError(err error) *models.FetchError {
	var httpErr *common.HTTPError
	if errors.As(err, &httpErr) {
		return models.NewHTTPStatusError(httpErr.StatusCode, httpErr.Error())
	}
	return models.NewConnectionError(err.Error())
}

// readBody reads the response body up to the configured size limit. A
// robots.txt larger than the limit is treated as a fetch failure rather than
// silently truncated, so a truncated snapshot can never be persisted.
func (f *Fetcher) readBody(body io.Reader) ([]byte, error) {
	limit := int64(f.cfg.MaxContentSize)
	data, err := io.ReadAll(io.LimitReader(body, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("content exceeds maximum size of %d bytes", limit)
	}
	return data, nil
}
