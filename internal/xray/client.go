package xray

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const (
	versionEndpoint   = "api/v1/system/version"
	graphScanEndpoint = "api/v1/scan/graph"
)

// Client talks to the graph-scan service. Transient transport failures are
// retried here; callers see only the final outcome.
type Client struct {
	baseURL     string
	accessToken string
	http        *retryablehttp.Client
	logger      *slog.Logger
}

// NewClient creates a client for the service at baseURL. A zero timeout
// disables the per-request deadline (long graph scans are bounded by the
// caller's context instead).
func NewClient(baseURL, accessToken string, timeout time.Duration, logger *slog.Logger) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.HTTPClient.Timeout = timeout
	rc.Logger = &retryLogger{logger: logger}
	return &Client{
		baseURL:     strings.TrimSuffix(baseURL, "/") + "/",
		accessToken: accessToken,
		http:        rc,
		logger:      logger,
	}
}

// Version returns the service's reported version string.
func (c *Client) Version(ctx context.Context) (string, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+versionEndpoint, nil)
	if err != nil {
		return "", err
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("version request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return "", err
	}

	var payload struct {
		Version string `json:"xray_version"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode version response: %w", err)
	}
	return payload.Version, nil
}

// ScanGraph submits a component graph for scanning and blocks until the
// result is ready. A non-empty project key is sent as policy context, turning
// generic findings into violations on the service side.
func (c *Client) ScanGraph(ctx context.Context, graph *GraphNode, project string) (*GraphResponse, error) {
	body, err := json.Marshal(graph)
	if err != nil {
		return nil, fmt.Errorf("failed to encode component graph: %w", err)
	}

	endpoint := c.baseURL + graphScanEndpoint
	if project != "" {
		endpoint += "?project=" + url.QueryEscape(project)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	c.logger.Debug("sending dependency graph for scanning", "endpoint", endpoint)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("graph scan request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var result GraphResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode scan response: %w", err)
	}
	return &result, nil
}

func (c *Client) authorize(req *retryablehttp.Request) {
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("service rejected credentials (status %d): check your access token", resp.StatusCode)
	}
	return fmt.Errorf("service returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
}

// retryLogger adapts slog to retryablehttp's leveled logger.
type retryLogger struct {
	logger *slog.Logger
}

func (l *retryLogger) Error(msg string, args ...interface{}) { l.logger.Error(msg, args...) }
func (l *retryLogger) Info(msg string, args ...interface{})  { l.logger.Info(msg, args...) }
func (l *retryLogger) Debug(msg string, args ...interface{}) { l.logger.Debug(msg, args...) }
func (l *retryLogger) Warn(msg string, args ...interface{})  { l.logger.Warn(msg, args...) }

var _ retryablehttp.LeveledLogger = (*retryLogger)(nil)
