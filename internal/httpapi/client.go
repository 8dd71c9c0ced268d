// Package httpapi posts JSON to the remote explanation and steering
// endpoints. Failures are reported as apperr.UnavailableError tagged with the
// calling service; decoding is left to the caller.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Rorical/RoriSteer/internal/apperr"
	"github.com/Rorical/RoriSteer/internal/logger"
)

const (
	DefaultTimeout = 90 * time.Second

	// MaxResponseSize bounds how much of a response body is read.
	MaxResponseSize = 10 * 1024 * 1024

	// maxErrorMessage bounds how much of an error body ends up in the status line.
	maxErrorMessage = 200

	apiKeyHeader    = "x-api-key"
	requestIDHeader = "X-Request-Id"
	userAgent       = "RoriSteer/1.0"
)

type Client struct {
	service    string
	apiKey     string
	httpClient *http.Client
	log        *zap.Logger
}

// New creates a client for one service. httpClient may be nil.
func New(service, apiKey string, httpClient *http.Client, log *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		service:    service,
		apiKey:     apiKey,
		httpClient: httpClient,
		log:        log.With(zap.String("service", service)),
	}
}

// PostJSON marshals in, posts it to url and returns the raw 2xx body.
func (c *Client) PostJSON(ctx context.Context, url string, in any) ([]byte, error) {
	requestID := uuid.NewString()
	log := c.log.With(zap.String("request_id", requestID), zap.String("url", url))

	payload, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, c.unavailable(0, err.Error(), err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set(requestIDHeader, requestID)
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	start := time.Now()
	log.Debug("request started")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("request failed", zap.Error(err), zap.Duration("latency", time.Since(start)))
		return nil, c.unavailable(0, err.Error(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		log.Warn("reading response failed", zap.Error(err))
		return nil, c.unavailable(resp.StatusCode, err.Error(), err)
	}
	if len(body) > MaxResponseSize {
		return nil, c.unavailable(resp.StatusCode, "response exceeds size limit", nil)
	}

	log.Info("request finished",
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
		zap.Int("bytes", len(body)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.unavailable(resp.StatusCode, errorMessage(resp, body), nil)
	}

	return body, nil
}

func (c *Client) unavailable(status int, message string, err error) error {
	return &apperr.UnavailableError{
		Service: c.service,
		Status:  status,
		Message: message,
		Err:     err,
	}
}

// errorMessage prefers a JSON "message"/"error" field, then the raw body, then
// the status text.
func errorMessage(resp *http.Response, body []byte) string {
	var decoded struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &decoded) == nil {
		if decoded.Message != "" {
			return decoded.Message
		}
		if decoded.Error != "" {
			return decoded.Error
		}
	}

	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return http.StatusText(resp.StatusCode)
	}
	if len(msg) > maxErrorMessage {
		msg = msg[:maxErrorMessage] + "..."
	}
	return msg
}
