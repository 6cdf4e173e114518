// Package extract implements the client for the company-name
// extraction service.
package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/leiscope/domain-resolver/internal/config"
	"github.com/leiscope/domain-resolver/internal/domain"
)

const defaultTimeout = 45 * time.Second

// Client calls the extraction service to pull a company name out of a
// domain's website content.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates an extraction client from configuration.
func NewClient(cfg config.ExtractorConfig, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "extract"),
	}
}

// NewClientWithURL creates a client with a custom base URL (for testing).
func NewClientWithURL(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        logger.With("adapter", "extract"),
	}
}

// Extract asks the extraction service for the company name behind a
// domain. An unsuccessful extraction (no name found, site unreachable)
// is a valid Result, not an error: the caller decides what it means for
// the task. Errors are reserved for the extraction service itself being
// unreachable, wrapped as domain.TransportError.
func (c *Client) Extract(ctx context.Context, domainName string) (domain.Extraction, error) {
	payload, err := json.Marshal(apiRequest{Domain: domainName})
	if err != nil {
		return domain.Extraction{}, fmt.Errorf("extract: encode request: %w", err)
	}

	c.log.DebugContext(ctx, "extract request", slog.String("domain", domainName))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/extract", bytes.NewReader(payload))
	if err != nil {
		return domain.Extraction{}, fmt.Errorf("extract: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.ErrorContext(ctx, "extract request failed", slog.String("domain", domainName), slog.String("error", err.Error()))
		return domain.Extraction{}, &domain.TransportError{Collaborator: "extractor", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Extraction{}, &domain.TransportError{
			Collaborator: "extractor",
			Err:          fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Extraction{}, &domain.TransportError{
			Collaborator: "extractor",
			Err:          fmt.Errorf("read body: %w", err),
		}
	}

	var apiResp apiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return domain.Extraction{}, fmt.Errorf("extract: decode json: %w", err)
	}

	result := mapAPIResponse(apiResp)

	c.log.DebugContext(ctx, "extract response",
		slog.String("domain", domainName),
		slog.String("company_name", result.CompanyName),
		slog.Int("confidence", result.Confidence),
		slog.String("connectivity", result.Connectivity.String()),
	)

	return result, nil
}
