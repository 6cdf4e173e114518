// Package gleif implements the GLEIF LEI registry lookup client.
package gleif

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/leiscope/domain-resolver/internal/config"
	"github.com/leiscope/domain-resolver/internal/domain"
)

const defaultTimeout = 15 * time.Second

// Client searches the GLEIF registry for legal entities by name.
type Client struct {
	baseURL    string
	pageSize   int
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a registry client from configuration.
func NewClient(cfg config.GLEIFConfig, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		pageSize:   cfg.PageSize,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "gleif"),
	}
}

// NewClientWithURL creates a client with a custom base URL (for testing).
func NewClientWithURL(baseURL string, pageSize int, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		pageSize:   pageSize,
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        logger.With("adapter", "gleif"),
	}
}

// Search looks up LEI records whose legal name matches the given
// company name. jurisdictionHint, when non-empty, narrows the search to
// one jurisdiction. A zero-result lookup returns an empty slice and nil
// error; network and server failures return a domain.TransportError so
// callers can tell "nobody registered" from "registry unreachable".
func (c *Client) Search(ctx context.Context, companyName, jurisdictionHint string) ([]domain.Candidate, error) {
	if companyName == "" {
		return []domain.Candidate{}, nil
	}

	query := url.Values{}
	query.Set("filter[entity.legalName]", companyName)
	query.Set("page[size]", strconv.Itoa(c.pageSize))
	if jurisdictionHint != "" {
		query.Set("filter[entity.jurisdiction]", jurisdictionHint)
	}
	reqURL := c.baseURL + "/lei-records?" + query.Encode()

	c.log.DebugContext(ctx, "gleif request", slog.String("name", companyName))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("gleif: create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.api+json")

	resp, err := c.doWithRetry(ctx, req, companyName)
	if err != nil {
		c.log.ErrorContext(ctx, "gleif request failed", slog.String("name", companyName), slog.String("error", err.Error()))
		return nil, &domain.TransportError{Collaborator: "gleif", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.TransportError{
			Collaborator: "gleif",
			Err:          fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.TransportError{
			Collaborator: "gleif",
			Err:          fmt.Errorf("read body: %w", err),
		}
	}

	var apiResp apiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("gleif: decode json: %w", err)
	}

	candidates := mapAPIResponse(apiResp)

	c.log.DebugContext(ctx, "gleif response",
		slog.String("name", companyName),
		slog.String("jurisdiction_hint", jurisdictionHint),
		slog.Int("candidates", len(candidates)),
	)

	return candidates, nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request, name string) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	// Don't retry if context is already cancelled.
	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	c.log.WarnContext(ctx, "gleif retry", slog.String("name", name), slog.String("reason", reason))

	// Close body from the failed attempt before retrying.
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	time.Sleep(500 * time.Millisecond)

	resp, err = c.httpClient.Do(req)
	return resp, err
}
