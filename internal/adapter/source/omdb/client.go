package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/mmcdole/popcorn/internal/domain"
)

// DefaultBaseURL is the public OMDb endpoint
const DefaultBaseURL = "https://www.omdbapi.com/"

// Client implements domain.MovieRepository against the OMDb API.
// With an empty apiKey the client expects a credential proxy at baseURL
// that attaches the key server-side.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new OMDb API client. A nil httpClient selects http.DefaultClient.
func NewClient(baseURL, apiKey string, httpClient *http.Client, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
		logger:     logger,
	}
}

// doRequest performs a single GET against the API. There is no retry: a failed
// attempt is reported to the caller as-is.
// Cancellation surfaces as the context's error so callers can tell it apart
// from a genuine network failure.
func (c *Client) doRequest(ctx context.Context, query url.Values) ([]byte, error) {
	if c.apiKey != "" {
		query.Set("apikey", c.apiKey)
	}
	reqURL := c.baseURL
	if strings.Contains(reqURL, "?") {
		reqURL += "&" + query.Encode()
	} else {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("omdb request", "query", redact(query))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.logger.Error("omdb request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: failed to read response: %v", domain.ErrNetwork, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("omdb request error", "status", resp.StatusCode, "body", truncate(string(body), 200))
		return nil, fmt.Errorf("%w: unexpected status code %d", domain.ErrNetwork, resp.StatusCode)
	}

	return body, nil
}

// Search returns titles matching query
func (c *Client) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	params := url.Values{}
	params.Set("s", query)

	body, err := c.doRequest(ctx, params)
	if err != nil {
		return nil, err
	}

	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	if err := resp.check(); err != nil {
		return nil, err
	}

	return MapSearchResults(resp.Search), nil
}

// GetMovie returns full details for a single IMDb id
func (c *Client) GetMovie(ctx context.Context, id string) (*domain.MovieDetail, error) {
	params := url.Values{}
	params.Set("i", id)
	params.Set("plot", "short")

	body, err := c.doRequest(ctx, params)
	if err != nil {
		return nil, err
	}

	var resp TitleResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	if err := resp.check(); err != nil {
		return nil, err
	}

	detail := MapMovieDetail(resp)
	if detail.ID == "" {
		detail.ID = id
	}
	return detail, nil
}

// check maps the Response flag to an error
func (e envelope) check() error {
	switch e.Response {
	case "True":
		return nil
	case "False":
		if e.Error != "" {
			return fmt.Errorf("%w: %s", domain.ErrNotFound, e.Error)
		}
		return domain.ErrNotFound
	default:
		return fmt.Errorf("%w: missing Response field", domain.ErrMalformedResponse)
	}
}

func redact(query url.Values) string {
	if query.Get("apikey") == "" {
		return query.Encode()
	}
	clone := url.Values{}
	for k, v := range query {
		clone[k] = v
	}
	clone.Set("apikey", "REDACTED")
	return clone.Encode()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
