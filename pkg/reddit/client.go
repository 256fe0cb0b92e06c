// Package reddit provides a client for the Reddit public JSON API.
package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://www.reddit.com"

// Client defines the Reddit search operations used by the pipeline.
type Client interface {
	// SearchSubreddits searches for subreddits matching the query.
	SearchSubreddits(ctx context.Context, query string, opts ...SearchOption) ([]Subreddit, error)
	// SearchPosts performs a site-wide post search. Subreddit restriction
	// clauses (e.g. "subreddit:foo OR subreddit:bar") go in the query itself.
	SearchPosts(ctx context.Context, query string, opts ...SearchOption) ([]Post, error)
}

// Subreddit is a single subreddit search result.
type Subreddit struct {
	DisplayName       string `json:"display_name"`
	Subscribers       int    `json:"subscribers"`
	Over18            bool   `json:"over18"`
	PublicDescription string `json:"public_description"`
}

// Post is a single post search result.
type Post struct {
	Title     string `json:"title"`
	SelfText  string `json:"selftext"`
	Subreddit string `json:"subreddit"`
}

// SearchOption configures a search request.
type SearchOption func(*searchOpts)

type searchOpts struct {
	limit int
	sort  string
}

// WithLimit caps the number of results returned by the API.
func WithLimit(n int) SearchOption {
	return func(o *searchOpts) {
		o.limit = n
	}
}

// WithSort sets the result ordering (e.g. "relevance", "top").
func WithSort(sort string) SearchOption {
	return func(o *searchOpts) {
		o.sort = sort
	}
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithUserAgent sets the User-Agent header. Reddit throttles requests
// without a descriptive one.
func WithUserAgent(ua string) Option {
	return func(c *httpClient) {
		c.userAgent = ua
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

// NewClient creates a new Reddit client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL:   defaultBaseURL,
		userAgent: "hoodscout/1.0",
		http: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// listing is the envelope Reddit wraps every result set in.
type listing struct {
	Data struct {
		Children []struct {
			Data json.RawMessage `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// retryableStatusCode returns true if the HTTP status code should trigger a retry.
func retryableStatusCode(code int) bool {
	return code == http.StatusTooManyRequests ||
		code == http.StatusInternalServerError ||
		code == http.StatusBadGateway ||
		code == http.StatusServiceUnavailable
}

// retryDo executes a GET with exponential backoff retries on transient
// failures (429, 500, 502, 503).
func (c *httpClient) retryDo(ctx context.Context, req *http.Request) ([]byte, int, error) {
	const maxAttempts = 3
	backoff := 1 * time.Second

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		retryReq := req.Clone(ctx)

		resp, err := c.http.Do(retryReq)
		if err != nil {
			lastErr = err
			if attempt < maxAttempts {
				select {
				case <-ctx.Done():
					return nil, 0, ctx.Err()
				case <-time.After(backoff):
				}
				backoff *= 2
				continue
			}
			return nil, 0, lastErr
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			return nil, resp.StatusCode, eris.Wrap(readErr, "reddit: read response body")
		}

		if retryableStatusCode(resp.StatusCode) && attempt < maxAttempts {
			lastErr = eris.Errorf("reddit: status %d: %s", resp.StatusCode, string(body))
			select {
			case <-ctx.Done():
				return nil, 0, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
			continue
		}

		return body, resp.StatusCode, nil
	}

	return nil, 0, lastErr
}

func (c *httpClient) search(ctx context.Context, path, query string, opts []SearchOption) (*listing, error) {
	so := &searchOpts{limit: 10}
	for _, opt := range opts {
		opt(so)
	}

	params := url.Values{
		"q":     {query},
		"limit": {strconv.Itoa(so.limit)},
	}
	if so.sort != "" {
		params.Set("sort", so.sort)
	}

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "reddit: create request")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	body, statusCode, err := c.retryDo(ctx, req)
	if err != nil {
		return nil, eris.Wrap(err, "reddit: request failed")
	}

	if statusCode != http.StatusOK {
		return nil, eris.Errorf("reddit: unexpected status %d: %s", statusCode, string(body))
	}

	var result listing
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "reddit: unmarshal response")
	}

	return &result, nil
}

func (c *httpClient) SearchSubreddits(ctx context.Context, query string, opts ...SearchOption) ([]Subreddit, error) {
	result, err := c.search(ctx, "/subreddits/search.json", query, opts)
	if err != nil {
		return nil, err
	}

	subs := make([]Subreddit, 0, len(result.Data.Children))
	for _, child := range result.Data.Children {
		var s Subreddit
		if err := json.Unmarshal(child.Data, &s); err != nil {
			continue
		}
		subs = append(subs, s)
	}
	return subs, nil
}

func (c *httpClient) SearchPosts(ctx context.Context, query string, opts ...SearchOption) ([]Post, error) {
	result, err := c.search(ctx, "/search.json", query, opts)
	if err != nil {
		return nil, err
	}

	posts := make([]Post, 0, len(result.Data.Children))
	for _, child := range result.Data.Children {
		var p Post
		if err := json.Unmarshal(child.Data, &p); err != nil {
			continue
		}
		posts = append(posts, p)
	}
	return posts, nil
}
