// Package vk implements a client for the VK newsfeed.search API.
package vk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const apiVersion = "5.131"

// HTTPClient is the interface for performing HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Item is a single raw post returned by newsfeed.search. OwnerID is
// negative for group-authored posts and positive for user-authored ones.
type Item struct {
	OwnerID int64 `json:"owner_id"`
	ID      int64 `json:"id"`
	Date    int64 `json:"date"`
}

type searchResult struct {
	Items    []Item `json:"items"`
	NextFrom string `json:"next_from"`
}

type apiError struct {
	Code    int    `json:"error_code"`
	Message string `json:"error_msg"`
}

type searchResponse struct {
	Response *searchResult `json:"response"`
	Error    *apiError     `json:"error"`
}

// Client issues paginated search queries against the VK API.
type Client struct {
	client  HTTPClient
	limiter *rate.Limiter
	baseURL string
	token   string
	version string
}

// New creates a Client with the given HTTP client, API base URL, and token.
func New(client HTTPClient, baseURL, token string) *Client {
	return &Client{
		client: client,
		// VK allows roughly 3 requests per second per user token.
		limiter: rate.NewLimiter(rate.Every(time.Second/3), 1),
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		version: apiVersion,
	}
}

// Search runs a newsfeed.search query for one keyword, returning every item
// published at or after startTime (unix seconds). The server's next_from
// cursor is followed until it is absent, and all pages' items are
// aggregated in API order. Any transport, decode, or API error aborts the
// search for this keyword.
func (c *Client) Search(ctx context.Context, keyword string, startTime int64) ([]Item, error) {
	var items []Item
	cursor := ""

	for {
		res, err := c.page(ctx, keyword, startTime, cursor)
		if err != nil {
			return nil, err
		}
		items = append(items, res.Items...)
		if res.NextFrom == "" {
			return items, nil
		}
		cursor = res.NextFrom
	}
}

func (c *Client) page(ctx context.Context, keyword string, startTime int64, cursor string) (*searchResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("v", c.version)
	params.Set("access_token", c.token)
	params.Set("q", keyword)
	params.Set("start_time", strconv.FormatInt(startTime, 10))
	if cursor != "" {
		params.Set("start_from", cursor)
	}

	reqURL := c.baseURL + "/method/newsfeed.search?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http post: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 5*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if sr.Error != nil {
		return nil, fmt.Errorf("vk api error %d: %s", sr.Error.Code, sr.Error.Message)
	}
	if sr.Response == nil {
		return nil, fmt.Errorf("response field missing")
	}
	return sr.Response, nil
}
