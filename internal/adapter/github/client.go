package github

import (
	"net/http"
	"time"
)

const (
	defaultAPIBase = "https://api.github.com"
	defaultRawBase = "https://raw.githubusercontent.com"

	userAgent = "scafsync"
)

// Client holds the HTTP plumbing shared by the lister and the fetcher.
type Client struct {
	apiBase    string
	rawBase    string
	token      string
	apiClient  *http.Client
	blobClient *http.Client
}

// ClientConfig contains optional client configuration
type ClientConfig struct {
	APIBase string // API endpoint base URL (default: api.github.com)
	RawBase string // raw content base URL (default: raw.githubusercontent.com)
	Token   string // optional token for higher rate limits
}

// NewClient creates a new GitHub client
func NewClient(cfg *ClientConfig) *Client {
	apiBase := defaultAPIBase
	rawBase := defaultRawBase
	token := ""
	if cfg != nil {
		if cfg.APIBase != "" {
			apiBase = cfg.APIBase
		}
		if cfg.RawBase != "" {
			rawBase = cfg.RawBase
		}
		token = cfg.Token
	}

	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	blobTransport := &http.Transport{
		// Connection pooling for many small blob fetches
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 50,
		MaxConnsPerHost:     50,
		IdleConnTimeout:     120 * time.Second,

		ForceAttemptHTTP2: true,

		// Disable compression for binary files (saves CPU)
		DisableCompression: true,

		// Response header timeout (not total transfer timeout)
		ResponseHeaderTimeout: 30 * time.Second,
	}

	return &Client{
		apiBase: apiBase,
		rawBase: rawBase,
		token:   token,
		apiClient: &http.Client{
			Transport: transport,
			Timeout:   30 * time.Second,
		},
		blobClient: &http.Client{
			Transport: blobTransport,
			Timeout:   0, // deadlines are the caller's concern
		},
	}
}

// newAPIRequest builds a request with the GitHub API headers applied
func (c *Client) newAPIRequest(method, url string) (*http.Request, error) {
	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}
	return req, nil
}
