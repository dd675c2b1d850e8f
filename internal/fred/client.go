package fred

import (
	"net/http"
	"net/url"
)

const defaultBaseURL = "https://api.stlouisfed.org/fred"

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=fred_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a client for the FRED API.
type Client struct {
	// baseURL is the base URL for the API.
	baseURL string
	// httpClient is the HTTP httpClient.
	httpClient HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
	// query contains additional query parameters to be sent with each request.
	query url.Values
}

// Option is a configuration option for the FRED API client.
type Option func(*Client)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) Option {
	return func(c *Client) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// NewClient creates a new FRED API client.
func NewClient(key string, options ...Option) (*Client, error) {
	var client = &Client{
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
		query:      url.Values{},
	}
	if key != "" {
		// FRED authenticates with an api_key query parameter.
		// https://fred.stlouisfed.org/docs/api/api_key.html
		client.query.Add("api_key", key)
	}
	for _, option := range options {
		option(client)
	}
	return client, nil
}

// Name identifies the client as a series source.
func (c *Client) Name() string { return "FRED" }
