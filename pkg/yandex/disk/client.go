// Package yadisk provides a client for the Yandex Disk REST API.
//
// The client covers disk capacity, resource metadata and listings, upload and
// download links, copy, move, delete, folder creation, publishing and public
// resources. Calls that the API runs asynchronously (copy, move and delete of
// large trees, upload from URL) are followed until the remote operation
// reports success, within the bounds of PollConfig.
//
// Every request carries the "Authorization: OAuth <token>" header. Failed
// requests are logged and returned as errors matching ErrNoResult.
package yadisk

import (
	"fmt"
	"net/http"
	"net/url"

	httpclient "github.com/natserract/yadisk/pkg/http"
	"go.uber.org/zap"
)

// Client is the main client for the Yandex Disk API. It is immutable after
// construction and may be shared between goroutines.
type Client struct {
	config        *Config
	baseURL       *url.URL
	authorization string
	httpClient    *httpclient.Client
	logger        *zap.Logger
}

// Option configures optional Client behaviour.
type Option func(*clientOptions)

type clientOptions struct {
	httpClient *http.Client
}

// WithHTTPClient makes the client send requests through h, for example to add
// a proxy or tracing transport. h keeps its own Timeout; Config.Timeout only
// applies to the default client.
func WithHTTPClient(h *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = h
	}
}

// New creates a new Client with the default production logger
func New(cfg *Config, opts ...Option) (*Client, error) {
	logger, _ := zap.NewProduction()
	return NewWithLogger(cfg, logger, opts...)
}

// NewWithLogger creates a new Client with a custom logger
func NewWithLogger(cfg *Config, logger *zap.Logger, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	baseURL, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	var o clientOptions
	for _, opt := range opts {
		opt(&o)
	}
	transportOpts := []httpclient.Option{httpclient.WithTimeout(cfg.Timeout)}
	if o.httpClient != nil {
		transportOpts = append(transportOpts, httpclient.WithHTTPClient(o.httpClient))
	}

	// copy so later changes to cfg do not leak into the client
	config := *cfg

	return &Client{
		config:        &config,
		baseURL:       baseURL,
		authorization: "OAuth " + cfg.Token,
		httpClient:    httpclient.NewClientWithLogger(logger, transportOpts...),
		logger:        logger,
	}, nil
}

// BaseURL returns the API root the client sends relative endpoints to.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}
