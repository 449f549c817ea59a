package triplestore

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
)

// maxErrorBodySize caps how much of a store error response we read for
// the error message.
const maxErrorBodySize = 4 * 1024

// Client is the HTTP implementation of Store against a SPARQL 1.1
// endpoint with Graph Store Protocol support (Fuseki, Virtuoso,
// GraphDB all qualify).
type Client struct {
	queryURL   string
	graphURL   string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client, mainly for tests
// that want short timeouts.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger attaches a structured logger for query diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient builds a client for the given query and graph-store
// endpoint URLs.
func NewClient(queryURL, graphURL string, opts ...Option) *Client {
	c := &Client{
		queryURL:   queryURL,
		graphURL:   graphURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// selectEnvelope mirrors the SPARQL 1.1 JSON results format.
type selectEnvelope struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results struct {
		Bindings []Binding `json:"bindings"`
	} `json:"results"`
	Boolean *bool `json:"boolean,omitempty"`
}

// Select implements Store.
func (c *Client) Select(ctx context.Context, query string) (*SelectResult, error) {
	body, err := c.query(ctx, query, "application/sparql-results+json")
	if err != nil {
		return nil, err
	}

	var env selectEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}

	return &SelectResult{
		Vars:     env.Head.Vars,
		Bindings: env.Results.Bindings,
	}, nil
}

// Construct implements Store.
func (c *Client) Construct(ctx context.Context, query, format string) ([]byte, error) {
	return c.query(ctx, query, format)
}

// query POSTs a query with the given Accept header and returns the raw
// response body.
func (c *Client) query(ctx context.Context, query, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.queryURL, strings.NewReader(query))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/sparql-query")
	req.Header.Set("Accept", accept)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, fmt.Errorf("store returned %d: %s", resp.StatusCode, string(msg))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug("query executed",
		"duration", time.Since(start),
		"bytes", len(body))

	return body, nil
}

// Replace implements Store via a Graph Store Protocol PUT, which
// replaces the named graph's content in one request.
func (c *Client) Replace(ctx context.Context, graphURI, contentType string, data []byte) error {
	target := c.graphURL + "?graph=" + url.QueryEscape(graphURI)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upload graph: %w", err)
	}
	defer resp.Body.Close()

	// 200 for replace, 201 when the store treats the graph as new
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusNoContent {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return fmt.Errorf("store returned %d: %s", resp.StatusCode, string(msg))
	}

	c.logger.Info("graph replaced", "graph", graphURI, "bytes", len(data))
	return nil
}

// Ping implements Store with a minimal ASK query.
func (c *Client) Ping(ctx context.Context) error {
	body, err := c.query(ctx, "ASK { }", "application/sparql-results+json")
	if err != nil {
		return err
	}
	var env selectEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("decode results: %w", err)
	}
	return nil
}
