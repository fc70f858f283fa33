// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package graph reads SharePoint workbook tables through the Microsoft
// Graph API.
package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/oauth2/microsoft"

	"github.com/pdiddy/sheetfeed/internal/httputil"
	"github.com/pdiddy/sheetfeed/pkg/types"
)

// graphBase is the Microsoft Graph API root. Declared as a var so tests
// can substitute an httptest server.
var graphBase = "https://graph.microsoft.com/v1.0"

// graphScope is the client-credentials scope for application permissions.
const graphScope = "https://graph.microsoft.com/.default"

// errorBodyLimit caps how much of an error response body is carried into
// the returned error.
const errorBodyLimit = 400

// Client calls the Microsoft Graph API with an app-only bearer token.
type Client struct {
	// HTTP is the authenticated client used for all requests.
	HTTP *http.Client

	// UserAgent is sent with every request when non-empty.
	UserAgent string

	// MaxRetries bounds retries on throttled responses (0 means default).
	MaxRetries int
}

// NewClient builds a Graph client from client-credentials configuration.
// The returned client fetches and refreshes tokens transparently; the
// first request performs the token exchange.
func NewClient(ctx context.Context, cfg types.GraphConfig) *Client {
	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     microsoft.AzureADEndpoint(cfg.TenantID).TokenURL,
		Scopes:       []string{graphScope},
	}

	httpClient := cc.Client(ctx)
	if cfg.Timeout > 0 {
		httpClient.Timeout = cfg.Timeout
	}

	return &Client{
		HTTP:       httpClient,
		UserAgent:  cfg.UserAgent,
		MaxRetries: cfg.MaxRetries,
	}
}

// get performs a GET request and decodes the JSON response into out.
// Numbers are decoded as json.Number so cell values keep their literal
// form. HTTP >= 400 becomes an error carrying the status and the start
// of the response body.
func (c *Client) get(ctx context.Context, url string, out any) error {
	resp, err := c.getRaw(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return apiError(resp, url)
	}

	if err := newDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing graph response from %s: %w", url, err)
	}
	return nil
}

// SwapBaseForTest points the package at an httptest server and returns a
// restore func. Only for use in tests.
func SwapBaseForTest(url string) func() {
	old := graphBase
	graphBase = url
	return func() { graphBase = old }
}

// newDecoder returns a JSON decoder that keeps numbers as json.Number.
func newDecoder(r io.Reader) *json.Decoder {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return dec
}

// getRaw performs a GET request without interpreting the status code.
// The caller owns the response body.
func (c *Client) getRaw(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, c.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("graph GET %s: %w", url, err)
	}
	return resp, nil
}

// apiError builds an error from a failed Graph response, including at
// most errorBodyLimit bytes of the body.
func apiError(resp *http.Response, url string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
	return fmt.Errorf("graph GET %s failed with HTTP %d: %s", url, resp.StatusCode, strings.TrimSpace(string(body)))
}

// ResolveSite returns the Graph site ID for a hostname and server-relative
// site path (e.g. "contoso.sharepoint.com" and "/sites/Common").
func (c *Client) ResolveSite(ctx context.Context, hostname, sitePath string) (string, error) {
	var out struct {
		ID string `json:"id"`
	}

	url := fmt.Sprintf("%s/sites/%s:%s", graphBase, hostname, sitePath)
	if err := c.get(ctx, url, &out); err != nil {
		return "", fmt.Errorf("resolving site %s%s: %w", hostname, sitePath, err)
	}
	if out.ID == "" {
		return "", fmt.Errorf("site %s%s resolved without an ID", hostname, sitePath)
	}
	return out.ID, nil
}
