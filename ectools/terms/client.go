package terms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/opentracing/opentracing-go"
)

// DefaultBaseURL is the enviroCar REST API
const DefaultBaseURL = "https://envirocar.org/api/stable"

// Client fetches terms of use from the enviroCar API
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new client for the given API base url
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{},
	}
}

// List fetches every terms of use version, without their contents
func (c *Client) List(ctx context.Context) (List, error) {
	var l List
	err := c.get(ctx, "termsOfUse", &l)
	return l, err
}

// Get fetches a terms of use version along with its contents
func (c *Client) Get(ctx context.Context, id string) (TermsOfUse, error) {
	var t TermsOfUse
	err := c.get(ctx, "termsOfUse/"+url.PathEscape(id), &t)
	return t, err
}

// Latest fetches the most recently issued terms of use along with its contents
func (c *Client) Latest(ctx context.Context) (TermsOfUse, error) {
	l, err := c.List(ctx)
	if err != nil {
		return TermsOfUse{}, err
	}

	latest, ok := l.Latest()
	if !ok {
		return TermsOfUse{}, fmt.Errorf("no terms of use published")
	}

	return c.Get(ctx, latest.ID)
}

func (c *Client) get(ctx context.Context, path string, v interface{}) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "terms.get")
	defer span.Finish()
	span.SetTag("path", path)

	fullURL := fmt.Sprintf("%s/%s", c.BaseURL, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return err
	}
	req.Header.Add("Accept", "application/json")

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("couldn't fetch '%s': %w", fullURL, err)
	}

	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("fetching '%s' failed with error: %d %s", fullURL, res.StatusCode, res.Status)
	}

	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to parse '%s' response: %w", path, err)
	}

	return nil
}
