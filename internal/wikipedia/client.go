// Package wikipedia looks up the lead image of an English Wikipedia article.
package wikipedia

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/antonholmquist/jason"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	DefaultAPIURL    = "https://en.wikipedia.org/w/api.php"
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 2.0

	// User-Agent parts following the Wikimedia User-Agent policy.
	userAgentName    = "DogSpotter"
	userAgentContact = "https://github.com/mrlokans/dogspotter"
	userAgentLibrary = "Go-HTTP-Client"

	// Page id Wikipedia assigns to titles that do not exist.
	missingPageID = "-1"
)

// ErrNotFound is returned when the article does not exist or has no lead image.
var ErrNotFound = errors.New("wikipedia: no image for title")

// Lookup outcomes reported to the Recorder.
const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Recorder receives one outcome per lookup.
type Recorder interface {
	RecordWikiLookup(outcome string)
}

// Config holds client settings. Zero values fall back to the defaults.
type Config struct {
	APIURL     string
	Timeout    time.Duration
	RateLimit  float64 // requests per second
	Version    string
	HTTPClient *http.Client
	Recorder   Recorder
}

// Client queries the MediaWiki pageimages API.
type Client struct {
	apiURL     string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	recorder   Recorder
	log        *logrus.Entry
}

// NewClient creates a Wikipedia client.
func NewClient(cfg Config) *Client {
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = DefaultRateLimit
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	burst := int(cfg.RateLimit)
	if burst < 1 {
		burst = 1
	}

	return &Client{
		apiURL:     cfg.APIURL,
		userAgent:  buildUserAgent(cfg.Version),
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimit), burst),
		recorder:   cfg.Recorder,
		log:        logrus.WithField("component", "wikipedia"),
	}
}

// buildUserAgent formats <client>/<version> (<contact>) <library>/<version>.
func buildUserAgent(version string) string {
	if version == "" {
		version = "dev"
	}
	return fmt.Sprintf("%s/%s (%s) %s/%s",
		userAgentName, version, userAgentContact, userAgentLibrary, runtime.Version())
}

// UserAgent returns the header value sent with every request.
func (c *Client) UserAgent() string {
	return c.userAgent
}

// LookupImage returns the URL of the original lead image of the article with
// the given title. It returns ErrNotFound when the article is missing or has
// no image, and a wrapped error for transport, status or decoding failures.
func (c *Client) LookupImage(ctx context.Context, title string) (string, error) {
	source, err := c.lookup(ctx, title)
	switch {
	case err == nil:
		c.record(OutcomeFound)
	case errors.Is(err, ErrNotFound):
		c.record(OutcomeNotFound)
	default:
		c.record(OutcomeError)
		c.log.WithError(err).WithField("title", title).Warn("Wikipedia lookup failed")
	}
	return source, err
}

func (c *Client) lookup(ctx context.Context, title string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("prop", "pageimages")
	params.Set("piprop", "original")
	params.Set("titles", title)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to query wikipedia: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("wikipedia returned status %d", resp.StatusCode)
	}

	body, err := jason.NewObjectFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return imageFromResponse(body)
}

// imageFromResponse extracts query.pages.<id>.original.source.
func imageFromResponse(body *jason.Object) (string, error) {
	pages, err := body.GetObject("query", "pages")
	if err != nil {
		return "", ErrNotFound
	}

	byID := pages.Map()
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if id == missingPageID || strings.HasPrefix(id, "-") {
			continue
		}
		page, err := byID[id].Object()
		if err != nil {
			continue
		}
		source, err := page.GetString("original", "source")
		if err == nil && source != "" {
			return source, nil
		}
	}
	return "", ErrNotFound
}

func (c *Client) record(outcome string) {
	if c.recorder != nil {
		c.recorder.RecordWikiLookup(outcome)
	}
}
