package wikipedia

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPI = "https://wiki.test/w/api.php"

type recorderStub struct {
	outcomes []string
}

func (r *recorderStub) RecordWikiLookup(outcome string) {
	r.outcomes = append(r.outcomes, outcome)
}

func setupClient(t *testing.T) (*Client, *httpmock.MockTransport, *recorderStub) {
	t.Helper()
	transport := httpmock.NewMockTransport()
	rec := &recorderStub{}
	client := NewClient(Config{
		APIURL:     testAPI,
		RateLimit:  100,
		Version:    "1.2.3",
		HTTPClient: &http.Client{Transport: transport},
		Recorder:   rec,
	})
	return client, transport, rec
}

func pageQuery(title string) map[string]string {
	return map[string]string{
		"action": "query",
		"format": "json",
		"prop":   "pageimages",
		"piprop": "original",
		"titles": title,
	}
}

func TestLookupImage_Found(t *testing.T) {
	client, transport, rec := setupClient(t)

	var userAgent string
	transport.RegisterResponderWithQuery("GET", testAPI, pageQuery("Akita (dog)"),
		func(req *http.Request) (*http.Response, error) {
			userAgent = req.Header.Get("User-Agent")
			return httpmock.NewStringResponse(http.StatusOK, `{
				"batchcomplete": "",
				"query": {"pages": {"1279": {
					"pageid": 1279, "ns": 0, "title": "Akita (dog)",
					"original": {"source": "https://upload.wikimedia.org/akita.jpg", "width": 800, "height": 600}
				}}}
			}`), nil
		})

	source, err := client.LookupImage(context.Background(), "Akita (dog)")
	require.NoError(t, err)
	assert.Equal(t, "https://upload.wikimedia.org/akita.jpg", source)
	assert.True(t, strings.HasPrefix(userAgent, "DogSpotter/1.2.3 ("), userAgent)
	assert.Contains(t, userAgent, "Go-HTTP-Client/go")
	assert.Equal(t, []string{OutcomeFound}, rec.outcomes)
}

func TestLookupImage_NotFound(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "missing page sentinel",
			body: `{"query": {"pages": {"-1": {"ns": 0, "title": "Nope", "missing": ""}}}}`,
		},
		{
			name: "page without image",
			body: `{"query": {"pages": {"42": {"pageid": 42, "title": "Plain"}}}}`,
		},
		{
			name: "original without source",
			body: `{"query": {"pages": {"42": {"pageid": 42, "original": {"width": 10}}}}}`,
		},
		{
			name: "no query object",
			body: `{"batchcomplete": ""}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, transport, rec := setupClient(t)
			transport.RegisterResponder("GET", testAPI, httpmock.NewStringResponder(http.StatusOK, tt.body))

			source, err := client.LookupImage(context.Background(), "Nope")
			assert.ErrorIs(t, err, ErrNotFound)
			assert.Empty(t, source)
			assert.Equal(t, []string{OutcomeNotFound}, rec.outcomes)
		})
	}
}

func TestLookupImage_Failures(t *testing.T) {
	tests := []struct {
		name      string
		responder httpmock.Responder
	}{
		{"server error", httpmock.NewStringResponder(http.StatusInternalServerError, "boom")},
		{"rate limited", httpmock.NewStringResponder(http.StatusTooManyRequests, "slow down")},
		{"malformed json", httpmock.NewStringResponder(http.StatusOK, "{not json")},
		{"transport error", httpmock.NewErrorResponder(errors.New("connection reset"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, transport, rec := setupClient(t)
			transport.RegisterResponder("GET", testAPI, tt.responder)

			source, err := client.LookupImage(context.Background(), "Beagle")
			require.Error(t, err)
			assert.NotErrorIs(t, err, ErrNotFound)
			assert.Empty(t, source)
			assert.Equal(t, []string{OutcomeError}, rec.outcomes)
		})
	}
}

func TestLookupImage_CancelledContext(t *testing.T) {
	client, transport, _ := setupClient(t)
	transport.RegisterResponder("GET", testAPI, httpmock.NewStringResponder(http.StatusOK, `{}`))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.LookupImage(ctx, "Beagle")
	assert.Error(t, err)
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(Config{})
	assert.Equal(t, DefaultAPIURL, client.apiURL)
	assert.Equal(t, DefaultTimeout, client.httpClient.Timeout)
	assert.True(t, strings.HasPrefix(client.UserAgent(), "DogSpotter/dev "))
}
