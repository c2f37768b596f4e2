package images

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pressroom-io/pressroom/internal/apperr"
)

const searchTimeout = 30 * time.Second

// Searcher finds an existing stock photo for a keyword query.
type Searcher interface {
	Search(ctx context.Context, query string) (string, error)
}

type SearchClientConfig func(client *SearchClient)

// SearchClient talks to an Unsplash-compatible photo search endpoint.
type SearchClient struct {
	base      url.URL
	accessKey string
	http      *http.Client
}

func NewSearchClient(baseUrl, accessKey string, opts ...SearchClientConfig) (*SearchClient, error) {
	if accessKey == "" {
		return nil, apperr.NewConfig("image search access key is not set")
	}

	base, err := url.Parse(baseUrl)
	if err != nil {
		return nil, apperr.NewConfigWrap("invalid image search base url", err)
	}

	client := &SearchClient{
		base:      *base,
		accessKey: accessKey,
		http: &http.Client{
			Timeout: searchTimeout,
		},
	}

	for _, cfg := range opts {
		cfg(client)
	}

	return client, nil
}

func WithSearchHttpClient(httpClient *http.Client) SearchClientConfig {
	return func(client *SearchClient) {
		client.http = httpClient
	}
}

type searchResponse struct {
	Results []struct {
		URLs struct {
			Regular string `json:"regular"`
		} `json:"urls"`
	} `json:"results"`
}

// Search returns the first matching photo URL. An empty result set is an
// error so the caller can drop the slot.
func (sc *SearchClient) Search(ctx context.Context, query string) (string, error) {
	if query == "" {
		return "", apperr.NewValidation("missing search query")
	}

	reqURL := sc.base.JoinPath("/search/photos")
	q := reqURL.Query()
	q.Set("query", query)
	q.Set("per_page", strconv.Itoa(1))
	q.Set("orientation", "landscape")
	reqURL.RawQuery = q.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return "", apperr.NewProvider("image-search", err)
	}
	request.Header.Set("Authorization", "Client-ID "+sc.accessKey)
	request.Header.Set("Accept", "application/json")

	resp, err := sc.http.Do(request)
	if err != nil {
		return "", apperr.NewProvider("image-search", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperr.NewProvider("image-search", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", apperr.NewProvider("image-search",
			fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(respBody)))
	}

	var sResp searchResponse
	if err := json.Unmarshal(respBody, &sResp); err != nil {
		return "", apperr.NewProvider("image-search", fmt.Errorf("unmarshal response: %w", err))
	}

	if len(sResp.Results) == 0 || sResp.Results[0].URLs.Regular == "" {
		return "", apperr.NewProvider("image-search", fmt.Errorf("no results for query %q", query))
	}
	return sResp.Results[0].URLs.Regular, nil
}
