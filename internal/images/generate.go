package images

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pressroom-io/pressroom/internal/apperr"
)

const (
	generateTimeout = 120 * time.Second
	defaultImgModel = "dall-e-3"
	defaultImgSize  = "1024x1024"
)

// Generator produces a brand-new illustration from a text prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type GenClientConfig func(client *GenClient)

// GenClient talks to an OpenAI-compatible image generation endpoint.
// Generation is the slowest provider call in the pipeline, hence the wide
// timeout.
type GenClient struct {
	base   url.URL
	apiKey string
	model  string
	size   string
	http   *http.Client
}

func NewGenClient(baseUrl, apiKey string, opts ...GenClientConfig) (*GenClient, error) {
	if apiKey == "" {
		return nil, apperr.NewConfig("image generation api key is not set")
	}

	base, err := url.Parse(baseUrl)
	if err != nil {
		return nil, apperr.NewConfigWrap("invalid image generation base url", err)
	}

	client := &GenClient{
		base:   *base,
		apiKey: apiKey,
		model:  defaultImgModel,
		size:   defaultImgSize,
		http: &http.Client{
			Timeout: generateTimeout,
		},
	}

	for _, cfg := range opts {
		cfg(client)
	}

	return client, nil
}

func WithGenHttpClient(httpClient *http.Client) GenClientConfig {
	return func(client *GenClient) {
		client.http = httpClient
	}
}

func WithGenModel(model string) GenClientConfig {
	return func(client *GenClient) {
		client.model = model
	}
}

type genRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size"`
}

type genResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

// Generate issues exactly one generation request and returns the image URL.
func (gc *GenClient) Generate(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", apperr.NewValidation("missing generation prompt")
	}

	gReq := genRequest{
		Model:  gc.model,
		Prompt: prompt,
		N:      1,
		Size:   gc.size,
	}

	reqDataBytes, err := json.Marshal(gReq)
	if err != nil {
		return "", apperr.NewProvider("image-generation", err)
	}

	reqURL := gc.base.JoinPath("/images/generations")
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL.String(), bytes.NewReader(reqDataBytes))
	if err != nil {
		return "", apperr.NewProvider("image-generation", err)
	}
	request.Header.Set("Authorization", "Bearer "+gc.apiKey)
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")

	resp, err := gc.http.Do(request)
	if err != nil {
		return "", apperr.NewProvider("image-generation", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperr.NewProvider("image-generation", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", apperr.NewProvider("image-generation",
			fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(respBody)))
	}

	var gResp genResponse
	if err := json.Unmarshal(respBody, &gResp); err != nil {
		return "", apperr.NewProvider("image-generation", fmt.Errorf("unmarshal response: %w", err))
	}

	if len(gResp.Data) == 0 || gResp.Data[0].URL == "" {
		return "", apperr.NewProvider("image-generation", fmt.Errorf("response has no image url"))
	}
	return gResp.Data[0].URL, nil
}
