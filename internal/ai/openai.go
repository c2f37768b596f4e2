package ai

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

const defaultTimeout = 60 * time.Second

type ClientConfig func(client *OpenAIClient)

// OpenAIClient talks to any OpenAI-compatible chat-completions endpoint.
type OpenAIClient struct {
	base   url.URL
	apiKey string
	model  string
	http   *http.Client
}

func NewOpenAIClient(baseUrl, apiKey string, opts ...ClientConfig) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, apperr.NewConfig("completion api key is not set")
	}

	base, err := url.Parse(baseUrl)
	if err != nil {
		return nil, apperr.NewConfigWrap("invalid completion base url", err)
	}

	client := &OpenAIClient{
		base:   *base,
		apiKey: apiKey,
		model:  defaultModel,
		http: &http.Client{
			Timeout: defaultTimeout,
		},
	}

	for _, cfg := range opts {
		cfg(client)
	}

	return client, nil
}

func WithHttpClient(httpClient *http.Client) ClientConfig {
	return func(client *OpenAIClient) {
		client.http = httpClient
	}
}

func WithModel(model string) ClientConfig {
	return func(client *OpenAIClient) {
		client.model = model
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete issues exactly one request; retrying is the job queue's business.
func (oc *OpenAIClient) Complete(ctx context.Context, req Request) (string, error) {
	if req.User == "" {
		return "", apperr.NewValidation("missing user instruction")
	}

	var messages []chatMessage
	if req.System != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.User})

	cReq := chatRequest{
		Model:       oc.model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	var resp chatResponse
	if err := oc.do(ctx, http.MethodPost, "/chat/completions", cReq, &resp); err != nil {
		return "", apperr.NewProvider("completion", err)
	}

	if len(resp.Choices) == 0 {
		return "", apperr.NewProvider("completion", fmt.Errorf("response has no choices"))
	}

	return resp.Choices[0].Message.Content, nil
}

func (oc *OpenAIClient) do(ctx context.Context, method, path string, reqData, respData any) error {
	reqDataBytes, err := json.Marshal(reqData)
	if err != nil {
		return err
	}

	reqURL := oc.base.JoinPath(path)
	request, err := http.NewRequestWithContext(ctx, method, reqURL.String(), bytes.NewReader(reqDataBytes))
	if err != nil {
		return err
	}

	request.Header.Set("Authorization", "Bearer "+oc.apiKey)
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")

	resp, err := oc.http.Do(request)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, respData); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	return nil
}
