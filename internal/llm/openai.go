package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Client provides access to an OpenAI-compatible chat completions API.
// Responses are never cached: every call produces fresh output, which is
// what test-fixture generation wants.
type Client struct {
	apiKey      string
	baseURL     string
	model       string
	maxTokens   int
	temperature float64
	httpClient  *http.Client

	rateLimiter *rate.Limiter
}

// Config for the completion client
type Config struct {
	APIKey       string
	BaseURL      string
	Model        string
	MaxTokens    int
	Temperature  float64
	Timeout      time.Duration
	RateLimitRPM int // Requests per minute
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		BaseURL:      "https://api.openai.com",
		Model:        "gpt-3.5-turbo",
		MaxTokens:    1000,
		Temperature:  0.7,
		Timeout:      30 * time.Second,
		RateLimitRPM: 60,
	}
}

// New creates a new completion client. Construction never calls the
// API, so an invalid key is not detected until first use.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	// Merge with defaults
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultConfig().BaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultConfig().Model
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = DefaultConfig().MaxTokens
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if cfg.RateLimitRPM == 0 {
		cfg.RateLimitRPM = DefaultConfig().RateLimitRPM
	}

	limiter := rate.NewLimiter(rate.Limit(float64(cfg.RateLimitRPM)/60.0), 1)

	return &Client{
		apiKey:      cfg.APIKey,
		baseURL:     cfg.BaseURL,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		rateLimiter: limiter,
	}, nil
}

// Request represents a chat completions request
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
}

// Message represents a conversation message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Response represents a chat completions response
type Response struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

// Choice is one completion alternative
type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

// Usage contains token usage information
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// errorBody is the error envelope the API returns on non-2xx responses
type errorBody struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

type parsedError struct {
	Message string
	Code    string
}

func parseErrorBody(body string) (parsedError, bool) {
	var eb errorBody
	if err := json.Unmarshal([]byte(body), &eb); err != nil {
		return parsedError{}, false
	}
	if eb.Error.Message == "" && eb.Error.Code == "" {
		return parsedError{}, false
	}
	return parsedError{Message: eb.Error.Message, Code: eb.Error.Code}, true
}

// Complete sends a single-turn completion request and returns the
// response text. All failures come back as *APIError.
func (c *Client) Complete(ctx context.Context, prompt string) (string, *Usage, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", nil, newNetworkError(fmt.Errorf("rate limit wait: %w", err))
	}

	req := Request{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		Messages: []Message{
			{Role: "user", Content: prompt},
		},
	}

	resp, err := c.doRequest(ctx, req)
	if err != nil {
		return "", nil, err
	}

	if len(resp.Choices) == 0 {
		return "", &resp.Usage, newMalformedError("empty response", nil)
	}

	return resp.Choices[0].Message.Content, &resp.Usage, nil
}

// CompleteJSON sends a completion request and decodes the first JSON
// object or array found in the response text into result. The model is
// allowed to wrap the payload in prose or code fences; extraction
// tolerates both.
func (c *Client) CompleteJSON(ctx context.Context, prompt string, result interface{}) (*Usage, error) {
	text, usage, err := c.Complete(ctx, prompt)
	if err != nil {
		return usage, err
	}

	jsonStr := ExtractJSON(text)
	if jsonStr == "" {
		return usage, newMalformedError("no JSON found in response", nil)
	}

	if err := json.Unmarshal([]byte(jsonStr), result); err != nil {
		return usage, newMalformedError("invalid JSON in response", err)
	}

	return usage, nil
}

// Ping verifies the credential with a cheap authenticated request.
// Callers that want to know up front whether model-backed generation
// will work can probe this instead of waiting for the first fallback.
func (c *Client) Ping(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/v1/models/"+c.model, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return newNetworkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return newStatusError(resp.StatusCode, string(body))
	}

	return nil
}

// Model returns the model identifier being used
func (c *Client) Model() string {
	return c.model
}

// doRequest performs the HTTP request
func (c *Client) doRequest(ctx context.Context, req Request) (*Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, newNetworkError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newNetworkError(fmt.Errorf("reading response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, newStatusError(resp.StatusCode, string(respBody))
	}

	var apiResp Response
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, newMalformedError("parsing response body", err)
	}

	return &apiResp, nil
}
