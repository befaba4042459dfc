package claude

import (
	"context"
	"fmt"
	"time"

	"moneyplatforms/lib/telemetry"

	"github.com/go-resty/resty/v2"
)

const DefaultBaseUrl = "https://api.anthropic.com"

type Config struct {
	APIKey string
	// zero values fall back to the compiled defaults below
	BaseUrl     string
	Model       string
	MaxTokens   int
	Temperature float64
}

// Client talks to the messages API. Responses are freeform text; the
// caller owns deciding whether that text parses into anything.
type Client struct {
	http   *resty.Client
	config Config
}

func NewClient(config Config) *Client {
	if config.BaseUrl == "" {
		config.BaseUrl = DefaultBaseUrl
	}
	if config.Model == "" {
		config.Model = "claude-3-5-sonnet-20240620"
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = 8000
	}
	if config.Temperature == 0 {
		config.Temperature = 0.4
	}

	client := resty.New()
	client.SetBaseURL(config.BaseUrl)
	client.SetTimeout(time.Minute * 2)
	client.SetHeader("x-api-key", config.APIKey)
	client.SetHeader("anthropic-version", "2023-06-01")
	client.SetHeader("content-type", "application/json")
	telemetry.InstrumentResty(client, "lib/claude")

	return &Client{http: client, config: config}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	System      string    `json:"system"`
	Messages    []message `json:"messages"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type messagesResponse struct {
	Content []contentBlock `json:"content"`
}

// Complete sends one user prompt and returns the first content block of
// the reply as raw text.
func (c *Client) Complete(ctx context.Context, system, prompt string) (string, error) {
	var out messagesResponse
	res, err := c.http.R().
		SetContext(ctx).
		SetBody(messagesRequest{
			Model:       c.config.Model,
			MaxTokens:   c.config.MaxTokens,
			Temperature: c.config.Temperature,
			System:      system,
			Messages:    []message{{Role: "user", Content: prompt}},
		}).
		SetResult(&out).
		Post("/v1/messages")
	if err != nil {
		return "", err
	}
	if res.IsError() {
		return "", fmt.Errorf("messages api: %s: %s", res.Status(), res.String())
	}
	if len(out.Content) == 0 {
		return "", fmt.Errorf("messages api returned no content blocks")
	}
	return out.Content[0].Text, nil
}
