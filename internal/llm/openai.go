package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	chatSeed      = 42
	chatAttempts  = 3
	retryInterval = 2 * time.Second
)

// OpenAI talks to an OpenAI-compatible chat completions endpoint.
// Azure OpenAI uses the same wire format with a per-deployment URL and
// an api-key header instead of a bearer token; NewAzure covers that.
type OpenAI struct {
	Model string

	name   string
	url    string
	apiKey string
	azure  bool
	client *http.Client
	sleep  func(time.Duration)
}

// NewOpenAI creates a client for {baseURL}/chat/completions with bearer
// token auth.
func NewOpenAI(baseURL, apiKey, model string) *OpenAI {
	return &OpenAI{
		Model:  model,
		name:   "openai",
		url:    strings.TrimRight(baseURL, "/") + "/chat/completions",
		apiKey: apiKey,
		client: &http.Client{},
		sleep:  time.Sleep,
	}
}

// NewAzure creates a client for an Azure OpenAI deployment. The model
// is implied by the deployment, but still sent in the payload as Azure
// accepts and ignores it.
func NewAzure(endpoint, deployment, apiVersion, apiKey string) *OpenAI {
	u := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		strings.TrimRight(endpoint, "/"), deployment, url.QueryEscape(apiVersion))
	return &OpenAI{
		Model:  deployment,
		name:   "azure",
		url:    u,
		apiKey: apiKey,
		azure:  true,
		client: &http.Client{},
		sleep:  time.Sleep,
	}
}

func (o *OpenAI) Name() string { return o.name }

// Chat sends the transcript and returns the first choice's content.
// Transient failures are retried up to chatAttempts times with a fixed
// pause, bumping the seed so a poisoned sample isn't replayed.
func (o *OpenAI) Chat(ctx context.Context, messages []Message) (string, error) {
	var lastErr error
	for attempt := 0; attempt < chatAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			default:
			}
			o.sleep(retryInterval)
		}

		reply, err := o.chatOnce(ctx, messages, chatSeed+attempt)
		if err == nil {
			return reply, nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("%s chat failed after %d attempts: %w", o.name, chatAttempts, lastErr)
}

func (o *OpenAI) chatOnce(ctx context.Context, messages []Message, seed int) (string, error) {
	payload := struct {
		Model    string    `json:"model"`
		Messages []Message `json:"messages"`
		Seed     int       `json:"seed"`
	}{
		Model:    o.Model,
		Messages: messages,
		Seed:     seed,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshaling chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.url, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if o.azure {
		req.Header.Set("api-key", o.apiKey)
	} else {
		req.Header.Set("Authorization", "Bearer "+o.apiKey)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling %s: %w", o.name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("%s API error: %d - %s", o.name, resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var body struct {
		Choices []struct {
			Message Message `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("parsing %s response: %w", o.name, err)
	}
	if len(body.Choices) == 0 {
		return "", fmt.Errorf("%s returned no choices", o.name)
	}
	return body.Choices[0].Message.Content, nil
}
