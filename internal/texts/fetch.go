package texts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// ErrNoAPIKey is returned when the fetcher has no API key to send.
var ErrNoAPIKey = errors.New("no API key configured for sentence generation")

// Fetcher defaults.
const (
	DefaultEndpoint  = "https://api.openai.com/v1/chat/completions"
	DefaultModel     = "gpt-4o-mini"
	DefaultCount     = 10
	DefaultAPIKeyEnv = "OPENAI_API_KEY"
)

const promptTemplate = "Write me %d sentences, separated with newline, that are good for a blind typing test, but not the default examples. Write nothing else but the sentences without the numbers."

// Fetcher requests new practice sentences from an OpenAI-compatible
// chat-completions endpoint.
type Fetcher struct {
	Endpoint string
	Model    string
	Count    int
	APIKey   string
	Client   *http.Client
}

// NewFetcher builds a Fetcher, reading the API key from the named
// environment variable.
func NewFetcher(endpoint, model string, count int, apiKeyEnv string) *Fetcher {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if model == "" {
		model = DefaultModel
	}
	if count <= 0 {
		count = DefaultCount
	}
	if apiKeyEnv == "" {
		apiKeyEnv = DefaultAPIKeyEnv
	}
	return &Fetcher{
		Endpoint: endpoint,
		Model:    model,
		Count:    count,
		APIKey:   strings.TrimSpace(os.Getenv(apiKeyEnv)),
		Client:   &http.Client{Timeout: 60 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Fetch asks the endpoint for new sentences.
func (f *Fetcher) Fetch(ctx context.Context) ([]string, error) {
	if f.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	body, err := json.Marshal(chatRequest{
		Model:    f.Model,
		Messages: []chatMessage{{Role: "user", Content: fmt.Sprintf(promptTemplate, f.Count)}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+f.APIKey)

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("unexpected response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := http.StatusText(resp.StatusCode)
		if parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		return nil, fmt.Errorf("sentence generation failed (status %d): %s", resp.StatusCode, msg)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("%w in response", ErrNoSentences)
	}
	sentences := Clean(strings.Split(parsed.Choices[0].Message.Content, "\n"))
	if len(sentences) == 0 {
		return nil, fmt.Errorf("%w in response", ErrNoSentences)
	}
	return sentences, nil
}

// FetchTo fetches sentences and replaces the file at path with them.
func (f *Fetcher) FetchTo(ctx context.Context, path string) ([]string, error) {
	sentences, err := f.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if err := Write(path, sentences); err != nil {
		return nil, err
	}
	return sentences, nil
}
