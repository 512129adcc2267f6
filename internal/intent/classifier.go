package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Classifier maps free text to a typed Intent.
type Classifier interface {
	Classify(ctx context.Context, text string) (*Intent, error)
}

// chatRequest is the OpenAI-compatible chat completions request body.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the subset of the completions response we read.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// OpenAIClassifier classifies utterances through an OpenAI-compatible
// chat completions endpoint. Every call carries a bounded timeout; the
// caller is expected to degrade to the chat fallback on any error.
type OpenAIClassifier struct {
	baseURL    string
	apiKey     string
	model      string
	timeout    time.Duration
	loc        *time.Location
	httpClient *http.Client
}

// NewOpenAIClassifier creates a classifier against the given API base URL
// (e.g. "https://api.openai.com/v1").
func NewOpenAIClassifier(baseURL, apiKey, model string, timeout time.Duration, loc *time.Location, httpClient *http.Client) *OpenAIClassifier {
	return &OpenAIClassifier{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		timeout:    timeout,
		loc:        loc,
		httpClient: httpClient,
	}
}

// Classify sends the utterance to the completions API and decodes the
// returned JSON into an Intent.
func (c *OpenAIClassifier) Classify(ctx context.Context, text string) (*Intent, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: BuildSystemPrompt(time.Now().In(c.loc))},
			{Role: "user", Content: text},
		},
		Temperature: 0,
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling classifier request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", strings.NewReader(string(jsonBody)))
	if err != nil {
		return nil, fmt.Errorf("creating classifier request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling classifier: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("calling classifier: unexpected status %d", resp.StatusCode)
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding classifier response: %w", err)
	}
	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("classifier returned no choices")
	}

	return Decode([]byte(result.Choices[0].Message.Content))
}
