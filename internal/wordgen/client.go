package wordgen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync/atomic"
	"time"
)

// ChatClient sends one prompt to a chat model and returns the raw
// text of the first choice.
type ChatClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ClientConfig configures the HTTP chat client.
type ClientConfig struct {
	// BaseURL is the API root, e.g. "https://api.siliconflow.cn/v1".
	// The client appends "/chat/completions".
	BaseURL string
	Model   string
	// APIKeys are used round-robin, one per request.
	APIKeys []string
	Timeout time.Duration
}

type chatClient struct {
	cfg      ClientConfig
	http     *http.Client
	observer Observer
	calls    atomic.Uint64
}

// NewChatClient creates a ChatClient for an OpenAI-style
// chat-completions endpoint.
func NewChatClient(cfg ClientConfig, observer Observer) ChatClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &chatClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// chatRequest is the JSON body sent to POST {base_url}/chat/completions.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *chatClient) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	text, err := c.doRequest(ctx, prompt)
	latency := time.Since(start).Milliseconds()
	if err != nil {
		c.observer.OnCallComplete(CallEvent{
			Model:     c.cfg.Model,
			LatencyMs: latency,
			Success:   false,
			ErrorCode: errorCode(err),
		})
		return "", err
	}

	c.observer.OnCallComplete(CallEvent{
		Model:     c.cfg.Model,
		LatencyMs: latency,
		Success:   true,
	})
	return text, nil
}

func (c *chatClient) doRequest(ctx context.Context, prompt string) (string, error) {
	body := chatRequest{
		Model:    c.cfg.Model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
		Stream:   false,
	}
	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := c.cfg.BaseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.nextKey())

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("calling chat api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("chat api returned status %d: %s", resp.StatusCode, raw)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding chat response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("chat response contained no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// nextKey rotates through the configured API keys so no single key
// absorbs the whole request volume.
func (c *chatClient) nextKey() string {
	if len(c.cfg.APIKeys) == 0 {
		return ""
	}
	n := c.calls.Add(1) - 1
	return c.cfg.APIKeys[int(n)%len(c.cfg.APIKeys)]
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "request_failed"
	}
}
