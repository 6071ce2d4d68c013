// compgen/services/llm/openrouter_client.go
package llm

import (
	httputils "compgen/compgen/utils/http"
	"compgen/compgen/utils/logging"
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// OpenRouterClient talks to OpenRouter's OpenAI-compatible chat endpoint.
type OpenRouterClient struct {
	baseURL string
	apiKey  string
}

func NewOpenRouterClient(baseURL, apiKey string) *OpenRouterClient {
	if baseURL == "" {
		baseURL = "https://openrouter.ai/api/v1"
	}
	return &OpenRouterClient{
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// Run issues one blocking chat completion.
func (c *OpenRouterClient) Run(ctx context.Context, req ChatRequest) (string, error) {
	defer logging.LogDuration(ctx, "openrouter_run")()

	url := fmt.Sprintf("%s/chat/completions", c.baseURL)

	var resp struct {
		ID      string `json:"id"`
		Model   string `json:"model"`
		Choices []struct {
			Message Message `json:"message"`
		} `json:"choices"`
	}

	if err := httputils.PostJSONWithAuth(ctx, url, c.apiKey, req, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) > 0 {
		return resp.Choices[0].Message.Content, nil
	}
	return "", fmt.Errorf("no choices returned")
}

// RunStream issues a streaming completion and yields content deltas as
// they arrive over SSE.
func (c *OpenRouterClient) RunStream(ctx context.Context, req ChatRequest) (<-chan string, error) {
	defer logging.LogDuration(ctx, "openrouter_run_stream")()

	req.Stream = true
	url := fmt.Sprintf("%s/chat/completions", c.baseURL)
	body, err := httputils.PostStreamWithAuth(ctx, url, c.apiKey, req)
	if err != nil {
		return nil, err
	}

	ch := make(chan string)

	go func() {
		defer func() {
			close(ch)
			body.Close()
		}()

		reader := bufio.NewReader(body)

		for {
			select {
			case <-ctx.Done():
				logging.AppLogger.Info("openrouter RunStream context cancelled")
				return
			default:
			}

			line, err := reader.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return
				}
				logging.ErrorLogger.Error("openrouter stream read error", zap.Error(err))
				return
			}

			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if strings.HasPrefix(line, "data:") {
				line = strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			}
			if line == "[DONE]" {
				return
			}

			var chunk struct {
				Choices []struct {
					Delta struct {
						Content string `json:"content"`
					} `json:"delta"`
					Message *Message `json:"message,omitempty"`
				} `json:"choices"`
			}
			if err := json.Unmarshal([]byte(line), &chunk); err != nil {
				logging.ErrorLogger.Error("openrouter stream parse error",
					zap.Error(err), zap.String("raw_line", line))
				continue
			}

			for _, choice := range chunk.Choices {
				content := choice.Delta.Content
				if content == "" && choice.Message != nil {
					content = choice.Message.Content
				}
				if content == "" {
					continue
				}
				select {
				case ch <- content:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}
