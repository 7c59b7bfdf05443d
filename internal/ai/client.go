// Package ai wraps the Azure OpenAI chat-completion endpoint.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	"kix-ai-bridge/internal/common/config"
	"kix-ai-bridge/internal/common/errors"
	"kix-ai-bridge/internal/common/logger"
)

// Client sends two-message chat completion requests (system prompt + JSON
// ticket payload) and extracts the textual answer. No retries, no streaming.
type Client struct {
	client     *openai.Client
	deployment string
	logger     logger.Logger
}

func NewClient(cfg config.AzureOpenAIConfig, log logger.Logger) *Client {
	clientCfg := openai.DefaultAzureConfig(cfg.APIKey, cfg.Endpoint)
	clientCfg.APIVersion = cfg.APIVersion
	deployment := cfg.Deployment
	clientCfg.AzureModelMapperFunc = func(model string) string {
		return deployment
	}
	clientCfg.HTTPClient = &http.Client{
		Timeout: config.GetDuration(cfg.Timeout),
	}

	return &Client{
		client:     openai.NewClientWithConfig(clientCfg),
		deployment: deployment,
		logger: log.With(map[string]interface{}{
			"component": "ai-client",
		}),
	}
}

// Summarize serializes the payload, sends it together with the prompt, and
// returns the first choice's message content. An empty or missing content is
// an EMPTY_COMPLETION failure.
func (c *Client) Summarize(ctx context.Context, ticketID int64, payload interface{}, prompt string, temperature float32) (string, error) {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return "", errors.NewEmptyCompletionError(fmt.Sprintf("serialize payload: %v", err))
	}

	// The request struct drops a zero temperature via omitempty, which would
	// leave the provider free to apply its own default. The smallest positive
	// float keeps an explicit 0 on the wire.
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.deployment,
		Temperature: temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt},
			{Role: openai.ChatMessageRoleUser, Content: string(payloadJSON)},
		},
	})
	if err != nil {
		return "", errors.NewEmptyCompletionError(err.Error())
	}

	if len(resp.Choices) == 0 {
		return "", errors.NewEmptyCompletionError("response contained no choices")
	}

	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", errors.NewEmptyCompletionError("first choice contained no message content")
	}

	c.logger.Debug("completion received", map[string]interface{}{
		"ticketId":     ticketID,
		"finishReason": resp.Choices[0].FinishReason,
	})

	return content, nil
}
