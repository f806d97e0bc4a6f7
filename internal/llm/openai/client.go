package openai

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/BoualamHamza/InterviewSim/internal/llm"
	"github.com/BoualamHamza/InterviewSim/internal/models"
)

// Client represents an OpenAI chat-completions client
type Client struct {
	client *goopenai.Client
	config *Config
}

func NewClient(config *Config) (*Client, error) {
	return &Client{
		client: goopenai.NewClient(config.APIKey),
		config: config,
	}, nil
}

func (c *Client) GenerateContent(ctx context.Context, req *models.GenerationRequest) (*models.GenerationResponse, error) {
	startTime := time.Now()

	messages := make([]goopenai.ChatCompletionMessage, 0, len(req.History)+1)
	messages = append(messages, goopenai.ChatCompletionMessage{
		Role:    goopenai.ChatMessageRoleSystem,
		Content: req.System,
	})
	for _, turn := range req.History {
		role := goopenai.ChatMessageRoleUser
		if turn.Speaker == models.SpeakerInterviewer {
			role = goopenai.ChatMessageRoleAssistant
		}
		messages = append(messages, goopenai.ChatCompletionMessage{
			Role:    role,
			Content: turn.Text,
		})
	}

	completion, err := c.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:       c.config.Model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   int(req.MaxOutputTokens),
	})
	if err != nil {
		return nil, c.wrapError(err)
	}

	if len(completion.Choices) == 0 {
		return nil, &llm.ProviderError{
			Provider: "openai",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "No response generated",
		}
	}

	content := strings.TrimSpace(completion.Choices[0].Message.Content)
	if content == "" {
		return nil, &llm.ProviderError{
			Provider: "openai",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "Empty response generated",
		}
	}

	return &models.GenerationResponse{
		Content: content,
		Metadata: models.GenerationMetadata{
			ProcessingTime: int(time.Since(startTime).Milliseconds()),
			Provider:       "openai",
			Model:          c.config.Model,
		},
	}, nil
}

func (c *Client) wrapError(err error) error {
	code := llm.ErrCodeServiceDown
	message := "Failed to generate completion"

	var apiErr *goopenai.APIError
	switch {
	case errors.As(err, &apiErr):
		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			code = llm.ErrCodeAPIKey
			message = "Authentication with OpenAI failed"
		case http.StatusTooManyRequests:
			code = llm.ErrCodeRateLimit
			message = "OpenAI rate limit exceeded"
		}
	case errors.Is(err, context.DeadlineExceeded):
		code = llm.ErrCodeTimeout
		message = "OpenAI request timed out"
	}

	return &llm.ProviderError{
		Provider: "openai",
		Code:     code,
		Message:  message,
		Err:      err,
	}
}

func (c *Client) GetProviderName() string {
	return "openai"
}
