package gemini

import (
	"context"
	"time"

	"google.golang.org/genai"

	"github.com/BoualamHamza/InterviewSim/internal/llm"
	"github.com/BoualamHamza/InterviewSim/internal/models"
)

// Client represents a Gemini LLM client
type Client struct {
	client *genai.Client
	config *Config
}

func NewClient(config *Config) (*Client, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeAPIKey,
			Message:  "Failed to create Gemini client",
			Err:      err,
		}
	}

	return &Client{
		client: client,
		config: config,
	}, nil
}

func (c *Client) GenerateContent(ctx context.Context, req *models.GenerationRequest) (*models.GenerationResponse, error) {
	startTime := time.Now()

	contents := make([]*genai.Content, 0, len(req.History))
	for _, turn := range req.History {
		role := "user"
		if turn.Speaker == models.SpeakerInterviewer {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: turn.Text}},
		})
	}
	if len(contents) == 0 {
		// Gemini rejects an empty contents list, so the opening request
		// carries a single user nudge.
		contents = genai.Text("Please begin.")
	}

	result, err := c.client.Models.GenerateContent(ctx, c.config.Model, contents, &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: req.System}}},
		Temperature:       genai.Ptr(req.Temperature),
		MaxOutputTokens:   genai.Ptr(req.MaxOutputTokens),
	})
	if err != nil {
		code := llm.ErrCodeServiceDown
		if ctx.Err() == context.DeadlineExceeded {
			code = llm.ErrCodeTimeout
		}
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     code,
			Message:  "Failed to generate content",
			Err:      err,
		}
	}

	if result == nil {
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "No response generated",
		}
	}

	text, err := result.Text()
	if err != nil {
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "Failed to extract response text",
			Err:      err,
		}
	}
	if text == "" {
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "Empty response generated",
		}
	}

	return &models.GenerationResponse{
		Content: text,
		Metadata: models.GenerationMetadata{
			ProcessingTime: int(time.Since(startTime).Milliseconds()),
			Provider:       "gemini",
			Model:          c.config.Model,
		},
	}, nil
}

func (c *Client) GetProviderName() string {
	return "gemini"
}
