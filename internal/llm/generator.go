package llm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BoualamHamza/InterviewSim/internal/models"
	"github.com/BoualamHamza/InterviewSim/internal/prompts"
)

// Intent selects what kind of text the interview needs next.
type Intent string

const (
	IntentQuestion Intent = "question"
	IntentFeedback Intent = "feedback"
)

// Sampling parameters per intent. Feedback runs cooler and with a larger
// output budget than questions.
const (
	questionTemperature = 0.7
	questionMaxTokens   = 150
	feedbackTemperature = 0.5
	feedbackMaxTokens   = 250
)

// Generator is the text-generation adapter: it turns a session's role, job
// description and history into a provider request, and turns provider
// failures into typed ProviderErrors. No raw backend error crosses it.
type Generator struct {
	provider      Provider
	promptManager prompts.PromptProvider
	logger        *zap.Logger
}

func NewGenerator(provider Provider, promptManager prompts.PromptProvider, logger *zap.Logger) *Generator {
	return &Generator{
		provider:      provider,
		promptManager: promptManager,
		logger:        logger,
	}
}

// Generate produces the next interviewer question or the closing feedback.
// History must contain only interviewer/candidate turns in alternating order.
func (g *Generator) Generate(ctx context.Context, role models.InterviewerRole, jobDescription string, history []models.Turn, intent Intent) (*models.GenerationResponse, error) {
	mode, variant := "interview", "followup"
	temperature := float32(questionTemperature)
	maxTokens := int32(questionMaxTokens)

	switch intent {
	case IntentQuestion:
		if len(history) == 0 {
			variant = "opening"
		}
	case IntentFeedback:
		mode, variant = "feedback", "default"
		temperature = feedbackTemperature
		maxTokens = feedbackMaxTokens
	default:
		return nil, &ProviderError{
			Provider: g.provider.GetProviderName(),
			Code:     ErrCodeInvalidInput,
			Message:  "unknown generation intent: " + string(intent),
		}
	}

	system, err := g.promptManager.BuildPrompt(mode, variant, string(role), jobDescription)
	if err != nil {
		return nil, &ProviderError{
			Provider: g.provider.GetProviderName(),
			Code:     ErrCodeInvalidInput,
			Message:  "failed to build prompt",
			Err:      err,
		}
	}

	requestID := uuid.New().String()
	g.logger.Info("requesting generation",
		zap.String("request_id", requestID),
		zap.String("intent", string(intent)),
		zap.String("provider", g.provider.GetProviderName()),
		zap.Int("history_len", len(history)))

	resp, err := g.provider.GenerateContent(ctx, &models.GenerationRequest{
		System:          system,
		History:         history,
		Temperature:     temperature,
		MaxOutputTokens: maxTokens,
		RequestID:       requestID,
	})
	if err != nil {
		err = g.classify(err)
		g.logger.Error("generation failed",
			zap.String("request_id", requestID),
			zap.String("intent", string(intent)),
			zap.String("code", ErrorCode(err)),
			zap.Error(err))
		return nil, err
	}

	g.logger.Info("generation succeeded",
		zap.String("request_id", requestID),
		zap.String("model", resp.Metadata.Model),
		zap.Int("processing_time_ms", resp.Metadata.ProcessingTime))
	return resp, nil
}

// classify guarantees every failure leaving the adapter is a ProviderError.
func (g *Generator) classify(err error) error {
	var provErr *ProviderError
	if errors.As(err, &provErr) {
		return provErr
	}
	code := ErrCodeServiceDown
	if errors.Is(err, context.DeadlineExceeded) {
		code = ErrCodeTimeout
	}
	return &ProviderError{
		Provider: g.provider.GetProviderName(),
		Code:     code,
		Message:  "generation request failed",
		Err:      err,
	}
}
