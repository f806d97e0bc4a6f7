package llm

import (
	"context"
	"errors"

	"github.com/BoualamHamza/InterviewSim/internal/models"
)

// defines the interface for LLM providers
type Provider interface {
	GenerateContent(ctx context.Context, req *models.GenerationRequest) (*models.GenerationResponse, error)
	GetProviderName() string
}

// represents an error from an LLM provider
type ProviderError struct {
	Provider string
	Code     string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return e.Provider + " error: " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Provider + " error: " + e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Common error codes across providers
const (
	ErrCodeAPIKey       = "invalid_api_key"
	ErrCodeRateLimit    = "rate_limit_exceeded"
	ErrCodeServiceDown  = "service_unavailable"
	ErrCodeInvalidInput = "invalid_input"
	ErrCodeTimeout      = "timeout"
)

// IsAuthError reports whether the failure is an authentication or
// configuration problem rather than a transient backend one. Candidates never
// see the diagnostic detail of these.
func IsAuthError(err error) bool {
	var provErr *ProviderError
	if errors.As(err, &provErr) {
		return provErr.Code == ErrCodeAPIKey
	}
	return false
}

// ErrorCode extracts the provider error code, or "unknown" for errors that
// did not originate at a provider boundary.
func ErrorCode(err error) string {
	var provErr *ProviderError
	if errors.As(err, &provErr) {
		return provErr.Code
	}
	return "unknown"
}
