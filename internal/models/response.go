package models

// uniform error responses
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// allows ErrorResponse to be returned directly from Validate()
func (e *ErrorResponse) Error() string {
	return e.Message
}

// GenerationRequest is what a provider receives: a system instruction, the
// alternating interviewer/candidate history, and sampling parameters chosen
// by the adapter per intent.
type GenerationRequest struct {
	System          string
	History         []Turn
	Temperature     float32
	MaxOutputTokens int32
	RequestID       string
}

// GenerationResponse is the provider-agnostic result of a generation call.
type GenerationResponse struct {
	Content  string
	Metadata GenerationMetadata
}

// additional information about a generation
type GenerationMetadata struct {
	ProcessingTime int    `json:"processing_time_ms"`
	Provider       string `json:"provider"`
	Model          string `json:"model"`
}
