package models

import "strings"

// SetupRequest configures a new interview session.
type SetupRequest struct {
	JobDescription string          `json:"job_description_text"`
	Role           InterviewerRole `json:"interviewer_role"`
}

// implements the Validator interface used by the validation middleware
func (r *SetupRequest) Validate() error {
	if strings.TrimSpace(r.JobDescription) == "" {
		return &ErrorResponse{
			Code:    "missing_job_description",
			Message: "job_description_text field is required",
		}
	}
	if !r.Role.Valid() {
		return &ErrorResponse{
			Code:    "invalid_role",
			Message: "interviewer_role must be one of: HR, TECHNICAL_MANAGER",
		}
	}
	return nil
}

type SetupResponse struct {
	Message               string `json:"message"`
	SessionID             string `json:"session_id"`
	Role                  string `json:"role"`
	JobDescriptionPreview string `json:"job_description_preview"`
}

// JobDescriptionRequest carries either raw posting text or a URL to fetch it
// from. Exactly one source is required.
type JobDescriptionRequest struct {
	Text string `json:"text,omitempty"`
	URL  string `json:"url,omitempty"`
}

func (r *JobDescriptionRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" && strings.TrimSpace(r.URL) == "" {
		return &ErrorResponse{
			Code:    "missing_source",
			Message: "Either text or url must be provided",
		}
	}
	return nil
}

type JobDescriptionResponse struct {
	CleanedDescription string `json:"cleaned_description"`
}
