package handlers

import (
	"net/http"

	"github.com/BoualamHamza/InterviewSim/internal/config"
	"github.com/BoualamHamza/InterviewSim/internal/llm"
	"github.com/BoualamHamza/InterviewSim/internal/prompts"
	"github.com/BoualamHamza/InterviewSim/internal/utils"
)

type ReadinessCheck struct {
	Status  string `json:"status"` // "ok" | "failed"
	Message string `json:"message,omitempty"`
}

type ReadinessResponse struct {
	Status  string                    `json:"status"`  // "ready" | "not_ready"
	Service string                    `json:"service"` // Service name
	Checks  map[string]ReadinessCheck `json:"checks"`  // Individual check results
}

type HealthHandler struct {
	provider      llm.Provider
	promptManager prompts.PromptProvider
	config        *config.Config
}

func NewHealthHandler(provider llm.Provider, promptManager prompts.PromptProvider, cfg *config.Config) *HealthHandler {
	return &HealthHandler{
		provider:      provider,
		promptManager: promptManager,
		config:        cfg,
	}
}

func (handler *HealthHandler) HealthzHandler(writer http.ResponseWriter, request *http.Request) {
	utils.JSON(writer, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "interview",
		"version": "1.0.0",
	})
}

func (handler *HealthHandler) ReadyzHandler(writer http.ResponseWriter, request *http.Request) {
	checks := make(map[string]ReadinessCheck)
	allChecksPass := true

	// verify AI provider is initialized
	if handler.provider == nil {
		checks["provider"] = ReadinessCheck{
			Status:  "failed",
			Message: "AI provider not initialized",
		}
		allChecksPass = false
	} else {
		checks["provider"] = ReadinessCheck{Status: "ok"}
	}

	// verify prompt manager has templates loaded
	if handler.promptManager == nil || len(handler.promptManager.GetTemplates()) == 0 {
		checks["prompt_manager"] = ReadinessCheck{
			Status:  "failed",
			Message: "No prompt templates loaded",
		}
		allChecksPass = false
	} else {
		checks["prompt_manager"] = ReadinessCheck{Status: "ok"}
	}

	// verify configuration is valid
	if handler.config == nil {
		checks["configuration"] = ReadinessCheck{
			Status:  "failed",
			Message: "Configuration not loaded",
		}
		allChecksPass = false
	} else {
		checks["configuration"] = ReadinessCheck{Status: "ok"}
	}

	response := ReadinessResponse{
		Service: "interview",
		Checks:  checks,
	}

	if allChecksPass {
		response.Status = "ready"
		utils.JSON(writer, http.StatusOK, response)
		return
	}

	response.Status = "not_ready"
	utils.JSON(writer, http.StatusServiceUnavailable, response)
}
