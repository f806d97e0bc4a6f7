package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/BoualamHamza/InterviewSim/internal/jobdesc"
	"github.com/BoualamHamza/InterviewSim/internal/middleware"
	"github.com/BoualamHamza/InterviewSim/internal/models"
	"github.com/BoualamHamza/InterviewSim/internal/utils"
)

type JobDescriptionHandler struct {
	cleaner *jobdesc.Cleaner
	logger  *zap.Logger
}

func NewJobDescriptionHandler(cleaner *jobdesc.Cleaner, logger *zap.Logger) *JobDescriptionHandler {
	return &JobDescriptionHandler{
		cleaner: cleaner,
		logger:  logger,
	}
}

// CleanHandler normalizes a raw job posting, either from pasted text or by
// fetching a URL. The result is what callers feed into interview setup.
func (h *JobDescriptionHandler) CleanHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.JobDescriptionRequest](r)

	var cleaned string
	if req.Text != "" {
		cleaned = jobdesc.Clean(req.Text)
	} else {
		var err error
		cleaned, err = h.cleaner.FromURL(r.Context(), req.URL)
		if err != nil {
			h.logger.Warn("job posting fetch failed", zap.String("url", req.URL), zap.Error(err))
			utils.JSON(w, http.StatusBadGateway, models.ErrorResponse{
				Code:    "fetch_failed",
				Message: "Failed to fetch job description from URL",
			})
			return
		}
	}

	if cleaned == "" {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "empty_description",
			Message: "Cleaned text is empty",
		})
		return
	}

	utils.JSON(w, http.StatusOK, models.JobDescriptionResponse{CleanedDescription: cleaned})
}
