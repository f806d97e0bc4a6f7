package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BoualamHamza/InterviewSim/internal/middleware"
	"github.com/BoualamHamza/InterviewSim/internal/models"
	"github.com/BoualamHamza/InterviewSim/internal/session"
	"github.com/BoualamHamza/InterviewSim/internal/utils"
)

const previewLength = 200

type InterviewHandler struct {
	store  session.Store
	logger *zap.Logger
}

func NewInterviewHandler(store session.Store, logger *zap.Logger) *InterviewHandler {
	return &InterviewHandler{
		store:  store,
		logger: logger,
	}
}

// CreateHandler configures a new interview session and returns its id. The
// channel endpoint picks the session up from the store by that id.
func (h *InterviewHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.SetupRequest](r)

	sessionID := uuid.New().String()
	sess, err := h.store.Create(r.Context(), sessionID, req.JobDescription, req.Role)
	if err != nil {
		h.logger.Error("failed to create session", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "store_error",
			Message: "Failed to create interview session",
		})
		return
	}

	h.logger.Info("interview session configured",
		zap.String("session_id", sess.ID),
		zap.String("role", string(sess.Role)))

	utils.JSON(w, http.StatusOK, models.SetupResponse{
		Message:               "Interview session configured",
		SessionID:             sess.ID,
		Role:                  string(sess.Role),
		JobDescriptionPreview: preview(sess.JobDescription),
	})
}

func preview(text string) string {
	if len(text) > previewLength {
		return text[:previewLength]
	}
	return text
}
