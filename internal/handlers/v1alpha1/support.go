package v1alpha1

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	api "github.com/unibuddy/lecture-api/api/v1alpha1"
	"github.com/unibuddy/lecture-api/pkg/log"
)

// (POST /api/v1/support/emotional-analysis)
func (h *ServiceHandler) AnalyzeEmotion(w http.ResponseWriter, r *http.Request) {
	logger := log.NewDebugLogger("support_handler").
		WithContext(r.Context()).
		Operation("analyze_emotion").
		Build()

	var request api.EmotionalAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Error(err).WithString("step", "decode_body").Log()
		respondError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if strings.TrimSpace(request.Message) == "" {
		respondError(w, r, http.StatusBadRequest, "message is required")
		return
	}

	analysis, err := h.supportSrv.AnalyzeEmotion(r.Context(), request)
	if err != nil {
		logger.Error(err).Log()
		respondError(w, r, http.StatusInternalServerError, "failed to analyze emotion")
		return
	}

	logger.Success().Log()
	render.JSON(w, r, analysis)
}

// (POST /api/v1/support/communication-help)
func (h *ServiceHandler) HelpCommunication(w http.ResponseWriter, r *http.Request) {
	logger := log.NewDebugLogger("support_handler").
		WithContext(r.Context()).
		Operation("help_communication").
		Build()

	var request api.CommunicationHelpRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Error(err).WithString("step", "decode_body").Log()
		respondError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if strings.TrimSpace(request.Message) == "" {
		respondError(w, r, http.StatusBadRequest, "message is required")
		return
	}

	help, err := h.supportSrv.HelpCommunication(r.Context(), request)
	if err != nil {
		logger.Error(err).Log()
		respondError(w, r, http.StatusInternalServerError, "failed to process communication request")
		return
	}

	logger.Success().Log()
	render.JSON(w, r, help)
}
