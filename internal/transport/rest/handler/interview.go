package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"excel-interviewer/internal/model"
	"excel-interviewer/internal/service"

	"github.com/gorilla/mux"
)

// InterviewHandler handles interview session endpoints
type InterviewHandler struct {
	interviewSvc *service.InterviewService
}

// NewInterviewHandler creates a new interview handler
func NewInterviewHandler(interviewSvc *service.InterviewService) *InterviewHandler {
	return &InterviewHandler{interviewSvc: interviewSvc}
}

// CreateInterviewRequest is the request body for starting an interview
type CreateInterviewRequest struct {
	CandidateName   string `json:"candidateName"`
	Position        string `json:"position"`
	StartDifficulty string `json:"startDifficulty,omitempty"`
}

// SubmitResponseRequest is the request body for answering a question
type SubmitResponseRequest struct {
	Answer          string  `json:"answer"`
	ResponseTimeSec float64 `json:"responseTimeSec,omitempty"`
}

// Create handles POST /v1/interviews
func (h *InterviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateInterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.CandidateName) == "" {
		writeError(w, http.StatusBadRequest, "candidateName is required")
		return
	}

	result, err := h.interviewSvc.Start(r.Context(), req.CandidateName, req.Position, model.Difficulty(req.StartDifficulty))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// Get handles GET /v1/interviews/{sessionId}
func (h *InterviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	result, err := h.interviewSvc.Status(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// SubmitResponse handles POST /v1/interviews/{sessionId}/responses
func (h *InterviewHandler) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req SubmitResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Answer) == "" {
		writeError(w, http.StatusBadRequest, "answer is required")
		return
	}

	result, err := h.interviewSvc.SubmitAnswer(r.Context(), sessionID, req.Answer, req.ResponseTimeSec)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Pause handles POST /v1/interviews/{sessionId}/pause
func (h *InterviewHandler) Pause(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	result, err := h.interviewSvc.Pause(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Resume handles POST /v1/interviews/{sessionId}/resume
func (h *InterviewHandler) Resume(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	result, err := h.interviewSvc.Resume(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Cancel handles DELETE /v1/interviews/{sessionId}
func (h *InterviewHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	result, err := h.interviewSvc.Cancel(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Assessment handles GET /v1/interviews/{sessionId}/assessment
func (h *InterviewHandler) Assessment(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	assessment, err := h.interviewSvc.Assessment(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assessment)
}
