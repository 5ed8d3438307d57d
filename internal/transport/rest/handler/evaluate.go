package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"excel-interviewer/internal/model"
	"excel-interviewer/internal/repository"
	"excel-interviewer/internal/service"
)

// EvaluateHandler exposes the evaluation pipeline outside of a session, for
// grading ad-hoc answers against catalog questions.
type EvaluateHandler struct {
	evaluator *service.EvaluatorService
	questions repository.QuestionRepo
}

// NewEvaluateHandler creates a new evaluate handler
func NewEvaluateHandler(evaluator *service.EvaluatorService, questions repository.QuestionRepo) *EvaluateHandler {
	return &EvaluateHandler{evaluator: evaluator, questions: questions}
}

// EvaluateRequest is the request body for an ad-hoc evaluation
type EvaluateRequest struct {
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
	Difficulty string `json:"difficulty,omitempty"`
}

// Evaluate handles POST /v1/evaluate
func (h *EvaluateHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.QuestionID == "" || strings.TrimSpace(req.Answer) == "" {
		writeError(w, http.StatusBadRequest, "questionId and answer are required")
		return
	}

	question, err := h.questions.ByID(r.Context(), req.QuestionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if question == nil {
		writeError(w, http.StatusNotFound, "question not found")
		return
	}

	difficulty := model.Difficulty(req.Difficulty)
	if !difficulty.IsValid() {
		difficulty = question.Difficulty
	}

	evaluation, err := h.evaluator.Evaluate(r.Context(), question, req.Answer, difficulty, 0)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, evaluation)
}
