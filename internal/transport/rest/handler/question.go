package handler

import (
	"net/http"

	"excel-interviewer/internal/model"
	"excel-interviewer/internal/repository"
)

// QuestionHandler handles question catalog endpoints
type QuestionHandler struct {
	questions repository.QuestionRepo
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(questions repository.QuestionRepo) *QuestionHandler {
	return &QuestionHandler{questions: questions}
}

// List handles GET /v1/questions with optional difficulty/type/category filters
func (h *QuestionHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := repository.QuestionFilter{
		Difficulty: model.Difficulty(r.URL.Query().Get("difficulty")),
		Type:       model.QuestionType(r.URL.Query().Get("type")),
		Category:   model.Category(r.URL.Query().Get("category")),
	}

	questions, err := h.questions.Active(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Candidates could otherwise fish for the grading hints.
	type listedQuestion struct {
		ID           string             `json:"id"`
		Text         string             `json:"text"`
		Type         model.QuestionType `json:"type"`
		Difficulty   model.Difficulty   `json:"difficulty"`
		Category     model.Category     `json:"category"`
		TimeLimitSec int                `json:"timeLimitSec,omitempty"`
	}
	listed := make([]listedQuestion, 0, len(questions))
	for _, q := range questions {
		listed = append(listed, listedQuestion{
			ID:           q.ID,
			Text:         q.Text,
			Type:         q.Type,
			Difficulty:   q.Difficulty,
			Category:     q.Category,
			TimeLimitSec: q.TimeLimitSec,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"questions": listed,
		"total":     len(listed),
	})
}

// Statistics handles GET /v1/questions/statistics
func (h *QuestionHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	questions, err := h.questions.Active(r.Context(), repository.QuestionFilter{})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	byDifficulty := make(map[string]int)
	byType := make(map[string]int)
	byCategory := make(map[string]int)
	totalUsed := 0
	scoreSum := 0.0
	scored := 0

	for _, q := range questions {
		byDifficulty[string(q.Difficulty)]++
		byType[string(q.Type)]++
		byCategory[string(q.Category)]++
		totalUsed += q.Usage.TimesUsed
		if q.Usage.TimesUsed > 0 {
			scoreSum += q.Usage.AverageScore
			scored++
		}
	}

	averageScore := 0.0
	if scored > 0 {
		averageScore = model.Round2(scoreSum / float64(scored))
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"totalQuestions":  len(questions),
		"byDifficulty":    byDifficulty,
		"byType":          byType,
		"byCategory":      byCategory,
		"totalTimesAsked": totalUsed,
		"averageScore":    averageScore,
	})
}
