package llm

import (
	"testing"

	"excel-interviewer/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPayload = `{
	"technical_accuracy": 82,
	"communication_clarity": 74,
	"problem_solving_approach": 78,
	"completeness": 70,
	"efficiency": 65,
	"feedback": "Good grasp of lookups.",
	"strengths": ["Knows INDEX/MATCH"],
	"areas_for_improvement": ["Edge cases"],
	"next_difficulty_level": "advanced"
}`

func TestParseEvaluationValid(t *testing.T) {
	eval, err := parseEvaluation(validPayload, model.DifficultyIntermediate)
	require.NoError(t, err)

	assert.Equal(t, 82.0, eval.Scores.TechnicalAccuracy)
	assert.Equal(t, model.DifficultyAdvanced, eval.NextDifficulty)
	assert.Equal(t, "model", eval.Method)
	// Overall is recomputed from the weights, not read from the payload.
	assert.Equal(t, eval.Scores.Overall(), eval.OverallScore)
}

func TestParseEvaluationStripsCodeFence(t *testing.T) {
	fenced := "```json\n" + validPayload + "\n```"
	eval, err := parseEvaluation(fenced, model.DifficultyIntermediate)
	require.NoError(t, err)
	assert.Equal(t, 82.0, eval.Scores.TechnicalAccuracy)
}

func TestParseEvaluationMissingFieldFails(t *testing.T) {
	payload := `{"technical_accuracy": 80, "feedback": "ok"}`
	_, err := parseEvaluation(payload, model.DifficultyBasic)
	assert.Error(t, err)
}

func TestParseEvaluationMissingFeedbackFails(t *testing.T) {
	payload := `{
		"technical_accuracy": 80, "communication_clarity": 80,
		"problem_solving_approach": 80, "completeness": 80, "efficiency": 80
	}`
	_, err := parseEvaluation(payload, model.DifficultyBasic)
	assert.Error(t, err)
}

func TestParseEvaluationClampsScores(t *testing.T) {
	payload := `{
		"technical_accuracy": 140, "communication_clarity": -10,
		"problem_solving_approach": 80, "completeness": 80, "efficiency": 80,
		"feedback": "ok", "next_difficulty_level": "nonsense"
	}`
	eval, err := parseEvaluation(payload, model.DifficultyIntermediate)
	require.NoError(t, err)

	assert.Equal(t, 100.0, eval.Scores.TechnicalAccuracy)
	assert.Equal(t, 0.0, eval.Scores.Communication)
	// Unknown recommendation falls back to the current difficulty.
	assert.Equal(t, model.DifficultyIntermediate, eval.NextDifficulty)
}

func TestParseEvaluationGarbageFails(t *testing.T) {
	_, err := parseEvaluation("I think the candidate did well overall!", model.DifficultyBasic)
	assert.Error(t, err)
}

func TestFallbackEvaluationBases(t *testing.T) {
	assert.Equal(t, 65.0, FallbackEvaluation(model.DifficultyBasic).Scores.TechnicalAccuracy)
	assert.Equal(t, 55.0, FallbackEvaluation(model.DifficultyIntermediate).Scores.TechnicalAccuracy)
	assert.Equal(t, 45.0, FallbackEvaluation(model.DifficultyAdvanced).Scores.TechnicalAccuracy)

	eval := FallbackEvaluation(model.DifficultyAdvanced)
	assert.Equal(t, "fallback", eval.Method)
	assert.Equal(t, 0.3, eval.Confidence)
	assert.Equal(t, eval.Scores.Overall(), eval.OverallScore)
}
