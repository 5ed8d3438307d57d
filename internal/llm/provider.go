// Package llm wraps the language-model provider used for answer evaluation
// and narrative feedback. The provider is treated as slow, rate-limited and
// occasionally malformed; callers degrade to fallback values on any error.
package llm

import (
	"context"

	"excel-interviewer/internal/model"
)

// Provider is the language-model contract consumed by the orchestrator.
type Provider interface {
	// Generate returns free text for a prompt.
	Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)

	// Evaluate scores a question/answer pair and returns the raw model
	// evaluation. Sub-scores are clamped to [0,100]; any missing field or
	// unparseable payload is an error.
	Evaluate(ctx context.Context, questionText, answer string, difficulty model.Difficulty, questionType model.QuestionType) (*model.Evaluation, error)
}

// FallbackEvaluation is the deterministic baseline used when the provider is
// unavailable or returns unusable data. Base scores shrink with difficulty:
// a weak unverifiable answer to a hard question earns less benefit of the
// doubt than one to an easy question.
func FallbackEvaluation(difficulty model.Difficulty) *model.Evaluation {
	base := 55.0
	switch difficulty {
	case model.DifficultyBasic:
		base = 65
	case model.DifficultyIntermediate:
		base = 55
	case model.DifficultyAdvanced:
		base = 45
	}

	scores := model.Scores{
		TechnicalAccuracy: base,
		Communication:     base,
		ProblemSolving:    base,
		Completeness:      base,
		Efficiency:        base,
	}

	return &model.Evaluation{
		Scores:       scores,
		OverallScore: scores.Overall(),
		Feedback: "Unable to fully evaluate response due to technical issues. Based on " + string(difficulty) +
			" level expectations, this appears to be a reasonable attempt. Please provide more specific Excel details for better assessment.",
		Strengths: []string{"Attempted to answer the question", "Showed understanding of the problem"},
		Improvements: []string{
			"Provide specific Excel formulas and functions",
			"Explain step-by-step process",
			"Include practical examples",
		},
		NextDifficulty: difficulty,
		Confidence:     0.3,
		Method:         "fallback",
	}
}
