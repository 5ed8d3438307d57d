package service

import (
	"context"
	"errors"
	"testing"

	"excel-interviewer/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateNeutralAnswerKeepsProviderScores(t *testing.T) {
	h := newHarness(&stubProvider{}, testConfig())
	ctx := context.Background()

	question, err := h.questions.ByID(ctx, "basic_001")
	require.NoError(t, err)
	require.NotNil(t, question)

	eval, err := h.evaluator.Evaluate(ctx, question, neutralAnswer, model.DifficultyBasic, 30)
	require.NoError(t, err)

	// No heuristic indicators fire, so the provider's 70s pass through and
	// the overall is the exact weighted mean.
	assert.Equal(t, 70.0, eval.Scores.TechnicalAccuracy)
	assert.Equal(t, 70.0, eval.OverallScore)
	assert.Equal(t, "model", eval.Method)
	assert.Equal(t, 0.65, eval.Confidence)
}

func TestEvaluateBlendsHeuristics(t *testing.T) {
	h := newHarness(&stubProvider{}, testConfig())
	ctx := context.Background()

	question, err := h.questions.ByID(ctx, "basic_001")
	require.NoError(t, err)

	eval, err := h.evaluator.Evaluate(ctx, question, richAnswer, model.DifficultyBasic, 30)
	require.NoError(t, err)

	// functions +5, cell refs +3, ranges +2 on top of the provider's 70.
	assert.Equal(t, 80.0, eval.Scores.TechnicalAccuracy)
	assert.Equal(t, 79.0, eval.Scores.Communication)
	assert.Equal(t, 70.0, eval.Scores.Efficiency)
	assert.Equal(t, eval.Scores.Overall(), eval.OverallScore)
	assert.Greater(t, eval.OverallScore, 70.0)
}

func TestEvaluateBlendClampsAtCeiling(t *testing.T) {
	provider := &stubProvider{
		evalFn: func(_ context.Context, _, _ string, difficulty model.Difficulty, _ model.QuestionType) (*model.Evaluation, error) {
			return uniformEvaluation(98, difficulty), nil
		},
	}
	h := newHarness(provider, testConfig())
	ctx := context.Background()

	question, err := h.questions.ByID(ctx, "basic_001")
	require.NoError(t, err)

	eval, err := h.evaluator.Evaluate(ctx, question, richAnswer, model.DifficultyBasic, 30)
	require.NoError(t, err)

	assert.Equal(t, 100.0, eval.Scores.TechnicalAccuracy)
	assert.LessOrEqual(t, eval.OverallScore, 100.0)
}

func TestEvaluateCacheHitIsIdempotent(t *testing.T) {
	h := newHarness(&stubProvider{}, testConfig())
	ctx := context.Background()

	question, err := h.questions.ByID(ctx, "basic_001")
	require.NoError(t, err)

	first, err := h.evaluator.Evaluate(ctx, question, neutralAnswer, model.DifficultyBasic, 30)
	require.NoError(t, err)

	second, err := h.evaluator.Evaluate(ctx, question, neutralAnswer, model.DifficultyBasic, 30)
	require.NoError(t, err)

	assert.Equal(t, "cached", second.Method)
	assert.Equal(t, first.OverallScore, second.OverallScore)
	assert.Equal(t, first.Scores, second.Scores)

	// Usage statistics must move only on the first evaluation.
	reloaded, err := h.questions.ByID(ctx, "basic_001")
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Usage.TimesUsed)

	stats := h.evaluator.Stats()
	assert.Equal(t, int64(1), stats.Evaluations)
	assert.Equal(t, int64(1), stats.CacheHits)
}

func TestEvaluateFallsBackOnProviderError(t *testing.T) {
	provider := &stubProvider{
		evalFn: func(_ context.Context, _, _ string, _ model.Difficulty, _ model.QuestionType) (*model.Evaluation, error) {
			return nil, errors.New("upstream 500")
		},
	}
	h := newHarness(provider, testConfig())
	ctx := context.Background()

	question, err := h.questions.ByID(ctx, "adv_001")
	require.NoError(t, err)

	eval, err := h.evaluator.Evaluate(ctx, question, neutralAnswer, model.DifficultyAdvanced, 30)
	require.NoError(t, err)

	assert.Equal(t, "fallback", eval.Method)
	// Advanced fallback base is 45, neutral answer leaves it untouched.
	assert.Equal(t, 45.0, eval.Scores.TechnicalAccuracy)
	assert.Equal(t, 0.3, eval.Confidence)
	assert.NotEmpty(t, eval.Feedback)
	assert.Equal(t, int64(1), h.evaluator.Stats().Fallbacks)
}

func TestEvaluatePropagatesCancellation(t *testing.T) {
	provider := &stubProvider{
		evalFn: func(ctx context.Context, _, _ string, _ model.Difficulty, _ model.QuestionType) (*model.Evaluation, error) {
			return nil, ctx.Err()
		},
	}
	h := newHarness(provider, testConfig())

	ctx, cancel := context.WithCancel(context.Background())
	question, err := h.questions.ByID(ctx, "basic_001")
	require.NoError(t, err)
	cancel()

	_, err = h.evaluator.Evaluate(ctx, question, neutralAnswer, model.DifficultyBasic, 30)
	assert.ErrorIs(t, err, context.Canceled)

	// No usage update for a cancelled evaluation.
	reloaded, err := h.questions.ByID(context.Background(), "basic_001")
	require.NoError(t, err)
	assert.Zero(t, reloaded.Usage.TimesUsed)
}
