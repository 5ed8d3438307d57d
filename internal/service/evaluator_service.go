package service

import (
	"context"
	"sync/atomic"
	"time"

	"excel-interviewer/internal/cache"
	"excel-interviewer/internal/llm"
	"excel-interviewer/internal/model"
	"excel-interviewer/internal/repository"

	"go.uber.org/zap"
)

// maxAdjustment caps the total heuristic delta per dimension.
const maxAdjustment = 15.0

// EvaluatorService scores candidate answers. It combines the language-model
// judgment with a local lexical analysis and degrades to a deterministic
// fallback when the provider is unavailable, so an answer submission never
// fails just because the model did.
type EvaluatorService struct {
	provider  llm.Provider
	cache     cache.EvaluationCache
	questions repository.QuestionRepo
	logger    *zap.Logger

	evaluations atomic.Int64
	cacheHits   atomic.Int64
	fallbacks   atomic.Int64
}

// NewEvaluatorService creates the evaluation pipeline.
func NewEvaluatorService(provider llm.Provider, evalCache cache.EvaluationCache, questions repository.QuestionRepo, logger *zap.Logger) *EvaluatorService {
	return &EvaluatorService{
		provider:  provider,
		cache:     evalCache,
		questions: questions,
		logger:    logger,
	}
}

// Evaluate runs the full pipeline for one answer: cache lookup, local
// analysis, provider call (with fallback), heuristic blend, confidence, cache
// write and usage-stat update. A cache hit returns the stored evaluation
// without touching usage statistics, so resubmitting an identical answer is
// idempotent.
func (s *EvaluatorService) Evaluate(ctx context.Context, question *model.Question, answer string, difficulty model.Difficulty, responseTimeSec float64) (*model.Evaluation, error) {
	key := cache.Key(question.Text, answer, difficulty)

	if cached, err := s.cache.Get(ctx, key); err != nil {
		s.logger.Warn("evaluation cache read failed", zap.Error(err))
	} else if cached != nil {
		s.cacheHits.Add(1)
		hit := *cached
		hit.Method = "cached"
		return &hit, nil
	}

	analysis := AnalyzeAnswer(answer)

	eval, err := s.provider.Evaluate(ctx, question.Text, answer, difficulty, question.Type)
	if err != nil {
		// A cancelled submission must not be silently rescued by the
		// fallback path.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.fallbacks.Add(1)
		s.logger.Warn("provider evaluation failed, using fallback",
			zap.String("question_id", question.ID),
			zap.Error(err))
		eval = llm.FallbackEvaluation(difficulty)
	}

	blend(eval, analysis)
	if eval.Method != "fallback" {
		eval.Confidence = analysis.confidence()
	}
	eval.EvaluatedAt = time.Now().UTC()
	s.evaluations.Add(1)

	if err := s.cache.Set(ctx, key, eval); err != nil {
		s.logger.Warn("evaluation cache write failed", zap.Error(err))
	}
	if err := s.questions.RecordUsage(ctx, question.ID, eval.OverallScore, responseTimeSec); err != nil {
		s.logger.Warn("usage stats update failed",
			zap.String("question_id", question.ID),
			zap.Error(err))
	}

	return eval, nil
}

// blend folds the local analysis into the provider scores and recomputes the
// weighted overall. Provider-reported overall values are never trusted.
func blend(eval *model.Evaluation, analysis LocalAnalysis) {
	for dim, delta := range analysis.adjustments() {
		eval.Scores.Set(dim, eval.Scores.Get(dim)+delta)
	}
	eval.OverallScore = eval.Scores.Overall()
}

// EvaluatorStats is a point-in-time snapshot of pipeline counters.
type EvaluatorStats struct {
	Evaluations int64 `json:"evaluations"`
	CacheHits   int64 `json:"cacheHits"`
	Fallbacks   int64 `json:"fallbacks"`
}

// Stats returns the pipeline counters since process start.
func (s *EvaluatorService) Stats() EvaluatorStats {
	return EvaluatorStats{
		Evaluations: s.evaluations.Load(),
		CacheHits:   s.cacheHits.Load(),
		Fallbacks:   s.fallbacks.Load(),
	}
}
