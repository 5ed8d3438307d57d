package service

import (
	"context"

	"excel-interviewer/internal/model"
	"excel-interviewer/internal/repository"

	"go.uber.org/zap"
)

// escalation thresholds over the mean of the last three scores.
const (
	escalateAbove   = 85.0
	deEscalateBelow = 50.0
	recentWindow    = 3
)

// fallbackOffsets is the tier search order when the target difficulty has no
// unasked questions left: one step easier, one harder, then two in each
// direction.
var fallbackOffsets = []int{-1, +1, -2, +2}

// SelectorService picks the next question, adapting difficulty to the
// candidate's recent performance.
type SelectorService struct {
	questions repository.QuestionRepo
	logger    *zap.Logger
}

// NewSelectorService creates the adaptive question selector.
func NewSelectorService(questions repository.QuestionRepo, logger *zap.Logger) *SelectorService {
	return &SelectorService{questions: questions, logger: logger}
}

// TargetDifficulty computes the difficulty the next question should aim for.
// With no history the current tier holds; otherwise the mean of the last
// three scores escalates at 85, de-escalates below 50 and holds in between.
// Moves are one tier at a time and saturate at the extremes.
func (s *SelectorService) TargetDifficulty(current model.Difficulty, scores []float64) model.Difficulty {
	if len(scores) == 0 {
		return current
	}

	recent := scores
	if len(recent) > recentWindow {
		recent = recent[len(recent)-recentWindow:]
	}
	sum := 0.0
	for _, v := range recent {
		sum += v
	}
	mean := sum / float64(len(recent))

	switch {
	case mean >= escalateAbove:
		if next, ok := model.DifficultyAt(current.Index() + 1); ok {
			return next
		}
	case mean < deEscalateBelow:
		if next, ok := model.DifficultyAt(current.Index() - 1); ok {
			return next
		}
	}
	return current
}

// NextQuestion adjusts difficulty from the score history and draws an unasked
// question at the target tier, walking neighbor tiers when the target is
// exhausted. Returns the drawn question and the tier it actually came from,
// or ErrBankExhausted when no unasked question exists anywhere.
func (s *SelectorService) NextQuestion(ctx context.Context, current model.Difficulty, scores []float64, askedIDs []string) (*model.Question, model.Difficulty, error) {
	target := s.TargetDifficulty(current, scores)

	question, err := s.draw(ctx, target, askedIDs)
	if err != nil {
		return nil, target, err
	}
	if question != nil {
		return question, target, nil
	}

	for _, offset := range fallbackOffsets {
		tier, ok := model.DifficultyAt(target.Index() + offset)
		if !ok {
			continue
		}
		question, err = s.draw(ctx, tier, askedIDs)
		if err != nil {
			return nil, target, err
		}
		if question != nil {
			s.logger.Debug("target tier exhausted, using fallback tier",
				zap.String("target", string(target)),
				zap.String("fallback", string(tier)))
			return question, tier, nil
		}
	}

	return nil, target, ErrBankExhausted
}

func (s *SelectorService) draw(ctx context.Context, tier model.Difficulty, askedIDs []string) (*model.Question, error) {
	return s.questions.Random(ctx, repository.QuestionFilter{Difficulty: tier}, askedIDs)
}
