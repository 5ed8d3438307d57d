package repository

import (
	"context"
	"math/rand"
	"sort"
	"sync"

	"excel-interviewer/internal/model"
)

// memoryQuestionRepo keeps the catalog in process. Used when Mongo is not
// configured and throughout the test suite.
type memoryQuestionRepo struct {
	mu        sync.Mutex
	questions map[string]*model.Question
	rng       *rand.Rand
}

// NewMemoryQuestionRepo creates an in-memory repository preloaded with the
// given questions.
func NewMemoryQuestionRepo(questions []model.Question, seed int64) QuestionRepo {
	repo := &memoryQuestionRepo{
		questions: make(map[string]*model.Question, len(questions)),
		rng:       rand.New(rand.NewSource(seed)),
	}
	for i := range questions {
		q := questions[i]
		repo.questions[q.ID] = &q
	}
	return repo
}

func (r *memoryQuestionRepo) ByID(_ context.Context, id string) (*model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	q, ok := r.questions[id]
	if !ok {
		return nil, nil
	}
	copied := *q
	return &copied, nil
}

func (r *memoryQuestionRepo) Random(_ context.Context, filter QuestionFilter, excludeIDs []string) (*model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	excluded := make(map[string]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}

	candidates := r.matching(filter)
	filtered := candidates[:0]
	for _, q := range candidates {
		if _, skip := excluded[q.ID]; !skip {
			filtered = append(filtered, q)
		}
	}
	if len(filtered) == 0 {
		return nil, nil
	}

	copied := *filtered[r.rng.Intn(len(filtered))]
	return &copied, nil
}

func (r *memoryQuestionRepo) RecordUsage(_ context.Context, id string, score, responseTimeSec float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if q, ok := r.questions[id]; ok {
		q.Usage.Record(score, responseTimeSec)
	}
	return nil
}

func (r *memoryQuestionRepo) Active(_ context.Context, filter QuestionFilter) ([]*model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matches := r.matching(filter)
	result := make([]*model.Question, 0, len(matches))
	for _, q := range matches {
		copied := *q
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *memoryQuestionRepo) Insert(_ context.Context, q *model.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.questions[q.ID]; exists {
		return ErrDuplicateQuestion
	}
	copied := *q
	r.questions[q.ID] = &copied
	return nil
}

// matching returns active questions passing the filter. Caller holds the lock.
func (r *memoryQuestionRepo) matching(filter QuestionFilter) []*model.Question {
	var result []*model.Question
	for _, q := range r.questions {
		if !q.Active {
			continue
		}
		if filter.Difficulty != "" && q.Difficulty != filter.Difficulty {
			continue
		}
		if filter.Type != "" && q.Type != filter.Type {
			continue
		}
		if filter.Category != "" && q.Category != filter.Category {
			continue
		}
		result = append(result, q)
	}
	return result
}
