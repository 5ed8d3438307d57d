package repository

import (
	"context"
	"testing"

	"excel-interviewer/internal/bank"
	"excel-interviewer/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepoByID(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryQuestionRepo(bank.Catalog(), 1)

	q, err := repo.ByID(ctx, "basic_001")
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, model.DifficultyBasic, q.Difficulty)

	unknown, err := repo.ByID(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, unknown)
}

func TestMemoryRepoRandomHonorsFilterAndExclusions(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryQuestionRepo(bank.Catalog(), 1)

	exclude := []string{"adv_001", "adv_002", "adv_003", "adv_004"}
	for i := 0; i < 10; i++ {
		q, err := repo.Random(ctx, QuestionFilter{Difficulty: model.DifficultyAdvanced}, exclude)
		require.NoError(t, err)
		require.NotNil(t, q)
		assert.Equal(t, "adv_005", q.ID)
	}

	none, err := repo.Random(ctx, QuestionFilter{Difficulty: model.DifficultyAdvanced}, append(exclude, "adv_005"))
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestMemoryRepoSkipsInactiveQuestions(t *testing.T) {
	ctx := context.Background()
	catalog := bank.Catalog()
	for i := range catalog {
		if catalog[i].Difficulty == model.DifficultyBasic {
			catalog[i].Active = false
		}
	}
	repo := NewMemoryQuestionRepo(catalog, 1)

	q, err := repo.Random(ctx, QuestionFilter{Difficulty: model.DifficultyBasic}, nil)
	require.NoError(t, err)
	assert.Nil(t, q)

	active, err := repo.Active(ctx, QuestionFilter{})
	require.NoError(t, err)
	assert.Len(t, active, 10)
}

func TestMemoryRepoRecordUsage(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryQuestionRepo(bank.Catalog(), 1)

	require.NoError(t, repo.RecordUsage(ctx, "basic_001", 80, 45))
	require.NoError(t, repo.RecordUsage(ctx, "basic_001", 40, 15))

	q, err := repo.ByID(ctx, "basic_001")
	require.NoError(t, err)
	assert.Equal(t, 2, q.Usage.TimesUsed)
	assert.InDelta(t, 60.0, q.Usage.AverageScore, 0.001)
	assert.InDelta(t, 50.0, q.Usage.PassRate, 0.001)
}

func TestMemoryRepoInsertDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryQuestionRepo(bank.Catalog(), 1)

	err := repo.Insert(ctx, &model.Question{ID: "basic_001"})
	assert.ErrorIs(t, err, ErrDuplicateQuestion)

	fresh := &model.Question{ID: "custom_001", Active: true, Difficulty: model.DifficultyBasic}
	require.NoError(t, repo.Insert(ctx, fresh))

	q, err := repo.ByID(ctx, "custom_001")
	require.NoError(t, err)
	require.NotNil(t, q)
}
