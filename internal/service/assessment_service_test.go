package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"excel-interviewer/internal/model"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func sessionWithScores(scores []float64, categories []model.Category) *model.Session {
	session := &model.Session{
		ID:            "sess-1",
		CandidateName: "Dana",
		Position:      "data_analyst",
		Status:        model.SessionCompleted,
		StartTime:     time.Now().Add(-20 * time.Minute),
	}
	for i, score := range scores {
		category := model.CategoryBasicFunctions
		if categories != nil {
			category = categories[i%len(categories)]
		}
		eval := uniformEvaluation(score, model.DifficultyBasic)
		session.Responses = append(session.Responses, model.Response{
			QuestionID:   "q",
			QuestionText: "question text",
			Category:     category,
			Difficulty:   model.DifficultyBasic,
			Answer:       "answer",
			Evaluation:   *eval,
		})
		session.Scores = append(session.Scores, eval.OverallScore)
	}
	return session
}

func TestSkillLevelBands(t *testing.T) {
	cases := map[float64]model.SkillLevel{
		95: model.SkillExpert,
		90: model.SkillExpert,
		85: model.SkillAdvanced,
		70: model.SkillIntermediate,
		50: model.SkillBasic,
		30: model.SkillBeginner,
		10: model.SkillInsufficientData,
	}
	for score, want := range cases {
		assert.Equal(t, want, skillLevel(score), "score %.0f", score)
	}
}

func TestHireRecommendationBands(t *testing.T) {
	assert.Equal(t, model.StrongHire, hireRecommendation(88, 80, 0))
	// High score but erratic performance drops a notch.
	assert.Equal(t, model.Hire, hireRecommendation(88, 65, 0))
	assert.Equal(t, model.Hire, hireRecommendation(76, 62, 0))
	assert.Equal(t, model.ConditionalHire, hireRecommendation(62, 55, 0))
	// Low consistency can be rescued by a clear upward trend.
	assert.Equal(t, model.ConditionalHire, hireRecommendation(62, 40, 8))
	assert.Equal(t, model.NoHire, hireRecommendation(62, 40, 0))
	assert.Equal(t, model.NoHire, hireRecommendation(45, 90, 0))
	assert.Equal(t, model.StrongNoHire, hireRecommendation(30, 90, 0))
}

func TestConsistencyMetric(t *testing.T) {
	assert.Equal(t, 100.0, consistency([]float64{70, 70, 70, 70}))
	assert.Equal(t, 100.0, consistency([]float64{70}))

	// Wild swings bottom out at 75 because the stdev contribution is capped.
	assert.Equal(t, 75.0, consistency([]float64{0, 100, 0, 100}))

	spread := consistency([]float64{60, 70, 80})
	assert.Less(t, spread, 100.0)
	assert.GreaterOrEqual(t, spread, 75.0)
}

func TestTrendMetric(t *testing.T) {
	assert.Equal(t, 0.0, trend([]float64{50, 90}))
	assert.Equal(t, 30.0, trend([]float64{50, 50, 80, 80}))
	assert.Equal(t, -30.0, trend([]float64{80, 80, 50, 50}))
}

func TestGenerateFullAssessment(t *testing.T) {
	assessor := NewAssessmentService(&stubProvider{}, zap.NewNop())
	categories := []model.Category{model.CategoryBasicFunctions, model.CategoryLookupFunctions}
	session := sessionWithScores([]float64{85, 55, 90, 50}, categories)

	assessment := assessor.Generate(context.Background(), session)

	assert.Equal(t, "sess-1", assessment.SessionID)
	assert.Equal(t, 70.0, assessment.OverallScore)
	assert.Equal(t, model.SkillIntermediate, assessment.SkillLevel)
	assert.Equal(t, 4, assessment.TotalQuestions)
	assert.Len(t, assessment.QuestionScores, 4)

	// basic_functions holds 85 and 90, lookup_functions 55 and 50.
	assert.Equal(t, 87.5, assessment.CategoryScores["basic_functions"])
	assert.Equal(t, 52.5, assessment.CategoryScores["lookup_functions"])
	assert.Equal(t, 70.0, assessment.DimensionScores[string(model.DimTechnicalAccuracy)])
	assert.NotEmpty(t, assessment.ExecutiveSummary)
	assert.NotEmpty(t, assessment.DetailedFeedback)
}

func TestGenerateCategoryAnalysis(t *testing.T) {
	responses := sessionWithScores([]float64{85, 55, 90, 50},
		[]model.Category{model.CategoryBasicFunctions, model.CategoryLookupFunctions}).Responses

	analysis := analyzeCategories(responses)

	assert.Equal(t, "basic_functions", analysis.Strongest)
	assert.Equal(t, "lookup_functions", analysis.Weakest)
	assert.Equal(t, []string{"basic_functions"}, analysis.AboveThreshold)
	assert.Equal(t, []string{"lookup_functions"}, analysis.NeedingImprovement)
}

func TestGenerateEmptySession(t *testing.T) {
	assessor := NewAssessmentService(&stubProvider{}, zap.NewNop())
	session := &model.Session{ID: "sess-empty", Status: model.SessionExpired, StartTime: time.Now()}

	assessment := assessor.Generate(context.Background(), session)

	assert.Equal(t, model.SkillInsufficientData, assessment.SkillLevel)
	assert.Equal(t, 0.0, assessment.OverallScore)
	assert.Zero(t, assessment.TotalQuestions)
	assert.NotEmpty(t, assessment.DetailedFeedback)
	assert.NotEmpty(t, assessment.Recommendations)
}

func TestNarrativeFallsBackToTemplate(t *testing.T) {
	provider := &stubProvider{
		generateFn: func(_ context.Context, _ string) (string, error) {
			return "", errors.New("provider down")
		},
	}
	assessor := NewAssessmentService(provider, zap.NewNop())
	session := sessionWithScores([]float64{75, 75, 75}, nil)

	assessment := assessor.Generate(context.Background(), session)

	assert.NotEmpty(t, assessment.DetailedFeedback)
	assert.Contains(t, assessment.DetailedFeedback, "75.0")
}

func TestRecommendationsDedupedAndCapped(t *testing.T) {
	statistics := model.PerformanceStats{
		DimensionAverages: map[string]float64{
			string(model.DimTechnicalAccuracy): 40,
			string(model.DimCommunication):     40,
			string(model.DimEfficiency):        40,
		},
		Consistency: 60,
	}
	categories := model.CategoryAnalysis{
		NeedingImprovement: []string{"pivot_tables", "lookup_functions", "financial_modeling"},
	}

	items := recommendations(45, statistics, categories)

	assert.Len(t, items, maxRecommendations)
	seen := map[string]bool{}
	for _, item := range items {
		assert.False(t, seen[item], "duplicate recommendation %q", item)
		seen[item] = true
	}
}

func TestBenchmarkingPercentiles(t *testing.T) {
	assert.Equal(t, 95, percentile(92))
	assert.Equal(t, 70, percentile(74))
	assert.Equal(t, 10, percentile(12))

	b := benchmark(74, "data_analyst")
	assert.Equal(t, industryAverage, b.IndustryAverage)
	assert.Equal(t, 78.0, b.PositionAverage)
	assert.Equal(t, 70, b.PercentileRank)
	assert.Contains(t, b.RoleAverages, "data_analyst")
}

func TestBenchmarkPositionAverage(t *testing.T) {
	// Free-form position names normalize onto the role table.
	assert.Equal(t, 75.0, benchmark(60, "Financial Analyst").PositionAverage)
	assert.Equal(t, 65.0, benchmark(60, "project_manager").PositionAverage)

	// Unknown and empty positions fall back to the industry average.
	assert.Equal(t, industryAverage, benchmark(60, "zookeeper").PositionAverage)
	assert.Equal(t, industryAverage, benchmark(60, "").PositionAverage)
}
