package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"excel-interviewer/internal/llm"
	"excel-interviewer/internal/model"

	"github.com/montanaflynn/stats"
	"go.uber.org/zap"
)

const (
	categoryStrongAbove = 70.0
	categoryWeakBelow   = 60.0
	maxRecommendations  = 5
	industryAverage     = 72.5
)

// roleBenchmarks are reference averages for common Excel-heavy roles.
var roleBenchmarks = map[string]float64{
	"data_analyst":      78.0,
	"financial_analyst": 75.0,
	"business_analyst":  72.0,
	"project_manager":   65.0,
	"general_office":    62.0,
}

// AssessmentService derives the final session verdict from the ordered list
// of evaluations. Everything except the narrative is deterministic.
type AssessmentService struct {
	provider llm.Provider
	logger   *zap.Logger
}

// NewAssessmentService creates the assessment aggregator.
func NewAssessmentService(provider llm.Provider, logger *zap.Logger) *AssessmentService {
	return &AssessmentService{provider: provider, logger: logger}
}

// Generate builds the final assessment for a terminated session. A session
// with zero recorded responses yields a well-defined insufficient-data
// verdict instead of an error.
func (s *AssessmentService) Generate(ctx context.Context, session *model.Session) *model.FinalAssessment {
	if len(session.Responses) == 0 {
		return s.insufficientData(session)
	}

	scores := session.Scores
	overall, _ := stats.Mean(scores)
	overall = model.Round2(overall)
	minScore, _ := stats.Min(scores)
	maxScore, _ := stats.Max(scores)

	statistics := model.PerformanceStats{
		OverallScore:      overall,
		DimensionAverages: dimensionAverages(session.Responses),
		Consistency:       consistency(scores),
		Trend:             trend(scores),
		MinScore:          minScore,
		MaxScore:          maxScore,
	}

	categories := analyzeCategories(session.Responses)
	skill := skillLevel(overall)
	hire := hireRecommendation(overall, statistics.Consistency, statistics.Trend)

	assessment := &model.FinalAssessment{
		SessionID:          session.ID,
		OverallScore:       overall,
		SkillLevel:         skill,
		HireRecommendation: hire,
		CategoryScores:     categories.Scores,
		DimensionScores:    statistics.DimensionAverages,
		QuestionScores:     questionScores(session.Responses),
		ExecutiveSummary:   executiveSummary(session, overall, skill, hire),
		Recommendations:    recommendations(overall, statistics, categories),
		Strengths:          collectRemarks(session.Responses, true),
		ImprovementAreas:   collectRemarks(session.Responses, false),
		Statistics:         statistics,
		Benchmarking:       benchmark(overall, session.Position),
		TotalQuestions:     len(session.Responses),
		DurationMinutes:    durationMinutes(session),
		AssessedAt:         time.Now().UTC(),
	}
	assessment.DetailedFeedback = s.narrative(ctx, session, assessment)

	return assessment
}

func (s *AssessmentService) insufficientData(session *model.Session) *model.FinalAssessment {
	return &model.FinalAssessment{
		SessionID:          session.ID,
		OverallScore:       0,
		SkillLevel:         model.SkillInsufficientData,
		HireRecommendation: model.StrongNoHire,
		CategoryScores:     map[string]float64{},
		DimensionScores:    map[string]float64{},
		DetailedFeedback:   "No responses were recorded, so no skills assessment can be made.",
		ExecutiveSummary:   "The interview ended before any questions were answered.",
		Recommendations:    []string{"Complete a full interview session to receive an assessment"},
		TotalQuestions:     0,
		DurationMinutes:    durationMinutes(session),
		AssessedAt:         time.Now().UTC(),
	}
}

// consistency maps score spread to a 75..100 stability metric. The standard
// deviation contribution is capped at 25 so one wild outlier cannot zero it.
func consistency(scores []float64) float64 {
	if len(scores) < 2 {
		return 100
	}
	stdev, err := stats.StandardDeviation(scores)
	if err != nil {
		return 100
	}
	if stdev > 25 {
		stdev = 25
	}
	return model.Round2(100 - stdev)
}

// trend is the mean of the second half minus the mean of the first half.
// Fewer than three scores is too little signal to call a direction.
func trend(scores []float64) float64 {
	if len(scores) < 3 {
		return 0
	}
	mid := len(scores) / 2
	first, _ := stats.Mean(scores[:mid])
	second, _ := stats.Mean(scores[mid:])
	return model.Round2(second - first)
}

func dimensionAverages(responses []model.Response) map[string]float64 {
	averages := make(map[string]float64, len(model.Dimensions))
	for _, dim := range model.Dimensions {
		values := make([]float64, 0, len(responses))
		for _, r := range responses {
			values = append(values, r.Evaluation.Scores.Get(dim))
		}
		mean, _ := stats.Mean(values)
		averages[string(dim)] = model.Round2(mean)
	}
	return averages
}

func analyzeCategories(responses []model.Response) model.CategoryAnalysis {
	byCategory := make(map[string][]float64)
	for _, r := range responses {
		key := string(r.Category)
		byCategory[key] = append(byCategory[key], r.Evaluation.OverallScore)
	}

	analysis := model.CategoryAnalysis{Scores: make(map[string]float64, len(byCategory))}
	best, worst := -1.0, 101.0
	for category, values := range byCategory {
		mean, _ := stats.Mean(values)
		mean = model.Round2(mean)
		analysis.Scores[category] = mean
		if mean > best {
			best, analysis.Strongest = mean, category
		}
		if mean < worst {
			worst, analysis.Weakest = mean, category
		}
		if mean >= categoryStrongAbove {
			analysis.AboveThreshold = append(analysis.AboveThreshold, category)
		}
		if mean < categoryWeakBelow {
			analysis.NeedingImprovement = append(analysis.NeedingImprovement, category)
		}
	}
	sort.Strings(analysis.AboveThreshold)
	sort.Strings(analysis.NeedingImprovement)
	return analysis
}

func skillLevel(overall float64) model.SkillLevel {
	switch {
	case overall >= 90:
		return model.SkillExpert
	case overall >= 80:
		return model.SkillAdvanced
	case overall >= 65:
		return model.SkillIntermediate
	case overall >= 45:
		return model.SkillBasic
	case overall >= 25:
		return model.SkillBeginner
	default:
		return model.SkillInsufficientData
	}
}

func hireRecommendation(overall, consistency, trend float64) model.HireRecommendation {
	switch {
	case overall >= 85 && consistency >= 70:
		return model.StrongHire
	case overall >= 75 && consistency >= 60:
		return model.Hire
	case overall >= 60 && (consistency >= 50 || trend > 5):
		return model.ConditionalHire
	case overall >= 40:
		return model.NoHire
	default:
		return model.StrongNoHire
	}
}

func questionScores(responses []model.Response) []model.QuestionScore {
	items := make([]model.QuestionScore, 0, len(responses))
	for _, r := range responses {
		items = append(items, model.QuestionScore{
			QuestionID: r.QuestionID,
			Text:       r.QuestionText,
			Score:      r.Evaluation.OverallScore,
			Difficulty: r.Difficulty,
		})
	}
	return items
}

func recommendations(overall float64, statistics model.PerformanceStats, categories model.CategoryAnalysis) []string {
	var items []string
	if overall < 60 {
		items = append(items, "Build foundational Excel skills with structured practice on core formulas")
	}
	if statistics.DimensionAverages[string(model.DimTechnicalAccuracy)] < 60 {
		items = append(items, "Review Excel function syntax and verify formulas against sample data")
	}
	if statistics.DimensionAverages[string(model.DimCommunication)] < 60 {
		items = append(items, "Practice explaining solutions step by step, stating assumptions up front")
	}
	if statistics.DimensionAverages[string(model.DimEfficiency)] < 60 {
		items = append(items, "Learn modern lookup and dynamic array functions to replace manual workflows")
	}
	for _, category := range categories.NeedingImprovement {
		items = append(items, fmt.Sprintf("Focus practice on %s scenarios", strings.ReplaceAll(category, "_", " ")))
	}
	if statistics.Consistency < 75 {
		items = append(items, "Work on consistent performance across question types and difficulty levels")
	}

	seen := make(map[string]bool, len(items))
	deduped := items[:0]
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			deduped = append(deduped, item)
		}
	}
	if len(deduped) > maxRecommendations {
		deduped = deduped[:maxRecommendations]
	}
	return deduped
}

// collectRemarks surfaces the most frequent strengths or improvement areas
// mentioned across per-answer evaluations, most frequent first.
func collectRemarks(responses []model.Response, strengths bool) []string {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, r := range responses {
		remarks := r.Evaluation.Improvements
		if strengths {
			remarks = r.Evaluation.Strengths
		}
		for _, remark := range remarks {
			remark = strings.TrimSpace(remark)
			if remark == "" {
				continue
			}
			if counts[remark] == 0 {
				order = append(order, remark)
			}
			counts[remark]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > 5 {
		order = order[:5]
	}
	return order
}

func benchmark(overall float64, position string) model.Benchmarking {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(position)), " ", "_")
	positionAverage, ok := roleBenchmarks[key]
	if !ok {
		positionAverage = industryAverage
	}
	return model.Benchmarking{
		IndustryAverage: industryAverage,
		PositionAverage: positionAverage,
		RoleAverages:    roleBenchmarks,
		PercentileRank:  percentile(overall),
	}
}

func percentile(overall float64) int {
	switch {
	case overall >= 90:
		return 95
	case overall >= 80:
		return 85
	case overall >= 70:
		return 70
	case overall >= 60:
		return 55
	case overall >= 50:
		return 40
	case overall >= 40:
		return 25
	default:
		return 10
	}
}

func durationMinutes(session *model.Session) int {
	end := time.Now().UTC()
	if session.EndTime != nil {
		end = *session.EndTime
	}
	minutes := int(end.Sub(session.StartTime).Minutes())
	if minutes < 0 {
		minutes = 0
	}
	return minutes
}

func executiveSummary(session *model.Session, overall float64, skill model.SkillLevel, hire model.HireRecommendation) string {
	name := session.CandidateName
	if name == "" {
		name = "The candidate"
	}
	return fmt.Sprintf("%s completed %d questions with an overall score of %.1f/100, demonstrating %s level Excel proficiency. Recommendation: %s.",
		name, len(session.Responses), overall, strings.ReplaceAll(string(skill), "_", " "), strings.ReplaceAll(string(hire), "_", " "))
}

// narrative asks the provider for the detailed feedback section; any failure
// substitutes a deterministic score-band template so the field is never empty.
func (s *AssessmentService) narrative(ctx context.Context, session *model.Session, assessment *model.FinalAssessment) string {
	prompt := buildNarrativePrompt(session, assessment)
	text, err := s.provider.Generate(ctx, prompt, 800, 0.4)
	if err != nil || strings.TrimSpace(text) == "" {
		if err != nil {
			s.logger.Warn("narrative generation failed, using template",
				zap.String("session_id", session.ID),
				zap.Error(err))
		}
		return templateNarrative(assessment)
	}
	return strings.TrimSpace(text)
}

func buildNarrativePrompt(session *model.Session, assessment *model.FinalAssessment) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Write a professional Excel skills assessment summary (200-300 words) for %s applying as %s.\n\n",
		session.CandidateName, session.Position)
	fmt.Fprintf(&sb, "Overall score: %.1f/100 (%s level, recommendation %s).\n",
		assessment.OverallScore, assessment.SkillLevel, assessment.HireRecommendation)
	fmt.Fprintf(&sb, "Consistency: %.1f, trend: %+.1f over %d questions.\n",
		assessment.Statistics.Consistency, assessment.Statistics.Trend, assessment.TotalQuestions)
	for dim, score := range assessment.DimensionScores {
		fmt.Fprintf(&sb, "- %s: %.1f\n", dim, score)
	}
	sb.WriteString("\nCover technical ability, communication, and readiness for the role. Be specific and constructive. Return plain text only.")
	return sb.String()
}

func templateNarrative(assessment *model.FinalAssessment) string {
	band := "demonstrated limited Excel proficiency and would need substantial training before handling spreadsheet-heavy work independently"
	switch {
	case assessment.OverallScore >= 85:
		band = "demonstrated excellent Excel proficiency with strong command of advanced functions and clear, structured explanations"
	case assessment.OverallScore >= 70:
		band = "demonstrated solid Excel proficiency, handling most tasks confidently with room to deepen advanced techniques"
	case assessment.OverallScore >= 55:
		band = "demonstrated working Excel knowledge with noticeable gaps in more advanced scenarios"
	case assessment.OverallScore >= 40:
		band = "demonstrated basic Excel familiarity but struggled with intermediate concepts"
	}
	return fmt.Sprintf("Across %d questions the candidate %s. Overall score: %.1f/100 (consistency %.1f). Recommendation: %s.",
		assessment.TotalQuestions, band, assessment.OverallScore,
		assessment.Statistics.Consistency, strings.ReplaceAll(string(assessment.HireRecommendation), "_", " "))
}
