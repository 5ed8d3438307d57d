package model

import "time"

// SkillLevel is the monotone score-to-label verdict
type SkillLevel string

const (
	SkillExpert           SkillLevel = "expert"
	SkillAdvanced         SkillLevel = "advanced"
	SkillIntermediate     SkillLevel = "intermediate"
	SkillBasic            SkillLevel = "basic"
	SkillBeginner         SkillLevel = "beginner"
	SkillInsufficientData SkillLevel = "insufficient_data"
)

// HireRecommendation is the final hiring verdict
type HireRecommendation string

const (
	StrongHire      HireRecommendation = "strong_hire"
	Hire            HireRecommendation = "hire"
	ConditionalHire HireRecommendation = "conditional_hire"
	NoHire          HireRecommendation = "no_hire"
	StrongNoHire    HireRecommendation = "strong_no_hire"
)

// PerformanceStats summarizes the score sequence of a finished session.
type PerformanceStats struct {
	OverallScore      float64            `json:"overallScore" bson:"overallScore"`
	DimensionAverages map[string]float64 `json:"dimensionAverages" bson:"dimensionAverages"`
	Consistency       float64            `json:"consistency" bson:"consistency"`
	Trend             float64            `json:"trend" bson:"trend"`
	MinScore          float64            `json:"minScore" bson:"minScore"`
	MaxScore          float64            `json:"maxScore" bson:"maxScore"`
}

// CategoryAnalysis breaks scores down by question category.
type CategoryAnalysis struct {
	Scores             map[string]float64 `json:"scores" bson:"scores"`
	Strongest          string             `json:"strongest" bson:"strongest"`
	Weakest            string             `json:"weakest" bson:"weakest"`
	AboveThreshold     []string           `json:"aboveThreshold" bson:"aboveThreshold"`
	NeedingImprovement []string           `json:"needingImprovement" bson:"needingImprovement"`
}

// Benchmarking positions a score against reference distributions.
// PositionAverage is the reference average for the candidate's own role,
// falling back to the industry average for unrecognized positions.
type Benchmarking struct {
	IndustryAverage float64            `json:"industryAverage" bson:"industryAverage"`
	PositionAverage float64            `json:"positionAverage" bson:"positionAverage"`
	RoleAverages    map[string]float64 `json:"roleAverages" bson:"roleAverages"`
	PercentileRank  int                `json:"percentileRank" bson:"percentileRank"`
}

// QuestionScore is a per-question line item in the final report.
type QuestionScore struct {
	QuestionID string     `json:"questionId" bson:"questionId"`
	Text       string     `json:"text" bson:"text"`
	Score      float64    `json:"score" bson:"score"`
	Difficulty Difficulty `json:"difficulty" bson:"difficulty"`
}

// FinalAssessment is the aggregated session-level verdict. It is derived
// deterministically from the evaluation list and created at most once per
// completed session.
type FinalAssessment struct {
	SessionID          string             `json:"sessionId" bson:"sessionId"`
	OverallScore       float64            `json:"overallScore" bson:"overallScore"`
	SkillLevel         SkillLevel         `json:"skillLevel" bson:"skillLevel"`
	HireRecommendation HireRecommendation `json:"hireRecommendation" bson:"hireRecommendation"`

	CategoryScores  map[string]float64 `json:"categoryScores" bson:"categoryScores"`
	DimensionScores map[string]float64 `json:"dimensionScores" bson:"dimensionScores"`
	QuestionScores  []QuestionScore    `json:"questionScores" bson:"questionScores"`

	DetailedFeedback string   `json:"detailedFeedback" bson:"detailedFeedback"`
	ExecutiveSummary string   `json:"executiveSummary" bson:"executiveSummary"`
	Recommendations  []string `json:"recommendations" bson:"recommendations"`
	Strengths        []string `json:"strengths" bson:"strengths"`
	ImprovementAreas []string `json:"improvementAreas" bson:"improvementAreas"`

	Statistics   PerformanceStats `json:"statistics" bson:"statistics"`
	Benchmarking Benchmarking     `json:"benchmarking" bson:"benchmarking"`

	TotalQuestions  int       `json:"totalQuestions" bson:"totalQuestions"`
	DurationMinutes int       `json:"durationMinutes" bson:"durationMinutes"`
	AssessedAt      time.Time `json:"assessedAt" bson:"assessedAt"`
}
