package model

import "time"

// QuestionType defines the kind of Excel skill a question probes
type QuestionType string

const (
	QuestionTypeFormula        QuestionType = "formula"
	QuestionTypeDataAnalysis   QuestionType = "data_analysis"
	QuestionTypeProblemSolving QuestionType = "problem_solving"
	QuestionTypeScenario       QuestionType = "scenario"
	QuestionTypePractical      QuestionType = "practical"
)

// Difficulty is the ordered question difficulty tier
type Difficulty string

const (
	DifficultyBasic        Difficulty = "basic"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// difficultyOrder drives tier arithmetic in the adaptive selector
var difficultyOrder = []Difficulty{DifficultyBasic, DifficultyIntermediate, DifficultyAdvanced}

// Index returns the tier position (basic=0, intermediate=1, advanced=2).
// Unknown values map to intermediate.
func (d Difficulty) Index() int {
	for i, tier := range difficultyOrder {
		if tier == d {
			return i
		}
	}
	return 1
}

// DifficultyAt returns the tier at the given index, or false when the index
// is outside the known tiers.
func DifficultyAt(index int) (Difficulty, bool) {
	if index < 0 || index >= len(difficultyOrder) {
		return "", false
	}
	return difficultyOrder[index], true
}

// IsValid reports whether d is a known tier.
func (d Difficulty) IsValid() bool {
	for _, tier := range difficultyOrder {
		if tier == d {
			return true
		}
	}
	return false
}

// Category groups questions by Excel skill area
type Category string

const (
	CategoryBasicFunctions      Category = "basic_functions"
	CategoryAdvancedFunctions   Category = "advanced_functions"
	CategoryDataManipulation    Category = "data_manipulation"
	CategoryPivotTables         Category = "pivot_tables"
	CategoryChartsVisualization Category = "charts_visualization"
	CategoryConditionalLogic    Category = "conditional_logic"
	CategoryLookupFunctions     Category = "lookup_functions"
	CategoryStatisticalAnalysis Category = "statistical_analysis"
	CategoryFinancialModeling   Category = "financial_modeling"
	CategoryAutomationMacros    Category = "automation_macros"
)

// Question is one catalog entry. Everything except Usage is immutable after
// seeding; questions are deactivated, never deleted.
type Question struct {
	ID               string             `json:"id" bson:"_id"`
	Text             string             `json:"text" bson:"text"`
	Type             QuestionType       `json:"type" bson:"type"`
	Difficulty       Difficulty         `json:"difficulty" bson:"difficulty"`
	Category         Category           `json:"category" bson:"category"`
	ExpectedKeywords []string           `json:"expectedKeywords" bson:"expectedKeywords"`
	SampleAnswer     string             `json:"sampleAnswer,omitempty" bson:"sampleAnswer,omitempty"`
	ScoringWeights   map[string]float64 `json:"scoringWeights,omitempty" bson:"scoringWeights,omitempty"`
	Tags             []string           `json:"tags,omitempty" bson:"tags,omitempty"`
	TimeLimitSec     int                `json:"timeLimitSec,omitempty" bson:"timeLimitSec,omitempty"`
	Active           bool               `json:"active" bson:"active"`

	Usage UsageStats `json:"usage" bson:"usage"`
}

// UsageStats tracks per-question outcomes with online running averages.
type UsageStats struct {
	TimesUsed      int       `json:"timesUsed" bson:"timesUsed"`
	AverageScore   float64   `json:"averageScore" bson:"averageScore"`
	PassRate       float64   `json:"passRate" bson:"passRate"`
	AvgResponseSec float64   `json:"avgResponseSec" bson:"avgResponseSec"`
	UpdatedAt      time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// PassThreshold is the score at or above which a response counts as a pass.
const PassThreshold = 60.0

// Record folds one completed response into the running statistics without
// rescanning history. Not safe for concurrent use; callers serialize per key.
func (u *UsageStats) Record(score, responseTimeSec float64) {
	u.TimesUsed++
	n := float64(u.TimesUsed)
	u.AverageScore += (score - u.AverageScore) / n
	u.AvgResponseSec += (responseTimeSec - u.AvgResponseSec) / n

	passed := 0.0
	if score >= PassThreshold {
		passed = 100.0
	}
	u.PassRate += (passed - u.PassRate) / n
	u.UpdatedAt = time.Now().UTC()
}
