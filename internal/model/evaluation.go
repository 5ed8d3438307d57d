package model

import (
	"math"
	"time"
)

// Dimension names a scored evaluation axis
type Dimension string

const (
	DimTechnicalAccuracy Dimension = "technical_accuracy"
	DimCommunication     Dimension = "communication_clarity"
	DimProblemSolving    Dimension = "problem_solving_approach"
	DimCompleteness      Dimension = "completeness"
	DimEfficiency        Dimension = "efficiency"
)

// Dimensions lists the five axes in canonical order.
var Dimensions = []Dimension{
	DimTechnicalAccuracy,
	DimCommunication,
	DimProblemSolving,
	DimCompleteness,
	DimEfficiency,
}

// overallWeights is the fixed blend used for the overall score. A provider's
// self-reported overall is never trusted; we always recompute from these.
var overallWeights = map[Dimension]float64{
	DimTechnicalAccuracy: 0.35,
	DimCommunication:     0.15,
	DimProblemSolving:    0.25,
	DimCompleteness:      0.15,
	DimEfficiency:        0.10,
}

// Scores holds the five bounded sub-scores of one evaluation.
type Scores struct {
	TechnicalAccuracy float64 `json:"technical_accuracy" bson:"technicalAccuracy"`
	Communication     float64 `json:"communication_clarity" bson:"communication"`
	ProblemSolving    float64 `json:"problem_solving_approach" bson:"problemSolving"`
	Completeness      float64 `json:"completeness" bson:"completeness"`
	Efficiency        float64 `json:"efficiency" bson:"efficiency"`
}

// Get returns the score for a dimension.
func (s Scores) Get(d Dimension) float64 {
	switch d {
	case DimTechnicalAccuracy:
		return s.TechnicalAccuracy
	case DimCommunication:
		return s.Communication
	case DimProblemSolving:
		return s.ProblemSolving
	case DimCompleteness:
		return s.Completeness
	case DimEfficiency:
		return s.Efficiency
	}
	return 0
}

// Set assigns the score for a dimension, clamped to [0,100].
func (s *Scores) Set(d Dimension, v float64) {
	v = ClampScore(v)
	switch d {
	case DimTechnicalAccuracy:
		s.TechnicalAccuracy = v
	case DimCommunication:
		s.Communication = v
	case DimProblemSolving:
		s.ProblemSolving = v
	case DimCompleteness:
		s.Completeness = v
	case DimEfficiency:
		s.Efficiency = v
	}
}

// Overall computes the weighted mean of the five sub-scores, rounded to two
// decimals.
func (s Scores) Overall() float64 {
	sum := 0.0
	for dim, w := range overallWeights {
		sum += s.Get(dim) * w
	}
	return Round2(sum)
}

// ClampScore bounds a score to [0,100].
func ClampScore(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Evaluation is the immutable scored judgment of a single answer.
type Evaluation struct {
	Scores         Scores     `json:"scores" bson:"scores"`
	OverallScore   float64    `json:"overallScore" bson:"overallScore"`
	Feedback       string     `json:"feedback" bson:"feedback"`
	Strengths      []string   `json:"strengths" bson:"strengths"`
	Improvements   []string   `json:"improvements" bson:"improvements"`
	NextDifficulty Difficulty `json:"nextDifficulty" bson:"nextDifficulty"`
	Confidence     float64    `json:"confidence" bson:"confidence"`
	Method         string     `json:"method" bson:"method"` // "model", "fallback" or "cached"
	EvaluatedAt    time.Time  `json:"evaluatedAt" bson:"evaluatedAt"`
}
