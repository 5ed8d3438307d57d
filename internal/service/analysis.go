package service

import (
	"regexp"
	"strings"

	"excel-interviewer/internal/model"
)

// excelFunctions lists the function names the local analyzer scans for,
// grouped by the tier they are typically expected at.
var excelFunctions = map[model.Difficulty][]string{
	model.DifficultyBasic: {
		"SUM", "AVERAGE", "COUNT", "MAX", "MIN", "IF", "COUNTA", "ROUND",
		"TODAY", "NOW", "LEN", "CONCATENATE",
	},
	model.DifficultyIntermediate: {
		"VLOOKUP", "HLOOKUP", "INDEX", "MATCH", "SUMIF", "SUMIFS", "COUNTIF",
		"COUNTIFS", "AVERAGEIF", "IFERROR", "TEXT", "LEFT", "RIGHT", "MID",
	},
	model.DifficultyAdvanced: {
		"XLOOKUP", "FILTER", "UNIQUE", "SORT", "SEQUENCE", "LAMBDA", "LET",
		"SUMPRODUCT", "INDIRECT", "OFFSET", "TRANSPOSE", "ARRAYFORMULA",
	},
}

// excelConcepts are non-function terms that signal real tool familiarity.
var excelConcepts = []string{
	"pivot table", "pivot tables", "conditional formatting", "data validation",
	"named range", "absolute reference", "relative reference", "macro",
	"power query", "power pivot", "slicer", "chart", "freeze panes",
	"remove duplicates", "goal seek", "solver", "what-if",
}

var (
	cellRefPattern   = regexp.MustCompile(`\b[A-Z]{1,3}\d+\b`)
	cellRangePattern = regexp.MustCompile(`\b[A-Z]{1,3}\d+:[A-Z]{1,3}\d+\b`)
)

// LocalAnalysis is the deterministic lexical profile of one answer. It never
// fails; an empty or nonsensical answer just produces a zero-valued profile.
type LocalAnalysis struct {
	WordCount         int
	FunctionsFound    []string
	ConceptsFound     []string
	KeywordDensity    float64
	MentionsFunctions bool
	MentionsCellRefs  bool
	MentionsRanges    bool
	UsesExplanation   bool
	ProvidesExamples  bool
	Structured        bool
	AppropriateLength bool
	MentionsSteps     bool
	AddressesHow      bool
	AddressesWhat     bool
	AddressesWhen     bool
	Alternatives      bool
}

// AnalyzeAnswer runs the local heuristic scan over a candidate answer.
func AnalyzeAnswer(answer string) LocalAnalysis {
	upper := strings.ToUpper(answer)
	lower := strings.ToLower(answer)
	words := strings.Fields(answer)

	a := LocalAnalysis{WordCount: len(words)}

	for _, tier := range []model.Difficulty{model.DifficultyBasic, model.DifficultyIntermediate, model.DifficultyAdvanced} {
		for _, fn := range excelFunctions[tier] {
			if strings.Contains(upper, fn) {
				a.FunctionsFound = append(a.FunctionsFound, fn)
			}
		}
	}
	for _, concept := range excelConcepts {
		if strings.Contains(lower, concept) {
			a.ConceptsFound = append(a.ConceptsFound, concept)
		}
	}

	if a.WordCount > 0 {
		a.KeywordDensity = float64(len(a.FunctionsFound)+len(a.ConceptsFound)) / float64(a.WordCount)
	}

	a.MentionsFunctions = len(a.FunctionsFound) > 0
	a.MentionsCellRefs = cellRefPattern.MatchString(upper)
	a.MentionsRanges = cellRangePattern.MatchString(upper)

	a.UsesExplanation = containsAny(lower, "because", "since", "so that", "this way", "reason")
	a.ProvidesExamples = containsAny(lower, "for example", "e.g.", "such as", "instance", "like this")
	a.Structured = containsAny(lower, "first", "then", "next", "finally", "step")
	a.AppropriateLength = a.WordCount >= 20 && a.WordCount <= 200

	a.MentionsSteps = containsAny(lower, "step", "first", "second", "then", "after that")
	a.AddressesHow = containsAny(lower, "how", "would", "use", "select", "click", "enter", "formula")
	a.AddressesWhat = containsAny(lower, "function", "feature", "tool", "option", "method")
	a.AddressesWhen = containsAny(lower, "when", "whenever", "in case", "scenario", "situation")
	a.Alternatives = containsAny(lower, "alternatively", "another way", "or you could", "also possible", "instead")

	return a
}

func containsAny(s string, terms ...string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

// adjustments computes the per-dimension heuristic deltas applied on top of
// the provider's scores. Each delta is capped to ±15 before clamping.
func (a LocalAnalysis) adjustments() map[model.Dimension]float64 {
	adj := make(map[model.Dimension]float64, len(model.Dimensions))

	tech := 0.0
	if a.MentionsFunctions {
		tech += 5
	}
	if a.MentionsCellRefs {
		tech += 3
	}
	if a.MentionsRanges {
		tech += 2
	}
	adj[model.DimTechnicalAccuracy] = tech

	comm := 0.0
	if a.UsesExplanation {
		comm += 4
	}
	if a.ProvidesExamples {
		comm += 3
	}
	if a.Structured {
		comm += 2
	}
	if !a.AppropriateLength {
		comm -= 5
	}
	adj[model.DimCommunication] = comm

	problem := 0.0
	if a.MentionsSteps {
		problem += 4
	}
	if a.KeywordDensity > 0.1 {
		problem += 2
	}
	adj[model.DimProblemSolving] = problem

	complete := 0.0
	for _, hit := range []bool{a.AddressesHow, a.AddressesWhat, a.AddressesWhen, a.Alternatives} {
		if hit {
			complete += 2
		}
	}
	adj[model.DimCompleteness] = complete

	adj[model.DimEfficiency] = 0

	for dim, v := range adj {
		if v > maxAdjustment {
			adj[dim] = maxAdjustment
		} else if v < -maxAdjustment {
			adj[dim] = -maxAdjustment
		}
	}
	return adj
}

// confidence estimates how reliable the blended evaluation is, from answer
// length and whether concrete Excel vocabulary appeared at all.
func (a LocalAnalysis) confidence() float64 {
	lengthFactor := 0.5
	switch {
	case a.WordCount >= 30 && a.WordCount <= 150:
		lengthFactor = 0.9
	case a.WordCount >= 15 && a.WordCount <= 200:
		lengthFactor = 0.7
	}

	vocabFactor := 0.6
	if a.MentionsFunctions {
		vocabFactor = 0.8
	}

	return model.Round2((lengthFactor + vocabFactor) / 2)
}
