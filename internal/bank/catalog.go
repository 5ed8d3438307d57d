// Package bank holds the built-in Excel interview question catalog. The
// catalog is the seed data for the question repository; cmd/seed loads it
// into MongoDB and the in-memory repository serves it directly.
package bank

import "excel-interviewer/internal/model"

// Catalog returns a fresh copy of the built-in question set: five questions
// per difficulty tier across the Excel skill categories.
func Catalog() []model.Question {
	questions := []model.Question{
		{
			ID:               "basic_001",
			Text:             "How would you calculate the sum of values in cells A1 to A10?",
			Type:             model.QuestionTypeFormula,
			Difficulty:       model.DifficultyBasic,
			Category:         model.CategoryBasicFunctions,
			ExpectedKeywords: []string{"SUM", "FORMULA", "RANGE", "A1:A10"},
			SampleAnswer:     "Use the SUM function: =SUM(A1:A10). This adds all values in the range A1 through A10.",
			Tags:             []string{"sum", "basic", "arithmetic"},
			TimeLimitSec:     120,
		},
		{
			ID:               "basic_002",
			Text:             "Explain how to create a basic pivot table from a data set.",
			Type:             model.QuestionTypeDataAnalysis,
			Difficulty:       model.DifficultyBasic,
			Category:         model.CategoryPivotTables,
			ExpectedKeywords: []string{"PIVOT TABLE", "DATA", "FIELDS", "DRAG", "INSERT"},
			SampleAnswer:     "Select data range, go to Insert > PivotTable, drag fields to Rows/Columns/Values areas, configure as needed.",
			Tags:             []string{"pivot", "data analysis", "summarize"},
			TimeLimitSec:     180,
		},
		{
			ID:               "basic_003",
			Text:             "How do you use VLOOKUP to find a value in another table?",
			Type:             model.QuestionTypeFormula,
			Difficulty:       model.DifficultyBasic,
			Category:         model.CategoryLookupFunctions,
			ExpectedKeywords: []string{"VLOOKUP", "LOOKUP", "TABLE", "EXACT MATCH", "FALSE"},
			SampleAnswer:     "=VLOOKUP(lookup_value, table_array, col_index_num, FALSE) for exact match. The function searches the first column of table_array and returns a value from the specified column.",
			Tags:             []string{"vlookup", "lookup", "reference"},
			TimeLimitSec:     150,
		},
		{
			ID:               "basic_004",
			Text:             "How would you apply conditional formatting to highlight cells based on their values?",
			Type:             model.QuestionTypeDataAnalysis,
			Difficulty:       model.DifficultyBasic,
			Category:         model.CategoryDataManipulation,
			ExpectedKeywords: []string{"CONDITIONAL FORMATTING", "HIGHLIGHT", "RULES", "FORMAT"},
			SampleAnswer:     "Select cells, go to Home > Conditional Formatting, choose rule type (Greater Than, Less Than, etc.), set conditions and formatting style.",
			Tags:             []string{"formatting", "conditional", "visual"},
			TimeLimitSec:     120,
		},
		{
			ID:               "basic_005",
			Text:             "What is the difference between relative and absolute cell references?",
			Type:             model.QuestionTypeFormula,
			Difficulty:       model.DifficultyBasic,
			Category:         model.CategoryBasicFunctions,
			ExpectedKeywords: []string{"RELATIVE", "ABSOLUTE", "DOLLAR SIGN", "$", "REFERENCE"},
			SampleAnswer:     "Relative references (A1) change when copied to other cells. Absolute references ($A$1) stay fixed. Mixed references ($A1 or A$1) fix either row or column.",
			Tags:             []string{"references", "formula", "copying"},
			TimeLimitSec:     120,
		},
		{
			ID:               "inter_001",
			Text:             "You have sales data with duplicate entries. How would you identify and remove duplicates while preserving the most recent record?",
			Type:             model.QuestionTypeDataAnalysis,
			Difficulty:       model.DifficultyIntermediate,
			Category:         model.CategoryDataManipulation,
			ExpectedKeywords: []string{"DUPLICATES", "REMOVE", "FILTER", "SORT", "UNIQUE", "RECENT"},
			SampleAnswer:     "Sort by date descending, then use Data > Remove Duplicates. Alternatively, use advanced filter with unique records only, or the UNIQUE function in newer Excel versions.",
			Tags:             []string{"duplicates", "data cleaning"},
			TimeLimitSec:     240,
		},
		{
			ID:               "inter_002",
			Text:             "Explain INDEX-MATCH combination and when you'd use it over VLOOKUP.",
			Type:             model.QuestionTypeFormula,
			Difficulty:       model.DifficultyIntermediate,
			Category:         model.CategoryLookupFunctions,
			ExpectedKeywords: []string{"INDEX", "MATCH", "LOOKUP", "LEFT", "PERFORMANCE", "FLEXIBLE"},
			SampleAnswer:     "=INDEX(return_range, MATCH(lookup_value, lookup_range, 0)). More flexible than VLOOKUP: can look left, faster on large datasets, survives inserted or deleted columns.",
			Tags:             []string{"index", "match", "advanced lookup"},
			TimeLimitSec:     200,
		},
		{
			ID:               "inter_003",
			Text:             "How would you create a dynamic dashboard that updates when new data is added?",
			Type:             model.QuestionTypeScenario,
			Difficulty:       model.DifficultyIntermediate,
			Category:         model.CategoryDataManipulation,
			ExpectedKeywords: []string{"DYNAMIC", "DASHBOARD", "TABLES", "CHARTS", "REFRESH", "NAMED RANGES"},
			SampleAnswer:     "Use Excel Tables for auto-expanding ranges, charts referencing tables, pivot tables with auto-refresh, and named ranges with OFFSET/COUNTA for dynamic ranges.",
			Tags:             []string{"dashboard", "dynamic", "automation"},
			TimeLimitSec:     300,
		},
		{
			ID:               "inter_004",
			Text:             "Describe how to use data validation to create dropdown lists and prevent invalid data entry.",
			Type:             model.QuestionTypeDataAnalysis,
			Difficulty:       model.DifficultyIntermediate,
			Category:         model.CategoryDataManipulation,
			ExpectedKeywords: []string{"DATA VALIDATION", "DROPDOWN", "LIST", "VALIDATION RULES", "ERROR ALERTS"},
			SampleAnswer:     "Use Data > Data Validation, set criteria to List, define source range or type values directly. Configure error alerts and input messages for user guidance.",
			Tags:             []string{"validation", "dropdown", "data quality"},
			TimeLimitSec:     180,
		},
		{
			ID:               "inter_005",
			Text:             "How would you use COUNTIFS and SUMIFS for multi-criteria analysis?",
			Type:             model.QuestionTypeFormula,
			Difficulty:       model.DifficultyIntermediate,
			Category:         model.CategoryConditionalLogic,
			ExpectedKeywords: []string{"COUNTIFS", "SUMIFS", "CRITERIA", "MULTIPLE CONDITIONS", "ANALYSIS"},
			SampleAnswer:     "COUNTIFS(range1,criteria1,range2,criteria2...) counts cells meeting multiple criteria. SUMIFS(sum_range,criteria_range1,criteria1,...) sums with multiple conditions.",
			Tags:             []string{"countifs", "sumifs", "multiple criteria"},
			TimeLimitSec:     200,
		},
		{
			ID:               "adv_001",
			Text:             "You need to analyze sales performance across multiple dimensions (time, region, product) with complex calculations. Describe your approach using advanced Excel features.",
			Type:             model.QuestionTypeProblemSolving,
			Difficulty:       model.DifficultyAdvanced,
			Category:         model.CategoryStatisticalAnalysis,
			ExpectedKeywords: []string{"PIVOT", "POWER QUERY", "DATA MODEL", "RELATIONSHIPS", "MEASURES", "DAX"},
			SampleAnswer:     "Create a data model with Power Pivot, establish table relationships, use DAX for calculated measures (YoY growth, running totals), build pivot tables with slicers and timelines.",
			Tags:             []string{"power pivot", "dax", "advanced analysis"},
			TimeLimitSec:     400,
		},
		{
			ID:               "adv_002",
			Text:             "Describe how you'd build an automated financial model that handles scenario analysis and sensitivity testing.",
			Type:             model.QuestionTypePractical,
			Difficulty:       model.DifficultyAdvanced,
			Category:         model.CategoryFinancialModeling,
			ExpectedKeywords: []string{"SCENARIO", "DATA TABLE", "SOLVER", "SENSITIVITY", "AUTOMATION", "GOAL SEEK"},
			SampleAnswer:     "Use Data Tables for sensitivity analysis, Scenario Manager for cases, Goal Seek/Solver for optimization, dynamic named ranges, VBA for automation.",
			Tags:             []string{"financial modeling", "scenarios", "automation"},
			TimeLimitSec:     450,
		},
		{
			ID:               "adv_003",
			Text:             "You have messy data from multiple sources that needs cleaning and standardization before analysis. Walk through your process.",
			Type:             model.QuestionTypeDataAnalysis,
			Difficulty:       model.DifficultyAdvanced,
			Category:         model.CategoryDataManipulation,
			ExpectedKeywords: []string{"POWER QUERY", "ETL", "TRANSFORM", "STANDARDIZE", "AUTOMATION", "DATA TYPES"},
			SampleAnswer:     "Use Power Query for the ETL process: connect to sources, transform data (split columns, merge, standardize formats, handle nulls), set data types, load with automatic refresh.",
			Tags:             []string{"power query", "etl", "data cleaning"},
			TimeLimitSec:     350,
		},
		{
			ID:               "adv_004",
			Text:             "How would you implement array formulas or dynamic arrays to perform complex calculations across multiple ranges?",
			Type:             model.QuestionTypeFormula,
			Difficulty:       model.DifficultyAdvanced,
			Category:         model.CategoryAdvancedFunctions,
			ExpectedKeywords: []string{"ARRAY FORMULAS", "DYNAMIC ARRAYS", "FILTER", "SORT", "UNIQUE", "SPILL RANGE"},
			SampleAnswer:     "Use dynamic array functions like FILTER, SORT, UNIQUE in modern Excel. For legacy versions, create array formulas with Ctrl+Shift+Enter. Utilize spill ranges and structured references.",
			Tags:             []string{"arrays", "dynamic", "advanced formulas"},
			TimeLimitSec:     300,
		},
		{
			ID:               "adv_005",
			Text:             "Explain how you would create a real-time executive dashboard that pulls data from multiple databases and updates automatically.",
			Type:             model.QuestionTypeScenario,
			Difficulty:       model.DifficultyAdvanced,
			Category:         model.CategoryAutomationMacros,
			ExpectedKeywords: []string{"REAL-TIME", "DASHBOARD", "DATABASES", "CONNECTIONS", "REFRESH", "AUTOMATION"},
			SampleAnswer:     "Use Power Query to connect data sources (SQL, APIs, files), create refresh schedules, build pivot tables and charts with automatic updates, implement error handling.",
			Tags:             []string{"real-time", "connections", "executive dashboard"},
			TimeLimitSec:     400,
		},
	}

	for i := range questions {
		questions[i].Active = true
	}
	return questions
}
