package model

// OutcomeStatus tags every candidate-facing result
type OutcomeStatus string

const (
	OutcomeSuccess   OutcomeStatus = "success"
	OutcomeContinue  OutcomeStatus = "continue"
	OutcomeCompleted OutcomeStatus = "completed"
	OutcomeError     OutcomeStatus = "error"
)

// Progress describes how far along a session is.
type Progress struct {
	QuestionsCompleted int        `json:"questionsCompleted"`
	TotalQuestions     int        `json:"totalQuestions"`
	AverageScore       float64    `json:"averageScore"`
	CurrentDifficulty  Difficulty `json:"currentDifficulty"`
}

// StartResult is returned when a session moves from pending to in_progress.
type StartResult struct {
	Status    OutcomeStatus `json:"status"`
	SessionID string        `json:"sessionId"`
	Message   string        `json:"message"`
	Question  *Question     `json:"question"`
}

// SubmitResult is returned for each processed answer. Exactly one of
// NextQuestion (status continue) or FinalAssessment (status completed) is set.
type SubmitResult struct {
	Status          OutcomeStatus      `json:"status"`
	Evaluation      *Evaluation        `json:"evaluation,omitempty"`
	NextQuestion    *Question          `json:"nextQuestion,omitempty"`
	Progress        *Progress          `json:"progress,omitempty"`
	FinalAssessment *FinalAssessment   `json:"finalAssessment,omitempty"`
	Summary         *CompletionSummary `json:"summary,omitempty"`
}

// CompletionSummary is the short wrap-up attached to a completed session.
type CompletionSummary struct {
	QuestionsCompleted int                `json:"questionsCompleted"`
	OverallScore       float64            `json:"overallScore"`
	SkillLevel         SkillLevel         `json:"skillLevel"`
	HireRecommendation HireRecommendation `json:"hireRecommendation"`
	DurationMinutes    int                `json:"durationMinutes"`
}

// StatusResult reports current session state and recent transcript.
type StatusResult struct {
	Status          OutcomeStatus `json:"status"`
	SessionStatus   SessionStatus `json:"sessionStatus"`
	Progress        Progress      `json:"progress"`
	CurrentQuestion *Question     `json:"currentQuestion,omitempty"`
	Transcript      []Message     `json:"conversationHistory"`
}
