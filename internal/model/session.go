package model

import "time"

// SessionStatus is the interview session lifecycle state
type SessionStatus string

const (
	SessionPending    SessionStatus = "pending"
	SessionInProgress SessionStatus = "in_progress"
	SessionPaused     SessionStatus = "paused"
	SessionCompleted  SessionStatus = "completed"
	SessionCancelled  SessionStatus = "cancelled"
	SessionExpired    SessionStatus = "expired"
)

// Terminal reports whether no further transitions are possible.
func (s SessionStatus) Terminal() bool {
	return s == SessionCompleted || s == SessionCancelled || s == SessionExpired
}

// Message is one transcript entry
type Message struct {
	Role    string `json:"role" bson:"role"` // assistant, user, system
	Content string `json:"content" bson:"content"`
}

// Response records one answered question with its evaluation.
type Response struct {
	QuestionID      string     `json:"questionId" bson:"questionId"`
	QuestionText    string     `json:"questionText" bson:"questionText"`
	Category        Category   `json:"category" bson:"category"`
	Difficulty      Difficulty `json:"difficulty" bson:"difficulty"`
	Answer          string     `json:"answer" bson:"answer"`
	Evaluation      Evaluation `json:"evaluation" bson:"evaluation"`
	ResponseTimeSec float64    `json:"responseTimeSec" bson:"responseTimeSec"`
	Timestamp       time.Time  `json:"timestamp" bson:"timestamp"`
}

// Session is one candidate's interview. It is owned and mutated only by the
// interview service and persisted to the session store after every mutation.
type Session struct {
	ID                string           `json:"id" bson:"_id"`
	CandidateName     string           `json:"candidateName" bson:"candidateName"`
	Position          string           `json:"position" bson:"position"`
	Status            SessionStatus    `json:"status" bson:"status"`
	CurrentDifficulty Difficulty       `json:"currentDifficulty" bson:"currentDifficulty"`
	CurrentQuestion   *Question        `json:"currentQuestion,omitempty" bson:"currentQuestion,omitempty"`
	QuestionsAsked    []string         `json:"questionsAsked" bson:"questionsAsked"`
	Responses         []Response       `json:"responses" bson:"responses"`
	Scores            []float64        `json:"scores" bson:"scores"`
	Transcript        []Message        `json:"conversationHistory" bson:"conversationHistory"`
	StartTime         time.Time        `json:"startTime" bson:"startTime"`
	EndTime           *time.Time       `json:"endTime,omitempty" bson:"endTime,omitempty"`
	PausedAt          *time.Time       `json:"pausedAt,omitempty" bson:"pausedAt,omitempty"`
	FinalAssessment   *FinalAssessment `json:"finalAssessment,omitempty" bson:"finalAssessment,omitempty"`
}

// AverageScore is the running mean over all recorded scores, 0 when empty.
func (s *Session) AverageScore() float64 {
	if len(s.Scores) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range s.Scores {
		sum += v
	}
	return sum / float64(len(s.Scores))
}

// Asked reports whether the question was already issued in this session.
func (s *Session) Asked(questionID string) bool {
	for _, id := range s.QuestionsAsked {
		if id == questionID {
			return true
		}
	}
	return false
}

// ExpiredBy reports whether the session's wall-clock time limit has elapsed.
func (s *Session) ExpiredBy(now time.Time, limit time.Duration) bool {
	if s.Status != SessionInProgress && s.Status != SessionPaused {
		return false
	}
	return now.Sub(s.StartTime) > limit
}
