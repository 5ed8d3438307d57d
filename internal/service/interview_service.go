package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"excel-interviewer/internal/config"
	"excel-interviewer/internal/model"
	"excel-interviewer/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const transcriptTail = 10

// InterviewService owns the session lifecycle. All session mutation flows
// through here under a per-session lock; the store only sees whole snapshots.
type InterviewService struct {
	store     store.SessionStore
	evaluator *EvaluatorService
	selector  *SelectorService
	assessor  *AssessmentService
	cfg       *config.InterviewConfig
	logger    *zap.Logger

	// One mutex per live session id. A second submission while one is in
	// flight is rejected, not queued.
	locks sync.Map
}

// NewInterviewService creates the session orchestrator.
func NewInterviewService(sessions store.SessionStore, evaluator *EvaluatorService, selector *SelectorService, assessor *AssessmentService, cfg *config.InterviewConfig, logger *zap.Logger) *InterviewService {
	return &InterviewService{
		store:     sessions,
		evaluator: evaluator,
		selector:  selector,
		assessor:  assessor,
		cfg:       cfg,
		logger:    logger,
	}
}

// Start creates a session and immediately activates it: the first question is
// drawn at the requested difficulty and the welcome message is generated.
func (s *InterviewService) Start(ctx context.Context, candidateName, position string, difficulty model.Difficulty) (*model.StartResult, error) {
	if !difficulty.IsValid() {
		difficulty = model.DifficultyBasic
	}

	session := &model.Session{
		ID:                uuid.New().String(),
		CandidateName:     candidateName,
		Position:          position,
		Status:            model.SessionPending,
		CurrentDifficulty: difficulty,
		QuestionsAsked:    []string{},
		Responses:         []model.Response{},
		Scores:            []float64{},
		Transcript:        []model.Message{},
		StartTime:         time.Now().UTC(),
	}

	question, _, err := s.selector.NextQuestion(ctx, difficulty, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("drawing first question: %w", err)
	}

	welcome := welcomeMessage(candidateName, position)
	session.Status = model.SessionInProgress
	session.CurrentQuestion = question
	session.QuestionsAsked = append(session.QuestionsAsked, question.ID)
	session.Transcript = append(session.Transcript,
		model.Message{Role: "assistant", Content: welcome},
		model.Message{Role: "assistant", Content: question.Text},
	)

	if err := s.store.Put(ctx, session, s.cfg.SessionTTL); err != nil {
		return nil, fmt.Errorf("persisting session: %w", err)
	}

	s.logger.Info("interview started",
		zap.String("session_id", session.ID),
		zap.String("candidate", candidateName),
		zap.String("difficulty", string(difficulty)))

	return &model.StartResult{
		Status:    model.OutcomeSuccess,
		SessionID: session.ID,
		Message:   welcome,
		Question:  question,
	}, nil
}

// SubmitAnswer processes one answer end to end: evaluate, record, adapt
// difficulty, then either issue the next question or finish the session.
// A transient evaluation failure leaves the session untouched so the same
// answer can be resubmitted.
func (s *InterviewService) SubmitAnswer(ctx context.Context, sessionID, answer string, responseTimeSec float64) (*model.SubmitResult, error) {
	mu := s.lockFor(sessionID)
	if !mu.TryLock() {
		return nil, ErrSessionBusy
	}
	defer mu.Unlock()

	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Status == model.SessionExpired {
		// The time limit elapsed mid-interview. The late answer is not
		// evaluated; the session is closed out with what was recorded.
		return s.finish(ctx, session)
	}
	if session.Status != model.SessionInProgress {
		return nil, fmt.Errorf("%w: cannot submit answer while %s", ErrInvalidTransition, session.Status)
	}
	if session.CurrentQuestion == nil {
		return nil, ErrNoActiveQuestion
	}

	question := session.CurrentQuestion
	evaluation, err := s.evaluator.Evaluate(ctx, question, answer, session.CurrentDifficulty, responseTimeSec)
	if err != nil {
		return nil, fmt.Errorf("evaluating answer: %w", err)
	}

	session.Responses = append(session.Responses, model.Response{
		QuestionID:      question.ID,
		QuestionText:    question.Text,
		Category:        question.Category,
		Difficulty:      session.CurrentDifficulty,
		Answer:          answer,
		Evaluation:      *evaluation,
		ResponseTimeSec: responseTimeSec,
		Timestamp:       time.Now().UTC(),
	})
	session.Scores = append(session.Scores, evaluation.OverallScore)
	session.Transcript = append(session.Transcript, model.Message{Role: "user", Content: answer})
	session.CurrentQuestion = nil

	s.logger.Info("answer evaluated",
		zap.String("session_id", session.ID),
		zap.String("question_id", question.ID),
		zap.Float64("score", evaluation.OverallScore),
		zap.String("method", evaluation.Method))

	if !s.shouldContinue(session) {
		return s.finish(ctx, session)
	}

	next, tier, err := s.selector.NextQuestion(ctx, session.CurrentDifficulty, session.Scores, session.QuestionsAsked)
	if errors.Is(err, ErrBankExhausted) {
		return s.finish(ctx, session)
	}
	if err != nil {
		return nil, fmt.Errorf("selecting next question: %w", err)
	}

	session.CurrentDifficulty = tier
	session.CurrentQuestion = next
	session.QuestionsAsked = append(session.QuestionsAsked, next.ID)
	session.Transcript = append(session.Transcript, model.Message{Role: "assistant", Content: next.Text})

	if err := s.store.Put(ctx, session, s.cfg.SessionTTL); err != nil {
		return nil, fmt.Errorf("persisting session: %w", err)
	}

	return &model.SubmitResult{
		Status:       model.OutcomeContinue,
		Evaluation:   evaluation,
		NextQuestion: next,
		Progress:     s.progress(session),
	}, nil
}

// Pause suspends an in-progress session.
func (s *InterviewService) Pause(ctx context.Context, sessionID string) (*model.StatusResult, error) {
	mu := s.lockFor(sessionID)
	if !mu.TryLock() {
		return nil, ErrSessionBusy
	}
	defer mu.Unlock()

	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != model.SessionInProgress {
		return nil, fmt.Errorf("%w: cannot pause while %s", ErrInvalidTransition, session.Status)
	}

	now := time.Now().UTC()
	session.Status = model.SessionPaused
	session.PausedAt = &now
	if err := s.store.Put(ctx, session, s.cfg.SessionTTL); err != nil {
		return nil, fmt.Errorf("persisting session: %w", err)
	}
	return s.statusResult(session), nil
}

// Resume reactivates a paused session. Time spent paused still counts toward
// the wall-clock limit.
func (s *InterviewService) Resume(ctx context.Context, sessionID string) (*model.StatusResult, error) {
	mu := s.lockFor(sessionID)
	if !mu.TryLock() {
		return nil, ErrSessionBusy
	}
	defer mu.Unlock()

	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != model.SessionPaused {
		return nil, fmt.Errorf("%w: cannot resume while %s", ErrInvalidTransition, session.Status)
	}

	session.Status = model.SessionInProgress
	session.PausedAt = nil
	if err := s.store.Put(ctx, session, s.cfg.SessionTTL); err != nil {
		return nil, fmt.Errorf("persisting session: %w", err)
	}
	return s.statusResult(session), nil
}

// Cancel terminates a session early. Whatever was answered still produces a
// best-effort assessment.
func (s *InterviewService) Cancel(ctx context.Context, sessionID string) (*model.SubmitResult, error) {
	mu := s.lockFor(sessionID)
	if !mu.TryLock() {
		return nil, ErrSessionBusy
	}
	defer mu.Unlock()

	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status.Terminal() {
		return nil, fmt.Errorf("%w: session already %s", ErrInvalidTransition, session.Status)
	}

	return s.terminate(ctx, session, model.SessionCancelled)
}

// Status reports session state, progress and the recent transcript tail.
func (s *InterviewService) Status(ctx context.Context, sessionID string) (*model.StatusResult, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.statusResult(session), nil
}

// Assessment returns the final assessment of a terminated session.
func (s *InterviewService) Assessment(ctx context.Context, sessionID string) (*model.FinalAssessment, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.FinalAssessment != nil {
		return session.FinalAssessment, nil
	}
	if !session.Status.Terminal() {
		return nil, fmt.Errorf("%w: assessment requires a finished session, got %s", ErrInvalidTransition, session.Status)
	}

	// Terminal session without a stored assessment (e.g. expired). Build it
	// now under the session lock so it is created at most once.
	mu := s.lockFor(sessionID)
	if !mu.TryLock() {
		return nil, ErrSessionBusy
	}
	defer mu.Unlock()

	session, err = s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.FinalAssessment == nil {
		session.FinalAssessment = s.assessor.Generate(ctx, session)
		if err := s.store.Put(ctx, session, s.cfg.SessionTTL); err != nil {
			return nil, fmt.Errorf("persisting session: %w", err)
		}
	}
	s.locks.Delete(session.ID)
	return session.FinalAssessment, nil
}

// load fetches a session and applies lazy wall-clock expiry.
func (s *InterviewService) load(ctx context.Context, sessionID string) (*model.Session, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	if session.ExpiredBy(time.Now().UTC(), s.cfg.TimeLimit) {
		now := time.Now().UTC()
		session.Status = model.SessionExpired
		session.EndTime = &now
		session.CurrentQuestion = nil
		if err := s.store.Put(ctx, session, s.cfg.SessionTTL); err != nil {
			return nil, fmt.Errorf("persisting session: %w", err)
		}
		s.logger.Info("session expired", zap.String("session_id", session.ID))
	}
	return session, nil
}

func (s *InterviewService) shouldContinue(session *model.Session) bool {
	answered := len(session.Responses)
	if answered >= s.cfg.MaxQuestions {
		return false
	}
	if answered >= s.cfg.EarlyExitAnswers && session.AverageScore() < s.cfg.EarlyExitScore {
		s.logger.Info("ending interview early on sustained low scores",
			zap.String("session_id", session.ID),
			zap.Float64("average", session.AverageScore()))
		return false
	}
	return true
}

// finish completes the session and attaches the final assessment.
func (s *InterviewService) finish(ctx context.Context, session *model.Session) (*model.SubmitResult, error) {
	status := model.SessionCompleted
	if session.Status == model.SessionExpired {
		status = model.SessionExpired
	}
	return s.terminate(ctx, session, status)
}

func (s *InterviewService) terminate(ctx context.Context, session *model.Session, status model.SessionStatus) (*model.SubmitResult, error) {
	now := time.Now().UTC()
	session.Status = status
	if session.EndTime == nil {
		session.EndTime = &now
	}
	session.CurrentQuestion = nil

	if session.FinalAssessment == nil {
		session.FinalAssessment = s.assessor.Generate(ctx, session)
	}
	assessment := session.FinalAssessment
	session.Transcript = append(session.Transcript, model.Message{
		Role:    "system",
		Content: fmt.Sprintf("Interview %s. Overall score: %.1f/100.", status, assessment.OverallScore),
	})

	if err := s.store.Put(ctx, session, s.cfg.SessionTTL); err != nil {
		return nil, fmt.Errorf("persisting session: %w", err)
	}

	// The session is terminal and persisted; its lock entry is no longer
	// needed. A late caller gets a fresh mutex and then sees the terminal
	// status, so dropping the entry here cannot let a submission through.
	s.locks.Delete(session.ID)

	s.logger.Info("interview finished",
		zap.String("session_id", session.ID),
		zap.String("status", string(status)),
		zap.Int("questions", len(session.Responses)),
		zap.Float64("overall", assessment.OverallScore))

	var lastEval *model.Evaluation
	if n := len(session.Responses); n > 0 {
		lastEval = &session.Responses[n-1].Evaluation
	}

	return &model.SubmitResult{
		Status:          model.OutcomeCompleted,
		Evaluation:      lastEval,
		FinalAssessment: assessment,
		Summary: &model.CompletionSummary{
			QuestionsCompleted: len(session.Responses),
			OverallScore:       assessment.OverallScore,
			SkillLevel:         assessment.SkillLevel,
			HireRecommendation: assessment.HireRecommendation,
			DurationMinutes:    assessment.DurationMinutes,
		},
	}, nil
}

func (s *InterviewService) progress(session *model.Session) *model.Progress {
	return &model.Progress{
		QuestionsCompleted: len(session.Responses),
		TotalQuestions:     s.cfg.MaxQuestions,
		AverageScore:       model.Round2(session.AverageScore()),
		CurrentDifficulty:  session.CurrentDifficulty,
	}
}

func (s *InterviewService) statusResult(session *model.Session) *model.StatusResult {
	transcript := session.Transcript
	if len(transcript) > transcriptTail {
		transcript = transcript[len(transcript)-transcriptTail:]
	}
	return &model.StatusResult{
		Status:          model.OutcomeSuccess,
		SessionStatus:   session.Status,
		Progress:        *s.progress(session),
		CurrentQuestion: session.CurrentQuestion,
		Transcript:      transcript,
	}
}

func (s *InterviewService) lockFor(sessionID string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(sessionID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func welcomeMessage(candidateName, position string) string {
	name := candidateName
	if name == "" {
		name = "there"
	}
	role := position
	if role == "" {
		role = "this role"
	}
	return fmt.Sprintf("Hello %s! Welcome to your Excel skills interview for %s. "+
		"I'll ask you a series of questions that adapt to your level. "+
		"Explain your approach step by step and mention the specific Excel functions you would use. Let's begin!",
		name, role)
}
