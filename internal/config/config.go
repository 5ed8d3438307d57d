package config

import (
	"os"
	"strconv"
	"time"
)

// AIConfig holds Gemini provider configuration
type AIConfig struct {
	APIKey        string        `json:"-"` // never serialized
	BaseURL       string        `json:"baseUrl"`
	EvalModel     string        `json:"evalModel"`
	FeedbackModel string        `json:"feedbackModel"`
	Timeout       time.Duration `json:"timeout"`
	MaxTokens     int           `json:"maxTokens"`
	Temperature   float64       `json:"temperature"`
}

// DefaultAIConfig returns provider configuration from the environment
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		BaseURL: getEnvOrDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/models"),

		// Fast model for per-answer evaluation, quality model for the
		// final narrative feedback
		EvalModel:     getEnvOrDefault("GEMINI_MODEL_EVAL", "gemini-2.5-flash"),
		FeedbackModel: getEnvOrDefault("GEMINI_MODEL_FEEDBACK", "gemini-2.0-flash"),

		Timeout:     time.Duration(getEnvIntOrDefault("GEMINI_TIMEOUT_MS", 30000)) * time.Millisecond,
		MaxTokens:   getEnvIntOrDefault("GEMINI_MAX_TOKENS", 1200),
		Temperature: 0.3, // low temperature keeps evaluations consistent
	}
}

// IsEnabled returns true if the provider is configured
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// ModelEndpoint returns the full endpoint for a given model
func (c *AIConfig) ModelEndpoint(model string) string {
	return c.BaseURL + "/" + model + ":generateContent"
}

// InterviewConfig holds session orchestration settings
type InterviewConfig struct {
	MaxQuestions     int
	TimeLimit        time.Duration
	SessionTTL       time.Duration
	EvalCacheTTL     time.Duration
	EarlyExitAnswers int
	EarlyExitScore   float64
}

// DefaultInterviewConfig returns orchestration settings from the environment
func DefaultInterviewConfig() *InterviewConfig {
	return &InterviewConfig{
		MaxQuestions: getEnvIntOrDefault("INTERVIEW_MAX_QUESTIONS", 15),
		TimeLimit:    time.Duration(getEnvIntOrDefault("INTERVIEW_TIME_LIMIT_MIN", 45)) * time.Minute,
		SessionTTL:   time.Duration(getEnvIntOrDefault("SESSION_TTL_SEC", 7200)) * time.Second,
		EvalCacheTTL: time.Duration(getEnvIntOrDefault("EVAL_CACHE_TTL_SEC", 3600)) * time.Second,

		// Stop early when at least this many answers average below the
		// floor; saves provider cost on hopeless sessions
		EarlyExitAnswers: 5,
		EarlyExitScore:   25,
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}
