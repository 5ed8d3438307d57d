package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"excel-interviewer/internal/config"
	"excel-interviewer/internal/model"

	"go.uber.org/zap"
)

// GeminiClient talks to the Gemini generateContent API over plain HTTP.
type GeminiClient struct {
	config *config.AIConfig
	client *http.Client
	logger *zap.Logger
}

// NewGeminiClient creates a Gemini-backed provider.
func NewGeminiClient(cfg *config.AIConfig, logger *zap.Logger) *GeminiClient {
	return &GeminiClient{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	return c.call(ctx, c.config.FeedbackModel, prompt, maxTokens, temperature, false)
}

// evaluationWire is the structured payload requested from the model. Score
// fields are pointers so a missing field is distinguishable from a zero.
type evaluationWire struct {
	TechnicalAccuracy *float64 `json:"technical_accuracy"`
	Communication     *float64 `json:"communication_clarity"`
	ProblemSolving    *float64 `json:"problem_solving_approach"`
	Completeness      *float64 `json:"completeness"`
	Efficiency        *float64 `json:"efficiency"`
	Feedback          string   `json:"feedback"`
	Strengths         []string `json:"strengths"`
	Improvements      []string `json:"areas_for_improvement"`
	NextDifficulty    string   `json:"next_difficulty_level"`
}

func (c *GeminiClient) Evaluate(ctx context.Context, questionText, answer string, difficulty model.Difficulty, questionType model.QuestionType) (*model.Evaluation, error) {
	prompt := buildEvaluationPrompt(questionText, answer, difficulty, questionType)

	raw, err := c.call(ctx, c.config.EvalModel, prompt, c.config.MaxTokens, c.config.Temperature, true)
	if err != nil {
		return nil, err
	}

	eval, err := parseEvaluation(raw, difficulty)
	if err != nil {
		// Keep the raw payload around for diagnosis; malformed responses
		// are a known provider failure mode.
		c.logger.Warn("malformed evaluation payload",
			zap.Error(err),
			zap.String("payload", truncate(raw, 500)))
		return nil, err
	}
	return eval, nil
}

// parseEvaluation validates the model's structured response. Out-of-range
// scores are clamped; missing fields fail the parse.
func parseEvaluation(raw string, difficulty model.Difficulty) (*model.Evaluation, error) {
	cleaned := stripCodeFence(raw)

	var wire evaluationWire
	if err := json.Unmarshal([]byte(cleaned), &wire); err != nil {
		return nil, fmt.Errorf("decoding evaluation: %w", err)
	}

	fields := map[string]*float64{
		"technical_accuracy":       wire.TechnicalAccuracy,
		"communication_clarity":    wire.Communication,
		"problem_solving_approach": wire.ProblemSolving,
		"completeness":             wire.Completeness,
		"efficiency":               wire.Efficiency,
	}
	for name, v := range fields {
		if v == nil {
			return nil, fmt.Errorf("evaluation missing field %q", name)
		}
	}
	if wire.Feedback == "" {
		return nil, fmt.Errorf("evaluation missing field %q", "feedback")
	}

	scores := model.Scores{
		TechnicalAccuracy: model.ClampScore(*wire.TechnicalAccuracy),
		Communication:     model.ClampScore(*wire.Communication),
		ProblemSolving:    model.ClampScore(*wire.ProblemSolving),
		Completeness:      model.ClampScore(*wire.Completeness),
		Efficiency:        model.ClampScore(*wire.Efficiency),
	}

	next := model.Difficulty(wire.NextDifficulty)
	if !next.IsValid() {
		next = difficulty
	}

	return &model.Evaluation{
		Scores:         scores,
		OverallScore:   scores.Overall(),
		Feedback:       wire.Feedback,
		Strengths:      wire.Strengths,
		Improvements:   wire.Improvements,
		NextDifficulty: next,
		Method:         "model",
		EvaluatedAt:    time.Now().UTC(),
	}, nil
}

// call makes a generateContent request and extracts the first candidate text.
func (c *GeminiClient) call(ctx context.Context, modelName, prompt string, maxTokens int, temperature float64, jsonResponse bool) (string, error) {
	generationConfig := map[string]interface{}{
		"maxOutputTokens": maxTokens,
		"temperature":     temperature,
	}
	if jsonResponse {
		generationConfig["responseMimeType"] = "application/json"
	}

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
		"generationConfig": generationConfig,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?key=%s", c.config.ModelEndpoint(modelName), c.config.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini returned status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", err
	}

	if len(geminiResp.Candidates) > 0 && len(geminiResp.Candidates[0].Content.Parts) > 0 {
		return geminiResp.Candidates[0].Content.Parts[0].Text, nil
	}
	return "", fmt.Errorf("empty response from gemini")
}

func buildEvaluationPrompt(questionText, answer string, difficulty model.Difficulty, questionType model.QuestionType) string {
	return fmt.Sprintf(`You are an expert Excel interviewer evaluating a candidate's response for a %s level position.

QUESTION: %s
CANDIDATE RESPONSE: %s
DIFFICULTY LEVEL: %s
QUESTION TYPE: %s

Evaluate the response on these criteria (0-100 scale):
1. Technical Accuracy - Correctness of Excel knowledge and formulas
2. Communication Clarity - How well they explained their approach
3. Problem Solving Approach - Logical thinking and methodology
4. Completeness - Did they address all parts of the question
5. Efficiency - Did they suggest optimal Excel solutions

Provide detailed constructive feedback (200-300 words), 2-3 specific strengths,
2-3 areas for improvement, and a recommended next difficulty level.

Return ONLY valid JSON with this exact structure:
{
    "technical_accuracy": <score_0_to_100>,
    "communication_clarity": <score_0_to_100>,
    "problem_solving_approach": <score_0_to_100>,
    "completeness": <score_0_to_100>,
    "efficiency": <score_0_to_100>,
    "feedback": "<detailed constructive feedback>",
    "strengths": ["<strength1>", "<strength2>"],
    "areas_for_improvement": ["<area1>", "<area2>"],
    "next_difficulty_level": "<basic|intermediate|advanced>"
}

Be thorough, fair, and focus on practical Excel skills relevant to business contexts.`,
		difficulty, questionText, answer, difficulty, questionType)
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
