// Package openai implements the inference provider contracts over the OpenAI
// chat completions API.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"

	"github.com/y-kondo/retento/internal/inference"
)

type Client struct {
	httpClient       *resty.Client
	model            string
	maxRetryAttempts uint
}

func NewClient(apiKey, model string, retryAttempts uint) *Client {
	client := resty.New()
	client.SetBaseURL("https://api.openai.com/v1")
	client.SetHeader("Authorization", "Bearer "+apiKey)
	client.SetHeader("Content-Type", "application/json")

	return &Client{
		httpClient:       client,
		model:            model,
		maxRetryAttempts: retryAttempts,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

// GetModel returns the model name configured for this client
func (client *Client) GetModel() string {
	return client.model
}

type ChatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float32   `json:"temperature,omitempty"`
}

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

type Choice struct {
	Index        int           `json:"index"`
	Message      ChoiceMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

type ChoiceMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Retry on JSON parsing errors as they might be due to incomplete responses
	errStr := err.Error()
	if strings.Contains(errStr, "json.Unmarshal") || strings.Contains(errStr, "unexpected end of JSON input") {
		return true
	}

	// Retry on network-related errors
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout") {
		return true
	}

	// Retry on 5xx errors (server errors)
	if strings.Contains(errStr, "response error 5") {
		return true
	}

	// Retry on rate limiting (429)
	if strings.Contains(errStr, "response error 429") {
		return true
	}

	return false
}

// GenerateQuestions implements the inference.QuestionGenerator interface
func (client *Client) GenerateQuestions(
	ctx context.Context,
	params inference.GenerateQuestionsRequest,
) (inference.GenerateQuestionsResponse, error) {
	var result inference.GenerateQuestionsResponse
	if err := retry.Do(
		func() error {
			response, err := client.generateQuestions(ctx, params)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			result = response
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return inference.GenerateQuestionsResponse{}, err
	}
	return result, nil
}

const generateSystemPrompt = `You are an expert tutor that writes review questions for a user's notes.

GOAL
Return ONLY a JSON array with exactly the requested number of questions. Each element:
- "type": the question type, copied from the requested types list
- "prompt": the question text
- "options": an array of 4 answer options, ONLY for multiple-choice style types; omit otherwise
- "correct_answer": the expected answer in one or two sentences

RULES
- Write questions strictly about the provided content. Never ask about anything the content does not cover.
- Match the requested difficulty: easy questions test recall, medium questions test understanding, hard questions test application and judgment.
- Use each requested type for the question at the same position in the types list.
- In "mono_test" mode the questions must build on each other as one cohesive test over the whole content; in "separate_questions" mode each question must stand alone.
- STRICT OUTPUT: no text outside the JSON array. Produce exactly the requested count.`

func (client *Client) generateQuestions(
	ctx context.Context,
	params inference.GenerateQuestionsRequest,
) (inference.GenerateQuestionsResponse, error) {
	if params.Count <= 0 {
		return inference.GenerateQuestionsResponse{}, fmt.Errorf("question count must be positive, got %d", params.Count)
	}

	userContent, err := json.Marshal(params)
	if err != nil {
		return inference.GenerateQuestionsResponse{}, fmt.Errorf("json.Marshal(params) > %w", err)
	}

	content, err := client.chatCompletion(ctx, ChatCompletionRequest{
		Model:       client.model,
		Temperature: 0.7,
		Messages: []Message{
			{Role: RoleSystem, Content: generateSystemPrompt},
			{Role: RoleUser, Content: string(userContent)},
		},
	})
	if err != nil {
		return inference.GenerateQuestionsResponse{}, err
	}

	var drafts []inference.QuestionDraft
	if err := json.Unmarshal([]byte(content), &drafts); err != nil {
		repaired, ok := extractJSONArray(content)
		if !ok {
			return inference.GenerateQuestionsResponse{}, fmt.Errorf("json.Unmarshal(%s) > %w", content, err)
		}
		if repairErr := json.Unmarshal([]byte(repaired), &drafts); repairErr != nil {
			return inference.GenerateQuestionsResponse{}, fmt.Errorf("json.Unmarshal(%s) > %w", content, repairErr)
		}
	}

	if len(drafts) != params.Count {
		return inference.GenerateQuestionsResponse{}, fmt.Errorf("expected %d questions but the model returned %d", params.Count, len(drafts))
	}
	for i, draft := range drafts {
		if strings.TrimSpace(draft.Prompt) == "" {
			return inference.GenerateQuestionsResponse{}, fmt.Errorf("question %d has an empty prompt", i)
		}
	}
	return inference.GenerateQuestionsResponse{Questions: drafts}, nil
}

// EvaluateAnswer implements the inference.AnswerEvaluator interface
func (client *Client) EvaluateAnswer(
	ctx context.Context,
	params inference.EvaluateAnswerRequest,
) (inference.EvaluateAnswerResponse, error) {
	var result inference.EvaluateAnswerResponse
	if err := retry.Do(
		func() error {
			response, err := client.evaluateAnswer(ctx, params)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			result = response
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return inference.EvaluateAnswerResponse{}, err
	}
	return result, nil
}

const evaluateSystemPrompt = `You are an expert grader that judges a user's answer to a review question about their own notes.

GOAL
Return ONLY a JSON object:
{
  "evaluation": "correct" | "partial" | "incorrect",
  "score": <integer 0-100>,
  "message": "<one or two sentences of feedback addressed to the user>",
  "suggestions": ["<short study suggestion>", ...],
  "correct_answer": "<the expected answer>"
}

RULES
- Judge meaning, not wording. An answer that captures the essential idea in different words is correct.
- "partial" means the answer captures some but not all of the essential idea; score it between 40 and 79.
- "correct" scores 80-100, "incorrect" scores 0-39.
- For multiple-choice questions, only an answer matching the correct option is correct.
- Keep the message encouraging and specific. Give at most 3 suggestions.
- STRICT OUTPUT: no text outside the JSON object.`

func (client *Client) evaluateAnswer(
	ctx context.Context,
	params inference.EvaluateAnswerRequest,
) (inference.EvaluateAnswerResponse, error) {
	userContent, err := json.Marshal(params)
	if err != nil {
		return inference.EvaluateAnswerResponse{}, fmt.Errorf("json.Marshal(params) > %w", err)
	}

	content, err := client.chatCompletion(ctx, ChatCompletionRequest{
		Model:       client.model,
		Temperature: 0.2,
		Messages: []Message{
			{Role: RoleSystem, Content: evaluateSystemPrompt},
			{Role: RoleUser, Content: string(userContent)},
		},
	})
	if err != nil {
		return inference.EvaluateAnswerResponse{}, err
	}

	return decodeEvaluation(content), nil
}

// decodeEvaluation parses the model output in two stages: a strict parse
// first, then a structural extraction of the first JSON object. When both
// fail it degrades to a neutral "unable to evaluate" result instead of
// failing the session.
func decodeEvaluation(content string) inference.EvaluateAnswerResponse {
	var decoded inference.EvaluateAnswerResponse
	if err := json.Unmarshal([]byte(content), &decoded); err != nil {
		repaired, ok := extractJSONObject(content)
		if !ok {
			slog.Default().Warn("evaluation response is not JSON, falling back to a neutral result",
				"content", content,
				"error", err)
			return neutralEvaluation()
		}
		if repairErr := json.Unmarshal([]byte(repaired), &decoded); repairErr != nil {
			slog.Default().Warn("evaluation response could not be repaired, falling back to a neutral result",
				"content", content,
				"error", repairErr)
			return neutralEvaluation()
		}
	}

	switch decoded.Evaluation {
	case inference.EvaluationCorrect, inference.EvaluationPartial, inference.EvaluationIncorrect:
	default:
		slog.Default().Warn("evaluation response has an unknown evaluation, falling back to a neutral result",
			"evaluation", decoded.Evaluation)
		return neutralEvaluation()
	}
	if decoded.Score < 0 {
		decoded.Score = 0
	}
	if decoded.Score > 100 {
		decoded.Score = 100
	}
	return decoded
}

func neutralEvaluation() inference.EvaluateAnswerResponse {
	return inference.EvaluateAnswerResponse{
		Evaluation: inference.EvaluationError,
		Score:      0,
		Message:    "Unable to evaluate this answer.",
	}
}

// chatCompletion sends one chat completion request and returns the content of
// the first choice.
func (client *Client) chatCompletion(ctx context.Context, requestBody ChatCompletionRequest) (string, error) {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(requestBody).
		SetResult(&ChatCompletionResponse{}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return "", fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	responseBody := response.Result().(*ChatCompletionResponse)
	if responseBody == nil || len(responseBody.Choices) == 0 {
		return "", fmt.Errorf("empty response body or choices: %s", response.String())
	}

	content := responseBody.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("empty response content: %s", response.String())
	}
	slog.Default().Debug("openai response content",
		"request", requestBody,
		"response", responseBody,
	)
	return content, nil
}
