// Package inference defines the AI provider contracts consumed by the review
// engine: question generation and answer evaluation.
package inference

import "context"

//go:generate mockgen -source=interface.go -destination=../mocks/inference/mock_client.go -package=mock_inference

// Difficulty selects how demanding generated questions should be.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// GenerationMode selects how generated questions are presented.
type GenerationMode string

const (
	// ModeSeparateQuestions generates independent questions answered one at
	// a time.
	ModeSeparateQuestions GenerationMode = "separate_questions"
	// ModeMonoTest generates one cohesive test over the whole content.
	ModeMonoTest GenerationMode = "mono_test"
)

// Evaluation classifies how an answer was graded.
type Evaluation string

const (
	EvaluationCorrect   Evaluation = "correct"
	EvaluationPartial   Evaluation = "partial"
	EvaluationIncorrect Evaluation = "incorrect"
	// EvaluationError marks an answer the provider could not grade.
	EvaluationError Evaluation = "error"
)

// QuestionDraft is a generated question before it becomes part of a session.
type QuestionDraft struct {
	Type          string   `json:"type"`
	Prompt        string   `json:"prompt"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer,omitempty"`
}

// GenerateQuestionsRequest holds parameters for generating review questions
// from note or folder content.
type GenerateQuestionsRequest struct {
	Content    string         `json:"content"`
	Difficulty Difficulty     `json:"difficulty"`
	Count      int            `json:"count"`
	Mode       GenerationMode `json:"mode"`
	Types      []string       `json:"types,omitempty"`
}

// GenerateQuestionsResponse carries the generated drafts. The provider must
// return exactly the requested count of well-formed drafts or fail.
type GenerateQuestionsResponse struct {
	Questions []QuestionDraft `json:"questions"`
}

// QuestionGenerator generates review questions from content.
type QuestionGenerator interface {
	GenerateQuestions(ctx context.Context, params GenerateQuestionsRequest) (GenerateQuestionsResponse, error)
}

// EvaluateAnswerRequest holds one answer to grade.
type EvaluateAnswerRequest struct {
	Question      string `json:"question"`
	Answer        string `json:"answer"`
	QuestionType  string `json:"question_type"`
	CorrectAnswer string `json:"correct_answer,omitempty"`
	Context       string `json:"context,omitempty"`
}

// EvaluateAnswerResponse is the graded result for one answer.
type EvaluateAnswerResponse struct {
	Evaluation    Evaluation `json:"evaluation"`
	Score         int        `json:"score"`
	Message       string     `json:"message"`
	Suggestions   []string   `json:"suggestions,omitempty"`
	CorrectAnswer string     `json:"correct_answer,omitempty"`
}

// AnswerEvaluator grades user answers to generated questions.
type AnswerEvaluator interface {
	EvaluateAnswer(ctx context.Context, params EvaluateAnswerRequest) (EvaluateAnswerResponse, error)
}

// Client is the combined provider contract used by the AI review manager.
type Client interface {
	QuestionGenerator
	AnswerEvaluator
}

const (
	DefaultMaxRetryAttempts = 3
)
