// Package aireview manages AI-generated, AI-graded review sessions: question
// generation, per-question grading state and the bridge back into the
// spaced-repetition schedule of the reviewed source.
package aireview

import (
	"fmt"
	"time"

	"github.com/y-kondo/retento/internal/inference"
	"github.com/y-kondo/retento/internal/review"
)

// SessionStatus is the lifecycle state of an AI review session.
type SessionStatus string

const (
	// SessionStatusPending means the session exists and generation has been
	// requested but has not finished.
	SessionStatusPending SessionStatus = "pending"
	// SessionStatusReadyForReview means questions were generated and the user
	// has not opened the session yet.
	SessionStatusReadyForReview SessionStatus = "ready_for_review"
	// SessionStatusInProgress means the user has opened the session.
	SessionStatusInProgress SessionStatus = "in_progress"
	// SessionStatusCompleted is terminal.
	SessionStatusCompleted SessionStatus = "completed"
	// SessionStatusFailed is terminal and carries an error message.
	SessionStatusFailed SessionStatus = "failed"
)

// QuestionStatus is the grading state of one generated question.
type QuestionStatus string

const (
	QuestionStatusGenerated  QuestionStatus = "generated"
	QuestionStatusAnswered   QuestionStatus = "answered"
	QuestionStatusEvaluating QuestionStatus = "evaluating"
	QuestionStatusEvaluated  QuestionStatus = "evaluated"
	QuestionStatusSkipped    QuestionStatus = "skipped"
)

// SourceType identifies what kind of record a session reviews.
type SourceType string

const (
	SourceTypeNote   SourceType = "note"
	SourceTypeFolder SourceType = "folder"
)

// Question is one generated question within a session. Questions have no
// lifecycle of their own; the owning session persists them.
type Question struct {
	ID            string               `yaml:"id"`
	Type          QuestionType         `yaml:"type"`
	Prompt        string               `yaml:"prompt"`
	Options       []string             `yaml:"options,omitempty"`
	Status        QuestionStatus       `yaml:"status"`
	UserAnswer    string               `yaml:"user_answer,omitempty"`
	Evaluation    inference.Evaluation `yaml:"evaluation,omitempty"`
	Score         *int                 `yaml:"score,omitempty"`
	Feedback      string               `yaml:"feedback,omitempty"`
	Suggestions   []string             `yaml:"suggestions,omitempty"`
	CorrectAnswer string               `yaml:"correct_answer,omitempty"`
	TimeSpentSec  int                  `yaml:"time_spent_sec"`
}

// Result is the aggregate outcome of a completed session.
type Result struct {
	TotalQuestions int `yaml:"total_questions"`
	CorrectAnswers int `yaml:"correct_answers"`
	SkippedAnswers int `yaml:"skipped_answers"`
}

// Session is an AI review session over a note or a folder.
type Session struct {
	ID                   string                   `yaml:"id"`
	OwnerID              string                   `yaml:"owner_id"`
	SourceID             string                   `yaml:"source_id"`
	SourceType           SourceType               `yaml:"source_type"`
	Status               SessionStatus            `yaml:"status"`
	Mode                 inference.GenerationMode `yaml:"mode"`
	Difficulty           inference.Difficulty     `yaml:"difficulty"`
	QuestionCount        int                      `yaml:"question_count"`
	Questions            []Question               `yaml:"questions,omitempty"`
	Result               *Result                  `yaml:"result,omitempty"`
	ErrorMessage         string                   `yaml:"error_message,omitempty"`
	RequestedAt          time.Time                `yaml:"requested_at"`
	QuestionsGeneratedAt *time.Time               `yaml:"questions_generated_at,omitempty"`
	SessionStartedAt     *time.Time               `yaml:"session_started_at,omitempty"`
	CompletedAt          *time.Time               `yaml:"completed_at,omitempty"`
}

// sessionTransitions lists the allowed session status transitions. Completed
// and failed are terminal.
var sessionTransitions = map[SessionStatus][]SessionStatus{
	SessionStatusPending:        {SessionStatusReadyForReview, SessionStatusFailed},
	SessionStatusReadyForReview: {SessionStatusInProgress, SessionStatusFailed},
	SessionStatusInProgress:     {SessionStatusCompleted},
	SessionStatusCompleted:      {},
	SessionStatusFailed:         {},
}

// Transition moves the session to the next status, rejecting transitions the
// state machine does not allow.
func (s *Session) Transition(next SessionStatus) error {
	for _, allowed := range sessionTransitions[s.Status] {
		if allowed == next {
			s.Status = next
			return nil
		}
	}
	return fmt.Errorf("session %s cannot move from %s to %s", s.ID, s.Status, next)
}

// questionTransitions lists the allowed question status transitions.
// Evaluating may fall back to answered so a failed evaluation can be retried;
// evaluated and skipped are terminal.
var questionTransitions = map[QuestionStatus][]QuestionStatus{
	QuestionStatusGenerated:  {QuestionStatusAnswered, QuestionStatusSkipped},
	QuestionStatusAnswered:   {QuestionStatusEvaluating},
	QuestionStatusEvaluating: {QuestionStatusEvaluated, QuestionStatusAnswered},
	QuestionStatusEvaluated:  {},
	QuestionStatusSkipped:    {},
}

// Transition moves the question to the next status, rejecting transitions the
// state machine does not allow.
func (q *Question) Transition(next QuestionStatus) error {
	for _, allowed := range questionTransitions[q.Status] {
		if allowed == next {
			q.Status = next
			return nil
		}
	}
	return fmt.Errorf("question %s cannot move from %s to %s", q.ID, q.Status, next)
}

// QuestionByID returns a pointer into the session's question sequence.
func (s *Session) QuestionByID(id string) (*Question, bool) {
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return &s.Questions[i], true
		}
	}
	return nil, false
}

// Progress returns the share of questions in a settled state (evaluated,
// answered or skipped) as a percentage.
func (s *Session) Progress() int {
	if len(s.Questions) == 0 {
		return 0
	}
	settled := 0
	for _, question := range s.Questions {
		switch question.Status {
		case QuestionStatusEvaluated, QuestionStatusAnswered, QuestionStatusSkipped:
			settled++
		}
	}
	return settled * 100 / len(s.Questions)
}

// Aggregate computes the session result from the question sequence.
func (s *Session) Aggregate() Result {
	result := Result{TotalQuestions: len(s.Questions)}
	for _, question := range s.Questions {
		if question.Status == QuestionStatusSkipped {
			result.SkippedAnswers++
		}
		if question.Evaluation == inference.EvaluationCorrect {
			result.CorrectAnswers++
		}
	}
	return result
}

// FeedbackForResult maps the correctness ratio of a result onto the discrete
// 1-4 feedback scale the scheduler consumes.
func FeedbackForResult(result Result) review.Feedback {
	if result.TotalQuestions == 0 || result.CorrectAnswers == 0 {
		return review.FeedbackForgot
	}
	ratio := float64(result.CorrectAnswers) / float64(result.TotalQuestions)
	switch {
	case ratio < 0.5:
		return review.FeedbackHard
	case ratio < 0.8:
		return review.FeedbackGood
	default:
		return review.FeedbackEasy
	}
}
