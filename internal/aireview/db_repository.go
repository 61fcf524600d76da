package aireview

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/y-kondo/retento/internal/inference"
)

type dbSession struct {
	ID                   string     `db:"id"`
	OwnerID              string     `db:"owner_id"`
	SourceID             string     `db:"source_id"`
	SourceType           string     `db:"source_type"`
	Status               string     `db:"status"`
	Mode                 string     `db:"mode"`
	Difficulty           string     `db:"difficulty"`
	QuestionCount        int        `db:"question_count"`
	TotalQuestions       *int       `db:"total_questions"`
	CorrectAnswers       *int       `db:"correct_answers"`
	SkippedAnswers       *int       `db:"skipped_answers"`
	ErrorMessage         string     `db:"error_message"`
	RequestedAt          time.Time  `db:"requested_at"`
	QuestionsGeneratedAt *time.Time `db:"questions_generated_at"`
	SessionStartedAt     *time.Time `db:"session_started_at"`
	CompletedAt          *time.Time `db:"completed_at"`
	CreatedAt            time.Time  `db:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at"`
}

type dbQuestion struct {
	ID            string `db:"id"`
	SessionID     string `db:"session_id"`
	Position      int    `db:"position"`
	Type          string `db:"type"`
	Prompt        string `db:"prompt"`
	Options       string `db:"options"`
	Status        string `db:"status"`
	UserAnswer    string `db:"user_answer"`
	Evaluation    string `db:"evaluation"`
	Score         *int   `db:"score"`
	Feedback      string `db:"feedback"`
	Suggestions   string `db:"suggestions"`
	CorrectAnswer string `db:"correct_answer"`
	TimeSpentSec  int    `db:"time_spent_sec"`
}

// DBSessionRepository implements SessionRepository using MySQL. Option and
// suggestion lists are stored as JSON text columns.
type DBSessionRepository struct {
	db *sqlx.DB
}

// NewDBSessionRepository creates a new DBSessionRepository.
func NewDBSessionRepository(db *sqlx.DB) *DBSessionRepository {
	return &DBSessionRepository{db: db}
}

// Create inserts the session and its questions.
func (r *DBSessionRepository) Create(ctx context.Context, session *Session) error {
	row, err := toDBSession(session)
	if err != nil {
		return err
	}
	if _, err := r.db.NamedExecContext(ctx,
		`INSERT INTO ai_review_sessions
		(id, owner_id, source_id, source_type, status, mode, difficulty, question_count,
		 total_questions, correct_answers, skipped_answers, error_message,
		 requested_at, questions_generated_at, session_started_at, completed_at)
		VALUES
		(:id, :owner_id, :source_id, :source_type, :status, :mode, :difficulty, :question_count,
		 :total_questions, :correct_answers, :skipped_answers, :error_message,
		 :requested_at, :questions_generated_at, :session_started_at, :completed_at)`,
		row); err != nil {
		return fmt.Errorf("db.NamedExecContext(insert ai_review_sessions) > %w", err)
	}
	return r.replaceQuestions(ctx, session)
}

// Get returns the session with its question sequence, or nil if not found.
func (r *DBSessionRepository) Get(ctx context.Context, id string) (*Session, error) {
	var row dbSession
	err := r.db.GetContext(ctx, &row, "SELECT * FROM ai_review_sessions WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(ai_review_sessions) > %w", err)
	}

	var questionRows []dbQuestion
	if err := r.db.SelectContext(ctx, &questionRows,
		"SELECT * FROM ai_review_questions WHERE session_id = ? ORDER BY position",
		id); err != nil {
		return nil, fmt.Errorf("db.SelectContext(ai_review_questions) > %w", err)
	}

	return fromDBSession(row, questionRows)
}

// Update rewrites the session row and its question sequence.
func (r *DBSessionRepository) Update(ctx context.Context, session *Session) error {
	row, err := toDBSession(session)
	if err != nil {
		return err
	}
	if _, err := r.db.NamedExecContext(ctx,
		`UPDATE ai_review_sessions
		SET status = :status, total_questions = :total_questions,
		    correct_answers = :correct_answers, skipped_answers = :skipped_answers,
		    error_message = :error_message, questions_generated_at = :questions_generated_at,
		    session_started_at = :session_started_at, completed_at = :completed_at
		WHERE id = :id`,
		row); err != nil {
		return fmt.Errorf("db.NamedExecContext(update ai_review_sessions) > %w", err)
	}
	return r.replaceQuestions(ctx, session)
}

func (r *DBSessionRepository) replaceQuestions(ctx context.Context, session *Session) error {
	if _, err := r.db.ExecContext(ctx,
		"DELETE FROM ai_review_questions WHERE session_id = ?", session.ID); err != nil {
		return fmt.Errorf("db.ExecContext(delete ai_review_questions) > %w", err)
	}
	for position, question := range session.Questions {
		row, err := toDBQuestion(session.ID, position, question)
		if err != nil {
			return err
		}
		if _, err := r.db.NamedExecContext(ctx,
			`INSERT INTO ai_review_questions
			(id, session_id, position, type, prompt, options, status, user_answer,
			 evaluation, score, feedback, suggestions, correct_answer, time_spent_sec)
			VALUES
			(:id, :session_id, :position, :type, :prompt, :options, :status, :user_answer,
			 :evaluation, :score, :feedback, :suggestions, :correct_answer, :time_spent_sec)`,
			row); err != nil {
			return fmt.Errorf("db.NamedExecContext(insert ai_review_questions) > %w", err)
		}
	}
	return nil
}

func toDBSession(session *Session) (dbSession, error) {
	row := dbSession{
		ID:                   session.ID,
		OwnerID:              session.OwnerID,
		SourceID:             session.SourceID,
		SourceType:           string(session.SourceType),
		Status:               string(session.Status),
		Mode:                 string(session.Mode),
		Difficulty:           string(session.Difficulty),
		QuestionCount:        session.QuestionCount,
		ErrorMessage:         session.ErrorMessage,
		RequestedAt:          session.RequestedAt,
		QuestionsGeneratedAt: session.QuestionsGeneratedAt,
		SessionStartedAt:     session.SessionStartedAt,
		CompletedAt:          session.CompletedAt,
	}
	if session.Result != nil {
		row.TotalQuestions = &session.Result.TotalQuestions
		row.CorrectAnswers = &session.Result.CorrectAnswers
		row.SkippedAnswers = &session.Result.SkippedAnswers
	}
	return row, nil
}

func fromDBSession(row dbSession, questionRows []dbQuestion) (*Session, error) {
	session := &Session{
		ID:                   row.ID,
		OwnerID:              row.OwnerID,
		SourceID:             row.SourceID,
		SourceType:           SourceType(row.SourceType),
		Status:               SessionStatus(row.Status),
		Mode:                 inference.GenerationMode(row.Mode),
		Difficulty:           inference.Difficulty(row.Difficulty),
		QuestionCount:        row.QuestionCount,
		ErrorMessage:         row.ErrorMessage,
		RequestedAt:          row.RequestedAt,
		QuestionsGeneratedAt: row.QuestionsGeneratedAt,
		SessionStartedAt:     row.SessionStartedAt,
		CompletedAt:          row.CompletedAt,
	}
	if row.TotalQuestions != nil {
		session.Result = &Result{
			TotalQuestions: *row.TotalQuestions,
		}
		if row.CorrectAnswers != nil {
			session.Result.CorrectAnswers = *row.CorrectAnswers
		}
		if row.SkippedAnswers != nil {
			session.Result.SkippedAnswers = *row.SkippedAnswers
		}
	}

	for _, questionRow := range questionRows {
		question, err := fromDBQuestion(questionRow)
		if err != nil {
			return nil, err
		}
		session.Questions = append(session.Questions, question)
	}
	return session, nil
}

func toDBQuestion(sessionID string, position int, question Question) (dbQuestion, error) {
	options, err := marshalStringList(question.Options)
	if err != nil {
		return dbQuestion{}, fmt.Errorf("marshal question options > %w", err)
	}
	suggestions, err := marshalStringList(question.Suggestions)
	if err != nil {
		return dbQuestion{}, fmt.Errorf("marshal question suggestions > %w", err)
	}
	return dbQuestion{
		ID:            question.ID,
		SessionID:     sessionID,
		Position:      position,
		Type:          string(question.Type),
		Prompt:        question.Prompt,
		Options:       options,
		Status:        string(question.Status),
		UserAnswer:    question.UserAnswer,
		Evaluation:    string(question.Evaluation),
		Score:         question.Score,
		Feedback:      question.Feedback,
		Suggestions:   suggestions,
		CorrectAnswer: question.CorrectAnswer,
		TimeSpentSec:  question.TimeSpentSec,
	}, nil
}

func fromDBQuestion(row dbQuestion) (Question, error) {
	options, err := unmarshalStringList(row.Options)
	if err != nil {
		return Question{}, fmt.Errorf("unmarshal question options > %w", err)
	}
	suggestions, err := unmarshalStringList(row.Suggestions)
	if err != nil {
		return Question{}, fmt.Errorf("unmarshal question suggestions > %w", err)
	}
	return Question{
		ID:            row.ID,
		Type:          QuestionType(row.Type),
		Prompt:        row.Prompt,
		Options:       options,
		Status:        QuestionStatus(row.Status),
		UserAnswer:    row.UserAnswer,
		Evaluation:    inference.Evaluation(row.Evaluation),
		Score:         row.Score,
		Feedback:      row.Feedback,
		Suggestions:   suggestions,
		CorrectAnswer: row.CorrectAnswer,
		TimeSpentSec:  row.TimeSpentSec,
	}, nil
}

func marshalStringList(list []string) (string, error) {
	if len(list) == 0 {
		return "[]", nil
	}
	content, err := json.Marshal(list)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

func unmarshalStringList(content string) ([]string, error) {
	if content == "" {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal([]byte(content), &list); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list, nil
}
