package aireview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/y-kondo/retento/internal/inference"
	"github.com/y-kondo/retento/internal/review"
	"github.com/y-kondo/retento/internal/watch"
)

var (
	// ErrSessionNotFound is returned when no session matches the id.
	ErrSessionNotFound = errors.New("ai review session not found")
	// ErrQuestionNotFound is returned when no question matches the id.
	ErrQuestionNotFound = errors.New("ai review question not found")
	// ErrSourceNotFound is returned when the reviewed note or folder is gone.
	ErrSourceNotFound = errors.New("ai review source item not found")
)

// StartParams are the caller-supplied parameters for a new AI review session.
type StartParams struct {
	OwnerID       string                   `validate:"required"`
	SourceID      string                   `validate:"required"`
	SourceType    SourceType               `validate:"required,oneof=note folder"`
	Mode          inference.GenerationMode `validate:"required,oneof=separate_questions mono_test"`
	Difficulty    inference.Difficulty     `validate:"required,oneof=easy medium hard"`
	QuestionCount int                      `validate:"required,min=1,max=20"`
}

// Manager drives AI review sessions: asynchronous question generation,
// per-question grading state and the final bridge back into the
// spaced-repetition schedule of the reviewed source.
type Manager struct {
	sessions SessionRepository
	items    review.ItemRepository
	client   inference.Client
	validate *validator.Validate
	now      func() time.Time

	// rngMu serializes type sampling; batch generation calls Generate from
	// multiple goroutines and rand.Rand is not safe for concurrent use.
	rngMu sync.Mutex
	rng   *rand.Rand

	// dispatch runs generation off the caller's goroutine. Tests replace it
	// with a synchronous call.
	dispatch func(fn func())

	mu     sync.Mutex
	stores map[string]*watch.Store[Session]
}

// ManagerOption customizes a Manager.
type ManagerOption func(*Manager)

// WithClock overrides the manager clock. Used in tests.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.now = now
	}
}

// WithRand overrides the random source used for question type sampling.
func WithRand(rng *rand.Rand) ManagerOption {
	return func(m *Manager) {
		m.rng = rng
	}
}

// NewManager creates an AI review session manager.
func NewManager(sessions SessionRepository, items review.ItemRepository, client inference.Client, opts ...ManagerOption) *Manager {
	manager := &Manager{
		sessions: sessions,
		items:    items,
		client:   client,
		validate: validator.New(),
		now:      time.Now,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		dispatch: func(fn func()) { go fn() },
		stores:   make(map[string]*watch.Store[Session]),
	}
	for _, opt := range opts {
		opt(manager)
	}
	return manager
}

// Watch returns the observable state for a session, creating it on first use.
// One store exists per active session; Unwatch releases it.
func (m *Manager) Watch(sessionID string) *watch.Store[Session] {
	m.mu.Lock()
	defer m.mu.Unlock()
	store, ok := m.stores[sessionID]
	if !ok {
		store = watch.NewStore(Session{ID: sessionID})
		m.stores[sessionID] = store
	}
	return store
}

// Unwatch drops the observable state for a session.
func (m *Manager) Unwatch(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stores, sessionID)
}

func (m *Manager) publish(session *Session) {
	m.mu.Lock()
	store, ok := m.stores[session.ID]
	m.mu.Unlock()
	if ok {
		store.Set(cloneSession(*session))
	}
}

// StartAiReview creates a pending session and triggers question generation
// asynchronously. The caller receives the session immediately and polls or
// watches for the ready_for_review transition.
func (m *Manager) StartAiReview(ctx context.Context, params StartParams) (*Session, error) {
	if err := m.validate.Struct(params); err != nil {
		return nil, fmt.Errorf("invalid ai review parameters > %w", err)
	}

	session := &Session{
		ID:            uuid.NewString(),
		OwnerID:       params.OwnerID,
		SourceID:      params.SourceID,
		SourceType:    params.SourceType,
		Status:        SessionStatusPending,
		Mode:          params.Mode,
		Difficulty:    params.Difficulty,
		QuestionCount: params.QuestionCount,
		RequestedAt:   m.now(),
	}
	if err := m.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("sessions.Create() > %w", err)
	}
	// Materialize the store before generation starts so a watcher arriving
	// after a fast generation still sees the final state in the snapshot.
	m.Watch(session.ID)
	m.publish(session)

	// Generation outlives the request that triggered it.
	generationCtx := context.WithoutCancel(ctx)
	m.dispatch(func() {
		if err := m.Generate(generationCtx, session.ID); err != nil {
			slog.Default().Error("ai review question generation failed",
				"sessionID", session.ID,
				"error", err)
		}
	})
	return session, nil
}

// Generate produces the question sequence for a pending session. On success
// the session becomes ready_for_review; on failure it becomes failed with a
// message. Generation failure is terminal for the session.
func (m *Manager) Generate(ctx context.Context, sessionID string) error {
	session, err := m.getSession(ctx, sessionID)
	if err != nil {
		return err
	}

	drafts, err := m.generateDrafts(ctx, session)
	if err != nil {
		session.ErrorMessage = err.Error()
		if transitionErr := session.Transition(SessionStatusFailed); transitionErr != nil {
			return transitionErr
		}
		if updateErr := m.sessions.Update(ctx, session); updateErr != nil {
			return fmt.Errorf("sessions.Update(failed session) > %w", updateErr)
		}
		m.publish(session)
		return err
	}

	questions := make([]Question, 0, len(drafts))
	for _, draft := range drafts {
		questions = append(questions, Question{
			ID:            uuid.NewString(),
			Type:          QuestionType(draft.Type),
			Prompt:        draft.Prompt,
			Options:       draft.Options,
			Status:        QuestionStatusGenerated,
			CorrectAnswer: draft.CorrectAnswer,
		})
	}
	session.Questions = questions
	generatedAt := m.now()
	session.QuestionsGeneratedAt = &generatedAt
	if err := session.Transition(SessionStatusReadyForReview); err != nil {
		return err
	}
	if err := m.sessions.Update(ctx, session); err != nil {
		return fmt.Errorf("sessions.Update(ready session) > %w", err)
	}
	m.publish(session)
	return nil
}

func (m *Manager) generateDrafts(ctx context.Context, session *Session) ([]inference.QuestionDraft, error) {
	source, err := m.items.Get(ctx, session.SourceID)
	if err != nil {
		return nil, fmt.Errorf("items.Get(%s) > %w", session.SourceID, err)
	}
	if source == nil {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, session.SourceID)
	}

	m.rngMu.Lock()
	types := PickQuestionTypes(m.rng, session.Difficulty, session.QuestionCount)
	m.rngMu.Unlock()
	typeNames := make([]string, 0, len(types))
	for _, questionType := range types {
		typeNames = append(typeNames, string(questionType))
	}

	response, err := m.client.GenerateQuestions(ctx, inference.GenerateQuestionsRequest{
		Content:    source.Content,
		Difficulty: session.Difficulty,
		Count:      session.QuestionCount,
		Mode:       session.Mode,
		Types:      typeNames,
	})
	if err != nil {
		return nil, fmt.Errorf("client.GenerateQuestions() > %w", err)
	}
	return response.Questions, nil
}

// LoadSession fetches a session. The first load after generation moves it to
// in_progress and starts the elapsed-time clock.
func (m *Manager) LoadSession(ctx context.Context, sessionID string) (*Session, error) {
	session, err := m.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != SessionStatusReadyForReview {
		return session, nil
	}

	startedAt := m.now()
	session.SessionStartedAt = &startedAt
	if err := session.Transition(SessionStatusInProgress); err != nil {
		return nil, err
	}
	if err := m.sessions.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("sessions.Update(in_progress session) > %w", err)
	}
	m.publish(session)
	return session, nil
}

// SubmitAnswer records the user's answer and immediately triggers evaluation.
func (m *Manager) SubmitAnswer(ctx context.Context, sessionID, questionID, answer string) error {
	session, err := m.getSession(ctx, sessionID)
	if err != nil {
		return err
	}
	question, ok := session.QuestionByID(questionID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrQuestionNotFound, questionID)
	}
	if err := question.Transition(QuestionStatusAnswered); err != nil {
		return err
	}
	question.UserAnswer = answer
	if err := m.sessions.Update(ctx, session); err != nil {
		return fmt.Errorf("sessions.Update(answered question) > %w", err)
	}
	m.publish(session)

	return m.EvaluateAnswer(ctx, sessionID, questionID)
}

// EvaluateAnswer grades an answered question. A provider failure rolls the
// question back to answered so the user can retry; no partial evaluation
// state is left behind.
func (m *Manager) EvaluateAnswer(ctx context.Context, sessionID, questionID string) error {
	session, err := m.getSession(ctx, sessionID)
	if err != nil {
		return err
	}
	question, ok := session.QuestionByID(questionID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrQuestionNotFound, questionID)
	}
	if err := question.Transition(QuestionStatusEvaluating); err != nil {
		return err
	}
	if err := m.sessions.Update(ctx, session); err != nil {
		return fmt.Errorf("sessions.Update(evaluating question) > %w", err)
	}
	m.publish(session)

	response, err := m.client.EvaluateAnswer(ctx, inference.EvaluateAnswerRequest{
		Question:      question.Prompt,
		Answer:        question.UserAnswer,
		QuestionType:  string(question.Type),
		CorrectAnswer: question.CorrectAnswer,
	})
	if err != nil {
		if rollbackErr := question.Transition(QuestionStatusAnswered); rollbackErr != nil {
			return rollbackErr
		}
		if updateErr := m.sessions.Update(ctx, session); updateErr != nil {
			return fmt.Errorf("sessions.Update(rollback question) > %w", updateErr)
		}
		m.publish(session)
		return fmt.Errorf("client.EvaluateAnswer(%s) > %w", questionID, err)
	}

	applyEvaluation(question, response)
	if err := question.Transition(QuestionStatusEvaluated); err != nil {
		return err
	}
	if err := m.sessions.Update(ctx, session); err != nil {
		return fmt.Errorf("sessions.Update(evaluated question) > %w", err)
	}
	m.publish(session)
	return nil
}

// SkipQuestion marks a question as skipped without any evaluation call.
func (m *Manager) SkipQuestion(ctx context.Context, sessionID, questionID string) error {
	session, err := m.getSession(ctx, sessionID)
	if err != nil {
		return err
	}
	question, ok := session.QuestionByID(questionID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrQuestionNotFound, questionID)
	}
	if err := question.Transition(QuestionStatusSkipped); err != nil {
		return err
	}
	if err := m.sessions.Update(ctx, session); err != nil {
		return fmt.Errorf("sessions.Update(skipped question) > %w", err)
	}
	m.publish(session)
	return nil
}

// AccrueTime adds viewing time to an unanswered question. Time accrues in
// polling ticks while the session is open rather than by wall-clock diffing,
// so time spent away from the session is not counted.
func (m *Manager) AccrueTime(ctx context.Context, sessionID, questionID string, seconds int) error {
	if seconds <= 0 {
		return nil
	}
	session, err := m.getSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.Status != SessionStatusInProgress {
		return nil
	}
	question, ok := session.QuestionByID(questionID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrQuestionNotFound, questionID)
	}
	if question.Status != QuestionStatusGenerated {
		return nil
	}
	question.TimeSpentSec += seconds
	if err := m.sessions.Update(ctx, session); err != nil {
		return fmt.Errorf("sessions.Update(accrue time) > %w", err)
	}
	m.publish(session)
	return nil
}

// CompleteSession settles the session. Questions still answered without an
// evaluation are graded best-effort and concurrently; a failure there marks
// the evaluation as error and the question stays answered rather than
// blocking completion. The aggregate result is persisted and the derived
// score is fed into the scheduler for the reviewed source.
func (m *Manager) CompleteSession(ctx context.Context, sessionID string) (*Session, error) {
	session, err := m.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	group, groupCtx := errgroup.WithContext(ctx)
	for i := range session.Questions {
		question := &session.Questions[i]
		if question.Status != QuestionStatusAnswered || question.Evaluation != "" {
			continue
		}
		group.Go(func() error {
			response, err := m.client.EvaluateAnswer(groupCtx, inference.EvaluateAnswerRequest{
				Question:      question.Prompt,
				Answer:        question.UserAnswer,
				QuestionType:  string(question.Type),
				CorrectAnswer: question.CorrectAnswer,
			})
			if err != nil {
				slog.Default().Warn("best-effort evaluation failed during completion",
					"sessionID", sessionID,
					"questionID", question.ID,
					"error", err)
				question.Evaluation = inference.EvaluationError
				return nil
			}
			applyEvaluation(question, response)
			question.Status = QuestionStatusEvaluated
			return nil
		})
	}
	// Goroutines never return errors; Wait is the completion join.
	_ = group.Wait()

	result := session.Aggregate()
	session.Result = &result
	completedAt := m.now()
	session.CompletedAt = &completedAt
	if err := session.Transition(SessionStatusCompleted); err != nil {
		return nil, err
	}
	if err := m.sessions.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("sessions.Update(completed session) > %w", err)
	}
	m.publish(session)

	if err := m.scheduleSource(ctx, session, result); err != nil {
		return session, err
	}
	return session, nil
}

// scheduleSource feeds the derived 1-4 score into the spaced-repetition
// scheduler for the reviewed note or folder. The per-answer latency penalty
// does not apply to a whole session, so response time is reported as zero.
func (m *Manager) scheduleSource(ctx context.Context, session *Session, result Result) error {
	source, err := m.items.Get(ctx, session.SourceID)
	if err != nil {
		return fmt.Errorf("items.Get(%s) > %w", session.SourceID, err)
	}
	if source == nil {
		return fmt.Errorf("%w: %s", ErrSourceNotFound, session.SourceID)
	}

	feedback := FeedbackForResult(result)
	update, err := review.Schedule(*source, feedback, 0, m.now())
	if err != nil {
		return fmt.Errorf("review.Schedule(%s) > %w", session.SourceID, err)
	}
	if _, err := m.items.Update(ctx, session.SourceID, update); err != nil {
		return fmt.Errorf("items.Update(%s) > %w", session.SourceID, err)
	}
	return nil
}

// Progress returns the share of settled questions as a percentage.
func (m *Manager) Progress(ctx context.Context, sessionID string) (int, error) {
	session, err := m.getSession(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return session.Progress(), nil
}

func (m *Manager) getSession(ctx context.Context, sessionID string) (*Session, error) {
	session, err := m.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("sessions.Get(%s) > %w", sessionID, err)
	}
	if session == nil {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return session, nil
}

func applyEvaluation(question *Question, response inference.EvaluateAnswerResponse) {
	score := response.Score
	question.Evaluation = response.Evaluation
	question.Score = &score
	question.Feedback = response.Message
	question.Suggestions = response.Suggestions
	if response.CorrectAnswer != "" {
		question.CorrectAnswer = response.CorrectAnswer
	}
}
