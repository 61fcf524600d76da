package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"

	"github.com/y-kondo/retento/internal/aireview"
	"github.com/y-kondo/retento/internal/inference"
)

// AiReviewCLI manages an interactive AI-graded review session
type AiReviewCLI struct {
	*InteractiveCLI
	manager   *aireview.Manager
	sessionID string
}

// NewAiReviewCLI creates a new AI review interactive CLI
func NewAiReviewCLI(manager *aireview.Manager) *AiReviewCLI {
	return &AiReviewCLI{
		InteractiveCLI: newInteractiveCLI(),
		manager:        manager,
	}
}

// Start requests a new session and blocks until question generation finishes.
func (r *AiReviewCLI) Start(ctx context.Context, params aireview.StartParams) error {
	session, err := r.manager.StartAiReview(ctx, params)
	if err != nil {
		return fmt.Errorf("manager.StartAiReview() > %w", err)
	}
	r.sessionID = session.ID

	fmt.Println("Generating questions...")
	if err := r.waitUntilReady(ctx); err != nil {
		return err
	}

	session, err = r.manager.LoadSession(ctx, r.sessionID)
	if err != nil {
		return fmt.Errorf("manager.LoadSession() > %w", err)
	}
	fmt.Printf("Starting AI review session with %d questions\n\n", len(session.Questions))
	return nil
}

// waitUntilReady watches the session until generation succeeds or fails.
func (r *AiReviewCLI) waitUntilReady(ctx context.Context) error {
	store := r.manager.Watch(r.sessionID)
	defer r.manager.Unwatch(r.sessionID)

	done := make(chan aireview.Session, 1)
	notify := func(session aireview.Session) {
		switch session.Status {
		case aireview.SessionStatusReadyForReview, aireview.SessionStatusFailed:
			select {
			case done <- session:
			default:
			}
		}
	}
	unsubscribe := store.Subscribe(notify)
	defer unsubscribe()

	// Generation may have finished before the subscription was set up.
	notify(store.Snapshot())

	select {
	case session := <-done:
		if session.Status == aireview.SessionStatusFailed {
			return fmt.Errorf("question generation failed: %s", session.ErrorMessage)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *AiReviewCLI) Session(ctx context.Context) error {
	session, err := r.manager.LoadSession(ctx, r.sessionID)
	if err != nil {
		return fmt.Errorf("manager.LoadSession() > %w", err)
	}

	question := nextOpenQuestion(session)
	if question == nil {
		return r.complete(ctx)
	}

	index := questionIndex(session, question.ID)
	_, _ = r.bold.Printf("Question %d/%d", index+1, len(session.Questions))
	_, _ = r.italic.Printf(" (%s)\n", question.Type)
	fmt.Println(question.Prompt)
	for i, option := range question.Options {
		fmt.Printf("  %d. %s\n", i+1, option)
	}
	fmt.Print("Your answer (s to skip, q to quit): ")

	startedAt := time.Now()
	answer, err := r.readLine()
	if err != nil {
		return err
	}
	if err := r.manager.AccrueTime(ctx, r.sessionID, question.ID, int(time.Since(startedAt).Seconds())); err != nil {
		return fmt.Errorf("manager.AccrueTime() > %w", err)
	}

	switch answer {
	case "q", "quit":
		return r.complete(ctx)
	case "s", "skip":
		if err := r.manager.SkipQuestion(ctx, r.sessionID, question.ID); err != nil {
			return fmt.Errorf("manager.SkipQuestion() > %w", err)
		}
		fmt.Println("Skipped.")
		fmt.Println()
		return nil
	}

	if err := r.manager.SubmitAnswer(ctx, r.sessionID, question.ID, answer); err != nil {
		// The answer is kept; evaluation is retried when the session completes.
		color.Yellow("Could not evaluate the answer yet: %v", err)
		fmt.Println()
		return nil
	}

	session, err = r.manager.LoadSession(ctx, r.sessionID)
	if err != nil {
		return fmt.Errorf("manager.LoadSession() > %w", err)
	}
	if evaluated, ok := session.QuestionByID(question.ID); ok {
		r.printEvaluation(evaluated)
	}
	fmt.Println()
	return nil
}

func (r *AiReviewCLI) printEvaluation(question *aireview.Question) {
	switch question.Evaluation {
	case inference.EvaluationCorrect:
		fmt.Print("✅ ")
		color.Green("Correct!")
	case inference.EvaluationPartial:
		color.Yellow("Partially correct")
	case inference.EvaluationIncorrect:
		fmt.Print("❌ ")
		color.Red("Incorrect")
	default:
		color.Yellow("The answer could not be graded")
	}

	if question.Score != nil {
		fmt.Printf("Score: %d/100\n", *question.Score)
	}
	if question.Feedback != "" {
		fmt.Printf("Feedback: %s\n", question.Feedback)
	}
	for _, suggestion := range question.Suggestions {
		fmt.Printf("  - %s\n", suggestion)
	}
	if question.CorrectAnswer != "" && question.Evaluation != inference.EvaluationCorrect {
		fmt.Printf("Expected: %s\n", r.italic.Sprintf("%s", question.CorrectAnswer))
	}
}

func (r *AiReviewCLI) complete(ctx context.Context) error {
	session, err := r.manager.CompleteSession(ctx, r.sessionID)
	if err != nil {
		return fmt.Errorf("manager.CompleteSession() > %w", err)
	}

	fmt.Println()
	_, _ = r.bold.Println("Session completed!")
	if session.Result != nil {
		fmt.Printf("Correct: %d/%d (skipped: %d)\n",
			session.Result.CorrectAnswers,
			session.Result.TotalQuestions,
			session.Result.SkippedAnswers,
		)
	}
	return errEnd
}

// nextOpenQuestion returns the first question still waiting for an answer.
func nextOpenQuestion(session *aireview.Session) *aireview.Question {
	for i := range session.Questions {
		if session.Questions[i].Status == aireview.QuestionStatusGenerated {
			return &session.Questions[i]
		}
	}
	return nil
}

func questionIndex(session *aireview.Session, questionID string) int {
	for i := range session.Questions {
		if session.Questions[i].ID == questionID {
			return i
		}
	}
	return 0
}
