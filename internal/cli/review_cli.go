package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fatih/color"

	"github.com/y-kondo/retento/internal/review"
)

// ReviewCLI manages an interactive self-graded review session
type ReviewCLI struct {
	*InteractiveCLI
	manager *review.SessionManager
}

// NewReviewCLI creates a new interactive review CLI
func NewReviewCLI(manager *review.SessionManager) *ReviewCLI {
	return &ReviewCLI{
		InteractiveCLI: newInteractiveCLI(),
		manager:        manager,
	}
}

// Start begins a review session over the given scope. It returns false when
// nothing matched the scope and mode.
func (r *ReviewCLI) Start(ctx context.Context, mode review.Mode, scope review.Scope, scopeID string) (bool, error) {
	started, err := r.manager.StartSession(ctx, mode, scope, scopeID)
	if err != nil {
		return false, fmt.Errorf("manager.StartSession() > %w", err)
	}
	if !started {
		fmt.Println("Nothing to review right now!")
		return false, nil
	}

	fmt.Printf("Starting review session with %d items\n\n", r.manager.Remaining())
	return true, nil
}

func (r *ReviewCLI) Session(ctx context.Context) error {
	current, ok := r.manager.Current()
	if !ok {
		r.printSummary()
		return errEnd
	}

	_, _ = r.bold.Printf("%s\n", current.Title)
	fmt.Print("Press Enter to show the answer...")
	if _, err := r.readLine(); err != nil {
		return err
	}
	r.manager.ShowAnswer()

	fmt.Println()
	_, _ = r.italic.Println(current.Content)
	fmt.Println()

	feedback, err := r.promptFeedback()
	if err != nil {
		return err
	}
	if feedback == 0 {
		r.manager.EndSession()
		r.printSummary()
		return errEnd
	}

	if err := r.manager.SubmitFeedback(ctx, feedback); err != nil {
		return fmt.Errorf("manager.SubmitFeedback() > %w", err)
	}
	return nil
}

// promptFeedback asks for a 1-4 grade until a valid one is entered.
// It returns 0 when the user quits.
func (r *ReviewCLI) promptFeedback() (review.Feedback, error) {
	for {
		fmt.Print("How well did you remember? 1) Forgot 2) Hard 3) Good 4) Easy, q to quit: ")
		input, err := r.readLine()
		if err != nil {
			return 0, err
		}
		if input == "q" || input == "quit" {
			return 0, nil
		}

		grade, err := strconv.Atoi(input)
		if err != nil || grade < int(review.FeedbackForgot) || grade > int(review.FeedbackEasy) {
			color.Red("Please enter a number between 1 and 4")
			continue
		}
		return review.Feedback(grade), nil
	}
}

func (r *ReviewCLI) printSummary() {
	answers := r.manager.Answers()
	if len(answers) == 0 {
		fmt.Println("No more items to review!")
		return
	}

	correct := 0
	for _, answer := range answers {
		if answer.Feedback >= review.FeedbackGood {
			correct++
		}
	}
	fmt.Println()
	fmt.Printf("Session finished: %d reviewed, %d remembered\n", len(answers), correct)
}
