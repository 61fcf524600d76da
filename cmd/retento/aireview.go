package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/y-kondo/retento/internal/aireview"
	"github.com/y-kondo/retento/internal/cli"
	"github.com/y-kondo/retento/internal/config"
	"github.com/y-kondo/retento/internal/inference"
	"github.com/y-kondo/retento/internal/inference/openai"
)

func newAiReviewCommand() *cobra.Command {
	var (
		sourceType    string
		difficulty    string
		mode          string
		questionCount int
	)
	command := &cobra.Command{
		Use:   "aireview <source-id>",
		Short: "Start an AI-graded review session for a note or a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			if cfg.OpenAI.APIKey == "" {
				return fmt.Errorf("OPENAI_API_KEY environment variable is required")
			}
			fmt.Printf("Using OpenAI provider (model: %s)\n", cfg.OpenAI.Model)
			openaiClient := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.MaxRetryAttempts)
			defer func() {
				_ = openaiClient.Close()
			}()

			store, err := openStorage(cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = store.Close()
			}()

			sessions := newSessionRepository(cfg, store)
			manager := aireview.NewManager(sessions, store.items, openaiClient)

			if questionCount == 0 {
				questionCount = cfg.Review.QuestionCount
			}
			aiCLI := cli.NewAiReviewCLI(manager)
			if err := aiCLI.Start(cmd.Context(), aireview.StartParams{
				OwnerID:       cfg.Review.OwnerID,
				SourceID:      args[0],
				SourceType:    aireview.SourceType(sourceType),
				Mode:          inference.GenerationMode(mode),
				Difficulty:    inference.Difficulty(difficulty),
				QuestionCount: questionCount,
			}); err != nil {
				return err
			}
			return aiCLI.Run(cmd.Context(), aiCLI)
		},
	}
	command.Flags().StringVar(&sourceType, "source-type", string(aireview.SourceTypeNote), "What the source id refers to: note or folder")
	command.Flags().StringVar(&difficulty, "difficulty", string(inference.DifficultyMedium), "Question difficulty: easy, medium or hard")
	command.Flags().StringVar(&mode, "mode", string(inference.ModeSeparateQuestions), "Generation mode: separate_questions or mono_test")
	command.Flags().IntVar(&questionCount, "count", 0, "Number of questions to generate (defaults to the configured value)")

	return command
}

// newSessionRepository keeps AI review sessions in the database when MySQL is
// configured, otherwise in memory for the lifetime of the command.
func newSessionRepository(cfg *config.Config, store *storage) aireview.SessionRepository {
	if cfg.Storage.Backend == "mysql" && store.db != nil {
		return aireview.NewDBSessionRepository(store.db)
	}
	return aireview.NewMemorySessionRepository()
}
