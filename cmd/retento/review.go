package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/y-kondo/retento/internal/cli"
	"github.com/y-kondo/retento/internal/review"
)

func newReviewCommand() *cobra.Command {
	var (
		scope      string
		includeAll bool
	)
	command := &cobra.Command{
		Use:   "review [scope-id]",
		Short: "Start an interactive self-graded review session",
		Long: `Start an interactive review session over the items that are due.
The scope narrows the session to a folder or a single note; without an
argument every item of the configured owner is considered.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			store, err := openStorage(cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = store.Close()
			}()

			scopeID := cfg.Review.OwnerID
			if len(args) > 0 {
				scopeID = args[0]
			}
			mode := review.ModeDue
			if includeAll {
				mode = review.ModeAll
			}

			manager := review.NewSessionManager(
				review.NewSelector(store.items),
				store.items,
				store.logs,
			)
			reviewCLI := cli.NewReviewCLI(manager)
			started, err := reviewCLI.Start(cmd.Context(), mode, review.Scope(scope), scopeID)
			if err != nil {
				return err
			}
			if !started {
				return nil
			}
			return reviewCLI.Run(cmd.Context(), reviewCLI)
		},
	}
	command.Flags().StringVar(&scope, "scope", string(review.ScopeUser), "Scope of the session: user, folder or note")
	command.Flags().BoolVar(&includeAll, "all", false, "Review every item in scope, not only the due ones")

	return command
}
