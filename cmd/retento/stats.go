package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/y-kondo/retento/internal/review"
)

func newStatsCommand() *cobra.Command {
	var scope string
	command := &cobra.Command{
		Use:   "stats [scope-id]",
		Short: "Show review statistics for a scope",
		Args:  cobra.MaximumNArgs(1),
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

			stats, err := review.NewStatistics(store.items).ForScope(cmd.Context(), review.Scope(scope), scopeID, time.Now())
			if err != nil {
				return err
			}

			fmt.Printf("Total items:    %d\n", stats.TotalItems)
			fmt.Printf("Due now:        %d\n", stats.DueItems)
			fmt.Printf("Reviewed once+: %d\n", stats.ReviewedItems)
			fmt.Printf("Best streak:    %d\n", stats.BestStreak)
			return nil
		},
	}
	command.Flags().StringVar(&scope, "scope", string(review.ScopeUser), "Scope of the statistics: user, folder or note")

	return command
}
