package review

import (
	"context"
	"fmt"
	"time"
)

// ScopeStatistics summarizes the review state of a scope.
type ScopeStatistics struct {
	TotalItems    int
	DueItems      int
	ReviewedItems int
	// BestStreak is the longest run of consecutive correct reviews at the
	// end of any item's history in the scope.
	BestStreak int
}

// CorrectStreak returns how many consecutive reviews at the end of the
// history were correct (quality >= 3 on the 1-4 feedback scale means 3 or 4).
// It counts from the most recent record and stops at the first lapse.
func CorrectStreak(history []ReviewRecord) int {
	count := 0
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Quality < int(FeedbackGood) {
			break
		}
		count++
	}
	return count
}

// Statistics derives read-only summaries for a scope.
type Statistics struct {
	scopes ScopeLookup
}

// NewStatistics creates a Statistics reader.
func NewStatistics(scopes ScopeLookup) *Statistics {
	return &Statistics{scopes: scopes}
}

// ForScope computes counts for all items in a scope at the given time.
func (s *Statistics) ForScope(ctx context.Context, scope Scope, scopeID string, now time.Time) (ScopeStatistics, error) {
	items, err := s.scopes.ItemsForScope(ctx, scope, scopeID)
	if err != nil {
		return ScopeStatistics{}, fmt.Errorf("scopes.ItemsForScope(%s, %s) > %w", scope, scopeID, err)
	}

	stats := ScopeStatistics{TotalItems: len(items)}
	for _, item := range items {
		if item.IsDue(now) {
			stats.DueItems++
		}
		if item.LastReview != nil {
			stats.ReviewedItems++
		}
		if streak := CorrectStreak(item.History); streak > stats.BestStreak {
			stats.BestStreak = streak
		}
	}
	return stats, nil
}
