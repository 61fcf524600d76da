package review

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedule(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	midnight := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		item           Item
		feedback       Feedback
		responseTimeMs int64
		wantRepetition int
		wantInterval   int
		wantEF         float64
		wantNextReview time.Time
	}{
		{
			name:           "first successful review schedules one day ahead",
			item:           Item{ID: "item-1", EasinessFactor: 2.5},
			feedback:       FeedbackGood,
			responseTimeMs: 1000,
			wantRepetition: 1,
			wantInterval:   1,
			wantEF:         2.5,
			wantNextReview: midnight.AddDate(0, 0, 1),
		},
		{
			name:           "first easy review raises the easiness factor",
			item:           Item{ID: "item-1", EasinessFactor: 2.5},
			feedback:       FeedbackEasy,
			responseTimeMs: 1000,
			wantRepetition: 1,
			wantInterval:   1,
			wantEF:         2.6,
			wantNextReview: midnight.AddDate(0, 0, 1),
		},
		{
			name:           "zero easiness factor falls back to the default",
			item:           Item{ID: "item-1"},
			feedback:       FeedbackGood,
			responseTimeMs: 1000,
			wantRepetition: 1,
			wantInterval:   1,
			wantEF:         2.5,
			wantNextReview: midnight.AddDate(0, 0, 1),
		},
		{
			name:           "hard answer resets the repetition",
			item:           Item{ID: "item-1", Repetition: 3, IntervalDays: 12, EasinessFactor: 2.5},
			feedback:       FeedbackHard,
			responseTimeMs: 1000,
			wantRepetition: 0,
			wantInterval:   0,
			wantEF:         2.3,
			wantNextReview: midnight,
		},
		{
			name:           "forgotten answer resets the repetition",
			item:           Item{ID: "item-1", Repetition: 5, IntervalDays: 30, EasinessFactor: 2.0},
			feedback:       FeedbackForgot,
			responseTimeMs: 1000,
			wantRepetition: 0,
			wantInterval:   0,
			wantEF:         1.8,
			wantNextReview: midnight,
		},
		{
			name:           "easiness factor never drops below the minimum",
			item:           Item{ID: "item-1", Repetition: 1, IntervalDays: 1, EasinessFactor: 1.3},
			feedback:       FeedbackForgot,
			responseTimeMs: 1000,
			wantRepetition: 0,
			wantInterval:   0,
			wantEF:         1.3,
			wantNextReview: midnight,
		},
		{
			name:           "second successful review rounds the easiness factor",
			item:           Item{ID: "item-1", Repetition: 1, IntervalDays: 1, EasinessFactor: 2.5},
			feedback:       FeedbackGood,
			responseTimeMs: 1000,
			wantRepetition: 2,
			wantInterval:   3,
			wantEF:         2.5,
			wantNextReview: midnight.AddDate(0, 0, 3),
		},
		{
			name:           "second interval is at least two days",
			item:           Item{ID: "item-1", Repetition: 1, IntervalDays: 1, EasinessFactor: 1.3},
			feedback:       FeedbackGood,
			responseTimeMs: 1000,
			wantRepetition: 2,
			wantInterval:   2,
			wantEF:         1.3,
			wantNextReview: midnight.AddDate(0, 0, 2),
		},
		{
			name:           "later reviews multiply the previous interval",
			item:           Item{ID: "item-1", Repetition: 2, IntervalDays: 6, EasinessFactor: 2.5},
			feedback:       FeedbackEasy,
			responseTimeMs: 1000,
			wantRepetition: 3,
			wantInterval:   16,
			wantEF:         2.6,
			wantNextReview: midnight.AddDate(0, 0, 16),
		},
		{
			name:           "slow correct answer is penalized",
			item:           Item{ID: "item-1", EasinessFactor: 2.5},
			feedback:       FeedbackGood,
			responseTimeMs: 20000,
			wantRepetition: 1,
			wantInterval:   1,
			wantEF:         2.435,
			wantNextReview: midnight.AddDate(0, 0, 1),
		},
		{
			name:           "very slow correct answer becomes a lapse",
			item:           Item{ID: "item-1", Repetition: 2, IntervalDays: 6, EasinessFactor: 2.5},
			feedback:       FeedbackGood,
			responseTimeMs: 30000,
			wantRepetition: 0,
			wantInterval:   0,
			wantEF:         2.3,
			wantNextReview: midnight,
		},
		{
			name:           "slow wrong answer is not penalized twice",
			item:           Item{ID: "item-1", EasinessFactor: 2.5},
			feedback:       FeedbackForgot,
			responseTimeMs: 60000,
			wantRepetition: 0,
			wantInterval:   0,
			wantEF:         2.3,
			wantNextReview: midnight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Schedule(tt.item, tt.feedback, tt.responseTimeMs, now)
			require.NoError(t, err)

			assert.Equal(t, tt.wantRepetition, got.Repetition)
			assert.Equal(t, tt.wantInterval, got.IntervalDays)
			assert.InDelta(t, tt.wantEF, got.EasinessFactor, 1e-9)
			require.NotNil(t, got.NextReview)
			assert.Equal(t, tt.wantNextReview, *got.NextReview)
			assert.Equal(t, now, got.LastReview)
			assert.Equal(t, ReviewRecord{Quality: int(tt.feedback), ReviewedAt: now}, got.Record)
		})
	}
}

func TestSchedule_invalidFeedback(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	for _, feedback := range []Feedback{0, 5, -1} {
		_, err := Schedule(Item{ID: "item-1"}, feedback, 1000, now)
		assert.ErrorContains(t, err, "feedback must be between 1 and 4")
	}
}

func TestSchedule_earlyReview(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	nextReview := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	item := Item{
		ID:             "item-1",
		Repetition:     2,
		IntervalDays:   6,
		EasinessFactor: 2.5,
		NextReview:     &nextReview,
	}

	got, err := Schedule(item, FeedbackForgot, 1000, now)
	require.NoError(t, err)

	// The schedule is untouched; only the review itself is recorded.
	assert.Equal(t, 2, got.Repetition)
	assert.Equal(t, 6, got.IntervalDays)
	assert.InDelta(t, 2.5, got.EasinessFactor, 1e-9)
	require.NotNil(t, got.NextReview)
	assert.Equal(t, nextReview, *got.NextReview)
	assert.Equal(t, now, got.LastReview)
	assert.Equal(t, ReviewRecord{Quality: 1, ReviewedAt: now}, got.Record)
}

func TestUpdate_Apply(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	previous := ReviewRecord{Quality: 3, ReviewedAt: now.AddDate(0, 0, -1)}
	item := Item{
		ID:             "item-1",
		EasinessFactor: 2.5,
		History:        []ReviewRecord{previous},
	}

	update, err := Schedule(item, FeedbackGood, 1000, now)
	require.NoError(t, err)
	updated := update.Apply(item)

	assert.Equal(t, []ReviewRecord{previous, update.Record}, updated.History)
	// The original item is untouched.
	assert.Equal(t, []ReviewRecord{previous}, item.History)
	assert.Nil(t, item.LastReview)
	require.NotNil(t, updated.LastReview)
	assert.Equal(t, now, *updated.LastReview)
}

func TestSchedule_nextReviewNeverRegresses(t *testing.T) {
	// Saving and reloading an item keeps the next review date monotonic over
	// a sequence of successful reviews.
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	item := Item{ID: "item-1", EasinessFactor: 2.5}

	var lastNextReview time.Time
	for i := 0; i < 5; i++ {
		update, err := Schedule(item, FeedbackGood, 1000, now)
		require.NoError(t, err)
		item = update.Apply(item)

		require.NotNil(t, item.NextReview)
		assert.True(t, item.NextReview.After(lastNextReview),
			"next review %v should be after %v", item.NextReview, lastNextReview)
		lastNextReview = *item.NextReview
		now = item.NextReview.Add(10 * time.Hour)
	}
	assert.Len(t, item.History, 5)
	assert.Equal(t, 5, item.Repetition)
}
