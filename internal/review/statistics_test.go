package review

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrectStreak(t *testing.T) {
	at := func(day int) time.Time {
		return time.Date(2026, 3, day, 12, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name    string
		history []ReviewRecord
		want    int
	}{
		{name: "empty history", history: nil, want: 0},
		{
			name: "all correct",
			history: []ReviewRecord{
				{Quality: 3, ReviewedAt: at(1)},
				{Quality: 4, ReviewedAt: at(2)},
			},
			want: 2,
		},
		{
			name: "streak stops at the most recent lapse",
			history: []ReviewRecord{
				{Quality: 4, ReviewedAt: at(1)},
				{Quality: 1, ReviewedAt: at(2)},
				{Quality: 3, ReviewedAt: at(3)},
				{Quality: 4, ReviewedAt: at(4)},
			},
			want: 2,
		},
		{
			name: "lapse at the end resets the streak",
			history: []ReviewRecord{
				{Quality: 4, ReviewedAt: at(1)},
				{Quality: 2, ReviewedAt: at(2)},
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CorrectStreak(tt.history))
		})
	}
}

func TestStatistics_ForScope(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	statistics := NewStatistics(NewMemoryRepository(
		Item{ID: "note-1", OwnerID: "alice", NextReview: &yesterday, LastReview: &yesterday, History: []ReviewRecord{
			{Quality: 2, ReviewedAt: yesterday.AddDate(0, 0, -2)},
			{Quality: 3, ReviewedAt: yesterday.AddDate(0, 0, -1)},
			{Quality: 4, ReviewedAt: yesterday},
		}},
		Item{ID: "note-2", OwnerID: "alice", NextReview: &tomorrow, LastReview: &yesterday, History: []ReviewRecord{
			{Quality: 1, ReviewedAt: yesterday},
		}},
		Item{ID: "note-3", OwnerID: "alice"},
		Item{ID: "note-4", OwnerID: "bob"},
	))

	got, err := statistics.ForScope(context.Background(), ScopeUser, "alice", now)
	require.NoError(t, err)
	assert.Equal(t, ScopeStatistics{
		TotalItems:    3,
		DueItems:      2,
		ReviewedItems: 2,
		BestStreak:    2,
	}, got)
}
