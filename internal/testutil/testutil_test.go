package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/y-kondo/retento/internal/review"
)

func TestSetupTestConfig(t *testing.T) {
	tmpDir := t.TempDir()
	got := SetupTestConfig(t, tmpDir)

	want := filepath.Join(tmpDir, "config.yml")
	assert.Equal(t, want, got)

	content, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Contains(t, string(content), "backend: yaml")
	assert.Contains(t, string(content), "items_file:")

	info, err := os.Stat(filepath.Join(tmpDir, "items"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestSetupTestConfigWithAPIKey(t *testing.T) {
	tmpDir := t.TempDir()
	got := SetupTestConfigWithAPIKey(t, tmpDir)

	content, err := os.ReadFile(got)
	require.NoError(t, err)

	contentStr := string(content)
	assert.Contains(t, contentStr, "openai:")
	assert.Contains(t, contentStr, "api_key: fake-key-for-testing")
	assert.Contains(t, contentStr, "model: gpt-4o-mini")
	// The base config fields should also be present.
	assert.Contains(t, contentStr, "backend: yaml")
}

func TestNewItem(t *testing.T) {
	nextReview := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	reviewedAt := time.Date(2026, 2, 20, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		opts []ItemOption
		want review.Item
	}{
		{
			name: "defaults",
			want: review.Item{
				ID:             "item-1",
				Kind:           review.ItemKindNote,
				OwnerID:        "alice",
				Title:          "Title of item-1",
				Content:        "Content of item-1",
				EasinessFactor: review.DefaultEasinessFactor,
			},
		},
		{
			name: "with folder and schedule",
			opts: []ItemOption{
				WithKind(review.ItemKindQuestion),
				WithFolder("folder-1"),
				WithSchedule(2, 6, 2.6, nextReview),
			},
			want: review.Item{
				ID:             "item-1",
				Kind:           review.ItemKindQuestion,
				FolderID:       "folder-1",
				OwnerID:        "alice",
				Title:          "Title of item-1",
				Content:        "Content of item-1",
				Repetition:     2,
				IntervalDays:   6,
				EasinessFactor: 2.6,
				NextReview:     &nextReview,
			},
		},
		{
			name: "with history",
			opts: []ItemOption{
				WithHistory(review.ReviewRecord{Quality: 3, ReviewedAt: reviewedAt}),
			},
			want: review.Item{
				ID:             "item-1",
				Kind:           review.ItemKindNote,
				OwnerID:        "alice",
				Title:          "Title of item-1",
				Content:        "Content of item-1",
				EasinessFactor: review.DefaultEasinessFactor,
				LastReview:     &reviewedAt,
				History: []review.ReviewRecord{
					{Quality: 3, ReviewedAt: reviewedAt},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewItem("item-1", "alice", tt.opts...)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteItemsFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "items", "items.yml")

	items := []review.Item{
		NewItem("item-1", "alice"),
		NewItem("item-2", "alice", WithFolder("folder-1")),
	}
	WriteItemsFile(t, path, items)

	repository := review.NewYamlItemRepository(path)
	got, err := repository.ItemsForScope(context.Background(), review.ScopeUser, "alice")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "item-1", got[0].ID)
	assert.Equal(t, "item-2", got[1].ID)
}
