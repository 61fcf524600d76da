// Package testutil provides shared test helpers for creating config files and item fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/y-kondo/retento/internal/review"
)

// SetupTestConfig creates a minimal config file and an empty items file for
// testing. Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	itemsDir := filepath.Join(tmpDir, "items")
	require.NoError(t, os.MkdirAll(itemsDir, 0755))

	configContent := fmt.Sprintf(`storage:
  backend: yaml
  yaml:
    items_file: %s
review:
  question_count: 5
  owner_id: local
`,
		filepath.Join(itemsDir, "items.yml"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// SetupTestConfigWithAPIKey creates a config file with a fake OpenAI API key for tests
// that require API key validation to pass.
func SetupTestConfigWithAPIKey(t *testing.T, tmpDir string) string {
	t.Helper()
	cfgPath := SetupTestConfig(t, tmpDir)

	content, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	content = append(content, []byte("openai:\n  api_key: fake-key-for-testing\n  model: gpt-4o-mini\n")...)
	require.NoError(t, os.WriteFile(cfgPath, content, 0644))
	return cfgPath
}

// ItemOption configures optional fields when creating an item fixture.
type ItemOption func(*review.Item)

// WithKind overrides the fixture's kind. The default is a note.
func WithKind(kind review.ItemKind) ItemOption {
	return func(item *review.Item) {
		item.Kind = kind
	}
}

// WithFolder places the fixture inside a folder.
func WithFolder(folderID string) ItemOption {
	return func(item *review.Item) {
		item.FolderID = folderID
	}
}

// WithSchedule sets the scheduling state of the fixture.
func WithSchedule(repetition, intervalDays int, easinessFactor float64, nextReview time.Time) ItemOption {
	return func(item *review.Item) {
		item.Repetition = repetition
		item.IntervalDays = intervalDays
		item.EasinessFactor = easinessFactor
		item.NextReview = &nextReview
	}
}

// WithHistory appends review records to the fixture.
func WithHistory(records ...review.ReviewRecord) ItemOption {
	return func(item *review.Item) {
		item.History = append(item.History, records...)
		if len(records) > 0 {
			last := records[len(records)-1].ReviewedAt
			item.LastReview = &last
		}
	}
}

// NewItem creates an item fixture that has never been reviewed. The title and
// content are derived from the id.
func NewItem(id, ownerID string, opts ...ItemOption) review.Item {
	item := review.Item{
		ID:             id,
		Kind:           review.ItemKindNote,
		OwnerID:        ownerID,
		Title:          "Title of " + id,
		Content:        "Content of " + id,
		EasinessFactor: review.DefaultEasinessFactor,
	}
	for _, opt := range opts {
		opt(&item)
	}
	return item
}

// WriteItemsFile writes the items to a YAML items file compatible with
// review.NewYamlItemRepository.
func WriteItemsFile(t *testing.T, path string, items []review.Item) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	content, err := yaml.Marshal(struct {
		Items []review.Item `yaml:"items"`
	}{Items: items})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, content, 0644))
}
