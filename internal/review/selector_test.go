package review

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelector_CandidateItems(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	todayMidnight := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	tomorrow := now.AddDate(0, 0, 1)

	items := []Item{
		{ID: "note-1", Kind: ItemKindNote, OwnerID: "alice", FolderID: "folder-1", NextReview: &yesterday},
		{ID: "note-2", Kind: ItemKindNote, OwnerID: "alice", FolderID: "folder-1", NextReview: &tomorrow},
		{ID: "note-3", Kind: ItemKindNote, OwnerID: "alice", NextReview: &todayMidnight},
		{ID: "note-4", Kind: ItemKindNote, OwnerID: "alice"},
		{ID: "note-5", Kind: ItemKindNote, OwnerID: "bob", NextReview: &yesterday},
	}

	tests := []struct {
		name    string
		scope   Scope
		scopeID string
		mode    Mode
		wantIDs []string
	}{
		{
			name:    "due items for a user",
			scope:   ScopeUser,
			scopeID: "alice",
			mode:    ModeDue,
			wantIDs: []string{"note-1", "note-3", "note-4"},
		},
		{
			name:    "all items for a user ignore due dates",
			scope:   ScopeUser,
			scopeID: "alice",
			mode:    ModeAll,
			wantIDs: []string{"note-1", "note-2", "note-3", "note-4"},
		},
		{
			name:    "due items for a folder",
			scope:   ScopeFolder,
			scopeID: "folder-1",
			mode:    ModeDue,
			wantIDs: []string{"note-1"},
		},
		{
			name:    "single note scope",
			scope:   ScopeNote,
			scopeID: "note-2",
			mode:    ModeAll,
			wantIDs: []string{"note-2"},
		},
		{
			name:    "single note scope excludes a not yet due note",
			scope:   ScopeNote,
			scopeID: "note-2",
			mode:    ModeDue,
			wantIDs: nil,
		},
		{
			name:    "unknown user yields nothing",
			scope:   ScopeUser,
			scopeID: "nobody",
			mode:    ModeDue,
			wantIDs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selector := NewSelector(NewMemoryRepository(items...))
			got, err := selector.CandidateItems(context.Background(), tt.scope, tt.scopeID, tt.mode, now)
			require.NoError(t, err)

			gotIDs := make([]string, 0, len(got))
			for _, item := range got {
				gotIDs = append(gotIDs, item.ID)
			}
			if tt.wantIDs == nil {
				assert.Empty(t, gotIDs)
				return
			}
			assert.Equal(t, tt.wantIDs, gotIDs)
		})
	}
}

func TestSelector_CandidateItems_unknownScope(t *testing.T) {
	selector := NewSelector(NewMemoryRepository())
	_, err := selector.CandidateItems(context.Background(), Scope("workspace"), "id", ModeDue, time.Now())
	assert.ErrorContains(t, err, "unknown review scope")
}
