package review

import (
	"context"
	"fmt"
	"time"
)

// Scope identifies which items a review session covers.
type Scope string

const (
	ScopeUser   Scope = "user"
	ScopeFolder Scope = "folder"
	ScopeNote   Scope = "note"
)

// Mode selects between reviewing everything in scope or only due items.
type Mode string

const (
	ModeDue Mode = "due"
	ModeAll Mode = "all"
)

// Selector resolves and filters the candidate items for a session.
type Selector struct {
	scopes ScopeLookup
}

// NewSelector creates a Selector over the given scope lookup.
func NewSelector(scopes ScopeLookup) *Selector {
	return &Selector{scopes: scopes}
}

// CandidateItems returns the items to review for a scope, preserving the
// lookup order. In due mode only items due at now are returned; an empty
// result is not an error.
func (s *Selector) CandidateItems(ctx context.Context, scope Scope, scopeID string, mode Mode, now time.Time) ([]Item, error) {
	switch scope {
	case ScopeUser, ScopeFolder, ScopeNote:
	default:
		return nil, fmt.Errorf("unknown review scope %q", scope)
	}

	items, err := s.scopes.ItemsForScope(ctx, scope, scopeID)
	if err != nil {
		return nil, fmt.Errorf("scopes.ItemsForScope(%s, %s) > %w", scope, scopeID, err)
	}
	if mode != ModeDue {
		return items, nil
	}

	due := make([]Item, 0, len(items))
	for _, item := range items {
		if item.IsDue(now) {
			due = append(due, item)
		}
	}
	return due, nil
}
