package aireview

import (
	"context"
	"sync"
)

//go:generate mockgen -source=repository.go -destination=../mocks/aireview/mock_repository.go -package=mock_aireview

// SessionRepository defines persistence operations for AI review sessions.
// Get returns nil without an error when no session matches the id. Update
// persists the whole session including its question sequence; questions are
// owned by the session and have no independent lifecycle.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Update(ctx context.Context, session *Session) error
}

// MemorySessionRepository is an in-memory SessionRepository.
type MemorySessionRepository struct {
	mu       sync.Mutex
	sessions map[string]Session
}

// NewMemorySessionRepository creates an empty repository.
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{sessions: make(map[string]Session)}
}

// Create stores a new session.
func (r *MemorySessionRepository) Create(_ context.Context, session *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = cloneSession(*session)
	return nil
}

// Get returns the session with the id, or nil when not found.
func (r *MemorySessionRepository) Get(_ context.Context, id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	clone := cloneSession(session)
	return &clone, nil
}

// Update replaces the stored session.
func (r *MemorySessionRepository) Update(_ context.Context, session *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = cloneSession(*session)
	return nil
}

// cloneSession deep-copies the slices so callers cannot alias stored state.
func cloneSession(session Session) Session {
	questions := make([]Question, len(session.Questions))
	copy(questions, session.Questions)
	for i := range questions {
		questions[i].Options = append([]string(nil), questions[i].Options...)
		questions[i].Suggestions = append([]string(nil), questions[i].Suggestions...)
		if questions[i].Score != nil {
			score := *questions[i].Score
			questions[i].Score = &score
		}
	}
	session.Questions = questions
	if session.Result != nil {
		result := *session.Result
		session.Result = &result
	}
	return session
}
