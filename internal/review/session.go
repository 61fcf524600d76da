package review

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/y-kondo/retento/internal/watch"
)

// ErrNoActiveSession is returned by session operations before StartSession
// or after the session has ended.
var ErrNoActiveSession = errors.New("no active review session")

// Answer records one submitted feedback within a session.
type Answer struct {
	ItemID      string
	Feedback    Feedback
	TimeSpentMs int64
}

// SessionSnapshot is the observable state of a review session.
type SessionSnapshot struct {
	Scope            Scope
	ScopeID          string
	Mode             Mode
	Items            []Item
	Remaining        []string
	CurrentID        string
	StartedAt        time.Time
	CurrentStartedAt time.Time
	Answers          []Answer
	AnswerShown      bool
	Finished         bool
}

// SessionManager walks a user through a set of candidate items, feeding each
// answered item through the scheduler and persisting updates one at a time.
// A manager drives at most one session; it is not safe for concurrent use.
type SessionManager struct {
	selector *Selector
	items    ItemRepository
	logs     ReviewLogRepository
	now      func() time.Time
	rng      *rand.Rand

	store  *watch.Store[SessionSnapshot]
	active bool
	state  SessionSnapshot
}

// SessionOption customizes a SessionManager.
type SessionOption func(*SessionManager)

// WithClock overrides the session clock. Used in tests.
func WithClock(now func() time.Time) SessionOption {
	return func(m *SessionManager) {
		m.now = now
	}
}

// WithRand overrides the random source used to pick the next question.
func WithRand(rng *rand.Rand) SessionOption {
	return func(m *SessionManager) {
		m.rng = rng
	}
}

// NewSessionManager creates a session manager. The log repository may be nil
// when review logs are not persisted.
func NewSessionManager(selector *Selector, items ItemRepository, logs ReviewLogRepository, opts ...SessionOption) *SessionManager {
	manager := &SessionManager{
		selector: selector,
		items:    items,
		logs:     logs,
		now:      time.Now,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		store:    watch.NewStore(SessionSnapshot{Finished: true}),
	}
	for _, opt := range opts {
		opt(manager)
	}
	return manager
}

// Store exposes the observable session state.
func (m *SessionManager) Store() *watch.Store[SessionSnapshot] {
	return m.store
}

// StartSession resolves the candidate items for the scope and mode and begins
// a session over them. It returns false without an error when nothing is due,
// in which case no session is started.
func (m *SessionManager) StartSession(ctx context.Context, mode Mode, scope Scope, scopeID string) (bool, error) {
	now := m.now()
	items, err := m.selector.CandidateItems(ctx, scope, scopeID, mode, now)
	if err != nil {
		return false, fmt.Errorf("selector.CandidateItems() > %w", err)
	}
	if len(items) == 0 {
		return false, nil
	}

	remaining := make([]string, 0, len(items))
	for _, item := range items {
		remaining = append(remaining, item.ID)
	}

	m.active = true
	m.state = SessionSnapshot{
		Scope:            scope,
		ScopeID:          scopeID,
		Mode:             mode,
		Items:            items,
		Remaining:        remaining,
		CurrentID:        remaining[0],
		StartedAt:        now,
		CurrentStartedAt: now,
	}
	m.publish()
	return true, nil
}

// Current returns the item the session is showing.
func (m *SessionManager) Current() (Item, bool) {
	if !m.active {
		return Item{}, false
	}
	for _, item := range m.state.Items {
		if item.ID == m.state.CurrentID {
			return item, true
		}
	}
	return Item{}, false
}

// Remaining returns how many items still need an answer this session.
func (m *SessionManager) Remaining() int {
	if !m.active {
		return 0
	}
	return len(m.state.Remaining)
}

// Answers returns the answers submitted so far.
func (m *SessionManager) Answers() []Answer {
	return m.state.Answers
}

// Active reports whether a session is in progress.
func (m *SessionManager) Active() bool {
	return m.active
}

// ShowAnswer reveals the answer for the current item. Idempotent.
func (m *SessionManager) ShowAnswer() {
	if !m.active || m.state.AnswerShown {
		return
	}
	m.state.AnswerShown = true
	m.publish()
}

// SubmitFeedback grades the current item, persists the scheduling update and
// advances to the next question. A persistence failure blocks advancement and
// is returned to the caller; the answer is not recorded for that attempt.
//
// An item whose new next review date is still today stays in the remaining
// pool for possible re-practice within the same session.
func (m *SessionManager) SubmitFeedback(ctx context.Context, feedback Feedback) error {
	if !m.active {
		return ErrNoActiveSession
	}
	current, ok := m.Current()
	if !ok {
		return ErrNoActiveSession
	}

	now := m.now()
	timeSpentMs := now.Sub(m.state.CurrentStartedAt).Milliseconds()

	update, err := Schedule(current, feedback, timeSpentMs, now)
	if err != nil {
		return fmt.Errorf("Schedule(%s) > %w", current.ID, err)
	}

	updated, err := m.items.Update(ctx, current.ID, update)
	if err != nil {
		return fmt.Errorf("items.Update(%s) > %w", current.ID, err)
	}
	if updated == nil {
		merged := update.Apply(current)
		updated = &merged
	}
	for i := range m.state.Items {
		if m.state.Items[i].ID == updated.ID {
			m.state.Items[i] = *updated
		}
	}

	if m.logs != nil {
		log := &ReviewLog{
			ItemID:         current.ID,
			Quality:        update.Record.Quality,
			ResponseTimeMs: timeSpentMs,
			IntervalDays:   update.IntervalDays,
			EasinessFactor: update.EasinessFactor,
			ReviewedAt:     now,
		}
		if err := m.logs.Create(ctx, log); err != nil {
			return fmt.Errorf("logs.Create(%s) > %w", current.ID, err)
		}
	}

	if update.NextReview != nil && update.NextReview.After(truncateToDay(now)) {
		m.removeRemaining(current.ID)
	}

	m.state.Answers = append(m.state.Answers, Answer{
		ItemID:      current.ID,
		Feedback:    feedback,
		TimeSpentMs: timeSpentMs,
	})
	m.NextQuestion()
	return nil
}

// NextQuestion picks the next item to show, avoiding an immediate repeat of
// the current item when more than one remains. When the remaining set is
// empty the session ends.
func (m *SessionManager) NextQuestion() {
	if !m.active {
		return
	}
	if len(m.state.Remaining) == 0 {
		m.EndSession()
		return
	}

	candidates := m.state.Remaining
	if len(candidates) > 1 {
		filtered := make([]string, 0, len(candidates)-1)
		for _, id := range candidates {
			if id != m.state.CurrentID {
				filtered = append(filtered, id)
			}
		}
		if len(filtered) > 0 {
			candidates = filtered
		}
	}

	m.state.CurrentID = candidates[m.rng.Intn(len(candidates))]
	m.state.AnswerShown = false
	m.state.CurrentStartedAt = m.now()
	m.publish()
}

// EndSession discards the session state. Item updates were already persisted
// per answer, so there is nothing to flush.
func (m *SessionManager) EndSession() {
	if !m.active {
		return
	}
	m.active = false
	m.state.Finished = true
	m.state.CurrentID = ""
	m.state.AnswerShown = false
	m.publish()
}

func (m *SessionManager) removeRemaining(id string) {
	remaining := make([]string, 0, len(m.state.Remaining))
	for _, candidate := range m.state.Remaining {
		if candidate != id {
			remaining = append(remaining, candidate)
		}
	}
	m.state.Remaining = remaining
}

func (m *SessionManager) publish() {
	m.store.Set(m.state)
}
