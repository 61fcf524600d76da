package review

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingItemRepository struct {
	*MemoryRepository
	failUpdate bool
}

func (r *failingItemRepository) Update(ctx context.Context, id string, update Update) (*Item, error) {
	if r.failUpdate {
		return nil, errors.New("connection reset")
	}
	return r.MemoryRepository.Update(ctx, id, update)
}

func newTestSessionManager(t *testing.T, repo interface {
	ItemRepository
	ScopeLookup
}, logs ReviewLogRepository, now time.Time) *SessionManager {
	t.Helper()
	clock := now
	return NewSessionManager(
		NewSelector(repo),
		repo,
		logs,
		WithClock(func() time.Time { return clock }),
		WithRand(rand.New(rand.NewSource(1))),
	)
}

func TestSessionManager_StartSession(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)

	tests := []struct {
		name        string
		items       []Item
		mode        Mode
		wantStarted bool
		wantCount   int
	}{
		{
			name: "starts with due items",
			items: []Item{
				{ID: "note-1", OwnerID: "alice", NextReview: &yesterday},
				{ID: "note-2", OwnerID: "alice"},
			},
			mode:        ModeDue,
			wantStarted: true,
			wantCount:   2,
		},
		{
			name:        "nothing due does not start a session",
			items:       nil,
			mode:        ModeDue,
			wantStarted: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager := newTestSessionManager(t, NewMemoryRepository(tt.items...), nil, now)
			started, err := manager.StartSession(context.Background(), tt.mode, ScopeUser, "alice")
			require.NoError(t, err)
			assert.Equal(t, tt.wantStarted, started)
			assert.Equal(t, tt.wantStarted, manager.Active())
			assert.Equal(t, tt.wantCount, manager.Remaining())

			if tt.wantStarted {
				snapshot := manager.Store().Snapshot()
				assert.Equal(t, ScopeUser, snapshot.Scope)
				assert.NotEmpty(t, snapshot.CurrentID)
				assert.False(t, snapshot.Finished)
			}
		})
	}
}

func TestSessionManager_SubmitFeedback(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := NewMemoryRepository(
		Item{ID: "note-1", OwnerID: "alice", EasinessFactor: 2.5},
	)
	logs := NewMemoryLogRepository()
	manager := newTestSessionManager(t, repo, logs, now)

	started, err := manager.StartSession(context.Background(), ModeDue, ScopeUser, "alice")
	require.NoError(t, err)
	require.True(t, started)

	manager.ShowAnswer()
	assert.True(t, manager.Store().Snapshot().AnswerShown)

	require.NoError(t, manager.SubmitFeedback(context.Background(), FeedbackGood))

	// The item was persisted with the new schedule.
	item, err := repo.Get(context.Background(), "note-1")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, 1, item.Repetition)
	assert.Equal(t, 1, item.IntervalDays)
	require.Len(t, item.History, 1)
	assert.Equal(t, int(FeedbackGood), item.History[0].Quality)

	// A review log was recorded.
	itemLogs, err := logs.FindByItem(context.Background(), "note-1")
	require.NoError(t, err)
	require.Len(t, itemLogs, 1)
	assert.Equal(t, int(FeedbackGood), itemLogs[0].Quality)
	assert.Equal(t, 1, itemLogs[0].IntervalDays)

	// The only item was scheduled past today, so the session is over.
	assert.False(t, manager.Active())
	snapshot := manager.Store().Snapshot()
	assert.True(t, snapshot.Finished)
	require.Len(t, snapshot.Answers, 1)
	assert.Equal(t, Answer{ItemID: "note-1", Feedback: FeedbackGood}, snapshot.Answers[0])
}

func TestSessionManager_SubmitFeedback_persistenceFailureBlocksAdvancement(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &failingItemRepository{
		MemoryRepository: NewMemoryRepository(
			Item{ID: "note-1", OwnerID: "alice", EasinessFactor: 2.5},
		),
		failUpdate: true,
	}
	manager := newTestSessionManager(t, repo, nil, now)

	started, err := manager.StartSession(context.Background(), ModeDue, ScopeUser, "alice")
	require.NoError(t, err)
	require.True(t, started)

	err = manager.SubmitFeedback(context.Background(), FeedbackGood)
	assert.ErrorContains(t, err, "connection reset")

	// The session did not advance and no answer was recorded.
	assert.True(t, manager.Active())
	current, ok := manager.Current()
	require.True(t, ok)
	assert.Equal(t, "note-1", current.ID)
	assert.Empty(t, manager.Answers())

	// The same feedback can be retried once persistence recovers.
	repo.failUpdate = false
	require.NoError(t, manager.SubmitFeedback(context.Background(), FeedbackGood))
	assert.Len(t, manager.Answers(), 1)
}

func TestSessionManager_SubmitFeedback_lapsedItemStaysInSession(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := NewMemoryRepository(
		Item{ID: "note-1", OwnerID: "alice", EasinessFactor: 2.5},
		Item{ID: "note-2", OwnerID: "alice", EasinessFactor: 2.5},
	)
	manager := newTestSessionManager(t, repo, nil, now)

	started, err := manager.StartSession(context.Background(), ModeDue, ScopeUser, "alice")
	require.NoError(t, err)
	require.True(t, started)

	// A forgotten item is rescheduled for today and stays in the pool.
	require.NoError(t, manager.SubmitFeedback(context.Background(), FeedbackForgot))
	assert.Equal(t, 2, manager.Remaining())

	// Grading everything well eventually drains the session.
	for manager.Active() {
		require.NoError(t, manager.SubmitFeedback(context.Background(), FeedbackGood))
	}
	assert.GreaterOrEqual(t, len(manager.Answers()), 3)
}

func TestSessionManager_NextQuestion_avoidsImmediateRepeat(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := NewMemoryRepository(
		Item{ID: "note-1", OwnerID: "alice"},
		Item{ID: "note-2", OwnerID: "alice"},
		Item{ID: "note-3", OwnerID: "alice"},
	)
	manager := newTestSessionManager(t, repo, nil, now)

	started, err := manager.StartSession(context.Background(), ModeDue, ScopeUser, "alice")
	require.NoError(t, err)
	require.True(t, started)

	previous, ok := manager.Current()
	require.True(t, ok)
	for i := 0; i < 10 && manager.Remaining() > 1; i++ {
		manager.NextQuestion()
		current, ok := manager.Current()
		require.True(t, ok)
		assert.NotEqual(t, previous.ID, current.ID, "question repeated immediately")
		previous = current
	}
}

func TestSessionManager_EndSession(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := NewMemoryRepository(Item{ID: "note-1", OwnerID: "alice"})
	manager := newTestSessionManager(t, repo, nil, now)

	var snapshots []SessionSnapshot
	unsubscribe := manager.Store().Subscribe(func(snapshot SessionSnapshot) {
		snapshots = append(snapshots, snapshot)
	})
	defer unsubscribe()

	started, err := manager.StartSession(context.Background(), ModeDue, ScopeUser, "alice")
	require.NoError(t, err)
	require.True(t, started)

	manager.EndSession()
	assert.False(t, manager.Active())
	assert.ErrorIs(t, manager.SubmitFeedback(context.Background(), FeedbackGood), ErrNoActiveSession)

	require.NotEmpty(t, snapshots)
	last := snapshots[len(snapshots)-1]
	assert.True(t, last.Finished)
	assert.Empty(t, last.CurrentID)
}

func TestSessionManager_SubmitFeedback_noSession(t *testing.T) {
	manager := NewSessionManager(NewSelector(NewMemoryRepository()), NewMemoryRepository(), nil)
	assert.ErrorIs(t, manager.SubmitFeedback(context.Background(), FeedbackGood), ErrNoActiveSession)
}
