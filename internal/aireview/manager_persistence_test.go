package aireview_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/y-kondo/retento/internal/aireview"
	"github.com/y-kondo/retento/internal/inference"
	mock_aireview "github.com/y-kondo/retento/internal/mocks/aireview"
	mock_inference "github.com/y-kondo/retento/internal/mocks/inference"
	mock_review "github.com/y-kondo/retento/internal/mocks/review"
	"github.com/y-kondo/retento/internal/review"
)

func TestManager_StartAiReview_persistenceFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	sessions := mock_aireview.NewMockSessionRepository(ctrl)
	items := mock_review.NewMockItemRepository(ctrl)
	client := mock_inference.NewMockClient(ctrl)
	manager := aireview.NewManager(sessions, items, client)

	sessions.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(errors.New("connection reset"))

	_, err := manager.StartAiReview(context.Background(), aireview.StartParams{
		OwnerID:       "alice",
		SourceID:      "note-1",
		SourceType:    aireview.SourceTypeNote,
		Mode:          inference.ModeSeparateQuestions,
		Difficulty:    inference.DifficultyMedium,
		QuestionCount: 3,
	})
	assert.ErrorContains(t, err, "sessions.Create()")
	assert.ErrorContains(t, err, "connection reset")
}

func TestManager_SubmitAnswer_persistenceFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	sessions := mock_aireview.NewMockSessionRepository(ctrl)
	items := mock_review.NewMockItemRepository(ctrl)
	client := mock_inference.NewMockClient(ctrl)
	manager := aireview.NewManager(sessions, items, client)

	sessions.EXPECT().
		Get(gomock.Any(), "session-1").
		Return(&aireview.Session{
			ID:     "session-1",
			Status: aireview.SessionStatusInProgress,
			Questions: []aireview.Question{
				{ID: "question-1", Status: aireview.QuestionStatusGenerated},
			},
		}, nil)
	sessions.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		Return(errors.New("connection reset"))

	// The evaluation provider is never consulted when the answer cannot be
	// persisted.
	err := manager.SubmitAnswer(context.Background(), "session-1", "question-1", "my answer")
	assert.ErrorContains(t, err, "sessions.Update(answered question)")
}

func TestManager_CompleteSession_sourceLookupFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	items := mock_review.NewMockItemRepository(ctrl)
	client := mock_inference.NewMockClient(ctrl)
	sessions := aireview.NewMemorySessionRepository()
	manager := aireview.NewManager(sessions, items, client)

	require.NoError(t, sessions.Create(context.Background(), &aireview.Session{
		ID:       "session-1",
		SourceID: "note-1",
		Status:   aireview.SessionStatusInProgress,
		Questions: []aireview.Question{
			{ID: "question-1", Status: aireview.QuestionStatusSkipped},
		},
	}))
	items.EXPECT().
		Get(gomock.Any(), "note-1").
		Return(nil, errors.New("connection reset"))

	// The session still completes; only the schedule update is reported as
	// failed.
	session, err := manager.CompleteSession(context.Background(), "session-1")
	assert.ErrorContains(t, err, "items.Get(note-1)")
	require.NotNil(t, session)
	assert.Equal(t, aireview.SessionStatusCompleted, session.Status)

	stored, getErr := sessions.Get(context.Background(), "session-1")
	require.NoError(t, getErr)
	assert.Equal(t, aireview.SessionStatusCompleted, stored.Status)
}

func TestManager_ScheduleUpdateFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	items := mock_review.NewMockItemRepository(ctrl)
	client := mock_inference.NewMockClient(ctrl)
	sessions := aireview.NewMemorySessionRepository()
	manager := aireview.NewManager(sessions, items, client)

	require.NoError(t, sessions.Create(context.Background(), &aireview.Session{
		ID:       "session-1",
		SourceID: "note-1",
		Status:   aireview.SessionStatusInProgress,
		Questions: []aireview.Question{
			{ID: "question-1", Status: aireview.QuestionStatusEvaluated, Evaluation: inference.EvaluationCorrect},
		},
	}))
	items.EXPECT().
		Get(gomock.Any(), "note-1").
		Return(&review.Item{ID: "note-1", Kind: review.ItemKindNote, OwnerID: "alice", EasinessFactor: 2.5}, nil)
	items.EXPECT().
		Update(gomock.Any(), "note-1", gomock.Any()).
		Return(nil, errors.New("connection reset"))

	session, err := manager.CompleteSession(context.Background(), "session-1")
	assert.ErrorContains(t, err, "items.Update(note-1)")
	require.NotNil(t, session)
	assert.Equal(t, aireview.SessionStatusCompleted, session.Status)
}
