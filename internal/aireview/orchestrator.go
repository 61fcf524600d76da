package aireview

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// batchChunkSize bounds how many generation requests run concurrently.
// Chunks are processed sequentially; requests within a chunk run in parallel.
const batchChunkSize = 3

// BatchResult captures the outcome of one generation request. A failing
// request never aborts its siblings.
type BatchResult struct {
	SessionID string
	Err       error
}

// BatchGenerator drives question generation for many sessions at once, for
// example when a whole folder of notes is queued for AI review.
type BatchGenerator struct {
	manager   *Manager
	chunkSize int
}

// NewBatchGenerator creates a batch driver over the manager.
func NewBatchGenerator(manager *Manager) *BatchGenerator {
	return &BatchGenerator{
		manager:   manager,
		chunkSize: batchChunkSize,
	}
}

// BatchGenerateQuestions generates questions for the given sessions in chunks
// of three. Chunk N+1 does not start until all of chunk N's requests have
// resolved; there is no ordering guarantee between requests inside a chunk.
// Results are returned in the order the session ids were given.
func (b *BatchGenerator) BatchGenerateQuestions(ctx context.Context, sessionIDs []string) []BatchResult {
	results := make([]BatchResult, len(sessionIDs))
	for i, sessionID := range sessionIDs {
		results[i] = BatchResult{SessionID: sessionID}
	}

	for start := 0; start < len(sessionIDs); start += b.chunkSize {
		end := start + b.chunkSize
		if end > len(sessionIDs) {
			end = len(sessionIDs)
		}

		var group errgroup.Group
		for i := start; i < end; i++ {
			group.Go(func() error {
				results[i].Err = b.manager.Generate(ctx, sessionIDs[i])
				return nil
			})
		}
		// Errors are captured per request; Wait is only the chunk join.
		_ = group.Wait()
	}
	return results
}
