package review

import (
	"context"
	"time"
)

//go:generate mockgen -source=repository.go -destination=../mocks/review/mock_repository.go -package=mock_review

// ItemRepository defines persistence operations for reviewable items.
// Get returns nil without an error when no item matches the id.
type ItemRepository interface {
	Get(ctx context.Context, id string) (*Item, error)
	Update(ctx context.Context, id string, update Update) (*Item, error)
}

// ScopeLookup resolves the ordered candidate items for a review scope.
type ScopeLookup interface {
	ItemsForScope(ctx context.Context, scope Scope, scopeID string) ([]Item, error)
}

// ReviewLog is a persisted record of one scheduled review.
type ReviewLog struct {
	ID             int64     `db:"id"`
	ItemID         string    `db:"item_id"`
	Quality        int       `db:"quality"`
	ResponseTimeMs int64     `db:"response_time_ms"`
	IntervalDays   int       `db:"interval_days"`
	EasinessFactor float64   `db:"easiness_factor"`
	ReviewedAt     time.Time `db:"reviewed_at"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// ReviewLogRepository defines operations for managing review logs.
type ReviewLogRepository interface {
	Create(ctx context.Context, log *ReviewLog) error
	FindByItem(ctx context.Context, itemID string) ([]ReviewLog, error)
}
