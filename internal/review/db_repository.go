package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// dbItem mirrors the items table. History rows live in review_logs.
type dbItem struct {
	ID             string     `db:"id"`
	Kind           string     `db:"kind"`
	FolderID       string     `db:"folder_id"`
	OwnerID        string     `db:"owner_id"`
	Title          string     `db:"title"`
	Content        string     `db:"content"`
	Repetition     int        `db:"repetition"`
	IntervalDays   int        `db:"interval_days"`
	EasinessFactor float64    `db:"easiness_factor"`
	NextReview     *time.Time `db:"next_review"`
	LastReview     *time.Time `db:"last_review"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}

// DBItemRepository implements ItemRepository and ScopeLookup using MySQL.
type DBItemRepository struct {
	db *sqlx.DB
}

// NewDBItemRepository creates a new DBItemRepository.
func NewDBItemRepository(db *sqlx.DB) *DBItemRepository {
	return &DBItemRepository{db: db}
}

// Get returns an item with its review history, or nil if not found.
func (r *DBItemRepository) Get(ctx context.Context, id string) (*Item, error) {
	var row dbItem
	err := r.db.GetContext(ctx, &row, "SELECT * FROM items WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(items) > %w", err)
	}

	item := row.toItem()
	history, err := r.loadHistory(ctx, id)
	if err != nil {
		return nil, err
	}
	item.History = history
	return &item, nil
}

// Update applies a scheduling update and returns the updated item.
func (r *DBItemRepository) Update(ctx context.Context, id string, update Update) (*Item, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE items
		SET repetition = ?, interval_days = ?, easiness_factor = ?, next_review = ?, last_review = ?
		WHERE id = ?`,
		update.Repetition, update.IntervalDays, update.EasinessFactor,
		update.NextReview, update.LastReview, id)
	if err != nil {
		return nil, fmt.Errorf("db.ExecContext(update items) > %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("result.RowsAffected() > %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("item %s not found", id)
	}
	return r.Get(ctx, id)
}

// ItemsForScope returns items for a scope ordered by creation.
func (r *DBItemRepository) ItemsForScope(ctx context.Context, scope Scope, scopeID string) ([]Item, error) {
	var query string
	switch scope {
	case ScopeUser:
		query = "SELECT * FROM items WHERE owner_id = ? ORDER BY created_at, id"
	case ScopeFolder:
		query = "SELECT * FROM items WHERE folder_id = ? ORDER BY created_at, id"
	case ScopeNote:
		query = "SELECT * FROM items WHERE id = ?"
	default:
		return nil, fmt.Errorf("unknown review scope %q", scope)
	}

	var rows []dbItem
	if err := r.db.SelectContext(ctx, &rows, query, scopeID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(items by %s) > %w", scope, err)
	}

	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		item := row.toItem()
		history, err := r.loadHistory(ctx, row.ID)
		if err != nil {
			return nil, err
		}
		item.History = history
		items = append(items, item)
	}
	return items, nil
}

func (r *DBItemRepository) loadHistory(ctx context.Context, itemID string) ([]ReviewRecord, error) {
	var records []ReviewRecord
	if err := r.db.SelectContext(ctx, &records,
		"SELECT quality, reviewed_at FROM review_logs WHERE item_id = ? ORDER BY reviewed_at, id",
		itemID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(review_logs history) > %w", err)
	}
	return records, nil
}

func (row dbItem) toItem() Item {
	return Item{
		ID:             row.ID,
		Kind:           ItemKind(row.Kind),
		FolderID:       row.FolderID,
		OwnerID:        row.OwnerID,
		Title:          row.Title,
		Content:        row.Content,
		Repetition:     row.Repetition,
		IntervalDays:   row.IntervalDays,
		EasinessFactor: row.EasinessFactor,
		NextReview:     row.NextReview,
		LastReview:     row.LastReview,
	}
}

// DBReviewLogRepository implements ReviewLogRepository using MySQL.
type DBReviewLogRepository struct {
	db *sqlx.DB
}

// NewDBReviewLogRepository creates a new DBReviewLogRepository.
func NewDBReviewLogRepository(db *sqlx.DB) *DBReviewLogRepository {
	return &DBReviewLogRepository{db: db}
}

// Create inserts a new review log.
func (r *DBReviewLogRepository) Create(ctx context.Context, log *ReviewLog) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO review_logs (item_id, quality, response_time_ms, interval_days, easiness_factor, reviewed_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		log.ItemID, log.Quality, log.ResponseTimeMs, log.IntervalDays, log.EasinessFactor, log.ReviewedAt)
	if err != nil {
		return fmt.Errorf("db.ExecContext(insert review_log) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId() > %w", err)
	}
	log.ID = id
	return nil
}

// FindByItem returns all review logs for an item ordered by review time.
func (r *DBReviewLogRepository) FindByItem(ctx context.Context, itemID string) ([]ReviewLog, error) {
	var logs []ReviewLog
	if err := r.db.SelectContext(ctx, &logs,
		"SELECT * FROM review_logs WHERE item_id = ? ORDER BY reviewed_at, id",
		itemID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(review_logs by item) > %w", err)
	}
	return logs, nil
}
