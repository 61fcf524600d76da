// Package review provides spaced-repetition scheduling and self-graded
// review session management for reviewable items.
package review

import "time"

const (
	DefaultEasinessFactor = 2.5
	MinEasinessFactor     = 1.3
)

// ItemKind identifies what kind of record a reviewable item backs.
type ItemKind string

const (
	ItemKindQuestion ItemKind = "question"
	ItemKindNote     ItemKind = "note"
	ItemKindFolder   ItemKind = "folder"
)

// ReviewRecord represents a single review event for an item.
// Records are append-only and ordered from oldest to newest.
type ReviewRecord struct {
	Quality    int       `yaml:"quality" db:"quality"`
	ReviewedAt time.Time `yaml:"reviewed_at" db:"reviewed_at"`
}

// Item is the scheduling state shared by questions, notes and folders.
type Item struct {
	ID             string         `yaml:"id" db:"id"`
	Kind           ItemKind       `yaml:"kind" db:"kind"`
	FolderID       string         `yaml:"folder_id,omitempty" db:"folder_id"`
	OwnerID        string         `yaml:"owner_id,omitempty" db:"owner_id"`
	Title          string         `yaml:"title,omitempty" db:"title"`
	Content        string         `yaml:"content,omitempty" db:"content"`
	Repetition     int            `yaml:"repetition" db:"repetition"`
	IntervalDays   int            `yaml:"interval_days" db:"interval_days"`
	EasinessFactor float64        `yaml:"easiness_factor" db:"easiness_factor"`
	NextReview     *time.Time     `yaml:"next_review,omitempty" db:"next_review"`
	LastReview     *time.Time     `yaml:"last_review,omitempty" db:"last_review"`
	History        []ReviewRecord `yaml:"history,omitempty"`
}

// IsDue reports whether the item should be reviewed at the given time.
// An item with no next review date has never been reviewed and is always due.
func (item Item) IsDue(now time.Time) bool {
	if item.NextReview == nil {
		return true
	}
	return !truncateToDay(*item.NextReview).After(truncateToDay(now))
}

// truncateToDay strips the time of day, keeping the date in the time's location.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
