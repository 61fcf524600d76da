package review

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepository is an in-memory ItemRepository and ScopeLookup. It backs
// tests and one-off sessions over items supplied by the caller.
type MemoryRepository struct {
	mu    sync.Mutex
	items map[string]Item
	order []string
}

// NewMemoryRepository creates a repository seeded with the given items,
// preserving their order for scope lookups.
func NewMemoryRepository(items ...Item) *MemoryRepository {
	repo := &MemoryRepository{
		items: make(map[string]Item, len(items)),
		order: make([]string, 0, len(items)),
	}
	for _, item := range items {
		repo.items[item.ID] = item
		repo.order = append(repo.order, item.ID)
	}
	return repo
}

// Put inserts or replaces an item.
func (r *MemoryRepository) Put(item Item) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		r.order = append(r.order, item.ID)
	}
	r.items[item.ID] = item
}

// Get returns the item with the id, or nil when not found.
func (r *MemoryRepository) Get(_ context.Context, id string) (*Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

// Update applies a scheduling update to the stored item.
func (r *MemoryRepository) Update(_ context.Context, id string, update Update) (*Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	updated := update.Apply(item)
	r.items[id] = updated
	return &updated, nil
}

// ItemsForScope returns items matching the scope in insertion order.
func (r *MemoryRepository) ItemsForScope(_ context.Context, scope Scope, scopeID string) ([]Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var items []Item
	for _, id := range r.order {
		item := r.items[id]
		switch scope {
		case ScopeUser:
			if item.OwnerID == scopeID {
				items = append(items, item)
			}
		case ScopeFolder:
			if item.FolderID == scopeID {
				items = append(items, item)
			}
		case ScopeNote:
			if item.ID == scopeID {
				items = append(items, item)
			}
		}
	}
	return items, nil
}

// MemoryLogRepository is an in-memory ReviewLogRepository.
type MemoryLogRepository struct {
	mu     sync.Mutex
	nextID int64
	logs   []ReviewLog
}

// NewMemoryLogRepository creates an empty log repository.
func NewMemoryLogRepository() *MemoryLogRepository {
	return &MemoryLogRepository{}
}

// Create appends a log and assigns its id.
func (r *MemoryLogRepository) Create(_ context.Context, log *ReviewLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	log.ID = r.nextID
	r.logs = append(r.logs, *log)
	return nil
}

// FindByItem returns logs for an item ordered by review time.
func (r *MemoryLogRepository) FindByItem(_ context.Context, itemID string) ([]ReviewLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var logs []ReviewLog
	for _, log := range r.logs {
		if log.ItemID == itemID {
			logs = append(logs, log)
		}
	}
	sort.Slice(logs, func(i, j int) bool {
		return logs[i].ReviewedAt.Before(logs[j].ReviewedAt)
	})
	return logs, nil
}
