package review

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// yamlItemsFile is the on-disk document for a YAML item repository.
type yamlItemsFile struct {
	Items []Item `yaml:"items"`
}

// YamlItemRepository is a file-backed ItemRepository and ScopeLookup for
// local use without a database. The whole file is rewritten on every update,
// matching how notebooks are stored.
type YamlItemRepository struct {
	mu   sync.Mutex
	path string
}

// NewYamlItemRepository creates a repository over the given YAML file. The
// file does not need to exist yet.
func NewYamlItemRepository(path string) *YamlItemRepository {
	return &YamlItemRepository{path: path}
}

// Get returns the item with the id, or nil when not found.
func (r *YamlItemRepository) Get(_ context.Context, id string) (*Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items, err := r.load()
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.ID == id {
			return &item, nil
		}
	}
	return nil, nil
}

// Update applies a scheduling update and rewrites the file.
func (r *YamlItemRepository) Update(_ context.Context, id string, update Update) (*Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items, err := r.load()
	if err != nil {
		return nil, err
	}
	for i, item := range items {
		if item.ID != id {
			continue
		}
		updated := update.Apply(item)
		items[i] = updated
		if err := r.save(items); err != nil {
			return nil, err
		}
		return &updated, nil
	}
	return nil, nil
}

// ItemsForScope returns items matching the scope in file order.
func (r *YamlItemRepository) ItemsForScope(_ context.Context, scope Scope, scopeID string) ([]Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items, err := r.load()
	if err != nil {
		return nil, err
	}

	var matched []Item
	for _, item := range items {
		switch scope {
		case ScopeUser:
			if item.OwnerID == scopeID {
				matched = append(matched, item)
			}
		case ScopeFolder:
			if item.FolderID == scopeID {
				matched = append(matched, item)
			}
		case ScopeNote:
			if item.ID == scopeID {
				matched = append(matched, item)
			}
		default:
			return nil, fmt.Errorf("unknown review scope %q", scope)
		}
	}
	return matched, nil
}

// SaveAll replaces the file contents with the given items.
func (r *YamlItemRepository) SaveAll(items []Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.save(items)
}

func (r *YamlItemRepository) load() ([]Item, error) {
	content, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", r.path, err)
	}

	var file yamlItemsFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal(%s) > %w", r.path, err)
	}
	return file.Items, nil
}

func (r *YamlItemRepository) save(items []Item) error {
	content, err := yaml.Marshal(yamlItemsFile{Items: items})
	if err != nil {
		return fmt.Errorf("yaml.Marshal() > %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(r.path), err)
	}
	if err := os.WriteFile(r.path, content, 0644); err != nil {
		return fmt.Errorf("os.WriteFile(%s) > %w", r.path, err)
	}
	return nil
}
