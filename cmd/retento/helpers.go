package main

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/y-kondo/retento/internal/config"
	"github.com/y-kondo/retento/internal/database"
	"github.com/y-kondo/retento/internal/review"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// storage bundles the repositories for the configured backend. db is nil for
// the YAML backend; logs is nil when the backend does not keep review logs.
type storage struct {
	items interface {
		review.ItemRepository
		review.ScopeLookup
	}
	logs review.ReviewLogRepository
	db   *sqlx.DB
}

func (s *storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func openStorage(cfg *config.Config) (*storage, error) {
	switch cfg.Storage.Backend {
	case "mysql":
		db, err := database.Open(cfg.Storage.MySQL)
		if err != nil {
			return nil, fmt.Errorf("database.Open() > %w", err)
		}
		return &storage{
			items: review.NewDBItemRepository(db),
			logs:  review.NewDBReviewLogRepository(db),
			db:    db,
		}, nil
	case "yaml":
		return &storage{
			items: review.NewYamlItemRepository(cfg.Storage.Yaml.ItemsFile),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
	}
}
