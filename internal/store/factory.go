package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/agenthands/diary/internal/config"
)

func New(ctx context.Context, cfg config.StorageConfig) (NoteStore, error) {
	backend := strings.ToLower(cfg.Backend)

	switch backend {
	case "memgraph":
		return NewMemgraphStore(cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password)

	case "badger":
		path := cfg.Badger.Path
		if path == "" {
			path = "data/notes"
		}
		return NewBadgerStore(path)

	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", backend)
	}
}
