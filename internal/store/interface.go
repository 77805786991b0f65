package store

import (
	"context"
	"errors"

	"github.com/agenthands/diary/internal/core/model"
)

// ErrConflict is returned by Write when a note's etag no longer matches the
// stored one.
var ErrConflict = errors.New("etag conflict")

// NoteStore is a key-value store of diary notes keyed by formatted local-time
// strings. Read omits keys that are not present. Write upserts; a note etag of
// model.WildcardETag writes unconditionally, any other value is compare-and-set
// and fails with ErrConflict on mismatch. Every successful write assigns the
// stored note a fresh etag.
type NoteStore interface {
	Read(ctx context.Context, keys []string) (map[string]model.Note, error)
	Write(ctx context.Context, changes map[string]model.Note) error
	Delete(ctx context.Context, keys []string) error
	Close(ctx context.Context) error
}
