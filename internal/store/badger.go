package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"

	"github.com/agenthands/diary/internal/core/model"
)

// BadgerStore is an embedded Note store for single-host deployments and tests.
type BadgerStore struct {
	db *badger.DB
}

func NewBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db at '%s': %w", path, err)
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Close(ctx context.Context) error {
	return s.db.Close()
}

func (s *BadgerStore) Read(ctx context.Context, keys []string) (map[string]model.Note, error) {
	notes := make(map[string]model.Note, len(keys))

	err := s.db.View(func(txn *badger.Txn) error {
		for _, key := range keys {
			item, err := txn.Get([]byte(key))
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return err
			}

			var note model.Note
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &note)
			}); err != nil {
				return fmt.Errorf("corrupt note at %q: %w", key, err)
			}
			notes[key] = note
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return notes, nil
}

func (s *BadgerStore) Write(ctx context.Context, changes map[string]model.Note) error {
	return s.db.Update(func(txn *badger.Txn) error {
		for key, note := range changes {
			if note.ETag != model.WildcardETag {
				current, err := readCurrent(txn, key)
				if err != nil {
					return err
				}
				if current == nil || current.ETag != note.ETag {
					return fmt.Errorf("write of note %q: %w", key, ErrConflict)
				}
			}

			note.ETag = uuid.New().String()
			val, err := json.Marshal(note)
			if err != nil {
				return err
			}
			if err := txn.Set([]byte(key), val); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BadgerStore) Delete(ctx context.Context, keys []string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		for _, key := range keys {
			if err := txn.Delete([]byte(key)); err != nil {
				return err
			}
		}
		return nil
	})
}

func readCurrent(txn *badger.Txn, key string) (*model.Note, error) {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var note model.Note
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &note)
	}); err != nil {
		return nil, fmt.Errorf("corrupt note at %q: %w", key, err)
	}
	return &note, nil
}
