package core

import (
	"context"

	"github.com/agenthands/diary/internal/core/model"
)

type MockStore struct {
	Notes     map[string]model.Note
	ReadErr   error
	WriteErr  error
	DeleteErr error

	Writes  int
	Deleted []string
}

func NewMockStore() *MockStore {
	return &MockStore{Notes: make(map[string]model.Note)}
}

func (m *MockStore) Read(ctx context.Context, keys []string) (map[string]model.Note, error) {
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	found := make(map[string]model.Note)
	for _, key := range keys {
		if note, ok := m.Notes[key]; ok {
			found[key] = note
		}
	}
	return found, nil
}

func (m *MockStore) Write(ctx context.Context, changes map[string]model.Note) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}
	for key, note := range changes {
		m.Notes[key] = note
		m.Writes++
	}
	return nil
}

func (m *MockStore) Delete(ctx context.Context, keys []string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	for _, key := range keys {
		delete(m.Notes, key)
		m.Deleted = append(m.Deleted, key)
	}
	return nil
}

func (m *MockStore) Close(ctx context.Context) error {
	return nil
}

type MockRecognizer struct {
	Result model.Recognition
	Err    error
	Called bool
}

func (m *MockRecognizer) Recognize(ctx context.Context, utterance string) (model.Recognition, error) {
	m.Called = true
	if m.Err != nil {
		return model.Recognition{}, m.Err
	}
	return m.Result, nil
}
