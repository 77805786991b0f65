package store

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/agenthands/diary/internal/core/model"
)

// MemgraphStore keeps notes as :Note nodes keyed by the formatted time bucket.
type MemgraphStore struct {
	Driver neo4j.DriverWithContext
}

func NewMemgraphStore(uri, username, password string) (*MemgraphStore, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, err
	}

	if err := driver.VerifyConnectivity(context.Background()); err != nil {
		return nil, err
	}

	log.Println("Connected to Memgraph")
	s := &MemgraphStore{Driver: driver}

	if _, err := s.executeQuery(context.Background(), "CREATE INDEX ON :Note(key);", nil); err != nil {
		// Index may already exist.
		log.Printf("Warning: failed to create note index: %v", err)
	}

	return s, nil
}

func (s *MemgraphStore) Close(ctx context.Context) error {
	return s.Driver.Close(ctx)
}

func (s *MemgraphStore) executeQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(ctx, s.Driver, query, params, neo4j.EagerResultTransformer)
	if err != nil {
		return neo4j.EagerResult{}, fmt.Errorf("failed to execute query: %w", err)
	}
	return *result, nil
}

func (s *MemgraphStore) Read(ctx context.Context, keys []string) (map[string]model.Note, error) {
	result, err := s.executeQuery(ctx, readNotesQuery, map[string]interface{}{"keys": keys})
	if err != nil {
		return nil, err
	}

	notes := make(map[string]model.Note, len(result.Records))
	for _, record := range result.Records {
		key, _ := record.Get("key")
		name, _ := record.Get("name")
		etag, _ := record.Get("etag")
		rawContents, _ := record.Get("contents")

		var contents []string
		if items, ok := rawContents.([]interface{}); ok {
			for _, item := range items {
				if str, ok := item.(string); ok {
					contents = append(contents, str)
				}
			}
		}

		notes[key.(string)] = model.Note{
			Name:     name.(string),
			Contents: contents,
			ETag:     etag.(string),
		}
	}

	return notes, nil
}

func (s *MemgraphStore) Write(ctx context.Context, changes map[string]model.Note) error {
	for key, note := range changes {
		params := map[string]interface{}{
			"key":      key,
			"name":     note.Name,
			"contents": note.Contents,
			"etag":     uuid.New().String(),
		}

		if note.ETag == model.WildcardETag {
			if _, err := s.executeQuery(ctx, upsertNoteQuery, params); err != nil {
				return err
			}
			continue
		}

		params["expected"] = note.ETag
		result, err := s.executeQuery(ctx, casNoteQuery, params)
		if err != nil {
			return err
		}
		if len(result.Records) == 0 {
			return fmt.Errorf("write of note %q: %w", key, ErrConflict)
		}
	}

	return nil
}

func (s *MemgraphStore) Delete(ctx context.Context, keys []string) error {
	_, err := s.executeQuery(ctx, deleteNotesQuery, map[string]interface{}{"keys": keys})
	return err
}
