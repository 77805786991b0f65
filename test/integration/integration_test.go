//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/diary/internal/config"
	"github.com/agenthands/diary/internal/core"
	"github.com/agenthands/diary/internal/core/model"
	"github.com/agenthands/diary/internal/llm"
	"github.com/agenthands/diary/internal/nlu"
	"github.com/agenthands/diary/internal/store"
)

func liveStore(t *testing.T) store.NoteStore {
	t.Helper()
	_ = godotenv.Load("../../.env")

	uri := os.Getenv("MEMGRAPH_URI")
	if uri == "" {
		t.Skip("Skipping integration test: MEMGRAPH_URI not set")
	}

	s, err := store.NewMemgraphStore(uri, os.Getenv("MEMGRAPH_USER"), os.Getenv("MEMGRAPH_PASSWORD"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func liveRecognizer(t *testing.T) nlu.Recognizer {
	t.Helper()
	provider := os.Getenv("NLU_PROVIDER")
	if provider == "" {
		t.Skip("Skipping integration test: NLU_PROVIDER not set")
	}

	client, err := llm.NewClient(context.Background(), config.NLUConfig{
		Provider: provider,
		Model:    os.Getenv("NLU_MODEL"),
		APIKey:   os.Getenv("NLU_API_KEY"),
		BaseURL:  os.Getenv("NLU_BASE_URL"),
	})
	require.NoError(t, err)
	return nlu.NewLLMRecognizer(client, "")
}

// TestMemgraphNoteLifecycle drives the store through the same call pattern one
// turn produces.
func TestMemgraphNoteLifecycle(t *testing.T) {
	s := liveStore(t)
	ctx := context.Background()

	// Unique bucket so parallel runs don't collide.
	key := fmt.Sprintf("it-%s", uuid.New().String())

	require.NoError(t, s.Write(ctx, map[string]model.Note{
		key: model.NewNote(model.DiaryEntryName, "integration entry"),
	}))

	notes, err := s.Read(ctx, []string{key})
	require.NoError(t, err)
	require.Contains(t, notes, key)
	assert.Equal(t, []string{"integration entry"}, notes[key].Contents)

	note := notes[key]
	note.Contents = append(note.Contents, "second")
	require.NoError(t, s.Write(ctx, map[string]model.Note{key: note}))

	stale := note
	stale.Contents = append(stale.Contents, "third")
	assert.ErrorIs(t, s.Write(ctx, map[string]model.Note{key: stale}), store.ErrConflict)

	require.NoError(t, s.Delete(ctx, []string{key}))
	notes, err = s.Read(ctx, []string{key})
	require.NoError(t, err)
	assert.NotContains(t, notes, key)
}

// TestFullTurnFlow runs welcome, logging, name collection and a live
// classification end to end.
func TestFullTurnFlow(t *testing.T) {
	s := liveStore(t)
	rec := liveRecognizer(t)
	p := core.NewProcessor(s, rec, "")

	ctx := context.Background()
	sess := &model.Session{}
	now := time.Now().UTC()

	turn := model.Turn{
		ConversationID: uuid.New().String(),
		UserID:         "integration",
		Text:           "Today I finally finished the garden fence.",
		Timestamp:      now,
	}

	replies := p.Process(ctx, turn, sess)
	assert.Contains(t, replies, core.DefaultWelcome)
	assert.True(t, sess.DidWelcome)

	key := core.TimeKey(now, p.Offset())
	notes, err := s.Read(ctx, []string{key})
	require.NoError(t, err)
	require.Contains(t, notes, key)
	assert.Equal(t, "Today I finally finished the garden fence.",
		notes[key].Contents[len(notes[key].Contents)-1])

	t.Cleanup(func() { _ = s.Delete(context.Background(), []string{key}) })

	// A view request for the arrival hour should come back with the entry.
	turn.Text = fmt.Sprintf("Show me my diary for %s at %d o'clock",
		now.Format("2006-01-02"), now.Hour())
	sess.Name = "Integration"
	replies = p.Process(ctx, turn, sess)
	require.NotEmpty(t, replies)
}
