package core

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/agenthands/diary/internal/core/model"
	"github.com/agenthands/diary/internal/nlu"
	"github.com/agenthands/diary/internal/store"
)

const (
	// DefaultWelcome greets a conversation on its first turn.
	DefaultWelcome = "Welcome to your favorite diary bot"

	storageApology = "Sorry, something went wrong storing your message!"
	noDateReply    = "I couldn't work out which date you meant."
)

// rewriteMarker separates the instruction part of a Modify/Replace utterance
// from the new entry text.
const rewriteMarker = "this:"

// Processor runs one diary turn: log the utterance under its arrival bucket,
// welcome first-time conversations, route a recognized intent to a store
// operation, and drive the name-collection flow. Failures of the collaborators
// degrade to a reply; a turn never faults.
type Processor struct {
	Store      store.NoteStore
	Recognizer nlu.Recognizer
	Welcome    string

	// Offset supplies the host UTC offset used for key formatting.
	Offset func() time.Duration
}

func NewProcessor(st store.NoteStore, rec nlu.Recognizer, welcome string) *Processor {
	if welcome == "" {
		welcome = DefaultWelcome
	}
	return &Processor{
		Store:      st,
		Recognizer: rec,
		Welcome:    welcome,
		Offset:     LocalOffset,
	}
}

// Process handles one turn and returns the replies in emission order. The
// session record is mutated in place; the host persists it between turns.
func (p *Processor) Process(ctx context.Context, turn model.Turn, sess *model.Session) []string {
	var replies []string

	// Every utterance lands in the diary, whatever else the turn does.
	key := TimeKey(turn.Timestamp, p.Offset())
	notes, err := p.Store.Read(ctx, []string{key})
	note, found := notes[key]
	if err != nil || !found {
		note = model.NewNote(model.DiaryEntryName, turn.Text)
	} else {
		note.Contents = append(note.Contents, turn.Text)
	}
	if err := p.Store.Write(ctx, map[string]model.Note{key: note}); err != nil {
		log.Printf("Failed to store diary entry at %q: %v", key, err)
		replies = append(replies, storageApology)
	}

	if !sess.DidWelcome {
		sess.DidWelcome = true
		replies = append(replies, p.Welcome)
	} else {
		replies = append(replies, p.route(ctx, turn)...)
	}

	replies = append(replies, p.nameFlow(turn, sess)...)

	return replies
}

func (p *Processor) route(ctx context.Context, turn model.Turn) []string {
	recognition, err := p.Recognizer.Recognize(ctx, turn.Text)
	if err != nil {
		log.Printf("Classifier failure, skipping intent routing: %v", err)
		return nil
	}

	intent := recognition.TopIntent()
	switch intent {
	case model.IntentView, model.IntentDelete, model.IntentModify, model.IntentReplace:
	default:
		// Greet, Thanks, None and anything unrecognized produce no store
		// operation and no reply from routing.
		return nil
	}

	dateKey, display := "", ""
	if timex := recognition.FirstTimex(); timex != "" {
		when, err := ParseTimex(timex)
		if err != nil {
			log.Printf("Unparsable time expression %q: %v", timex, err)
		} else {
			offset := p.Offset()
			dateKey = TimeKey(when, offset)
			display = DisplayTime(when, offset)
		}
	}
	if dateKey == "" {
		return []string{noDateReply}
	}

	switch intent {
	case model.IntentView:
		return p.view(ctx, dateKey, display)
	case model.IntentDelete:
		return p.deleteEntry(ctx, dateKey, display)
	default:
		return p.rewrite(ctx, intent, turn.Text, dateKey, display)
	}
}

func (p *Processor) view(ctx context.Context, key, display string) []string {
	notes, err := p.Store.Read(ctx, []string{key})
	if err != nil {
		log.Printf("Failed to read diary entry at %q: %v", key, err)
		return []string{storageApology}
	}
	note, found := notes[key]
	if !found {
		return []string{fmt.Sprintf("I have no diary entry for %s.", display)}
	}

	return []string{fmt.Sprintf("On %s, you said:\n\n%s", display, strings.Join(note.Contents, "\n\n"))}
}

func (p *Processor) deleteEntry(ctx context.Context, key, display string) []string {
	if err := p.Store.Delete(ctx, []string{key}); err != nil {
		log.Printf("Failed to delete diary entry at %q: %v", key, err)
		return []string{storageApology}
	}

	return []string{fmt.Sprintf("You have successfully deleted the entry on %s", display)}
}

// rewrite handles Modify and Replace. The new entry text is whatever follows
// the last "this:" in the utterance; without the marker the whole utterance is
// taken.
func (p *Processor) rewrite(ctx context.Context, intent, utterance, key, display string) []string {
	notes, err := p.Store.Read(ctx, []string{key})
	if err != nil {
		log.Printf("Failed to read diary entry at %q: %v", key, err)
		return []string{storageApology}
	}
	note, found := notes[key]
	if !found {
		return []string{fmt.Sprintf("I have no diary entry for %s.", display)}
	}

	newText := utterance
	if i := strings.LastIndex(utterance, rewriteMarker); i != -1 {
		newText = utterance[i+len(rewriteMarker):]
	}

	if intent == model.IntentReplace {
		note.Contents = []string{newText}
	} else {
		note.Contents = append(note.Contents, newText)
	}

	if err := p.Store.Write(ctx, map[string]model.Note{key: note}); err != nil {
		log.Printf("Failed to store diary entry at %q: %v", key, err)
		return []string{storageApology}
	}

	return nil
}

func (p *Processor) nameFlow(turn model.Turn, sess *model.Session) []string {
	if sess.Name == "" {
		if sess.PromptedForName {
			// This turn's raw text is taken verbatim as the name.
			sess.Name = turn.Text
			sess.PromptedForName = false
			return []string{
				fmt.Sprintf("Thanks %s. How was your day?", sess.Name),
				"Please tell me about it...",
			}
		}

		sess.PromptedForName = true
		return []string{"What is your name?"}
	}

	sess.LastSeen = DisplayTime(turn.Timestamp, p.Offset())
	sess.ChannelID = turn.ChannelID
	return nil
}
