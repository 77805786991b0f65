package model

// DiaryEntryName labels notes created by the unconditional per-turn logging.
const DiaryEntryName = "Diary-entry"

// WildcardETag disables conflict detection on write.
const WildcardETag = "*"

// Note is one time-bucketed diary entry. Contents keeps arrival order within
// the bucket and is append-only except under an explicit Replace.
type Note struct {
	Name     string   `json:"name"`
	Contents []string `json:"contents"`
	ETag     string   `json:"etag"`
}

func NewNote(name string, contents ...string) Note {
	return Note{
		Name:     name,
		Contents: contents,
		ETag:     WildcardETag,
	}
}
