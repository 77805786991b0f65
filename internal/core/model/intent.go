package model

// Intent labels the classifier may assign to an utterance. Routing matches on
// the exact string.
const (
	IntentGreet   = "Greet"
	IntentView    = "View"
	IntentDelete  = "Delete"
	IntentModify  = "Modify"
	IntentReplace = "Replace"
	IntentThanks  = "Thanks"
	IntentNone    = "None"
)

// DatetimeEntity is the entity type carrying a normalized time expression.
const DatetimeEntity = "datetime"

// Entity is one entity record from the classifier.
type Entity struct {
	Timex string `json:"timex"`
}

// Recognition is the classifier result for a single utterance.
type Recognition struct {
	Intents  map[string]float64  `json:"intents"`
	Entities map[string][]Entity `json:"entities"`
}

// TopIntent returns the highest-confidence label, or "" when the classifier
// returned no intents.
func (r Recognition) TopIntent() string {
	top := ""
	max := 0.0
	for label, score := range r.Intents {
		if score > max {
			top, max = label, score
		}
	}
	return top
}

// FirstTimex returns the normalized time expression of the first datetime
// entity, or "" when none was recognized.
func (r Recognition) FirstTimex() string {
	ents := r.Entities[DatetimeEntity]
	if len(ents) == 0 {
		return ""
	}
	return ents[0].Timex
}
