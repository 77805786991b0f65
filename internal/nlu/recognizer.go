package nlu

import (
	"context"
	"fmt"

	"github.com/agenthands/diary/internal/core/common"
	"github.com/agenthands/diary/internal/core/model"
	"github.com/agenthands/diary/internal/llm"
)

// Recognizer classifies one utterance into intents and entities.
type Recognizer interface {
	Recognize(ctx context.Context, utterance string) (model.Recognition, error)
}

const defaultPrompt = `You are the intent classifier for a diary assistant.
Classify the user message into the intents Greet, View, Delete, Modify, Replace,
Thanks, None with confidence scores between 0 and 1. View, Delete, Modify and
Replace refer to diary entries for a specific date and time; if the message
mentions one, extract it as a "datetime" entity whose "timex" field is the
normalized expression YYYY-MM-DD or YYYY-MM-DDTHH (24-hour clock).

Respond with only a JSON object of the form:
{"intents": {"View": 0.9}, "entities": {"datetime": [{"timex": "2024-03-05T14"}]}}

Omit "entities" when no date or time is mentioned.

User message: %s`

// LLMRecognizer prompts a text-generation client for a classification and
// parses the JSON reply.
type LLMRecognizer struct {
	LLM    llm.Client
	Prompt string
}

func NewLLMRecognizer(client llm.Client, prompt string) *LLMRecognizer {
	if prompt == "" {
		prompt = defaultPrompt
	}
	return &LLMRecognizer{
		LLM:    client,
		Prompt: prompt,
	}
}

func (r *LLMRecognizer) Recognize(ctx context.Context, utterance string) (model.Recognition, error) {
	response, err := r.LLM.Generate(ctx, fmt.Sprintf(r.Prompt, utterance))
	if err != nil {
		return model.Recognition{}, fmt.Errorf("failed to generate classification: %w", err)
	}

	result, err := common.ParseJSON[model.Recognition](response)
	if err != nil {
		return model.Recognition{}, fmt.Errorf("failed to parse classification: %w", err)
	}

	return result, nil
}

// Disabled is the recognizer used when no NLU provider is configured. Every
// utterance classifies as nothing, so turn routing never fires but logging and
// the conversational flows still run.
type Disabled struct{}

func (Disabled) Recognize(ctx context.Context, utterance string) (model.Recognition, error) {
	return model.Recognition{}, nil
}
