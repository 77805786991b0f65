package common

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseJSON unmarshals the first JSON object found in an LLM reply into T,
// tolerating markdown fences and surrounding prose.
func ParseJSON[T any](response string) (T, error) {
	var result T

	start := strings.IndexByte(response, '{')
	if start == -1 {
		return result, fmt.Errorf("no JSON object found in response")
	}
	end := strings.LastIndexByte(response, '}')
	if end < start {
		return result, fmt.Errorf("unterminated JSON object in response")
	}

	if err := json.Unmarshal([]byte(response[start:end+1]), &result); err != nil {
		var zero T
		return zero, fmt.Errorf("failed to unmarshal JSON: %w\nData: %s", err, response[start:end+1])
	}
	return result, nil
}
