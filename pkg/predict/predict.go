// Package predict defines the prediction boundary: a small interface over
// next-word suggestion sources, with an HTTP client for the model service
// and a trie-backed predictor for offline use.
package predict

import "context"

// Suggestion is a single ranked candidate word
type Suggestion struct {
	Word string `json:"word"`
	Rank int    `json:"rank"`
}

// Predictor is the interface for next-word suggestion sources.
// Suggest returns at most limit candidates, best first. Implementations
// must treat "no suggestions" as a valid result, not an error.
type Predictor interface {
	Suggest(ctx context.Context, text string, limit int) ([]Suggestion, error)
}

// Words flattens suggestions into their candidate strings, keeping order
func Words(suggestions []Suggestion) []string {
	if len(suggestions) == 0 {
		return nil
	}
	out := make([]string, len(suggestions))
	for i, s := range suggestions {
		out[i] = s.Word
	}
	return out
}
