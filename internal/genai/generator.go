// Package genai wraps the generative-model backend behind a single
// prompt-in, JSON-out interface so callers can be tested with a fake.
package genai

import "context"

// Generator produces one JSON document for one prompt. Implementations must
// return the raw bytes of the JSON body with any markdown fences stripped.
type Generator interface {
	Generate(ctx context.Context, system, prompt string) ([]byte, error)
}
