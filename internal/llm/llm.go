// Package llm provides the text-generation boundary used by enrichment and
// section generation. Clients are constructed once at startup and injected
// into pipeline components; requests never mutate them.
package llm

import "context"

// Options contains per-call generation parameters.
type Options struct {
	Model       string  // Model override (optional, defaults to the client's model)
	Temperature float32 // Randomness (0.0 to 1.0)
	MaxTokens   int32   // Maximum number of tokens to generate
}

// TextGenerator accepts a single text prompt and returns a single text
// completion. One invocation makes exactly one outbound call; there is no
// retry built in.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
	ModelName() string
}
