// Package sections generates the six content blocks of one newsletter issue.
// Each generator makes exactly one model call with a prompt that embeds the
// brand style guide and the section's structural constraints, then parses
// the response. Structured sections are decoded as JSON; free-text sections
// fall back to marker parsing, and ultimately to treating the whole response
// as a single block. A section with no usable content at all is an error.
package sections

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/briteco/brief/internal/llm"
)

// ErrEmptySection is returned when a generator produced no usable content.
var ErrEmptySection = errors.New("section generation produced no content")

// Generator produces newsletter sections via a text model.
type Generator struct {
	generator llm.TextGenerator
}

// NewGenerator creates a section generator backed by the given text model.
func NewGenerator(generator llm.TextGenerator) *Generator {
	return &Generator{generator: generator}
}

// generateJSON makes one model call and decodes the fenced-or-bare JSON
// response into out.
func (g *Generator) generateJSON(ctx context.Context, prompt string, opts llm.Options, out any) error {
	response, err := g.generator.Generate(ctx, prompt, opts)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(stripCodeFences(response)), out); err != nil {
		return fmt.Errorf("failed to parse section response: %w", err)
	}
	return nil
}
