package llm

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultGeminiModel is the default Gemini model for section generation.
const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiClient implements TextGenerator on the Google Gemini API.
type GeminiClient struct {
	client    *genai.Client
	modelName string
}

// NewGeminiClient creates a new Gemini text-generation client.
func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required. Set GEMINI_API_KEY or ai.gemini.api_key in the config file")
	}
	if modelName == "" {
		modelName = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client, modelName: modelName}, nil
}

// ModelName returns the configured model identifier.
func (c *GeminiClient) ModelName() string {
	return c.modelName
}

// Generate performs one text completion call.
func (c *GeminiClient) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	modelName := c.modelName
	if opts.Model != "" {
		modelName = opts.Model
	}

	model := c.client.GenerativeModel(modelName)
	if opts.Temperature > 0 {
		model.SetTemperature(opts.Temperature)
	}
	if opts.MaxTokens > 0 {
		model.SetMaxOutputTokens(opts.MaxTokens)
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from model %s", modelName)
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response part type from model %s", modelName)
	}

	return string(text), nil
}

// Close releases the underlying API client.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}
