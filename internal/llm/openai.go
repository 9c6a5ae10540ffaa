package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// OpenAIClient implements TextGenerator on any OpenAI-compatible chat API.
// It is used for Perplexity-hosted research models via a base URL override.
type OpenAIClient struct {
	client    openai.Client
	modelName string
}

// NewOpenAIClient creates a client for an OpenAI-compatible endpoint.
// baseURL may be empty for the default OpenAI endpoint.
func NewOpenAIClient(apiKey, baseURL, modelName string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required for OpenAI-compatible client")
	}

	requestOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		requestOpts = append(requestOpts, option.WithBaseURL(baseURL))
	}

	return &OpenAIClient{
		client:    openai.NewClient(requestOpts...),
		modelName: modelName,
	}, nil
}

// ModelName returns the configured model identifier.
func (c *OpenAIClient) ModelName() string {
	return c.modelName
}

// Generate performs one chat completion call.
func (c *OpenAIClient) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	modelName := c.modelName
	if opts.Model != "" {
		modelName = opts.Model
	}

	params := openai.ChatCompletionNewParams{
		Model: modelName,
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(prompt),
					},
				},
			},
		},
	}
	if opts.Temperature > 0 {
		params.Temperature = openai.Float(float64(opts.Temperature))
	}
	if opts.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(opts.MaxTokens))
	}

	response, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response from model %s", modelName)
	}

	return response.Choices[0].Message.Content, nil
}
