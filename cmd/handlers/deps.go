package handlers

import (
	"context"
	"fmt"

	"github.com/briteco/brief/internal/config"
	"github.com/briteco/brief/internal/email"
	"github.com/briteco/brief/internal/gdocs"
	"github.com/briteco/brief/internal/llm"
	"github.com/briteco/brief/internal/ontraport"
	"github.com/briteco/brief/internal/search"
)

// buildSearchProvider constructs the configured search gateway.
func buildSearchProvider() (search.Provider, error) {
	cfg := config.Get()
	providerType := search.ProviderType(cfg.Search.DefaultProvider)

	providerConfig := map[string]string{}
	switch providerType {
	case search.ProviderTypeTavily:
		providerConfig["api_key"] = cfg.Search.Providers.Tavily.APIKey
	case search.ProviderTypeSerpAPI:
		providerConfig["api_key"] = cfg.Search.Providers.SerpAPI.APIKey
	case search.ProviderTypePerplexity:
		providerConfig["api_key"] = cfg.AI.Perplexity.APIKey
		providerConfig["base_url"] = cfg.AI.Perplexity.BaseURL
		providerConfig["model"] = cfg.AI.Perplexity.Model
	}

	provider, err := search.NewFactory().CreateProvider(providerType, providerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s search provider: %w", providerType, err)
	}
	return provider, nil
}

// buildResearchLLM constructs the citation-backed research model client.
func buildResearchLLM() (llm.TextGenerator, error) {
	cfg := config.Get()
	return llm.NewOpenAIClient(cfg.AI.Perplexity.APIKey, cfg.AI.Perplexity.BaseURL, cfg.AI.Perplexity.Model)
}

// buildCreativeLLM constructs the section-writing model client. The caller
// owns Close.
func buildCreativeLLM(ctx context.Context) (*llm.GeminiClient, error) {
	cfg := config.Get()
	return llm.NewGeminiClient(ctx, cfg.AI.Gemini.APIKey, cfg.AI.Gemini.Model)
}

// buildSender constructs the SMTP sender, or nil when not configured.
func buildSender() *email.Sender {
	cfg := config.Get()
	sender, err := email.NewSender(email.Config{
		Host:     cfg.Email.SMTPHost,
		Port:     cfg.Email.SMTPPort,
		User:     cfg.Email.Username,
		Password: cfg.Email.Password,
	})
	if err != nil {
		return nil
	}
	return sender
}

// buildExporter constructs the Google Docs exporter, or nil when not
// configured.
func buildExporter(ctx context.Context) *gdocs.Exporter {
	cfg := config.Get()
	if cfg.GoogleDocs.CredentialsJSON == "" {
		return nil
	}
	exporter, err := gdocs.NewExporter(ctx, []byte(cfg.GoogleDocs.CredentialsJSON), cfg.GoogleDocs.FolderID)
	if err != nil {
		return nil
	}
	return exporter
}

// buildCRM constructs the Ontraport client, or nil when not configured.
func buildCRM() *ontraport.Client {
	cfg := config.Get()
	client, err := ontraport.NewClient(cfg.Ontraport.AppID, cfg.Ontraport.APIKey,
		cfg.Ontraport.FromName, cfg.Ontraport.FromEmail)
	if err != nil {
		return nil
	}
	return client
}
