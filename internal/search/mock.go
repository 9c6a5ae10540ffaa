package search

import (
	"context"
)

// MockProvider implements Provider for testing purposes.
type MockProvider struct {
	name      string
	results   []Result
	resultsBy map[string][]Result
	err       error
	CallCount int
	Queries   []string
}

// NewMockProvider creates a new mock search provider.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		name: "Mock",
		results: []Result{
			{
				URL:       "https://example.com/article1",
				Title:     "Example Article 1",
				Snippet:   "This is a mock search result for testing purposes.",
				Publisher: "example.com",
				Rank:      1,
			},
			{
				URL:       "https://test.org/article2",
				Title:     "Test Article 2",
				Snippet:   "Another mock search result with different content.",
				Publisher: "test.org",
				Rank:      2,
			},
			{
				URL:       "https://demo.net/article3",
				Title:     "Demo Article 3",
				Snippet:   "Third mock result to simulate multiple search results.",
				Publisher: "demo.net",
				Rank:      3,
			},
		},
	}
}

// Name returns the name of this provider.
func (m *MockProvider) Name() string {
	return m.name
}

// Search returns mock search results, honoring the exclude set and max count.
func (m *MockProvider) Search(ctx context.Context, query string, cfg Config) ([]Result, error) {
	m.CallCount++
	m.Queries = append(m.Queries, query)

	if m.err != nil {
		return nil, m.err
	}

	results := m.results
	if m.resultsBy != nil {
		if perQuery, ok := m.resultsBy[query]; ok {
			results = perQuery
		}
	}

	return capResults(results, cfg), nil
}

// SetResults sets the default results returned for any query.
func (m *MockProvider) SetResults(results []Result) {
	m.results = results
}

// SetResultsForQuery sets results returned for one specific query.
func (m *MockProvider) SetResultsForQuery(query string, results []Result) {
	if m.resultsBy == nil {
		m.resultsBy = make(map[string][]Result)
	}
	m.resultsBy[query] = results
}

// SetError makes every subsequent Search call fail with err.
func (m *MockProvider) SetError(err error) {
	m.err = err
}

// SetName allows customization of the provider name for testing.
func (m *MockProvider) SetName(name string) {
	m.name = name
}
