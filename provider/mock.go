package provider

import (
	"context"
	"fmt"
)

// MockProvider is a mock AI provider for testing.
type MockProvider struct {
	Responses   map[string][]TranslationCandidate // source text -> samples
	Err         error                             // returned by every call when set
	CallCount   int                               // number of times Translate was called
	LastRequest *TranslateRequest                 // last request received
}

// NewMockProvider creates a new mock provider with no canned responses.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Responses: make(map[string][]TranslationCandidate),
	}
}

// Respond registers a canned sample set for a source text.
func (m *MockProvider) Respond(source string, samples ...TranslationCandidate) {
	m.Responses[source] = samples
}

// Translate returns the canned samples for the requested text, or a
// bracketed echo when none are registered.
func (m *MockProvider) Translate(ctx context.Context, req TranslateRequest) ([]TranslationCandidate, error) {
	m.CallCount++
	m.LastRequest = &req

	if m.Err != nil {
		return nil, m.Err
	}
	if samples, ok := m.Responses[req.Text]; ok {
		return samples, nil
	}
	return []TranslationCandidate{
		{Text: fmt.Sprintf("[%s]", req.Text)},
	}, nil
}

// Reset resets the call count and last request.
func (m *MockProvider) Reset() {
	m.CallCount = 0
	m.LastRequest = nil
}

// Verify MockProvider implements Provider
var _ Provider = (*MockProvider)(nil)
