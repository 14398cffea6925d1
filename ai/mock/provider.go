package mock

import "github.com/poiesic/corpfacts/ai"

// MockProvider aggregates mock AI services for tests.
type MockProvider struct {
	MockExtractor  *MockRecordExtractor
	MockClassifier *MockClassifier
}

// NewMockProvider creates a provider backed by fresh mock services.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		MockExtractor:  NewMockRecordExtractor(),
		MockClassifier: NewMockClassifier(),
	}
}

// RecordExtractor returns the mock extractor.
func (p *MockProvider) RecordExtractor() ai.RecordExtractor {
	return p.MockExtractor
}

// Classifier returns the mock classifier.
func (p *MockProvider) Classifier() ai.Classifier {
	return p.MockClassifier
}

// Close is a no-op.
func (p *MockProvider) Close() error {
	return nil
}

var _ ai.Provider = (*MockProvider)(nil)
