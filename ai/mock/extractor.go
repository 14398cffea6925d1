package mock

import (
	"context"

	"github.com/poiesic/corpfacts/ai"
	"github.com/poiesic/corpfacts/core"
)

// MockRecordExtractor is a test double for ai.RecordExtractor.
// It allows custom behavior injection via function fields.
type MockRecordExtractor struct {
	// ExtractRecordsFunc is called by ExtractRecords if set.
	// If nil, a fixed record list (Records field) is returned.
	ExtractRecordsFunc func(ctx context.Context, text string) ([]core.Record, error)

	// Records is the default response when ExtractRecordsFunc is nil.
	Records []core.Record

	callCount int
}

// NewMockRecordExtractor creates a mock record extractor with default
// behavior.
// Note: Returns concrete type to allow test assertions on call counts.
func NewMockRecordExtractor() *MockRecordExtractor {
	return &MockRecordExtractor{}
}

// ExtractRecords returns the configured records or delegates to
// ExtractRecordsFunc.
func (m *MockRecordExtractor) ExtractRecords(ctx context.Context, text string) ([]core.Record, error) {
	m.callCount++

	if m.ExtractRecordsFunc != nil {
		return m.ExtractRecordsFunc(ctx, text)
	}

	if m.Records == nil {
		return []core.Record{}, nil
	}
	return m.Records, nil
}

// CallCount returns the number of times ExtractRecords was called.
func (m *MockRecordExtractor) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom behavior.
func (m *MockRecordExtractor) Reset() {
	m.callCount = 0
	m.ExtractRecordsFunc = nil
	m.Records = nil
}

var _ ai.RecordExtractor = (*MockRecordExtractor)(nil)
