package mock

import (
	"context"
	"strings"

	"github.com/poiesic/corpfacts/ai"
)

// MockClassifier is a test double for ai.Classifier.
// It allows custom behavior injection via function fields.
type MockClassifier struct {
	// ClassifyFunc is called by Classify if set.
	// If nil, the Command field is returned for any instruction.
	ClassifyFunc func(ctx context.Context, instruction string) (ai.Command, error)

	// Command is the default response when ClassifyFunc is nil.
	Command ai.Command

	callCount int
}

// NewMockClassifier creates a mock classifier with default behavior.
// Note: Returns concrete type to allow test assertions on call counts.
func NewMockClassifier() *MockClassifier {
	return &MockClassifier{}
}

// Classify returns the configured command or delegates to ClassifyFunc.
// The empty-instruction rule of the real classifier is preserved.
func (m *MockClassifier) Classify(ctx context.Context, instruction string) (ai.Command, error) {
	m.callCount++

	if strings.TrimSpace(instruction) == "" {
		return ai.Command{}, ai.ErrEmptyInstruction
	}

	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(ctx, instruction)
	}

	return m.Command, nil
}

// CallCount returns the number of times Classify was called.
func (m *MockClassifier) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom behavior.
func (m *MockClassifier) Reset() {
	m.callCount = 0
	m.ClassifyFunc = nil
	m.Command = ai.Command{}
}

var _ ai.Classifier = (*MockClassifier)(nil)
