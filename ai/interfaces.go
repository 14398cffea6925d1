package ai

import (
	"context"

	"github.com/poiesic/corpfacts/core"
)

// RecordExtractor extracts structured company records from a chunk of text.
// Implementations must be thread-safe for concurrent use.
type RecordExtractor interface {
	// ExtractRecords analyzes text and returns the company records it
	// mentions. Returns an empty slice if no company is found.
	// Individual malformed records are skipped, not fatal; only a failed
	// model call or an unparseable response returns an error.
	ExtractRecords(ctx context.Context, text string) ([]core.Record, error)
}

// Classifier maps a free-form instruction to one of the fixed operations.
// The model's role is limited to choosing a known operation and extracting
// its payload; it never selects arbitrary actions.
type Classifier interface {
	// Classify returns the command the instruction asks for.
	// Returns an error if the instruction cannot be mapped to a known
	// operation.
	Classify(ctx context.Context, instruction string) (Command, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages RecordExtractor and Classifier
// instances, ensuring they share configuration appropriately.
type Provider interface {
	// RecordExtractor returns the company record extraction service.
	// The returned RecordExtractor is safe for concurrent use.
	RecordExtractor() RecordExtractor

	// Classifier returns the instruction classification service.
	// The returned Classifier is safe for concurrent use.
	Classifier() Classifier

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
