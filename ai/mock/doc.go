// Package mock provides test double implementations of the AI service
// interfaces.
//
// This package contains mock implementations of ai.RecordExtractor,
// ai.Classifier, and ai.Provider for use in unit tests. The mocks allow tests
// to run without external AI service dependencies and enable controlled,
// deterministic behavior.
//
// # Usage in Tests
//
//	provider := mock.NewMockProvider()
//	provider.MockExtractor.ExtractRecordsFunc = func(ctx context.Context, text string) ([]core.Record, error) {
//	    return []core.Record{{Name: "Apple"}}, nil
//	}
//
//	// Check call counts
//	count := provider.MockExtractor.CallCount()
package mock
