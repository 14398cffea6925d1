package corpfacts

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/corpfacts/ai"
	"github.com/poiesic/corpfacts/ai/mock"
	"github.com/poiesic/corpfacts/core"
	"github.com/poiesic/corpfacts/storage/sqldb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSystem(t *testing.T) (*System, *mock.MockProvider) {
	t.Helper()

	repository, err := sqldb.NewMemoryStore(context.Background())
	require.NoError(t, err)

	provider := mock.NewMockProvider()
	system, err := NewSystemWith(repository, provider)
	require.NoError(t, err)
	t.Cleanup(func() { system.Close() })

	return system, provider
}

func TestProcessTextStoresCompanies(t *testing.T) {
	system, provider := newTestSystem(t)
	ctx := context.Background()

	provider.MockExtractor.Records = []core.Record{
		{
			Name:         "Apple",
			FoundingDate: time.Date(1976, 1, 1, 0, 0, 0, 0, time.UTC),
			Founders:     []string{"Steve Jobs", "Steve Wozniak"},
		},
	}

	out := system.ProcessText(ctx, "Apple was founded in 1976 by Steve Jobs and Steve Wozniak.")
	assert.Contains(t, out, "found 1 companies")
	assert.Contains(t, out, "Stored 1 companies")

	company, err := system.Repository().FindByName(ctx, "apple")
	require.NoError(t, err)
	assert.Equal(t, "Apple", company.Name)
	require.NotNil(t, company.FoundingDate)
	assert.Equal(t, 1976, company.FoundingDate.Year())
	assert.Equal(t, []string{"Steve Jobs", "Steve Wozniak"}, company.Founders)
}

func TestRunRoutesThroughAgent(t *testing.T) {
	system, provider := newTestSystem(t)
	ctx := context.Background()

	_, err := system.Repository().Upsert(ctx, core.Record{Name: "Globex"})
	require.NoError(t, err)

	provider.MockClassifier.Command = ai.Command{Op: ai.OpSearch, Term: "globex"}
	out := system.Run(ctx, "search for globex")

	assert.Contains(t, out, "Found 1 companies matching 'globex'")
	assert.Contains(t, out, "Globex")
}

func TestBatchProcess(t *testing.T) {
	system, provider := newTestSystem(t)
	ctx := context.Background()

	provider.MockExtractor.Records = []core.Record{{Name: "Initech"}}

	summaries := system.BatchProcess(ctx, []string{"text one", "text two"})

	require.Len(t, summaries, 2)
	for _, summary := range summaries {
		assert.Contains(t, summary, "found 1 companies")
	}
}

func TestStreamYieldsChunkResults(t *testing.T) {
	system, provider := newTestSystem(t)
	ctx := context.Background()

	provider.MockExtractor.Records = []core.Record{{Name: "Hooli"}}

	var total int
	for result := range system.Stream(ctx, "first chunk\n\nsecond chunk") {
		assert.NoError(t, result.Err)
		total += result.Count
	}
	assert.Equal(t, 2, total)
}

func TestNewSystemRejectsInvalidConfig(t *testing.T) {
	_, err := NewSystem(context.Background(), &Config{
		DBDriver:     "postgres",
		DBName:       "company_data",
		DBUser:       "postgres",
		ChunkSize:    1000,
		ChunkOverlap: 200,
	})
	assert.ErrorIs(t, err, ErrAPIKeyRequired)
}
