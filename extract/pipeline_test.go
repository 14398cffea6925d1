package extract

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/poiesic/corpfacts/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRecordExtractor implements ai.RecordExtractor for testing
type testRecordExtractor struct {
	mu          sync.Mutex
	responses   map[string][]core.Record // map from chunk text to records
	errorOnText string
	shouldError bool
	calls       []string
}

func (m *testRecordExtractor) ExtractRecords(ctx context.Context, text string) ([]core.Record, error) {
	m.mu.Lock()
	m.calls = append(m.calls, text)
	m.mu.Unlock()

	if m.shouldError || text == m.errorOnText {
		return nil, errors.New("extraction error")
	}
	if records, ok := m.responses[text]; ok {
		return records, nil
	}
	return []core.Record{}, nil
}

func (m *testRecordExtractor) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func TestNewPipelineRequiresExtractor(t *testing.T) {
	p, err := NewPipeline(nil)

	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrExtractorRequired)
}

func TestExtractFromTextAggregatesChunks(t *testing.T) {
	extractor := &testRecordExtractor{
		responses: map[string][]core.Record{
			"Acme was founded in 1990.": {{Name: "Acme"}},
			"Globex was founded by Hank Scorpio.": {
				{Name: "Globex", Founders: []string{"Hank Scorpio"}},
			},
		},
	}
	p, err := NewPipeline(extractor)
	require.NoError(t, err)
	defer p.Release()

	batch, err := p.ExtractFromText(context.Background(),
		"Acme was founded in 1990.\n\nGlobex was founded by Hank Scorpio.")
	require.NoError(t, err)

	assert.Equal(t, 2, batch.Count)
	assert.Equal(t, "Acme", batch.Records[0].Name)
	assert.Equal(t, "Globex", batch.Records[1].Name)
}

func TestExtractFromTextSkipsFailingChunk(t *testing.T) {
	extractor := &testRecordExtractor{
		responses: map[string][]core.Record{
			"good chunk": {{Name: "Initech"}},
		},
		errorOnText: "bad chunk",
	}
	p, err := NewPipeline(extractor)
	require.NoError(t, err)
	defer p.Release()

	batch, err := p.ExtractFromText(context.Background(), "bad chunk\n\ngood chunk")
	require.NoError(t, err)

	assert.Equal(t, 1, batch.Count)
	assert.Equal(t, "Initech", batch.Records[0].Name)
}

func TestExtractFromTextEmptyInput(t *testing.T) {
	extractor := &testRecordExtractor{}
	p, err := NewPipeline(extractor)
	require.NoError(t, err)
	defer p.Release()

	batch, err := p.ExtractFromText(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, 0, batch.Count)
	assert.Equal(t, 0, extractor.callCount())
}

func TestExtractFromTextCancelledContext(t *testing.T) {
	extractor := &testRecordExtractor{}
	p, err := NewPipeline(extractor)
	require.NoError(t, err)
	defer p.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	batch, err := p.ExtractFromText(ctx, "some text")

	require.NotNil(t, batch)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, extractor.callCount())
}

func TestStreamYieldsInChunkOrder(t *testing.T) {
	extractor := &testRecordExtractor{
		responses: map[string][]core.Record{
			"alpha": {{Name: "Alpha Corp"}},
			"gamma": {{Name: "Gamma LLC"}},
		},
		errorOnText: "beta",
	}
	p, err := NewPipeline(extractor)
	require.NoError(t, err)
	defer p.Release()

	var results []ChunkResult
	for result := range p.Stream(context.Background(), "alpha\n\nbeta\n\ngamma") {
		results = append(results, result)
	}

	require.Len(t, results, 3)
	assert.Equal(t, "alpha", results[0].Chunk)
	assert.Equal(t, 1, results[0].Count)
	assert.Equal(t, "Alpha Corp", results[0].Records[0].Name)
	assert.Error(t, results[1].Err)
	assert.Equal(t, 0, results[1].Count)
	assert.Equal(t, "Gamma LLC", results[2].Records[0].Name)
}

func TestStreamIsLazy(t *testing.T) {
	extractor := &testRecordExtractor{}
	p, err := NewPipeline(extractor)
	require.NoError(t, err)
	defer p.Release()

	seq := p.Stream(context.Background(), "one\n\ntwo\n\nthree")
	assert.Equal(t, 0, extractor.callCount())

	// Stop after the first chunk; the later chunks are never extracted.
	for range seq {
		break
	}
	assert.Equal(t, 1, extractor.callCount())
}

func TestBatchExtractPreservesOrder(t *testing.T) {
	extractor := &testRecordExtractor{
		responses: map[string][]core.Record{
			"text one":   {{Name: "One Inc"}},
			"text two":   {{Name: "Two Inc"}, {Name: "Two Sub"}},
			"text three": {{Name: "Three Inc"}},
		},
	}
	p, err := NewPipeline(extractor, WithPoolSize(2))
	require.NoError(t, err)
	defer p.Release()

	batches := p.BatchExtract(context.Background(), []string{"text one", "text two", "text three"})

	require.Len(t, batches, 3)
	assert.Equal(t, 1, batches[0].Count)
	assert.Equal(t, "One Inc", batches[0].Records[0].Name)
	assert.Equal(t, 2, batches[1].Count)
	assert.Equal(t, 1, batches[2].Count)
}

func TestBatchExtractIsolatesFailures(t *testing.T) {
	extractor := &testRecordExtractor{
		responses: map[string][]core.Record{
			"fine": {{Name: "Fine Co"}},
		},
		errorOnText: "broken",
	}
	p, err := NewPipeline(extractor)
	require.NoError(t, err)
	defer p.Release()

	batches := p.BatchExtract(context.Background(), []string{"broken", "fine"})

	require.Len(t, batches, 2)
	assert.Equal(t, 0, batches[0].Count)
	assert.Equal(t, 1, batches[1].Count)
}

func TestBatchExtractEmptyInput(t *testing.T) {
	p, err := NewPipeline(&testRecordExtractor{})
	require.NoError(t, err)
	defer p.Release()

	assert.Empty(t, p.BatchExtract(context.Background(), nil))
}

func TestPipelineWithCustomSegmenter(t *testing.T) {
	extractor := &testRecordExtractor{}
	segmenter := NewSegmenter(WithLongThreshold(50), WithChunkSize(40), WithChunkOverlap(0))
	p, err := NewPipeline(extractor, WithSegmenter(segmenter))
	require.NoError(t, err)
	defer p.Release()

	long := strings.Repeat("A sentence here. ", 20)
	_, err = p.ExtractFromText(context.Background(), long)
	require.NoError(t, err)

	assert.Greater(t, extractor.callCount(), 1)
}
