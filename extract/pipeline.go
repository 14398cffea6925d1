// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package extract

import (
	"context"
	"iter"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/corpfacts/ai"
	"github.com/poiesic/corpfacts/core"
)

// Pipeline turns raw text into validated company records: segment, extract
// per chunk, aggregate. A failing chunk contributes zero records and never
// aborts the chunks after it.
type Pipeline struct {
	extractor ai.RecordExtractor
	segmenter *Segmenter
	pool      *ants.Pool
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithSegmenter sets a custom segmenter.
// Default is NewSegmenter() with the package defaults.
func WithSegmenter(segmenter *Segmenter) Option {
	return func(p *Pipeline) error {
		if segmenter != nil {
			p.segmenter = segmenter
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithPoolSize sets the worker pool size for BatchExtract.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// NewPipeline creates a new extraction pipeline.
func NewPipeline(extractor ai.RecordExtractor, opts ...Option) (*Pipeline, error) {
	if extractor == nil {
		return nil, ErrExtractorRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		extractor: extractor,
		segmenter: NewSegmenter(),
		pool:      pool,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// ExtractFromChunk extracts records from a single chunk of text.
func (p *Pipeline) ExtractFromChunk(ctx context.Context, chunk string) ([]core.Record, error) {
	return p.extractor.ExtractRecords(ctx, chunk)
}

// ExtractFromText segments the text and extracts records chunk by chunk,
// concatenating results in chunk order. A chunk whose extraction fails
// contributes zero records; the remaining chunks are still processed.
// The returned batch is non-nil even when the context is cancelled mid-run.
func (p *Pipeline) ExtractFromText(ctx context.Context, text string) (*core.Batch, error) {
	batch := &core.Batch{}

	for _, chunk := range p.segmenter.Segment(text) {
		if err := ctx.Err(); err != nil {
			return batch, err
		}

		records, err := p.ExtractFromChunk(ctx, chunk)
		if err != nil {
			p.logger.Warn("chunk extraction failed", "chunk_len", len(chunk), "err", err)
			continue
		}
		batch.Add(records...)
	}

	return batch, nil
}

// ChunkResult is one chunk's extraction outcome in a streaming run.
type ChunkResult struct {
	Chunk   string
	Records []core.Record
	Count   int
	Err     error
}

// Stream yields per-chunk results lazily, in chunk order. The model call for
// a chunk happens only when the consumer advances to it; the sequence is
// finite and cannot be restarted once abandoned. A chunk's failure is
// reported in its result and does not stop the sequence.
func (p *Pipeline) Stream(ctx context.Context, text string) iter.Seq[ChunkResult] {
	chunks := p.segmenter.Segment(text)

	return func(yield func(ChunkResult) bool) {
		for _, chunk := range chunks {
			if ctx.Err() != nil {
				return
			}

			result := ChunkResult{Chunk: chunk, Records: []core.Record{}}
			records, err := p.ExtractFromChunk(ctx, chunk)
			if err != nil {
				p.logger.Warn("chunk extraction failed", "chunk_len", len(chunk), "err", err)
				result.Err = err
			} else {
				result.Records = records
				result.Count = len(records)
			}

			if !yield(result) {
				return
			}
		}
	}
}

// BatchExtract processes several texts, producing one batch per text.
// Texts run on the worker pool with no shared state between them; one text's
// failure does not affect the others, and the result order matches the input
// order.
func (p *Pipeline) BatchExtract(ctx context.Context, texts []string) []*core.Batch {
	results := make([]*core.Batch, len(texts))

	var wg sync.WaitGroup
	for i, text := range texts {
		wg.Add(1)
		run := func() {
			defer wg.Done()
			batch, err := p.ExtractFromText(ctx, text)
			if err != nil {
				p.logger.Warn("batch text aborted", "index", i, "err", err)
			}
			if batch == nil {
				batch = &core.Batch{}
			}
			results[i] = batch
		}
		if err := p.pool.Submit(run); err != nil {
			// Pool rejected the task (released or saturated); run inline so
			// the text is still processed.
			run()
		}
	}
	wg.Wait()

	return results
}

// Release frees the worker pool. The pipeline should not be used after
// calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
