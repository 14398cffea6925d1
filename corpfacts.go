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


// Package corpfacts extracts structured company facts from free text and
// manages them in a relational store.
//
// The System type wires the pieces together: an extraction pipeline driven
// by an OpenAI-compatible model, a company repository over PostgreSQL or
// SQLite, and an agent that routes natural-language instructions to a fixed
// set of operations.
package corpfacts

import (
	"context"
	"iter"
	"log/slog"

	"github.com/poiesic/corpfacts/agent"
	"github.com/poiesic/corpfacts/ai"
	"github.com/poiesic/corpfacts/ai/openai"
	"github.com/poiesic/corpfacts/extract"
	"github.com/poiesic/corpfacts/storage"
	"github.com/poiesic/corpfacts/storage/sqldb"
)

// System bundles the extraction pipeline, the company store and the agent.
type System struct {
	repository storage.CompanyRepository
	provider   ai.Provider
	pipeline   *extract.Pipeline
	agent      *agent.Agent
	logger     *slog.Logger
}

// NewSystem builds a System from configuration: it connects to the database,
// creates the AI provider and wires the pipeline and agent.
func NewSystem(ctx context.Context, cfg *Config) (*System, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	repository, err := openRepository(ctx, cfg)
	if err != nil {
		return nil, err
	}

	aiConfig := ai.NewConfig(
		ai.WithAPIKey(cfg.OpenAIAPIKey),
		ai.WithBaseURL(cfg.OpenAIBaseURL),
		ai.WithModel(cfg.ModelName),
		ai.WithTemperature(cfg.Temperature),
		ai.WithMaxTokens(cfg.MaxTokens),
	)
	provider, err := openai.NewProvider(aiConfig)
	if err != nil {
		repository.Close()
		return nil, err
	}

	segmenter := extract.NewSegmenter(
		extract.WithChunkSize(cfg.ChunkSize),
		extract.WithChunkOverlap(cfg.ChunkOverlap),
	)
	pipeline, err := extract.NewPipeline(provider.RecordExtractor(),
		extract.WithSegmenter(segmenter))
	if err != nil {
		provider.Close()
		repository.Close()
		return nil, err
	}

	a, err := agent.New(provider.Classifier(), pipeline, repository)
	if err != nil {
		pipeline.Release()
		provider.Close()
		repository.Close()
		return nil, err
	}

	return &System{
		repository: repository,
		provider:   provider,
		pipeline:   pipeline,
		agent:      a,
		logger:     slog.Default(),
	}, nil
}

// NewSystemWith builds a System over caller-supplied backends. Used mainly
// in tests with mock providers and in-memory stores; the System takes
// ownership and closes both.
func NewSystemWith(repository storage.CompanyRepository, provider ai.Provider, opts ...extract.Option) (*System, error) {
	pipeline, err := extract.NewPipeline(provider.RecordExtractor(), opts...)
	if err != nil {
		return nil, err
	}

	a, err := agent.New(provider.Classifier(), pipeline, repository)
	if err != nil {
		pipeline.Release()
		return nil, err
	}

	return &System{
		repository: repository,
		provider:   provider,
		pipeline:   pipeline,
		agent:      a,
		logger:     slog.Default(),
	}, nil
}

func openRepository(ctx context.Context, cfg *Config) (storage.CompanyRepository, error) {
	if cfg.DBDriver == "sqlite3" {
		return sqldb.OpenSQLite(ctx, cfg.DBName)
	}
	return sqldb.OpenPostgres(ctx, sqldb.PostgresConfig{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		Database: cfg.DBName,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
	})
}

// ProcessText extracts company records from text and stores them, returning
// a human-readable summary.
func (s *System) ProcessText(ctx context.Context, text string) string {
	return s.agent.ProcessText(ctx, text)
}

// BatchProcess runs ProcessText over several texts, returning one summary
// per text in input order.
func (s *System) BatchProcess(ctx context.Context, texts []string) []string {
	summaries := make([]string, len(texts))
	for i, text := range texts {
		summaries[i] = s.ProcessText(ctx, text)
	}
	return summaries
}

// Run routes a natural-language instruction through the agent.
func (s *System) Run(ctx context.Context, instruction string) string {
	return s.agent.Run(ctx, instruction)
}

// Stream yields per-chunk extraction results for the text, lazily.
func (s *System) Stream(ctx context.Context, text string) iter.Seq[extract.ChunkResult] {
	return s.pipeline.Stream(ctx, text)
}

// Repository returns the company repository.
func (s *System) Repository() storage.CompanyRepository {
	return s.repository
}

// Pipeline returns the extraction pipeline.
func (s *System) Pipeline() *extract.Pipeline {
	return s.pipeline
}

// Agent returns the instruction agent.
func (s *System) Agent() *agent.Agent {
	return s.agent
}

// Close releases the system's resources.
func (s *System) Close() error {
	s.pipeline.Release()

	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}

	if err := s.repository.Close(); err != nil {
		s.logger.Error("error closing repository", "err", err)
		return err
	}
	return nil
}
