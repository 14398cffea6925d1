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


package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/corpfacts/ai"
	"github.com/poiesic/corpfacts/extract"
	"github.com/poiesic/corpfacts/storage"
)

// DefaultListLimit bounds list results when the instruction names no limit.
const DefaultListLimit = 10

// Agent routes free-form instructions to one of the fixed operations.
// Classification is delegated to the model; execution and formatting happen
// here, so the model never selects arbitrary actions. Every entry point
// returns a human-readable string, never an error: failures are rendered as
// error text at this boundary.
type Agent struct {
	classifier ai.Classifier
	pipeline   *extract.Pipeline
	repository storage.CompanyRepository
	listLimit  int
	logger     *slog.Logger
}

// Option configures an Agent.
type Option func(*Agent) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Agent) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
		return nil
	}
}

// WithListLimit sets the default result limit for list operations.
func WithListLimit(limit int) Option {
	return func(a *Agent) error {
		if limit > 0 {
			a.listLimit = limit
		}
		return nil
	}
}

// New creates an Agent over the given classifier, pipeline and repository.
func New(classifier ai.Classifier, pipeline *extract.Pipeline, repository storage.CompanyRepository, opts ...Option) (*Agent, error) {
	if classifier == nil {
		return nil, ErrClassifierRequired
	}
	if pipeline == nil {
		return nil, ErrPipelineRequired
	}
	if repository == nil {
		return nil, ErrRepositoryRequired
	}

	a := &Agent{
		classifier: classifier,
		pipeline:   pipeline,
		repository: repository,
		listLimit:  DefaultListLimit,
		logger:     slog.Default().With("component", "agent"),
	}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Run classifies the instruction and executes the selected operation.
func (a *Agent) Run(ctx context.Context, instruction string) string {
	command, err := a.classifier.Classify(ctx, instruction)
	if err != nil {
		a.logger.Warn("classification failed", "err", err)
		return fmt.Sprintf("Error understanding request: %v", err)
	}

	a.logger.Debug("instruction classified", "op", command.Op)
	return a.Execute(ctx, command)
}

// Execute runs an already-classified command.
func (a *Agent) Execute(ctx context.Context, command ai.Command) string {
	switch command.Op {
	case ai.OpExtract:
		return a.extractOnly(ctx, command.Text)
	case ai.OpStore:
		return a.extractAndStore(ctx, command.Text)
	case ai.OpSearch:
		return a.search(ctx, command.Term)
	case ai.OpDetails:
		return a.details(ctx, command.Name)
	case ai.OpStats:
		return a.stats(ctx)
	case ai.OpList:
		return a.list(ctx, command.Limit)
	default:
		return fmt.Sprintf("Error understanding request: unknown operation %q", command.Op)
	}
}

// ProcessText extracts company records from text and stores them, without
// going through classification.
func (a *Agent) ProcessText(ctx context.Context, text string) string {
	batch, err := a.pipeline.ExtractFromText(ctx, text)
	if err != nil {
		return fmt.Sprintf("Error processing text: %v", err)
	}
	if batch.Count == 0 {
		return "No company information found in the provided text."
	}

	result, err := a.repository.UpsertBatch(ctx, batch)
	if err != nil {
		return fmt.Sprintf("Error processing text: %v", err)
	}

	return fmt.Sprintf("Successfully processed text and found %d companies. Stored %d companies in database. Failed: %d",
		batch.Count, result.Succeeded, result.Failed)
}

func (a *Agent) extractOnly(ctx context.Context, text string) string {
	batch, err := a.pipeline.ExtractFromText(ctx, text)
	if err != nil {
		return fmt.Sprintf("Error extracting company data: %v", err)
	}

	return fmt.Sprintf("Successfully extracted %d companies:\n%s", batch.Count, formatBatch(batch))
}

func (a *Agent) extractAndStore(ctx context.Context, text string) string {
	batch, err := a.pipeline.ExtractFromText(ctx, text)
	if err != nil {
		return fmt.Sprintf("Error storing company data: %v", err)
	}
	if batch.Count == 0 {
		return "No company data found in the provided text."
	}

	result, err := a.repository.UpsertBatch(ctx, batch)
	if err != nil {
		return fmt.Sprintf("Error storing company data: %v", err)
	}

	return fmt.Sprintf("Successfully stored %d companies. Failed: %d. Company IDs: %v",
		result.Succeeded, result.Failed, result.IDs)
}

func (a *Agent) search(ctx context.Context, term string) string {
	companies, err := a.repository.Search(ctx, term)
	if err != nil {
		return fmt.Sprintf("Error searching companies: %v", err)
	}
	if len(companies) == 0 {
		return fmt.Sprintf("No companies found matching '%s'", term)
	}

	return fmt.Sprintf("Found %d companies matching '%s':\n%s",
		len(companies), term, formatCompanies(companies))
}

func (a *Agent) details(ctx context.Context, name string) string {
	company, err := a.repository.FindByName(ctx, name)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Sprintf("Company '%s' not found in database.", name)
	}
	if err != nil {
		return fmt.Sprintf("Error getting company details: %v", err)
	}

	return formatDetails(company)
}

func (a *Agent) stats(ctx context.Context) string {
	stats, err := a.repository.Stats(ctx)
	if err != nil {
		return fmt.Sprintf("Error getting database statistics: %v", err)
	}

	return formatStats(stats)
}

func (a *Agent) list(ctx context.Context, limit int) string {
	if limit <= 0 {
		limit = a.listLimit
	}

	companies, err := a.repository.List(ctx, limit, 0)
	if err != nil {
		return fmt.Sprintf("Error listing companies: %v", err)
	}
	if len(companies) == 0 {
		return "No companies found in database."
	}

	return fmt.Sprintf("Listing %d companies:\n%s", len(companies), formatCompanies(companies))
}
