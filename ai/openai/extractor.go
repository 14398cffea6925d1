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


package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/poiesic/corpfacts/ai"
	"github.com/poiesic/corpfacts/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// maxParseAttempts bounds the retry loop for malformed model output.
const maxParseAttempts = 3

// RecordExtractor implements ai.RecordExtractor using OpenAI-compatible chat
// APIs.
type RecordExtractor struct {
	client      llms.Model
	temperature float64
	maxTokens   int
	logger      *slog.Logger
}

// wireRecord matches the JSON shape the model is instructed to return.
type wireRecord struct {
	CompanyName  string   `json:"company_name"`
	FoundingDate *string  `json:"founding_date"`
	Founders     []string `json:"founders"`
}

// newRecordExtractor is an internal constructor that returns the concrete
// type. Used by Provider to manage the instance.
func newRecordExtractor(config *ai.Config) (*RecordExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := newClient(config)
	if err != nil {
		return nil, err
	}

	return &RecordExtractor{
		client:      client,
		temperature: config.Temperature,
		maxTokens:   config.MaxTokens,
		logger:      slog.Default().With("component", "openai-extractor"),
	}, nil
}

// NewRecordExtractor creates a new record extractor using the provided
// configuration.
//
// Returns ai.RecordExtractor interface to enforce abstraction.
func NewRecordExtractor(config *ai.Config) (ai.RecordExtractor, error) {
	return newRecordExtractor(config)
}

// newClient creates an OpenAI-compatible chat client from the shared config.
func newClient(config *ai.Config) (llms.Model, error) {
	opts := []openai.Option{
		openai.WithToken(config.APIKey),
		openai.WithModel(config.Model),
	}
	if config.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(config.BaseURL))
	}
	return openai.New(opts...)
}

// ExtractRecords extracts company records from a chunk of text using an LLM.
// The chunk is cleaned before the call; an empty cleaned chunk makes no model
// call at all. Elements of the response that fail validation are skipped.
func (e *RecordExtractor) ExtractRecords(ctx context.Context, text string) ([]core.Record, error) {
	text = cleanText(text)
	if text == "" {
		return []core.Record{}, nil
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(extractionPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(text),
			},
		},
	}

	// Try up to maxParseAttempts times in case of malformed JSON.
	var wire []wireRecord
	var lastErr error
	for attempt := 0; attempt < maxParseAttempts; attempt++ {
		response, err := e.client.GenerateContent(ctx, content,
			llms.WithTemperature(e.temperature),
			llms.WithMaxTokens(e.maxTokens),
		)
		if err != nil {
			e.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			e.logger.Debug("no choices returned from model")
			return []core.Record{}, nil
		}

		raw := repairJSON(response.Choices[0].Content)
		if err := json.Unmarshal([]byte(raw), &wire); err != nil {
			lastErr = err
			e.logger.Warn("error parsing extraction response",
				"attempt", attempt+1,
				"response", raw,
				"err", err)
			continue
		}

		lastErr = nil
		break
	}

	if lastErr != nil {
		e.logger.Error("failed to parse extraction response after retries", "err", lastErr)
		return nil, lastErr
	}

	records := make([]core.Record, 0, len(wire))
	for _, w := range wire {
		record := core.Record{
			Name:     strings.TrimSpace(w.CompanyName),
			Founders: w.Founders,
		}
		if record.Founders == nil {
			record.Founders = []string{}
		}
		if w.FoundingDate != nil {
			if date, ok := core.ParseFoundingDate(*w.FoundingDate); ok {
				record.FoundingDate = date
			}
		}

		if err := core.ValidateRecord(&record); err != nil {
			e.logger.Warn("skipping invalid record", "name", w.CompanyName, "err", err)
			continue
		}
		records = append(records, record)
	}

	e.logger.Debug("extracted company records",
		"returned", len(wire),
		"valid", len(records))

	return records, nil
}
