package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/corpfacts/ai"
	"github.com/tmc/langchaingo/llms"
)

// Classifier implements ai.Classifier using OpenAI-compatible chat APIs.
// Classification runs at temperature 0 with JSON mode so the model can only
// pick one of the fixed operations and fill in its payload.
type Classifier struct {
	client llms.Model
	logger *slog.Logger
}

// wireCommand matches the JSON shape the model is instructed to return.
type wireCommand struct {
	Operation string `json:"operation"`
	Text      string `json:"text"`
	Term      string `json:"term"`
	Name      string `json:"name"`
	Limit     int    `json:"limit"`
}

// newClassifier is an internal constructor that returns the concrete type.
func newClassifier(config *ai.Config) (*Classifier, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := newClient(config)
	if err != nil {
		return nil, err
	}

	return &Classifier{
		client: client,
		logger: slog.Default().With("component", "openai-classifier"),
	}, nil
}

// NewClassifier creates a new instruction classifier using the provided
// configuration.
//
// Returns ai.Classifier interface to enforce abstraction.
func NewClassifier(config *ai.Config) (ai.Classifier, error) {
	return newClassifier(config)
}

// Classify maps an instruction to one of the fixed operations with its
// payload.
func (c *Classifier) Classify(ctx context.Context, instruction string) (ai.Command, error) {
	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		return ai.Command{}, ai.ErrEmptyInstruction
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildClassificationPrompt()),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(instruction),
			},
		},
	}

	var wire wireCommand
	var lastErr error
	for attempt := 0; attempt < maxParseAttempts; attempt++ {
		response, err := c.client.GenerateContent(ctx, content,
			llms.WithTemperature(0.0),
			llms.WithJSONMode(),
		)
		if err != nil {
			c.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return ai.Command{}, err
		}

		if len(response.Choices) < 1 {
			return ai.Command{}, fmt.Errorf("%w: model returned no choices", ai.ErrUnknownOperation)
		}

		raw := repairJSON(response.Choices[0].Content)
		if err := json.Unmarshal([]byte(raw), &wire); err != nil {
			lastErr = err
			c.logger.Warn("error parsing classification response",
				"attempt", attempt+1,
				"response", raw,
				"err", err)
			continue
		}

		lastErr = nil
		break
	}

	if lastErr != nil {
		c.logger.Error("failed to parse classification response after retries", "err", lastErr)
		return ai.Command{}, lastErr
	}

	op := ai.Operation(wire.Operation)
	if !op.Valid() {
		return ai.Command{}, fmt.Errorf("%w: %q", ai.ErrUnknownOperation, wire.Operation)
	}

	command := ai.Command{
		Op:    op,
		Text:  strings.TrimSpace(wire.Text),
		Term:  strings.TrimSpace(wire.Term),
		Name:  strings.TrimSpace(wire.Name),
		Limit: wire.Limit,
	}

	c.logger.Debug("classified instruction", "operation", string(op))
	return command, nil
}
