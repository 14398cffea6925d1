// Package ai defines the interfaces and configuration for the AI services
// used by the system: company record extraction from text and classification
// of free-form instructions into the fixed set of agent operations.
//
// Concrete implementations live in subpackages:
//
//   - ai/openai: OpenAI-compatible chat API implementations
//   - ai/mock: test doubles for use without external services
package ai
