// Package agent routes natural-language instructions to a fixed set of
// operations over the extraction pipeline and the company store.
//
// The operation set is closed: a model classifies each instruction into one
// of the known operations and extracts its payload, and the agent executes
// that operation directly. The model never invokes code on its own.
//
// All agent entry points return human-readable text. Failures of any kind
// (classification, extraction, storage) are formatted into an error message
// rather than propagated, so callers can print the result unconditionally.
package agent
