// Package openai implements the ai service interfaces against
// OpenAI-compatible chat APIs.
//
// Both services share one client configuration. The record extractor prompts
// for a JSON array of company facts; the classifier prompts for a JSON object
// selecting one of the fixed operations. Responses pass through a small
// repair step (fence stripping, trailing commas) before parsing, and parsing
// is retried a bounded number of times for malformed output.
package openai
