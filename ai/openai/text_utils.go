package openai

import (
	"regexp"
	"strings"
)

var (
	whitespaceRuns = regexp.MustCompile(`\s+`)
	// Characters outside this allow-list are stripped before the text reaches
	// the prompt, to keep stray markup out of the model call.
	disallowedChars = regexp.MustCompile(`[^\w\s.,\-:;()]`)
)

// cleanText collapses whitespace runs to single spaces and removes characters
// outside the conservative allow-list.
func cleanText(s string) string {
	s = whitespaceRuns.ReplaceAllString(strings.TrimSpace(s), " ")
	return disallowedChars.ReplaceAllString(s, "")
}
