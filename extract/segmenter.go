package extract

import (
	"regexp"
	"strings"

	"github.com/tmc/langchaingo/textsplitter"
)

// Default segmentation parameters.
const (
	// DefaultLongThreshold is the piece length above which a blank-line
	// piece is divided further.
	DefaultLongThreshold = 2000
	// DefaultChunkSize is the maximum chunk size for divided pieces.
	DefaultChunkSize = 1000
	// DefaultChunkOverlap is the overlap between adjacent chunks, so facts
	// split across a boundary are not lost entirely.
	DefaultChunkOverlap = 200
)

// chunkSeparators is the boundary preference order for oversized pieces:
// paragraph break, line break, then sentence-ending punctuation.
var chunkSeparators = []string{"\n\n", "\n", ". ", "! ", "? "}

var blankLines = regexp.MustCompile(`\n\s*\n`)

// Segmenter splits raw text into chunks sized for a single model call.
// Segment is pure and deterministic for a given input and configuration.
type Segmenter struct {
	longThreshold int
	chunkSize     int
	chunkOverlap  int
	splitter      textsplitter.RecursiveCharacter
}

// SegmenterOption configures a Segmenter.
type SegmenterOption func(*Segmenter)

// WithLongThreshold sets the piece length that triggers recursive splitting.
func WithLongThreshold(n int) SegmenterOption {
	return func(s *Segmenter) {
		if n > 0 {
			s.longThreshold = n
		}
	}
}

// WithChunkSize sets the maximum chunk size for divided pieces.
func WithChunkSize(n int) SegmenterOption {
	return func(s *Segmenter) {
		if n > 0 {
			s.chunkSize = n
		}
	}
}

// WithChunkOverlap sets the overlap between adjacent chunks.
func WithChunkOverlap(n int) SegmenterOption {
	return func(s *Segmenter) {
		if n >= 0 {
			s.chunkOverlap = n
		}
	}
}

// NewSegmenter creates a Segmenter with the defaults, applying the provided
// options.
func NewSegmenter(opts ...SegmenterOption) *Segmenter {
	s := &Segmenter{
		longThreshold: DefaultLongThreshold,
		chunkSize:     DefaultChunkSize,
		chunkOverlap:  DefaultChunkOverlap,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.splitter = textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(s.chunkSize),
		textsplitter.WithChunkOverlap(s.chunkOverlap),
		textsplitter.WithSeparators(chunkSeparators),
	)
	return s
}

// Segment splits text on blank-line boundaries, dividing any piece longer
// than the threshold with the recursive splitter. Chunks that are empty
// after trimming are discarded. Output order matches input order.
func (s *Segmenter) Segment(text string) []string {
	pieces := blankLines.Split(text, -1)
	chunks := make([]string, 0, len(pieces))

	for _, piece := range pieces {
		if len(piece) <= s.longThreshold {
			if trimmed := strings.TrimSpace(piece); trimmed != "" {
				chunks = append(chunks, trimmed)
			}
			continue
		}

		parts, err := s.splitter.SplitText(piece)
		if err != nil {
			// The splitter fails only on degenerate configuration; keep the
			// oversized piece rather than dropping its content.
			parts = []string{piece}
		}
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				chunks = append(chunks, trimmed)
			}
		}
	}

	return chunks
}
