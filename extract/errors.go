package extract

import "errors"

var (
	// ErrExtractorRequired is returned when a record extractor is not provided.
	ErrExtractorRequired = errors.New("record extractor required")
)
