package core

import (
	"strings"
	"time"
)

// Record is a single extracted company fact prior to storage.
// Records are ephemeral: they are produced by the extraction pipeline and
// consumed by the persistence layer, carrying no identity across calls.
type Record struct {
	Name         string
	FoundingDate time.Time // zero value means the date is unknown
	Founders     []string
}

// HasFoundingDate reports whether the record carries a founding date.
func (r *Record) HasFoundingDate() bool {
	return !r.FoundingDate.IsZero()
}

// Batch collects the records extracted from one input text.
// Count always equals len(Records); use Add to keep the two consistent.
type Batch struct {
	Records []Record
	Count   int
}

// Add appends records to the batch and recomputes Count.
func (b *Batch) Add(records ...Record) {
	b.Records = append(b.Records, records...)
	b.Count = len(b.Records)
}

// ByName returns the records whose name matches exactly, case-insensitive.
func (b *Batch) ByName(name string) []Record {
	matches := make([]Record, 0)
	for _, record := range b.Records {
		if strings.EqualFold(record.Name, name) {
			matches = append(matches, record)
		}
	}
	return matches
}

// ByFounder returns the records listing a founder whose name contains the
// given text, case-insensitive.
func (b *Batch) ByFounder(founder string) []Record {
	needle := strings.ToLower(founder)
	matches := make([]Record, 0)
	for _, record := range b.Records {
		for _, f := range record.Founders {
			if strings.Contains(strings.ToLower(f), needle) {
				matches = append(matches, record)
				break
			}
		}
	}
	return matches
}

// Company is a stored company row. Rows are created on first sight of a name
// and updated in place thereafter; at most one row exists per
// case-insensitive name.
type Company struct {
	Id           int64
	Name         string
	FoundingDate *time.Time
	Founders     []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
