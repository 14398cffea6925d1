package storage

import (
	"context"

	"github.com/poiesic/corpfacts/core"
)

// BatchResult summarizes a batch persistence operation.
type BatchResult struct {
	// Succeeded is the number of records persisted.
	Succeeded int
	// Failed is the number of records rejected.
	Failed int
	// IDs holds the identifiers of the persisted companies, in input order.
	IDs []int64
}

// Stats summarizes the contents of the store.
type Stats struct {
	// TotalCompanies is the number of companies stored.
	TotalCompanies int
	// TotalFounders is the number of founder entries across all companies.
	TotalFounders int
	// WithDates is the number of companies with a known founding date.
	WithDates int
	// WithoutDates is the number of companies without one.
	WithoutDates int
}

// CompanyRepository provides operations for persisting and querying company
// records. Implementations must be safe for concurrent use.
type CompanyRepository interface {
	// Upsert persists a record, matching existing companies by
	// case-insensitive name. A match is updated in place; otherwise a new
	// row is inserted. Returns the company's identifier.
	Upsert(ctx context.Context, record core.Record) (int64, error)

	// UpsertBatch persists each record in the batch independently.
	// A record that fails validation or persistence is counted as failed
	// and does not affect the others.
	UpsertBatch(ctx context.Context, batch *core.Batch) (*BatchResult, error)

	// FindByID retrieves a single company by identifier.
	// Returns ErrNotFound if no such company exists.
	FindByID(ctx context.Context, id int64) (*core.Company, error)

	// FindByName retrieves a single company by case-insensitive exact name.
	// Returns ErrNotFound if no such company exists.
	FindByName(ctx context.Context, name string) (*core.Company, error)

	// Search finds companies whose name or founder list contains the term,
	// case-insensitively. Results are ordered by identifier.
	Search(ctx context.Context, term string) ([]*core.Company, error)

	// List returns companies ordered by identifier. A limit <= 0 means no
	// limit; offset skips that many companies.
	List(ctx context.Context, limit, offset int) ([]*core.Company, error)

	// Stats reports aggregate counts for the store.
	Stats(ctx context.Context) (*Stats, error)

	// Delete removes a company by identifier. Reports whether a row was
	// removed; a missing id is not an error.
	Delete(ctx context.Context, id int64) (bool, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
