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


package sqldb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/corpfacts/core"
	"github.com/poiesic/corpfacts/storage"
)

// Dialect identifies the SQL flavor a Store speaks.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite3"
	DialectPostgres Dialect = "postgres"
)

// Store is a storage.CompanyRepository backed by database/sql.
// Queries are written with ? placeholders and rebound for the dialect.
type Store struct {
	db      *sql.DB
	dialect Dialect
	logger  *slog.Logger
}

func newStore(db *sql.DB, dialect Dialect) *Store {
	return &Store{
		db:      db,
		dialect: dialect,
		logger:  slog.Default().With("component", "sqldb"),
	}
}

// rebind rewrites ? placeholders to the dialect's positional form.
func (s *Store) rebind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Migrate creates the companies table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	schema := sqliteSchema
	if s.dialect == DialectPostgres {
		schema = postgresSchema
	}
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

// Upsert persists a record, matching existing rows by case-insensitive name.
func (s *Store) Upsert(ctx context.Context, record core.Record) (int64, error) {
	if err := core.ValidateRecord(&record); err != nil {
		return 0, err
	}

	founders, err := json.Marshal(foundersOrEmpty(record.Founders))
	if err != nil {
		return 0, fmt.Errorf("marshal founders: %w", err)
	}

	var foundedAt any
	if record.HasFoundingDate() {
		foundedAt = record.FoundingDate.UTC()
	}

	now := time.Now().UTC()

	var id int64
	err = s.db.QueryRowContext(ctx,
		s.rebind(`SELECT id FROM companies WHERE LOWER(name) = LOWER(?)`),
		record.Name,
	).Scan(&id)

	switch {
	case err == nil:
		_, err = s.db.ExecContext(ctx,
			s.rebind(`UPDATE companies SET name = ?, founded_at = ?, founders = ?, updated_at = ? WHERE id = ?`),
			record.Name, foundedAt, string(founders), now, id,
		)
		if err != nil {
			return 0, fmt.Errorf("update company: %w", err)
		}
		s.logger.Debug("company updated", "id", id, "name", record.Name)
		return id, nil

	case err == sql.ErrNoRows:
		err = s.db.QueryRowContext(ctx,
			s.rebind(`INSERT INTO companies (name, founded_at, founders, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?) RETURNING id`),
			record.Name, foundedAt, string(founders), now, now,
		).Scan(&id)
		if err != nil {
			return 0, fmt.Errorf("insert company: %w", err)
		}
		s.logger.Debug("company inserted", "id", id, "name", record.Name)
		return id, nil

	default:
		return 0, fmt.Errorf("lookup company: %w", err)
	}
}

// UpsertBatch persists each record independently. Failures are counted, not
// propagated, so one bad record does not lose the rest of the batch.
func (s *Store) UpsertBatch(ctx context.Context, batch *core.Batch) (*storage.BatchResult, error) {
	result := &storage.BatchResult{IDs: make([]int64, 0, len(batch.Records))}

	for _, record := range batch.Records {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		id, err := s.Upsert(ctx, record)
		if err != nil {
			s.logger.Warn("record rejected", "name", record.Name, "err", err)
			result.Failed++
			continue
		}
		result.Succeeded++
		result.IDs = append(result.IDs, id)
	}

	return result, nil
}

const companyColumns = `id, name, founded_at, founders, created_at, updated_at`

// FindByID retrieves a company by identifier.
func (s *Store) FindByID(ctx context.Context, id int64) (*core.Company, error) {
	row := s.db.QueryRowContext(ctx,
		s.rebind(`SELECT `+companyColumns+` FROM companies WHERE id = ?`), id)
	return s.scanCompany(row)
}

// FindByName retrieves a company by case-insensitive exact name.
func (s *Store) FindByName(ctx context.Context, name string) (*core.Company, error) {
	row := s.db.QueryRowContext(ctx,
		s.rebind(`SELECT `+companyColumns+` FROM companies WHERE LOWER(name) = LOWER(?)`), name)
	return s.scanCompany(row)
}

// Search finds companies whose name or founder list contains the term.
// Founder matching runs against the serialized list, so the term may match
// across entry boundaries; names are the primary search target and behave
// as plain substring match.
func (s *Store) Search(ctx context.Context, term string) ([]*core.Company, error) {
	pattern := "%" + strings.ToLower(term) + "%"
	rows, err := s.db.QueryContext(ctx,
		s.rebind(`SELECT `+companyColumns+` FROM companies
			WHERE LOWER(name) LIKE ? OR LOWER(founders) LIKE ?
			ORDER BY id`),
		pattern, pattern,
	)
	if err != nil {
		return nil, fmt.Errorf("search companies: %w", err)
	}
	defer rows.Close()

	return s.collectCompanies(rows)
}

// List returns companies ordered by identifier.
func (s *Store) List(ctx context.Context, limit, offset int) ([]*core.Company, error) {
	if offset < 0 {
		offset = 0
	}

	var (
		rows *sql.Rows
		err  error
	)
	if limit > 0 {
		rows, err = s.db.QueryContext(ctx,
			s.rebind(`SELECT `+companyColumns+` FROM companies ORDER BY id LIMIT ? OFFSET ?`),
			limit, offset,
		)
	} else if s.dialect == DialectPostgres {
		rows, err = s.db.QueryContext(ctx,
			s.rebind(`SELECT `+companyColumns+` FROM companies ORDER BY id OFFSET ?`),
			offset,
		)
	} else {
		// SQLite requires a LIMIT clause before OFFSET; -1 means unbounded.
		rows, err = s.db.QueryContext(ctx,
			`SELECT `+companyColumns+` FROM companies ORDER BY id LIMIT -1 OFFSET ?`,
			offset,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	return s.collectCompanies(rows)
}

// Stats reports aggregate counts for the store.
func (s *Store) Stats(ctx context.Context) (*storage.Stats, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT founded_at, founders FROM companies`)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	stats := &storage.Stats{}
	for rows.Next() {
		var (
			foundedAt sql.NullTime
			founders  string
		)
		if err := rows.Scan(&foundedAt, &founders); err != nil {
			return nil, fmt.Errorf("scan stats row: %w", err)
		}

		stats.TotalCompanies++
		if foundedAt.Valid {
			stats.WithDates++
		} else {
			stats.WithoutDates++
		}

		var names []string
		if err := json.Unmarshal([]byte(founders), &names); err != nil {
			s.logger.Warn("unreadable founders column", "err", err)
			continue
		}
		stats.TotalFounders += len(names)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stats rows: %w", err)
	}

	return stats, nil
}

// Delete removes a company by identifier.
func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		s.rebind(`DELETE FROM companies WHERE id = ?`), id)
	if err != nil {
		return false, fmt.Errorf("delete company: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete company: %w", err)
	}
	if affected > 0 {
		s.logger.Debug("company deleted", "id", id)
	}
	return affected > 0, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanCompany(row rowScanner) (*core.Company, error) {
	var (
		company   core.Company
		foundedAt sql.NullTime
		founders  string
	)
	err := row.Scan(&company.Id, &company.Name, &foundedAt, &founders,
		&company.CreatedAt, &company.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan company: %w", err)
	}

	if foundedAt.Valid {
		t := foundedAt.Time.UTC()
		company.FoundingDate = &t
	}

	company.Founders = []string{}
	if err := json.Unmarshal([]byte(founders), &company.Founders); err != nil {
		s.logger.Warn("unreadable founders column", "id", company.Id, "err", err)
		company.Founders = []string{}
	}
	company.CreatedAt = company.CreatedAt.UTC()
	company.UpdatedAt = company.UpdatedAt.UTC()

	return &company, nil
}

func (s *Store) collectCompanies(rows *sql.Rows) ([]*core.Company, error) {
	companies := make([]*core.Company, 0)
	for rows.Next() {
		company, err := s.scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, company)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate companies: %w", err)
	}
	return companies, nil
}

func foundersOrEmpty(founders []string) []string {
	if founders == nil {
		return []string{}
	}
	return founders
}
