// Package sqldb implements storage.CompanyRepository over database/sql.
//
// Two dialects are supported: PostgreSQL (via the pgx stdlib driver) for
// production use and SQLite (via the embedded ncruces driver, no cgo) for
// local use and tests. The SQL is shared, written with ? placeholders and
// rebound per dialect.
package sqldb
