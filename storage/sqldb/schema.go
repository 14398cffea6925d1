package sqldb

// Per-dialect DDL for the companies table. The two statements describe the
// same logical table; only the id column and timestamp types differ.

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS companies (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	founded_at TIMESTAMP,
	founders TEXT NOT NULL DEFAULT '[]',
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_companies_name ON companies (name);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS companies (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	founded_at TIMESTAMPTZ,
	founders TEXT NOT NULL DEFAULT '[]',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_companies_name ON companies (name);
`
