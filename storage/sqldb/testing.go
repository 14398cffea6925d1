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
	"fmt"

	"github.com/poiesic/corpfacts/storage"
)

// NewMemoryStore creates an in-memory SQLite repository for testing.
// Caller must close the repository when done.
func NewMemoryStore(ctx context.Context) (storage.CompanyRepository, error) {
	db, err := sql.Open("sqlite3", "file::memory:")
	if err != nil {
		return nil, fmt.Errorf("open memory store: %w", err)
	}
	// A second connection would see a different empty in-memory database.
	db.SetMaxOpenConns(1)

	store := newStore(db, DialectSQLite)
	if err := store.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}
