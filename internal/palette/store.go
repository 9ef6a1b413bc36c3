/*
 * Copyright (c) 2025 by WrapForge Media, Inc.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package palette

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"wrapproof/internal/domain"
)

// Store is a local sqlite cache of the swatch catalog, so poster and chart
// runs work offline once a catalog has been synced.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the catalog database at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}
	s := &Store{db: db}
	if err := s.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) ensureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS swatches (
		name    TEXT PRIMARY KEY,
		hex     TEXT NOT NULL,
		family  TEXT NOT NULL,
		finish  TEXT NOT NULL
	);`)
	if err != nil {
		return fmt.Errorf("ensure swatches table: %w", err)
	}
	return nil
}

// Save upserts swatches into the catalog.
func (s *Store) Save(ctx context.Context, swatches []domain.ColorSwatch) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin catalog tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO swatches(name, hex, family, finish) VALUES(?,?,?,?)
		ON CONFLICT(name) DO UPDATE SET hex=excluded.hex, family=excluded.family, finish=excluded.finish`)
	if err != nil {
		return fmt.Errorf("prepare swatch upsert: %w", err)
	}
	defer stmt.Close()
	for _, sw := range swatches {
		if _, err := stmt.ExecContext(ctx, sw.Name, sw.Hex, string(sw.Family), string(sw.Finish)); err != nil {
			return fmt.Errorf("upsert swatch %q: %w", sw.Name, err)
		}
	}
	return tx.Commit()
}

// Load returns every swatch in the catalog, name-ordered.
func (s *Store) Load(ctx context.Context) ([]domain.ColorSwatch, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, hex, family, finish FROM swatches ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query swatches: %w", err)
	}
	defer rows.Close()
	var out []domain.ColorSwatch
	for rows.Next() {
		var sw domain.ColorSwatch
		var fam, fin string
		if err := rows.Scan(&sw.Name, &sw.Hex, &fam, &fin); err != nil {
			return nil, fmt.Errorf("scan swatch: %w", err)
		}
		sw.Family = domain.Family(fam)
		sw.Finish = domain.Finish(fin)
		out = append(out, sw)
	}
	return out, rows.Err()
}
