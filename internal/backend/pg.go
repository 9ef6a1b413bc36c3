/*
 * Copyright (c) 2025 by WrapForge Media, Inc.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package backend

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"wrapproof/internal/domain"
)

// OpenDB opens and pings the shared swatch-library Postgres database.
// Callers own the returned handle and must close it.
func OpenDB(ctx context.Context, dsn string) (*sql.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("empty swatch library dsn")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open swatch library: %w", err)
	}
	pctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping swatch library: %w", err)
	}
	return db, nil
}

// LoadSwatches reads the published swatch library ordered for document
// layout, family first then name.
func LoadSwatches(ctx context.Context, db *sql.DB) ([]domain.ColorSwatch, error) {
	const q = `SELECT name, hex, family, finish FROM swatches WHERE published ORDER BY family, name`
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query swatches: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out []domain.ColorSwatch
	for rows.Next() {
		var sw domain.ColorSwatch
		if err := rows.Scan(&sw.Name, &sw.Hex, &sw.Family, &sw.Finish); err != nil {
			return nil, fmt.Errorf("scan swatch: %w", err)
		}
		out = append(out, sw)
	}
	return out, rows.Err()
}

// RecordExport writes one audit row for a generated document. Failures here
// are reported but must never block delivery of the document itself.
func RecordExport(ctx context.Context, db *sql.DB, docType, path string) error {
	const q = `INSERT INTO export_log (doc_type, path, created_at) VALUES ($1, $2, now())`
	if _, err := db.ExecContext(ctx, q, docType, path); err != nil {
		return fmt.Errorf("record export: %w", err)
	}
	return nil
}
