package database

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// BatchLookup runs a single query over a list of ids and returns the rows
// keyed by id. The query must take the id list as its only parameter,
// e.g. `SELECT id, name FROM subjects WHERE id = ANY($1)`, and scan must
// return the key alongside the decoded row.
//
// This backs the fetch-then-join pattern (fetch A, collect ids, fetch B,
// merge in memory) used by the grading and dashboard screens instead of
// wide SQL joins.
func BatchLookup[T any](db *sql.DB, query string, ids []string, scan func(*sql.Rows) (string, T, error)) (map[string]T, error) {
	out := make(map[string]T, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := db.Query(query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("batch lookup failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		key, val, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("batch lookup scan failed: %w", err)
		}
		out[key] = val
	}
	return out, rows.Err()
}

// CollectIDs extracts a deduplicated id list from a slice, preserving
// first-seen order.
func CollectIDs[T any](items []T, id func(T) string) []string {
	seen := make(map[string]struct{}, len(items))
	var ids []string
	for _, it := range items {
		k := id(it)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		ids = append(ids, k)
	}
	return ids
}
