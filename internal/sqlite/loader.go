package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/loantrack/pkg/types"
)

// upsertSQL inserts a record at the end of its collection, or replaces the
// body of an existing record without moving it.
const upsertSQL = `INSERT INTO records (collection, record_id, seq, body)
VALUES (?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM records WHERE collection = ?), ?)
ON CONFLICT (collection, record_id) DO UPDATE SET body = excluded.body`

// loadAllJSONL reads each collection's JSONL file from dataDir into the
// records table inside one transaction: all collections load or none do.
// Malformed lines and lines that are not objects with a non-empty "id" are
// skipped. A repeated id replaces the earlier line's body. Returns the number
// of records loaded per collection.
func loadAllJSONL(db *sql.DB, dataDir string, log *zap.Logger) (map[string]int, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(upsertSQL)
	if err != nil {
		return nil, fmt.Errorf("preparing load: %w", err)
	}
	defer stmt.Close()

	counts := make(map[string]int, len(types.StandardTableNames))
	for _, name := range types.StandardTableNames {
		path := jsonlPath(dataDir, name)
		lines, skipped, err := readJSONL(path)
		if err != nil {
			return nil, err
		}
		for _, line := range lines {
			var rec types.Record
			if err := json.Unmarshal(line, &rec); err != nil || rec.ID() == "" {
				skipped++
				continue
			}
			if _, err := stmt.Exec(name, rec.ID(), name, string(line)); err != nil {
				return nil, fmt.Errorf("loading %s: %w", name, err)
			}
			counts[name]++
		}
		if skipped > 0 {
			log.Warn("skipped malformed JSONL lines",
				zap.String("file", path), zap.Int("skipped", skipped))
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing load transaction: %w", err)
	}
	return counts, nil
}
