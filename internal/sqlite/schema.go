package sqlite

import (
	"database/sql"
	"fmt"
)

// Every collection shares one table. body holds the record as a JSON object
// so filters can reach any field through json_extract. seq keeps insertion
// order and survives updates.
const createRecords = `CREATE TABLE records (
    collection TEXT NOT NULL,
    record_id TEXT NOT NULL,
    seq INTEGER NOT NULL,
    body TEXT NOT NULL CHECK (json_valid(body)),
    PRIMARY KEY (collection, record_id)
);`

const idxRecordsSeq = `CREATE INDEX idx_records_seq ON records(collection, seq);`

// schemaDDL lists the statements run on a fresh database.
var schemaDDL = []string{
	createRecords,
	idxRecordsSeq,
}

// createSchema runs schemaDDL against db.
func createSchema(db *sql.DB) error {
	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	return nil
}
