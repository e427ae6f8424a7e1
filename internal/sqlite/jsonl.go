package sqlite

import (
	"bufio"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/loantrack/pkg/types"
)

// maxLineSize bounds one JSONL record.
const maxLineSize = 4 << 20

// jsonlPath returns the source-of-truth file for a collection.
func jsonlPath(dataDir, collection string) string {
	return filepath.Join(dataDir, collection+".jsonl")
}

// initJSONLFiles creates an empty JSONL file for every standard collection
// that does not have one yet.
func initJSONLFiles(dataDir string) error {
	for _, name := range types.StandardTableNames {
		path := jsonlPath(dataDir, name)
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("checking %s: %w", path, err)
		}
		if err := writeJSONL(path, nil); err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
	}
	return nil
}

// readJSONL reads a JSONL file and returns each non-empty, parseable line as
// a json.RawMessage, along with the number of malformed lines skipped.
func readJSONL(path string) ([]json.RawMessage, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var (
		records []json.RawMessage
		skipped int
	)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if !json.Valid(line) {
			skipped++
			continue
		}
		cp := make([]byte, len(line))
		copy(cp, line)
		records = append(records, json.RawMessage(cp))
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, fmt.Errorf("scanning %s: %w", path, err)
	}
	return records, skipped, nil
}

// writeJSONL atomically writes records to a JSONL file using the temp-file,
// fsync, rename pattern.
func writeJSONL(path string, records []json.RawMessage) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	fail := func(what string, err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%s: %w", what, err)
	}

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			return fail("writing record", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fail("writing newline", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fail("flushing buffer", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("syncing temp file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// persistCollection rewrites a collection's JSONL file from the database in
// insertion order.
func persistCollection(db *sql.DB, dataDir, collection string) error {
	rows, err := db.Query(
		"SELECT body FROM records WHERE collection = ? ORDER BY seq", collection)
	if err != nil {
		return fmt.Errorf("reading %s: %w", collection, err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return fmt.Errorf("scanning %s: %w", collection, err)
		}
		records = append(records, json.RawMessage(body))
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return writeJSONL(jsonlPath(dataDir, collection), records)
}

// ReadCollection decodes a collection's JSONL file without attaching a
// store, in file order. Lines that are not JSON objects are skipped. A
// missing file yields no records.
func ReadCollection(dataDir, collection string) ([]types.Record, error) {
	if !types.IsStandardTable(collection) {
		return nil, fmt.Errorf("%w: %q", types.ErrTableNotFound, collection)
	}
	path := jsonlPath(dataDir, collection)
	lines, _, err := readJSONL(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []types.Record{}, nil
		}
		return nil, err
	}
	out := make([]types.Record, 0, len(lines))
	for _, line := range lines {
		rec, err := decodeBody(string(line))
		if err != nil || rec == nil {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}
