//go:build mage

package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Stats prints record counts per collection and status for a data
// directory, as one JSON line. The directory is LOANTRACK_DATA_DIR, or the
// demo data when unset.
func Stats() error {
	dataDir := os.Getenv("LOANTRACK_DATA_DIR")
	if dataDir == "" {
		dataDir = filepath.Join(demoDir, "data")
	}
	files, err := filepath.Glob(filepath.Join(dataDir, "*.jsonl"))
	if err != nil {
		return err
	}
	slices.Sort(files)

	record := map[string]map[string]int{}
	for _, path := range files {
		counts, err := countStatuses(path)
		if err != nil {
			return err
		}
		record[strings.TrimSuffix(filepath.Base(path), ".jsonl")] = counts
	}
	line, err := json.Marshal(record)
	if err != nil {
		return err
	}
	fmt.Println(string(line))
	return nil
}

// countStatuses tallies a JSONL file's records by their status field, with
// the total under "total". Lines that are not objects are skipped.
func countStatuses(path string) (map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	counts := map[string]int{"total": 0}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var rec struct {
			Status string `json:"status"`
		}
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			continue
		}
		counts["total"]++
		if rec.Status != "" {
			counts[rec.Status]++
		}
	}
	return counts, scanner.Err()
}
