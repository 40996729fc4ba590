package history

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

const celebrationsDir = "celebrations"

// recordPath builds the path of one day's append log.
func recordPath(basePath, date string) string {
	return filepath.Join(basePath, celebrationsDir, fmt.Sprintf("%s.jsonl", date))
}

// listDates returns the day-file dates present under basePath, ascending.
func listDates(basePath string) ([]string, error) {
	dir := filepath.Join(basePath, celebrationsDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	var dates []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if filepath.Ext(name) != ".jsonl" {
			continue
		}
		dates = append(dates, name[:len(name)-len(".jsonl")])
	}
	sort.Strings(dates)
	return dates, nil
}
