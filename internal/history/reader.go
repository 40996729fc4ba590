package history

import (
	"bufio"
	"encoding/json"
	"os"
)

const (
	// DefaultLimit is applied when a caller asks for zero or fewer records.
	DefaultLimit = 50
	// MaxLimit caps any request; history reads stay bounded.
	MaxLimit = 200
)

// Reader loads recent celebration records, most recent first.
type Reader struct {
	basePath string
}

func NewReader(basePath string) *Reader {
	return &Reader{basePath: basePath}
}

// Recent returns up to limit records, newest first, walking day files
// backwards. Unparseable lines (a torn concurrent append, hand edits) are
// skipped rather than failing the whole read.
func (r *Reader) Recent(limit int) ([]Record, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	dates, err := listDates(r.basePath)
	if err != nil {
		return nil, &StorageError{Op: "list", Err: err}
	}

	out := make([]Record, 0, limit)
	for i := len(dates) - 1; i >= 0 && len(out) < limit; i-- {
		records, err := readDay(recordPath(r.basePath, dates[i]))
		if err != nil {
			continue
		}
		for j := len(records) - 1; j >= 0 && len(out) < limit; j-- {
			out = append(out, records[j])
		}
	}
	return out, nil
}

// readDay loads one append log in file order (oldest first).
func readDay(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return records, err
	}
	return records, nil
}
