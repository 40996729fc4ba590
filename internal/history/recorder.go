package history

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"smart-stadium/internal/logging"
	"smart-stadium/internal/metrics"
	"smart-stadium/internal/timeutil"
)

const defaultRetentionDays = 14

// Recorder appends celebration records to per-day JSONL files under
// {basePath}/celebrations/{YYYY-MM-DD}.jsonl. Appends from concurrent
// dispatches serialize on one mutex; nothing else locks across contests.
type Recorder struct {
	basePath      string
	retentionDays int
	logger        *slog.Logger
	metrics       *metrics.Recorder
	now           func() time.Time

	mu           sync.Mutex
	lastPruneDay string
}

// NewRecorder constructs a recorder rooted at basePath with a rolling window
// retention.
func NewRecorder(basePath string, retentionDays int, logger *slog.Logger, recorder *metrics.Recorder) *Recorder {
	if retentionDays <= 0 {
		retentionDays = defaultRetentionDays
	}
	return &Recorder{
		basePath:      basePath,
		retentionDays: retentionDays,
		logger:        logger,
		metrics:       recorder,
		now:           time.Now,
	}
}

// BasePath exposes the recorder root path (primarily for testing).
func (r *Recorder) BasePath() string {
	if r == nil {
		return ""
	}
	return r.basePath
}

// Append persists one record. Failures come back as StorageError and are
// logged here as warnings; the celebration they describe already happened.
func (r *Recorder) Append(record Record) error {
	err := r.append(record)
	if r != nil {
		r.metrics.RecordHistoryAppend(err)
		if err != nil {
			logging.Warn(r.logger, "history append failed", "error", err.Error())
		}
	}
	return err
}

func (r *Recorder) append(record Record) error {
	if r == nil {
		return &StorageError{Op: "append", Err: errors.New("recorder not configured")}
	}

	if record.RecordedAt.IsZero() {
		record.RecordedAt = r.now().UTC()
	}
	if record.ID == "" {
		record.ID = NewRecordID(record.RecordedAt)
	}

	line, err := json.Marshal(record)
	if err != nil {
		return &StorageError{Op: "encode", Err: err}
	}

	day := timeutil.FormatDate(record.RecordedAt.UTC())

	r.mu.Lock()
	defer r.mu.Unlock()

	path := recordPath(r.basePath, day)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &StorageError{Op: "mkdir", Err: err}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return &StorageError{Op: "open", Err: err}
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return &StorageError{Op: "write", Err: err}
	}

	if r.lastPruneDay != day {
		r.prune()
		r.lastPruneDay = day
	}
	return nil
}

// prune drops day files older than the retention window. Best effort; a
// failed removal only surfaces again on the next day change.
func (r *Recorder) prune() {
	dates, err := listDates(r.basePath)
	if err != nil {
		return
	}

	now := r.now().UTC()
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, -r.retentionDays)
	for _, d := range dates {
		parsed, err := timeutil.ParseDate(d)
		if err != nil {
			continue
		}
		if parsed.Before(cutoff) {
			_ = os.Remove(recordPath(r.basePath, d))
		}
	}
}
