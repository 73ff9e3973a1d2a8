// Package journal keeps the usage record the daily admin report is built
// from: one JSON line per completed analysis or feedback survey. The file
// is append-only so a crash can lose at most the line being written.
package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"adcheck-bot/models"
)

// Journal appends usage records to a JSONL file. Writes are serialized
// with a mutex; a failed write is logged and dropped, never surfaced to
// the user path.
type Journal struct {
	mu     sync.Mutex
	file   *os.File
	logger *zap.Logger
}

// Open creates the journal file (and its directory) if needed and opens
// it for appending.
func Open(path string, logger *zap.Logger) (*Journal, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create journal dir: %w", err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	return &Journal{file: file, logger: logger}, nil
}

// Close flushes and closes the journal file.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.file.Close()
}

// Analysis records one completed analysis request.
func (j *Journal) Analysis(rec models.AnalysisRecord) {
	rec.Kind = models.RecordKindAnalysis
	j.append(rec)
}

// Feedback records one completed feedback survey.
func (j *Journal) Feedback(rec models.FeedbackRecord) {
	rec.Kind = models.RecordKindFeedback
	j.append(rec)
}

// Block records that a user was blocked for repeated safety violations.
func (j *Journal) Block(rec models.BlockRecord) {
	rec.Kind = models.RecordKindBlock
	j.append(rec)
}

func (j *Journal) append(rec interface{}) {
	data, err := json.Marshal(rec)
	if err != nil {
		j.logger.Error("failed to marshal journal record", zap.Error(err))
		return
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	if _, err := j.file.Write(append(data, '\n')); err != nil {
		j.logger.Error("failed to write journal record", zap.Error(err))
	}
}

// Entry is one parsed journal line. Exactly one of the record pointers
// is set, matching Kind.
type Entry struct {
	Kind     string
	Analysis *models.AnalysisRecord
	Feedback *models.FeedbackRecord
	Block    *models.BlockRecord
}

// Read parses a journal file. Lines that are blank, corrupt or of an
// unknown kind are skipped and counted instead of failing the whole read,
// so one bad line cannot break reporting.
func Read(path string) ([]Entry, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open journal: %w", err)
	}
	defer f.Close()

	var (
		entries []Entry
		skipped int
	)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var probe struct {
			Kind string `json:"kind"`
		}
		if err := json.Unmarshal(line, &probe); err != nil {
			skipped++
			continue
		}

		switch probe.Kind {
		case models.RecordKindAnalysis:
			var rec models.AnalysisRecord
			if err := json.Unmarshal(line, &rec); err != nil {
				skipped++
				continue
			}
			entries = append(entries, Entry{Kind: probe.Kind, Analysis: &rec})
		case models.RecordKindFeedback:
			var rec models.FeedbackRecord
			if err := json.Unmarshal(line, &rec); err != nil {
				skipped++
				continue
			}
			entries = append(entries, Entry{Kind: probe.Kind, Feedback: &rec})
		case models.RecordKindBlock:
			var rec models.BlockRecord
			if err := json.Unmarshal(line, &rec); err != nil {
				skipped++
				continue
			}
			entries = append(entries, Entry{Kind: probe.Kind, Block: &rec})
		default:
			skipped++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, fmt.Errorf("failed to read journal: %w", err)
	}
	return entries, skipped, nil
}
