package feedback

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/caltrackai/caltrack-api/internal/model"
	"github.com/caltrackai/caltrack-api/internal/nutrition"
)

// Entry is one user judgment on a prediction. Entries are immutable once
// written; the log only grows.
type Entry struct {
	Prediction   *model.PredictionItem `json:"prediction,omitempty"`
	Nutrition    *nutrition.Record     `json:"nutrition,omitempty"`
	FeedbackType string                `json:"feedback_type"`
	Comment      string                `json:"comment,omitempty"`
	Timestamp    time.Time             `json:"timestamp,omitempty"`
}

// Store appends entries to a newline-delimited JSON log. Appends are
// serialized so concurrent requests never interleave inside a record.
type Store struct {
	mu   sync.Mutex
	file *os.File
}

func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create feedback directory: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open feedback log: %w", err)
	}

	return &Store{file: file}, nil
}

// Append stamps the entry and writes it as one complete line. The write is
// flushed to disk before returning, so an acknowledged entry survives a
// crash.
func (s *Store) Append(entry Entry) error {
	entry.Timestamp = time.Now().UTC()

	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode feedback entry: %w", err)
	}
	line = append(line, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.file.Write(line); err != nil {
		return fmt.Errorf("failed to append feedback entry: %w", err)
	}
	if err := s.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync feedback log: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.file.Close()
}
