package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/gocanopy/dealsense/internal/models"
)

// DefaultFileName is the history blob written next to the configured data dir.
// The name mirrors the browser build's localStorage key.
const DefaultFileName = "gocanopy_analysis_history.json"

// FileStore keeps the whole history as one JSON array in a single file.
// There is no cross-process locking: concurrent writers race and the last
// write wins, which is the accepted model for this store.
type FileStore struct {
	path   string
	logger *zap.Logger
}

// NewFileStore creates a file-backed store at path. Parent directories are
// created if they do not exist. A nil logger disables logging.
func NewFileStore(path string, logger *zap.Logger) (*FileStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}
	return &FileStore{path: path, logger: logger}, nil
}

// Path returns the location of the history file.
func (s *FileStore) Path() string {
	return s.path
}

// Save prepends analysis, trims to MaxStoredAnalyses, and rewrites the file.
func (s *FileStore) Save(analysis *models.AnalysisResult) error {
	current := s.read()
	updated := append([]*models.AnalysisResult{analysis}, current...)
	if len(updated) > MaxStoredAnalyses {
		updated = updated[:MaxStoredAnalyses]
	}
	data, err := json.Marshal(updated)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	return nil
}

// Load reads the stored list and recomputes aggregates. A missing file or
// undecodable content yields an empty history; decode errors are logged and
// never surfaced.
func (s *FileStore) Load() *models.AnalysisHistory {
	return models.BuildHistory(s.read())
}

// GetByID scans the retained entries for id.
func (s *FileStore) GetByID(id string) (*models.AnalysisResult, bool) {
	for _, a := range s.read() {
		if a.ID == id {
			return a, true
		}
	}
	return nil, false
}

// Clear removes the history file entirely.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// Close is a no-op for the file store.
func (s *FileStore) Close() error {
	return nil
}

// read returns the stored list, most-recent-first. Any read or decode failure
// is swallowed: the caller sees an empty history.
func (s *FileStore) read() []*models.AnalysisResult {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("failed to read history file", zap.String("path", s.path), zap.Error(err))
		}
		return nil
	}
	var analyses []*models.AnalysisResult
	if err := json.Unmarshal(data, &analyses); err != nil {
		s.logger.Warn("corrupt history file, treating as empty", zap.String("path", s.path), zap.Error(err))
		return nil
	}
	return analyses
}
