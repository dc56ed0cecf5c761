package history

import (
	"sync"

	"github.com/gocanopy/dealsense/internal/models"
)

// MemoryStore is an in-process Store with the same retention policy as the
// durable backends. Used by tests and the memory storage backend.
type MemoryStore struct {
	mu       sync.Mutex
	analyses []*models.AnalysisResult
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save prepends analysis and trims to MaxStoredAnalyses.
func (s *MemoryStore) Save(analysis *models.AnalysisResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyses = append([]*models.AnalysisResult{analysis}, s.analyses...)
	if len(s.analyses) > MaxStoredAnalyses {
		s.analyses = s.analyses[:MaxStoredAnalyses]
	}
	return nil
}

// Load recomputes the aggregate view.
func (s *MemoryStore) Load() *models.AnalysisHistory {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.AnalysisResult, len(s.analyses))
	copy(out, s.analyses)
	return models.BuildHistory(out)
}

// GetByID scans the retained entries for id.
func (s *MemoryStore) GetByID(id string) (*models.AnalysisResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.analyses {
		if a.ID == id {
			return a, true
		}
	}
	return nil, false
}

// Clear drops everything.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyses = nil
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}
