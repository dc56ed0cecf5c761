// Package history persists analysis results with bounded most-recent-N retention.
package history

import "github.com/gocanopy/dealsense/internal/models"

// MaxStoredAnalyses caps retention: saving beyond the cap evicts the oldest entries.
const MaxStoredAnalyses = 10

// Store is the persistence contract for analysis history. Save prepends
// (most-recent-first) and trims to MaxStoredAnalyses; re-saving the same
// analysis creates a second entry (no dedup by id). Load recomputes the
// aggregate view on every call and never fails: missing or corrupt data is
// treated as an empty history. GetByID is a linear scan over the retained
// entries.
type Store interface {
	Save(analysis *models.AnalysisResult) error
	Load() *models.AnalysisHistory
	GetByID(id string) (*models.AnalysisResult, bool)
	Clear() error
	Close() error
}
