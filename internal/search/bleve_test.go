package search

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/gocanopy/dealsense/internal/models"
)

func testAnalysis(id, address, summary string) *models.AnalysisResult {
	return &models.AnalysisResult{
		ID:           id,
		DocumentID:   "doc-" + id,
		AnalyzedAt:   time.Now(),
		DocumentType: models.DocTypeRentRoll,
		ExtractedData: []models.ExtractedDataPoint{
			{Label: "Property Address", Value: address, Confidence: 95},
		},
		AIInsight: models.AIInsight{
			Summary:        summary,
			KeyFindings:    []string{"Below-market rents with upside", "High occupancy"},
			Recommendation: models.RecBuy,
		},
	}
}

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := NewIndex(filepath.Join(t.TempDir(), "index.bleve"))
	if err != nil {
		t.Fatalf("NewIndex failed: %v", err)
	}
	t.Cleanup(func() { idx.Close() })
	return idx
}

func TestIndexAndSearch(t *testing.T) {
	idx := newTestIndex(t)

	analyses := []*models.AnalysisResult{
		testAnalysis("a1", "450 Market Street, Oakland", "Strong multifamily asset in a growing submarket"),
		testAnalysis("a2", "1200 Congress Avenue, Austin", "Stabilized office tower with long-term tenants"),
	}
	for _, a := range analyses {
		if err := idx.IndexAnalysis(a); err != nil {
			t.Fatalf("IndexAnalysis failed: %v", err)
		}
	}

	results, err := idx.Search("oakland", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 hit for oakland, got %d", len(results))
	}
	if results[0].ID != "a1" {
		t.Errorf("expected hit a1, got %s", results[0].ID)
	}

	results, err = idx.Search("occupancy", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 hits for shared finding, got %d", len(results))
	}
}

func TestSearchLimit(t *testing.T) {
	idx := newTestIndex(t)

	for _, id := range []string{"a1", "a2", "a3"} {
		a := testAnalysis(id, "100 Pine Street, Seattle", "Seattle industrial portfolio")
		if err := idx.IndexAnalysis(a); err != nil {
			t.Fatalf("IndexAnalysis failed: %v", err)
		}
	}

	results, err := idx.Search("seattle", 2)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected limit of 2 hits, got %d", len(results))
	}
}

func TestDelete(t *testing.T) {
	idx := newTestIndex(t)

	a := testAnalysis("a1", "77 Beale Street, San Francisco", "Core office asset")
	if err := idx.IndexAnalysis(a); err != nil {
		t.Fatalf("IndexAnalysis failed: %v", err)
	}
	if err := idx.Delete("a1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	results, err := idx.Search("beale", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no hits after delete, got %d", len(results))
	}

	if err := idx.Delete("missing"); err != nil {
		t.Errorf("deleting unknown id should be a no-op, got %v", err)
	}
}

func TestRebuild(t *testing.T) {
	idx := newTestIndex(t)

	stale := testAnalysis("old", "9 Elm Street, Boston", "Legacy entry")
	if err := idx.IndexAnalysis(stale); err != nil {
		t.Fatalf("IndexAnalysis failed: %v", err)
	}

	fresh := []*models.AnalysisResult{
		testAnalysis("n1", "500 Main Street, Denver", "Value-add retail"),
		testAnalysis("n2", "2 Harbor Way, Miami", "Waterfront mixed use"),
	}
	if err := idx.Rebuild(fresh); err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}

	count, err := idx.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 indexed analyses after rebuild, got %d", count)
	}

	results, err := idx.Search("boston", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("stale entry should be gone after rebuild, got %d hits", len(results))
	}
}

func TestReopenExistingIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.bleve")
	idx, err := NewIndex(path)
	if err != nil {
		t.Fatalf("NewIndex failed: %v", err)
	}
	a := testAnalysis("a1", "450 Market Street, Oakland", "Strong asset")
	if err := idx.IndexAnalysis(a); err != nil {
		t.Fatalf("IndexAnalysis failed: %v", err)
	}
	if err := idx.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := NewIndex(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	results, err := reopened.Search("oakland", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("expected indexed entry to survive reopen, got %d hits", len(results))
	}
}
