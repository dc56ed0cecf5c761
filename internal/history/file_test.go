package history

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gocanopy/dealsense/internal/models"
)

func testAnalysis(id string, capRate, value float64) *models.AnalysisResult {
	return &models.AnalysisResult{
		ID:           id,
		DocumentID:   "doc-" + id,
		AnalyzedAt:   time.Now().UTC().Truncate(time.Second),
		DocumentType: models.DocTypeRentRoll,
		Metrics: models.PropertyMetrics{
			PropertyValue:      value,
			CapRate:            capRate,
			OccupancyRate:      94.5,
			NetOperatingIncome: value * capRate / 100,
		},
	}
}

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(filepath.Join(t.TempDir(), DefaultFileName), nil)
	if err != nil {
		t.Fatal(err)
	}
	return store
}

func TestFileStore_SaveAndLoad(t *testing.T) {
	store := newTestFileStore(t)

	if h := store.Load(); h.TotalDeals != 0 {
		t.Errorf("fresh store should be empty, got %d deals", h.TotalDeals)
	}

	if err := store.Save(testAnalysis("a1", 5.0, 20000000)); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(testAnalysis("a2", 7.0, 40000000)); err != nil {
		t.Fatal(err)
	}

	h := store.Load()
	if h.TotalDeals != 2 {
		t.Fatalf("TotalDeals = %d, want 2", h.TotalDeals)
	}
	if h.Analyses[0].ID != "a2" || h.Analyses[1].ID != "a1" {
		t.Errorf("order should be most-recent-first: %s, %s", h.Analyses[0].ID, h.Analyses[1].ID)
	}
	if h.AverageCapRate != 6.0 {
		t.Errorf("AverageCapRate = %v, want 6.0", h.AverageCapRate)
	}
	if h.TotalValue != 60000000 {
		t.Errorf("TotalValue = %v", h.TotalValue)
	}
}

func TestFileStore_RetentionCap(t *testing.T) {
	store := newTestFileStore(t)
	for i := 1; i <= 12; i++ {
		if err := store.Save(testAnalysis(fmt.Sprintf("a%d", i), 6.0, 1000000)); err != nil {
			t.Fatal(err)
		}
	}

	h := store.Load()
	if h.TotalDeals != MaxStoredAnalyses {
		t.Fatalf("TotalDeals = %d, want %d", h.TotalDeals, MaxStoredAnalyses)
	}
	if h.Analyses[0].ID != "a12" {
		t.Errorf("newest entry: got %s, want a12", h.Analyses[0].ID)
	}
	if h.Analyses[9].ID != "a3" {
		t.Errorf("oldest retained entry: got %s, want a3", h.Analyses[9].ID)
	}

	if _, ok := store.GetByID("a12"); !ok {
		t.Error("a12 should be retained")
	}
	if _, ok := store.GetByID("a3"); !ok {
		t.Error("a3 should be retained")
	}
	if _, ok := store.GetByID("a2"); ok {
		t.Error("a2 should have been evicted")
	}
	if _, ok := store.GetByID("a1"); ok {
		t.Error("a1 should have been evicted")
	}
}

func TestFileStore_NoDedup(t *testing.T) {
	store := newTestFileStore(t)
	a := testAnalysis("dup", 6.0, 1000000)
	_ = store.Save(a)
	_ = store.Save(a)
	if h := store.Load(); h.TotalDeals != 2 {
		t.Errorf("re-saving the same analysis should create two entries, got %d", h.TotalDeals)
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	store := newTestFileStore(t)
	if err := os.WriteFile(store.Path(), []byte("not json {"), 0600); err != nil {
		t.Fatal(err)
	}

	h := store.Load()
	if h.TotalDeals != 0 || h.AverageCapRate != 0 || h.TotalValue != 0 {
		t.Errorf("corrupt file should read as empty history: %+v", h)
	}
	if len(h.Analyses) != 0 {
		t.Errorf("analyses should be empty, got %d", len(h.Analyses))
	}

	// A save after corruption starts a fresh list rather than failing.
	if err := store.Save(testAnalysis("fresh", 6.0, 1000000)); err != nil {
		t.Fatalf("save after corruption: %v", err)
	}
	if h := store.Load(); h.TotalDeals != 1 {
		t.Errorf("post-corruption history: %d deals", h.TotalDeals)
	}
}

func TestFileStore_Clear(t *testing.T) {
	store := newTestFileStore(t)
	_ = store.Save(testAnalysis("a1", 6.0, 1000000))
	if err := store.Clear(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(store.Path()); !os.IsNotExist(err) {
		t.Error("clear should remove the file")
	}
	if h := store.Load(); h.TotalDeals != 0 {
		t.Errorf("history after clear: %d deals", h.TotalDeals)
	}
	// Clearing an already-empty store is fine.
	if err := store.Clear(); err != nil {
		t.Errorf("second clear: %v", err)
	}
}

func TestFileStore_DateRoundTrip(t *testing.T) {
	store := newTestFileStore(t)
	a := testAnalysis("ts", 6.0, 1000000)
	_ = store.Save(a)

	got, ok := store.GetByID("ts")
	if !ok {
		t.Fatal("analysis not found")
	}
	if !got.AnalyzedAt.Equal(a.AnalyzedAt) {
		t.Errorf("AnalyzedAt should rehydrate to a real time: got %v, want %v", got.AnalyzedAt, a.AnalyzedAt)
	}
}

func TestMemoryStore_MatchesContract(t *testing.T) {
	store := NewMemoryStore()
	for i := 1; i <= 11; i++ {
		_ = store.Save(testAnalysis(fmt.Sprintf("m%d", i), 6.0, 1000000))
	}
	h := store.Load()
	if h.TotalDeals != MaxStoredAnalyses {
		t.Errorf("TotalDeals = %d", h.TotalDeals)
	}
	if h.Analyses[0].ID != "m11" {
		t.Errorf("newest: %s", h.Analyses[0].ID)
	}
	if _, ok := store.GetByID("m1"); ok {
		t.Error("m1 should be evicted")
	}
	if err := store.Clear(); err != nil {
		t.Fatal(err)
	}
	if store.Load().TotalDeals != 0 {
		t.Error("clear should empty the store")
	}
}
