package samples

import (
	"testing"
	"time"

	"github.com/gocanopy/dealsense/internal/models"
)

func TestAll(t *testing.T) {
	docs := All()
	if len(docs) != 3 {
		t.Fatalf("catalog size: got %d, want 3", len(docs))
	}
	seen := make(map[models.DocumentType]bool)
	for _, d := range docs {
		if d.ID == "" || d.Name == "" || d.Size == 0 || d.MimeType == "" {
			t.Errorf("incomplete catalog entry: %+v", d)
		}
		seen[d.Type] = true
	}
	for _, dt := range []models.DocumentType{models.DocTypeRentRoll, models.DocTypeOfferingMemo, models.DocTypeAssetReport} {
		if !seen[dt] {
			t.Errorf("catalog missing type %q", dt)
		}
	}
}

func TestLoad(t *testing.T) {
	doc, ok := Load("sample-rent-roll")
	if !ok {
		t.Fatal("sample-rent-roll not found")
	}
	if doc.DocumentType != models.DocTypeRentRoll {
		t.Errorf("document type: got %q, want rent-roll", doc.DocumentType)
	}
	if doc.Name != "Parkside_Apartments_Rent_Roll_Q4_2024.xlsx" {
		t.Errorf("name: got %q", doc.Name)
	}
	if doc.ID == "" {
		t.Error("loaded document must get a fresh id")
	}
	if time.Since(doc.UploadedAt) > time.Minute {
		t.Errorf("uploadedAt should be stamped now, got %v", doc.UploadedAt)
	}

	second, _ := Load("sample-rent-roll")
	if second.ID == doc.ID {
		t.Error("each load must stamp a new id")
	}

	if _, ok := Load("sample-missing"); ok {
		t.Error("unknown id should not resolve")
	}
}

func TestLoad_BypassesClassifier(t *testing.T) {
	// The offering memo sample's filename contains "memorandum", but the type
	// comes from the catalog declaration, not filename heuristics.
	doc, ok := Load("sample-offering-memo")
	if !ok {
		t.Fatal("sample-offering-memo not found")
	}
	if doc.DocumentType != models.DocTypeOfferingMemo {
		t.Errorf("type: got %q", doc.DocumentType)
	}
}

func TestEnhancementFor(t *testing.T) {
	e := EnhancementFor(models.DocTypeRentRoll)
	if e == nil {
		t.Fatal("rent-roll enhancement missing")
	}
	if e.PropertyName != "Parkside Apartments" || e.TotalUnits != 120 {
		t.Errorf("rent-roll enhancement: %+v", e)
	}
	if len(e.SpecialNotes) != 3 {
		t.Errorf("special notes: got %d", len(e.SpecialNotes))
	}
	if EnhancementFor(models.DocTypeUnknown) != nil {
		t.Error("unknown type should have no enhancement")
	}
}

func TestByType(t *testing.T) {
	d, ok := ByType(models.DocTypeAssetReport)
	if !ok || d.ID != "sample-asset-report" {
		t.Errorf("ByType(asset-report) = %+v, %v", d, ok)
	}
	if _, ok := ByType(models.DocTypeUnknown); ok {
		t.Error("unknown type should not resolve")
	}
}
