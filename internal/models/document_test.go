package models

import (
	"strings"
	"testing"
)

func TestUploadRequest_Validate(t *testing.T) {
	valid := UploadRequest{
		Name:     "Q4_Rent_Roll.xlsx",
		Size:     245760,
		MimeType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid upload rejected: %v", err)
	}

	t.Run("rejects unsupported mime type", func(t *testing.T) {
		u := valid
		u.MimeType = "text/plain"
		err := u.Validate()
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "unsupported file type") {
			t.Errorf("unexpected message: %v", err)
		}
	})

	t.Run("rejects oversized file", func(t *testing.T) {
		u := valid
		u.Size = MaxUploadSize + 1
		if err := u.Validate(); err == nil {
			t.Fatal("expected error for file over 10MB")
		}
	})

	t.Run("accepts file at the size ceiling", func(t *testing.T) {
		u := valid
		u.Size = MaxUploadSize
		if err := u.Validate(); err != nil {
			t.Errorf("10MB exactly should pass: %v", err)
		}
	})

	t.Run("rejects empty name", func(t *testing.T) {
		u := valid
		u.Name = ""
		if err := u.Validate(); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("rejects zero size", func(t *testing.T) {
		u := valid
		u.Size = 0
		if err := u.Validate(); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("accepts every allowed document format", func(t *testing.T) {
		for _, mt := range []string{
			"application/pdf",
			"application/msword",
			"application/vnd.ms-excel",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		} {
			u := valid
			u.MimeType = mt
			if err := u.Validate(); err != nil {
				t.Errorf("%s rejected: %v", mt, err)
			}
		}
	})
}

func TestBuildHistory(t *testing.T) {
	empty := BuildHistory(nil)
	if empty.TotalDeals != 0 || empty.AverageCapRate != 0 || empty.TotalValue != 0 {
		t.Errorf("empty history aggregates: %+v", empty)
	}
	if empty.Analyses == nil {
		t.Error("Analyses should be an empty slice, not nil")
	}

	mk := func(cap, value float64) *AnalysisResult {
		return &AnalysisResult{Metrics: PropertyMetrics{CapRate: cap, PropertyValue: value}}
	}
	h := BuildHistory([]*AnalysisResult{mk(5.0, 20000000), mk(6.0, 30000000), mk(7.0, 10000000)})
	if h.TotalDeals != 3 {
		t.Errorf("TotalDeals = %d", h.TotalDeals)
	}
	if h.AverageCapRate != 6.0 {
		t.Errorf("AverageCapRate = %v, want 6.0", h.AverageCapRate)
	}
	if h.TotalValue != 60000000 {
		t.Errorf("TotalValue = %v", h.TotalValue)
	}
}
