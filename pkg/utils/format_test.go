package utils

import (
	"strings"
	"testing"
	"time"
)

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{999, "$999"},
		{48500000, "$48,500,000"},
		{1234567.4, "$1,234,567"},
		{-2500, "-$2,500"},
	}
	for _, c := range cases {
		if got := FormatCurrency(c.in); got != c.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatPercentage(t *testing.T) {
	if got := FormatPercentage(6.125, 2); got != "6.13%" {
		t.Errorf("got %q, want 6.13%%", got)
	}
	if got := FormatPercentage(94.0, 1); got != "94.0%" {
		t.Errorf("got %q, want 94.0%%", got)
	}
	// Ties go away from zero in both directions.
	if got := FormatPercentage(8.5, 0); got != "9%" {
		t.Errorf("got %q, want 9%%", got)
	}
	if got := FormatPercentage(-6.125, 2); got != "-6.13%" {
		t.Errorf("got %q, want -6.13%%", got)
	}
}

func TestFormatFileSize(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0 Bytes"},
		{512, "512 Bytes"},
		{245760, "240 KB"},
		{3145728, "3 MB"},
	}
	for _, c := range cases {
		if got := FormatFileSize(c.in); got != c.want {
			t.Errorf("FormatFileSize(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2025, time.January, 7, 15, 4, 0, 0, time.UTC)
	got := FormatDate(ts)
	if got != "January 7, 2025 03:04 PM" {
		t.Errorf("FormatDate = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello world", 5); got != "hello..." {
		t.Errorf("got %q", got)
	}
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := Truncate("anything", 0); got != "anything" {
		t.Errorf("maxLen 0 should be a no-op, got %q", got)
	}
}

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		if id == "" {
			t.Fatal("NewID returned empty string")
		}
		if strings.ContainsAny(id, " /") {
			t.Fatalf("id contains unexpected characters: %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id: %q", id)
		}
		seen[id] = true
	}
}
