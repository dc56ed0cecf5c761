// Package samples provides the canned document catalog used in place of a real upload.
package samples

import (
	"time"

	"github.com/gocanopy/dealsense/internal/models"
	"github.com/gocanopy/dealsense/pkg/utils"
)

// Document is a catalog entry: a fixed "document" with a declared type and
// simulated file metadata.
type Document struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Type        models.DocumentType `json:"type"`
	Size        int64               `json:"size"`
	MimeType    string              `json:"mime_type"`
}

// Enhancement carries extra narrative metadata per sample document type.
// Defined for display surfaces; the analysis generator does not consume it.
type Enhancement struct {
	PropertyName string   `json:"property_name"`
	Location     string   `json:"location"`
	SpecialNotes []string `json:"special_notes"`
	TotalUnits   int      `json:"total_units,omitempty"`
	AskingPrice  int64    `json:"asking_price,omitempty"`
	AssetCount   int      `json:"asset_count,omitempty"`
	TotalValue   int64    `json:"total_value,omitempty"`
}

var catalog = []Document{
	{
		ID:          "sample-rent-roll",
		Name:        "Parkside_Apartments_Rent_Roll_Q4_2024.xlsx",
		Description: "Multi-family property with 120 units",
		Type:        models.DocTypeRentRoll,
		Size:        245760,
		MimeType:    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	},
	{
		ID:          "sample-offering-memo",
		Name:        "Downtown_Office_Tower_Offering_Memorandum.pdf",
		Description: "Office building acquisition opportunity",
		Type:        models.DocTypeOfferingMemo,
		Size:        3145728,
		MimeType:    "application/pdf",
	},
	{
		ID:          "sample-asset-report",
		Name:        "Portfolio_Asset_Performance_Report_Q4.pdf",
		Description: "Quarterly performance analysis",
		Type:        models.DocTypeAssetReport,
		Size:        1572864,
		MimeType:    "application/pdf",
	},
}

var enhancements = map[models.DocumentType]*Enhancement{
	models.DocTypeRentRoll: {
		PropertyName: "Parkside Apartments",
		Location:     "San Francisco, CA",
		TotalUnits:   120,
		SpecialNotes: []string{
			"Recent renovation completed in 2023",
			"Premium amenities including rooftop deck and fitness center",
			"Strong tenant retention rate of 87%",
		},
	},
	models.DocTypeOfferingMemo: {
		PropertyName: "Downtown Office Tower",
		Location:     "Oakland, CA",
		AskingPrice:  48500000,
		SpecialNotes: []string{
			"Class A office space in prime downtown location",
			"Recent tenant upgrades and HVAC modernization",
			"Long-term anchor tenant committed through 2028",
		},
	},
	models.DocTypeAssetReport: {
		PropertyName: "Bay Area Portfolio",
		Location:     "Multiple locations",
		AssetCount:   12,
		TotalValue:   342000000,
		SpecialNotes: []string{
			"Portfolio-wide occupancy improvement of 4.2% YoY",
			"NOI growth of 6.8% across all properties",
			"Strategic disposition of 2 non-core assets completed",
		},
	},
}

// All returns the sample catalog.
func All() []Document {
	out := make([]Document, len(catalog))
	copy(out, catalog)
	return out
}

// ByType returns the catalog entry with the given declared type, if any.
func ByType(dt models.DocumentType) (Document, bool) {
	for _, d := range catalog {
		if d.Type == dt {
			return d, true
		}
	}
	return Document{}, false
}

// Load looks up a sample by id and returns an UploadedDocument with a fresh id
// and timestamp. The catalog's declared type is used directly, bypassing the
// filename classifier. Returns false for unknown ids.
func Load(sampleID string) (*models.UploadedDocument, bool) {
	for _, d := range catalog {
		if d.ID == sampleID {
			return &models.UploadedDocument{
				ID:           utils.NewID(),
				Name:         d.Name,
				Size:         d.Size,
				MimeType:     d.MimeType,
				UploadedAt:   time.Now(),
				DocumentType: d.Type,
			}, true
		}
	}
	return nil, false
}

// EnhancementFor returns the extra narrative metadata for a document type,
// or nil when none is defined (e.g. unknown).
func EnhancementFor(dt models.DocumentType) *Enhancement {
	return enhancements[dt]
}
