package classify

import (
	"testing"

	"github.com/gocanopy/dealsense/internal/models"
)

func TestDetect(t *testing.T) {
	cases := []struct {
		filename string
		want     models.DocumentType
	}{
		{"Q4_Rent_Roll.xlsx", models.DocTypeRentRoll},
		{"Downtown_Offering_Memo.pdf", models.DocTypeOfferingMemo},
		{"Asset_Performance_Report.pdf", models.DocTypeAssetReport},
		{"random_file.txt", models.DocTypeUnknown},
		{"RENTROLL.XLSX", models.DocTypeRentRoll},
		{"property_om_2024.pdf", models.DocTypeOfferingMemo},
		{"", models.DocTypeUnknown},
		// "rent"/"roll" outrank the offering-memo keywords.
		{"rent_memo.pdf", models.DocTypeRentRoll},
		// "memo" outranks "report".
		{"memo_report.pdf", models.DocTypeOfferingMemo},
		// "om" only counts as a whole token, not inside other words.
		{"custom_notes.docx", models.DocTypeUnknown},
		{"promotion_flyer.pdf", models.DocTypeUnknown},
		{"OM.pdf", models.DocTypeOfferingMemo},
		{"Downtown_OM_Final.pdf", models.DocTypeOfferingMemo},
	}
	for _, c := range cases {
		if got := Detect(c.filename); got != c.want {
			t.Errorf("Detect(%q) = %q, want %q", c.filename, got, c.want)
		}
	}
}
