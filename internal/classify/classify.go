// Package classify derives a document type from an uploaded file's name.
package classify

import (
	"strings"
	"unicode"

	"github.com/gocanopy/dealsense/internal/models"
)

// Detect classifies a filename by case-insensitive keyword match, checked in
// fixed priority order; the first matching rule wins. Long keywords match as
// substrings; the short "om" abbreviation only matches as a whole token, so
// names like "random_file.txt" stay unclassified. Total function: anything
// unrecognized is DocTypeUnknown.
func Detect(filename string) models.DocumentType {
	lower := strings.ToLower(filename)

	if strings.Contains(lower, "rent") || strings.Contains(lower, "roll") {
		return models.DocTypeRentRoll
	}
	if strings.Contains(lower, "offering") || strings.Contains(lower, "memo") || hasToken(lower, "om") {
		return models.DocTypeOfferingMemo
	}
	if strings.Contains(lower, "asset") || strings.Contains(lower, "report") || strings.Contains(lower, "performance") {
		return models.DocTypeAssetReport
	}
	return models.DocTypeUnknown
}

// hasToken reports whether word appears as a whole token when name is split
// on non-alphanumeric runes.
func hasToken(name, word string) bool {
	tokens := strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, tok := range tokens {
		if tok == word {
			return true
		}
	}
	return false
}
