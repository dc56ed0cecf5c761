// Package search maintains a Bleve index over saved analyses so past deals can
// be found by address, finding, or recommendation text.
package search

import (
	"fmt"
	"os"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"

	"github.com/gocanopy/dealsense/internal/models"
)

// Result is one search hit.
type Result struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// indexedAnalysis is the flattened shape stored in the index.
type indexedAnalysis struct {
	ID             string `json:"id"`
	DocumentType   string `json:"document_type"`
	Address        string `json:"address"`
	Summary        string `json:"summary"`
	KeyFindings    string `json:"key_findings"`
	Recommendation string `json:"recommendation"`
}

// Index is a Bleve index over analysis history.
type Index struct {
	index bleve.Index
}

// NewIndex creates or opens a Bleve index at path. An existing index is opened
// and reused; remove the directory to force a rebuild after mapping changes.
func NewIndex(path string) (*Index, error) {
	im := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()

	textField := bleve.NewTextFieldMapping()
	// Standard analyzer: lowercase + tokenize without stemming, so exact terms
	// like "Oakland" or "occupancy" match as typed.
	textField.Analyzer = standard.Name
	for _, f := range []string{"address", "summary", "key_findings", "recommendation", "document_type"} {
		docMapping.AddFieldMappingsAt(f, textField)
	}
	docMapping.AddFieldMappingsAt("id", bleve.NewKeywordFieldMapping())
	im.AddDocumentMapping("analysis", docMapping)
	im.DefaultType = "analysis"
	im.DefaultMapping = docMapping

	if _, err := os.Stat(path); err == nil {
		index, openErr := bleve.Open(path)
		if openErr != nil {
			return nil, fmt.Errorf("failed to open search index: %w", openErr)
		}
		return &Index{index: index}, nil
	}
	index, err := bleve.New(path, im)
	if err != nil {
		return nil, fmt.Errorf("failed to create search index: %w", err)
	}
	return &Index{index: index}, nil
}

// IndexAnalysis adds or replaces an analysis in the index.
func (x *Index) IndexAnalysis(a *models.AnalysisResult) error {
	return x.index.Index(a.ID, flatten(a))
}

// Delete removes an analysis by id. Deleting an unknown id is a no-op.
func (x *Index) Delete(id string) error {
	return x.index.Delete(id)
}

// Search runs a match query and returns up to limit hits, best first.
func (x *Index) Search(query string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}
	req := bleve.NewSearchRequest(bleve.NewMatchQuery(query))
	req.Size = limit
	results, err := x.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	out := make([]Result, len(results.Hits))
	for i, hit := range results.Hits {
		out[i] = Result{ID: hit.ID, Score: hit.Score}
	}
	return out, nil
}

// Rebuild replaces the index contents with the given analyses. Used after the
// history file changes out of process or is cleared.
func (x *Index) Rebuild(analyses []*models.AnalysisResult) error {
	count, err := x.index.DocCount()
	if err != nil {
		return err
	}
	if count > 0 {
		// Bleve has no truncate; walk the ids and delete.
		req := bleve.NewSearchRequest(bleve.NewMatchAllQuery())
		req.Size = int(count)
		existing, err := x.index.Search(req)
		if err != nil {
			return err
		}
		for _, hit := range existing.Hits {
			if err := x.index.Delete(hit.ID); err != nil {
				return err
			}
		}
	}
	batch := x.index.NewBatch()
	for _, a := range analyses {
		if err := batch.Index(a.ID, flatten(a)); err != nil {
			return err
		}
	}
	return x.index.Batch(batch)
}

// Count returns the number of indexed analyses.
func (x *Index) Count() (uint64, error) {
	return x.index.DocCount()
}

// Close closes the underlying index.
func (x *Index) Close() error {
	return x.index.Close()
}

func flatten(a *models.AnalysisResult) indexedAnalysis {
	address := ""
	for _, dp := range a.ExtractedData {
		if dp.Label == "Property Address" {
			address = dp.Value
			break
		}
	}
	findings := ""
	for i, f := range a.AIInsight.KeyFindings {
		if i > 0 {
			findings += " "
		}
		findings += f
	}
	return indexedAnalysis{
		ID:             a.ID,
		DocumentType:   string(a.DocumentType),
		Address:        address,
		Summary:        a.AIInsight.Summary,
		KeyFindings:    findings,
		Recommendation: string(a.AIInsight.Recommendation),
	}
}
