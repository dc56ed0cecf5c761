package models

// AnalysisHistory is the derived view over stored analyses. Aggregates are
// recomputed on every read, never persisted.
type AnalysisHistory struct {
	Analyses       []*AnalysisResult `json:"analyses"`
	TotalDeals     int               `json:"total_deals"`
	AverageCapRate float64           `json:"average_cap_rate"`
	TotalValue     float64           `json:"total_value"`
}

// BuildHistory computes the aggregate view from a list of analyses
// (most-recent-first, as stored).
func BuildHistory(analyses []*AnalysisResult) *AnalysisHistory {
	h := &AnalysisHistory{
		Analyses:   analyses,
		TotalDeals: len(analyses),
	}
	if h.Analyses == nil {
		h.Analyses = []*AnalysisResult{}
	}
	var capSum float64
	for _, a := range analyses {
		capSum += a.Metrics.CapRate
		h.TotalValue += a.Metrics.PropertyValue
	}
	if h.TotalDeals > 0 {
		h.AverageCapRate = capSum / float64(h.TotalDeals)
	}
	return h
}
