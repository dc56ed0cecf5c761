package models

import "time"

// ExtractedDataPoint is an illustrative "extracted" field with a confidence score
// and a claimed source location in the document.
type ExtractedDataPoint struct {
	Label      string     `json:"label"`
	Value      string     `json:"value"`
	Confidence int        `json:"confidence"`
	Source     DataSource `json:"source"`
}

// DataSource locates a data point within the (simulated) document.
type DataSource struct {
	Page    int    `json:"page"`
	Section string `json:"section"`
}

// PropertyMetrics holds headline financials for the subject property.
// NetOperatingIncome is always PropertyValue * CapRate/100 at construction.
// TotalUnits and AverageRent are present only for rent rolls.
type PropertyMetrics struct {
	PropertyValue      float64 `json:"property_value"`
	CapRate            float64 `json:"cap_rate"`
	OccupancyRate      float64 `json:"occupancy_rate"`
	NetOperatingIncome float64 `json:"net_operating_income"`
	TotalUnits         *int    `json:"total_units,omitempty"`
	AverageRent        *int    `json:"average_rent,omitempty"`
}

// ComparableProperty is a benchmark property generated as a perturbation of the subject.
type ComparableProperty struct {
	ID            string  `json:"id"`
	Address       string  `json:"address"`
	City          string  `json:"city"`
	PropertyValue float64 `json:"property_value"`
	CapRate       float64 `json:"cap_rate"`
	Distance      string  `json:"distance"`
	Similarity    int     `json:"similarity"`
}

// MarketTrend is one fiscal quarter of market data. Order within a trend list is
// chronological and must be preserved.
type MarketTrend struct {
	Period     string  `json:"period"`
	CapRate    float64 `json:"cap_rate"`
	Occupancy  float64 `json:"occupancy"`
	RentGrowth float64 `json:"rent_growth"`
}

// RiskLevel grades a risk category.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// RiskAssessment is one scored risk category.
type RiskAssessment struct {
	Category    string    `json:"category"`
	Level       RiskLevel `json:"level"`
	Score       int       `json:"score"`
	Description string    `json:"description"`
}

// RevenueOpportunity is a value-add opportunity with an estimated dollar range.
type RevenueOpportunity struct {
	Type           string `json:"type"`
	Description    string `json:"description"`
	PotentialValue int    `json:"potential_value"`
	Timeframe      string `json:"timeframe"`
	Confidence     int    `json:"confidence"`
}

// Recommendation is the investment call attached to an insight.
type Recommendation string

const (
	RecStrongBuy Recommendation = "Strong Buy"
	RecBuy       Recommendation = "Buy"
	RecHold      Recommendation = "Hold"
	// RecPass is part of the public contract but is never produced by the
	// generator; consumers may still receive it from external data.
	RecPass Recommendation = "Pass"
)

// AIInsight is the narrative summary attached to an analysis.
type AIInsight struct {
	Summary         string         `json:"summary"`
	KeyFindings     []string       `json:"key_findings"`
	Recommendation  Recommendation `json:"recommendation"`
	Confidence      int            `json:"confidence"`
	Reasoning       []string       `json:"reasoning"`
	ComparableDeals int            `json:"comparable_deals"`
}

// AnalysisResult is the aggregate root produced once per processed document.
// It is immutable after construction and is serialized whole into the history store.
type AnalysisResult struct {
	ID                   string               `json:"id"`
	DocumentID           string               `json:"document_id"`
	AnalyzedAt           time.Time            `json:"analyzed_at"`
	DocumentType         DocumentType         `json:"document_type"`
	ExtractedData        []ExtractedDataPoint `json:"extracted_data"`
	Metrics              PropertyMetrics      `json:"metrics"`
	Comparables          []ComparableProperty `json:"comparables"`
	MarketTrends         []MarketTrend        `json:"market_trends"`
	RiskAssessment       []RiskAssessment     `json:"risk_assessment"`
	RevenueOpportunities []RevenueOpportunity `json:"revenue_opportunities"`
	AIInsight            AIInsight            `json:"ai_insight"`
}
