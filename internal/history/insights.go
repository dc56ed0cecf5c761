package history

import (
	"fmt"

	"github.com/gocanopy/dealsense/pkg/utils"
)

// PortfolioInsight is the returning-user banner payload.
type PortfolioInsight struct {
	Message    string `json:"message"`
	HasHistory bool   `json:"has_history"`
}

// IsReturningUser reports whether any deal has been analyzed before.
func IsReturningUser(s Store) bool {
	return s.Load().TotalDeals > 0
}

// Insights returns the portfolio status message keyed on deal count.
func Insights(s Store) PortfolioInsight {
	h := s.Load()

	switch {
	case h.TotalDeals == 0:
		return PortfolioInsight{
			Message:    "Building your institutional memory...",
			HasHistory: false,
		}
	case h.TotalDeals == 1:
		return PortfolioInsight{
			Message:    "Your institutional intelligence is beginning to compound",
			HasHistory: true,
		}
	default:
		return PortfolioInsight{
			Message:    fmt.Sprintf("Analyzing against %d previous deals in your portfolio", h.TotalDeals),
			HasHistory: true,
		}
	}
}

// FormatSummary renders a one-line history summary for display.
func FormatSummary(s Store) string {
	h := s.Load()
	if h.TotalDeals == 0 {
		return "No previous analyses"
	}
	return fmt.Sprintf("%d deal%s analyzed • Avg Cap Rate: %.2f%%",
		h.TotalDeals, utils.Plural(h.TotalDeals), h.AverageCapRate)
}
