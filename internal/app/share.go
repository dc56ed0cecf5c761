package app

import (
	"fmt"
	"strings"

	"github.com/gocanopy/dealsense/internal/models"
	"github.com/gocanopy/dealsense/pkg/utils"
)

// ShareInfo is everything the share overlay needs: the link itself plus
// ready-made subject/body texts for mail and chat intents.
type ShareInfo struct {
	URL          string `json:"url"`
	Title        string `json:"title"`
	Message      string `json:"message"`
	EmailSubject string `json:"email_subject"`
	EmailBody    string `json:"email_body"`
}

// ShareURL builds the public results link for an analysis. publicBase has any
// trailing slash stripped so the result is stable regardless of config style.
func ShareURL(publicBase, analysisID string) string {
	return strings.TrimRight(publicBase, "/") + "/results/" + analysisID
}

// BuildShareInfo assembles the share payload for a completed analysis.
func BuildShareInfo(publicBase string, a *models.AnalysisResult) ShareInfo {
	url := ShareURL(publicBase, a.ID)
	title := fmt.Sprintf("Investment Analysis: %s", a.AIInsight.Recommendation)
	message := fmt.Sprintf("%s • %s at %s cap rate. %s",
		a.AIInsight.Recommendation,
		utils.FormatCurrency(a.Metrics.PropertyValue),
		utils.FormatPercentage(a.Metrics.CapRate, 2),
		url)
	return ShareInfo{
		URL:          url,
		Title:        title,
		Message:      message,
		EmailSubject: title,
		EmailBody:    fmt.Sprintf("%s\n\nView the full analysis: %s", a.AIInsight.Summary, url),
	}
}
