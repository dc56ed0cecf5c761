// Package pipeline runs the scripted processing choreography. The stages are
// pure pacing: no work happens while they advance, and a run always completes.
package pipeline

import (
	"strconv"
	"time"

	"github.com/gocanopy/dealsense/internal/models"
)

// stageScript pairs a stage definition with its animation timing and the
// message shown once it completes.
type stageScript struct {
	label        string
	startMessage string
	finalMessage string
	duration     time.Duration
}

var script = []stageScript{
	{
		label:        "Extracting document text",
		startMessage: "Reading PDF structure...",
		finalMessage: "Reading document structure...",
		duration:     2000 * time.Millisecond,
	},
	{
		label:        "Identifying data points",
		startMessage: "Detecting property information...",
		finalMessage: "Found 47 data points...",
		duration:     2500 * time.Millisecond,
	},
	{
		label:        "Structuring information",
		startMessage: "Organizing financial data...",
		finalMessage: "Organizing financial data...",
		duration:     2000 * time.Millisecond,
	},
	{
		label:        "Analyzing comparables",
		startMessage: "Searching institutional database...",
		finalMessage: "Comparing against 127 institutional deals...",
		duration:     3000 * time.Millisecond,
	},
	{
		label:        "Generating insights",
		startMessage: "Preparing investment analysis...",
		finalMessage: "Finalizing investment analysis...",
		duration:     2000 * time.Millisecond,
	},
}

// Stages returns the stage timeline in its initial (all pending) state.
func Stages() []models.ProcessingStage {
	out := make([]models.ProcessingStage, len(script))
	for i, s := range script {
		out[i] = models.ProcessingStage{
			ID:       strconv.Itoa(i + 1),
			Label:    s.label,
			Status:   models.StagePending,
			Progress: 0,
			Message:  s.startMessage,
		}
	}
	return out
}
