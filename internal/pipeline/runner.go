package pipeline

import (
	"time"

	"github.com/gocanopy/dealsense/internal/models"
)

const (
	// progressSteps is the number of discrete progress ticks per stage.
	progressSteps = 20
	// interStagePause separates a completed stage from the next one starting.
	interStagePause = 300 * time.Millisecond
	// completionPause is the tail delay before the run reports done.
	completionPause = 500 * time.Millisecond
	// dataPointTarget is the counter shown while the second stage runs.
	dataPointTarget = 47
)

// Sleeper paces the animation. Tests inject a no-op implementation so that a
// run completes instantly.
type Sleeper interface {
	Sleep(d time.Duration)
}

// SystemSleeper paces with real wall-clock delays.
type SystemSleeper struct{}

func (SystemSleeper) Sleep(d time.Duration) { time.Sleep(d) }

// Progress is a snapshot handed to the runner's observer after every tick.
type Progress struct {
	Stages          []models.ProcessingStage `json:"stages"`
	CurrentStage    int                      `json:"current_stage"`
	DataPointsFound int                      `json:"data_points_found"`
}

// Runner advances the scripted stage sequence. It performs no real work,
// cannot fail, and cannot be cancelled once started.
type Runner struct {
	sleeper  Sleeper
	onUpdate func(Progress)
}

// NewRunner creates a runner. onUpdate may be nil; a nil sleeper defaults to
// real delays.
func NewRunner(sleeper Sleeper, onUpdate func(Progress)) *Runner {
	if sleeper == nil {
		sleeper = SystemSleeper{}
	}
	return &Runner{sleeper: sleeper, onUpdate: onUpdate}
}

// Run plays the whole script and returns the completed timeline.
func (r *Runner) Run() []models.ProcessingStage {
	stages := Stages()
	dataPoints := 0

	for idx := range stages {
		stages[idx].Status = models.StageProcessing
		stages[idx].Progress = 0
		r.notify(stages, idx, dataPoints)

		stepDuration := script[idx].duration / progressSteps
		for step := 1; step <= progressSteps; step++ {
			r.sleeper.Sleep(stepDuration)
			stages[idx].Progress = float64(step) / progressSteps * 100
			if idx == 1 {
				dataPoints = step * dataPointTarget / progressSteps
			}
			r.notify(stages, idx, dataPoints)
		}

		stages[idx].Status = models.StageComplete
		stages[idx].Progress = 100
		stages[idx].Message = script[idx].finalMessage
		r.notify(stages, idx, dataPoints)
		r.sleeper.Sleep(interStagePause)
	}

	r.sleeper.Sleep(completionPause)
	return stages
}

func (r *Runner) notify(stages []models.ProcessingStage, current, dataPoints int) {
	if r.onUpdate == nil {
		return
	}
	snapshot := make([]models.ProcessingStage, len(stages))
	copy(snapshot, stages)
	r.onUpdate(Progress{Stages: snapshot, CurrentStage: current, DataPointsFound: dataPoints})
}
