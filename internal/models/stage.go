package models

// StageStatus is the state of one processing stage.
type StageStatus string

const (
	StagePending    StageStatus = "pending"
	StageProcessing StageStatus = "processing"
	StageComplete   StageStatus = "complete"
)

// ProcessingStage is one step in the scripted processing timeline. Transient
// presentation state; never persisted.
type ProcessingStage struct {
	ID       string      `json:"id"`
	Label    string      `json:"label"`
	Status   StageStatus `json:"status"`
	Progress float64     `json:"progress"`
	Message  string      `json:"message,omitempty"`
}
