package strategy

import (
	"time"

	"github.com/nerrad567/gray-logic-hub/internal/command"
	"github.com/nerrad567/gray-logic-hub/internal/device"
)

// State is a strategy builder state.
type State string

const (
	StateCollecting State = "collecting"
	StateExecuting  State = "executing"
	StateDone       State = "done"
)

// Mode records how an execution was started.
type Mode string

const (
	ModeRun    Mode = "run"     // Run: strategy stays open
	ModeFinish Mode = "finish"  // Finish: strategy closed afterwards
	ModeRunAll Mode = "run_all" // RunAll: built and finished in one pass
)

// ExecutionStatus summarises an execution.
type ExecutionStatus string

const (
	StatusCompleted ExecutionStatus = "completed"
	StatusPartial   ExecutionStatus = "partial" // at least one step reported not-ready
)

// Step is the outcome of one strategy entry.
type Step struct {
	Index  int            `json:"index"`
	Result command.Result `json:"result"`
}

// Ready reports whether the step completed without a not-ready report.
func (s Step) Ready() bool { return s.Result.Status == device.StatusOK }

// Execution tracks a single run of a strategy.
type Execution struct {
	ID          string          `json:"id"`
	ObserverID  string          `json:"observer_id"`
	Mode        Mode            `json:"mode"`
	Status      ExecutionStatus `json:"status"`
	Steps       []Step          `json:"steps"`
	Rejected    []int           `json:"rejected,omitempty"` // RunAll picks outside the replica when selected
	Skipped     []int           `json:"skipped,omitempty"`  // recorded indices the replica no longer holds
	StartedAt   time.Time       `json:"started_at"`
	CompletedAt time.Time       `json:"completed_at"`
	DurationMS  int             `json:"duration_ms"`
}

// Pick is one entry of a RunAll script.
type Pick struct {
	index  int
	finish bool
}

// Add returns a pick that appends catalog index i to the strategy.
func Add(i int) Pick { return Pick{index: i} }

// FinishPick returns the terminate signal for RunAll.
func FinishPick() Pick { return Pick{finish: true} }

// IsFinish reports whether p is the terminate signal.
func (p Pick) IsFinish() bool { return p.finish }

// Index returns the catalog index of an Add pick.
func (p Pick) Index() int { return p.index }
