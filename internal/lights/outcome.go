package lights

// OutcomeStatus is the terminal state of one device command.
type OutcomeStatus string

const (
	OutcomeSucceeded OutcomeStatus = "SUCCEEDED"
	OutcomeFailed    OutcomeStatus = "FAILED"
	OutcomeTimedOut  OutcomeStatus = "TIMED_OUT"
	OutcomeSkipped   OutcomeStatus = "SKIPPED"
)

// Outcome records how one device fared during a dispatch.
type Outcome struct {
	Status    OutcomeStatus `json:"status"`
	Attempts  int           `json:"attempts"`
	Error     string        `json:"error,omitempty"`
	ElapsedMs int64         `json:"elapsedMs"`
}
