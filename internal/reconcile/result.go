// Package reconcile maps inbound legislative records onto the persisted
// model with create-or-update semantics, so repeated runs converge to
// the same state.
package reconcile

import "fmt"

// Status classifies what happened to one inbound record.
type Status string

const (
	StatusCreated Status = "created"
	StatusUpdated Status = "updated"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Outcome is the per-record entry in a run result. Skipped counts as
// success: the record was already present in the desired state.
type Outcome struct {
	Resource string `csv:"resource"`
	Key      string `csv:"key"`
	Status   Status `csv:"status"`
	Reason   string `csv:"reason,omitempty"`
}

// Result accumulates per-record outcomes and tallies for one reconciler
// call; the orchestrator merges these into the run totals.
type Result struct {
	Succeeded int
	Failed    int
	Outcomes  []Outcome
}

// NewResult returns an empty result.
func NewResult() *Result {
	return &Result{}
}

// Success records a converged record.
func (r *Result) Success(resource, key string, status Status) {
	r.Succeeded++
	r.Outcomes = append(r.Outcomes, Outcome{Resource: resource, Key: key, Status: status})
}

// Fail records a skipped-with-error record.
func (r *Result) Fail(resource, key, reason string) {
	r.Failed++
	r.Outcomes = append(r.Outcomes, Outcome{Resource: resource, Key: key, Status: StatusFailed, Reason: reason})
}

// Merge folds another result into this one.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	r.Succeeded += other.Succeeded
	r.Failed += other.Failed
	r.Outcomes = append(r.Outcomes, other.Outcomes...)
}

// Total is the number of records seen.
func (r *Result) Total() int {
	return r.Succeeded + r.Failed
}

// String renders the counts for progress logging.
func (r *Result) String() string {
	return fmt.Sprintf("%d succeeded, %d failed", r.Succeeded, r.Failed)
}
