package domain

import "time"

// CommandResult is the outcome of one external command
type CommandResult struct {
	Command  string        `json:"command"`
	ExitCode int           `json:"exit_code"`
	Defined  bool          `json:"defined"` // false when the process died without an exit code
	Duration time.Duration `json:"duration"`
	Skipped  bool          `json:"skipped,omitempty"`
}

// Failed reports whether the command exited with a defined nonzero code
func (r CommandResult) Failed() bool {
	return r.Defined && r.ExitCode != 0
}

// Step is one named stage of a run
type Step struct {
	Name   string        `json:"name"`
	Result CommandResult `json:"result"`
}

// RunReport is the persisted summary of a run
type RunReport struct {
	RunID           string    `json:"run_id"`
	Platform        Platform  `json:"platform"`
	Jobs            int       `json:"jobs"`
	Inputs          []string  `json:"inputs"`
	Targets         []string  `json:"targets"`
	Steps           []Step    `json:"steps"`
	ExitCode        int       `json:"exit_code"`
	Error           string    `json:"error,omitempty"`
	StartedAt       time.Time `json:"started_at"`
	Duration        string    `json:"duration"`
	DurationSeconds float64   `json:"duration_seconds"`
}

// Succeeded reports whether the run finished with exit code 0
func (r *RunReport) Succeeded() bool {
	return r.ExitCode == 0 && r.Error == ""
}

// FailedSteps returns the steps whose command failed
func (r *RunReport) FailedSteps() []Step {
	var failed []Step
	for _, s := range r.Steps {
		if s.Result.Failed() {
			failed = append(failed, s)
		}
	}
	return failed
}
