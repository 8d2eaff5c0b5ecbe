// Package sandbox defines the contract for isolated execution of
// user-submitted code. Submitted code never runs on the host directly;
// implementations must confine it to a throwaway workspace with bounded
// time and resources.
package sandbox

import "context"

// Runner executes a code submission in an isolated environment.
type Runner interface {
	// Run executes code and returns the captured result. Failures of the
	// submitted code itself (exceptions, non-zero exits, resource limits)
	// are captured inside the result, never returned as an error; the error
	// return is reserved for host-side faults such as an unusable
	// interpreter or workspace.
	Run(ctx context.Context, code string) (*Result, error)
}

// Result captures the outcome of one sandboxed run.
type Result struct {
	// Stdout and Stderr hold the captured output streams. Stderr also
	// carries the textual form of any fault in the submitted code.
	Stdout string
	Stderr string

	// Truncated is set when the combined output exceeded the byte budget
	// and was cut.
	Truncated bool

	// TimedOut is set when the run was killed at the wall-clock deadline.
	// Partial output is discarded in that case.
	TimedOut bool
}

// Empty reports whether the run produced no output at all.
func (r *Result) Empty() bool {
	return r.Stdout == "" && r.Stderr == ""
}
