package types

import (
	"fmt"
	"time"
)

// Failure reason constants form the fixed vocabulary recorded on a failed
// submission. StuckAtStep is the one parameterized reason; use
// ReasonStuckAtStep to format it.
const (
	ReasonDeadlinePassed        = "application deadline passed"
	ReasonPositionUnavailable   = "position no longer available"
	ReasonTechnicalError        = "technical error during submission"
	ReasonVerificationChallenge = "account verification required"
	ReasonApplyNotFound         = "apply control not found"
	ReasonSubmitNotFound        = "submit control not found"
	ReasonStepLimitExceeded     = "step limit exceeded"
)

// ReasonStuckAtStep formats the step-progress failure reason for the
// multi-step Easy Apply flow.
func ReasonStuckAtStep(step int) string {
	return fmt.Sprintf("stuck at step %d", step)
}

// ExecutionResult is the outcome of driving one submission state machine.
// It is produced by the executor and merged into the JobRecord before the
// final status write-back.
type ExecutionResult struct {
	Success        bool          `json:"success"`
	Platform       string        `json:"platform"`
	Elapsed        time.Duration `json:"-"`
	ElapsedSeconds float64       `json:"processing_time"`
	Reason         string        `json:"error,omitempty"`
	StepsCompleted int           `json:"steps_completed,omitempty"`
	Timestamp      time.Time     `json:"timestamp"`
}

// Failed builds a failed result for a platform with the given reason.
func Failed(platform, reason string) *ExecutionResult {
	return &ExecutionResult{
		Success:   false,
		Platform:  platform,
		Reason:    reason,
		Timestamp: time.Now(),
	}
}

// Succeeded builds a successful result for a platform.
func Succeeded(platform string) *ExecutionResult {
	return &ExecutionResult{
		Success:   true,
		Platform:  platform,
		Timestamp: time.Now(),
	}
}

// Finalize stamps the elapsed duration in both native and serialized forms.
func (r *ExecutionResult) Finalize(elapsed time.Duration) *ExecutionResult {
	r.Elapsed = elapsed
	r.ElapsedSeconds = elapsed.Seconds()
	return r
}
