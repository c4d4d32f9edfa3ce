package executor

import (
	"context"
	"log/slog"

	"github.com/divyansh1099/AI-jobs/internal/browser"
	"github.com/divyansh1099/AI-jobs/internal/types"
)

// maxEasyApplySteps bounds the LinkedIn Easy Apply wizard.
const maxEasyApplySteps = 5

// LinkedIn page selectors.
const (
	selEasyApplyButton = `[data-test="job-detail-easy-apply-button"]`
	selCoverLetterArea = `textarea[name="cover-letter"], textarea[id*="cover"]`
	selSubmitButton    = `[aria-label="Submit application"]`
	selContinueButton  = `[aria-label="Continue to next step"]`
	selConfirmation    = `.artdeco-inline-feedback--success, .post-apply-confirmation`
)

// LinkedInStrategy drives the Easy Apply wizard: at most five steps, a
// cover-letter field filled once, a submit control terminating the flow,
// and continue controls advancing it.
type LinkedInStrategy struct {
	logger *slog.Logger
}

// NewLinkedInStrategy creates the Easy Apply strategy.
func NewLinkedInStrategy(logger *slog.Logger) *LinkedInStrategy {
	if logger == nil {
		logger = slog.Default()
	}
	return &LinkedInStrategy{logger: logger}
}

// Platform returns the linkedin platform tag.
func (s *LinkedInStrategy) Platform() string {
	return types.PlatformLinkedIn
}

// Run executes the Easy Apply flow for one job.
func (s *LinkedInStrategy) Run(ctx context.Context, session browser.Session, job *types.JobRecord, coverLetter string) *types.ExecutionResult {
	if err := session.Navigate(ctx, job.URL); err != nil {
		s.logger.Warn("navigation failed", "job_id", job.ID, "error", err)
		return types.Failed(s.Platform(), types.ReasonTechnicalError)
	}

	easyApply, err := session.FindControl(ctx, selEasyApplyButton)
	if err != nil {
		return types.Failed(s.Platform(), types.ReasonTechnicalError)
	}
	if easyApply == nil {
		return types.Failed(s.Platform(), types.ReasonApplyNotFound)
	}
	if err := session.Activate(ctx, easyApply); err != nil {
		return types.Failed(s.Platform(), types.ReasonTechnicalError)
	}

	coverFilled := false
	stepsCompleted := 0

	for step := 1; step <= maxEasyApplySteps; step++ {
		if !coverFilled {
			field, err := session.FindControl(ctx, selCoverLetterArea)
			if err != nil {
				return s.failedAt(stepsCompleted, types.ReasonTechnicalError)
			}
			if field != nil {
				if err := session.FillText(ctx, field, coverLetter); err != nil {
					return s.failedAt(stepsCompleted, types.ReasonTechnicalError)
				}
				coverFilled = true
				s.logger.Debug("cover letter filled", "job_id", job.ID, "step", step)
			}
		}

		submit, err := session.FindControl(ctx, selSubmitButton)
		if err != nil {
			return s.failedAt(stepsCompleted, types.ReasonTechnicalError)
		}
		if submit != nil {
			if err := session.Activate(ctx, submit); err != nil {
				return s.failedAt(stepsCompleted, types.ReasonTechnicalError)
			}
			stepsCompleted = step
			return s.confirm(ctx, session, stepsCompleted)
		}

		next, err := session.FindControl(ctx, selContinueButton)
		if err != nil {
			return s.failedAt(stepsCompleted, types.ReasonTechnicalError)
		}
		if next == nil {
			return s.failedAt(stepsCompleted, types.ReasonStuckAtStep(step))
		}
		if err := session.Activate(ctx, next); err != nil {
			return s.failedAt(stepsCompleted, types.ReasonTechnicalError)
		}
		stepsCompleted = step
	}

	return s.failedAt(stepsCompleted, types.ReasonStepLimitExceeded)
}

// confirm checks the post-submit confirmation indicator.
func (s *LinkedInStrategy) confirm(ctx context.Context, session browser.Session, steps int) *types.ExecutionResult {
	conf, err := session.FindControl(ctx, selConfirmation)
	if err != nil || conf == nil {
		return s.failedAt(steps, types.ReasonVerificationChallenge)
	}
	res := types.Succeeded(types.PlatformLinkedIn)
	res.StepsCompleted = steps
	return res
}

func (s *LinkedInStrategy) failedAt(steps int, reason string) *types.ExecutionResult {
	res := types.Failed(types.PlatformLinkedIn, reason)
	res.StepsCompleted = steps
	return res
}
