package executor

import (
	"context"
	"log/slog"

	"github.com/divyansh1099/AI-jobs/internal/browser"
	"github.com/divyansh1099/AI-jobs/internal/types"
)

// Indeed page selectors.
const (
	selIndeedApplyButton  = `[data-jk="apply"], .ia-IndeedApplyButton`
	selIndeedCoverField   = `textarea[name="coverletter"]`
	selIndeedSubmitButton = `[data-testid="apply-form-submit"]`
	selIndeedConfirmation = `.indeed-apply-confirmation`
)

// IndeedStrategy drives the single-form direct apply flow: apply control,
// optional cover-letter field, submit control, confirmation indicator.
type IndeedStrategy struct {
	logger *slog.Logger
}

// NewIndeedStrategy creates the direct apply strategy.
func NewIndeedStrategy(logger *slog.Logger) *IndeedStrategy {
	if logger == nil {
		logger = slog.Default()
	}
	return &IndeedStrategy{logger: logger}
}

// Platform returns the indeed platform tag.
func (s *IndeedStrategy) Platform() string {
	return types.PlatformIndeed
}

// Run executes the direct apply flow for one job.
func (s *IndeedStrategy) Run(ctx context.Context, session browser.Session, job *types.JobRecord, coverLetter string) *types.ExecutionResult {
	if err := session.Navigate(ctx, job.URL); err != nil {
		s.logger.Warn("navigation failed", "job_id", job.ID, "error", err)
		return types.Failed(s.Platform(), types.ReasonTechnicalError)
	}

	apply, err := session.FindControl(ctx, selIndeedApplyButton)
	if err != nil {
		return types.Failed(s.Platform(), types.ReasonTechnicalError)
	}
	if apply == nil {
		return types.Failed(s.Platform(), types.ReasonApplyNotFound)
	}
	if err := session.Activate(ctx, apply); err != nil {
		return types.Failed(s.Platform(), types.ReasonTechnicalError)
	}

	field, err := session.FindControl(ctx, selIndeedCoverField)
	if err != nil {
		return types.Failed(s.Platform(), types.ReasonTechnicalError)
	}
	if field != nil {
		if err := session.FillText(ctx, field, coverLetter); err != nil {
			return types.Failed(s.Platform(), types.ReasonTechnicalError)
		}
	}

	submit, err := session.FindControl(ctx, selIndeedSubmitButton)
	if err != nil {
		return types.Failed(s.Platform(), types.ReasonTechnicalError)
	}
	if submit == nil {
		return types.Failed(s.Platform(), types.ReasonSubmitNotFound)
	}
	if err := session.Activate(ctx, submit); err != nil {
		return types.Failed(s.Platform(), types.ReasonTechnicalError)
	}

	conf, err := session.FindControl(ctx, selIndeedConfirmation)
	if err != nil {
		return types.Failed(s.Platform(), types.ReasonTechnicalError)
	}
	if conf == nil {
		return types.Failed(s.Platform(), types.ReasonPositionUnavailable)
	}
	return types.Succeeded(s.Platform())
}
