package executor

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/divyansh1099/AI-jobs/internal/browser"
	"github.com/divyansh1099/AI-jobs/internal/types"
)

// portalSuccessRate is the coarse judgment odds for generic portals.
const portalSuccessRate = 0.80

// portalFailureReasons are sampled when the judgment step fails.
var portalFailureReasons = []string{
	types.ReasonDeadlinePassed,
	types.ReasonPositionUnavailable,
	types.ReasonTechnicalError,
	types.ReasonVerificationChallenge,
}

// PortalStrategy handles generic company portals. Site variability is not
// modeled: after navigation the outcome is a single probabilistic
// judgment step. Replace via Executor.SetFallback when real portal logic
// exists.
type PortalStrategy struct {
	mu     sync.Mutex
	rng    *rand.Rand
	logger *slog.Logger
}

// NewPortalStrategy creates the generic portal strategy with a seeded rng.
func NewPortalStrategy(seed int64, logger *slog.Logger) *PortalStrategy {
	if logger == nil {
		logger = slog.Default()
	}
	return &PortalStrategy{rng: rand.New(rand.NewSource(seed)), logger: logger}
}

// Platform returns the company_portal platform tag.
func (s *PortalStrategy) Platform() string {
	return types.PlatformCompanyPortal
}

// Run navigates to the posting and applies the judgment step.
func (s *PortalStrategy) Run(ctx context.Context, session browser.Session, job *types.JobRecord, coverLetter string) *types.ExecutionResult {
	if err := session.Navigate(ctx, job.URL); err != nil {
		s.logger.Warn("navigation failed", "job_id", job.ID, "error", err)
		return types.Failed(s.Platform(), types.ReasonTechnicalError)
	}

	s.mu.Lock()
	success := s.rng.Float64() < portalSuccessRate
	reason := portalFailureReasons[s.rng.Intn(len(portalFailureReasons))]
	s.mu.Unlock()

	if !success {
		return types.Failed(s.Platform(), reason)
	}
	return types.Succeeded(s.Platform())
}
