// Package executor drives platform-specific submission state machines
// against transient browser sessions under a global concurrency ceiling.
package executor

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/divyansh1099/AI-jobs/internal/browser"
	"github.com/divyansh1099/AI-jobs/internal/types"
)

// DefaultMaxConcurrent is the default submission concurrency ceiling.
const DefaultMaxConcurrent = 3

// ErrCapacity is returned when the concurrency ceiling is reached. The
// caller should retry later; the error is never fatal.
var ErrCapacity = errors.New("maximum concurrent submissions reached")

// Strategy drives one platform's application flow against a session.
// Implementations report failures as results, never as panics or errors
// leaking to the caller.
type Strategy interface {
	// Platform returns the platform tag stamped on results.
	Platform() string
	// Run executes the submission flow for one job.
	Run(ctx context.Context, session browser.Session, job *types.JobRecord, coverLetter string) *types.ExecutionResult
}

// Executor runs submissions with bounded concurrency. The slot counter is
// the only shared mutable state touched from concurrent submissions; it is
// adjusted atomically and released on every exit path.
type Executor struct {
	provider   browser.SessionProvider
	sem        *semaphore.Weighted
	active     atomic.Int32
	strategies map[string]Strategy
	fallback   Strategy
	logger     *slog.Logger
}

// New creates an executor with the default strategy set. maxConcurrent
// values below one fall back to the default ceiling.
func New(provider browser.SessionProvider, maxConcurrent int, logger *slog.Logger) *Executor {
	if maxConcurrent < 1 {
		maxConcurrent = DefaultMaxConcurrent
	}
	if logger == nil {
		logger = slog.Default()
	}

	e := &Executor{
		provider:   provider,
		sem:        semaphore.NewWeighted(int64(maxConcurrent)),
		strategies: make(map[string]Strategy),
		logger:     logger,
	}
	e.Register(NewLinkedInStrategy(logger))
	e.Register(NewIndeedStrategy(logger))
	e.fallback = NewPortalStrategy(time.Now().UnixNano(), logger)
	return e
}

// Register installs a strategy for its platform, replacing any existing
// one. This keeps the probabilistic portal stub swappable for real site
// logic without touching the concurrency contract.
func (e *Executor) Register(s Strategy) {
	e.strategies[s.Platform()] = s
}

// SetFallback replaces the strategy used for unrecognized platforms.
func (e *Executor) SetFallback(s Strategy) {
	e.fallback = s
}

// Active returns the number of currently running submissions.
func (e *Executor) Active() int {
	return int(e.active.Load())
}

// Submit runs one job's submission flow. It rejects immediately with
// ErrCapacity when the ceiling is reached; otherwise the returned result
// always carries a success flag, platform tag, and elapsed time. Session
// errors and panics become failed results, never propagated errors.
func (e *Executor) Submit(ctx context.Context, job *types.JobRecord, coverLetter string) (*types.ExecutionResult, error) {
	if !e.sem.TryAcquire(1) {
		return nil, ErrCapacity
	}
	e.active.Add(1)
	defer func() {
		e.active.Add(-1)
		e.sem.Release(1)
	}()

	start := time.Now()
	result := e.run(ctx, job, coverLetter)
	result.Finalize(time.Since(start))

	e.logger.Info("submission finished",
		"job_id", job.ID, "platform", result.Platform,
		"success", result.Success, "reason", result.Reason,
		"elapsed", result.Elapsed)
	return result, nil
}

// run executes the platform strategy inside the panic boundary.
func (e *Executor) run(ctx context.Context, job *types.JobRecord, coverLetter string) (result *types.ExecutionResult) {
	strategy := e.strategyFor(job.Platform)

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("submission panicked",
				"job_id", job.ID, "platform", job.Platform, "panic", r)
			result = types.Failed(strategy.Platform(), types.ReasonTechnicalError)
		}
	}()

	session, err := e.provider.AcquireSession(ctx, job.Platform)
	if err != nil {
		e.logger.Error("session acquisition failed", "job_id", job.ID, "error", err)
		return types.Failed(strategy.Platform(), types.ReasonTechnicalError)
	}
	defer func() { _ = session.Close() }()

	return strategy.Run(ctx, session, job, coverLetter)
}

func (e *Executor) strategyFor(platform string) Strategy {
	if s, ok := e.strategies[platform]; ok {
		return s
	}
	return e.fallback
}
