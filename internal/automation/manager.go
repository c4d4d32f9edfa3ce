// Package automation hosts the coordinator loop that drains the priority
// queue and drives each job through generation, submission, and write-back.
package automation

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/divyansh1099/AI-jobs/internal/executor"
	"github.com/divyansh1099/AI-jobs/internal/generation"
	"github.com/divyansh1099/AI-jobs/internal/queue"
	"github.com/divyansh1099/AI-jobs/internal/types"
)

// Default loop timings. The poll interval is how long the loop idles when
// the queue is empty; the capacity retry is how long it waits for a free
// submission slot.
const (
	DefaultPollInterval  = 5 * time.Second
	DefaultCapacityRetry = 500 * time.Millisecond
)

// JobStore is the persistence surface the coordinator writes through.
// Store errors are logged and never interrupt the pipeline; the in-memory
// record stays authoritative for the current run.
type JobStore interface {
	UpdateStatus(ctx context.Context, id string, status types.JobStatus, result *types.ExecutionResult) error
	SaveCoverLetter(ctx context.Context, id, letter string) error
}

// Submitter runs one submission under the shared concurrency ceiling.
type Submitter interface {
	Submit(ctx context.Context, job *types.JobRecord, coverLetter string) (*types.ExecutionResult, error)
}

// LetterWriter produces cover-letter text for a job.
type LetterWriter interface {
	Generate(ctx context.Context, job *types.JobRecord) string
}

// nopStore is the persistence used when no database is configured.
type nopStore struct{}

func (nopStore) UpdateStatus(context.Context, string, types.JobStatus, *types.ExecutionResult) error {
	return nil
}

func (nopStore) SaveCoverLetter(context.Context, string, string) error {
	return nil
}

// Manager owns the coordinator loop. Start and Stop are safe to call from
// any goroutine; at most one loop runs at a time.
type Manager struct {
	queue     *queue.PriorityQueue
	store     JobStore
	generator LetterWriter
	submitter Submitter
	closers   []io.Closer
	logger    *slog.Logger

	pollInterval  time.Duration
	capacityRetry time.Duration

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}

	processed atomic.Int64
}

// NewManager wires the coordinator. A nil store runs without
// persistence. Closers are released by Cleanup in the order given
// (browser provider, generation client, database pool).
func NewManager(q *queue.PriorityQueue, store JobStore, gen LetterWriter, sub Submitter, logger *slog.Logger, closers ...io.Closer) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if store == nil {
		store = nopStore{}
	}
	return &Manager{
		queue:         q,
		store:         store,
		generator:     gen,
		submitter:     sub,
		closers:       closers,
		logger:        logger,
		pollInterval:  DefaultPollInterval,
		capacityRetry: DefaultCapacityRetry,
	}
}

// WithIntervals overrides the loop timings; non-positive values keep the
// current setting.
func (m *Manager) WithIntervals(poll, capacityRetry time.Duration) *Manager {
	if poll > 0 {
		m.pollInterval = poll
	}
	if capacityRetry > 0 {
		m.capacityRetry = capacityRetry
	}
	return m
}

// Running reports whether the loop is currently active.
func (m *Manager) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// Stats returns the live pipeline counters.
func (m *Manager) Stats() types.PipelineStats {
	return types.PipelineStats{
		Running:    m.Running(),
		Processed:  m.processed.Load(),
		QueueDepth: m.queue.Len(),
	}
}

// Start launches the coordinator loop. Calling Start while a loop is
// already running is a logged no-op.
func (m *Manager) Start(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		m.logger.Info("automation already running")
		return
	}

	loopCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.done = make(chan struct{})
	m.running = true

	go m.loop(loopCtx)
	m.logger.Info("automation started", "queue_depth", m.queue.Len())
}

// Stop signals the loop and waits for it to finish. A job that has already
// been dequeued runs to its terminal status before the loop exits; queued
// jobs stay pending. Stop on an idle manager is a no-op.
func (m *Manager) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	cancel, done := m.cancel, m.done
	m.mu.Unlock()

	cancel()
	<-done

	m.mu.Lock()
	m.running = false
	m.mu.Unlock()
	m.logger.Info("automation stopped", "processed", m.processed.Load())
}

// Cleanup releases the wired resources. Call once, after Stop.
func (m *Manager) Cleanup() {
	m.Stop()
	for _, c := range m.closers {
		if err := c.Close(); err != nil {
			m.logger.Warn("cleanup close failed", "error", err)
		}
	}
}

func (m *Manager) loop(ctx context.Context) {
	defer close(m.done)

	for {
		if ctx.Err() != nil {
			return
		}

		job, ok := m.queue.DequeueNext()
		if !ok {
			select {
			case <-ctx.Done():
				return
			case <-time.After(m.pollInterval):
			}
			continue
		}

		m.processJob(ctx, job)
	}
}

// processJob drives one dequeued job to a terminal status. Cancellation of
// the loop context does not abandon the job: a submission that has started
// always finishes and gets its write-back.
func (m *Manager) processJob(ctx context.Context, job *types.JobRecord) {
	// Dequeued jobs are owned by this loop iteration; shield the remaining
	// work from loop cancellation so no job is left in processing.
	jobCtx := context.WithoutCancel(ctx)

	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("job processing panicked", "job_id", job.ID, "panic", r)
			m.finish(jobCtx, job, types.Failed(job.Platform, types.ReasonTechnicalError).Finalize(0))
		}
	}()

	m.logger.Info("processing job",
		"job_id", job.ID, "title", job.Title, "company", job.Company,
		"platform", job.Platform, "priority", job.Priority)

	job.Status = types.StatusProcessing
	if err := m.store.UpdateStatus(jobCtx, job.ID, types.StatusProcessing, nil); err != nil {
		m.logger.Warn("status write failed", "job_id", job.ID, "error", err)
	}

	letter := m.writeLetter(jobCtx, job)
	job.CoverLetter = letter
	if err := m.store.SaveCoverLetter(jobCtx, job.ID, letter); err != nil {
		m.logger.Warn("cover letter write failed", "job_id", job.ID, "error", err)
	}

	result := m.submit(jobCtx, job, letter)
	m.finish(jobCtx, job, result)
}

// writeLetter generates the cover letter inside its own failure boundary,
// so a generator panic degrades to the static fallback letter.
func (m *Manager) writeLetter(ctx context.Context, job *types.JobRecord) (letter string) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("letter generation panicked", "job_id", job.ID, "panic", r)
			letter = generation.FallbackLetter(job)
		}
	}()

	letter = m.generator.Generate(ctx, job)
	if letter == "" {
		letter = generation.FallbackLetter(job)
	}
	return letter
}

// submit retries until a submission slot is free, then runs the flow. The
// executor is shared with ad-hoc callers, so capacity rejections here just
// mean another submission is in flight.
func (m *Manager) submit(ctx context.Context, job *types.JobRecord, letter string) *types.ExecutionResult {
	for {
		result, err := m.submitter.Submit(ctx, job, letter)
		if err == nil {
			return result
		}
		if errors.Is(err, executor.ErrCapacity) {
			time.Sleep(m.capacityRetry)
			continue
		}
		m.logger.Error("submission failed", "job_id", job.ID, "error", err)
		return types.Failed(job.Platform, types.ReasonTechnicalError).Finalize(0)
	}
}

// finish merges the result into the record and persists the terminal
// status.
func (m *Manager) finish(ctx context.Context, job *types.JobRecord, result *types.ExecutionResult) {
	job.Result = result
	if result.Success {
		job.Status = types.StatusCompleted
	} else {
		job.Status = types.StatusFailed
	}
	now := time.Now()
	job.AppliedAt = &now

	if err := m.store.UpdateStatus(ctx, job.ID, job.Status, result); err != nil {
		m.logger.Warn("terminal status write failed", "job_id", job.ID, "error", err)
	}

	m.processed.Add(1)
	m.logger.Info("job finished",
		"job_id", job.ID, "status", job.Status,
		"success", result.Success, "reason", result.Reason)
}
