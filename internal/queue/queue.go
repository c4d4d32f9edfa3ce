// Package queue provides the in-memory priority queue of pending job
// submissions. Entries are ordered by ascending priority key (lower
// dequeues first) with stable FIFO ordering between equal keys.
package queue

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/divyansh1099/AI-jobs/internal/types"
)

// PriorityQueue holds pending JobRecords ordered by priority key. All
// methods are safe for concurrent use; the coordinator loop and
// administrative callers (enqueue, remove, clear) may race.
type PriorityQueue struct {
	mu      sync.Mutex
	entries []*types.JobRecord
	scorer  *Scorer
	logger  *slog.Logger
}

// New creates an empty queue using the given scorer. A nil scorer uses the
// default keyword sets.
func New(scorer *Scorer, logger *slog.Logger) *PriorityQueue {
	if scorer == nil {
		scorer = NewScorer(DefaultScorerConfig())
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PriorityQueue{scorer: scorer, logger: logger}
}

// Enqueue assigns a fresh id, computes the priority key, and inserts the
// job in order. It always succeeds and returns the assigned id.
func (q *PriorityQueue) Enqueue(data types.JobCreate) string {
	return q.EnqueueJob(data).ID
}

// EnqueueJob is Enqueue for callers that also persist the record; it
// returns the stored record with id, priority, and timestamps assigned.
func (q *PriorityQueue) EnqueueJob(data types.JobCreate) *types.JobRecord {
	job := &types.JobRecord{
		ID:           uuid.NewString(),
		Title:        data.Title,
		Company:      data.Company,
		Platform:     data.Platform,
		URL:          data.URL,
		Description:  data.Description,
		Requirements: data.Requirements,
		Location:     data.Location,
		SalaryRange:  data.SalaryRange,
		Status:       types.StatusPending,
		CreatedAt:    time.Now(),
	}
	job.Priority = q.scorer.PriorityKey(data.Title, data.SalaryRange)

	q.mu.Lock()
	q.insert(job)
	depth := len(q.entries)
	q.mu.Unlock()

	q.logger.Info("job enqueued",
		"id", job.ID, "title", job.Title, "company", job.Company,
		"priority", job.Priority, "queue_depth", depth)
	return job
}

// Seed bulk-loads previously pending records, recomputing priority keys
// with the same scoring as Enqueue. Existing ids are preserved.
func (q *PriorityQueue) Seed(records []*types.JobRecord) {
	q.mu.Lock()
	for _, job := range records {
		job.Priority = q.scorer.PriorityKey(job.Title, job.SalaryRange)
		q.insert(job)
	}
	depth := len(q.entries)
	q.mu.Unlock()

	if len(records) > 0 {
		q.logger.Info("queue seeded", "loaded", len(records), "queue_depth", depth)
	}
}

// insert places the job before the first entry with a strictly greater
// priority key, so equal keys keep insertion order. Caller holds q.mu.
func (q *PriorityQueue) insert(job *types.JobRecord) {
	i := sort.Search(len(q.entries), func(i int) bool {
		return q.entries[i].Priority > job.Priority
	})
	q.entries = append(q.entries, nil)
	copy(q.entries[i+1:], q.entries[i:])
	q.entries[i] = job
}

// DequeueNext removes and returns the head of the queue. The second return
// is false when the queue is empty; calling on an empty queue has no side
// effects.
func (q *PriorityQueue) DequeueNext() (*types.JobRecord, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.entries) == 0 {
		return nil, false
	}
	head := q.entries[0]
	q.entries[0] = nil
	q.entries = q.entries[1:]
	return head, true
}

// RemoveByID deletes a pending entry if present; no-op when absent.
func (q *PriorityQueue) RemoveByID(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, job := range q.entries {
		if job.ID == id {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return
		}
	}
}

// SnapshotAll returns the pending records in dequeue order without
// mutating the queue.
func (q *PriorityQueue) SnapshotAll() []*types.JobRecord {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]*types.JobRecord, len(q.entries))
	copy(out, q.entries)
	return out
}

// Len returns the current queue depth.
func (q *PriorityQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// Clear empties the queue unconditionally.
func (q *PriorityQueue) Clear() {
	q.mu.Lock()
	n := len(q.entries)
	q.entries = nil
	q.mu.Unlock()
	if n > 0 {
		q.logger.Info("queue cleared", "dropped", n)
	}
}
