package automation

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/divyansh1099/AI-jobs/internal/executor"
	"github.com/divyansh1099/AI-jobs/internal/queue"
	"github.com/divyansh1099/AI-jobs/internal/types"
)

type statusWrite struct {
	id     string
	status types.JobStatus
	result *types.ExecutionResult
}

type fakeStore struct {
	mu      sync.Mutex
	writes  []statusWrite
	letters map[string]string
	err     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{letters: make(map[string]string)}
}

func (s *fakeStore) UpdateStatus(_ context.Context, id string, status types.JobStatus, result *types.ExecutionResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes = append(s.writes, statusWrite{id, status, result})
	return s.err
}

func (s *fakeStore) SaveCoverLetter(_ context.Context, id, letter string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.letters[id] = letter
	return s.err
}

func (s *fakeStore) statusesFor(id string) []types.JobStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []types.JobStatus
	for _, w := range s.writes {
		if w.id == id {
			out = append(out, w.status)
		}
	}
	return out
}

type fakeGenerator struct {
	text  string
	panic bool
}

func (g *fakeGenerator) Generate(context.Context, *types.JobRecord) string {
	if g.panic {
		panic("model exploded")
	}
	return g.text
}

type fakeSubmitter struct {
	mu      sync.Mutex
	calls   int
	rejects int
	started chan string
	release chan struct{}
	result  func(job *types.JobRecord) *types.ExecutionResult
}

func (f *fakeSubmitter) Submit(_ context.Context, job *types.JobRecord, _ string) (*types.ExecutionResult, error) {
	f.mu.Lock()
	f.calls++
	reject := f.rejects > 0
	if reject {
		f.rejects--
	}
	f.mu.Unlock()

	if reject {
		return nil, executor.ErrCapacity
	}
	if f.started != nil {
		f.started <- job.ID
	}
	if f.release != nil {
		<-f.release
	}
	if f.result != nil {
		return f.result(job), nil
	}
	return types.Succeeded(job.Platform).Finalize(time.Millisecond), nil
}

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newTestManager(q *queue.PriorityQueue, store *fakeStore, gen LetterWriter, sub Submitter) *Manager {
	return NewManager(q, store, gen, sub, discard()).
		WithIntervals(5*time.Millisecond, time.Millisecond)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		if cond() {
			return
		}
		select {
		case <-deadline:
			t.Fatal("condition not met in time")
		case <-time.After(2 * time.Millisecond):
		}
	}
}

func TestManagerProcessesQueueInOrder(t *testing.T) {
	q := queue.New(nil, discard())
	q.Enqueue(types.JobCreate{Title: "Intern", Company: "A", Platform: types.PlatformIndeed, URL: "https://indeed.com/1"})
	seniorID := q.Enqueue(types.JobCreate{Title: "Senior Engineer", Company: "B", Platform: types.PlatformLinkedIn, URL: "https://linkedin.com/1"})

	store := newFakeStore()
	sub := &fakeSubmitter{}
	m := newTestManager(q, store, &fakeGenerator{text: "Dear team"}, sub)

	m.Start(context.Background())
	defer m.Stop()

	waitFor(t, func() bool { return m.Stats().Processed == 2 })

	// Higher-priority job is written first.
	store.mu.Lock()
	firstID := store.writes[0].id
	store.mu.Unlock()
	assert.Equal(t, seniorID, firstID)

	assert.Equal(t,
		[]types.JobStatus{types.StatusProcessing, types.StatusCompleted},
		store.statusesFor(seniorID))
	store.mu.Lock()
	assert.Equal(t, "Dear team", store.letters[seniorID])
	store.mu.Unlock()
	assert.Equal(t, 0, q.Len())
}

func TestManagerStartIsIdempotent(t *testing.T) {
	q := queue.New(nil, discard())
	m := newTestManager(q, newFakeStore(), &fakeGenerator{text: "x"}, &fakeSubmitter{})

	m.Start(context.Background())
	m.Start(context.Background())
	assert.True(t, m.Running())

	m.Stop()
	assert.False(t, m.Running())
	// Stop on an idle manager does not block.
	m.Stop()
}

func TestManagerStopFinishesInFlightJob(t *testing.T) {
	q := queue.New(nil, discard())
	id := q.Enqueue(types.JobCreate{Title: "Engineer", Company: "A", Platform: types.PlatformLinkedIn, URL: "https://linkedin.com/1"})

	store := newFakeStore()
	sub := &fakeSubmitter{started: make(chan string, 1), release: make(chan struct{})}
	m := newTestManager(q, store, &fakeGenerator{text: "x"}, sub)

	m.Start(context.Background())
	<-sub.started

	stopDone := make(chan struct{})
	go func() {
		m.Stop()
		close(stopDone)
	}()

	// Stop must wait for the in-flight submission.
	select {
	case <-stopDone:
		t.Fatal("Stop returned while a submission was in flight")
	case <-time.After(20 * time.Millisecond):
	}

	close(sub.release)
	select {
	case <-stopDone:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return after submission finished")
	}

	statuses := store.statusesFor(id)
	require.NotEmpty(t, statuses)
	assert.True(t, statuses[len(statuses)-1].Terminal(), "in-flight job must reach a terminal status")
	assert.Equal(t, 0, q.Len())
}

func TestManagerRetriesOnCapacity(t *testing.T) {
	q := queue.New(nil, discard())
	id := q.Enqueue(types.JobCreate{Title: "Engineer", Company: "A", Platform: types.PlatformIndeed, URL: "https://indeed.com/1"})

	store := newFakeStore()
	sub := &fakeSubmitter{rejects: 3}
	m := newTestManager(q, store, &fakeGenerator{text: "x"}, sub)

	m.Start(context.Background())
	defer m.Stop()

	waitFor(t, func() bool { return m.Stats().Processed == 1 })

	sub.mu.Lock()
	calls := sub.calls
	sub.mu.Unlock()
	assert.Equal(t, 4, calls, "three capacity rejections then one accepted attempt")
	assert.Equal(t, types.StatusCompleted, store.statusesFor(id)[len(store.statusesFor(id))-1])
}

func TestManagerSurvivesStoreErrors(t *testing.T) {
	q := queue.New(nil, discard())
	q.Enqueue(types.JobCreate{Title: "A", Company: "A", Platform: types.PlatformIndeed, URL: "https://indeed.com/1"})
	q.Enqueue(types.JobCreate{Title: "B", Company: "B", Platform: types.PlatformIndeed, URL: "https://indeed.com/2"})

	store := newFakeStore()
	store.err = assert.AnError
	m := newTestManager(q, store, &fakeGenerator{text: "x"}, &fakeSubmitter{})

	m.Start(context.Background())
	defer m.Stop()

	waitFor(t, func() bool { return m.Stats().Processed == 2 })
	assert.Equal(t, 0, q.Len())
}

func TestManagerFallsBackWhenGeneratorPanics(t *testing.T) {
	q := queue.New(nil, discard())
	id := q.Enqueue(types.JobCreate{Title: "Engineer", Company: "Acme", Platform: types.PlatformIndeed, URL: "https://indeed.com/1"})

	store := newFakeStore()
	m := newTestManager(q, store, &fakeGenerator{panic: true}, &fakeSubmitter{})

	m.Start(context.Background())
	defer m.Stop()

	waitFor(t, func() bool { return m.Stats().Processed == 1 })

	store.mu.Lock()
	letter := store.letters[id]
	store.mu.Unlock()
	assert.NotEmpty(t, letter)
	assert.Contains(t, letter, "Acme")
	assert.Equal(t, types.StatusCompleted, store.statusesFor(id)[len(store.statusesFor(id))-1])
}

func TestManagerFailedResultMarksJobFailed(t *testing.T) {
	q := queue.New(nil, discard())
	id := q.Enqueue(types.JobCreate{Title: "Engineer", Company: "A", Platform: types.PlatformLinkedIn, URL: "https://linkedin.com/1"})

	store := newFakeStore()
	sub := &fakeSubmitter{result: func(job *types.JobRecord) *types.ExecutionResult {
		return types.Failed(job.Platform, types.ReasonStuckAtStep(3)).Finalize(time.Millisecond)
	}}
	m := newTestManager(q, store, &fakeGenerator{text: "x"}, sub)

	m.Start(context.Background())
	defer m.Stop()

	waitFor(t, func() bool { return m.Stats().Processed == 1 })

	statuses := store.statusesFor(id)
	assert.Equal(t, types.StatusFailed, statuses[len(statuses)-1])

	store.mu.Lock()
	var terminal *types.ExecutionResult
	for _, w := range store.writes {
		if w.result != nil {
			terminal = w.result
		}
	}
	store.mu.Unlock()
	require.NotNil(t, terminal)
	assert.Equal(t, "stuck at step 3", terminal.Reason)
}

func TestManagerStats(t *testing.T) {
	q := queue.New(nil, discard())
	q.Enqueue(types.JobCreate{Title: "A", Company: "A", Platform: types.PlatformIndeed, URL: "https://indeed.com/1"})

	m := newTestManager(q, newFakeStore(), &fakeGenerator{text: "x"}, &fakeSubmitter{})

	stats := m.Stats()
	assert.False(t, stats.Running)
	assert.Equal(t, int64(0), stats.Processed)
	assert.Equal(t, 1, stats.QueueDepth)

	m.Start(context.Background())
	assert.True(t, m.Stats().Running)
	waitFor(t, func() bool { return m.Stats().Processed == 1 })
	m.Stop()

	stats = m.Stats()
	assert.False(t, stats.Running)
	assert.Equal(t, int64(1), stats.Processed)
	assert.Equal(t, 0, stats.QueueDepth)
}
