package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/divyansh1099/AI-jobs/internal/types"
)

func newTestQueue(t *testing.T) *PriorityQueue {
	t.Helper()
	return New(nil, nil)
}

func TestPriorityKey(t *testing.T) {
	scorer := NewScorer(DefaultScorerConfig())

	tests := []struct {
		name   string
		title  string
		salary string
		want   int
	}{
		{"seniority keyword", "Senior Software Engineer", "", -10},
		{"seniority wins over role", "Lead Developer", "", -10},
		{"role keyword only", "Software Engineer", "", -5},
		{"six figure salary stacks", "Senior Backend Engineer", "$150,000", -15},
		{"salary alone", "Intern", "$100,000 - $120,000", -5},
		{"five figure salary ignored", "Senior Engineer", "$90,000", -10},
		{"uncompensated digits ignored", "Engineer", "competitive", -5},
		{"no signal", "Intern", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scorer.PriorityKey(tt.title, tt.salary))
		})
	}
}

func TestEnqueueDequeueOrder(t *testing.T) {
	q := newTestQueue(t)

	q.Enqueue(types.JobCreate{Title: "Intern", Company: "A", Platform: types.PlatformIndeed, URL: "https://indeed.com/jobs/1"})
	q.Enqueue(types.JobCreate{Title: "Software Engineer", Company: "B", Platform: types.PlatformIndeed, URL: "https://indeed.com/jobs/2"})
	q.Enqueue(types.JobCreate{Title: "Senior Software Engineer", Company: "C", Platform: types.PlatformLinkedIn, URL: "https://linkedin.com/jobs/3"})

	titles := []string{}
	for {
		job, ok := q.DequeueNext()
		if !ok {
			break
		}
		titles = append(titles, job.Title)
	}
	assert.Equal(t, []string{"Senior Software Engineer", "Software Engineer", "Intern"}, titles)
}

func TestDequeueIsNonDecreasingWithStableTies(t *testing.T) {
	q := newTestQueue(t)

	// Several jobs that tie on priority must come back in enqueue order.
	id1 := q.Enqueue(types.JobCreate{Title: "Software Engineer", Company: "First", Platform: types.PlatformIndeed, URL: "https://indeed.com/a"})
	id2 := q.Enqueue(types.JobCreate{Title: "Backend Developer", Company: "Second", Platform: types.PlatformIndeed, URL: "https://indeed.com/b"})
	q.Enqueue(types.JobCreate{Title: "Staff Engineer", Company: "Third", Platform: types.PlatformIndeed, URL: "https://indeed.com/c"})
	id4 := q.Enqueue(types.JobCreate{Title: "Data Analyst", Company: "Fourth", Platform: types.PlatformIndeed, URL: "https://indeed.com/d"})

	var got []*types.JobRecord
	prev := -1 << 30
	for {
		job, ok := q.DequeueNext()
		if !ok {
			break
		}
		require.GreaterOrEqual(t, job.Priority, prev, "priority keys must be non-decreasing")
		prev = job.Priority
		got = append(got, job)
	}

	require.Len(t, got, 4)
	assert.Equal(t, "Third", got[0].Company)
	// The three -5 jobs keep their enqueue order.
	assert.Equal(t, []string{id1, id2, id4}, []string{got[1].ID, got[2].ID, got[3].ID})
}

func TestSeniorSalaryBeatsIntern(t *testing.T) {
	q := newTestQueue(t)
	q.Enqueue(types.JobCreate{Title: "Intern", Company: "Acme", Platform: types.PlatformIndeed, URL: "https://indeed.com/i"})
	q.Enqueue(types.JobCreate{Title: "Senior Backend Engineer", Company: "Acme", Platform: types.PlatformLinkedIn, URL: "https://linkedin.com/s", SalaryRange: "$150,000"})

	job, ok := q.DequeueNext()
	require.True(t, ok)
	assert.Equal(t, "Senior Backend Engineer", job.Title)
}

func TestDequeueEmpty(t *testing.T) {
	q := newTestQueue(t)
	for i := 0; i < 3; i++ {
		job, ok := q.DequeueNext()
		assert.Nil(t, job)
		assert.False(t, ok)
	}
}

func TestRemoveByID(t *testing.T) {
	q := newTestQueue(t)
	id := q.Enqueue(types.JobCreate{Title: "Engineer", Company: "A", Platform: types.PlatformIndeed, URL: "https://indeed.com/1"})
	q.Enqueue(types.JobCreate{Title: "Engineer", Company: "B", Platform: types.PlatformIndeed, URL: "https://indeed.com/2"})

	q.RemoveByID(id)
	assert.Equal(t, 1, q.Len())

	// Removing an absent id is a no-op.
	q.RemoveByID("missing")
	assert.Equal(t, 1, q.Len())
}

func TestSnapshotDoesNotMutate(t *testing.T) {
	q := newTestQueue(t)
	q.Enqueue(types.JobCreate{Title: "Senior Engineer", Company: "A", Platform: types.PlatformIndeed, URL: "https://indeed.com/1"})
	q.Enqueue(types.JobCreate{Title: "Intern", Company: "B", Platform: types.PlatformIndeed, URL: "https://indeed.com/2"})

	snap := q.SnapshotAll()
	require.Len(t, snap, 2)
	assert.Equal(t, "Senior Engineer", snap[0].Title)
	assert.Equal(t, 2, q.Len())
}

func TestSeedUsesSamePriorityOrdering(t *testing.T) {
	q := newTestQueue(t)
	records := []*types.JobRecord{
		{ID: "j1", Title: "Intern", Status: types.StatusPending},
		{ID: "j2", Title: "Principal Architect", SalaryRange: "$200,000", Status: types.StatusPending},
	}
	q.Seed(records)

	job, ok := q.DequeueNext()
	require.True(t, ok)
	assert.Equal(t, "j2", job.ID)
	assert.Equal(t, -15, job.Priority)
}

func TestClear(t *testing.T) {
	q := newTestQueue(t)
	q.Enqueue(types.JobCreate{Title: "Engineer", Company: "A", Platform: types.PlatformIndeed, URL: "https://indeed.com/1"})
	q.Clear()
	assert.Equal(t, 0, q.Len())
	_, ok := q.DequeueNext()
	assert.False(t, ok)
}
