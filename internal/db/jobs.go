package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/divyansh1099/AI-jobs/internal/types"
)

const jobColumns = `id, title, company, platform, url, description, requirements,
	salary_range, location, priority, status, created_at, applied_at,
	cover_letter, application_result`

// AddJob inserts a new job record.
func (db *DB) AddJob(ctx context.Context, job *types.JobRecord) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO jobs (id, title, company, platform, url, description,
		                   requirements, salary_range, location, priority, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		job.ID, job.Title, job.Company, job.Platform, job.URL,
		nullable(job.Description), nullable(job.Requirements),
		nullable(job.SalaryRange), nullable(job.Location),
		job.Priority, string(job.Status),
	)
	if err != nil {
		return fmt.Errorf("failed to add job %s: %w", job.ID, err)
	}
	return nil
}

// UpdateStatus records a status transition, stamping applied_at and the
// outcome payload on terminal transitions.
func (db *DB) UpdateStatus(ctx context.Context, id string, status types.JobStatus, result *types.ExecutionResult) error {
	var resultJSON []byte
	if result != nil {
		var err error
		resultJSON, err = json.Marshal(result)
		if err != nil {
			return fmt.Errorf("failed to marshal application result: %w", err)
		}
	}

	var appliedAt *time.Time
	if status.Terminal() {
		now := time.Now()
		appliedAt = &now
	}

	_, err := db.pool.Exec(ctx,
		`UPDATE jobs
		 SET status = $1,
		     applied_at = COALESCE($2, applied_at),
		     application_result = COALESCE($3, application_result)
		 WHERE id = $4`,
		string(status), appliedAt, resultJSON, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update job %s status: %w", id, err)
	}
	return nil
}

// SaveCoverLetter stores the generated cover letter for a job.
func (db *DB) SaveCoverLetter(ctx context.Context, id, coverLetter string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE jobs SET cover_letter = $1 WHERE id = $2`, coverLetter, id)
	if err != nil {
		return fmt.Errorf("failed to save cover letter for job %s: %w", id, err)
	}
	return nil
}

// GetJob retrieves one job record, or nil when absent.
func (db *DB) GetJob(ctx context.Context, id string) (*types.JobRecord, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	job, err := scanJob(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job %s: %w", id, err)
	}
	return job, nil
}

// ListJobs returns all jobs, newest first.
func (db *DB) ListJobs(ctx context.Context) ([]*types.JobRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()
	return collectJobs(rows)
}

// ListJobsByStatus returns jobs in the given status, oldest first so
// queue seeding preserves submission order.
func (db *DB) ListJobsByStatus(ctx context.Context, status types.JobStatus) ([]*types.JobRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE status = $1 ORDER BY created_at ASC`,
		string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs by status: %w", err)
	}
	defer rows.Close()
	return collectJobs(rows)
}

// DeleteJob removes a job record.
func (db *DB) DeleteJob(ctx context.Context, id string) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job %s: %w", id, err)
	}
	return nil
}

// Stats returns persisted job counts by status.
func (db *DB) Stats(ctx context.Context) (*types.ApplicationStats, error) {
	var s types.ApplicationStats
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE status = 'completed'),
		        COUNT(*) FILTER (WHERE status = 'failed'),
		        COUNT(*) FILTER (WHERE status = 'pending'),
		        COUNT(*) FILTER (WHERE status = 'processing')
		 FROM jobs`,
	).Scan(&s.Total, &s.Successful, &s.Failed, &s.Pending, &s.Processing)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	return &s, nil
}

func collectJobs(rows pgx.Rows) ([]*types.JobRecord, error) {
	var jobs []*types.JobRecord
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read jobs: %w", err)
	}
	return jobs, nil
}

func scanJob(row pgx.Row) (*types.JobRecord, error) {
	var (
		job         types.JobRecord
		description *string
		reqs        *string
		salary      *string
		location    *string
		status      string
		coverLetter *string
		resultJSON  []byte
	)
	err := row.Scan(&job.ID, &job.Title, &job.Company, &job.Platform, &job.URL,
		&description, &reqs, &salary, &location, &job.Priority, &status,
		&job.CreatedAt, &job.AppliedAt, &coverLetter, &resultJSON)
	if err != nil {
		return nil, err
	}

	job.Description = deref(description)
	job.Requirements = deref(reqs)
	job.SalaryRange = deref(salary)
	job.Location = deref(location)
	job.CoverLetter = deref(coverLetter)
	job.Status = types.JobStatus(status)

	if len(resultJSON) > 0 {
		var result types.ExecutionResult
		if err := json.Unmarshal(resultJSON, &result); err == nil {
			job.Result = &result
		}
	}
	return &job, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
