// Package generation produces cover-letter text for a job. The primary
// path calls the configured text-generation backend; any failure falls
// back to deterministic templates, so Generate never returns empty text.
package generation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/divyansh1099/AI-jobs/internal/llm"
	"github.com/divyansh1099/AI-jobs/internal/types"
)

// DefaultTimeout bounds one backend generation attempt.
const DefaultTimeout = 60 * time.Second

// Generator is the cover-letter generation service.
type Generator struct {
	client  llm.Client
	opts    llm.GenerateOptions
	timeout time.Duration
	logger  *slog.Logger
}

// New creates a generator backed by the given client. A nil client means
// template-only generation.
func New(client llm.Client, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		client:  client,
		opts:    llm.DefaultGenerateOptions(),
		timeout: DefaultTimeout,
		logger:  logger,
	}
}

// WithTimeout overrides the backend attempt timeout.
func (g *Generator) WithTimeout(d time.Duration) *Generator {
	g.timeout = d
	return g
}

// WithOptions overrides the backend generation options.
func (g *Generator) WithOptions(opts llm.GenerateOptions) *Generator {
	g.opts = opts
	return g
}

// Generate returns a cover letter for the job. It attempts the backend
// first and falls back to templates on any failure; the returned text is
// always non-empty, so callers never need their own fallback.
func (g *Generator) Generate(ctx context.Context, job *types.JobRecord) string {
	if g.client != nil {
		genCtx, cancel := context.WithTimeout(ctx, g.timeout)
		defer cancel()

		text, err := g.client.GenerateText(genCtx, buildPrompt(job), g.opts)
		if err == nil && strings.TrimSpace(text) != "" {
			g.logger.Info("cover letter generated",
				"job_id", job.ID, "chars", len(text))
			return strings.TrimSpace(text)
		}
		g.logger.Warn("backend generation failed, using template",
			"job_id", job.ID, "error", err)
	}
	return g.GenerateFromTemplate(job)
}

// buildPrompt assembles the generation prompt from the job context.
func buildPrompt(job *types.JobRecord) string {
	return fmt.Sprintf(`Generate a professional cover letter for this job application:

Job Title: %s
Company: %s
Job Description: %s
Requirements: %s

Requirements:
- Keep it concise (3-4 paragraphs, under 300 words)
- Match the tone to the company culture
- Highlight relevant experience and skills
- Be specific about why you're interested in this role
- End with a clear call to action
- Do not include placeholder text like [Your Name]

Return only the cover letter text, no additional formatting or explanations.`,
		job.Title, job.Company, job.Description, job.Requirements)
}
