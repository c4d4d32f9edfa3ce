package queue

import "strings"

// ScorerConfig holds the keyword sets used to derive a job's priority key.
// The defaults mirror the coarse heuristics the operator tuned by hand;
// exact sets are configuration rather than code so they can be adjusted
// without touching the queue.
type ScorerConfig struct {
	SeniorityKeywords []string
	RoleKeywords      []string
	SeniorityBonus    int
	RoleBonus         int
	SalaryBonus       int
}

// DefaultScorerConfig returns the stock keyword sets.
func DefaultScorerConfig() ScorerConfig {
	return ScorerConfig{
		SeniorityKeywords: []string{"senior", "lead", "principal", "architect", "staff"},
		RoleKeywords:      []string{"engineer", "developer", "analyst"},
		SeniorityBonus:    10,
		RoleBonus:         5,
		SalaryBonus:       5,
	}
}

// Scorer computes priority keys from job attributes.
type Scorer struct {
	cfg ScorerConfig
}

// NewScorer creates a scorer with the given config.
func NewScorer(cfg ScorerConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// PriorityKey returns the negated business-value score, so higher-value
// jobs carry lower keys and dequeue first. Seniority keywords take
// precedence over generic role keywords; the salary bonus stacks on top.
func (s *Scorer) PriorityKey(title, salaryRange string) int {
	score := 0
	lower := strings.ToLower(title)

	if containsAny(lower, s.cfg.SeniorityKeywords) {
		score += s.cfg.SeniorityBonus
	} else if containsAny(lower, s.cfg.RoleKeywords) {
		score += s.cfg.RoleBonus
	}

	if sixFigureSalary(salaryRange) {
		score += s.cfg.SalaryBonus
	}

	return -score
}

// sixFigureSalary reports whether the salary text mentions a six-figure
// amount: a run of at least six digits, with commas allowed as grouping
// separators ("$150,000", "120000 USD").
func sixFigureSalary(salary string) bool {
	run := 0
	for _, r := range salary {
		switch {
		case r >= '0' && r <= '9':
			run++
			if run >= 6 {
				return true
			}
		case r == ',':
			// Grouping separator inside a number keeps the run alive.
		default:
			run = 0
		}
	}
	return false
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
