package generation

import (
	"fmt"
	"strings"

	"github.com/divyansh1099/AI-jobs/internal/types"
)

// roleTemplate holds the four building blocks of a templated letter.
type roleTemplate struct {
	intro      string
	experience string
	motivation string
	closing    string
}

var roleTemplates = map[string]roleTemplate{
	"software_engineer": {
		intro:      "I am writing to express my strong interest in the %s role at %s.",
		experience: "With my experience in software development, I have developed expertise in %s.",
		motivation: "I am particularly drawn to %s because of your innovative approach to technology.",
		closing:    "I would welcome the opportunity to discuss how my skills can contribute to your team's success.",
	},
	"data_engineer": {
		intro:      "I am excited to apply for the %s position at %s.",
		experience: "My experience in data engineering has equipped me with strong skills in %s.",
		motivation: "I am impressed by %s's commitment to data-driven solutions.",
		closing:    "I look forward to discussing how my background aligns with your team's needs.",
	},
}

// techKeywords are the technologies recognized in requirements text; the
// first three matches are interpolated into the letter.
var techKeywords = []string{
	"Python", "JavaScript", "React", "Node.js", "SQL", "AWS", "Docker", "Kubernetes",
	"Go", "TypeScript", "PostgreSQL", "Kafka",
}

// maxTemplateTechs caps how many matched technologies appear in the letter.
const maxTemplateTechs = 3

// GenerateFromTemplate produces a deterministic letter with no external
// dependency. Titles mentioning a data role route to the data template;
// everything else uses the software-engineering template.
func (g *Generator) GenerateFromTemplate(job *types.JobRecord) string {
	template := roleTemplates[selectTemplate(job.Title)]
	technologies := extractTechnologies(job.Requirements)

	letter := fmt.Sprintf(`Dear Hiring Manager,

%s

%s

%s

%s

Best regards,
[Your Name]`,
		fmt.Sprintf(template.intro, job.Title, job.Company),
		fmt.Sprintf(template.experience, technologies),
		fmt.Sprintf(template.motivation, job.Company),
		template.closing,
	)

	g.logger.Info("template cover letter generated",
		"job_id", job.ID, "chars", len(letter))
	return letter
}

// selectTemplate picks a role category from title keywords.
func selectTemplate(title string) string {
	lower := strings.ToLower(title)
	if strings.Contains(lower, "data") && (strings.Contains(lower, "engineer") || strings.Contains(lower, "analyst")) {
		return "data_engineer"
	}
	return "software_engineer"
}

// extractTechnologies returns up to three recognized technologies from the
// requirements text, or a generic phrase when none match.
func extractTechnologies(requirements string) string {
	lower := strings.ToLower(requirements)
	var matched []string
	for _, tech := range techKeywords {
		if containsTech(lower, strings.ToLower(tech)) {
			matched = append(matched, tech)
			if len(matched) == maxTemplateTechs {
				break
			}
		}
	}
	if len(matched) == 0 {
		return "modern technologies"
	}
	return strings.Join(matched, ", ")
}

// containsTech matches a lowercased keyword on word boundaries, so "go"
// does not fire inside "django" and "sql" does not fire inside
// "postgresql".
func containsTech(text, tech string) bool {
	for i := 0; ; {
		j := strings.Index(text[i:], tech)
		if j < 0 {
			return false
		}
		j += i
		end := j + len(tech)
		before := j == 0 || !isWordChar(text[j-1])
		after := end == len(text) || !isWordChar(text[end])
		if before && after {
			return true
		}
		i = j + 1
	}
}

func isWordChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9'
}

// FallbackLetter is the minimal static letter used when generation fails
// in an unexpected way outside the generator's own fallback chain.
func FallbackLetter(job *types.JobRecord) string {
	return fmt.Sprintf(`Dear Hiring Manager,

I am writing to express my interest in the %s position at %s.

My background in software development and problem-solving makes me a strong candidate for this role. I am excited about the opportunity to contribute to your team.

Thank you for your consideration.

Best regards,
[Your Name]`, job.Title, job.Company)
}
