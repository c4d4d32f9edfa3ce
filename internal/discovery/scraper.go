// Package discovery finds new job postings and feeds them into the
// pipeline. Scraping is simulated with realistic platform data; accepted
// jobs are deduplicated, enqueued, and persisted.
package discovery

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/divyansh1099/AI-jobs/internal/queue"
	"github.com/divyansh1099/AI-jobs/internal/types"
)

// Default search parameters used when a scrape request carries none.
var (
	DefaultSearchTerms = []string{"software engineer", "data engineer"}
	DefaultLocations   = []string{"Remote", "San Francisco"}
)

var companies = []string{
	"Google", "Meta", "Apple", "Microsoft", "Amazon", "Netflix", "Uber", "Airbnb",
	"Stripe", "Shopify", "Slack", "Discord", "GitHub", "GitLab", "Figma", "Notion",
	"Coinbase", "Square", "PayPal", "Tesla", "SpaceX", "OpenAI", "Anthropic",
}

var titlesByCategory = map[string][]string{
	"software_engineer": {
		"Software Engineer",
		"Senior Software Engineer",
		"Full Stack Developer",
		"Frontend Developer",
		"Backend Developer",
	},
	"data": {
		"Data Engineer",
		"Data Scientist",
		"Machine Learning Engineer",
		"Data Analyst",
		"Analytics Engineer",
	},
	"devops": {
		"DevOps Engineer",
		"Site Reliability Engineer",
		"Platform Engineer",
		"Infrastructure Engineer",
		"Cloud Engineer",
	},
}

var requirementsByCategory = map[string][]string{
	"software_engineer": {
		"JavaScript, React, Node.js, 2+ years experience",
		"Python, Django, PostgreSQL, 3+ years experience",
		"Java, Spring Boot, Microservices, 2+ years experience",
		"TypeScript, Next.js, GraphQL, 2+ years experience",
	},
	"data": {
		"Python, SQL, Pandas, 2+ years experience",
		"Python, TensorFlow, Statistics, PhD preferred",
		"Spark, Airflow, AWS, 3+ years experience",
		"R, Python, Machine Learning, Statistics background",
	},
	"devops": {
		"AWS, Kubernetes, Docker, 3+ years experience",
		"Terraform, CI/CD, Linux, 2+ years experience",
		"GCP, Python, Monitoring, 3+ years experience",
		"Azure, PowerShell, Automation, 2+ years experience",
	},
}

var descriptionsByTitle = map[string]string{
	"Software Engineer":        "Join %s's engineering team to build scalable applications and services that impact millions of users.",
	"Senior Software Engineer": "Lead technical initiatives at %s and mentor junior developers while building cutting-edge solutions.",
	"Data Engineer":            "Design and maintain robust data pipelines at %s to support analytics and machine learning initiatives.",
	"Data Scientist":           "Apply advanced analytics and machine learning to solve complex business problems at %s.",
	"DevOps Engineer":          "Scale %s's infrastructure and deployment processes to support rapid growth and innovation.",
	"Full Stack Developer":     "Build end-to-end web applications at %s using modern technologies and best practices.",
}

var salaryByTitle = map[string]string{
	"Software Engineer":        "$90,000 - $140,000",
	"Senior Software Engineer": "$130,000 - $200,000",
	"Data Engineer":            "$100,000 - $160,000",
	"Data Scientist":           "$110,000 - $180,000",
	"DevOps Engineer":          "$95,000 - $150,000",
	"Full Stack Developer":     "$85,000 - $135,000",
}

const defaultSalaryRange = "$80,000 - $120,000"

// JobAdder persists an accepted posting. Persistence failures skip the
// posting rather than aborting the scrape.
type JobAdder interface {
	AddJob(ctx context.Context, job *types.JobRecord) error
}

// Scraper generates simulated postings and routes the unique ones into
// the queue and store.
type Scraper struct {
	queue  *queue.PriorityQueue
	store  JobAdder
	logger *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a scraper; store may be nil to run queue-only.
func New(q *queue.PriorityQueue, store JobAdder, seed int64, logger *slog.Logger) *Scraper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scraper{
		queue:  q,
		store:  store,
		logger: logger,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Scrape discovers postings for the given search terms and locations,
// defaulting both when empty. It returns the accepted (deduplicated,
// enqueued) records.
func (s *Scraper) Scrape(ctx context.Context, terms, locations []string) ([]*types.JobRecord, error) {
	if len(terms) == 0 {
		terms = DefaultSearchTerms
	}
	if len(locations) == 0 {
		locations = DefaultLocations
	}
	s.logger.Info("scraping jobs", "terms", terms, "locations", locations)

	var found []types.JobCreate
	for _, term := range terms {
		for _, loc := range locations {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			batch := s.searchPlatforms(term, loc)
			s.logger.Info("search finished", "term", term, "location", loc, "found", len(batch))
			found = append(found, batch...)
		}
	}

	accepted := make([]*types.JobRecord, 0, len(found))
	for _, data := range deduplicate(found) {
		job := s.queue.EnqueueJob(data)
		if s.store != nil {
			if err := s.store.AddJob(ctx, job); err != nil {
				s.logger.Error("failed to persist scraped job",
					"title", job.Title, "company", job.Company, "error", err)
				s.queue.RemoveByID(job.ID)
				continue
			}
		}
		accepted = append(accepted, job)
	}

	s.logger.Info("scraping completed", "added", len(accepted))
	return accepted, nil
}

// searchPlatforms produces 2-5 postings for one term+location pair.
func (s *Scraper) searchPlatforms(term, location string) []types.JobCreate {
	s.mu.Lock()
	defer s.mu.Unlock()

	category := categorize(term)
	n := 2 + s.rng.Intn(4)
	jobs := make([]types.JobCreate, 0, n)
	platforms := []string{types.PlatformLinkedIn, types.PlatformIndeed}

	for i := 0; i < n; i++ {
		platform := platforms[s.rng.Intn(len(platforms))]
		company := companies[s.rng.Intn(len(companies))]
		titles := titlesByCategory[category]
		title := titles[s.rng.Intn(len(titles))]
		reqs := requirementsByCategory[category]

		jobs = append(jobs, types.JobCreate{
			Title:        title,
			Company:      company,
			Platform:     platform,
			Location:     location,
			URL:          fmt.Sprintf("https://%s.com/jobs/%s", platform, uuid.NewString()[:8]),
			Description:  describe(title, company),
			Requirements: reqs[s.rng.Intn(len(reqs))],
			SalaryRange:  salaryFor(title),
		})
	}
	return jobs
}

// categorize maps a search term to a title category.
func categorize(term string) string {
	t := strings.ToLower(term)
	switch {
	case strings.Contains(t, "data"):
		return "data"
	case strings.Contains(t, "devops"), strings.Contains(t, "infrastructure"):
		return "devops"
	default:
		return "software_engineer"
	}
}

func describe(title, company string) string {
	if tmpl, ok := descriptionsByTitle[title]; ok {
		return fmt.Sprintf(tmpl, company)
	}
	return fmt.Sprintf("Exciting opportunity to work at %s as a %s.", company, title)
}

func salaryFor(title string) string {
	if r, ok := salaryByTitle[title]; ok {
		return r
	}
	return defaultSalaryRange
}

// deduplicate drops postings that repeat a title+company pair, keeping
// first occurrences in order.
func deduplicate(jobs []types.JobCreate) []types.JobCreate {
	seen := make(map[string]struct{}, len(jobs))
	unique := jobs[:0:0]
	for _, j := range jobs {
		key := strings.ToLower(j.Title) + "-" + strings.ToLower(j.Company)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, j)
	}
	return unique
}
