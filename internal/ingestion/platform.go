package ingestion

import (
	"net/url"
	"strings"

	"github.com/divyansh1099/AI-jobs/internal/types"
)

// DetectPlatform identifies the job board platform from a posting URL.
// Unrecognized hosts map to the generic company portal.
func DetectPlatform(urlStr string) string {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return types.PlatformCompanyPortal
	}

	host := strings.ToLower(parsed.Host)
	switch {
	case strings.Contains(host, "linkedin.com"):
		return types.PlatformLinkedIn
	case strings.Contains(host, "indeed.com"):
		return types.PlatformIndeed
	default:
		return types.PlatformCompanyPortal
	}
}

// platformContentSelectors returns content selectors for a platform's
// posting pages.
func platformContentSelectors(platform string) []string {
	switch platform {
	case types.PlatformLinkedIn:
		return []string{
			".jobs-description__content",
			".description__text",
			".jobs-box__html-content",
			"main",
		}
	case types.PlatformIndeed:
		return []string{
			"#jobDescriptionText",
			".jobsearch-JobComponent-description",
			".jobsearch-jobDescriptionText",
			"main",
		}
	default:
		return []string{
			".job-description",
			".job-content",
			"#job-description",
			".posting-content",
			".job-details",
			"[data-testid='job-description']",
			"main",
			"article",
			".content",
			"#content",
		}
	}
}

// platformNoiseSelectors returns noise exclusion selectors for a
// platform's posting pages.
func platformNoiseSelectors(platform string) []string {
	common := []string{
		"form",
		".application-form",
		".apply-button-container",
		".social-share",
		".share-buttons",
		".cookie-consent",
		".gdpr-notice",
	}

	switch platform {
	case types.PlatformLinkedIn:
		return append(common,
			".jobs-apply-button--top-card",
			".similar-jobs",
			".see-more-jobs",
		)
	case types.PlatformIndeed:
		return append(common,
			".ia-IndeedApplyButton",
			".jobsearch-OtherJobs",
			".mosaic-provider-jobcards",
		)
	default:
		return common
	}
}
