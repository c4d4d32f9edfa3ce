package ingestion

import (
	"context"
	"fmt"
	"strings"
)

// Posting is the extracted content of a job posting page.
type Posting struct {
	Title       string
	Description string
	Platform    string
}

// Ingest fetches a posting page and extracts its title and body text
// using platform-specific selectors.
func Ingest(ctx context.Context, urlStr string, opts *FetchOptions) (*Posting, error) {
	platform := DetectPlatform(urlStr)

	html, err := FetchHTML(ctx, urlStr, opts)
	if err != nil {
		return nil, err
	}

	text, err := ExtractMainText(html,
		platformContentSelectors(platform),
		platformNoiseSelectors(platform)...)
	if err != nil {
		return nil, fmt.Errorf("content extraction failed: %w", err)
	}

	return &Posting{
		Title:       ExtractTitle(html),
		Description: strings.TrimSpace(text),
		Platform:    platform,
	}, nil
}
