package ingestion

import "context"

// Client bundles fixed fetch options behind the Ingest entry point.
type Client struct {
	Opts *FetchOptions
}

// Ingest fetches and extracts one posting.
func (c Client) Ingest(ctx context.Context, urlStr string) (*Posting, error) {
	return Ingest(ctx, urlStr, c.Opts)
}
