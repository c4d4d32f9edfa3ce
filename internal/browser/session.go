// Package browser provides transient browser sessions for driving job
// application forms. The chromedp-backed provider opens real headless
// Chrome tabs; the simulated provider stands in when Chrome is
// unavailable and in tests.
package browser

import "context"

// Control is an opaque handle to a page element located by FindControl.
type Control struct {
	Selector string
}

// Session is one open browser tab scoped to a single submission.
type Session interface {
	// Navigate loads the given URL and waits for the page to be ready.
	Navigate(ctx context.Context, url string) error
	// FindControl locates a visible element by CSS selector. A nil
	// control with a nil error means the element is absent.
	FindControl(ctx context.Context, selector string) (*Control, error)
	// FillText types text into a located control.
	FillText(ctx context.Context, ctl *Control, text string) error
	// Activate clicks a located control.
	Activate(ctx context.Context, ctl *Control) error
	// Close releases the tab. Safe to call more than once.
	Close() error
}

// SessionProvider hands out sessions, one per submission.
type SessionProvider interface {
	// AcquireSession opens a fresh session for the given platform.
	AcquireSession(ctx context.Context, platform string) (Session, error)
	// Close tears down the underlying browser. Must only be called after
	// all sessions are closed.
	Close() error
}
