package browser

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/chromedp"
)

// DefaultOpTimeout bounds a single page operation within a session.
const DefaultOpTimeout = 30 * time.Second

// userAgent mimics a desktop browser; some boards block obvious bots.
const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

// ChromeProvider runs sessions against a shared headless Chrome process.
type ChromeProvider struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	opTimeout   time.Duration
	logger      *slog.Logger
}

// NewChromeProvider starts a Chrome allocator. It returns an error when
// Chrome cannot be launched, letting the caller fall back to simulation.
func NewChromeProvider(ctx context.Context, headless bool, logger *slog.Logger) (*ChromeProvider, error) {
	if logger == nil {
		logger = slog.Default()
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", headless),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-blink-features", "AutomationControlled"),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(userAgent),
		)...,
	)

	// Launch eagerly so a missing Chrome binary surfaces here rather than
	// in the middle of the first submission.
	probeCtx, probeCancel := chromedp.NewContext(allocCtx)
	defer probeCancel()
	startCtx, startCancel := context.WithTimeout(probeCtx, 15*time.Second)
	defer startCancel()
	if err := chromedp.Run(startCtx); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	logger.Info("browser automation initialized", "headless", headless)
	return &ChromeProvider{
		allocCtx:    allocCtx,
		allocCancel: cancel,
		opTimeout:   DefaultOpTimeout,
		logger:      logger,
	}, nil
}

// AcquireSession opens a new tab for one submission.
func (p *ChromeProvider) AcquireSession(ctx context.Context, platform string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tabCtx, cancel := chromedp.NewContext(p.allocCtx)
	p.logger.Debug("browser session acquired", "platform", platform)
	return &chromeSession{ctx: tabCtx, cancel: cancel, opTimeout: p.opTimeout}, nil
}

// Close tears down the shared Chrome process.
func (p *ChromeProvider) Close() error {
	p.allocCancel()
	p.logger.Info("browser automation cleaned up")
	return nil
}

type chromeSession struct {
	ctx       context.Context
	cancel    context.CancelFunc
	opTimeout time.Duration
}

// run executes actions against the tab with the operation timeout,
// honoring cancellation from the caller's context.
func (s *chromeSession) run(ctx context.Context, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	opCtx, cancel := context.WithTimeout(s.ctx, s.opTimeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	return chromedp.Run(opCtx, actions...)
}

func (s *chromeSession) Navigate(ctx context.Context, url string) error {
	err := s.run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		// Let client-side rendering settle before inspecting controls.
		chromedp.Sleep(2*time.Second),
	)
	if err != nil {
		return fmt.Errorf("navigation to %s failed: %w", url, err)
	}
	return nil
}

func (s *chromeSession) FindControl(ctx context.Context, selector string) (*Control, error) {
	var count int
	err := s.run(ctx, chromedp.Evaluate(
		fmt.Sprintf(`document.querySelectorAll(%q).length`, selector), &count))
	if err != nil {
		return nil, fmt.Errorf("querying %q failed: %w", selector, err)
	}
	if count == 0 {
		return nil, nil
	}
	return &Control{Selector: selector}, nil
}

func (s *chromeSession) FillText(ctx context.Context, ctl *Control, text string) error {
	err := s.run(ctx,
		chromedp.Clear(ctl.Selector, chromedp.ByQuery),
		chromedp.SendKeys(ctl.Selector, text, chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("filling %q failed: %w", ctl.Selector, err)
	}
	return nil
}

func (s *chromeSession) Activate(ctx context.Context, ctl *Control) error {
	err := s.run(ctx,
		chromedp.Click(ctl.Selector, chromedp.ByQuery, chromedp.NodeVisible),
		chromedp.Sleep(1*time.Second),
	)
	if err != nil {
		return fmt.Errorf("activating %q failed: %w", ctl.Selector, err)
	}
	return nil
}

func (s *chromeSession) Close() error {
	s.cancel()
	return nil
}
