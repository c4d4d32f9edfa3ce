package browser

import (
	"context"
	"log/slog"
	"math/rand"
	"strings"
	"sync"

	"github.com/divyansh1099/AI-jobs/internal/types"
)

// SimulatedProvider stands in for real Chrome. Sessions interpret
// selectors by keyword (submit, continue, cover, confirmation, apply) and
// answer from a scripted page model with per-platform odds, mirroring how
// the real boards behave often enough to exercise the full pipeline.
type SimulatedProvider struct {
	mu     sync.Mutex
	rng    *rand.Rand
	logger *slog.Logger
}

// NewSimulatedProvider creates a provider seeded for reproducibility.
func NewSimulatedProvider(seed int64, logger *slog.Logger) *SimulatedProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &SimulatedProvider{rng: rand.New(rand.NewSource(seed)), logger: logger}
}

// confirmRates are the post-submit confirmation odds per platform.
var confirmRates = map[string]float64{
	types.PlatformLinkedIn:      0.70,
	types.PlatformIndeed:        0.65,
	types.PlatformCompanyPortal: 0.80,
}

// AcquireSession builds a scripted session for the platform.
func (p *SimulatedProvider) AcquireSession(ctx context.Context, platform string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	rate, ok := confirmRates[platform]
	if !ok {
		rate = 0.70
	}

	s := &SimulatedSession{
		// Entry controls almost always render; forms are flakier.
		HasApply:      p.rng.Float64() < 0.95,
		HasCoverField: p.rng.Float64() < 0.60,
		HasSubmit:     p.rng.Float64() < 0.90,
		Confirms:      p.rng.Float64() < rate,
	}
	// Only the multi-step Easy Apply flow gates submit behind continues.
	if platform == types.PlatformLinkedIn {
		s.StepsBeforeSubmit = 1 + p.rng.Intn(4)
	}
	p.logger.Debug("simulated session acquired", "platform", platform)
	return s, nil
}

// Close is a no-op for the simulated provider.
func (p *SimulatedProvider) Close() error {
	p.logger.Info("simulated browser cleaned up")
	return nil
}

// SimulatedSession is a scripted page model. The exported fields let
// tests pin exact layouts instead of rolling the provider's dice.
type SimulatedSession struct {
	HasApply          bool
	HasCoverField     bool
	HasSubmit         bool
	Confirms          bool
	StepsBeforeSubmit int

	advances  int
	submitted bool
	Filled    []string
	closed    bool
}

// Navigate always succeeds against the scripted page.
func (s *SimulatedSession) Navigate(ctx context.Context, url string) error {
	return ctx.Err()
}

// FindControl classifies the selector by keyword and answers from the
// scripted layout. Order matters: composite selectors like an
// "apply-form-submit" button must classify as submit, not apply.
func (s *SimulatedSession) FindControl(ctx context.Context, selector string) (*Control, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	lower := strings.ToLower(selector)

	present := false
	switch {
	case strings.Contains(lower, "submit"):
		present = s.HasSubmit && s.advances >= s.StepsBeforeSubmit
	case strings.Contains(lower, "continue") || strings.Contains(lower, "next"):
		present = s.advances < s.StepsBeforeSubmit
	case strings.Contains(lower, "cover"):
		present = s.HasCoverField
	case strings.Contains(lower, "confirmation"):
		present = s.submitted && s.Confirms
	case strings.Contains(lower, "apply"):
		present = s.HasApply
	}

	if !present {
		return nil, nil
	}
	return &Control{Selector: selector}, nil
}

// FillText records the filled selector.
func (s *SimulatedSession) FillText(ctx context.Context, ctl *Control, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.Filled = append(s.Filled, ctl.Selector)
	return nil
}

// Activate advances the scripted flow: clicking a continue control moves
// to the next step, clicking a submit control finalizes the form.
func (s *SimulatedSession) Activate(ctx context.Context, ctl *Control) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	lower := strings.ToLower(ctl.Selector)
	switch {
	case strings.Contains(lower, "submit"):
		s.submitted = true
	case strings.Contains(lower, "continue") || strings.Contains(lower, "next"):
		s.advances++
	case strings.Contains(lower, "apply"):
		// Opens the form; the apply entry point needs no step tracking.
	}
	return nil
}

// Close marks the session closed.
func (s *SimulatedSession) Close() error {
	s.closed = true
	return nil
}

// Closed reports whether Close was called, for leak assertions in tests.
func (s *SimulatedSession) Closed() bool {
	return s.closed
}
