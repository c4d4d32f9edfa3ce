package browser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/divyansh1099/AI-jobs/internal/types"
)

func TestSimulatedSessionScriptedFlow(t *testing.T) {
	s := &SimulatedSession{
		HasApply:          true,
		HasCoverField:     true,
		HasSubmit:         true,
		Confirms:          true,
		StepsBeforeSubmit: 2,
	}
	ctx := context.Background()

	require.NoError(t, s.Navigate(ctx, "https://linkedin.com/jobs/1"))

	// Submit is gated until two continues have been clicked.
	ctl, err := s.FindControl(ctx, `[aria-label="Submit application"]`)
	require.NoError(t, err)
	assert.Nil(t, ctl)

	for i := 0; i < 2; i++ {
		next, err := s.FindControl(ctx, `[aria-label="Continue to next step"]`)
		require.NoError(t, err)
		require.NotNil(t, next)
		require.NoError(t, s.Activate(ctx, next))
	}

	ctl, err = s.FindControl(ctx, `[aria-label="Submit application"]`)
	require.NoError(t, err)
	require.NotNil(t, ctl)

	// Confirmation only shows after the submit click.
	conf, err := s.FindControl(ctx, `.apply-confirmation`)
	require.NoError(t, err)
	assert.Nil(t, conf)

	require.NoError(t, s.Activate(ctx, ctl))
	conf, err = s.FindControl(ctx, `.apply-confirmation`)
	require.NoError(t, err)
	assert.NotNil(t, conf)
}

func TestSimulatedSessionSelectorClassification(t *testing.T) {
	s := &SimulatedSession{HasApply: true, HasSubmit: true}
	ctx := context.Background()

	// A composite apply-form-submit selector must classify as submit, not
	// apply; with zero gating steps it is immediately present.
	ctl, err := s.FindControl(ctx, `[data-testid="apply-form-submit"]`)
	require.NoError(t, err)
	assert.NotNil(t, ctl)

	// Absent cover field.
	ctl, err = s.FindControl(ctx, `textarea[name="coverletter"]`)
	require.NoError(t, err)
	assert.Nil(t, ctl)
}

func TestSimulatedSessionFillRecordsSelectors(t *testing.T) {
	s := &SimulatedSession{HasCoverField: true}
	ctx := context.Background()

	ctl, err := s.FindControl(ctx, `textarea[id*="cover"]`)
	require.NoError(t, err)
	require.NotNil(t, ctl)
	require.NoError(t, s.FillText(ctx, ctl, "letter"))
	assert.Equal(t, []string{`textarea[id*="cover"]`}, s.Filled)
}

func TestSimulatedProviderSessions(t *testing.T) {
	p := NewSimulatedProvider(42, nil)
	ctx := context.Background()

	for _, platform := range types.KnownPlatforms {
		sess, err := p.AcquireSession(ctx, platform)
		require.NoError(t, err)
		require.NotNil(t, sess)
		require.NoError(t, sess.Close())
	}

	sim, err := p.AcquireSession(ctx, types.PlatformIndeed)
	require.NoError(t, err)
	// Non-linkedin platforms never gate submit behind continue steps.
	assert.Equal(t, 0, sim.(*SimulatedSession).StepsBeforeSubmit)

	require.NoError(t, p.Close())
}

func TestSimulatedProviderHonorsCancelledContext(t *testing.T) {
	p := NewSimulatedProvider(1, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.AcquireSession(ctx, types.PlatformLinkedIn)
	assert.Error(t, err)
}
