package executor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/divyansh1099/AI-jobs/internal/browser"
	"github.com/divyansh1099/AI-jobs/internal/types"
)

func runIndeed(t *testing.T, session browser.Session) *types.ExecutionResult {
	t.Helper()
	s := NewIndeedStrategy(nil)
	res := s.Run(context.Background(), session, jobFor(types.PlatformIndeed), "letter")
	require.NotNil(t, res)
	require.Equal(t, types.PlatformIndeed, res.Platform)
	return res
}

func TestIndeedFullFlowSucceeds(t *testing.T) {
	session := &browser.SimulatedSession{
		HasApply:      true,
		HasCoverField: true,
		HasSubmit:     true,
		Confirms:      true,
	}

	res := runIndeed(t, session)
	assert.True(t, res.Success)
	assert.Equal(t, []string{selIndeedCoverField}, session.Filled)
}

func TestIndeedApplyControlNotFound(t *testing.T) {
	res := runIndeed(t, &browser.SimulatedSession{HasApply: false})
	assert.False(t, res.Success)
	assert.Equal(t, types.ReasonApplyNotFound, res.Reason)
}

func TestIndeedSubmitControlNotFound(t *testing.T) {
	res := runIndeed(t, &browser.SimulatedSession{HasApply: true, HasSubmit: false})
	assert.False(t, res.Success)
	assert.Equal(t, types.ReasonSubmitNotFound, res.Reason)
}

func TestIndeedMissingCoverFieldIsNotFatal(t *testing.T) {
	session := &browser.SimulatedSession{
		HasApply:  true,
		HasSubmit: true,
		Confirms:  true,
	}

	res := runIndeed(t, session)
	assert.True(t, res.Success)
	assert.Empty(t, session.Filled)
}

func TestIndeedNoConfirmationFails(t *testing.T) {
	session := &browser.SimulatedSession{
		HasApply:  true,
		HasSubmit: true,
		Confirms:  false,
	}

	res := runIndeed(t, session)
	assert.False(t, res.Success)
	assert.Equal(t, types.ReasonPositionUnavailable, res.Reason)
}

func TestPortalAlwaysTagsCompanyPortal(t *testing.T) {
	s := NewPortalStrategy(7, nil)
	for i := 0; i < 20; i++ {
		res := s.Run(context.Background(), &browser.SimulatedSession{}, jobFor(types.PlatformCompanyPortal), "letter")
		require.NotNil(t, res)
		assert.Equal(t, types.PlatformCompanyPortal, res.Platform)
		if !res.Success {
			assert.NotEmpty(t, res.Reason)
		}
	}
}
