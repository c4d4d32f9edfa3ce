package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobStatusTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusProcessing.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusFailed.Terminal())
}

func TestReasonStuckAtStep(t *testing.T) {
	assert.Equal(t, "stuck at step 3", ReasonStuckAtStep(3))
}

func TestExecutionResultFinalize(t *testing.T) {
	res := Succeeded(PlatformLinkedIn).Finalize(2500 * time.Millisecond)
	assert.Equal(t, 2.5, res.ElapsedSeconds)
	assert.Equal(t, 2500*time.Millisecond, res.Elapsed)

	data, err := json.Marshal(res)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, true, decoded["success"])
	assert.Equal(t, PlatformLinkedIn, decoded["platform"])
	assert.Equal(t, 2.5, decoded["processing_time"])
	// Elapsed duration itself stays out of the payload.
	assert.NotContains(t, decoded, "Elapsed")
}

func TestFailedCarriesReason(t *testing.T) {
	res := Failed(PlatformIndeed, ReasonSubmitNotFound)
	assert.False(t, res.Success)
	assert.Equal(t, ReasonSubmitNotFound, res.Reason)
	assert.Equal(t, PlatformIndeed, res.Platform)
}
