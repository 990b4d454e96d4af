package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

func TestEffectiveStatus_BlankIsOpen(t *testing.T) {
	f := &Finding{}
	assert.Equal(t, FindingOpen, f.EffectiveStatus())

	f.Status = FindingOnHold
	assert.Equal(t, FindingOnHold, f.EffectiveStatus())
}

func TestApplyFinal_ValidTargets(t *testing.T) {
	for _, status := range []FindingStatus{FindingInProgress, FindingOnHold, FindingClosed} {
		f := &Finding{FindingNo: "1", Status: FindingInProgress}
		require.NoError(t, f.ApplyFinal(status, testNow), "status=%s", status)
		assert.Equal(t, status, f.Status)
		assert.Equal(t, testNow, f.UpdatedAt)
	}
}

func TestApplyFinal_RejectsOpen(t *testing.T) {
	f := &Finding{FindingNo: "1", Status: FindingInProgress}
	err := f.ApplyFinal(FindingOpen, testNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid final status")
	assert.Equal(t, FindingInProgress, f.Status, "status should not change")
}

func TestApplyFinal_ReopensClosed(t *testing.T) {
	for _, status := range []FindingStatus{FindingInProgress, FindingOnHold, FindingClosed} {
		f := &Finding{FindingNo: "2", Status: FindingClosed}
		require.NoError(t, f.ApplyFinal(status, testNow), "status=%s", status)
		assert.Equal(t, status, f.Status)
	}
}

func TestManhourEvent_HasEvidence(t *testing.T) {
	e := &ManhourEvent{}
	assert.False(t, e.HasEvidence())

	e.Evidence = []byte{0xff, 0xd8}
	assert.True(t, e.HasEvidence())
}
