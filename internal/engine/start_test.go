package engine

import (
	"testing"
	"time"

	"github.com/rgaitan/wotrack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecideStart_Proceed(t *testing.T) {
	d := DecideStart(nil, "F1", "E1")
	assert.Equal(t, StartProceed, d.Outcome)
	assert.Empty(t, d.ActiveOthers)
}

func TestDecideStart_AlreadyActive(t *testing.T) {
	log := []domain.ManhourEvent{evt(1, "F1", "E1", domain.ActionStart, t0)}

	d := DecideStart(log, "F1", "E1")
	assert.Equal(t, StartAlreadyActive, d.Outcome)
	assert.Empty(t, d.ActiveOthers, "no confirmation list for a rejected start")
}

func TestDecideStart_Conflict(t *testing.T) {
	log := []domain.ManhourEvent{
		evt(1, "F1", "E1", domain.ActionStart, t0),
		evt(2, "F1", "E3", domain.ActionStart, t0.Add(time.Minute)),
	}

	d := DecideStart(log, "F1", "E2")
	assert.Equal(t, StartConflict, d.Outcome)
	require.Len(t, d.ActiveOthers, 2)
	assert.Equal(t, "E1", d.ActiveOthers[0].EmployeeID)
	assert.Equal(t, "E3", d.ActiveOthers[1].EmployeeID)
}

func TestDecideStart_StoppedWorkerDoesNotConflict(t *testing.T) {
	log := []domain.ManhourEvent{
		evt(1, "F1", "E1", domain.ActionStart, t0),
		evt(2, "F1", "E1", domain.ActionStop, t0.Add(time.Minute)),
	}

	d := DecideStart(log, "F1", "E2")
	assert.Equal(t, StartProceed, d.Outcome)
}

func TestDecideStart_OtherFindingIrrelevant(t *testing.T) {
	log := []domain.ManhourEvent{evt(1, "F2", "E1", domain.ActionStart, t0)}

	d := DecideStart(log, "F1", "E1")
	assert.Equal(t, StartProceed, d.Outcome,
		"an open session on another finding does not block this start")
}
