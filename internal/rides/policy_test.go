package rides

import (
	"testing"

	"github.com/delride/delride-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionTable(t *testing.T) {
	allStatuses := []models.RideStatus{
		models.RideStatusPending,
		models.RideStatusAccepted,
		models.RideStatusCompleted,
		models.RideStatusCanceled,
	}

	legal := map[string]map[models.RideStatus]bool{
		OpModify:   {models.RideStatusPending: true},
		OpAccept:   {models.RideStatusPending: true},
		OpComplete: {models.RideStatusAccepted: true},
		OpCancel:   {models.RideStatusPending: true, models.RideStatusAccepted: true},
		OpDelete:   {models.RideStatusPending: true},
	}

	for op, want := range legal {
		for _, status := range allStatuses {
			got := Allowed(op, status)
			assert.Equal(t, want[status], got, "%s from %s", op, status)
		}
	}
}

func TestCheckTransitionConflict(t *testing.T) {
	err := CheckTransition(OpComplete, models.RideStatusPending)
	require.Error(t, err)

	var sc *StateConflictError
	require.ErrorAs(t, err, &sc)
	assert.Equal(t, OpComplete, sc.Op)
	assert.Equal(t, models.RideStatusPending, sc.Status)
}

func TestCheckTransitionLegal(t *testing.T) {
	require.NoError(t, CheckTransition(OpAccept, models.RideStatusPending))
	require.NoError(t, CheckTransition(OpCancel, models.RideStatusAccepted))
}

func TestNoTransitionOutOfTerminalStates(t *testing.T) {
	ops := []string{OpModify, OpAccept, OpComplete, OpCancel, OpDelete}
	for _, status := range []models.RideStatus{models.RideStatusCompleted, models.RideStatusCanceled} {
		require.True(t, status.Terminal())
		for _, op := range ops {
			assert.Error(t, CheckTransition(op, status), "%s from %s", op, status)
		}
	}
}
