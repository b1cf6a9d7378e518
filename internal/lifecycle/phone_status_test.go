package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFreeTransitionsBetweenNonTerminalStatuses(t *testing.T) {
	statuses := []Status{StatusReceived, StatusInRepair, StatusReady}
	for _, from := range statuses {
		for _, to := range statuses {
			assert.NoError(t, CheckTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestBackwardTransitionAllowed(t *testing.T) {
	// rework: Ready back to In Repair
	assert.NoError(t, CheckTransition(StatusReady, StatusInRepair))
}

func TestBilledCannotBeSetDirectly(t *testing.T) {
	err := CheckTransition(StatusReady, StatusBilled)
	assert.Error(t, err)
}

func TestBilledIsTerminal(t *testing.T) {
	for _, to := range []Status{StatusReceived, StatusInRepair, StatusReady, StatusBilled} {
		assert.Error(t, CheckTransition(StatusBilled, to), "Billed -> %s must fail", to)
	}
	assert.True(t, StatusBilled.Terminal())
}

func TestUnknownStatusRejected(t *testing.T) {
	assert.Error(t, CheckTransition(StatusReceived, Status("Lost")))
	assert.False(t, Status("Lost").Valid())
}

func TestCompletedFlag(t *testing.T) {
	assert.True(t, Completed(StatusReady))
	assert.False(t, Completed(StatusReceived))
	assert.False(t, Completed(StatusInRepair))
	assert.False(t, Completed(StatusBilled))
}
