package core

import (
	"testing"

	"github.com/bmizerany/assert"
)

func TestControllerPauseFlags(t *testing.T) {
	var ctrl Controller

	ctrl.SetPaused(OperationBorrow, true)

	assert.Equal(t, true, ctrl.IsPaused(OperationBorrow))
	assert.Equal(t, false, ctrl.IsPaused(OperationSupply))
	assert.Equal(t, false, ctrl.IsPaused(OperationRedeem))
	assert.Equal(t, false, ctrl.IsPaused(OperationRepay))

	ctrl.SetPaused(OperationBorrow, false)
	assert.Equal(t, false, ctrl.IsPaused(OperationBorrow))
}
