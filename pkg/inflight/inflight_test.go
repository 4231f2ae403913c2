package inflight

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGateRejectsWhileHeld(t *testing.T) {
	t.Parallel()
	g := &Gate{}

	assert.True(t, g.Enter())
	assert.False(t, g.Enter())

	g.Leave()
	assert.True(t, g.Enter())
	g.Leave()
}
