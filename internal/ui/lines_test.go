package ui

import (
	"testing"

	"ca-map/internal/core"
	"ca-map/internal/sims/automap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bareSim struct{}

func (bareSim) Name() string    { return "bare" }
func (bareSim) Size() core.Size { return core.Size{W: 1, H: 1} }
func (bareSim) Reset(int64)     {}
func (bareSim) Step()           {}
func (bareSim) Cells() []uint8  { return []uint8{0} }

func TestLinesWithoutParameters(t *testing.T) {
	lines, failed := Lines(bareSim{})
	assert.Equal(t, []string{"bare"}, lines)
	assert.False(t, failed)
}

func TestLinesShowParameters(t *testing.T) {
	sim, err := core.NewSim("automap", map[string]string{"signature": "0"})
	require.NoError(t, err)

	lines, failed := Lines(sim)
	assert.False(t, failed)
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Width=7")
	assert.Contains(t, lines[2], "Signature=0")
}

func TestLinesReportHalt(t *testing.T) {
	sim, err := core.NewSim("automap", map[string]string{
		"rules":     "../../rules/pair.yaml",
		"no_match":  "fail",
		"signature": "1",
	})
	require.NoError(t, err)
	sim.Step()
	require.Error(t, sim.(*automap.Automap).Err())

	lines, failed := Lines(sim)
	assert.True(t, failed)
	assert.Contains(t, lines[len(lines)-1], "halted: signature 1 cell 0")
}
