package bridge

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atomcore/atomcore/layout"
	"github.com/atomcore/atomcore/node"
)

func TestMinimizeEnergy_ErrorsWithoutCollaborator(t *testing.T) {
	b, _, _ := newTestBridge(t)
	_, err := b.CreateNetwork("main")
	require.NoError(t, err)

	_, err = b.MinimizeEnergy("main")
	require.ErrorIs(t, err, ErrNoEnergyMinimizer)
}

func TestMinimizeEnergy_DelegatesToInjectedCollaborator(t *testing.T) {
	b, _, _ := newTestBridge(t)
	_, err := b.CreateNetwork("main")
	require.NoError(t, err)
	id, err := b.AddNode("main", "sphere", 0, 0)
	require.NoError(t, err)

	var calledWith *node.NodeNetwork
	b.SetEnergyMinimizer(func(net *node.NodeNetwork) (EnergyResult, error) {
		calledWith = net
		return EnergyResult{
			Success:    true,
			Positions:  map[node.NodeId]layout.Position{id: {X: 1, Y: 2}},
			Energy:     -12.5,
			Iterations: 40,
			Message:    "converged",
		}, nil
	})

	result, err := b.MinimizeEnergy("main")
	require.NoError(t, err)
	require.NotNil(t, calledWith)
	require.True(t, result.Success)
	require.Equal(t, -12.5, result.Energy)
	require.Equal(t, layout.Position{X: 1, Y: 2}, result.Positions[id])
}

func TestMinimizeEnergy_ReturnsNotFoundForUnknownNetwork(t *testing.T) {
	b, _, _ := newTestBridge(t)
	_, err := b.MinimizeEnergy("missing")
	require.ErrorIs(t, err, ErrNetworkNotFound)
}
