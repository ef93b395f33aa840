package bridge

import (
	"github.com/atomcore/atomcore/layout"
	"github.com/atomcore/atomcore/node"
)

// EnergyResult is the outcome of a minimize_energy call: the physics
// engine's verdict, the relaxed atom positions it produced, the energy
// at convergence (or at the point it gave up), and a human-readable
// message for diagnostics.
type EnergyResult struct {
	Success    bool
	Positions  map[node.NodeId]layout.Position
	Energy     float64
	Iterations int
	Message    string
}

// EnergyMinimizer is the call/return contract a physics engine must
// satisfy to be wired into a Bridge. The physics itself is out of scope
// here: energy minimisation is a long-running black-box collaborator
// invoked across this boundary, not something this package implements.
type EnergyMinimizer func(net *node.NodeNetwork) (EnergyResult, error)

// MinimizeEnergy implements the minimize_energy command by delegating to
// an injected EnergyMinimizer. Returns an error if none has been set via
// SetEnergyMinimizer.
func (b *Bridge) MinimizeEnergy(networkName string) (EnergyResult, error) {
	net, err := b.Network(networkName)
	if err != nil {
		return EnergyResult{}, err
	}

	b.mu.RLock()
	minimizer := b.energyMinimizer
	b.mu.RUnlock()

	if minimizer == nil {
		return EnergyResult{}, ErrNoEnergyMinimizer
	}
	b.logger.Printf("minimize_energy network=%s", networkName)
	return minimizer(net)
}

// SetEnergyMinimizer installs the collaborator MinimizeEnergy delegates
// to.
func (b *Bridge) SetEnergyMinimizer(m EnergyMinimizer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.energyMinimizer = m
}
