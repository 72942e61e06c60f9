// Package mixer provides a steady-state stream mixer sub-unit. Any number of
// named inlets are combined into one mixed outlet by mole and energy
// balances. Momentum is not mixed: the outlet pressure is left free unless
// the enclosing composite ties it to one inlet with an equal-pressure
// constraint.
package mixer

import (
	"github.com/procsim/unitsim/model"
	"github.com/procsim/unitsim/properties"
	"github.com/procsim/unitsim/solver"
)

// Residual scales for the mixer balances.
const (
	ScaleMole     = 1e2
	ScaleEnergy   = 1e6
	ScalePressure = 1e5
)

// A Mixer is a leaf equation block combining several inlet streams into one
// outlet stream.
type Mixer struct {
	block *model.Block

	inletNames []string
	inlets     map[string]*properties.StateBlock
	inletPorts map[string]*model.Port

	outlet     *properties.StateBlock
	outletPort *model.Port
}

// A Builder builds mixers.
type Builder struct {
	name       string
	pkg        properties.Package
	inletNames []string
}

// MakeBuilder creates a builder with default settings.
func MakeBuilder() Builder {
	return Builder{
		name:       "mixer",
		inletNames: []string{"inlet_1", "inlet_2"},
	}
}

// WithName sets the name of the mixer block.
func (b Builder) WithName(name string) Builder {
	b.name = name
	return b
}

// WithPropertyPackage sets the property package of the streams.
func (b Builder) WithPropertyPackage(pkg properties.Package) Builder {
	b.pkg = pkg
	return b
}

// WithInlets sets the ordered inlet names.
func (b Builder) WithInlets(names ...string) Builder {
	b.inletNames = names
	return b
}

// Build builds the mixer.
func (b Builder) Build() *Mixer {
	if b.pkg == nil || b.pkg == properties.UseDefault {
		panic("mixer " + b.name + " needs a resolved property package")
	}

	if len(b.inletNames) < 2 {
		panic("mixer " + b.name + " needs at least two inlets")
	}

	m := new(Mixer)
	m.block = model.NewBlock(b.name)
	m.inletNames = b.inletNames
	m.inlets = make(map[string]*properties.StateBlock)
	m.inletPorts = make(map[string]*model.Port)

	for _, name := range b.inletNames {
		state := properties.NewStateBlock(m.block, name, b.pkg)
		m.inlets[name] = state
		m.inletPorts[name] = state.Port(name)
	}

	m.outlet = properties.NewStateBlock(m.block, "mixed", b.pkg)
	m.outletPort = m.outlet.Port("mixed")

	m.addBalances()

	return m
}

func (m *Mixer) addBalances() {
	moleVars := []*model.Variable{m.outlet.FlowMol}
	energyVars := []*model.Variable{m.outlet.FlowMol, m.outlet.EnthMol}

	for _, name := range m.inletNames {
		in := m.inlets[name]
		moleVars = append(moleVars, in.FlowMol)
		energyVars = append(energyVars, in.FlowMol, in.EnthMol)
	}

	m.block.NewConstraint("mole_balance", moleVars, func() float64 {
		total := 0.0
		for _, name := range m.inletNames {
			total += m.inlets[name].FlowMol.Value()
		}

		return m.outlet.FlowMol.Value() - total
	}).SetScale(ScaleMole)

	m.block.NewConstraint("energy_balance", energyVars, func() float64 {
		total := 0.0
		for _, name := range m.inletNames {
			in := m.inlets[name]
			total += in.FlowMol.Value() * in.EnthMol.Value()
		}

		return m.outlet.FlowMol.Value()*m.outlet.EnthMol.Value() - total
	}).SetScale(ScaleEnergy)
}

// Block returns the equation block of the mixer.
func (m *Mixer) Block() *model.Block {
	return m.block
}

// InletNames returns the ordered inlet names.
func (m *Mixer) InletNames() []string {
	return m.inletNames
}

// Inlet returns the inlet port with the given name. It panics on unknown
// names, since that is a wiring bug.
func (m *Mixer) Inlet(name string) *model.Port {
	p, ok := m.inletPorts[name]
	if !ok {
		panic("mixer " + m.block.Name() + " has no inlet named " + name)
	}

	return p
}

// Outlet returns the mixed outlet port.
func (m *Mixer) Outlet() *model.Port {
	return m.outletPort
}

// AddEqualPressureConstraint ties the outlet pressure to the pressure of the
// named inlet. The composite that owns the mixer decides which inlet sets
// the pressure; that inlet should be the lowest-pressure feed.
func (m *Mixer) AddEqualPressureConstraint(inletName string) *model.Constraint {
	in, ok := m.inlets[inletName]
	if !ok {
		panic("mixer " + m.block.Name() + " has no inlet named " + inletName)
	}

	return m.block.NewConstraint(inletName+"_pressure_equality",
		[]*model.Variable{in.Pressure, m.outlet.Pressure},
		func() float64 {
			return m.outlet.Pressure.Value() - in.Pressure.Value()
		}).SetScale(ScalePressure)
}

// DegreesOfFreedom returns the degrees of freedom of the mixer block.
func (m *Mixer) DegreesOfFreedom() int {
	return m.block.DegreesOfFreedom()
}

// Initialize solves the mixer as a stand-alone block: the inlets are treated
// as known boundary conditions and the solver determines the mixed outlet.
// The fixed/active state of the block is restored before returning.
func (m *Mixer) Initialize(
	adapter solver.Adapter,
	opts solver.Options,
) (solver.Result, error) {
	guard := model.NewGuard(m.block)
	defer guard.MustRestore()

	m.seedOutlet()

	for _, name := range m.inletNames {
		guard.FixPort(m.inletPorts[name])
	}

	m.outletPort.Unfix()

	res, err := adapter.Solve(m.block, opts)
	if err != nil {
		return res, err
	}

	solver.LogOutcome(m.block.Name(), res, opts)

	return res, nil
}

func (m *Mixer) seedOutlet() {
	totalFlow := 0.0
	totalEnthalpy := 0.0

	for _, name := range m.inletNames {
		in := m.inlets[name]
		totalFlow += in.FlowMol.Value()
		totalEnthalpy += in.FlowMol.Value() * in.EnthMol.Value()
	}

	m.outlet.FlowMol.SetValue(totalFlow)
	if totalFlow > 0 {
		m.outlet.EnthMol.SetValue(totalEnthalpy / totalFlow)
	}

	m.outlet.Pressure.SetValue(
		m.inlets[m.inletNames[0]].Pressure.Value())
}
