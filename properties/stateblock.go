package properties

import "github.com/procsim/unitsim/model"

// Default guesses a freshly built state starts from. They only matter as a
// starting point for the first sub-unit solve.
const (
	defaultFlowMol  = 1.0
	defaultEnthMol  = 1e4
	defaultPressure = 101325.0
)

// A StateBlock groups the flow variables of one material stream at one
// location: molar flow, molar enthalpy, and pressure. It is the unit of
// connection between sub-units.
type StateBlock struct {
	block *model.Block
	pkg   Package

	FlowMol  *model.Variable
	EnthMol  *model.Variable
	Pressure *model.Variable
}

// NewStateBlock creates a state block as a child of parent.
func NewStateBlock(parent *model.Block, name string, pkg Package) *StateBlock {
	sb := new(StateBlock)
	sb.pkg = pkg
	sb.block = parent.NewChild(name)

	sb.FlowMol = sb.block.NewVariable("flow_mol")
	sb.FlowMol.SetBounds(1e-8, 1e8)
	sb.FlowMol.SetValue(defaultFlowMol)

	sb.EnthMol = sb.block.NewVariable("enth_mol")
	sb.EnthMol.SetValue(defaultEnthMol)

	sb.Pressure = sb.block.NewVariable("pressure")
	sb.Pressure.SetBounds(1e2, 1e9)
	sb.Pressure.SetValue(defaultPressure)

	return sb
}

// Block returns the underlying model block.
func (sb *StateBlock) Block() *model.Block {
	return sb.block
}

// Temperature evaluates the stream temperature at the current enthalpy and
// pressure.
func (sb *StateBlock) Temperature() float64 {
	return sb.pkg.Temperature(sb.EnthMol.Value(), sb.Pressure.Value())
}

// Port builds a port exposing the state variables under the standard member
// names flow_mol, enth_mol, pressure.
func (sb *StateBlock) Port(name string) *model.Port {
	p := model.NewPort(name)
	p.Add("flow_mol", sb.FlowMol)
	p.Add("enth_mol", sb.EnthMol)
	p.Add("pressure", sb.Pressure)

	return p
}

// CopyFrom copies the values of another state block into this one. Fixed
// flags are untouched.
func (sb *StateBlock) CopyFrom(src *StateBlock) {
	sb.FlowMol.SetValue(src.FlowMol.Value())
	sb.EnthMol.SetValue(src.EnthMol.Value())
	sb.Pressure.SetValue(src.Pressure.Value())
}
