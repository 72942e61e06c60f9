// Package heatexchanger provides a steady-state 0D heat exchanger sub-unit:
// one hot and one cold stream, lumped heat transfer through a fixed area,
// and no pressure drop on either side.
package heatexchanger

import (
	"github.com/procsim/unitsim/model"
	"github.com/procsim/unitsim/properties"
	"github.com/procsim/unitsim/solver"
)

// Residual scales per equation family, chosen so scaled residuals of a
// converged exchanger are all comparable.
const (
	ScaleContinuity = 1e2
	ScaleEnergy     = 1e6
	ScalePressure   = 1e5
)

// A HeatExchanger is a leaf equation block modeling one exchanger section.
// It owns its variables and constraints exclusively and exposes four stream
// ports for connection.
type HeatExchanger struct {
	block *model.Block
	pkg   properties.Package

	hotIn   *properties.StateBlock
	hotOut  *properties.StateBlock
	coldIn  *properties.StateBlock
	coldOut *properties.StateBlock

	hotInletPort   *model.Port
	hotOutletPort  *model.Port
	coldInletPort  *model.Port
	coldOutletPort *model.Port

	heatDuty *model.Variable
	area     *model.Variable
	htc      *model.Variable
}

// Block returns the equation block of the exchanger.
func (x *HeatExchanger) Block() *model.Block {
	return x.block
}

// PropertyPackage returns the property package the exchanger was built with.
func (x *HeatExchanger) PropertyPackage() properties.Package {
	return x.pkg
}

// HotInlet returns the hot-side inlet port.
func (x *HeatExchanger) HotInlet() *model.Port {
	return x.hotInletPort
}

// HotOutlet returns the hot-side outlet port.
func (x *HeatExchanger) HotOutlet() *model.Port {
	return x.hotOutletPort
}

// ColdInlet returns the cold-side inlet port.
func (x *HeatExchanger) ColdInlet() *model.Port {
	return x.coldInletPort
}

// ColdOutlet returns the cold-side outlet port.
func (x *HeatExchanger) ColdOutlet() *model.Port {
	return x.coldOutletPort
}

// Area returns the heat-transfer area variable.
func (x *HeatExchanger) Area() *model.Variable {
	return x.area
}

// HeatTransferCoefficient returns the overall heat-transfer coefficient
// variable.
func (x *HeatExchanger) HeatTransferCoefficient() *model.Variable {
	return x.htc
}

// HeatDuty returns the transferred-duty variable.
func (x *HeatExchanger) HeatDuty() *model.Variable {
	return x.heatDuty
}

// DegreesOfFreedom returns the degrees of freedom of the exchanger block.
func (x *HeatExchanger) DegreesOfFreedom() int {
	return x.block.DegreesOfFreedom()
}

// Initialize solves the exchanger as a stand-alone block: both inlets, the
// area, and the heat-transfer coefficient are treated as known boundary
// conditions, the outlets are seeded from the inlets, and the solver
// determines outlets and duty. The fixed/active state of the block is
// restored before returning, whatever the outcome.
func (x *HeatExchanger) Initialize(
	adapter solver.Adapter,
	opts solver.Options,
) (solver.Result, error) {
	guard := model.NewGuard(x.block)
	defer guard.MustRestore()

	x.hotOut.CopyFrom(x.hotIn)
	x.coldOut.CopyFrom(x.coldIn)
	x.heatDuty.SetValue(0)

	guard.FixPort(x.hotInletPort)
	guard.FixPort(x.coldInletPort)
	guard.Fix(x.area)
	guard.Fix(x.htc)

	x.hotOutletPort.Unfix()
	x.coldOutletPort.Unfix()
	x.heatDuty.Unfix()

	res, err := adapter.Solve(x.block, opts)
	if err != nil {
		return res, err
	}

	solver.LogOutcome(x.block.Name(), res, opts)

	return res, nil
}
