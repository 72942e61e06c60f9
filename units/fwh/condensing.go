package fwh

import (
	"github.com/procsim/unitsim/model"
	"github.com/procsim/unitsim/properties"
	"github.com/procsim/unitsim/solver"
	"github.com/procsim/unitsim/units/heatexchanger"
)

// ScaleExtraction is the residual scale of the extraction-rate constraint.
const ScaleExtraction = 1e4

// A CondensingSection is a heat exchanger with an extraction-rate
// constraint: the hot outlet must leave as saturated liquid, which makes
// the steam inlet flow a solved quantity instead of a boundary condition.
type CondensingSection struct {
	*heatexchanger.HeatExchanger

	extraction *model.Constraint
}

func newCondensingSection(
	name string,
	pkg properties.Package,
) *CondensingSection {
	hx := heatexchanger.MakeBuilder().
		WithName(name).
		WithPropertyPackage(pkg).
		Build()

	c := new(CondensingSection)
	c.HeatExchanger = hx

	enthOut := hx.HotOutlet().Variable("enth_mol")
	pressOut := hx.HotOutlet().Variable("pressure")

	c.extraction = hx.Block().NewConstraint("extraction_rate",
		[]*model.Variable{enthOut, pressOut},
		func() float64 {
			return pkg.SatLiqEnthalpy(pressOut.Value()) - enthOut.Value()
		}).SetScale(ScaleExtraction)

	return c
}

// ExtractionRate returns the constraint forcing the hot outlet to saturated
// liquid. The initialization scheduler relaxes it while the sections are
// solved one by one.
func (c *CondensingSection) ExtractionRate() *model.Constraint {
	return c.extraction
}

// Initialize runs the plain exchanger initialization with the extraction
// constraint relaxed, then reactivates the constraint and solves again with
// the steam inlet flow freed, so the constraint determines the extraction
// rate. The fixed/active state of the section is restored before returning.
func (c *CondensingSection) Initialize(
	adapter solver.Adapter,
	opts solver.Options,
) (solver.Result, error) {
	c.extraction.Deactivate()

	res, err := c.HeatExchanger.Initialize(adapter, opts)
	if err != nil {
		c.extraction.Activate()
		return res, err
	}

	c.extraction.Activate()

	guard := model.NewGuard(c.Block())
	defer guard.MustRestore()

	guard.FixPort(c.HotInlet())
	guard.FixPort(c.ColdInlet())
	guard.Fix(c.Area())
	guard.Fix(c.HeatTransferCoefficient())

	c.HotOutlet().Unfix()
	c.ColdOutlet().Unfix()
	c.HeatDuty().Unfix()

	// the extraction constraint determines the steam draw
	c.HotInlet().Variable("flow_mol").Unfix()

	res, err = adapter.Solve(c.Block(), opts)
	if err != nil {
		return res, err
	}

	solver.LogOutcome(c.Block().Name(), res, opts)

	return res, nil
}
