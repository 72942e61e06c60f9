package heatexchanger

import (
	"github.com/procsim/unitsim/model"
	"github.com/procsim/unitsim/properties"
)

// A Builder builds heat exchangers.
type Builder struct {
	name        string
	pkg         properties.Package
	defaultArea float64
	defaultHTC  float64
}

// MakeBuilder creates a builder with default settings.
func MakeBuilder() Builder {
	return Builder{
		name:        "heat_exchanger",
		defaultArea: 10,
		defaultHTC:  100,
	}
}

// WithName sets the name of the exchanger block.
func (b Builder) WithName(name string) Builder {
	b.name = name
	return b
}

// WithPropertyPackage sets the property package used on both sides.
func (b Builder) WithPropertyPackage(pkg properties.Package) Builder {
	b.pkg = pkg
	return b
}

// WithDefaultArea sets the starting guess for the heat-transfer area. The
// caller normally overrides it by fixing the area variable later.
func (b Builder) WithDefaultArea(area float64) Builder {
	b.defaultArea = area
	return b
}

// Build builds the exchanger: four stream states, the duty, area, and
// heat-transfer coefficient variables, and the seven equalities that couple
// them.
func (b Builder) Build() *HeatExchanger {
	if b.pkg == nil || b.pkg == properties.UseDefault {
		panic("heat exchanger " + b.name + " needs a resolved property package")
	}

	x := new(HeatExchanger)
	x.pkg = b.pkg
	x.block = model.NewBlock(b.name)

	x.hotIn = properties.NewStateBlock(x.block, "hot_inlet", b.pkg)
	x.hotOut = properties.NewStateBlock(x.block, "hot_outlet", b.pkg)
	x.coldIn = properties.NewStateBlock(x.block, "cold_inlet", b.pkg)
	x.coldOut = properties.NewStateBlock(x.block, "cold_outlet", b.pkg)

	x.hotInletPort = x.hotIn.Port("hot_inlet")
	x.hotOutletPort = x.hotOut.Port("hot_outlet")
	x.coldInletPort = x.coldIn.Port("cold_inlet")
	x.coldOutletPort = x.coldOut.Port("cold_outlet")

	x.heatDuty = x.block.NewVariable("heat_duty")
	x.heatDuty.SetValue(0)

	x.area = x.block.NewVariable("area")
	x.area.SetBounds(1e-6, 1e9)
	x.area.SetValue(b.defaultArea)

	x.htc = x.block.NewVariable("heat_transfer_coefficient")
	x.htc.SetBounds(1e-6, 1e9)
	x.htc.SetValue(b.defaultHTC)

	b.addConstraints(x)

	return x
}

func (b Builder) addConstraints(x *HeatExchanger) {
	hotIn, hotOut := x.hotIn, x.hotOut
	coldIn, coldOut := x.coldIn, x.coldOut
	duty, area, htc := x.heatDuty, x.area, x.htc

	x.block.NewConstraint("hot_continuity",
		[]*model.Variable{hotIn.FlowMol, hotOut.FlowMol},
		func() float64 {
			return hotOut.FlowMol.Value() - hotIn.FlowMol.Value()
		}).SetScale(ScaleContinuity)

	x.block.NewConstraint("cold_continuity",
		[]*model.Variable{coldIn.FlowMol, coldOut.FlowMol},
		func() float64 {
			return coldOut.FlowMol.Value() - coldIn.FlowMol.Value()
		}).SetScale(ScaleContinuity)

	x.block.NewConstraint("hot_energy_balance",
		[]*model.Variable{duty, hotIn.FlowMol, hotIn.EnthMol, hotOut.EnthMol},
		func() float64 {
			return duty.Value() - hotIn.FlowMol.Value()*
				(hotIn.EnthMol.Value()-hotOut.EnthMol.Value())
		}).SetScale(ScaleEnergy)

	x.block.NewConstraint("cold_energy_balance",
		[]*model.Variable{
			duty, coldIn.FlowMol, coldIn.EnthMol, coldOut.EnthMol,
		},
		func() float64 {
			return duty.Value() - coldIn.FlowMol.Value()*
				(coldOut.EnthMol.Value()-coldIn.EnthMol.Value())
		}).SetScale(ScaleEnergy)

	// Heat transfer with an arithmetic-mean driving temperature. The mean
	// keeps the equation defined when a terminal temperature difference
	// crosses zero during early iterations.
	x.block.NewConstraint("heat_transfer",
		[]*model.Variable{
			duty, area, htc,
			hotIn.EnthMol, hotIn.Pressure,
			hotOut.EnthMol, hotOut.Pressure,
			coldIn.EnthMol, coldIn.Pressure,
			coldOut.EnthMol, coldOut.Pressure,
		},
		func() float64 {
			meanDT := ((hotIn.Temperature() - coldOut.Temperature()) +
				(hotOut.Temperature() - coldIn.Temperature())) / 2

			return duty.Value() - htc.Value()*area.Value()*meanDT
		}).SetScale(ScaleEnergy)

	x.block.NewConstraint("hot_pressure_drop",
		[]*model.Variable{hotIn.Pressure, hotOut.Pressure},
		func() float64 {
			return hotOut.Pressure.Value() - hotIn.Pressure.Value()
		}).SetScale(ScalePressure)

	x.block.NewConstraint("cold_pressure_drop",
		[]*model.Variable{coldIn.Pressure, coldOut.Pressure},
		func() float64 {
			return coldOut.Pressure.Value() - coldIn.Pressure.Value()
		}).SetScale(ScalePressure)
}
