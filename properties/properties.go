// Package properties defines the narrow interface through which unit
// operations consume physical property correlations, and a simplified steam
// package sufficient for steady-state feedwater-heater calculations. Units
// only call the construction entry point and the correlation methods; they
// never inspect correlation internals.
package properties

// A Package provides the thermodynamic state relations of one working
// fluid. Enthalpy is molar (J/mol), pressure absolute (Pa), temperature
// kelvin.
type Package interface {
	Name() string

	// Temperature returns the temperature of a stream at the given molar
	// enthalpy and pressure.
	Temperature(enthMol, pressure float64) float64

	// SatTemperature returns the saturation temperature at the given
	// pressure.
	SatTemperature(pressure float64) float64

	// SatLiqEnthalpy returns the saturated-liquid molar enthalpy at the
	// given pressure.
	SatLiqEnthalpy(pressure float64) float64

	// SatVapEnthalpy returns the saturated-vapor molar enthalpy at the
	// given pressure.
	SatVapEnthalpy(pressure float64) float64
}

type useDefault struct{}

func (useDefault) Name() string { return "use_default" }

func (useDefault) Temperature(float64, float64) float64 {
	panic("property package not resolved")
}

func (useDefault) SatTemperature(float64) float64 {
	panic("property package not resolved")
}

func (useDefault) SatLiqEnthalpy(float64) float64 {
	panic("property package not resolved")
}

func (useDefault) SatVapEnthalpy(float64) float64 {
	panic("property package not resolved")
}

// UseDefault is the sentinel a sub-unit configuration carries when its
// property package should be inherited from the enclosing composite. The
// sentinel is resolved exactly once, at assembly time, before the sub-unit
// is instantiated.
var UseDefault Package = useDefault{}

// Resolve applies the three-valued resolution rule: a concrete package wins,
// the UseDefault sentinel (or nil) falls back to the parent package.
func Resolve(pkg, parent Package) Package {
	if pkg == nil || pkg == UseDefault {
		return parent
	}

	return pkg
}
