package properties

import "math"

// Simplified water/steam correlations on a molar basis. Saturation
// temperature follows a logarithmic fit anchored at 373.15 K / 101325 Pa,
// liquid and vapor branches are linear in enthalpy, and the two-phase region
// sits at the saturation temperature. The correlations are monotonic and
// continuous, which is what the initialization solves need; they are not a
// substitute for a reference equation of state.
const (
	steamTRef   = 273.15 // K, zero-enthalpy liquid reference
	steamCpLiq  = 75.4   // J/mol/K
	steamCpVap  = 33.6   // J/mol/K
	steamLatent = 40650  // J/mol

	// Tsat(p) = satA + satB*ln(p); fit anchored at 1 atm and 2 atm.
	steamSatA = 20.45
	steamSatB = 30.6
)

type simpleSteam struct{}

// SimpleSteam returns the simplified water/steam property package.
func SimpleSteam() Package {
	return simpleSteam{}
}

func (simpleSteam) Name() string {
	return "simple_steam"
}

func (simpleSteam) SatTemperature(pressure float64) float64 {
	return steamSatA + steamSatB*math.Log(pressure)
}

func (s simpleSteam) SatLiqEnthalpy(pressure float64) float64 {
	return steamCpLiq * (s.SatTemperature(pressure) - steamTRef)
}

func (s simpleSteam) SatVapEnthalpy(pressure float64) float64 {
	return s.SatLiqEnthalpy(pressure) + steamLatent
}

func (s simpleSteam) Temperature(enthMol, pressure float64) float64 {
	hLiq := s.SatLiqEnthalpy(pressure)
	hVap := hLiq + steamLatent
	tSat := s.SatTemperature(pressure)

	switch {
	case enthMol <= hLiq:
		return tSat - (hLiq-enthMol)/steamCpLiq
	case enthMol >= hVap:
		return tSat + (enthMol-hVap)/steamCpVap
	default:
		return tSat
	}
}
