package properties

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/procsim/unitsim/model"
)

var _ = Describe("SimpleSteam", func() {
	pkg := SimpleSteam()

	It("should boil near 373 K at atmospheric pressure", func() {
		Expect(pkg.SatTemperature(101325)).To(BeNumerically("~", 373.15, 1))
	})

	It("should boil hotter at higher pressure", func() {
		Expect(pkg.SatTemperature(201325)).To(
			BeNumerically(">", pkg.SatTemperature(101325)))
	})

	It("should separate the saturation enthalpies by the latent heat",
		func() {
			p := 201325.0

			Expect(pkg.SatVapEnthalpy(p) - pkg.SatLiqEnthalpy(p)).To(
				BeNumerically("~", 40650, 1e-9))
		})

	It("should hold two-phase streams at saturation temperature", func() {
		p := 101325.0
		hMid := (pkg.SatLiqEnthalpy(p) + pkg.SatVapEnthalpy(p)) / 2

		Expect(pkg.Temperature(hMid, p)).To(Equal(pkg.SatTemperature(p)))
	})

	It("should be continuous across the phase boundaries", func() {
		p := 101325.0
		hLiq := pkg.SatLiqEnthalpy(p)
		hVap := pkg.SatVapEnthalpy(p)

		Expect(pkg.Temperature(hLiq-1e-9, p)).To(
			BeNumerically("~", pkg.Temperature(hLiq+1e-9, p), 1e-6))
		Expect(pkg.Temperature(hVap-1e-9, p)).To(
			BeNumerically("~", pkg.Temperature(hVap+1e-9, p), 1e-6))
	})

	It("should increase temperature with enthalpy", func() {
		p := 101325.0

		Expect(pkg.Temperature(3000, p)).To(
			BeNumerically("<", pkg.Temperature(6000, p)))
		Expect(pkg.Temperature(50000, p)).To(
			BeNumerically("<", pkg.Temperature(60000, p)))
	})
})

var _ = Describe("StateBlock", func() {
	var (
		parent *model.Block
		state  *StateBlock
	)

	BeforeEach(func() {
		parent = model.NewBlock("unit")
		state = NewStateBlock(parent, "hot_inlet", SimpleSteam())
	})

	It("should register its variables under the parent", func() {
		Expect(parent.VariableByPath("hot_inlet.flow_mol")).To(
			BeIdenticalTo(state.FlowMol))
		Expect(parent.VariableByPath("hot_inlet.enth_mol")).To(
			BeIdenticalTo(state.EnthMol))
		Expect(parent.VariableByPath("hot_inlet.pressure")).To(
			BeIdenticalTo(state.Pressure))
	})

	It("should start from usable default guesses", func() {
		Expect(state.FlowMol.IsSet()).To(BeTrue())
		Expect(state.Pressure.Value()).To(Equal(101325.0))
	})

	It("should expose a standard stream port", func() {
		port := state.Port("hot_inlet")

		Expect(port.Members()).To(Equal(
			[]string{"flow_mol", "enth_mol", "pressure"}))
		Expect(port.Variable("enth_mol")).To(BeIdenticalTo(state.EnthMol))
	})

	It("should copy values from another state", func() {
		other := NewStateBlock(parent, "hot_outlet", SimpleSteam())
		state.FlowMol.SetValue(100)
		state.EnthMol.SetValue(60000)
		state.Pressure.SetValue(201325)

		other.CopyFrom(state)

		Expect(other.FlowMol.Value()).To(Equal(100.0))
		Expect(other.EnthMol.Value()).To(Equal(60000.0))
		Expect(other.Pressure.Value()).To(Equal(201325.0))
	})

	Describe("Resolve", func() {
		It("should prefer a concrete package", func() {
			pkg := SimpleSteam()

			Expect(Resolve(pkg, nil)).To(Equal(pkg))
		})

		It("should inherit through the sentinel", func() {
			parentPkg := SimpleSteam()

			Expect(Resolve(UseDefault, parentPkg)).To(Equal(parentPkg))
			Expect(Resolve(nil, parentPkg)).To(Equal(parentPkg))
		})
	})
})
