package mixer

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/procsim/unitsim/properties"
	"github.com/procsim/unitsim/solver"
)

var _ = Describe("Mixer", func() {
	var m *Mixer

	BeforeEach(func() {
		m = MakeBuilder().
			WithName("drain_mix").
			WithPropertyPackage(properties.SimpleSteam()).
			WithInlets("steam", "drain").
			Build()
		m.AddEqualPressureConstraint("steam")
	})

	It("should refuse fewer than two inlets", func() {
		Expect(func() {
			MakeBuilder().
				WithPropertyPackage(properties.SimpleSteam()).
				WithInlets("steam").
				Build()
		}).To(Panic())
	})

	It("should panic on unknown inlets", func() {
		Expect(func() { m.Inlet("condensate") }).To(Panic())
		Expect(func() { m.AddEqualPressureConstraint("condensate") }).
			To(Panic())
	})

	It("should be square once both inlets are fixed", func() {
		m.Inlet("steam").Fix()
		m.Inlet("drain").Fix()

		Expect(m.DegreesOfFreedom()).To(Equal(0))
	})

	Describe("Initialize", func() {
		BeforeEach(func() {
			m.Inlet("steam").Variable("flow_mol").FixAt(100)
			m.Inlet("steam").Variable("enth_mol").FixAt(60000)
			m.Inlet("steam").Variable("pressure").FixAt(201325)

			m.Inlet("drain").Variable("flow_mol").FixAt(1)
			m.Inlet("drain").Variable("enth_mol").FixAt(20000)
			m.Inlet("drain").Variable("pressure").FixAt(251325)
		})

		It("should mix mole and energy flows", func() {
			res, err := m.Initialize(solver.NewNewton(), solver.Options{})

			Expect(err).ToNot(HaveOccurred())
			Expect(res.Status).To(Equal(solver.StatusOptimal))

			Expect(m.Outlet().Variable("flow_mol").Value()).To(
				BeNumerically("~", 101, 1e-6))
			Expect(m.Outlet().Variable("enth_mol").Value()).To(
				BeNumerically("~", (100*60000.0+1*20000.0)/101, 1e-2))
			Expect(m.Outlet().Variable("pressure").Value()).To(
				BeNumerically("~", 201325, 1e-3))
		})

		It("should leave the fixed/active configuration unchanged", func() {
			_, err := m.Initialize(solver.NewNewton(), solver.Options{})

			Expect(err).ToNot(HaveOccurred())
			Expect(m.Inlet("steam").Variable("flow_mol").IsFixed()).To(
				BeTrue())
			Expect(m.Outlet().Variable("flow_mol").IsFixed()).To(BeFalse())
			Expect(m.DegreesOfFreedom()).To(Equal(0))
		})
	})
})
