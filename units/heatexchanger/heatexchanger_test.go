package heatexchanger

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/procsim/unitsim/properties"
	"github.com/procsim/unitsim/solver"
)

var _ = Describe("HeatExchanger", func() {
	var hx *HeatExchanger

	BeforeEach(func() {
		hx = MakeBuilder().
			WithName("exchanger").
			WithPropertyPackage(properties.SimpleSteam()).
			Build()
	})

	It("should refuse an unresolved property package", func() {
		Expect(func() {
			MakeBuilder().Build()
		}).To(Panic())
		Expect(func() {
			MakeBuilder().
				WithPropertyPackage(properties.UseDefault).
				Build()
		}).To(Panic())
	})

	It("should have eight degrees of freedom when unconfigured", func() {
		// 15 variables against 7 equalities: both inlets, the area, and
		// the heat-transfer coefficient remain to be specified.
		Expect(hx.DegreesOfFreedom()).To(Equal(8))
	})

	It("should be square once inlets, area, and coefficient are fixed",
		func() {
			hx.HotInlet().Fix()
			hx.ColdInlet().Fix()
			hx.Area().Fix()
			hx.HeatTransferCoefficient().Fix()

			Expect(hx.DegreesOfFreedom()).To(Equal(0))
		})

	Describe("Initialize", func() {
		BeforeEach(func() {
			// Subcooled water on both sides so the temperature relation
			// stays in one branch and the balance is hand-checkable.
			hx.HotInlet().Variable("flow_mol").FixAt(10)
			hx.HotInlet().Variable("enth_mol").FixAt(8000)
			hx.HotInlet().Variable("pressure").FixAt(201325)

			hx.ColdInlet().Variable("flow_mol").FixAt(20)
			hx.ColdInlet().Variable("enth_mol").FixAt(3000)
			hx.ColdInlet().Variable("pressure").FixAt(101325)

			hx.Area().FixAt(10)
			hx.HeatTransferCoefficient().FixAt(100)
		})

		It("should converge to the hand-computed balance", func() {
			res, err := hx.Initialize(solver.NewNewton(), solver.Options{})

			Expect(err).ToNot(HaveOccurred())
			Expect(res.Status).To(Equal(solver.StatusOptimal))

			// 10*(8000-h) = 1000*meanDT = 20*(hc-3000) solved by hand
			// for the simplesteam liquid branch.
			Expect(hx.HotOutlet().Variable("enth_mol").Value()).To(
				BeNumerically("~", 4675.9, 1.0))
			Expect(hx.ColdOutlet().Variable("enth_mol").Value()).To(
				BeNumerically("~", 4662.1, 1.0))
			Expect(hx.HeatDuty().Value()).To(
				BeNumerically("~", 33241, 20))

			Expect(hx.HotOutlet().Variable("flow_mol").Value()).To(
				BeNumerically("~", 10, 1e-6))
			Expect(hx.HotOutlet().Variable("pressure").Value()).To(
				BeNumerically("~", 201325, 1e-3))
		})

		It("should leave the fixed/active configuration unchanged", func() {
			_, err := hx.Initialize(solver.NewNewton(), solver.Options{})

			Expect(err).ToNot(HaveOccurred())

			Expect(hx.HotInlet().Variable("flow_mol").IsFixed()).To(BeTrue())
			Expect(hx.ColdInlet().Variable("pressure").IsFixed()).To(BeTrue())
			Expect(hx.Area().IsFixed()).To(BeTrue())
			Expect(hx.HotOutlet().Variable("enth_mol").IsFixed()).To(BeFalse())
			Expect(hx.HeatDuty().IsFixed()).To(BeFalse())
			Expect(hx.DegreesOfFreedom()).To(Equal(0))
		})

		It("should treat unfixed boundaries as temporary and release them",
			func() {
				hx.Area().Unfix()

				_, err := hx.Initialize(solver.NewNewton(), solver.Options{})

				Expect(err).ToNot(HaveOccurred())
				Expect(hx.Area().IsFixed()).To(BeFalse())
			})
	})
})
