package fwh

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/procsim/unitsim/properties"
	"github.com/procsim/unitsim/solver"
)

var _ = Describe("Initialize with the Newton adapter", func() {
	var (
		u    *FWH
		opts solver.Options
	)

	BeforeEach(func() {
		u = buildFWH(false, true, true)
		fixBoundary(u)

		opts = solver.Options{MaxIter: 500, Tolerance: 1e-6}
	})

	It("should leave the composite square and converged", func() {
		res, err := u.Initialize(solver.NewNewton(), opts)

		Expect(err).ToNot(HaveOccurred())
		Expect(res.Status).To(Equal(solver.StatusOptimal))
		Expect(u.DegreesOfFreedom()).To(Equal(0))
	})

	It("should condense the steam to saturated liquid", func() {
		_, err := u.Initialize(solver.NewNewton(), opts)
		Expect(err).ToNot(HaveOccurred())

		pkg := properties.SimpleSteam()
		condensate := u.Condense().HotOutlet()

		Expect(condensate.Variable("enth_mol").Value()).To(BeNumerically(
			"~", pkg.SatLiqEnthalpy(condensate.Variable("pressure").Value()),
			1.0))
		Expect(math.Abs(u.Condense().ExtractionRate().Residual())).To(
			BeNumerically("<", 1e-2))
	})

	It("should determine the extraction flow instead of keeping the guess",
		func() {
			_, err := u.Initialize(solver.NewNewton(), opts)
			Expect(err).ToNot(HaveOccurred())

			flow := u.SteamInlet().Variable("flow_mol")

			Expect(flow.IsFixed()).To(BeFalse())
			Expect(flow.Value()).To(BeNumerically(">", 10))
			Expect(flow.Value()).To(BeNumerically("<", 1000))

			// The whole steam path carries the same solved flow.
			Expect(u.Condense().HotInlet().Variable("flow_mol").Value()).To(
				BeNumerically("~", flow.Value(), 1e-3))
			Expect(u.CondensateOutlet().Variable("flow_mol").Value()).To(
				BeNumerically("~", flow.Value(), 1e-3))
		})

	It("should heat the feedwater and subcool the drain", func() {
		_, err := u.Initialize(solver.NewNewton(), opts)
		Expect(err).ToNot(HaveOccurred())

		pkg := properties.SimpleSteam()

		feedIn := u.FeedwaterInlet().Variable("enth_mol").Value()
		feedOut := u.FeedwaterOutlet().Variable("enth_mol").Value()
		Expect(feedOut).To(BeNumerically(">", feedIn))

		drain := u.CondensateOutlet()
		Expect(drain.Variable("enth_mol").Value()).To(BeNumerically(
			"<", pkg.SatLiqEnthalpy(drain.Variable("pressure").Value())))
	})

	It("should restore the boundary specification", func() {
		_, err := u.Initialize(solver.NewNewton(), opts)
		Expect(err).ToNot(HaveOccurred())

		Expect(u.SteamInlet().Variable("enth_mol").IsFixed()).To(BeTrue())
		Expect(u.SteamInlet().Variable("flow_mol").IsFixed()).To(BeFalse())
		Expect(u.FeedwaterInlet().Variable("flow_mol").IsFixed()).To(BeTrue())
		Expect(u.Desuperheat().Area().IsFixed()).To(BeTrue())
		Expect(u.Cooling().HeatTransferCoefficient().IsFixed()).To(BeTrue())
		Expect(u.FeedwaterOutlet().Variable("enth_mol").IsFixed()).To(
			BeFalse())
	})
})
